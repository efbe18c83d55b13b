package game

import (
	"errors"
	"strings"

	"build_a_bite/internal/domain"
)

var ErrInvalidDifficulty = errors.New("invalid difficulty")

// Tier - difficulty tier
type Tier string

const (
	TierBeginner     Tier = "beginner"
	TierIntermediate Tier = "intermediate"
	TierExpert       Tier = "expert"
)

// Category of selectable items in scope for a tier
type Category string

const (
	CategoryIngredients Category = "ingredients"
	CategoryProcesses   Category = "processes"
	CategoryEquipment   Category = "equipment"
)

// Settings configure one round: how long the player may study the correct
// sequence, how long they have to reproduce it, and which item categories
// participate.
type Settings struct {
	PreviewSeconds int        `json:"preview_seconds"`
	PlaySeconds    int        `json:"play_seconds"`
	Categories     []Category `json:"categories"`
}

// ParseTier validates a difficulty tag.
func ParseTier(s string) (Tier, error) {
	switch Tier(strings.ToLower(s)) {
	case TierBeginner:
		return TierBeginner, nil
	case TierIntermediate:
		return TierIntermediate, nil
	case TierExpert:
		return TierExpert, nil
	default:
		return "", ErrInvalidDifficulty
	}
}

// SettingsFor maps a tier to its round configuration.
func SettingsFor(tier Tier) (Settings, error) {
	switch tier {
	case TierBeginner:
		return Settings{
			PreviewSeconds: 5,
			PlaySeconds:    45,
			Categories:     []Category{CategoryIngredients},
		}, nil
	case TierIntermediate:
		return Settings{
			PreviewSeconds: 10,
			PlaySeconds:    70,
			Categories:     []Category{CategoryIngredients, CategoryProcesses},
		}, nil
	case TierExpert:
		return Settings{
			PreviewSeconds: 15,
			PlaySeconds:    95,
			Categories:     []Category{CategoryIngredients, CategoryProcesses, CategoryEquipment},
		}, nil
	default:
		return Settings{}, ErrInvalidDifficulty
	}
}

// CorrectOrder derives the authoritative step sequence for a product at a
// given tier. Concatenation order is part of the scoring ground truth:
// ingredients, then processes, then equipment.
func CorrectOrder(p *domain.Product, tier Tier) []string {
	order := itemNames(p.Ingredients)
	if tier == TierIntermediate || tier == TierExpert {
		order = append(order, itemNames(p.Processes)...)
	}
	if tier == TierExpert {
		order = append(order, itemNames(p.Equipment)...)
	}
	return order
}

func itemNames(items []domain.Item) []string {
	names := make([]string, 0, len(items))
	for _, it := range items {
		names = append(names, it.Name)
	}
	return names
}

// Instructions is the static per-tier help text served by the catalog API.
var Instructions = map[Tier]string{
	TierBeginner:     "Assemble the product using ingredients only. Watch the preview, then select each ingredient in the order shown before the timer runs out.",
	TierIntermediate: "Ingredients and processes are in play. Reproduce the full sequence: every ingredient first, then every process, in the previewed order.",
	TierExpert:       "Everything counts: ingredients, processes and equipment. One wrong pick shifts every later step, so follow the previewed order exactly.",
}
