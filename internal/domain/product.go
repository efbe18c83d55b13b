package domain

import "time"

// Item is a single selectable step: an ingredient, a process or a piece of
// equipment. Legacy catalog records stored items as plain strings or as
// char-split objects; the repository normalizes those into this shape.
type Item struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// Product is a catalog entry the player assembles during a round.
type Product struct {
	ID          int64     `db:"id" json:"id"`
	Name        string    `db:"name" json:"name"`
	Image       string    `db:"image" json:"image,omitempty"`
	Ingredients []Item    `db:"ingredients" json:"availableIngredients"`
	Processes   []Item    `db:"processes" json:"availableProcesses"`
	Equipment   []Item    `db:"equipment" json:"availableEquipment"`
	// CorrectOrder is the legacy authoritative sequence; kept for API
	// compatibility. The round engine derives the effective order per
	// difficulty from the category pools instead.
	CorrectOrder []string  `db:"correct_order" json:"correctOrder,omitempty"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
}
