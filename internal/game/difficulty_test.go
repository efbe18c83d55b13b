package game

import (
	"errors"
	"reflect"
	"testing"

	"build_a_bite/internal/domain"
)

func TestParseTier(t *testing.T) {
	cases := []struct {
		in   string
		want Tier
		err  bool
	}{
		{"beginner", TierBeginner, false},
		{"intermediate", TierIntermediate, false},
		{"expert", TierExpert, false},
		{"Expert", TierExpert, false},
		{"hardcore", "", true},
		{"", "", true},
	}

	for _, tc := range cases {
		got, err := ParseTier(tc.in)
		if tc.err {
			if !errors.Is(err, ErrInvalidDifficulty) {
				t.Fatalf("ParseTier(%q) err = %v; want ErrInvalidDifficulty", tc.in, err)
			}
			continue
		}
		if err != nil || got != tc.want {
			t.Fatalf("ParseTier(%q) = %q, %v; want %q", tc.in, got, err, tc.want)
		}
	}
}

func TestSettingsFor(t *testing.T) {
	cases := []struct {
		tier       Tier
		preview    int
		play       int
		categories int
	}{
		{TierBeginner, 5, 45, 1},
		{TierIntermediate, 10, 70, 2},
		{TierExpert, 15, 95, 3},
	}

	for _, tc := range cases {
		s, err := SettingsFor(tc.tier)
		if err != nil {
			t.Fatalf("SettingsFor(%s): %v", tc.tier, err)
		}
		if s.PreviewSeconds != tc.preview || s.PlaySeconds != tc.play || len(s.Categories) != tc.categories {
			t.Fatalf("SettingsFor(%s) = %+v; want preview=%d play=%d categories=%d",
				tc.tier, s, tc.preview, tc.play, tc.categories)
		}
	}

	if _, err := SettingsFor(Tier("hardcore")); !errors.Is(err, ErrInvalidDifficulty) {
		t.Fatalf("SettingsFor(hardcore) err = %v; want ErrInvalidDifficulty", err)
	}
}

func TestCorrectOrder(t *testing.T) {
	product := &domain.Product{
		Name: "Pizza",
		Ingredients: []domain.Item{
			{Name: "Dough"}, {Name: "Sauce"}, {Name: "Cheese"},
		},
		Processes: []domain.Item{
			{Name: "Knead"}, {Name: "Bake"},
		},
		Equipment: []domain.Item{
			{Name: "Oven"},
		},
	}

	cases := []struct {
		tier Tier
		want []string
	}{
		{TierBeginner, []string{"Dough", "Sauce", "Cheese"}},
		{TierIntermediate, []string{"Dough", "Sauce", "Cheese", "Knead", "Bake"}},
		{TierExpert, []string{"Dough", "Sauce", "Cheese", "Knead", "Bake", "Oven"}},
	}

	for _, tc := range cases {
		if got := CorrectOrder(product, tc.tier); !reflect.DeepEqual(got, tc.want) {
			t.Fatalf("CorrectOrder(%s) = %v; want %v", tc.tier, got, tc.want)
		}
	}
}
