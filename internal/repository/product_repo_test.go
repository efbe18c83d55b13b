package repository

import (
	"reflect"
	"testing"

	"build_a_bite/internal/domain"
)

func TestNormalizeItems(t *testing.T) {
	cases := []struct {
		name string
		raw  string
		want []domain.Item
	}{
		{
			name: "plain strings",
			raw:  `["Dough", "Sauce"]`,
			want: []domain.Item{{Name: "Dough"}, {Name: "Sauce"}},
		},
		{
			name: "proper objects",
			raw:  `[{"name":"Dough","description":"fresh"}]`,
			want: []domain.Item{{Name: "Dough", Description: "fresh"}},
		},
		{
			name: "legacy char-split objects",
			raw:  `[{"0":"D","1":"o","2":"u","3":"g","4":"h"}]`,
			want: []domain.Item{{Name: "Dough"}},
		},
		{
			name: "mixed shapes",
			raw:  `["Sauce", {"name":"Cheese","description":""}, {"0":"O","1":"v","2":"e","3":"n"}]`,
			want: []domain.Item{{Name: "Sauce"}, {Name: "Cheese"}, {Name: "Oven"}},
		},
		{
			name: "empty input",
			raw:  ``,
			want: []domain.Item{},
		},
		{
			name: "empty array",
			raw:  `[]`,
			want: []domain.Item{},
		},
	}

	for _, tc := range cases {
		got, err := NormalizeItems([]byte(tc.raw))
		if err != nil {
			t.Fatalf("%s: NormalizeItems: %v", tc.name, err)
		}
		if !reflect.DeepEqual(got, tc.want) {
			t.Fatalf("%s: NormalizeItems = %v; want %v", tc.name, got, tc.want)
		}
	}
}

func TestNormalizeItemsRejectsGarbage(t *testing.T) {
	if _, err := NormalizeItems([]byte(`{"not":"an array"}`)); err == nil {
		t.Fatalf("expected error for non-array input")
	}
}
