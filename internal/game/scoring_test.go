package game

import "testing"

func TestEvaluate(t *testing.T) {
	cases := []struct {
		name      string
		submitted []string
		correct   []string
		score     int
		accuracy  int
	}{
		{
			name:      "perfect run",
			submitted: []string{"A", "B", "C", "D"},
			correct:   []string{"A", "B", "C", "D"},
			score:     4,
			accuracy:  100,
		},
		{
			name:      "derangement scores zero",
			submitted: []string{"B", "C", "A"},
			correct:   []string{"A", "B", "C"},
			score:     0,
			accuracy:  0,
		},
		{
			name:      "shifted picks only count positionally",
			submitted: []string{"Dough", "Cheese", "Sauce"},
			correct:   []string{"Dough", "Sauce", "Cheese"},
			score:     1,
			accuracy:  33,
		},
		{
			name:      "empty submission",
			submitted: nil,
			correct:   []string{"A", "B", "C"},
			score:     0,
			accuracy:  0,
		},
		{
			name:      "empty correct order has no division by zero",
			submitted: []string{"A", "B"},
			correct:   nil,
			score:     0,
			accuracy:  0,
		},
		{
			name:      "submission longer than correct order",
			submitted: []string{"A", "B", "C", "X", "Y"},
			correct:   []string{"A", "B", "C"},
			score:     3,
			accuracy:  100,
		},
		{
			name:      "partial submission",
			submitted: []string{"A", "B"},
			correct:   []string{"A", "B", "C", "D"},
			score:     2,
			accuracy:  50,
		},
	}

	for _, tc := range cases {
		got := Evaluate(tc.submitted, tc.correct)
		if got.Score != tc.score || got.Accuracy != tc.accuracy {
			t.Fatalf("%s: Evaluate = {score:%d accuracy:%d}; want {score:%d accuracy:%d}",
				tc.name, got.Score, got.Accuracy, tc.score, tc.accuracy)
		}
	}
}

func TestEvaluateRounding(t *testing.T) {
	// 2 of 3 correct = 66.67%, must round to 67
	got := Evaluate([]string{"A", "B", "X"}, []string{"A", "B", "C"})
	if got.Accuracy != 67 {
		t.Fatalf("accuracy = %d; want 67", got.Accuracy)
	}
}
