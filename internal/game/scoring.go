package game

import "math"

// Result of evaluating a submitted step sequence.
type Result struct {
	Score    int `json:"score"`
	Accuracy int `json:"accuracy"` // 0-100, rounded
}

// Evaluate compares the submitted step order against the correct order
// position by position. This is not a subsequence match: an early wrong
// step shifts every later pick, so individually correct but displaced
// steps score nothing.
func Evaluate(submitted, correct []string) Result {
	score := 0
	n := len(submitted)
	if len(correct) < n {
		n = len(correct)
	}
	for i := 0; i < n; i++ {
		if submitted[i] == correct[i] {
			score++
		}
	}

	if len(correct) == 0 {
		return Result{Score: score, Accuracy: 0}
	}

	accuracy := int(math.Round(float64(score) / float64(len(correct)) * 100))
	return Result{Score: score, Accuracy: accuracy}
}
