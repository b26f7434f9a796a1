package exercise

import (
	"strings"

	"github.com/rkaasik/sonavara/app/db"
)

// normalizeAnswer trims, collapses internal whitespace and case-folds.
// Comparison is exact after that; no fuzzy or accent-insensitive match.
func normalizeAnswer(s string) string {
	return strings.ToLower(strings.Join(strings.Fields(s), " "))
}

// Evaluate compares a submitted answer against the item's expected
// value. Pure: persisting the attempt is the caller's business.
func Evaluate(item db.ExerciseItem, index int, submitted string) db.Attempt {
	return db.Attempt{
		Index:     index,
		Submitted: submitted,
		Expected:  item.Expected,
		Correct:   normalizeAnswer(submitted) == normalizeAnswer(item.Expected),
	}
}
