package analysis

import "strings"

// CategoryRule is a predicate over a free-text category name. Rules are
// pluggable so a stricter tagging scheme can later replace substring
// matching without touching the surrounding guidance logic.
type CategoryRule func(category string) bool

// MatchAnyKeyword builds a rule that reports true when the lower-cased
// category name contains any of the given keywords.
func MatchAnyKeyword(keywords ...string) CategoryRule {
	lowered := make([]string, len(keywords))
	for i, kw := range keywords {
		lowered[i] = strings.ToLower(kw)
	}
	return func(category string) bool {
		c := strings.ToLower(category)
		for _, kw := range lowered {
			if strings.Contains(c, kw) {
				return true
			}
		}
		return false
	}
}

// Default rules for the spending heuristics. Matching is substring-based on
// lower-cased names, not a controlled vocabulary.
var (
	HousingRule = MatchAnyKeyword("housing", "rent")
	FoodRule    = MatchAnyKeyword("food", "groceries")
)

// findCategory returns the first breakdown entry matching the rule, in
// breakdown order. Multiple categories can match; only the first is used.
func findCategory(breakdown []CategorySpending, rule CategoryRule) (CategorySpending, bool) {
	for _, c := range breakdown {
		if rule(c.Category) {
			return c, true
		}
	}
	return CategorySpending{}, false
}
