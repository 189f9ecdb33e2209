package classifier

import "strings"

// DetectCategory scores lower-cased text against the keyword table.
// Keywords match as plain substrings, so "billing" counts for "bill".
func DetectCategory(text string) Category {
	best := CategoryGeneral
	top := 0
	for _, row := range categoryTable {
		score := 0
		for _, kw := range row.keywords {
			if strings.Contains(text, kw) {
				score++
			}
		}
		// strict > keeps the earliest category on ties
		if score > top {
			top = score
			best = row.category
		}
	}
	return best
}
