package search

import "strings"

// MatchTitle reports whether title satisfies the keyword query, case-insensitively.
//
// One or two query words must all appear in the title. With three or more
// words the title matches if it contains the whole query or more than two
// thirds of the words (floor(n*2/3)+1). A blank query falls back to a
// substring test of the trimmed query. Words match as substrings, not tokens.
func MatchTitle(title, query string) bool {
	title = strings.ToLower(title)
	query = strings.ToLower(strings.TrimSpace(query))
	words := strings.Fields(query)

	switch n := len(words); {
	case n == 0:
		return strings.Contains(title, query)
	case n <= 2:
		for _, w := range words {
			if !strings.Contains(title, w) {
				return false
			}
		}
		return true
	default:
		if strings.Contains(title, query) {
			return true
		}
		matched := 0
		for _, w := range words {
			if strings.Contains(title, w) {
				matched++
			}
		}
		return matched >= n*2/3+1
	}
}
