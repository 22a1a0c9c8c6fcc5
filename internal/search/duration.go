package search

import "strings"

// ParseDuration converts a compact ISO-8601 duration such as PT1H2M30S into
// seconds. ok is false only for blank input; any other token yields a value,
// with unknown characters ignored and empty segments counted as zero.
func ParseDuration(token string) (seconds int, ok bool) {
	if strings.TrimSpace(token) == "" {
		return 0, false
	}

	total, current := 0, 0
	for _, ch := range token {
		switch {
		case ch >= '0' && ch <= '9':
			current = current*10 + int(ch-'0')
		case ch == 'H':
			total += current * 3600
			current = 0
		case ch == 'M':
			total += current * 60
			current = 0
		case ch == 'S':
			total += current
			current = 0
		}
	}
	return total, true
}
