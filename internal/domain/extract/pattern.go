package extract

import "regexp"

// Pick selects which of several matches on a line a Pattern reports.
type Pick int

const (
	// First reports the leftmost match.
	First Pick = iota
	// Last reports the rightmost match. Ratings use this: rating tables put
	// the score in a trailing column, after any numbers in the title.
	Last
)

// Matcher finds one value in a source line.
type Matcher interface {
	Match(line string) (string, bool)
}

// Pattern is a regexp-backed Matcher. When the expression has a capture
// group, the first group is reported instead of the whole match.
type Pattern struct {
	re   *regexp.Regexp
	pick Pick
}

// NewPattern compiles expr. It panics on an invalid expression, like
// regexp.MustCompile; patterns are program constants.
func NewPattern(expr string, pick Pick) Pattern {
	return Pattern{re: regexp.MustCompile(expr), pick: pick}
}

// Match implements Matcher.
func (p Pattern) Match(line string) (string, bool) {
	var m []string
	switch p.pick {
	case Last:
		all := p.re.FindAllStringSubmatch(line, -1)
		if len(all) == 0 {
			return "", false
		}
		m = all[len(all)-1]
	default:
		m = p.re.FindStringSubmatch(line)
		if m == nil {
			return "", false
		}
	}
	if len(m) > 1 {
		return m[1], true
	}
	return m[0], true
}

// Default heuristics.
var (
	// SlugPattern: two or more lowercase alphanumeric tokens joined by dashes.
	SlugPattern = NewPattern(`[a-z0-9]+(?:-[a-z0-9]+)+`, First)
	// RatingPattern: 3-4 digits, a dot, one or more digits, e.g. 1680.8242.
	RatingPattern = NewPattern(`\d{3,4}\.\d+`, Last)
	// IDPattern: the first standalone run of 1-5 digits.
	IDPattern = NewPattern(`\b(\d{1,5})\b`, First)
)
