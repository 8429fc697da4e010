// Package slug normalizes problem identifiers.
package slug

import (
	"regexp"
	"strings"
)

// problemPath captures the segment after "problems/" up to the next slash,
// as found in links like https://leetcode.com/problems/two-sum/description/.
var problemPath = regexp.MustCompile(`problems/([^/]+)/`)

// Resolve turns a user reference (bare slug or problem URL) into a slug.
// Input without a recognised wrapper is returned trimmed and lowercased.
func Resolve(raw string) string {
	s := strings.TrimSpace(raw)
	if m := problemPath.FindStringSubmatch(s); m != nil {
		s = m[1]
	}
	return strings.ToLower(s)
}

// Tokens splits a slug into its dash-separated parts.
func Tokens(s string) []string {
	return strings.Split(s, "-")
}

// Overlap counts the distinct tokens shared by a and b.
func Overlap(a, b string) int {
	set := make(map[string]struct{})
	for _, t := range Tokens(a) {
		set[t] = struct{}{}
	}
	n := 0
	for _, t := range Tokens(b) {
		if _, ok := set[t]; ok {
			n++
			delete(set, t)
		}
	}
	return n
}
