// Package suggest ranks near-miss spellings for "did you mean" hints.
package suggest

import (
	"sort"
	"strings"

	"github.com/agnivade/levenshtein"
)

// Closest returns up to max candidates within edit distance of input,
// nearest first. Comparison is case-insensitive.
func Closest(input string, candidates []string, max int) []string {
	input = strings.ToLower(strings.TrimSpace(input))
	if input == "" || max <= 0 {
		return nil
	}

	type match struct {
		candidate string
		dist      int
	}
	var matches []match
	seen := make(map[string]bool)

	for _, c := range candidates {
		if seen[c] {
			continue
		}
		seen[c] = true

		lower := strings.ToLower(c)
		dist := levenshtein.ComputeDistance(input, lower)
		if strings.HasPrefix(lower, input) && len(input) >= 3 {
			dist = 0
		}
		if dist > limit(len(lower)) {
			continue
		}
		matches = append(matches, match{candidate: c, dist: dist})
	}

	sort.SliceStable(matches, func(i, j int) bool {
		if matches[i].dist == matches[j].dist {
			return matches[i].candidate < matches[j].candidate
		}
		return matches[i].dist < matches[j].dist
	})

	var out []string
	for _, m := range matches {
		out = append(out, m.candidate)
		if len(out) == max {
			break
		}
	}
	return out
}

func limit(length int) int {
	switch {
	case length <= 4:
		return 1
	case length <= 8:
		return 2
	default:
		return 3
	}
}
