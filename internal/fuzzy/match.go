// Package fuzzy implements the subsequence matcher and the
// frecency-blended ranker used to order project candidates.
package fuzzy

import (
	"strings"
	"unicode"
)

// Scoring weights. Matching is case-insensitive; the bonuses reward the
// alignments a human eye considers "better": runs of consecutive
// characters, hits on word boundaries, and case-preserving hits.
const (
	matchWeight      = 16
	consecutiveBonus = 8
	boundaryBonus    = 8
	caseBonus        = 4
	gapPenalty       = 1
	maxGapPenalty    = 8
)

// Match scores query as a subsequence of target. Zero means no match.
// Higher is better; an empty query scores zero.
func Match(query, target string) int {
	if query == "" {
		return 0
	}

	q := []rune(query)
	tr := []rune(target)
	qLower := []rune(strings.ToLower(query))
	tLower := []rune(strings.ToLower(target))

	score := 0
	prev := -2 // index of the previous match; -2 so index 0 is not "consecutive"
	ti := 0

	for qi := range q {
		found := -1
		for ; ti < len(tr); ti++ {
			if tLower[ti] == qLower[qi] {
				found = ti
				break
			}
		}
		if found < 0 {
			return 0
		}

		score += matchWeight
		if tr[found] == q[qi] && unicode.IsUpper(q[qi]) {
			score += caseBonus
		}
		if found == prev+1 {
			score += consecutiveBonus
		} else if prev >= 0 {
			gap := (found - prev - 1) * gapPenalty
			if gap > maxGapPenalty {
				gap = maxGapPenalty
			}
			score -= gap
		}
		if isBoundary(tr, found) {
			score += boundaryBonus
		}

		prev = found
		ti = found + 1
	}

	if score < 1 {
		score = 1
	}
	return score
}

// isBoundary reports whether position i starts a word: the start of the
// string, or right after a path or word separator.
func isBoundary(target []rune, i int) bool {
	if i == 0 {
		return true
	}
	switch target[i-1] {
	case '/', '\\', '_', '-', '.', ' ':
		return true
	}
	return false
}
