// Package frecency ranks projects by combining access frequency and
// recency, in the style of Firefox's history ranking.
package frecency

import (
	"math"
	"time"
)

// Recency weights by age bucket. The curve decays gently so recently
// used projects stay on top without older ones being forgotten.
const (
	weightWithin4Days  = 100.0
	weightWithin2Weeks = 70.0
	weightWithinMonth  = 50.0
	weightWithin3Mo    = 30.0
	weightOlder        = 10.0
)

// Score computes the frecency score from stored fields only:
//
//	ln(access_count + 1) * 10  +  recency bucket
//
// A nil lastAccessed contributes no recency. The result is a pure
// function of (accessCount, lastAccessed, now) and is recomputed rather
// than trusted from disk.
func Score(accessCount int, lastAccessed *time.Time, now time.Time) float64 {
	frequency := math.Log(float64(accessCount)+1) * 10.0

	recency := 0.0
	if lastAccessed != nil {
		recency = recencyWeight(now.Sub(*lastAccessed))
	}

	return frequency + recency
}

// recencyWeight buckets an age into its weight.
func recencyWeight(age time.Duration) float64 {
	days := int(age.Hours() / 24)
	switch {
	case days <= 4:
		return weightWithin4Days
	case days <= 14:
		return weightWithin2Weeks
	case days <= 31:
		return weightWithinMonth
	case days <= 90:
		return weightWithin3Mo
	default:
		return weightOlder
	}
}
