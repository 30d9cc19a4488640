package fuzzy

import "sort"

// Blend weights: the match quality dominates, frecency breaks the rest.
const (
	matchWeightFrac    = 0.7
	frecencyWeightFrac = 0.3
)

// Candidate is one rankable item. Path disambiguates equal names and
// gives the matcher a second surface to score against.
type Candidate struct {
	Name     string
	Path     string
	Frecency float64
}

// Ranked is a candidate with its scores.
type Ranked struct {
	Candidate
	MatchScore int
	Blended    float64
}

// Rank orders candidates by blended score, descending. The match score
// of a candidate is the better of matching against its name and its
// path. Candidates with no subsequence match are excluded. An empty
// query returns every candidate ordered by frecency alone. Ties break
// by name ascending, then path ascending, so the order is total.
func Rank(query string, candidates []Candidate) []Ranked {
	if query == "" {
		return rankByFrecency(candidates)
	}

	matched := make([]Ranked, 0, len(candidates))
	for _, c := range candidates {
		score := Match(query, c.Name)
		if pathScore := Match(query, c.Path); pathScore > score {
			score = pathScore
		}
		if score == 0 {
			continue
		}
		matched = append(matched, Ranked{Candidate: c, MatchScore: score})
	}

	if len(matched) == 0 {
		return matched
	}

	minMatch, maxMatch := matched[0].MatchScore, matched[0].MatchScore
	minFrec, maxFrec := matched[0].Frecency, matched[0].Frecency
	for _, r := range matched[1:] {
		if r.MatchScore < minMatch {
			minMatch = r.MatchScore
		}
		if r.MatchScore > maxMatch {
			maxMatch = r.MatchScore
		}
		if r.Frecency < minFrec {
			minFrec = r.Frecency
		}
		if r.Frecency > maxFrec {
			maxFrec = r.Frecency
		}
	}

	for i := range matched {
		m := normalize(float64(matched[i].MatchScore), float64(minMatch), float64(maxMatch))
		f := normalize(matched[i].Frecency, minFrec, maxFrec)
		matched[i].Blended = matchWeightFrac*m + frecencyWeightFrac*f
	}

	sort.Slice(matched, func(i, j int) bool {
		if matched[i].Blended != matched[j].Blended {
			return matched[i].Blended > matched[j].Blended
		}
		if matched[i].Name != matched[j].Name {
			return matched[i].Name < matched[j].Name
		}
		return matched[i].Path < matched[j].Path
	})
	return matched
}

func rankByFrecency(candidates []Candidate) []Ranked {
	out := make([]Ranked, len(candidates))
	for i, c := range candidates {
		out[i] = Ranked{Candidate: c, Blended: c.Frecency}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Frecency != out[j].Frecency {
			return out[i].Frecency > out[j].Frecency
		}
		if out[i].Name != out[j].Name {
			return out[i].Name < out[j].Name
		}
		return out[i].Path < out[j].Path
	})
	return out
}

// normalize maps v into [0, 1] across the candidate set. A degenerate
// range maps to 1 so the component drops out of the comparison.
func normalize(v, min, max float64) float64 {
	if max == min {
		return 1.0
	}
	return (v - min) / (max - min)
}
