package curation

import "sort"

// DefaultMaxItems is the default shortlist size.
const DefaultMaxItems = 3

// SelectOptions configures shortlist selection.
type SelectOptions struct {
	// MinScore filters out candidates scoring below it.
	MinScore float64

	// MaxItems bounds the shortlist length (default 3).
	MaxItems int

	// PreferDiversity includes candidates from at least two sources
	// whenever at least two sources have qualifying candidates.
	PreferDiversity bool

	// EarlyStopEnabled returns the top MaxItems from a single source
	// when that source alone can fill the quota, bypassing diversity.
	EarlyStopEnabled bool
}

// DefaultSelectOptions returns the default selection policy.
func DefaultSelectOptions() SelectOptions {
	return SelectOptions{
		MinScore:         0,
		MaxItems:         DefaultMaxItems,
		PreferDiversity:  true,
		EarlyStopEnabled: false,
	}
}

// SelectTop reduces scored candidates to the final ranked shortlist.
// The result is never longer than MaxItems and is always sorted by
// score descending. Degenerate input yields an empty list, never an
// error.
func SelectTop(scored []Scored, opts SelectOptions) []Scored {
	maxItems := opts.MaxItems
	if maxItems <= 0 {
		maxItems = DefaultMaxItems
	}

	qualifying := make([]Scored, 0, len(scored))
	for _, s := range scored {
		if s.Score.Value >= opts.MinScore {
			qualifying = append(qualifying, s)
		}
	}
	if len(qualifying) == 0 {
		return []Scored{}
	}

	sortByScore(qualifying)

	bySource := make(map[Source][]Scored)
	for _, s := range qualifying {
		bySource[s.Source] = append(bySource[s.Source], s)
	}

	if opts.EarlyStopEnabled {
		if picked, ok := earlyStop(qualifying, bySource, maxItems); ok {
			return picked
		}
	}

	if opts.PreferDiversity && len(bySource) > 1 && maxItems > 1 {
		return diversify(qualifying, maxItems)
	}

	return truncate(qualifying, maxItems)
}

// earlyStop returns the top maxItems from a single source when one
// source alone has enough qualifying candidates. When several sources
// qualify, the one holding the best-scoring candidate wins. Reports
// false when no source can fill the quota.
func earlyStop(qualifying []Scored, bySource map[Source][]Scored, maxItems int) ([]Scored, bool) {
	// qualifying is sorted, so the first candidate whose source has
	// enough entries identifies the strongest eligible source.
	for _, s := range qualifying {
		if group := bySource[s.Source]; len(group) >= maxItems {
			return truncate(group, maxItems), true
		}
	}
	return nil, false
}

// diversify selects by score while reserving one slot for a second
// source: the global best is taken first, then the best candidate from
// a different source, then the remaining slots fill purely by score.
func diversify(qualifying []Scored, maxItems int) []Scored {
	picked := make([]Scored, 0, maxItems)
	taken := make(map[string]bool, maxItems)

	best := qualifying[0]
	picked = append(picked, best)
	taken[best.URL] = true

	for _, s := range qualifying {
		if s.Source != best.Source && !taken[s.URL] {
			picked = append(picked, s)
			taken[s.URL] = true
			break
		}
	}

	for _, s := range qualifying {
		if len(picked) >= maxItems {
			break
		}
		if !taken[s.URL] {
			picked = append(picked, s)
			taken[s.URL] = true
		}
	}

	sortByScore(picked)
	return picked
}

func truncate(sorted []Scored, maxItems int) []Scored {
	if len(sorted) > maxItems {
		return sorted[:maxItems]
	}
	return sorted
}

// sortByScore orders by score descending, breaking ties by URL for
// deterministic output.
func sortByScore(scored []Scored) {
	sort.SliceStable(scored, func(i, j int) bool {
		if scored[i].Score.Value != scored[j].Score.Value {
			return scored[i].Score.Value > scored[j].Score.Value
		}
		return scored[i].URL < scored[j].URL
	})
}
