package learning

import "sort"

// Counts aggregates entries by display status across both logs.
type Counts struct {
	Pending  int `json:"pending"`
	Approved int `json:"approved"`
	Rejected int `json:"rejected"`
	Promoted int `json:"promoted"`
}

// Total is the number of counted entries.
func (c Counts) Total() int {
	return c.Pending + c.Approved + c.Rejected + c.Promoted
}

// Overview is the dashboard view-model: full counts plus the most recent
// entries capped at a display limit.
type Overview struct {
	Counts Counts   `json:"counts"`
	All    []*Entry `json:"all"`
}

// CountByStatus tallies entries by display status. Legacy entries count as
// approved (they were live skills before status tracking existed).
func CountByStatus(entries []*Entry) Counts {
	var c Counts
	for _, e := range entries {
		switch e.DisplayStatus() {
		case StatusPending:
			c.Pending++
		case StatusApproved:
			c.Approved++
		case StatusRejected:
			c.Rejected++
		case StatusPromoted:
			c.Promoted++
		}
	}
	return c
}

// BuildOverview computes counts over all entries and returns the newest
// limit entries. Counts ignore the cap. Entries without a parseable
// timestamp sort last; the sort is stable so log order breaks ties.
func BuildOverview(entries []*Entry, limit int) *Overview {
	sorted := make([]*Entry, len(entries))
	copy(sorted, entries)

	sort.SliceStable(sorted, func(i, j int) bool {
		ti, oki := sorted[i].Time()
		tj, okj := sorted[j].Time()
		if oki != okj {
			return oki
		}
		if !oki {
			return false
		}
		return ti.After(tj)
	})

	if limit > 0 && len(sorted) > limit {
		sorted = sorted[:limit]
	}

	return &Overview{
		Counts: CountByStatus(entries),
		All:    sorted,
	}
}

// Overview loads both logs and builds the dashboard view-model.
func (s *Store) Overview(limit int) (*Overview, error) {
	all, err := s.Union()
	if err != nil {
		return nil, err
	}
	return BuildOverview(all, limit), nil
}
