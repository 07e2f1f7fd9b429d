package models

// LegFilter narrows leg-fact queries.
type LegFilter struct {
	Origin      string `form:"origin"`
	Destination string `form:"destination"`
	OrderBy     string `form:"orderBy"` // load_factor, rev_per_pax, revenue (default)
	Limit       int    `form:"limit"`
}

// RankingRequest selects a top/bottom-N leg ranking.
type RankingRequest struct {
	Metric     string `form:"metric"` // load_factor or rev_per_pax
	N          int    `form:"n"`
	Descending bool   `form:"descending"`
}
