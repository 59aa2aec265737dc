package grievance

// CategoryCount is one bar of the per-category chart.
type CategoryCount struct {
	Category Category `json:"category"`
	Label    string   `json:"label"`
	Count    int      `json:"count"`
}

// Stats is the aggregate view rendered on the official dashboard.
type Stats struct {
	Total      int             `json:"total"`
	Open       int             `json:"open"`
	InProgress int             `json:"in_progress"`
	Resolved   int             `json:"resolved"`
	ByStatus   map[Status]int  `json:"by_status"`
	ByCategory []CategoryCount `json:"by_category"`
	Recent     []Grievance     `json:"recent"`
}

// Summarize computes dashboard aggregates over records, which are expected
// most-recent-first. Resolved counts both resolved and closed grievances.
func Summarize(records []Grievance, recentLimit int) Stats {
	stats := Stats{
		Total:    len(records),
		ByStatus: make(map[Status]int, len(Statuses)),
	}

	perCategory := make(map[Category]int, len(Categories))
	for _, g := range records {
		stats.ByStatus[g.Status]++
		perCategory[g.Category]++
		switch g.Status {
		case StatusOpen:
			stats.Open++
		case StatusInProgress:
			stats.InProgress++
		case StatusResolved, StatusClosed:
			stats.Resolved++
		}
	}

	stats.ByCategory = make([]CategoryCount, 0, len(perCategory))
	for _, c := range Categories {
		if n := perCategory[c]; n > 0 {
			stats.ByCategory = append(stats.ByCategory, CategoryCount{Category: c, Label: c.Label(), Count: n})
		}
	}

	if recentLimit < 0 || recentLimit > len(records) {
		recentLimit = len(records)
	}
	stats.Recent = append([]Grievance(nil), records[:recentLimit]...)
	return stats
}
