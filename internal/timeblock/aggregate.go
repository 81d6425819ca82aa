package timeblock

import "math"

// DaySummary aggregates every fragment landing on one calendar day. Hour
// values are rounded to two decimals at emission; Blocks lists the ids of
// the contributing blocks in fold order.
type DaySummary struct {
	Total  float64  `json:"total"`
	Early  float64  `json:"early"`
	After  float64  `json:"after"`
	Blocks []string `json:"blocks"`
}

// DaySummaries folds blocks into a per-day summary map keyed by date. Every
// day in the window is pre-seeded at zero, so a key is present even when no
// block touches it. Fragments outside the window (for example the Saturday
// tail of a Friday night block in a 5-day window) are discarded. Totals
// accumulate unrounded and are rounded once at the end.
func DaySummaries(blocks []Block, w WeekWindow, c Calendar, p Policy) map[string]DaySummary {
	summaries := make(map[string]DaySummary, w.Days)
	for _, key := range w.DayKeys(c) {
		summaries[key] = DaySummary{Blocks: []string{}}
	}

	for _, block := range blocks {
		for _, frag := range Fragments(block, c, p) {
			summary, ok := summaries[frag.Date]
			if !ok {
				continue
			}
			summary.Total += frag.Total
			summary.Early += frag.Early
			summary.After += frag.After
			summary.Blocks = append(summary.Blocks, block.ID)
			summaries[frag.Date] = summary
		}
	}

	for key, summary := range summaries {
		summary.Total = round2(summary.Total)
		summary.Early = round2(summary.Early)
		summary.After = round2(summary.After)
		summaries[key] = summary
	}

	return summaries
}

// PersonTotals sums hours per person for blocks whose start lies inside the
// window. A block is attributed to the week its start falls in, counting its
// full duration even when it spans past the window end.
func PersonTotals(blocks []Block, w WeekWindow) map[string]float64 {
	totals := make(map[string]float64)
	for _, block := range blocks {
		if !w.Contains(block.Start) {
			continue
		}
		totals[block.PersonID] += block.DurationHours()
	}
	for id, total := range totals {
		totals[id] = round2(total)
	}
	return totals
}

// WeekTotal sums the day totals of a summary map.
func WeekTotal(summaries map[string]DaySummary) float64 {
	var total float64
	for _, summary := range summaries {
		total += summary.Total
	}
	return total
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
