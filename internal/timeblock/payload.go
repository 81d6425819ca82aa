package timeblock

import "sort"

// Person is immutable roster reference data used to label summaries.
type Person struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Color string `json:"color"`
}

// BlockView is a block rendered for the wire, with bounds as wall-clock
// strings in the calendar's zone.
type BlockView struct {
	ID       string `json:"id"`
	PersonID string `json:"personId"`
	Start    string `json:"start"`
	End      string `json:"end"`
}

// WeekPayload is the response object consumed by UI and API layers: the
// window bounds, the roster, the window's blocks, and the aggregated
// summaries.
type WeekPayload struct {
	WeekStart       string                `json:"weekStart"`
	WeekEnd         string                `json:"weekEnd"`
	Persons         []Person              `json:"persons"`
	Blocks          []BlockView           `json:"blocks"`
	DaySummaries    map[string]DaySummary `json:"daySummaries"`
	PersonSummaries map[string]float64    `json:"personSummaries"`
	WeekTotal       float64               `json:"weekTotal"`
}

// WeekBlocks filters the blocks belonging to the window: those whose start
// lies inside [Start, End). The result is ordered by ascending start, ties
// broken by id.
func WeekBlocks(blocks []Block, w WeekWindow) []Block {
	selected := make([]Block, 0, len(blocks))
	for _, block := range blocks {
		if w.Contains(block.Start) {
			selected = append(selected, block)
		}
	}
	sort.SliceStable(selected, func(i, j int) bool {
		if selected[i].Start.Equal(selected[j].Start) {
			return selected[i].ID < selected[j].ID
		}
		return selected[i].Start.Before(selected[j].Start)
	})
	return selected
}

// BuildWeekPayload composes the window, roster and aggregates into the
// response object. WeekEnd is inclusive: the window end minus one day. The
// composition has no validation side effects.
func BuildWeekPayload(persons []Person, blocks []Block, w WeekWindow, c Calendar, p Policy) WeekPayload {
	weekBlocks := WeekBlocks(blocks, w)
	summaries := DaySummaries(weekBlocks, w, c, p)

	views := make([]BlockView, 0, len(weekBlocks))
	for _, block := range weekBlocks {
		views = append(views, BlockView{
			ID:       block.ID,
			PersonID: block.PersonID,
			Start:    c.FormatDateTime(block.Start),
			End:      c.FormatDateTime(block.End),
		})
	}

	return WeekPayload{
		WeekStart:       c.DateKey(w.Start),
		WeekEnd:         c.DateKey(c.AddDays(w.End, -1)),
		Persons:         append([]Person(nil), persons...),
		Blocks:          views,
		DaySummaries:    summaries,
		PersonSummaries: PersonTotals(weekBlocks, w),
		WeekTotal:       round2(WeekTotal(summaries)),
	}
}
