package timeblock

import "time"

// WeekWindow is the half-open instant range [Start, End) covering one
// scheduling week, aligned to a Monday 00:00 in the calendar's zone.
type WeekWindow struct {
	Start time.Time
	End   time.Time
	Days  int
}

// WindowFor builds the window of the given length starting at the Monday of
// the week containing t.
func (c Calendar) WindowFor(t time.Time, days int) WeekWindow {
	monday := c.WeekStart(t)
	return WeekWindow{
		Start: monday,
		End:   c.AddDays(monday, days),
		Days:  days,
	}
}

// Contains reports whether the instant falls inside the window.
func (w WeekWindow) Contains(t time.Time) bool {
	return !t.Before(w.Start) && t.Before(w.End)
}

// DayStarts enumerates the midnight instants of every day in the window, in
// window order.
func (w WeekWindow) DayStarts(c Calendar) []time.Time {
	starts := make([]time.Time, 0, w.Days)
	for i := 0; i < w.Days; i++ {
		starts = append(starts, c.AddDays(w.Start, i))
	}
	return starts
}

// DayKeys enumerates the date keys of every day in the window, in window
// order. Downstream consumers index summaries by these keys.
func (w WeekWindow) DayKeys(c Calendar) []string {
	starts := w.DayStarts(c)
	keys := make([]string, 0, len(starts))
	for _, start := range starts {
		keys = append(keys, c.DateKey(start))
	}
	return keys
}
