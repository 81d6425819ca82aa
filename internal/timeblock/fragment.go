package timeblock

import "time"

// Block is the atomic schedulable unit: one person's contiguous interval.
// End is strictly after Start.
type Block struct {
	ID       string
	PersonID string
	Start    time.Time
	End      time.Time
}

// DurationHours returns the block's full span in hours.
func (b Block) DurationHours() float64 {
	return b.End.Sub(b.Start).Hours()
}

// Overlaps reports whether two half-open intervals [Start, End) intersect.
func (b Block) Overlaps(other Block) bool {
	return b.Start.Before(other.End) && other.Start.Before(b.End)
}

// DayFragment is the portion of a block falling on one calendar day, with
// the hours inside each configured sub-period.
type DayFragment struct {
	Date  string
	Total float64
	Early float64
	After float64
}

// Fragments splits a block into one fragment per calendar day it touches.
// A block ending exactly on a day boundary contributes nothing to the next
// day, and empty intersections are dropped rather than emitted as zeros.
// Sub-period hours are measured against bands anchored to the fragment's own
// day; the after band runs past midnight but stays attributed to the day it
// starts on.
func Fragments(b Block, c Calendar, p Policy) []DayFragment {
	if !b.Start.Before(b.End) {
		return nil
	}

	var fragments []DayFragment
	cursor := c.StartOfDay(b.Start)
	finalDay := c.StartOfDay(b.End.Add(-time.Nanosecond))

	for !cursor.After(finalDay) {
		dayStart := cursor
		dayEnd := c.AddDays(dayStart, 1)

		segStart := laterOf(b.Start, dayStart)
		segEnd := earlierOf(b.End, dayEnd)
		if segEnd.After(segStart) {
			frag := DayFragment{
				Date:  c.DateKey(dayStart),
				Total: segEnd.Sub(segStart).Hours(),
			}
			if p.EarlySplit {
				earlyEnd := c.AtHour(dayStart, p.EarlyEndHour)
				afterEnd := c.AtHour(dayStart, p.AfterEndHour)
				frag.Early = clampedHours(laterOf(segStart, dayStart), earlierOf(segEnd, earlyEnd))
				frag.After = clampedHours(laterOf(segStart, earlyEnd), earlierOf(segEnd, afterEnd))
			}
			fragments = append(fragments, frag)
		}

		cursor = dayEnd
	}

	return fragments
}

func clampedHours(start, end time.Time) float64 {
	if !end.After(start) {
		return 0
	}
	return end.Sub(start).Hours()
}

func laterOf(a, b time.Time) time.Time {
	if a.After(b) {
		return a
	}
	return b
}

func earlierOf(a, b time.Time) time.Time {
	if a.Before(b) {
		return a
	}
	return b
}
