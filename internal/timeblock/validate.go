package timeblock

import (
	"fmt"
	"strconv"
	"time"
)

// BlockInput is a candidate block as submitted by a caller, with the time
// bounds still in their raw wire form. ID is empty for creations and set to
// the stored block's id for updates, which excludes that block from overlap
// and capacity checks.
type BlockInput struct {
	ID       string
	PersonID string
	Start    string
	End      string
}

// Validate runs the policy pipeline for a candidate block against an
// existing snapshot and returns the violation messages in discovery order.
// An empty result means the candidate is accepted. Structural checks
// short-circuit: once one fails, later checks are skipped because they
// assume well-formed inputs. Capacity is evaluated on the hypothetical
// merged state and reports only the first violating day; the weekly cap is
// checked last and may append a second message.
func Validate(candidate BlockInput, existing []Block, w WeekWindow, c Calendar, p Policy) []string {
	var errors []string

	start, startErr := c.ParseDateTime(candidate.Start)
	end, endErr := c.ParseDateTime(candidate.End)
	if startErr != nil || endErr != nil {
		return append(errors, "Start and end must be valid datetimes.")
	}

	if !start.Before(end) {
		return append(errors, "Start must be before end.")
	}

	if !w.Contains(start) {
		return append(errors, fmt.Sprintf("Start must be inside the selected week (%s).", windowLabel(w)))
	}

	if p.MaxBlockHours > 0 {
		maxEnd := start.Add(hoursToDuration(p.MaxBlockHours))
		if end.After(maxEnd) {
			return append(errors, fmt.Sprintf("Blocks may not exceed %s hours.", formatHours(p.MaxBlockHours)))
		}
	}

	if p.NextDayLimitHour > 0 {
		limit := c.AtHour(c.AddDays(c.StartOfDay(start), 1), p.NextDayLimitHour)
		if end.After(limit) {
			return append(errors, fmt.Sprintf("Blocks may not extend past %02d:00 of the following day.", p.NextDayLimitHour))
		}
	}

	candidateBlock := Block{ID: candidate.ID, PersonID: candidate.PersonID, Start: start, End: end}

	others := make([]Block, 0, len(existing))
	for _, block := range existing {
		if block.ID == candidate.ID {
			continue
		}
		others = append(others, block)
	}

	for _, block := range others {
		if block.PersonID != candidateBlock.PersonID {
			continue
		}
		if candidateBlock.Overlaps(block) {
			return append(errors, "This block overlaps with another for the same person.")
		}
	}

	merged := append(append([]Block(nil), others...), candidateBlock)
	summaries := DaySummaries(merged, w, c, p)

	capHit := false
	for _, dayStart := range w.DayStarts(c) {
		summary := summaries[c.DateKey(dayStart)]
		if summary.Total-p.Epsilon > p.DayCapHours {
			errors = append(errors, fmt.Sprintf("This change would exceed %sh total for %s.", formatHours(p.DayCapHours), c.WeekdayName(dayStart)))
			capHit = true
			break
		}
		if p.EarlyCapHours > 0 && summary.Early-p.Epsilon > p.EarlyCapHours {
			errors = append(errors, fmt.Sprintf("This change would make more than %sh before %02d:00 on %s.", formatHours(p.EarlyCapHours), p.EarlyEndHour, c.WeekdayName(dayStart)))
			capHit = true
			break
		}
	}

	if !capHit && p.WeekendCapHours > 0 && w.Days >= 2 {
		starts := w.DayStarts(c)
		weekend := summaries[c.DateKey(starts[len(starts)-2])].Total + summaries[c.DateKey(starts[len(starts)-1])].Total
		if weekend-p.Epsilon > p.WeekendCapHours {
			errors = append(errors, fmt.Sprintf("This change would exceed %sh total for the weekend.", formatHours(p.WeekendCapHours)))
		}
	}

	if WeekTotal(summaries)-p.Epsilon > p.WeekCapHours {
		errors = append(errors, fmt.Sprintf("This change would exceed %sh for the week.", formatHours(p.WeekCapHours)))
	}

	return errors
}

func windowLabel(w WeekWindow) string {
	if w.Days == 7 {
		return "Mon–Sun"
	}
	return "Mon–Fri"
}

func formatHours(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func hoursToDuration(hours float64) time.Duration {
	return time.Duration(hours * float64(time.Hour))
}
