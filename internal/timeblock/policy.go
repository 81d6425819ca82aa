package timeblock

// Policy collects the labor limits enforced by the validator. The deployed
// variants differ only in these values, so policy differences stay
// configuration instead of code forks. A zero value disables the optional
// caps.
type Policy struct {
	// WindowDays is the scheduling window length: 5 for a Mon-Fri week,
	// 7 for a full calendar week.
	WindowDays int

	// DayCapHours is the maximum total per person-day. Always enforced.
	DayCapHours float64

	// WeekCapHours is the maximum total across the whole window.
	WeekCapHours float64

	// EarlySplit enables the early/after sub-period breakdown. Early covers
	// [00:00, EarlyEndHour); after covers [EarlyEndHour, AfterEndHour) where
	// hours past 24 extend into the next calendar day but remain attributed
	// to the day the band starts on.
	EarlySplit   bool
	EarlyEndHour int
	AfterEndHour int

	// EarlyCapHours caps the early sub-period per day. Zero disables.
	EarlyCapHours float64

	// WeekendCapHours caps the summed total of the window's last two days.
	// Only meaningful for 7-day windows. Zero disables.
	WeekendCapHours float64

	// MaxBlockHours is a flat cap on a single block's span. Zero disables.
	MaxBlockHours float64

	// NextDayLimitHour forbids a block from extending past this wall-clock
	// hour of the day after its start (1 means 01:00). Zero disables.
	NextDayLimitHour int

	// Epsilon is subtracted from accumulated totals before cap comparisons
	// so summation error cannot reject exactly-at-cap values.
	Epsilon float64
}

// DefaultPolicy is the standard Mon-Fri configuration: 8h per day, 40h per
// week, early/after split at 17:00, blocks may run until 01:00 of the next
// day.
func DefaultPolicy() Policy {
	return Policy{
		WindowDays:       5,
		DayCapHours:      8,
		WeekCapHours:     40,
		EarlySplit:       true,
		EarlyEndHour:     17,
		AfterEndHour:     25,
		NextDayLimitHour: 1,
		Epsilon:          1e-9,
	}
}
