package persistence

import "time"

// Person is a roster entry: reference data that labels blocks and summaries.
type Person struct {
	ID    string
	Name  string
	Color string
}

// Block is a stored worktime interval belonging to one person.
type Block struct {
	ID        string
	PersonID  string
	Start     time.Time
	End       time.Time
	CreatedAt time.Time
	UpdatedAt time.Time
}

// HistoryEntry records one mutation of the calendar for the activity feed.
type HistoryEntry struct {
	ID             string
	Timestamp      time.Time
	ActorPersonID  string
	TargetPersonID string
	Action         string
	Details        string
}

// Session is an authenticated session token with an expiry.
type Session struct {
	Token     string
	ExpiresAt time.Time
	CreatedAt time.Time
}
