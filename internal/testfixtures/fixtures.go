// Package testfixtures provides deterministic clocks, identifier generators,
// and record builders shared by the application and persistence tests.
package testfixtures

import (
	"fmt"
	"sync/atomic"
	"time"

	"github.com/example/worktime-calendar/internal/persistence"
	"github.com/example/worktime-calendar/internal/timeblock"
)

var (
	blockCounter   uint64
	historyCounter uint64
)

// referenceTime is a Monday morning in the default calendar zone.
var referenceTime = time.Date(2025, time.June, 2, 8, 0, 0, 0, time.UTC)

// ReferenceTime returns the canonical baseline timestamp used by fixtures.
func ReferenceTime() time.Time {
	return referenceTime
}

// DefaultRoster returns the roster seeded into fresh databases.
func DefaultRoster() []persistence.Person {
	return []persistence.Person{
		{ID: "anna", Name: "Anna", Color: "#3b82f6"},
		{ID: "bob", Name: "Bob", Color: "#22c55e"},
		{ID: "carla", Name: "Carla", Color: "#f97316"},
		{ID: "dan", Name: "Dan", Color: "#a855f7"},
	}
}

// ----------------------------- Block fixtures -----------------------------

// BlockFixture represents a deterministic worktime block record.
type BlockFixture struct {
	ID        string
	PersonID  string
	Start     time.Time
	End       time.Time
	CreatedAt time.Time
	UpdatedAt time.Time
}

// BlockOption configures the generated block fixture.
type BlockOption func(*BlockFixture)

// NewBlockFixture returns a deterministic block fixture with optional
// overrides. Successive fixtures occupy successive hours so they never
// overlap unless a test arranges it.
func NewBlockFixture(opts ...BlockOption) BlockFixture {
	idx := atomic.AddUint64(&blockCounter, 1)
	start := referenceTime.Add(time.Duration(idx) * time.Hour)
	fixture := BlockFixture{
		ID:        fmt.Sprintf("block-%03d", idx),
		PersonID:  "anna",
		Start:     start,
		End:       start.Add(time.Hour),
		CreatedAt: referenceTime,
		UpdatedAt: referenceTime,
	}
	for _, opt := range opts {
		opt(&fixture)
	}
	return fixture
}

// WithBlockID overrides the generated block ID.
func WithBlockID(id string) BlockOption {
	return func(f *BlockFixture) {
		f.ID = id
	}
}

// WithBlockPerson sets the owning person.
func WithBlockPerson(personID string) BlockOption {
	return func(f *BlockFixture) {
		f.PersonID = personID
	}
}

// WithBlockStartEnd sets the start and end times.
func WithBlockStartEnd(start, end time.Time) BlockOption {
	return func(f *BlockFixture) {
		f.Start = start
		f.End = end
	}
}

// WithBlockTimestamps sets both created and updated timestamps.
func WithBlockTimestamps(created, updated time.Time) BlockOption {
	return func(f *BlockFixture) {
		f.CreatedAt = created
		f.UpdatedAt = updated
	}
}

// Persistence returns the fixture as a persistence.Block value.
func (f BlockFixture) Persistence() persistence.Block {
	return persistence.Block{
		ID:        f.ID,
		PersonID:  f.PersonID,
		Start:     f.Start,
		End:       f.End,
		CreatedAt: f.CreatedAt,
		UpdatedAt: f.UpdatedAt,
	}
}

// Timeblock returns the fixture as a timeblock.Block value.
func (f BlockFixture) Timeblock() timeblock.Block {
	return timeblock.Block{
		ID:       f.ID,
		PersonID: f.PersonID,
		Start:    f.Start,
		End:      f.End,
	}
}

// ---------------------------- History fixtures ----------------------------

// HistoryFixture represents a deterministic history entry.
type HistoryFixture struct {
	ID             string
	Timestamp      time.Time
	ActorPersonID  string
	TargetPersonID string
	Action         string
	Details        string
}

// HistoryOption configures the generated history fixture.
type HistoryOption func(*HistoryFixture)

// NewHistoryFixture returns a deterministic history fixture with optional
// overrides. Successive fixtures carry successive timestamps so ordering
// tests stay stable.
func NewHistoryFixture(opts ...HistoryOption) HistoryFixture {
	idx := atomic.AddUint64(&historyCounter, 1)
	fixture := HistoryFixture{
		ID:             fmt.Sprintf("history-%03d", idx),
		Timestamp:      referenceTime.Add(time.Duration(idx) * time.Minute),
		ActorPersonID:  "anna",
		TargetPersonID: "anna",
		Action:         "create",
		Details:        fmt.Sprintf("Created block %03d", idx),
	}
	for _, opt := range opts {
		opt(&fixture)
	}
	return fixture
}

// WithHistoryID overrides the generated entry ID.
func WithHistoryID(id string) HistoryOption {
	return func(f *HistoryFixture) {
		f.ID = id
	}
}

// WithHistoryTimestamp sets the entry timestamp.
func WithHistoryTimestamp(t time.Time) HistoryOption {
	return func(f *HistoryFixture) {
		f.Timestamp = t
	}
}

// WithHistoryActor sets the acting person.
func WithHistoryActor(personID string) HistoryOption {
	return func(f *HistoryFixture) {
		f.ActorPersonID = personID
	}
}

// WithHistoryTarget sets the person whose block was touched.
func WithHistoryTarget(personID string) HistoryOption {
	return func(f *HistoryFixture) {
		f.TargetPersonID = personID
	}
}

// WithHistoryAction sets the action label.
func WithHistoryAction(action string) HistoryOption {
	return func(f *HistoryFixture) {
		f.Action = action
	}
}

// WithHistoryDetails sets the human-readable details line.
func WithHistoryDetails(details string) HistoryOption {
	return func(f *HistoryFixture) {
		f.Details = details
	}
}

// Persistence returns the fixture as a persistence.HistoryEntry value.
func (f HistoryFixture) Persistence() persistence.HistoryEntry {
	return persistence.HistoryEntry{
		ID:             f.ID,
		Timestamp:      f.Timestamp,
		ActorPersonID:  f.ActorPersonID,
		TargetPersonID: f.TargetPersonID,
		Action:         f.Action,
		Details:        f.Details,
	}
}
