package persistence

import (
	"context"
	"time"
)

// PersonRepository exposes the roster. Persons are reference data: the core
// only reads them, and seeding happens once at startup.
type PersonRepository interface {
	SeedPersons(ctx context.Context, persons []Person) error
	ListPersons(ctx context.Context) ([]Person, error)
	GetPerson(ctx context.Context, id string) (Person, error)
}

// BlockRepository stores worktime blocks.
type BlockRepository interface {
	CreateBlock(ctx context.Context, block Block) error
	UpdateBlock(ctx context.Context, block Block) error
	GetBlock(ctx context.Context, id string) (Block, error)
	DeleteBlock(ctx context.Context, id string) error
	// ListBlocksOverlapping returns blocks intersecting the half-open range
	// [start, end), ordered by ascending start.
	ListBlocksOverlapping(ctx context.Context, start, end time.Time) ([]Block, error)
}

// HistoryRepository stores the mutation log, newest first.
type HistoryRepository interface {
	AppendHistory(ctx context.Context, entry HistoryEntry) error
	RecentHistory(ctx context.Context, limit int) ([]HistoryEntry, error)
}

// SessionRepository stores authentication sessions.
type SessionRepository interface {
	CreateSession(ctx context.Context, session Session) error
	GetSession(ctx context.Context, token string) (Session, error)
	DeleteExpiredSessions(ctx context.Context, reference time.Time) error
}
