package sqlite

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"github.com/example/worktime-calendar/internal/persistence"
)

func openTestStorage(t *testing.T) *Storage {
	t.Helper()

	path := filepath.Join(t.TempDir(), "worktime.db")
	storage, err := Open(path)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	t.Cleanup(func() { _ = storage.Close() })

	if err := storage.Migrate(context.Background()); err != nil {
		t.Fatalf("Migrate failed: %v", err)
	}
	return storage
}

func testRoster() []persistence.Person {
	return []persistence.Person{
		{ID: "anna", Name: "Anna", Color: "#3b82f6"},
		{ID: "bob", Name: "Bob", Color: "#22c55e"},
	}
}

func seedTestRoster(t *testing.T, storage *Storage) {
	t.Helper()
	if err := storage.SeedPersons(context.Background(), testRoster()); err != nil {
		t.Fatalf("SeedPersons failed: %v", err)
	}
}

func TestMigrate_Idempotent(t *testing.T) {
	storage := openTestStorage(t)

	if err := storage.Migrate(context.Background()); err != nil {
		t.Fatalf("second Migrate failed: %v", err)
	}
}

func TestSeedPersons_PopulatesEmptyDatabase(t *testing.T) {
	storage := openTestStorage(t)
	seedTestRoster(t, storage)

	persons, err := storage.ListPersons(context.Background())
	if err != nil {
		t.Fatalf("ListPersons failed: %v", err)
	}
	if len(persons) != 2 {
		t.Fatalf("expected 2 persons, got %d", len(persons))
	}
	if persons[0].ID != "anna" || persons[1].ID != "bob" {
		t.Errorf("expected roster ordered by id, got %v", persons)
	}
	if persons[0].Color != "#3b82f6" {
		t.Errorf("expected anna color #3b82f6, got %s", persons[0].Color)
	}
}

func TestSeedPersons_SkipsNonEmptyDatabase(t *testing.T) {
	storage := openTestStorage(t)
	seedTestRoster(t, storage)

	other := []persistence.Person{{ID: "zed", Name: "Zed", Color: "#000000"}}
	if err := storage.SeedPersons(context.Background(), other); err != nil {
		t.Fatalf("second SeedPersons failed: %v", err)
	}

	persons, err := storage.ListPersons(context.Background())
	if err != nil {
		t.Fatalf("ListPersons failed: %v", err)
	}
	if len(persons) != 2 {
		t.Fatalf("expected original roster to be kept, got %d persons", len(persons))
	}
}

func TestGetPerson_NotFound(t *testing.T) {
	storage := openTestStorage(t)
	seedTestRoster(t, storage)

	_, err := storage.GetPerson(context.Background(), "nobody")
	if !errors.Is(err, persistence.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestBlockRepository_CreateAndGet(t *testing.T) {
	storage := openTestStorage(t)
	seedTestRoster(t, storage)

	ctx := context.Background()
	start := time.Date(2025, time.June, 2, 9, 0, 0, 0, time.UTC)
	block := persistence.Block{
		ID:        "block-1",
		PersonID:  "anna",
		Start:     start,
		End:       start.Add(2 * time.Hour),
		CreatedAt: start,
		UpdatedAt: start,
	}

	if err := storage.CreateBlock(ctx, block); err != nil {
		t.Fatalf("CreateBlock failed: %v", err)
	}

	retrieved, err := storage.GetBlock(ctx, "block-1")
	if err != nil {
		t.Fatalf("GetBlock failed: %v", err)
	}
	if retrieved.PersonID != "anna" {
		t.Errorf("expected person anna, got %s", retrieved.PersonID)
	}
	if !retrieved.Start.Equal(block.Start) || !retrieved.End.Equal(block.End) {
		t.Errorf("expected interval %v-%v, got %v-%v", block.Start, block.End, retrieved.Start, retrieved.End)
	}
}

func TestBlockRepository_CreateRejectsDuplicateID(t *testing.T) {
	storage := openTestStorage(t)
	seedTestRoster(t, storage)

	ctx := context.Background()
	start := time.Date(2025, time.June, 2, 9, 0, 0, 0, time.UTC)
	block := persistence.Block{
		ID: "block-1", PersonID: "anna",
		Start: start, End: start.Add(time.Hour),
		CreatedAt: start, UpdatedAt: start,
	}

	if err := storage.CreateBlock(ctx, block); err != nil {
		t.Fatalf("CreateBlock failed: %v", err)
	}
	err := storage.CreateBlock(ctx, block)
	if !errors.Is(err, persistence.ErrDuplicate) {
		t.Fatalf("expected ErrDuplicate, got %v", err)
	}
}

func TestBlockRepository_CreateRejectsInvertedInterval(t *testing.T) {
	storage := openTestStorage(t)
	seedTestRoster(t, storage)

	start := time.Date(2025, time.June, 2, 9, 0, 0, 0, time.UTC)
	block := persistence.Block{
		ID: "block-1", PersonID: "anna",
		Start: start, End: start.Add(-time.Hour),
		CreatedAt: start, UpdatedAt: start,
	}

	if err := storage.CreateBlock(context.Background(), block); err == nil {
		t.Fatal("expected constraint violation for end before start, got nil")
	}
}

func TestBlockRepository_Update(t *testing.T) {
	storage := openTestStorage(t)
	seedTestRoster(t, storage)

	ctx := context.Background()
	start := time.Date(2025, time.June, 2, 9, 0, 0, 0, time.UTC)
	block := persistence.Block{
		ID: "block-1", PersonID: "anna",
		Start: start, End: start.Add(time.Hour),
		CreatedAt: start, UpdatedAt: start,
	}
	if err := storage.CreateBlock(ctx, block); err != nil {
		t.Fatalf("CreateBlock failed: %v", err)
	}

	block.PersonID = "bob"
	block.End = start.Add(3 * time.Hour)
	block.UpdatedAt = start.Add(time.Minute)
	if err := storage.UpdateBlock(ctx, block); err != nil {
		t.Fatalf("UpdateBlock failed: %v", err)
	}

	retrieved, err := storage.GetBlock(ctx, "block-1")
	if err != nil {
		t.Fatalf("GetBlock failed: %v", err)
	}
	if retrieved.PersonID != "bob" {
		t.Errorf("expected person bob after update, got %s", retrieved.PersonID)
	}
	if !retrieved.End.Equal(block.End) {
		t.Errorf("expected end %v, got %v", block.End, retrieved.End)
	}
	if !retrieved.CreatedAt.Equal(start) {
		t.Errorf("expected created_at to be preserved, got %v", retrieved.CreatedAt)
	}
}

func TestBlockRepository_UpdateMissingBlock(t *testing.T) {
	storage := openTestStorage(t)
	seedTestRoster(t, storage)

	start := time.Date(2025, time.June, 2, 9, 0, 0, 0, time.UTC)
	block := persistence.Block{
		ID: "ghost", PersonID: "anna",
		Start: start, End: start.Add(time.Hour),
		CreatedAt: start, UpdatedAt: start,
	}

	err := storage.UpdateBlock(context.Background(), block)
	if !errors.Is(err, persistence.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestBlockRepository_Delete(t *testing.T) {
	storage := openTestStorage(t)
	seedTestRoster(t, storage)

	ctx := context.Background()
	start := time.Date(2025, time.June, 2, 9, 0, 0, 0, time.UTC)
	block := persistence.Block{
		ID: "block-1", PersonID: "anna",
		Start: start, End: start.Add(time.Hour),
		CreatedAt: start, UpdatedAt: start,
	}
	if err := storage.CreateBlock(ctx, block); err != nil {
		t.Fatalf("CreateBlock failed: %v", err)
	}

	if err := storage.DeleteBlock(ctx, "block-1"); err != nil {
		t.Fatalf("DeleteBlock failed: %v", err)
	}
	if _, err := storage.GetBlock(ctx, "block-1"); !errors.Is(err, persistence.ErrNotFound) {
		t.Fatalf("expected ErrNotFound after delete, got %v", err)
	}
	if err := storage.DeleteBlock(ctx, "block-1"); !errors.Is(err, persistence.ErrNotFound) {
		t.Fatalf("expected ErrNotFound on second delete, got %v", err)
	}
}

func TestBlockRepository_ListBlocksOverlapping(t *testing.T) {
	storage := openTestStorage(t)
	seedTestRoster(t, storage)

	ctx := context.Background()
	day := time.Date(2025, time.June, 2, 0, 0, 0, 0, time.UTC)
	insert := func(id string, startHour, endHour int) {
		t.Helper()
		block := persistence.Block{
			ID: id, PersonID: "anna",
			Start:     day.Add(time.Duration(startHour) * time.Hour),
			End:       day.Add(time.Duration(endHour) * time.Hour),
			CreatedAt: day, UpdatedAt: day,
		}
		if err := storage.CreateBlock(ctx, block); err != nil {
			t.Fatalf("CreateBlock %s failed: %v", id, err)
		}
	}

	insert("before", 6, 8)    // ends exactly at range start, excluded
	insert("inside", 10, 12)  // fully inside
	insert("spanning", 7, 20) // covers the whole range
	insert("after", 18, 19)   // starts exactly at range end, excluded
	insert("tail", 17, 21)    // straddles the range end

	blocks, err := storage.ListBlocksOverlapping(ctx, day.Add(8*time.Hour), day.Add(18*time.Hour))
	if err != nil {
		t.Fatalf("ListBlocksOverlapping failed: %v", err)
	}

	ids := make([]string, 0, len(blocks))
	for _, block := range blocks {
		ids = append(ids, block.ID)
	}
	want := []string{"spanning", "inside", "tail"}
	if fmt.Sprint(ids) != fmt.Sprint(want) {
		t.Fatalf("expected %v ordered by start, got %v", want, ids)
	}
}

func TestHistoryRepository_AppendAndList(t *testing.T) {
	storage := openTestStorage(t)

	ctx := context.Background()
	base := time.Date(2025, time.June, 2, 12, 0, 0, 0, time.UTC)
	for i := 0; i < 5; i++ {
		entry := persistence.HistoryEntry{
			ID:             fmt.Sprintf("entry-%d", i),
			Timestamp:      base.Add(time.Duration(i) * time.Minute),
			ActorPersonID:  "anna",
			TargetPersonID: "bob",
			Action:         "create",
			Details:        fmt.Sprintf("Created block %d", i),
		}
		if err := storage.AppendHistory(ctx, entry); err != nil {
			t.Fatalf("AppendHistory failed: %v", err)
		}
	}

	entries, err := storage.RecentHistory(ctx, 3)
	if err != nil {
		t.Fatalf("RecentHistory failed: %v", err)
	}
	if len(entries) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(entries))
	}
	if entries[0].ID != "entry-4" || entries[2].ID != "entry-2" {
		t.Errorf("expected newest-first ordering, got %v, %v, %v", entries[0].ID, entries[1].ID, entries[2].ID)
	}
	if entries[0].Details != "Created block 4" {
		t.Errorf("unexpected details: %s", entries[0].Details)
	}
}

func TestHistoryRepository_TrimsToRetention(t *testing.T) {
	storage := openTestStorage(t)

	ctx := context.Background()
	base := time.Date(2025, time.June, 2, 12, 0, 0, 0, time.UTC)
	total := historyRetention + 10
	for i := 0; i < total; i++ {
		entry := persistence.HistoryEntry{
			ID:             fmt.Sprintf("entry-%03d", i),
			Timestamp:      base.Add(time.Duration(i) * time.Second),
			ActorPersonID:  "anna",
			TargetPersonID: "anna",
			Action:         "update",
			Details:        "Moved block",
		}
		if err := storage.AppendHistory(ctx, entry); err != nil {
			t.Fatalf("AppendHistory failed: %v", err)
		}
	}

	entries, err := storage.RecentHistory(ctx, total)
	if err != nil {
		t.Fatalf("RecentHistory failed: %v", err)
	}
	if len(entries) != historyRetention {
		t.Fatalf("expected log trimmed to %d entries, got %d", historyRetention, len(entries))
	}
	if entries[0].ID != fmt.Sprintf("entry-%03d", total-1) {
		t.Errorf("expected newest entry first, got %s", entries[0].ID)
	}
	if entries[len(entries)-1].ID != fmt.Sprintf("entry-%03d", total-historyRetention) {
		t.Errorf("expected oldest kept entry entry-%03d, got %s", total-historyRetention, entries[len(entries)-1].ID)
	}
}

func TestSessionRepository_Lifecycle(t *testing.T) {
	storage := openTestStorage(t)

	ctx := context.Background()
	now := time.Date(2025, time.June, 2, 12, 0, 0, 0, time.UTC)
	session := persistence.Session{
		Token:     "token-1",
		ExpiresAt: now.Add(time.Hour),
		CreatedAt: now,
	}

	if err := storage.CreateSession(ctx, session); err != nil {
		t.Fatalf("CreateSession failed: %v", err)
	}

	retrieved, err := storage.GetSession(ctx, "token-1")
	if err != nil {
		t.Fatalf("GetSession failed: %v", err)
	}
	if !retrieved.ExpiresAt.Equal(session.ExpiresAt) {
		t.Errorf("expected expiry %v, got %v", session.ExpiresAt, retrieved.ExpiresAt)
	}

	if _, err := storage.GetSession(ctx, "missing"); !errors.Is(err, persistence.ErrNotFound) {
		t.Fatalf("expected ErrNotFound for unknown token, got %v", err)
	}
}

func TestSessionRepository_DeleteExpiredSessions(t *testing.T) {
	storage := openTestStorage(t)

	ctx := context.Background()
	now := time.Date(2025, time.June, 2, 12, 0, 0, 0, time.UTC)
	sessions := []persistence.Session{
		{Token: "expired", ExpiresAt: now.Add(-time.Minute), CreatedAt: now.Add(-2 * time.Hour)},
		{Token: "boundary", ExpiresAt: now, CreatedAt: now.Add(-time.Hour)},
		{Token: "live", ExpiresAt: now.Add(time.Hour), CreatedAt: now},
	}
	for _, session := range sessions {
		if err := storage.CreateSession(ctx, session); err != nil {
			t.Fatalf("CreateSession %s failed: %v", session.Token, err)
		}
	}

	if err := storage.DeleteExpiredSessions(ctx, now); err != nil {
		t.Fatalf("DeleteExpiredSessions failed: %v", err)
	}

	if _, err := storage.GetSession(ctx, "expired"); !errors.Is(err, persistence.ErrNotFound) {
		t.Fatalf("expected expired session removed, got %v", err)
	}
	if _, err := storage.GetSession(ctx, "boundary"); !errors.Is(err, persistence.ErrNotFound) {
		t.Fatalf("expected boundary session removed, got %v", err)
	}
	if _, err := storage.GetSession(ctx, "live"); err != nil {
		t.Fatalf("expected live session kept, got %v", err)
	}
}
