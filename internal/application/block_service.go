// Package application orchestrates the calendar use cases: block mutations
// validated against the worktime policy, week payload assembly, history
// logging, and shared-password authentication. Services own concurrency and
// persistence wiring; the policy arithmetic lives in timeblock.
package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/example/worktime-calendar/internal/persistence"
	"github.com/example/worktime-calendar/internal/timeblock"
)

// defaultHistoryLimit is the number of history entries returned when the
// caller does not ask for a specific count.
const defaultHistoryLimit = 3

// BlockStore captures the block persistence interactions needed by the service.
type BlockStore interface {
	CreateBlock(ctx context.Context, block persistence.Block) error
	UpdateBlock(ctx context.Context, block persistence.Block) error
	GetBlock(ctx context.Context, id string) (persistence.Block, error)
	DeleteBlock(ctx context.Context, id string) error
	ListBlocksOverlapping(ctx context.Context, start, end time.Time) ([]persistence.Block, error)
}

// PersonDirectory exposes roster lookup operations.
type PersonDirectory interface {
	ListPersons(ctx context.Context) ([]persistence.Person, error)
}

// HistoryLog captures the mutation log interactions needed by the service.
type HistoryLog interface {
	AppendHistory(ctx context.Context, entry persistence.HistoryEntry) error
	RecentHistory(ctx context.Context, limit int) ([]persistence.HistoryEntry, error)
}

// BlockService coordinates validation, persistence and history logging for
// block operations. A mutex serialises the read-validate-write cycle so two
// concurrent mutations cannot both pass validation against the same snapshot.
type BlockService struct {
	mu sync.Mutex

	blocks      BlockStore
	persons     PersonDirectory
	history     HistoryLog
	calendar    timeblock.Calendar
	policy      timeblock.Policy
	idGenerator func() string
	now         func() time.Time
	logger      *slog.Logger
}

// NewBlockService wires dependencies for block operations.
func NewBlockService(blocks BlockStore, persons PersonDirectory, history HistoryLog, calendar timeblock.Calendar, policy timeblock.Policy, idGenerator func() string, now func() time.Time) *BlockService {
	return NewBlockServiceWithLogger(blocks, persons, history, calendar, policy, idGenerator, now, nil)
}

// NewBlockServiceWithLogger constructs a BlockService with a specified logger.
func NewBlockServiceWithLogger(blocks BlockStore, persons PersonDirectory, history HistoryLog, calendar timeblock.Calendar, policy timeblock.Policy, idGenerator func() string, now func() time.Time, logger *slog.Logger) *BlockService {
	if idGenerator == nil {
		idGenerator = func() string { return "" }
	}
	if now == nil {
		now = time.Now
	}
	return &BlockService{
		blocks:      blocks,
		persons:     persons,
		history:     history,
		calendar:    calendar,
		policy:      policy,
		idGenerator: idGenerator,
		now:         now,
		logger:      defaultLogger(logger),
	}
}

func (s *BlockService) loggerWith(ctx context.Context, operation string, attrs ...any) *slog.Logger {
	return serviceLogger(ctx, s.logger, "BlockService", operation, attrs...)
}

// CreateBlock validates a new block against the merged week state and, when
// accepted, persists it, logs the mutation and returns the refreshed week.
func (s *BlockService) CreateBlock(ctx context.Context, params CreateBlockParams) (payload timeblock.WeekPayload, err error) {
	if s == nil {
		err = fmt.Errorf("BlockService is nil")
		return
	}

	logger := s.loggerWith(ctx, "CreateBlock", "person_id", params.PersonID)
	defer func() {
		if err != nil {
			logger.ErrorContext(ctx, "block creation rejected", "error", err, "error_kind", ErrorKind(err))
			return
		}
		logger.InfoContext(ctx, "block created")
	}()

	if params.PersonID == "" || params.Start == "" || params.End == "" {
		err = validationFailure("personId, start and end are required.")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	candidate := timeblock.BlockInput{
		ID:       s.idGenerator(),
		PersonID: params.PersonID,
		Start:    params.Start,
		End:      params.End,
	}

	window, existing, err := s.weekSnapshot(ctx, params.Start)
	if err != nil {
		return
	}

	if messages := timeblock.Validate(candidate, existing, window, s.calendar, s.policy); len(messages) > 0 {
		err = &ValidationError{Messages: messages}
		return
	}

	start, _ := s.calendar.ParseDateTime(params.Start)
	end, _ := s.calendar.ParseDateTime(params.End)
	now := s.now()
	block := persistence.Block{
		ID:        candidate.ID,
		PersonID:  params.PersonID,
		Start:     start,
		End:       end,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err = s.blocks.CreateBlock(ctx, block); err != nil {
		err = mapStoreError(err)
		return
	}

	details := fmt.Sprintf("Created block %s–%s for %s",
		s.clockLabel(start), s.clockLabel(end), params.PersonID)
	s.appendHistory(ctx, params.Actor, params.PersonID, "create", details, now)

	return s.weekPayload(ctx, window)
}

// UpdateBlock applies a partial update to a stored block, re-validating the
// merged result as if the block were submitted anew.
func (s *BlockService) UpdateBlock(ctx context.Context, params UpdateBlockParams) (payload timeblock.WeekPayload, err error) {
	if s == nil {
		err = fmt.Errorf("BlockService is nil")
		return
	}

	logger := s.loggerWith(ctx, "UpdateBlock", "block_id", params.BlockID)
	defer func() {
		if err != nil {
			logger.ErrorContext(ctx, "block update rejected", "error", err, "error_kind", ErrorKind(err))
			return
		}
		logger.InfoContext(ctx, "block updated")
	}()

	s.mu.Lock()
	defer s.mu.Unlock()

	stored, err := s.blocks.GetBlock(ctx, params.BlockID)
	if err != nil {
		err = mapStoreError(err)
		return
	}

	candidate := timeblock.BlockInput{
		ID:       stored.ID,
		PersonID: stored.PersonID,
		Start:    s.calendar.FormatDateTime(stored.Start),
		End:      s.calendar.FormatDateTime(stored.End),
	}
	if params.Patch.PersonID != nil {
		candidate.PersonID = *params.Patch.PersonID
	}
	if params.Patch.Start != nil {
		candidate.Start = *params.Patch.Start
	}
	if params.Patch.End != nil {
		candidate.End = *params.Patch.End
	}

	window, existing, err := s.weekSnapshot(ctx, candidate.Start)
	if err != nil {
		return
	}

	if messages := timeblock.Validate(candidate, existing, window, s.calendar, s.policy); len(messages) > 0 {
		err = &ValidationError{Messages: messages}
		return
	}

	start, _ := s.calendar.ParseDateTime(candidate.Start)
	end, _ := s.calendar.ParseDateTime(candidate.End)
	now := s.now()
	block := persistence.Block{
		ID:        stored.ID,
		PersonID:  candidate.PersonID,
		Start:     start,
		End:       end,
		CreatedAt: stored.CreatedAt,
		UpdatedAt: now,
	}
	if err = s.blocks.UpdateBlock(ctx, block); err != nil {
		err = mapStoreError(err)
		return
	}

	details := fmt.Sprintf("Updated block on %s for %s", s.weekdayLabel(start), candidate.PersonID)
	s.appendHistory(ctx, params.Actor, candidate.PersonID, "update", details, now)

	return s.weekPayload(ctx, window)
}

// DeleteBlock removes a stored block and returns the week it belonged to.
func (s *BlockService) DeleteBlock(ctx context.Context, params DeleteBlockParams) (payload timeblock.WeekPayload, err error) {
	if s == nil {
		err = fmt.Errorf("BlockService is nil")
		return
	}

	logger := s.loggerWith(ctx, "DeleteBlock", "block_id", params.BlockID)
	defer func() {
		if err != nil {
			logger.ErrorContext(ctx, "block deletion rejected", "error", err, "error_kind", ErrorKind(err))
			return
		}
		logger.InfoContext(ctx, "block deleted")
	}()

	s.mu.Lock()
	defer s.mu.Unlock()

	stored, err := s.blocks.GetBlock(ctx, params.BlockID)
	if err != nil {
		err = mapStoreError(err)
		return
	}
	if err = s.blocks.DeleteBlock(ctx, params.BlockID); err != nil {
		err = mapStoreError(err)
		return
	}

	now := s.now()
	details := fmt.Sprintf("Deleted block %s %s for %s",
		s.weekdayLabel(stored.Start), s.clockLabel(stored.Start), stored.PersonID)
	s.appendHistory(ctx, params.Actor, stored.PersonID, "delete", details, now)

	window := s.calendar.WindowFor(stored.Start, s.policy.WindowDays)
	return s.weekPayload(ctx, window)
}

// WeekView assembles the payload for the week containing the given date.
func (s *BlockService) WeekView(ctx context.Context, start string) (timeblock.WeekPayload, error) {
	if s == nil {
		return timeblock.WeekPayload{}, fmt.Errorf("BlockService is nil")
	}
	if start == "" {
		return timeblock.WeekPayload{}, validationFailure("start is required (YYYY-MM-DD)")
	}

	anchor, err := s.calendar.ParseDate(start)
	if err != nil {
		if anchor, err = s.calendar.ParseDateTime(start); err != nil {
			return timeblock.WeekPayload{}, validationFailure("start is required (YYYY-MM-DD)")
		}
	}

	window := s.calendar.WindowFor(anchor, s.policy.WindowDays)
	return s.weekPayload(ctx, window)
}

// RecentHistory returns up to limit mutation records, newest first. A
// non-positive limit falls back to the default of 3.
func (s *BlockService) RecentHistory(ctx context.Context, limit int) ([]HistoryEntry, error) {
	if s == nil {
		return nil, fmt.Errorf("BlockService is nil")
	}
	if limit <= 0 {
		limit = defaultHistoryLimit
	}

	stored, err := s.history.RecentHistory(ctx, limit)
	if err != nil {
		return nil, err
	}

	entries := make([]HistoryEntry, 0, len(stored))
	for _, entry := range stored {
		entries = append(entries, HistoryEntry{
			ID:             entry.ID,
			Timestamp:      entry.Timestamp.In(s.calendar.Location()).Format(time.RFC3339),
			ActorPersonID:  entry.ActorPersonID,
			TargetPersonID: entry.TargetPersonID,
			Action:         entry.Action,
			Details:        entry.Details,
		})
	}
	return entries, nil
}

// weekSnapshot derives the window containing the raw start value and loads
// the blocks that can interact with it. The load range extends one day past
// the window so tails reaching into the next day still count for overlap
// checks. An unparsable start yields an empty snapshot; the validator reports
// the parse failure itself.
func (s *BlockService) weekSnapshot(ctx context.Context, start string) (timeblock.WeekWindow, []timeblock.Block, error) {
	anchor, err := s.calendar.ParseDateTime(start)
	if err != nil {
		return timeblock.WeekWindow{}, nil, nil
	}

	window := s.calendar.WindowFor(anchor, s.policy.WindowDays)
	stored, err := s.blocks.ListBlocksOverlapping(ctx, window.Start, s.calendar.AddDays(window.End, 1))
	if err != nil {
		return timeblock.WeekWindow{}, nil, mapStoreError(err)
	}
	return window, toTimeblocks(stored), nil
}

func (s *BlockService) weekPayload(ctx context.Context, window timeblock.WeekWindow) (timeblock.WeekPayload, error) {
	roster, err := s.persons.ListPersons(ctx)
	if err != nil {
		return timeblock.WeekPayload{}, mapStoreError(err)
	}
	stored, err := s.blocks.ListBlocksOverlapping(ctx, window.Start, window.End)
	if err != nil {
		return timeblock.WeekPayload{}, mapStoreError(err)
	}

	persons := make([]timeblock.Person, 0, len(roster))
	for _, person := range roster {
		persons = append(persons, timeblock.Person{ID: person.ID, Name: person.Name, Color: person.Color})
	}
	return timeblock.BuildWeekPayload(persons, toTimeblocks(stored), window, s.calendar, s.policy), nil
}

// appendHistory records a mutation, falling back to the block's owner when no
// actor was supplied. Log failures are reported but do not fail the mutation.
func (s *BlockService) appendHistory(ctx context.Context, actor, target, action, details string, now time.Time) {
	if s.history == nil {
		return
	}
	if actor == "" {
		actor = target
	}
	entry := persistence.HistoryEntry{
		ID:             s.idGenerator(),
		Timestamp:      now,
		ActorPersonID:  actor,
		TargetPersonID: target,
		Action:         action,
		Details:        details,
	}
	if err := s.history.AppendHistory(ctx, entry); err != nil {
		s.loggerWith(ctx, "appendHistory").ErrorContext(ctx, "history append failed", "error", err)
	}
}

func (s *BlockService) clockLabel(t time.Time) string {
	return t.In(s.calendar.Location()).Format("15:04")
}

func (s *BlockService) weekdayLabel(t time.Time) string {
	return t.In(s.calendar.Location()).Format("Mon")
}

func toTimeblocks(stored []persistence.Block) []timeblock.Block {
	blocks := make([]timeblock.Block, 0, len(stored))
	for _, block := range stored {
		blocks = append(blocks, timeblock.Block{
			ID:       block.ID,
			PersonID: block.PersonID,
			Start:    block.Start,
			End:      block.End,
		})
	}
	return blocks
}

func mapStoreError(err error) error {
	if errors.Is(err, persistence.ErrNotFound) {
		return ErrNotFound
	}
	return err
}
