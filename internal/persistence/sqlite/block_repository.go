package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/example/worktime-calendar/internal/persistence"
)

// CreateBlock inserts a new block.
func (s *Storage) CreateBlock(ctx context.Context, block persistence.Block) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO blocks (id, person_id, start_time, end_time, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		block.ID,
		block.PersonID,
		formatTime(block.Start),
		formatTime(block.End),
		formatTime(block.CreatedAt),
		formatTime(block.UpdatedAt),
	)
	return mapError(err)
}

// UpdateBlock rewrites an existing block.
func (s *Storage) UpdateBlock(ctx context.Context, block persistence.Block) error {
	result, err := s.db.ExecContext(ctx, `
		UPDATE blocks
		SET person_id = ?, start_time = ?, end_time = ?, updated_at = ?
		WHERE id = ?`,
		block.PersonID,
		formatTime(block.Start),
		formatTime(block.End),
		formatTime(block.UpdatedAt),
		block.ID,
	)
	if err != nil {
		return mapError(err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return persistence.ErrNotFound
	}
	return nil
}

// GetBlock retrieves a block by id.
func (s *Storage) GetBlock(ctx context.Context, id string) (persistence.Block, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, person_id, start_time, end_time, created_at, updated_at
		FROM blocks
		WHERE id = ?`, id)

	block, err := scanBlock(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return persistence.Block{}, persistence.ErrNotFound
		}
		return persistence.Block{}, err
	}
	return block, nil
}

// DeleteBlock removes a block by id.
func (s *Storage) DeleteBlock(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, "DELETE FROM blocks WHERE id = ?", id)
	if err != nil {
		return mapError(err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return persistence.ErrNotFound
	}
	return nil
}

// ListBlocksOverlapping returns blocks intersecting [start, end), ordered by
// ascending start then id. RFC 3339 UTC text makes the range comparison a
// plain string comparison.
func (s *Storage) ListBlocksOverlapping(ctx context.Context, start, end time.Time) ([]persistence.Block, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, person_id, start_time, end_time, created_at, updated_at
		FROM blocks
		WHERE start_time < ? AND end_time > ?
		ORDER BY start_time, id`,
		formatTime(end), formatTime(start))
	if err != nil {
		return nil, mapError(err)
	}
	defer rows.Close()

	var blocks []persistence.Block
	for rows.Next() {
		block, err := scanBlock(rows)
		if err != nil {
			return nil, err
		}
		blocks = append(blocks, block)
	}
	return blocks, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanBlock(row rowScanner) (persistence.Block, error) {
	var (
		block                                    persistence.Block
		startRaw, endRaw, createdRaw, updatedRaw string
	)
	if err := row.Scan(&block.ID, &block.PersonID, &startRaw, &endRaw, &createdRaw, &updatedRaw); err != nil {
		return persistence.Block{}, err
	}

	var err error
	if block.Start, err = parseStoredTime(startRaw); err != nil {
		return persistence.Block{}, err
	}
	if block.End, err = parseStoredTime(endRaw); err != nil {
		return persistence.Block{}, err
	}
	if block.CreatedAt, err = parseStoredTime(createdRaw); err != nil {
		return persistence.Block{}, err
	}
	if block.UpdatedAt, err = parseStoredTime(updatedRaw); err != nil {
		return persistence.Block{}, err
	}
	return block, nil
}
