package sqlite

import (
	"context"
	"database/sql"

	"github.com/example/worktime-calendar/internal/persistence"
)

// AppendHistory inserts an entry and trims the log to the newest
// historyRetention rows.
func (s *Storage) AppendHistory(ctx context.Context, entry persistence.HistoryEntry) error {
	return s.withTx(ctx, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO history (id, ts, actor_person_id, target_person_id, action, details)
			VALUES (?, ?, ?, ?, ?, ?)`,
			entry.ID,
			formatTime(entry.Timestamp),
			entry.ActorPersonID,
			entry.TargetPersonID,
			entry.Action,
			entry.Details,
		); err != nil {
			return mapError(err)
		}
		if _, err := tx.ExecContext(ctx, `
			DELETE FROM history
			WHERE id NOT IN (
				SELECT id FROM history ORDER BY ts DESC, id DESC LIMIT ?
			)`, historyRetention,
		); err != nil {
			return mapError(err)
		}
		return nil
	})
}

// RecentHistory returns up to limit entries, newest first.
func (s *Storage) RecentHistory(ctx context.Context, limit int) ([]persistence.HistoryEntry, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, ts, actor_person_id, target_person_id, action, details
		FROM history
		ORDER BY ts DESC, id DESC
		LIMIT ?`, limit)
	if err != nil {
		return nil, mapError(err)
	}
	defer rows.Close()

	var entries []persistence.HistoryEntry
	for rows.Next() {
		var (
			entry persistence.HistoryEntry
			tsRaw string
		)
		if err := rows.Scan(&entry.ID, &tsRaw, &entry.ActorPersonID, &entry.TargetPersonID, &entry.Action, &entry.Details); err != nil {
			return nil, err
		}
		if entry.Timestamp, err = parseStoredTime(tsRaw); err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
	return entries, rows.Err()
}
