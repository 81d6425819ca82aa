package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/example/worktime-calendar/internal/persistence"
)

// SeedPersons inserts the default roster when the persons table is empty.
func (s *Storage) SeedPersons(ctx context.Context, persons []persistence.Person) error {
	return s.withTx(ctx, func(tx *sql.Tx) error {
		var count int
		if err := tx.QueryRowContext(ctx, "SELECT COUNT(*) FROM persons").Scan(&count); err != nil {
			return mapError(err)
		}
		if count > 0 {
			return nil
		}
		for _, person := range persons {
			if _, err := tx.ExecContext(ctx,
				"INSERT INTO persons (id, name, color) VALUES (?, ?, ?)",
				person.ID, person.Name, person.Color,
			); err != nil {
				return fmt.Errorf("sqlite: seed person %s: %w", person.ID, mapError(err))
			}
		}
		return nil
	})
}

// ListPersons returns the roster ordered by id.
func (s *Storage) ListPersons(ctx context.Context) ([]persistence.Person, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT id, name, color FROM persons ORDER BY id")
	if err != nil {
		return nil, mapError(err)
	}
	defer rows.Close()

	var persons []persistence.Person
	for rows.Next() {
		var person persistence.Person
		if err := rows.Scan(&person.ID, &person.Name, &person.Color); err != nil {
			return nil, mapError(err)
		}
		persons = append(persons, person)
	}
	return persons, rows.Err()
}

// GetPerson retrieves one roster entry by id.
func (s *Storage) GetPerson(ctx context.Context, id string) (persistence.Person, error) {
	var person persistence.Person
	err := s.db.QueryRowContext(ctx,
		"SELECT id, name, color FROM persons WHERE id = ?", id,
	).Scan(&person.ID, &person.Name, &person.Color)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return persistence.Person{}, persistence.ErrNotFound
		}
		return persistence.Person{}, mapError(err)
	}
	return person, nil
}
