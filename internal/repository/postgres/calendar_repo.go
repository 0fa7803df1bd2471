package postgres

import (
	"context"
	"database/sql"

	"eventplanner/internal/domain"
)

type calendarRepository struct {
	DB *sql.DB
}

func NewCalendarRepository(db *sql.DB) domain.CalendarRepository {
	return &calendarRepository{DB: db}
}

func (r *calendarRepository) Share(ctx context.Context, owner, sharee string) error {
	query := `
		INSERT INTO calendar_shares (owner, shared_with)
		VALUES ($1, $2)
		ON CONFLICT (owner, shared_with) DO NOTHING
	`
	_, err := r.DB.ExecContext(ctx, query, owner, sharee)
	return err
}

func (r *calendarRepository) SharedWith(ctx context.Context, owner string) ([]string, error) {
	query := `
		SELECT shared_with
		FROM calendar_shares
		WHERE owner = $1
		ORDER BY shared_with
	`
	rows, err := r.DB.QueryContext(ctx, query, owner)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var sharees []string
	for rows.Next() {
		var s string
		if err := rows.Scan(&s); err != nil {
			return nil, err
		}
		sharees = append(sharees, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(sharees) == 0 {
		return nil, domain.ErrNotFound
	}
	return sharees, nil
}
