package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"eventplanner/internal/domain"
)

type eventRepository struct {
	DB *sql.DB
}

func NewEventRepository(db *sql.DB) domain.EventRepository {
	return &eventRepository{
		DB: db,
	}
}

func (r *eventRepository) Create(ctx context.Context, e *domain.Event) error {
	query := `
		INSERT INTO events (date, organizer, title, description, is_public)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`
	return r.DB.QueryRowContext(ctx, query, e.Date, e.Organizer, e.Title, e.Description, e.IsPublic).Scan(&e.ID)
}

func (r *eventRepository) List(ctx context.Context, filter domain.EventFilter) ([]*domain.Event, error) {
	var where []string
	var args []interface{}
	n := 1
	if filter.ID != nil {
		where = append(where, fmt.Sprintf("id = $%d", n))
		args = append(args, *filter.ID)
		n++
	}
	if filter.IsPublic != nil {
		where = append(where, fmt.Sprintf("is_public = $%d", n))
		args = append(args, *filter.IsPublic)
		n++
	}
	if filter.Organizer != "" {
		where = append(where, fmt.Sprintf("organizer = $%d", n))
		args = append(args, filter.Organizer)
		n++
	}
	query := `
		SELECT id, TO_CHAR(date, 'YYYY-MM-DD'), organizer, title, description, is_public
		FROM events
	`
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY date, id"

	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	events := make([]*domain.Event, 0)
	for rows.Next() {
		e := &domain.Event{}
		if err := rows.Scan(&e.ID, &e.Date, &e.Organizer, &e.Title, &e.Description, &e.IsPublic); err != nil {
			return nil, err
		}
		events = append(events, e)
	}
	return events, rows.Err()
}
