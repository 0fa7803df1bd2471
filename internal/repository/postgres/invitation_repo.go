package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/lib/pq"

	"eventplanner/internal/domain"
)

type invitationRepository struct {
	DB *sql.DB
}

func NewInvitationRepository(db *sql.DB) domain.InvitationRepository {
	return &invitationRepository{
		DB: db,
	}
}

func (r *invitationRepository) Create(ctx context.Context, inv *domain.Invitation) error {
	query := `
		INSERT INTO invitations (event_id, invitee, status)
		VALUES ($1, $2, $3)
		RETURNING id
	`
	err := r.DB.QueryRowContext(ctx, query, inv.EventID, inv.Invitee, inv.Status).Scan(&inv.ID)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" {
			return domain.ErrDuplicateInvitation
		}
		return err
	}
	return nil
}

func (r *invitationRepository) GetByEventAndInvitee(ctx context.Context, eventID int64, invitee string) (*domain.Invitation, error) {
	query := `
		SELECT id, event_id, invitee, status
		FROM invitations
		WHERE event_id = $1 AND invitee = $2
	`
	inv := &domain.Invitation{}
	err := r.DB.QueryRowContext(ctx, query, eventID, invitee).Scan(&inv.ID, &inv.EventID, &inv.Invitee, &inv.Status)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return inv, nil
}

func (r *invitationRepository) List(ctx context.Context, filter domain.InvitationFilter) ([]*domain.Invitation, error) {
	var where []string
	var args []interface{}
	n := 1
	if filter.EventID != nil {
		where = append(where, fmt.Sprintf("event_id = $%d", n))
		args = append(args, *filter.EventID)
		n++
	}
	if filter.Invitee != "" {
		where = append(where, fmt.Sprintf("invitee = $%d", n))
		args = append(args, filter.Invitee)
		n++
	}
	if filter.Status != "" {
		where = append(where, fmt.Sprintf("status = $%d", n))
		args = append(args, filter.Status)
		n++
	}
	query := `
		SELECT id, event_id, invitee, status
		FROM invitations
	`
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY id"

	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var invs []*domain.Invitation
	for rows.Next() {
		inv := &domain.Invitation{}
		if err := rows.Scan(&inv.ID, &inv.EventID, &inv.Invitee, &inv.Status); err != nil {
			return nil, err
		}
		invs = append(invs, inv)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if invs == nil {
		invs = []*domain.Invitation{}
	}
	return invs, nil
}

func (r *invitationRepository) UpdateStatus(ctx context.Context, eventID int64, invitee, status string) (*domain.Invitation, error) {
	query := `
		UPDATE invitations SET status = $1
		WHERE event_id = $2 AND invitee = $3
		RETURNING id, event_id, invitee, status
	`
	inv := &domain.Invitation{}
	err := r.DB.QueryRowContext(ctx, query, status, eventID, invitee).Scan(&inv.ID, &inv.EventID, &inv.Invitee, &inv.Status)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return inv, nil
}
