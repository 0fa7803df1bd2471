package postgres

import (
	"context"
	"database/sql"
	"testing"

	"eventplanner/internal/domain"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"
)

func TestCalendarRepository_Share(t *testing.T) {
	ctx := context.Background()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec(`INSERT INTO calendar_shares \(owner, shared_with\) VALUES \(\$1, \$2\) ON CONFLICT \(owner, shared_with\) DO NOTHING`).
		WithArgs("carol", "dave").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`INSERT INTO calendar_shares`).
		WithArgs("carol", "dave").
		WillReturnResult(sqlmock.NewResult(0, 0))

	repo := NewCalendarRepository(db)
	require.NoError(t, repo.Share(ctx, "carol", "dave"))
	require.NoError(t, repo.Share(ctx, "carol", "dave"), "sharing twice is a no-op")
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCalendarRepository_SharedWith(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name    string
		mock    func(mock sqlmock.Sqlmock)
		want    []string
		errIs   error
		wantErr bool
	}{
		{
			name: "members",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`SELECT shared_with FROM calendar_shares WHERE owner = \$1 ORDER BY shared_with`).
					WithArgs("carol").
					WillReturnRows(sqlmock.NewRows([]string{"shared_with"}).AddRow("alice").AddRow("dave"))
			},
			want: []string{"alice", "dave"},
		},
		{
			name: "no record",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`FROM calendar_shares`).
					WithArgs("carol").
					WillReturnRows(sqlmock.NewRows([]string{"shared_with"}))
			},
			wantErr: true,
			errIs:   domain.ErrNotFound,
		},
		{
			name: "db error",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`FROM calendar_shares`).
					WillReturnError(sql.ErrConnDone)
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, err := sqlmock.New()
			require.NoError(t, err)
			defer db.Close()

			tt.mock(mock)
			got, err := NewCalendarRepository(db).SharedWith(ctx, "carol")
			if tt.wantErr {
				require.Error(t, err)
				if tt.errIs != nil {
					require.ErrorIs(t, err, tt.errIs)
				}
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.want, got)
			require.NoError(t, mock.ExpectationsWereMet())
		})
	}
}
