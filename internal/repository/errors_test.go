package repository

import (
	"errors"
	"testing"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func TestMapPgError(t *testing.T) {
	plain := errors.New("connection reset")
	cases := []struct {
		name string
		in   error
		want error
	}{
		{"nil", nil, nil},
		{"unique", &pgconn.PgError{Code: pgerrcode.UniqueViolation, ConstraintName: "teams_name_key"}, ErrAlreadyExists},
		{"foreign key", &pgconn.PgError{Code: pgerrcode.ForeignKeyViolation}, ErrConflict},
		{"restrict", &pgconn.PgError{Code: pgerrcode.RestrictViolation}, ErrConflict},
		{"check", &pgconn.PgError{Code: pgerrcode.CheckViolation, ConstraintName: "games_distinct_teams"}, ErrConflict},
		{"other pg", &pgconn.PgError{Code: pgerrcode.SerializationFailure}, nil},
		{"not pg", plain, plain},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := MapPgError(tc.in)
			if tc.in == nil {
				assert.NoError(t, got)
				return
			}
			if tc.want == nil {
				assert.Same(t, tc.in, got)
				return
			}
			assert.ErrorIs(t, got, tc.want)
		})
	}

	err := MapPgError(&pgconn.PgError{Code: pgerrcode.CheckViolation, ConstraintName: "games_distinct_teams"})
	assert.Contains(t, err.Error(), "games_distinct_teams")
}
