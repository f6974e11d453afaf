package repository

import (
	"errors"
	"fmt"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
)

// Storage-agnostic errors. Both backends return these so services and the
// HTTP layer classify failures with errors.Is alone.
var (
	ErrNotFound      = errors.New("not found")
	ErrAlreadyExists = errors.New("already exists")
	ErrConflict      = errors.New("conflict")
)

// MapPgError folds Postgres constraint failures into the errors above. The
// violated constraint is kept in the message for logs; anything unrecognised
// passes through untouched.
func MapPgError(err error) error {
	if err == nil {
		return nil
	}
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return err
	}

	var kind error
	switch pgErr.Code {
	case pgerrcode.UniqueViolation:
		kind = ErrAlreadyExists
	case pgerrcode.ForeignKeyViolation, pgerrcode.RestrictViolation, pgerrcode.CheckViolation:
		// unknown team on a game, deleting a team that still has games,
		// identical home/away, half a result
		kind = ErrConflict
	default:
		return err
	}
	if pgErr.ConstraintName == "" {
		return kind
	}
	return fmt.Errorf("%w: %s", kind, pgErr.ConstraintName)
}
