package service

import (
	"context"
	"errors"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/fcabl/league-service/internal/model"
	"github.com/fcabl/league-service/internal/repository"
)

const (
	minNameLen   = 2
	maxNameLen   = 50
	maxJersey    = 99
	maxTeamScore = 300
)

// validate is shared; validator caches struct metadata and is safe for concurrent use.
var validate = validator.New()

func requireID(field string, id uuid.UUID) []FieldError {
	if id == uuid.Nil {
		return []FieldError{{Field: field, Message: "must be a non-nil uuid"}}
	}
	return nil
}

func checkName(field, name string, minLen int) []FieldError {
	if name == "" {
		return []FieldError{{Field: field, Message: "must not be empty"}}
	}
	if ln := len([]rune(name)); ln < minLen || ln > maxNameLen {
		return []FieldError{{Field: field, Message: "length must be between " + strconv.Itoa(minLen) + " and " + strconv.Itoa(maxNameLen)}}
	}
	return nil
}

func checkEmail(email string) []FieldError {
	if email == "" {
		return []FieldError{{Field: "email", Message: "must not be empty"}}
	}
	if err := validate.Var(email, "email"); err != nil {
		return []FieldError{{Field: "email", Message: "must be a valid email address"}}
	}
	return nil
}

func checkJersey(n *int) []FieldError {
	if n != nil && (*n < 0 || *n > maxJersey) {
		return []FieldError{{Field: "jersey_number", Message: "must be between 0 and 99"}}
	}
	return nil
}

func checkPaymentStatus(status model.PaymentStatus) []FieldError {
	if !status.Valid() {
		return []FieldError{{Field: "status", Message: "must be one of pending, completed, failed"}}
	}
	return nil
}

func checkNonNegative(field string, v *float64) []FieldError {
	if v != nil && *v < 0 {
		return []FieldError{{Field: field, Message: "must be >= 0"}}
	}
	return nil
}

// existence turns ErrNotFound from a lookup into a field error. Other errors pass through.
func existence(field, what string, err error) ([]FieldError, error) {
	if err == nil {
		return nil, nil
	}
	if errors.Is(err, repository.ErrNotFound) {
		return []FieldError{{Field: field, Message: what + " does not exist"}}, nil
	}
	return nil, err
}

func teamExists(ctx context.Context, teams repository.TeamRepository, field string, id uuid.UUID) ([]FieldError, error) {
	_, err := teams.GetByID(ctx, id)
	return existence(field, "team", err)
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
