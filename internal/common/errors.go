package common

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/jackc/pgx/v5/pgconn"
)

var (
	ErrNotFound       = errors.New("requested resource not found")
	ErrUnauthorized   = errors.New("unauthorized access")
	ErrForbidden      = errors.New("forbidden access")
	ErrBadRequest     = errors.New("bad request")
	ErrValidation     = errors.New("validation failed")
	ErrConflict       = errors.New("resource conflict") // e.g., email already registered
	ErrInternalServer = errors.New("internal server error")

	// Contest and voting rules.
	ErrInsufficientFunds = errors.New("insufficient coins for entry fee")
	ErrInvalidState      = errors.New("contest is not in a valid state for this operation")
	ErrNotEligible       = errors.New("submission is not approved for voting")
	ErrSelfVote          = errors.New("voting for your own photo is not allowed")
	ErrDuplicateVote     = errors.New("vote already cast for this photo in this contest")
	ErrContestFull       = errors.New("contest has reached its participant limit")
	ErrNoEligibleWinner  = errors.New("no approved submissions to award")
)

// HTTPStatusFromError maps domain errors to HTTP status codes.
func HTTPStatusFromError(err error) int {
	if err == nil {
		return http.StatusOK
	}
	if errors.Is(err, ErrNotFound) {
		return http.StatusNotFound
	}
	if errors.Is(err, ErrUnauthorized) {
		return http.StatusUnauthorized
	}
	if errors.Is(err, ErrForbidden) || errors.Is(err, ErrSelfVote) {
		return http.StatusForbidden
	}
	if errors.Is(err, ErrBadRequest) || errors.Is(err, ErrValidation) {
		return http.StatusBadRequest
	}
	if errors.Is(err, ErrInsufficientFunds) {
		return http.StatusPaymentRequired
	}
	if errors.Is(err, ErrConflict) || errors.Is(err, ErrDuplicateVote) ||
		errors.Is(err, ErrInvalidState) || errors.Is(err, ErrNotEligible) ||
		errors.Is(err, ErrContestFull) || errors.Is(err, ErrNoEligibleWinner) {
		return http.StatusConflict
	}

	// Check for pgx specific errors (unique constraint violation)
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		if pgErr.Code == "23505" { // Unique violation
			return http.StatusConflict
		}
	}

	return http.StatusInternalServerError
}

// IsUniqueViolation reports whether err is a Postgres unique constraint
// violation. The constraint is the final arbiter for duplicate votes and
// duplicate emails, regardless of application-level pre-checks.
func IsUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

// Errorf creates a new error with formatting, useful for wrapping.
func Errorf(format string, args ...interface{}) error {
	return fmt.Errorf(format, args...)
}
