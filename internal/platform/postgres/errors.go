package postgres

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

// PostgreSQL error codes relevant to the task and settings tables.
const (
	// notNullViolationCode is the PostgreSQL error code for not null violations.
	notNullViolationCode = "23502"

	// checkViolationCode is the PostgreSQL error code for check constraint violations.
	checkViolationCode = "23514"
)

// IsNotNullViolation checks if the given error is a PostgreSQL not null
// constraint violation. Text fields arrive sanitized, so hitting this
// indicates a caller bypassed the service layer.
func IsNotNullViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == notNullViolationCode
}

// IsCheckConstraintViolation checks if the given error is a PostgreSQL check
// constraint violation.
func IsCheckConstraintViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == checkViolationCode
}
