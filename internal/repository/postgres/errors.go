package postgres

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

// Postgres error codes we translate to domain errors
const uniqueViolationCode = "23505"

// isUniqueViolation reports whether err is a unique-constraint violation.
// Duplicate prevention lives in the schema, not in check-then-insert logic.
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode
}
