// Package postgres implements the repositories of the service on top of PostgreSQL.
package postgres

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

const (
	uniqueViolationErrCode     = "23505"
	foreignKeyViolationErrCode = "23503"
)

func isUniqueViolationError(err error) bool {
	return hasSQLState(err, uniqueViolationErrCode)
}

func isForeignKeyViolationError(err error) bool {
	return hasSQLState(err, foreignKeyViolationErrCode)
}

func hasSQLState(err error, code string) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.SQLState() == code
}
