package dbx

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/jobboard/internal/common"
	"github.com/jackc/pgx/v5/pgconn"
)

// SQLSTATE codes the repositories care about.
const (
	pgUniqueViolation           = "23505"
	pgForeignKeyViolation       = "23503"
	pgInvalidTextRepresentation = "22P02"
)

// ClassifyError converts a driver error into the repository error vocabulary.
// sql.ErrNoRows becomes common.ErrorNotFound, known PostgreSQL codes become the
// matching common sentinel (the original error stays in the chain), and
// anything else is wrapped as "db error".
func ClassifyError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, sql.ErrNoRows) {
		return common.ErrorNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgUniqueViolation:
			return fmt.Errorf("%w (%s): %w", common.ErrorUniqueViolation, pgErr.ConstraintName, err)
		case pgForeignKeyViolation:
			return fmt.Errorf("%w (%s): %w", common.ErrorForeignKeyViolation, pgErr.ConstraintName, err)
		case pgInvalidTextRepresentation:
			return fmt.Errorf("%w: %w", common.ErrorInvalidTextRepresentation, err)
		}
	}

	return fmt.Errorf("db error: %w", err)
}
