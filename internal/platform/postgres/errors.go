package postgres

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/hrsys/candidate-api/internal/store"
)

// PostgreSQL error codes.
const (
	uniqueViolationCode     = "23505"
	foreignKeyViolationCode = "23503"
	checkViolationCode      = "23514"
)

// IsUniqueViolation checks if the given error is a PostgreSQL unique
// constraint violation.
func IsUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode
}

// IsForeignKeyViolation checks if the given error is a PostgreSQL
// foreign key constraint violation.
func IsForeignKeyViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == foreignKeyViolationCode
}

// MapError maps a database error to the appropriate store error,
// wrapping the original for context. Unique violations are attributed
// to the email or phone field by constraint name so the workflow can
// surface them as field-scoped validation errors.
func MapError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("%w: %v", store.ErrNotFound, err)
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case uniqueViolationCode:
			switch {
			case strings.Contains(pgErr.ConstraintName, "email"):
				return fmt.Errorf("%w: %v", store.ErrEmailExists, err)
			case strings.Contains(pgErr.ConstraintName, "phone"):
				return fmt.Errorf("%w: %v", store.ErrPhoneExists, err)
			default:
				return fmt.Errorf("%w: %v", store.ErrDuplicate, err)
			}
		case foreignKeyViolationCode:
			return fmt.Errorf("foreign key violation (%s): %w",
				pgErr.ConstraintName, err)
		case checkViolationCode:
			return fmt.Errorf("check constraint violation (%s): %w",
				pgErr.ConstraintName, err)
		}
	}
	return err
}

// CheckRowsAffected examines the number of rows affected by an UPDATE
// or DELETE. Zero affected rows means the target did not exist.
func CheckRowsAffected(result sql.Result, notFound error) error {
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return notFound
	}
	return nil
}
