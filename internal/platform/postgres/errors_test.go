package postgres

import (
	"database/sql"
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"

	"github.com/hrsys/candidate-api/internal/store"
)

func pgError(code, constraint string) error {
	return &pgconn.PgError{Code: code, ConstraintName: constraint}
}

func TestMapError(t *testing.T) {
	t.Parallel()

	assert.Nil(t, MapError(nil))

	err := MapError(sql.ErrNoRows)
	assert.ErrorIs(t, err, store.ErrNotFound)

	err = MapError(pgError("23505", "candidates_email_key"))
	assert.ErrorIs(t, err, store.ErrEmailExists)

	err = MapError(pgError("23505", "candidates_phone_key"))
	assert.ErrorIs(t, err, store.ErrPhoneExists)

	err = MapError(pgError("23505", "some_other_unique"))
	assert.ErrorIs(t, err, store.ErrDuplicate)

	// Wrapped pg errors still map.
	wrapped := fmt.Errorf("insert failed: %w", pgError("23505", "candidates_email_key"))
	assert.ErrorIs(t, MapError(wrapped), store.ErrEmailExists)

	// Unrelated errors pass through unchanged.
	plain := errors.New("connection reset")
	assert.Equal(t, plain, MapError(plain))
}

func TestIsUniqueViolation(t *testing.T) {
	t.Parallel()
	assert.True(t, IsUniqueViolation(pgError("23505", "x")))
	assert.False(t, IsUniqueViolation(pgError("23503", "x")))
	assert.False(t, IsUniqueViolation(errors.New("nope")))
	assert.False(t, IsUniqueViolation(nil))
}

func TestIsForeignKeyViolation(t *testing.T) {
	t.Parallel()
	assert.True(t, IsForeignKeyViolation(pgError("23503", "x")))
	assert.False(t, IsForeignKeyViolation(pgError("23505", "x")))
	assert.False(t, IsForeignKeyViolation(nil))
}
