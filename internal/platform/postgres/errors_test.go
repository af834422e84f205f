package postgres

import (
	"database/sql"
	"errors"
	"fmt"
	"testing"

	"github.com/MaharajTanim/apricity/internal/store"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func TestMapError(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		input    error
		expected error
	}{
		{
			name:     "nil error",
			input:    nil,
			expected: nil,
		},
		{
			name:     "no rows maps to not found",
			input:    sql.ErrNoRows,
			expected: store.ErrNotFound,
		},
		{
			name:     "unique violation maps to duplicate",
			input:    &pgconn.PgError{Code: uniqueViolationCode},
			expected: store.ErrDuplicate,
		},
		{
			name:     "foreign key violation maps to invalid entity",
			input:    &pgconn.PgError{Code: foreignKeyViolationCode, ConstraintName: "analyses_entry_id_fkey"},
			expected: store.ErrInvalidEntity,
		},
		{
			name:     "check violation maps to invalid entity",
			input:    &pgconn.PgError{Code: checkViolationCode},
			expected: store.ErrInvalidEntity,
		},
		{
			name:     "not null violation maps to invalid entity",
			input:    &pgconn.PgError{Code: notNullViolationCode, ColumnName: "text"},
			expected: store.ErrInvalidEntity,
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			mapped := MapError(tc.input)
			if tc.expected == nil {
				assert.NoError(t, mapped)
				return
			}
			assert.ErrorIs(t, mapped, tc.expected)
		})
	}
}

func TestMapErrorPassesThroughUnknownErrors(t *testing.T) {
	t.Parallel()

	original := fmt.Errorf("connection reset")
	assert.Equal(t, original, MapError(original))

	pgErr := &pgconn.PgError{Code: "42P01"} // undefined table
	mapped := MapError(pgErr)
	var target *pgconn.PgError
	assert.True(t, errors.As(mapped, &target))
	assert.False(t, store.IsNotFoundError(mapped))
}

// fakeResult implements sql.Result for rows-affected checks.
type fakeResult struct {
	rows    int64
	rowsErr error
}

func (r fakeResult) LastInsertId() (int64, error) { return 0, nil }
func (r fakeResult) RowsAffected() (int64, error) { return r.rows, r.rowsErr }

func TestCheckRowsAffected(t *testing.T) {
	t.Parallel()

	t.Run("rows affected passes", func(t *testing.T) {
		t.Parallel()

		assert.NoError(t, CheckRowsAffected(fakeResult{rows: 1}, "entry"))
	})

	t.Run("zero rows maps to not found", func(t *testing.T) {
		t.Parallel()

		err := CheckRowsAffected(fakeResult{rows: 0}, "entry")
		assert.ErrorIs(t, err, store.ErrNotFound)
		assert.Contains(t, err.Error(), "entry")
	})

	t.Run("rows affected failure is not a not found", func(t *testing.T) {
		t.Parallel()

		rowsErr := errors.New("driver does not support RowsAffected")
		err := CheckRowsAffected(fakeResult{rowsErr: rowsErr}, "entry")
		assert.ErrorIs(t, err, rowsErr)
		assert.False(t, store.IsNotFoundError(err))
	})
}
