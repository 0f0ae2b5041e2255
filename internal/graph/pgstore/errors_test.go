package pgstore

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func TestConvertDBError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected error
	}{
		{
			name:     "nil error",
			err:      nil,
			expected: nil,
		},
		{
			name:     "unique violation",
			err:      &pgconn.PgError{Code: "23505", Detail: "Key (guid)=(g-1) already exists."},
			expected: ErrUniqueViolation,
		},
		{
			name:     "foreign key violation",
			err:      &pgconn.PgError{Code: "23503", Detail: "Key (out_guid)=(g-9) is not present."},
			expected: ErrForeignKeyViolation,
		},
		{
			name:     "not null violation",
			err:      &pgconn.PgError{Code: "23502", ColumnName: "label"},
			expected: ErrNotNullViolation,
		},
		{
			name:     "wrapped pg error",
			err:      fmt.Errorf("put node: %w", &pgconn.PgError{Code: "23505"}),
			expected: ErrUniqueViolation,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			converted := ConvertDBError(tt.err)
			if tt.expected == nil {
				assert.NoError(t, converted)
				return
			}
			assert.ErrorIs(t, converted, tt.expected)
		})
	}

	t.Run("unrelated errors pass through", func(t *testing.T) {
		cause := errors.New("connection refused")
		assert.Same(t, cause, ConvertDBError(cause))
	})

	t.Run("unmapped pg codes pass through", func(t *testing.T) {
		cause := &pgconn.PgError{Code: "57014"}
		assert.Equal(t, error(cause), ConvertDBError(cause))
	})
}
