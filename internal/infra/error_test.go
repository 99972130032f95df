//go:build unit

package infra_test

import (
	"errors"
	"testing"

	"ntzs-issuer/internal/infra"
	"ntzs-issuer/internal/pkg/errs"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWrapRepoErr_Classification(t *testing.T) {
	testCases := []struct {
		name     string
		err      error
		expected infra.RepositoryErrorKind
	}{
		{
			name:     "no rows maps to NOT_FOUND",
			err:      pgx.ErrNoRows,
			expected: infra.KindNotFound,
		},
		{
			name:     "unique violation maps to DUPLICATE_KEY",
			err:      &pgconn.PgError{Code: "23505", Message: "duplicate key value violates unique constraint"},
			expected: infra.KindDuplicateKey,
		},
		{
			name:     "foreign key violation maps to FOREIGN_KEY_VIOLATED",
			err:      &pgconn.PgError{Code: "23503", Message: "violates foreign key constraint"},
			expected: infra.KindForeignKeyViolated,
		},
		{
			name:     "other pg error maps to DB_FAILURE",
			err:      &pgconn.PgError{Code: "40001", Message: "could not serialize access"},
			expected: infra.KindDBFailure,
		},
		{
			name:     "plain error maps to DB_FAILURE",
			err:      errors.New("connection refused"),
			expected: infra.KindDBFailure,
		},
		{
			name:     "wrapped no rows is still classified",
			err:      errs.Wrap(pgx.ErrNoRows, "failed to find deposit"),
			expected: infra.KindNotFound,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			wrapped := infra.WrapRepoErr("operation failed", tc.err)

			require.Error(t, wrapped)
			assert.True(t, infra.IsKind(wrapped, tc.expected),
				"expected kind [%v] but got [%v]", tc.expected, wrapped)
		})
	}
}

func TestWrapRepoErr_ExplicitKindWins(t *testing.T) {
	wrapped := infra.WrapRepoErr("deposit not found", pgx.ErrNoRows, infra.KindNotFound)
	assert.True(t, infra.IsKind(wrapped, infra.KindNotFound))

	// An explicit kind overrides whatever classification would say.
	forced := infra.WrapRepoErr("treat as conflict", pgx.ErrNoRows, infra.KindDBFailure)
	assert.True(t, infra.IsKind(forced, infra.KindDBFailure))
	assert.False(t, infra.IsKind(forced, infra.KindNotFound))
}

func TestWrapRepoErr_PreservesCause(t *testing.T) {
	cause := &pgconn.PgError{Code: "23505", Message: "duplicate key"}
	wrapped := infra.WrapRepoErr("failed to insert deposit", cause)

	var pgErr *pgconn.PgError
	require.True(t, errors.As(wrapped, &pgErr))
	assert.Equal(t, "23505", pgErr.Code)
	assert.Contains(t, wrapped.Error(), "failed to insert deposit")
}

func TestIsKind_NonRepositoryError(t *testing.T) {
	assert.False(t, infra.IsKind(errors.New("plain"), infra.KindDBFailure))
	assert.False(t, infra.IsKind(nil, infra.KindNotFound))
}
