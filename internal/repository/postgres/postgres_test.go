package postgres

import (
	"database/sql"
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"reviewapi/internal/repository"
)

func TestContainsPattern(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"", ""},
		{"   ", ""},
		{"phone", "%phone%"},
		{" 50% off_ ", `%50\% off\_%`},
		{`a\b`, `%a\\b%`},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, containsPattern(tt.in))
		})
	}
}

func TestTextArray_Scan(t *testing.T) {
	t.Run("text literal", func(t *testing.T) {
		var got []string
		require.NoError(t, textArray{&got}.Scan("{happy,\"very sad\"}"))
		assert.Equal(t, []string{"happy", "very sad"}, got)
	})

	t.Run("empty literal", func(t *testing.T) {
		var got []string
		require.NoError(t, textArray{&got}.Scan([]byte("{}")))
		assert.NotNil(t, got)
		assert.Empty(t, got)
	})

	t.Run("null", func(t *testing.T) {
		got := []string{"stale"}
		require.NoError(t, textArray{&got}.Scan(nil))
		assert.NotNil(t, got)
		assert.Empty(t, got)
	})
}

func TestMapError(t *testing.T) {
	dup := &pgconn.PgError{Code: "23505", ConstraintName: "users_email_key"}
	assert.ErrorIs(t, mapError(dup), repository.ErrDuplicate)
	assert.ErrorIs(t, mapError(fmt.Errorf("wrapped: %w", dup)), repository.ErrDuplicate)

	fk := &pgconn.PgError{Code: "23503", ConstraintName: "collections_consumer_auth_id_fkey"}
	assert.ErrorIs(t, mapError(fk), repository.ErrReferenced)
	assert.NotErrorIs(t, mapError(fk), repository.ErrDuplicate)
	assert.Contains(t, mapError(fk).Error(), "collections_consumer_auth_id_fkey")

	check := &pgconn.PgError{Code: "23514"}
	assert.Equal(t, error(check), mapError(check))

	assert.True(t, IsNoRowsError(fmt.Errorf("find: %w", sql.ErrNoRows)))
	assert.False(t, IsNoRowsError(errors.New("boom")))
}

func TestArrayArgs(t *testing.T) {
	assert.Equal(t, []string{}, arrayArg(nil))
	assert.Equal(t, []string{"a"}, arrayArg([]string{"a"}))

	assert.Nil(t, optionalArrayArg(nil))
	var empty []string
	assert.Equal(t, []string{}, optionalArrayArg(&empty))
}
