package service

import (
	"database/sql"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"reviewapi/internal/repository"
)

func TestTranslate(t *testing.T) {
	fk := fmt.Errorf("%w: reviews_author_id_fkey", repository.ErrReferenced)
	boom := errors.New("boom")

	tests := []struct {
		name     string
		err      error
		wantKind error
		wantMsg  string
	}{
		{name: "missing row", err: sql.ErrNoRows, wantKind: ErrNotFound, wantMsg: "review not found"},
		{name: "unique violation", err: repository.ErrDuplicate, wantKind: ErrConflict, wantMsg: "review already exists"},
		{name: "foreign key violation", err: fk, wantKind: ErrNotFound, wantMsg: "referenced record not found"},
		{name: "foreign key with named parent", err: referenced(fk, "author"), wantKind: ErrNotFound, wantMsg: "author not found"},
		{name: "unknown error passes through", err: boom},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := translate(tt.err, "review", "review already exists")
			if tt.wantKind == nil {
				assert.Same(t, tt.err, got)
				return
			}
			assert.ErrorIs(t, got, tt.wantKind)
			assert.EqualError(t, got, tt.wantMsg)
		})
	}

	assert.NoError(t, translate(nil, "review", ""))
	assert.Same(t, boom, referenced(boom, "author"))
}
