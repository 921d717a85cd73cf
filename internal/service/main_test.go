package service

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

// freshRecord reports whether a record handed to a repository Create carries a
// generated UUID and matching, non-zero UTC timestamps.
func freshRecord(id string, createdAt, updatedAt time.Time) bool {
	if _, err := uuid.Parse(id); err != nil {
		return false
	}
	return !createdAt.IsZero() && createdAt.Equal(updatedAt) && createdAt.Location() == time.UTC
}
