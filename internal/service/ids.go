package service

import (
	"time"

	"github.com/google/uuid"
)

// timeNow is the clock used for created_at/updated_at; tests may pin it.
var timeNow = func() time.Time { return time.Now().UTC() }

func newID() string { return uuid.New().String() }
