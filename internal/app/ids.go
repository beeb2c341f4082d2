package app

import "github.com/google/uuid"

// newMatchID returns a random UUIDv4 string.
func newMatchID() string { return uuid.NewString() }
