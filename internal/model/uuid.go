package model

import "github.com/google/uuid"

// NewID returns a fresh unique identifier for a bookmark entry.
func NewID() string {
	return uuid.New().String()
}
