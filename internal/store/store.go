// Package store persists the ordered, append-only sequence of prompt records.
package store

import (
	"context"

	"github.com/nikhilbhutani/promptpulse/internal/models"
)

// Store is the record store contract. ReadAll returns records in insertion
// order; Append adds one record at the end. Records are never updated or
// deleted.
type Store interface {
	ReadAll(ctx context.Context) ([]models.Prompt, error)
	Append(ctx context.Context, p models.Prompt) error
}

// Pinger is implemented by stores that can report their own reachability.
type Pinger interface {
	Ping(ctx context.Context) error
}
