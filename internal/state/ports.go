// Package state defines the persistence ports for the habit collection and
// the deterministic seed dataset used when stored state is absent or
// unreadable.
package state

import (
	"context"

	"habits/internal/core"
)

// Ports for outbound persistence adapters.
type (
	Loader interface {
		Load(ctx context.Context) ([]core.Habit, error)
	}

	Saver interface {
		Save(ctx context.Context, habits []core.Habit) error
	}

	// Store combines loading and saving of the habit collection.
	Store interface {
		Loader
		Saver
	}
)
