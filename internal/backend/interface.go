// Package backend selects and constructs the persistence backend for the
// habit collection based on configuration.
package backend

import (
	"context"

	"habits/internal/config"
	"habits/internal/state"
)

// CleanupFunc releases backend resources.
type CleanupFunc func() error

// Result contains the constructed store and an optional cleanup function.
type Result struct {
	Store   state.Store
	Cleanup CleanupFunc
}

// Factory creates state stores based on configuration.
type Factory interface {
	CreateStore(ctx context.Context, cfg Config) (*Result, error)
}

// Config holds configuration for store creation.
type Config struct {
	Type Type

	// SQLite specific
	SQLiteDBPath string

	// Memory backend specific
	SeedFile string
}

// Type identifies a persistence backend.
type Type string

const (
	SQLiteBackend Type = "sqlite"
	MemoryBackend Type = "memory"
)

// String implements fmt.Stringer.
func (t Type) String() string {
	return string(t)
}

// IsValid reports whether the backend type is known.
func (t Type) IsValid() bool {
	switch t {
	case SQLiteBackend, MemoryBackend:
		return true
	default:
		return false
	}
}

// FromAppConfig maps the application configuration onto a backend config.
func FromAppConfig(cfg *config.Config) Config {
	return Config{
		Type:         Type(cfg.DataBackend),
		SQLiteDBPath: cfg.SQLiteDBPath,
		SeedFile:     cfg.SeedFile,
	}
}
