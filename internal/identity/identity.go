// Package identity provides the id and color generator used when creating
// habits, keeping the core transformations deterministic and testable.
package identity

import (
	"sync"

	"github.com/google/uuid"
)

// palette holds the accent colors cycled through as habits are created.
var palette = []string{
	"#4f7cac",
	"#6b9080",
	"#c17767",
	"#8e7cc3",
	"#b5a642",
	"#5f9ea0",
}

// Generator implements core.Generator with UUID ids and a rotating color
// palette.
type Generator struct {
	mu   sync.Mutex
	next int
}

func New() *Generator {
	return &Generator{}
}

func (g *Generator) NewID() string {
	return uuid.NewString()
}

func (g *Generator) NewColor() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	color := palette[g.next%len(palette)]
	g.next++
	return color
}
