package identity

import "testing"

func TestNewIDUnique(t *testing.T) {
	g := New()
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		id := g.NewID()
		if id == "" {
			t.Fatal("empty id")
		}
		if seen[id] {
			t.Fatalf("duplicate id %q", id)
		}
		seen[id] = true
	}
}

func TestNewColorCycles(t *testing.T) {
	g := New()
	first := make([]string, len(palette))
	for i := range first {
		first[i] = g.NewColor()
	}
	for i, want := range first {
		if got := g.NewColor(); got != want {
			t.Errorf("cycle position %d: got %q, want %q", i, got, want)
		}
	}
}
