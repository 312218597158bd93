package convert

import (
	"sync"

	"github.com/google/uuid"
)

// TraceTokenGenerator generates unique trace tokens for conversion
// correlation. Implemented by UUIDv7Generator (production) and
// FixedGenerator (tests).
type TraceTokenGenerator interface {
	Generate() string
}

// UUIDv7Generator generates time-sortable UUIDv7 trace tokens.
//
// UUIDv7 embeds a timestamp in the most significant bits, making tokens
// sortable by creation time. Log lines from overlapping conversions can
// be regrouped and ordered by token alone.
//
// Uses github.com/google/uuid package for RFC 4122 compliant UUIDs.
//
// Thread-safety: UUIDv7Generator is stateless and safe for concurrent use.
type UUIDv7Generator struct{}

// Generate creates a new UUIDv7 and returns it as a hyphenated string.
//
// Format: "550e8400-e29b-41d4-a716-446655440000" (36 characters)
//
// Panics if UUID generation fails (should never happen in practice).
func (g UUIDv7Generator) Generate() string {
	return uuid.Must(uuid.NewV7()).String()
}

// FixedGenerator returns predetermined trace tokens for testing.
//
// This enables deterministic conversion results and golden comparison.
// Tests provide a known sequence of tokens and assert exact output.
//
// Thread-safety: FixedGenerator is safe for concurrent use via internal mutex.
type FixedGenerator struct {
	mu     sync.Mutex
	tokens []string
	idx    int
}

// NewFixedGenerator creates a generator that returns tokens in order.
//
// Example:
//
//	gen := NewFixedGenerator("trace-1", "trace-2", "trace-3")
//	gen.Generate() // "trace-1"
//	gen.Generate() // "trace-2"
//	gen.Generate() // "trace-3"
//	gen.Generate() // panic: all tokens exhausted
func NewFixedGenerator(tokens ...string) *FixedGenerator {
	return &FixedGenerator{
		tokens: tokens,
		idx:    0,
	}
}

// Generate returns the next predetermined token.
// Thread-safe: uses mutex to protect index access.
//
// Panics if all tokens have been consumed. This is a fail-fast approach
// to catch test misconfiguration (test ran more conversions than expected).
func (g *FixedGenerator) Generate() string {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.idx >= len(g.tokens) {
		panic("FixedGenerator: all tokens exhausted")
	}
	token := g.tokens[g.idx]
	g.idx++
	return token
}
