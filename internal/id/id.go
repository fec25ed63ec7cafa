// Package id generates prefixed ULID request identifiers.
//
// ULIDs are lexicographically sortable, so request IDs order by issue time
// in logs without a separate timestamp. The "req_" prefix keeps them
// recognizable when they show up in server-side traces.
package id

import (
	"crypto/rand"
	"io"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
)

// RequestID identifies a single outgoing request.
type RequestID string

func (r RequestID) String() string { return string(r) }

const requestPrefix = "req_"

// Generator produces ULIDs from a guarded entropy source.
type Generator struct {
	entropy   io.Reader
	entropyMu sync.Mutex
}

// NewGenerator creates a generator with cryptographically secure entropy.
func NewGenerator() *Generator {
	return &Generator{entropy: rand.Reader}
}

// NewGeneratorWithEntropy creates a generator with a custom entropy source,
// useful for deterministic tests.
func NewGeneratorWithEntropy(entropy io.Reader) *Generator {
	return &Generator{entropy: entropy}
}

// NewRequestID generates a prefixed request ID.
func (g *Generator) NewRequestID() RequestID {
	g.entropyMu.Lock()
	defer g.entropyMu.Unlock()

	return RequestID(requestPrefix + ulid.MustNew(ulid.Timestamp(time.Now()), g.entropy).String())
}
