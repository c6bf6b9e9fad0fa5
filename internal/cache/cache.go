package cache

import (
	"context"

	"github.com/tmorland/facegen/internal/portrait"
)

// Params are the exact inputs that determine a generation's output. Any
// change to any field, including a nil vs non-nil seed, must yield a
// different key.
type Params struct {
	Prompt   string
	Negative string
	Model    string
	Size     int
	Seed     *int64
}

// Cache maps a parameter fingerprint to a previously produced portrait.
// Implementations absorb their own I/O failures: a broken read is a miss
// and a broken write is logged, never an error.
type Cache interface {
	Key(p Params) string
	Get(ctx context.Context, key string) (*portrait.Result, bool)
	Put(ctx context.Context, key string, result *portrait.Result)
	Clear() error
}
