package cache

import (
	"context"

	"github.com/tmorland/facegen/internal/portrait"
)

// Noop caches nothing. It is the default when caching is disabled and
// guarantees zero persistence side effects.
type Noop struct{}

func (*Noop) Key(Params) string { return "" }

func (*Noop) Get(context.Context, string) (*portrait.Result, bool) { return nil, false }

func (*Noop) Put(context.Context, string, *portrait.Result) {}

func (*Noop) Clear() error { return nil }
