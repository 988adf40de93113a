package cache

import "context"

// Noop satisfies Store without caching anything. Used in tests and when
// caching is disabled by config.
type Noop struct{}

func NewNoop() *Noop { return &Noop{} }

func (Noop) Get(ctx context.Context, key string, dest any) (bool, error) { return false, nil }

func (Noop) Set(ctx context.Context, key string, val any) error { return nil }

func (Noop) Delete(ctx context.Context, keys ...string) error { return nil }

func (Noop) Clear(ctx context.Context) error { return nil }
