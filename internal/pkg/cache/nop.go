package cache

import (
	"context"
	"time"
)

type nopCache struct {
	serviceName string
}

// NewNopCache returns a Cache that stores nothing. Used when no Redis
// address is configured.
func NewNopCache(serviceName string) Cache {
	return nopCache{serviceName: serviceName}
}

func (nopCache) Set(context.Context, string, interface{}, time.Duration) error { return nil }
func (nopCache) Get(context.Context, string) (string, error)                   { return "", nil }
func (nopCache) Delete(context.Context, ...string) error                       { return nil }
func (nopCache) Close() error                                                  { return nil }

func (n nopCache) GenerateKey(operation, key string) string {
	return GenerateKey(n.serviceName, operation, key)
}
