package repository

import (
	"context"
	"errors"
	"fmt"
)

// ErrNotFound is returned by Get when a key has never been written.
var ErrNotFound = errors.New("key not found")

// UpdateFunc receives the current value (nil when the key is absent) and
// returns the value to store.
type UpdateFunc func(current []byte) ([]byte, error)

// Store is the key-value persistence the app runs on. Values are opaque
// JSON documents.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	// Update performs an atomic read-modify-write of key. If fn returns an
	// error nothing is written.
	Update(ctx context.Context, key string, fn UpdateFunc) error
	Close() error
}

const (
	DriverMemory   = "memory"
	DriverPostgres = "postgres"
	DriverRedis    = "redis"
)

// Options selects and configures a Store driver.
type Options struct {
	Driver        string
	DatabaseURL   string
	Table         string
	RedisAddr     string
	RedisPassword string
	RedisDB       int
	RedisPoolSize int
}

// Open connects the driver named in opts and checks it is reachable.
func Open(ctx context.Context, opts Options) (Store, error) {
	switch opts.Driver {
	case "", DriverMemory:
		return NewMemoryStore(), nil
	case DriverPostgres:
		return OpenPostgresStore(ctx, opts.DatabaseURL, opts.Table)
	case DriverRedis:
		client := NewRedisClient(opts.RedisAddr, opts.RedisPassword, opts.RedisDB, opts.RedisPoolSize)
		if err := Ping(ctx, client); err != nil {
			_ = client.Close()
			return nil, err
		}
		return NewRedisStore(client), nil
	default:
		return nil, fmt.Errorf("unknown store driver %q", opts.Driver)
	}
}
