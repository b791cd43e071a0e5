// Package storage provides the durable string key-value medium the store persists to.
package storage

import (
	"context"
	"errors"
)

// ErrClosed is returned by operations on a closed storage.
var ErrClosed = errors.New("storage: closed")

// Storage is a durable string key-value medium.
// Get reports found=false, with a nil error, when the key is absent.
type Storage interface {
	Get(ctx context.Context, key string) (value string, found bool, err error)
	Set(ctx context.Context, key, value string) error
	Remove(ctx context.Context, key string) error
	Ping(ctx context.Context) error
	Close() error
}
