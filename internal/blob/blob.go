// Package blob stores uploaded media files on disk or in an S3 compatible bucket.
package blob

import (
	"context"
	"errors"
	"fmt"

	"github.com/signalfire/auto-featured/internal/config"
)

var (
	// ErrEmptyKey is returned when a blob is written without key.
	ErrEmptyKey = errors.New("blob key is empty")
	// ErrInvalidKey is returned for keys leaving the storage root.
	ErrInvalidKey = errors.New("blob key is invalid")
	// ErrUnknownDriver is returned by New for an unsupported media driver.
	ErrUnknownDriver = errors.New("unknown media driver")
)

// Store persists media files under a key relative to the media base URL.
type Store interface {
	Put(ctx context.Context, key string, data []byte, contentType string) error
	Delete(ctx context.Context, key string) error
}

// New creates the store selected by cfg.Driver.
func New(ctx context.Context, cfg config.Media) (Store, error) {
	switch cfg.Driver {
	case "", "local":
		return NewLocal(cfg.Path)
	case "s3":
		return NewS3(ctx, cfg.S3)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownDriver, cfg.Driver)
	}
}
