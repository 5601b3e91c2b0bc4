// Package blob provides the key-value byte storage the CMS collection is mirrored into.
package blob

import (
	"context"
	"errors"
	"fmt"
	"regexp"
)

// Store is a goroutine-safe key-value store of opaque byte blobs.
type Store interface {
	// Load returns the blob stored under key. ok is false when the key does not exist.
	Load(ctx context.Context, key string) (data []byte, ok bool, err error)
	// Save replaces the blob stored under key.
	Save(ctx context.Context, key string, data []byte) error
}

var ErrInvalidKey = errors.New("invalid blob key")

var keyPattern = regexp.MustCompile(`^[A-Za-z0-9_.-]{1,128}$`)

// ValidateKey accepts keys made of letters, digits, '_', '.' and '-' that are safe as file names.
func ValidateKey(key string) error {
	if !keyPattern.MatchString(key) || key == "." || key == ".." {
		return fmt.Errorf("%w: %q", ErrInvalidKey, key)
	}
	return nil
}
