// internal/storage/storage.go
package storage

import "context"

// Store is the narrow object-storage surface the application consumes.
// Keys are namespaced by prefix (e.g. "pictures", "qr").
type Store interface {
	SaveFile(ctx context.Context, prefix, key string, data []byte) error
	DeleteFile(ctx context.Context, prefix, key string) error
	Read(ctx context.Context, prefix, key string) ([]byte, error)
}
