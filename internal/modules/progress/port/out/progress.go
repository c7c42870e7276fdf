package out

import "context"

// KVStore is session-scoped string storage. Get reports found=false for missing keys.
type KVStore interface {
	Get(ctx context.Context, key string) (value string, found bool, err error)
	Set(ctx context.Context, key, value string) error
	Close() error
}
