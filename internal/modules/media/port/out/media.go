package out

import "context"

// AssetChecker returns nil once the asset at path has delivered enough bytes to start playback.
type AssetChecker interface {
	Check(ctx context.Context, path string) error
}
