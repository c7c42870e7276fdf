package out

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	mediaout "tutorcast/internal/modules/media/port/out"
)

type FileAssetChecker struct {
	root string
}

func NewFileAssetChecker(root string) mediaout.AssetChecker {
	return &FileAssetChecker{root: root}
}

func (c *FileAssetChecker) Check(ctx context.Context, path string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	f, err := os.Open(c.resolve(path))
	if err != nil {
		return fmt.Errorf("open asset: %w", err)
	}
	defer f.Close()
	buf := make([]byte, 1)
	if _, err := io.ReadFull(f, buf); err != nil {
		return fmt.Errorf("asset %s is empty: %w", path, err)
	}
	return nil
}

func (c *FileAssetChecker) resolve(path string) string {
	return filepath.Join(c.root, filepath.FromSlash(strings.TrimPrefix(path, "/")))
}
