package out

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"tutorcast/internal/modules/worksheet/domain"
	worksheetout "tutorcast/internal/modules/worksheet/port/out"
	apperrors "tutorcast/internal/platform/errors"
)

var metadataExts = []string{".json", ".yaml", ".yml"}

// FileMetadataSource reads one metadata file per worksheet from a directory.
type FileMetadataSource struct {
	dir string
}

func NewFileMetadataSource(dir string) worksheetout.MetadataSource {
	return &FileMetadataSource{dir: dir}
}

func (s *FileMetadataSource) Load(_ context.Context, worksheetID string) (domain.Metadata, error) {
	if err := validateID(worksheetID); err != nil {
		return domain.Metadata{}, err
	}
	for _, ext := range metadataExts {
		path := filepath.Join(s.dir, worksheetID+ext)
		raw, err := os.ReadFile(path)
		if err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return domain.Metadata{}, fmt.Errorf("read worksheet metadata: %w", err)
		}
		if ext == ".json" {
			return DecodeJSON(raw)
		}
		return DecodeYAML(raw)
	}
	return domain.Metadata{}, fmt.Errorf("worksheet %q: %w", worksheetID, apperrors.ErrNotFound)
}

func (s *FileMetadataSource) List(_ context.Context) ([]string, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		if os.IsNotExist(err) {
			return []string{}, nil
		}
		return nil, fmt.Errorf("list worksheets: %w", err)
	}
	seen := map[string]struct{}{}
	ids := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		ext := filepath.Ext(entry.Name())
		if !isMetadataExt(ext) {
			continue
		}
		id := strings.TrimSuffix(entry.Name(), ext)
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids, nil
}

func isMetadataExt(ext string) bool {
	for _, e := range metadataExts {
		if e == ext {
			return true
		}
	}
	return false
}

func validateID(worksheetID string) error {
	if strings.TrimSpace(worksheetID) == "" || strings.ContainsAny(worksheetID, `/\`) || strings.HasPrefix(worksheetID, ".") {
		return fmt.Errorf("worksheet id %q: %w", worksheetID, apperrors.ErrInvalidInput)
	}
	return nil
}
