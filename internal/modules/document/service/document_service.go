package service

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"tutorcast/internal/modules/document/domain"
	documentout "tutorcast/internal/modules/document/port/out"
	apperrors "tutorcast/internal/platform/errors"
)

type DocumentService struct {
	reader documentout.PageReader
	dir    string
}

func NewDocumentService(reader documentout.PageReader, dir string) *DocumentService {
	return &DocumentService{reader: reader, dir: dir}
}

// Path maps a worksheet id to its PDF inside the document directory.
func (s *DocumentService) Path(worksheetID string) (string, error) {
	id := strings.TrimSpace(worksheetID)
	if id == "" || strings.ContainsAny(id, `/\`) || id == "." || id == ".." {
		return "", fmt.Errorf("worksheet id %q: %w", worksheetID, apperrors.ErrInvalidInput)
	}
	return filepath.Join(s.dir, id+".pdf"), nil
}

func (s *DocumentService) OpenPage(ctx context.Context, worksheetID string, page int) (domain.Page, int, error) {
	if s.reader == nil {
		return domain.Page{}, 0, fmt.Errorf("page reader is not configured")
	}
	path, err := s.Path(worksheetID)
	if err != nil {
		return domain.Page{}, 0, err
	}
	p, total, err := s.reader.ReadPage(ctx, path, domain.ClampPage(page, 0))
	if err != nil {
		return domain.Page{}, 0, fmt.Errorf("load page %d of %s: %w", page, worksheetID, err)
	}
	if p.Width <= 0 || p.Height <= 0 {
		p.Width, p.Height = domain.DefaultPageWidth, domain.DefaultPageHeight
	}
	return p, total, nil
}
