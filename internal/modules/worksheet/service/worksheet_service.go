package service

import (
	"context"
	"errors"
	"fmt"

	"tutorcast/internal/modules/worksheet/domain"
	worksheetout "tutorcast/internal/modules/worksheet/port/out"
	apperrors "tutorcast/internal/platform/errors"
	"tutorcast/internal/platform/logger"
)

type WorksheetService struct {
	source worksheetout.MetadataSource
	log    *logger.Logger
}

func NewWorksheetService(source worksheetout.MetadataSource, log *logger.Logger) *WorksheetService {
	return &WorksheetService{source: source, log: log.With("service", "WorksheetService")}
}

// LoadPage fetches a fresh metadata snapshot and normalizes one page.
// Missing or undecodable metadata is reported as an empty page, not an error.
func (s *WorksheetService) LoadPage(ctx context.Context, worksheetID string, page int) (domain.PageContent, error) {
	if page <= 0 {
		return domain.PageContent{}, fmt.Errorf("page %d: %w", page, apperrors.ErrInvalidInput)
	}
	if s.source == nil {
		return domain.PageContent{}, fmt.Errorf("metadata source is not configured")
	}
	meta, err := s.source.Load(ctx, worksheetID)
	if err != nil {
		if errors.Is(err, apperrors.ErrInvalidInput) {
			return domain.PageContent{}, err
		}
		s.log.Warn("worksheet metadata unavailable", "worksheet_id", worksheetID, "page", page, "error", err)
		return domain.PageContent{WorksheetID: worksheetID, Page: page, Units: []domain.ContentUnit{}}, nil
	}
	if !meta.Mode.Valid() {
		s.log.Warn("worksheet metadata has no usable mode", "worksheet_id", worksheetID, "mode", string(meta.Mode))
	}
	return domain.BuildPage(worksheetID, meta, page), nil
}

func (s *WorksheetService) List(ctx context.Context) ([]string, error) {
	if s.source == nil {
		return nil, fmt.Errorf("metadata source is not configured")
	}
	return s.source.List(ctx)
}
