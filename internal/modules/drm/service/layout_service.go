package service

import (
	"context"
	"fmt"

	"tutorcast/internal/modules/drm/domain"
	drmout "tutorcast/internal/modules/drm/port/out"
)

type LayoutService struct {
	boxes    drmout.UnitBoxSource
	geometry drmout.PageGeometry
}

func NewLayoutService(boxes drmout.UnitBoxSource, geometry drmout.PageGeometry) *LayoutService {
	return &LayoutService{boxes: boxes, geometry: geometry}
}

// Boundary reads the DRM flag and geometry fresh for every request.
func (s *LayoutService) Boundary(ctx context.Context, worksheetID string, page int) (domain.Boundary, error) {
	if s.boxes == nil || s.geometry == nil {
		return domain.Boundary{}, fmt.Errorf("drm ports are not configured")
	}
	protected, boxes, err := s.boxes.Boxes(ctx, worksheetID, page)
	if err != nil {
		return domain.Boundary{}, err
	}
	width, height, err := s.geometry.Size(ctx, worksheetID, page)
	if err != nil {
		return domain.Boundary{}, err
	}
	return domain.Boundary{Protected: protected, PageWidth: width, PageHeight: height, Boxes: boxes}, nil
}

func (s *LayoutService) Layout(ctx context.Context, worksheetID string, page int, containerW, containerH float64) (domain.Boundary, domain.Layout, error) {
	boundary, err := s.Boundary(ctx, worksheetID, page)
	if err != nil {
		return domain.Boundary{}, domain.Layout{}, err
	}
	return boundary, boundary.Resize(containerW, containerH), nil
}
