package out

import (
	"context"

	"tutorcast/internal/modules/drm/domain"
)

// UnitBoxSource reports a page's DRM flag and its units' document-space boxes.
type UnitBoxSource interface {
	Boxes(ctx context.Context, worksheetID string, page int) (bool, []domain.Box, error)
}

type PageGeometry interface {
	Size(ctx context.Context, worksheetID string, page int) (float64, float64, error)
}
