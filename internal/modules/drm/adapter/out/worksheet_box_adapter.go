package out

import (
	"context"

	"tutorcast/internal/modules/drm/domain"
	drmout "tutorcast/internal/modules/drm/port/out"
	"tutorcast/internal/modules/worksheet/dto"
	worksheetin "tutorcast/internal/modules/worksheet/port/in"
)

type WorksheetBoxAdapter struct {
	worksheets worksheetin.Usecase
}

func NewWorksheetBoxAdapter(worksheets worksheetin.Usecase) drmout.UnitBoxSource {
	return &WorksheetBoxAdapter{worksheets: worksheets}
}

func (a *WorksheetBoxAdapter) Boxes(ctx context.Context, worksheetID string, page int) (bool, []domain.Box, error) {
	out, err := a.worksheets.LoadPage(ctx, dto.LoadPageInput{WorksheetID: worksheetID, Page: page})
	if err != nil {
		return false, nil, err
	}
	boxes := make([]domain.Box, 0, len(out.Units))
	for _, u := range out.Units {
		boxes = append(boxes, domain.Box{
			UnitID: u.ID,
			Rect:   domain.Rect{X: u.X, Y: u.Y, Width: u.Width, Height: u.Height},
		})
	}
	return out.DRMProtected, boxes, nil
}
