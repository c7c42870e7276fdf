package usecase

import (
	"context"
	"fmt"

	"tutorcast/internal/modules/drm/dto"
	drmin "tutorcast/internal/modules/drm/port/in"
	"tutorcast/internal/modules/drm/service"
	apperrors "tutorcast/internal/platform/errors"
)

type Interactor struct {
	svc *service.LayoutService
}

func NewInteractor(svc *service.LayoutService) drmin.Usecase {
	return &Interactor{svc: svc}
}

func (i *Interactor) Layout(ctx context.Context, input dto.LayoutInput) (dto.LayoutOutput, error) {
	if input.ContainerWidth <= 0 {
		return dto.LayoutOutput{}, fmt.Errorf("container width must be positive: %w", apperrors.ErrInvalidInput)
	}
	boundary, layout, err := i.svc.Layout(ctx, input.WorksheetID, input.Page, input.ContainerWidth, input.ContainerHeight)
	if err != nil {
		return dto.LayoutOutput{}, err
	}
	out := dto.LayoutOutput{
		WorksheetID: input.WorksheetID,
		Page:        input.Page,
		Protected:   layout.Protected,
		PageWidth:   boundary.PageWidth,
		PageHeight:  boundary.PageHeight,
		Scale:       layout.Viewport.Scale,
		OffsetX:     layout.Viewport.OffsetX,
		OffsetY:     layout.Viewport.OffsetY,
		Windows:     make([]dto.WindowOutput, 0, len(layout.Windows)),
	}
	for _, w := range layout.Windows {
		out.Windows = append(out.Windows, dto.WindowOutput{UnitID: w.UnitID, X: w.Rect.X, Y: w.Rect.Y, Width: w.Rect.Width, Height: w.Rect.Height})
	}
	return out, nil
}
