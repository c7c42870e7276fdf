package in

import (
	"context"

	"tutorcast/internal/modules/drm/dto"
	drmin "tutorcast/internal/modules/drm/port/in"
)

type CLIHandler struct {
	usecase drmin.Usecase
}

func NewCLIHandler(usecase drmin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) Layout(ctx context.Context, worksheetID string, page int, width, height float64) (dto.LayoutOutput, error) {
	return h.usecase.Layout(ctx, dto.LayoutInput{WorksheetID: worksheetID, Page: page, ContainerWidth: width, ContainerHeight: height})
}
