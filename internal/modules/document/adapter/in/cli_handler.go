package in

import (
	"context"

	"tutorcast/internal/modules/document/dto"
	documentin "tutorcast/internal/modules/document/port/in"
)

type CLIHandler struct {
	usecase documentin.Usecase
}

func NewCLIHandler(usecase documentin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) OpenPage(ctx context.Context, worksheetID string, page int) (dto.PageOutput, error) {
	return h.usecase.OpenPage(ctx, dto.OpenPageInput{WorksheetID: worksheetID, Page: page})
}
