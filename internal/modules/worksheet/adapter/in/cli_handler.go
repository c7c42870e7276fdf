package in

import (
	"context"

	"tutorcast/internal/modules/worksheet/dto"
	worksheetin "tutorcast/internal/modules/worksheet/port/in"
)

type CLIHandler struct {
	usecase worksheetin.Usecase
}

func NewCLIHandler(usecase worksheetin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) LoadPage(ctx context.Context, worksheetID string, page int) (dto.PageOutput, error) {
	return h.usecase.LoadPage(ctx, dto.LoadPageInput{WorksheetID: worksheetID, Page: page})
}

func (h CLIHandler) ListWorksheets(ctx context.Context) ([]string, error) {
	return h.usecase.ListWorksheets(ctx)
}
