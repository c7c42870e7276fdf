package in

import (
	"context"

	progressdto "tutorcast/internal/modules/progress/dto"
	progressin "tutorcast/internal/modules/progress/port/in"
)

type CLIHandler struct {
	usecase progressin.Usecase
}

func NewCLIHandler(usecase progressin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) Show(ctx context.Context, worksheetID string, page int) (progressdto.RecordOutput, error) {
	return h.usecase.Load(ctx, progressdto.PageKey{WorksheetID: worksheetID, Page: page})
}

func (h CLIHandler) Tutor(ctx context.Context) (string, error) {
	return h.usecase.GetTutor(ctx)
}

func (h CLIHandler) SetTutor(ctx context.Context, tutor string) error {
	return h.usecase.SetTutor(ctx, tutor)
}
