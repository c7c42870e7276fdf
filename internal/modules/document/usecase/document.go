package usecase

import (
	"context"

	"tutorcast/internal/modules/document/dto"
	documentin "tutorcast/internal/modules/document/port/in"
	"tutorcast/internal/modules/document/service"
)

type Interactor struct {
	svc *service.DocumentService
}

func NewInteractor(svc *service.DocumentService) documentin.Usecase {
	return &Interactor{svc: svc}
}

func (i *Interactor) OpenPage(ctx context.Context, input dto.OpenPageInput) (dto.PageOutput, error) {
	page, total, err := i.svc.OpenPage(ctx, input.WorksheetID, input.Page)
	if err != nil {
		return dto.PageOutput{}, err
	}
	return dto.PageOutput{
		WorksheetID: input.WorksheetID,
		Page:        page.Number,
		TotalPages:  total,
		Text:        page.Text,
		Width:       page.Width,
		Height:      page.Height,
	}, nil
}
