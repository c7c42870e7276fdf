package usecase

import (
	"context"

	"tutorcast/internal/modules/worksheet/domain"
	"tutorcast/internal/modules/worksheet/dto"
	worksheetin "tutorcast/internal/modules/worksheet/port/in"
	"tutorcast/internal/modules/worksheet/service"
)

type Interactor struct {
	svc *service.WorksheetService
}

func NewInteractor(svc *service.WorksheetService) worksheetin.Usecase {
	return &Interactor{svc: svc}
}

func (i *Interactor) LoadPage(ctx context.Context, input dto.LoadPageInput) (dto.PageOutput, error) {
	page, err := i.svc.LoadPage(ctx, input.WorksheetID, input.Page)
	if err != nil {
		return dto.PageOutput{}, err
	}
	out := dto.PageOutput{
		WorksheetID:  page.WorksheetID,
		Page:         page.Page,
		Mode:         string(page.Mode),
		DRMProtected: page.DRMProtected,
		Units:        make([]dto.UnitOutput, 0, len(page.Units)),
	}
	for _, u := range page.Units {
		out.Units = append(out.Units, toUnitOutput(u))
	}
	return out, nil
}

func (i *Interactor) ListWorksheets(ctx context.Context) ([]string, error) {
	return i.svc.List(ctx)
}

func toUnitOutput(u domain.ContentUnit) dto.UnitOutput {
	paragraphs := make([]string, len(u.Paragraphs))
	copy(paragraphs, u.Paragraphs)
	return dto.UnitOutput{
		ID:         u.ID,
		Kind:       string(u.Kind),
		Name:       u.Name,
		Title:      u.Title,
		RawTitle:   u.RawTitle,
		Direction:  string(u.Direction()),
		Paragraphs: paragraphs,
		Page:       u.Page,
		Index:      u.Index,
		Clickable:  u.Clickable(),
		X:          u.Rect.X,
		Y:          u.Rect.Y,
		Width:      u.Rect.Width,
		Height:     u.Rect.Height,
	}
}
