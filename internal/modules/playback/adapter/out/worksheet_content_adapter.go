package out

import (
	"context"

	"tutorcast/internal/modules/playback/domain"
	playbackout "tutorcast/internal/modules/playback/port/out"
	"tutorcast/internal/modules/worksheet/dto"
	worksheetin "tutorcast/internal/modules/worksheet/port/in"
)

type WorksheetContentAdapter struct {
	worksheets worksheetin.Usecase
}

func NewWorksheetContentAdapter(worksheets worksheetin.Usecase) playbackout.ContentSource {
	return &WorksheetContentAdapter{worksheets: worksheets}
}

func (a *WorksheetContentAdapter) LoadPage(ctx context.Context, worksheetID string, page int) (domain.Page, error) {
	out, err := a.worksheets.LoadPage(ctx, dto.LoadPageInput{WorksheetID: worksheetID, Page: page})
	if err != nil {
		return domain.Page{}, err
	}
	units := make([]domain.Unit, 0, len(out.Units))
	for _, u := range out.Units {
		units = append(units, domain.Unit{
			ID:         u.ID,
			Kind:       domain.UnitKind(u.Kind),
			Name:       u.Name,
			Title:      u.Title,
			Direction:  u.Direction,
			Paragraphs: u.Paragraphs,
			Page:       u.Page,
			Index:      u.Index,
			Clickable:  u.Clickable,
		})
	}
	return domain.Page{
		WorksheetID:  out.WorksheetID,
		Page:         out.Page,
		Mode:         domain.Mode(out.Mode),
		DRMProtected: out.DRMProtected,
		Units:        units,
	}, nil
}
