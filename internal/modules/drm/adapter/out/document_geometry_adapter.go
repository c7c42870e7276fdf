package out

import (
	"context"

	"tutorcast/internal/modules/document/dto"
	documentin "tutorcast/internal/modules/document/port/in"
	drmout "tutorcast/internal/modules/drm/port/out"
)

type DocumentGeometryAdapter struct {
	documents documentin.Usecase
}

func NewDocumentGeometryAdapter(documents documentin.Usecase) drmout.PageGeometry {
	return &DocumentGeometryAdapter{documents: documents}
}

func (a *DocumentGeometryAdapter) Size(ctx context.Context, worksheetID string, page int) (float64, float64, error) {
	out, err := a.documents.OpenPage(ctx, dto.OpenPageInput{WorksheetID: worksheetID, Page: page})
	if err != nil {
		return 0, 0, err
	}
	return out.Width, out.Height, nil
}
