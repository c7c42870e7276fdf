package out

import (
	"context"

	"tutorcast/internal/modules/document/domain"
)

// PageReader returns the requested page (clamped to the document) and the page count.
type PageReader interface {
	ReadPage(ctx context.Context, path string, page int) (domain.Page, int, error)
}
