package out

import (
	"context"

	"tutorcast/internal/modules/worksheet/domain"
)

type MetadataSource interface {
	Load(ctx context.Context, worksheetID string) (domain.Metadata, error)
	List(ctx context.Context) ([]string, error)
}
