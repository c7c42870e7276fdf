package in

import (
	"context"

	"tutorcast/internal/modules/worksheet/dto"
)

type Usecase interface {
	LoadPage(ctx context.Context, input dto.LoadPageInput) (dto.PageOutput, error)
	ListWorksheets(ctx context.Context) ([]string, error)
}
