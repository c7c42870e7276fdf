package in

import (
	"context"

	"tutorcast/internal/modules/document/dto"
)

type Usecase interface {
	OpenPage(ctx context.Context, input dto.OpenPageInput) (dto.PageOutput, error)
}
