package in

import (
	"context"

	"tutorcast/internal/modules/drm/dto"
)

type Usecase interface {
	Layout(ctx context.Context, input dto.LayoutInput) (dto.LayoutOutput, error)
}
