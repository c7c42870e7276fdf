package in

import (
	"context"

	"tutorcast/internal/modules/progress/dto"
)

type Usecase interface {
	Load(ctx context.Context, key dto.PageKey) (dto.RecordOutput, error)
	SaveStep(ctx context.Context, input dto.SaveStepInput) (dto.RecordOutput, error)
	ClearActive(ctx context.Context, key dto.PageKey) (dto.RecordOutput, error)
	GetTutor(ctx context.Context) (string, error)
	SetTutor(ctx context.Context, tutor string) error
}
