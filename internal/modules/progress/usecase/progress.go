package usecase

import (
	"context"
	"fmt"

	"tutorcast/internal/modules/progress/domain"
	"tutorcast/internal/modules/progress/dto"
	progressin "tutorcast/internal/modules/progress/port/in"
	"tutorcast/internal/modules/progress/service"
	apperrors "tutorcast/internal/platform/errors"
)

type Interactor struct {
	svc *service.ProgressService
}

func NewInteractor(svc *service.ProgressService) progressin.Usecase {
	return &Interactor{svc: svc}
}

func (i *Interactor) Load(ctx context.Context, key dto.PageKey) (dto.RecordOutput, error) {
	if err := validateKey(key.WorksheetID, key.Page); err != nil {
		return dto.RecordOutput{}, err
	}
	return toRecordOutput(key.WorksheetID, key.Page, i.svc.Load(ctx, key.WorksheetID, key.Page)), nil
}

func (i *Interactor) SaveStep(ctx context.Context, input dto.SaveStepInput) (dto.RecordOutput, error) {
	if err := validateKey(input.WorksheetID, input.Page); err != nil {
		return dto.RecordOutput{}, err
	}
	record, err := i.svc.SaveStep(ctx, input.WorksheetID, input.Page, input.UnitID, input.StepIndex)
	if err != nil {
		return dto.RecordOutput{}, err
	}
	return toRecordOutput(input.WorksheetID, input.Page, record), nil
}

func (i *Interactor) ClearActive(ctx context.Context, key dto.PageKey) (dto.RecordOutput, error) {
	if err := validateKey(key.WorksheetID, key.Page); err != nil {
		return dto.RecordOutput{}, err
	}
	record, err := i.svc.ClearActive(ctx, key.WorksheetID, key.Page)
	if err != nil {
		return dto.RecordOutput{}, err
	}
	return toRecordOutput(key.WorksheetID, key.Page, record), nil
}

func (i *Interactor) GetTutor(ctx context.Context) (string, error) {
	return i.svc.Tutor(ctx), nil
}

func (i *Interactor) SetTutor(ctx context.Context, tutor string) error {
	return i.svc.SetTutor(ctx, tutor)
}

func validateKey(worksheetID string, page int) error {
	if worksheetID == "" {
		return fmt.Errorf("worksheet id is required: %w", apperrors.ErrInvalidInput)
	}
	if page <= 0 {
		return fmt.Errorf("page %d: %w", page, apperrors.ErrInvalidInput)
	}
	return nil
}

func toRecordOutput(worksheetID string, page int, record domain.Record) dto.RecordOutput {
	out := dto.RecordOutput{Key: domain.Key(worksheetID, page), Steps: make(map[string]int, len(record.Content))}
	if active, ok := record.LastActive(); ok {
		out.LastActiveContentID = active
		out.HasActive = true
	}
	for id, p := range record.Content {
		out.Steps[id] = p.CurrentStepIndex
	}
	return out
}
