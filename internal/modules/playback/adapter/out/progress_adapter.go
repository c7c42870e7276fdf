package out

import (
	"context"

	"tutorcast/internal/modules/playback/domain"
	playbackout "tutorcast/internal/modules/playback/port/out"
	"tutorcast/internal/modules/progress/dto"
	progressin "tutorcast/internal/modules/progress/port/in"
	"tutorcast/internal/platform/logger"
)

type ProgressAdapter struct {
	progress progressin.Usecase
	log      *logger.Logger
}

func NewProgressAdapter(progress progressin.Usecase, log *logger.Logger) playbackout.ProgressStore {
	return &ProgressAdapter{progress: progress, log: log}
}

func (a *ProgressAdapter) Load(ctx context.Context, worksheetID string, page int) domain.SavedProgress {
	out, err := a.progress.Load(ctx, dto.PageKey{WorksheetID: worksheetID, Page: page})
	if err != nil {
		a.log.Warn("progress unavailable", "worksheet_id", worksheetID, "page", page, "error", err)
		return domain.EmptyProgress()
	}
	saved := domain.SavedProgress{LastActive: out.LastActiveContentID, Steps: make(map[string]int, len(out.Steps))}
	for id, step := range out.Steps {
		saved.Steps[id] = step
	}
	return saved
}

func (a *ProgressAdapter) SaveStep(ctx context.Context, worksheetID string, page int, unitID string, step int) error {
	_, err := a.progress.SaveStep(ctx, dto.SaveStepInput{WorksheetID: worksheetID, Page: page, UnitID: unitID, StepIndex: step})
	return err
}

func (a *ProgressAdapter) ClearActive(ctx context.Context, worksheetID string, page int) error {
	_, err := a.progress.ClearActive(ctx, dto.PageKey{WorksheetID: worksheetID, Page: page})
	return err
}

func (a *ProgressAdapter) Tutor(ctx context.Context) string {
	tutor, err := a.progress.GetTutor(ctx)
	if err != nil {
		a.log.Warn("tutor preference unavailable", "error", err)
		return ""
	}
	return tutor
}

func (a *ProgressAdapter) SetTutor(ctx context.Context, tutor string) error {
	return a.progress.SetTutor(ctx, tutor)
}
