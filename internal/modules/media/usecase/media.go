package usecase

import (
	"context"

	"tutorcast/internal/modules/media/domain"
	"tutorcast/internal/modules/media/dto"
	mediain "tutorcast/internal/modules/media/port/in"
	"tutorcast/internal/modules/media/service"
)

type Interactor struct {
	probe        *service.ProbeService
	restBoundary float64
}

func NewInteractor(probe *service.ProbeService, restBoundary float64) mediain.Usecase {
	return &Interactor{probe: probe, restBoundary: restBoundary}
}

// Probe checks the first-step asset of the given unit; a unit without a usable path is reported unavailable.
func (i *Interactor) Probe(ctx context.Context, input dto.ProbeInput) (dto.ProbeOutput, error) {
	key := service.ProbeKey(input.WorksheetID, input.Page)
	assetPath, err := i.AudioPath(input.Narration, 0)
	if err != nil {
		assetPath = ""
	}
	o := i.probe.Probe(ctx, key, assetPath)
	return dto.ProbeOutput{Key: key, AssetPath: assetPath, Available: o.Available, Reason: o.Reason}, nil
}

func (i *Interactor) ForgetProbe(worksheetID string, page int) {
	i.probe.Forget(service.ProbeKey(worksheetID, page))
}

func (i *Interactor) AudioPath(ref dto.NarrationRef, step int) (string, error) {
	return domain.AudioPath(domain.Narration{
		WorksheetID: ref.WorksheetID,
		Kind:        domain.SourceKind(ref.Kind),
		UnitName:    ref.UnitName,
		Page:        ref.Page,
		UnitIndex:   ref.UnitIndex,
	}, step)
}

func (i *Interactor) TutorVideoPath(tutor string) string {
	return domain.TutorVideoPath(tutor)
}

func (i *Interactor) NewSynchronizer() mediain.Synchronizer {
	return domain.NewVideoSync(i.restBoundary)
}
