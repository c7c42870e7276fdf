package out

import (
	"context"

	"tutorcast/internal/modules/media/dto"
	mediain "tutorcast/internal/modules/media/port/in"
	"tutorcast/internal/modules/playback/domain"
	playbackout "tutorcast/internal/modules/playback/port/out"
)

type MediaAdapter struct {
	media mediain.Usecase
}

func NewMediaAdapter(media mediain.Usecase) playbackout.MediaPort {
	return &MediaAdapter{media: media}
}

func (a *MediaAdapter) Probe(ctx context.Context, worksheetID string, page int, unit domain.Unit) (bool, string) {
	out, err := a.media.Probe(ctx, dto.ProbeInput{WorksheetID: worksheetID, Page: page, Narration: narrationRef(worksheetID, unit)})
	if err != nil {
		return false, err.Error()
	}
	return out.Available, out.Reason
}

func (a *MediaAdapter) AudioPath(worksheetID string, unit domain.Unit, step int) (string, error) {
	return a.media.AudioPath(narrationRef(worksheetID, unit), step)
}

func (a *MediaAdapter) TutorVideoPath(tutor string) string {
	return a.media.TutorVideoPath(tutor)
}

func (a *MediaAdapter) ForgetProbe(worksheetID string, page int) {
	a.media.ForgetProbe(worksheetID, page)
}

func (a *MediaAdapter) NewSynchronizer() playbackout.Synchronizer {
	return a.media.NewSynchronizer()
}

func narrationRef(worksheetID string, unit domain.Unit) dto.NarrationRef {
	return dto.NarrationRef{
		WorksheetID: worksheetID,
		Kind:        string(unit.Kind),
		UnitName:    unit.Name,
		Page:        unit.Page,
		UnitIndex:   unit.Index,
	}
}
