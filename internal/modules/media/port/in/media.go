package in

import (
	"context"

	"tutorcast/internal/modules/media/dto"
)

// Synchronizer couples tutor video position to narration play state.
type Synchronizer interface {
	SetSource(source string) bool
	AudioPlaying()
	AudioStopped()
	Tick(videoTime float64) (seekTo float64, seek bool)
	Speaking() bool
}

type Usecase interface {
	Probe(ctx context.Context, input dto.ProbeInput) (dto.ProbeOutput, error)
	AudioPath(ref dto.NarrationRef, step int) (string, error)
	TutorVideoPath(tutor string) string
	NewSynchronizer() Synchronizer
	// ForgetProbe drops the cached probe outcome of a page.
	ForgetProbe(worksheetID string, page int)
}
