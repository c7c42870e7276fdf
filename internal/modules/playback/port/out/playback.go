package out

import (
	"context"

	"tutorcast/internal/modules/playback/domain"
)

type ContentSource interface {
	LoadPage(ctx context.Context, worksheetID string, page int) (domain.Page, error)
}

// ProgressStore persists per-page progress and the tutor preference.
// Load never fails; unreadable records come back empty.
type ProgressStore interface {
	Load(ctx context.Context, worksheetID string, page int) domain.SavedProgress
	SaveStep(ctx context.Context, worksheetID string, page int, unitID string, step int) error
	ClearActive(ctx context.Context, worksheetID string, page int) error
	Tutor(ctx context.Context) string
	SetTutor(ctx context.Context, tutor string) error
}

type Synchronizer interface {
	SetSource(source string) bool
	AudioPlaying()
	AudioStopped()
	Tick(videoTime float64) (float64, bool)
	Speaking() bool
}

type MediaPort interface {
	Probe(ctx context.Context, worksheetID string, page int, unit domain.Unit) (bool, string)
	AudioPath(worksheetID string, unit domain.Unit, step int) (string, error)
	TutorVideoPath(tutor string) string
	NewSynchronizer() Synchronizer
	ForgetProbe(worksheetID string, page int)
}

// AudioOutput plays narration cues. Events may be nil when the listener
// reports playback itself.
type AudioOutput interface {
	Play(ctx context.Context, cue domain.Cue) error
	Stop()
	Events() <-chan domain.AudioEvent
	Close() error
}
