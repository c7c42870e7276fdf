package in

import (
	"context"

	"tutorcast/internal/modules/playback/dto"
)

// Session is one viewer's playback. Calls are serialized internally.
type Session interface {
	ID() string
	Snapshot() dto.SessionOutput
	Mount(ctx context.Context, worksheetID string, page int, handoff *dto.HandoffInput) (dto.SessionOutput, error)
	Reload(ctx context.Context) (dto.SessionOutput, error)
	Navigate(ctx context.Context, delta int) (dto.SessionOutput, error)
	Select(ctx context.Context, unitID string, fromList bool) (dto.SessionOutput, error)
	Advance(ctx context.Context) dto.SessionOutput
	SeekStep(ctx context.Context, step int) (dto.SessionOutput, error)
	Exit(ctx context.Context) dto.SessionOutput
	OpenGuidanceList(ctx context.Context) dto.SessionOutput
	AudioEvent(ctx context.Context, input dto.AudioEventInput) (dto.SessionOutput, error)
	VideoTick(videoTime float64) dto.VideoTickOutput
	SetTutor(ctx context.Context, tutor string) (dto.SessionOutput, error)
	Subscribe(fn func(dto.SessionOutput)) func()
	Close(ctx context.Context) error
}

type Usecase interface {
	Open(ctx context.Context, input dto.OpenInput) (Session, error)
	Session(id string) (Session, error)
	CloseSession(ctx context.Context, id string) error
	Close(ctx context.Context) error
}
