package out

import (
	"context"

	"tutorcast/internal/modules/playback/domain"
	playbackout "tutorcast/internal/modules/playback/port/out"
)

// ClientAudioOutput leaves playback to a remote client, which reads the cue
// from the session snapshot and reports events back.
type ClientAudioOutput struct{}

func NewClientAudioOutput() playbackout.AudioOutput {
	return ClientAudioOutput{}
}

func (ClientAudioOutput) Play(context.Context, domain.Cue) error { return nil }

func (ClientAudioOutput) Stop() {}

func (ClientAudioOutput) Events() <-chan domain.AudioEvent { return nil }

func (ClientAudioOutput) Close() error { return nil }
