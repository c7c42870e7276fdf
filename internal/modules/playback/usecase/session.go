package usecase

import (
	"context"
	"fmt"
	"sync"

	"tutorcast/internal/modules/playback/domain"
	"tutorcast/internal/modules/playback/dto"
	playbackout "tutorcast/internal/modules/playback/port/out"
	"tutorcast/internal/modules/playback/service"
	apperrors "tutorcast/internal/platform/errors"
)

// session serializes every engine call behind mu. Probe results and audio
// events arrive on their own goroutines and take the same lock.
type session struct {
	id     string
	engine *service.Engine
	audio  playbackout.AudioOutput

	mu     sync.Mutex
	closed bool
	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

func newSession(id string, engine *service.Engine, audio playbackout.AudioOutput) *session {
	ctx, cancel := context.WithCancel(context.Background())
	s := &session{id: id, engine: engine, audio: audio, ctx: ctx, cancel: cancel}
	if events := audio.Events(); events != nil {
		s.wg.Add(1)
		go s.pumpAudio(events)
	}
	return s
}

func (s *session) ID() string { return s.id }

func (s *session) Snapshot() dto.SessionOutput {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.output()
}

func (s *session) Mount(ctx context.Context, worksheetID string, page int, handoff *dto.HandoffInput) (dto.SessionOutput, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return dto.SessionOutput{}, s.closedErr()
	}
	var h *service.Handoff
	if handoff != nil {
		h = &service.Handoff{UnitID: handoff.UnitID, StepIndex: handoff.StepIndex}
	}
	err := s.engine.Mount(ctx, worksheetID, page, h)
	s.startProbe()
	return s.output(), err
}

func (s *session) Reload(ctx context.Context) (dto.SessionOutput, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return dto.SessionOutput{}, s.closedErr()
	}
	err := s.engine.Reload(ctx)
	s.startProbe()
	return s.output(), err
}

func (s *session) Navigate(ctx context.Context, delta int) (dto.SessionOutput, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return dto.SessionOutput{}, s.closedErr()
	}
	worksheetID, page, ok := s.engine.Location()
	if !ok {
		return s.output(), fmt.Errorf("nothing is mounted: %w", apperrors.ErrInvalidInput)
	}
	target := page + delta
	if target < 1 {
		target = 1
	}
	err := s.engine.Mount(ctx, worksheetID, target, nil)
	s.startProbe()
	return s.output(), err
}

func (s *session) Select(ctx context.Context, unitID string, fromList bool) (dto.SessionOutput, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return dto.SessionOutput{}, s.closedErr()
	}
	if !s.engine.Select(ctx, unitID, fromList) {
		return s.output(), fmt.Errorf("unit %q: %w", unitID, apperrors.ErrUnitNotClickable)
	}
	return s.output(), nil
}

func (s *session) Advance(ctx context.Context) dto.SessionOutput {
	return s.run(func() { s.engine.Advance(ctx) })
}

func (s *session) SeekStep(ctx context.Context, step int) (dto.SessionOutput, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return dto.SessionOutput{}, s.closedErr()
	}
	st := s.engine.Snapshot().State
	if st.ActiveUnitID == "" {
		return s.output(), apperrors.ErrNoActiveUnit
	}
	if step < 0 || step > st.StepIndex {
		return s.output(), fmt.Errorf("step %d is not displayed: %w", step, apperrors.ErrInvalidInput)
	}
	s.engine.SeekStep(ctx, step)
	return s.output(), nil
}

func (s *session) Exit(ctx context.Context) dto.SessionOutput {
	return s.run(func() { s.engine.Exit(ctx) })
}

func (s *session) OpenGuidanceList(ctx context.Context) dto.SessionOutput {
	return s.run(func() { s.engine.OpenGuidanceList(ctx) })
}

func (s *session) AudioEvent(_ context.Context, input dto.AudioEventInput) (dto.SessionOutput, error) {
	kind := domain.AudioEventKind(input.Kind)
	if !kind.Valid() {
		return s.Snapshot(), fmt.Errorf("audio event %q: %w", input.Kind, apperrors.ErrInvalidInput)
	}
	return s.run(func() {
		s.engine.AudioEvent(domain.AudioEvent{Seq: input.Seq, Kind: kind, Err: input.Error})
	}), nil
}

func (s *session) VideoTick(videoTime float64) dto.VideoTickOutput {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return dto.VideoTickOutput{}
	}
	seekTo, seek := s.engine.VideoTick(videoTime)
	return dto.VideoTickOutput{SeekTo: seekTo, Seek: seek}
}

func (s *session) SetTutor(ctx context.Context, tutor string) (dto.SessionOutput, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return dto.SessionOutput{}, s.closedErr()
	}
	err := s.engine.SetTutor(ctx, tutor)
	return s.output(), err
}

// Subscribe registers fn for every state change. fn runs with the session
// locked and must not call the session.
func (s *session) Subscribe(fn func(dto.SessionOutput)) func() {
	s.mu.Lock()
	defer s.mu.Unlock()
	unsubscribe := s.engine.Subscribe(func(snap service.Snapshot) {
		fn(toSessionOutput(s.id, snap))
	})
	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		unsubscribe()
	}
}

func (s *session) Close(_ context.Context) error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil
	}
	s.closed = true
	s.engine.Close()
	s.mu.Unlock()

	s.cancel()
	s.wg.Wait()
	return s.audio.Close()
}

func (s *session) run(fn func()) dto.SessionOutput {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return dto.SessionOutput{SessionID: s.id}
	}
	fn()
	return s.output()
}

// startProbe must be called with mu held.
func (s *session) startProbe() {
	req, ok := s.engine.ProbeRequest()
	if !ok {
		return
	}
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		res := s.engine.RunProbe(s.ctx, req)
		s.mu.Lock()
		defer s.mu.Unlock()
		if !s.closed {
			s.engine.ApplyProbe(res)
		}
	}()
}

func (s *session) pumpAudio(events <-chan domain.AudioEvent) {
	defer s.wg.Done()
	for {
		select {
		case <-s.ctx.Done():
			return
		case ev := <-events:
			s.mu.Lock()
			if !s.closed {
				s.engine.AudioEvent(ev)
			}
			s.mu.Unlock()
		}
	}
}

func (s *session) output() dto.SessionOutput {
	return toSessionOutput(s.id, s.engine.Snapshot())
}

func (s *session) closedErr() error {
	return fmt.Errorf("session %q is closed: %w", s.id, apperrors.ErrUnknownSession)
}
