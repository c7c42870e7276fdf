package usecase_test

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"tutorcast/internal/modules/playback/domain"
	"tutorcast/internal/modules/playback/dto"
	playbackin "tutorcast/internal/modules/playback/port/in"
	playbackout "tutorcast/internal/modules/playback/port/out"
	"tutorcast/internal/modules/playback/usecase"
	apperrors "tutorcast/internal/platform/errors"
	"tutorcast/internal/platform/logger"
)

type staticContent struct{}

func (staticContent) LoadPage(_ context.Context, worksheetID string, page int) (domain.Page, error) {
	return domain.Page{WorksheetID: worksheetID, Page: page, Mode: domain.ModeRegions, Units: []domain.Unit{
		{ID: "intro", Kind: domain.UnitRegion, Name: "intro", Clickable: true, Paragraphs: []string{"a", "b"}},
		{ID: "blank", Kind: domain.UnitRegion, Name: "blank"},
	}}, nil
}

type memoryProgress struct {
	mu      sync.Mutex
	records map[string]domain.SavedProgress
}

func (m *memoryProgress) Load(_ context.Context, worksheetID string, page int) domain.SavedProgress {
	m.mu.Lock()
	defer m.mu.Unlock()
	if r, ok := m.records[worksheetID]; ok {
		return r
	}
	return domain.EmptyProgress()
}

func (m *memoryProgress) SaveStep(ctx context.Context, worksheetID string, page int, unitID string, step int) error {
	r := m.Load(ctx, worksheetID, page).WithStep(unitID, step)
	m.mu.Lock()
	m.records[worksheetID] = r
	m.mu.Unlock()
	return nil
}

func (m *memoryProgress) ClearActive(ctx context.Context, worksheetID string, page int) error {
	r := m.Load(ctx, worksheetID, page).WithoutActive()
	m.mu.Lock()
	m.records[worksheetID] = r
	m.mu.Unlock()
	return nil
}

func (m *memoryProgress) Tutor(context.Context) string { return "default" }

func (m *memoryProgress) SetTutor(context.Context, string) error { return nil }

type plainSync struct{ playing bool }

func (s *plainSync) SetSource(string) bool { return true }

func (s *plainSync) AudioPlaying() { s.playing = true }

func (s *plainSync) AudioStopped() { s.playing = false }

func (s *plainSync) Tick(float64) (float64, bool) { return 0, false }

func (s *plainSync) Speaking() bool { return s.playing }

// gatedMedia holds every probe until release is closed or the context ends.
type gatedMedia struct {
	release chan struct{}
}

func (m *gatedMedia) Probe(ctx context.Context, _ string, _ int, _ domain.Unit) (bool, string) {
	select {
	case <-m.release:
		return true, ""
	case <-ctx.Done():
		return false, "cancelled"
	}
}

func (m *gatedMedia) AudioPath(worksheetID string, unit domain.Unit, step int) (string, error) {
	return "/audio/" + worksheetID + "/" + unit.Name + ".mp3", nil
}

func (m *gatedMedia) TutorVideoPath(tutor string) string { return "/tutors/" + tutor + "/loop.mp4" }

func (m *gatedMedia) ForgetProbe(string, int) {}

func (m *gatedMedia) NewSynchronizer() playbackout.Synchronizer { return &plainSync{} }

type channelAudio struct {
	events chan domain.AudioEvent
	mu     sync.Mutex
	closed bool
}

func (a *channelAudio) Play(context.Context, domain.Cue) error { return nil }

func (a *channelAudio) Stop() {}

func (a *channelAudio) Events() <-chan domain.AudioEvent { return a.events }

func (a *channelAudio) Close() error {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.closed = true
	return nil
}

type seqIDs struct {
	mu sync.Mutex
	n  int
}

func (g *seqIDs) New() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.n++
	return fmt.Sprintf("session-%d", g.n)
}

func newUsecase(media *gatedMedia, audio *channelAudio) playbackin.Usecase {
	return usecase.NewInteractor(
		staticContent{},
		&memoryProgress{records: map[string]domain.SavedProgress{}},
		media,
		func() playbackout.AudioOutput { return audio },
		&seqIDs{},
		logger.Nop(),
	)
}

func subscribe(s playbackin.Session) (<-chan dto.SessionOutput, func()) {
	updates := make(chan dto.SessionOutput, 64)
	cancel := s.Subscribe(func(out dto.SessionOutput) {
		select {
		case updates <- out:
		default:
		}
	})
	return updates, cancel
}

// waitFor checks the current snapshot, then every later update, until cond holds.
func waitFor(t *testing.T, s playbackin.Session, updates <-chan dto.SessionOutput, cond func(dto.SessionOutput) bool) dto.SessionOutput {
	t.Helper()
	if out := s.Snapshot(); cond(out) {
		return out
	}
	deadline := time.After(2 * time.Second)
	for {
		select {
		case out := <-updates:
			if cond(out) {
				return out
			}
		case <-deadline:
			t.Fatalf("condition not reached in time")
			return dto.SessionOutput{}
		}
	}
}

func TestOpenAppliesProbeOffThread(t *testing.T) {
	t.Parallel()
	media := &gatedMedia{release: make(chan struct{})}
	uc := newUsecase(media, &channelAudio{})
	ctx := context.Background()

	s, err := uc.Open(ctx, dto.OpenInput{WorksheetID: "ws", Page: 1})
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer uc.Close(ctx)
	if got := s.Snapshot().Media; got != "probing" {
		t.Fatalf("expected probe in flight, got %q", got)
	}
	updates, cancel := subscribe(s)
	defer cancel()

	close(media.release)
	out := waitFor(t, s, updates, func(o dto.SessionOutput) bool { return o.Media == "available" })
	if out.VideoSource != "/tutors/default/loop.mp4" {
		t.Fatalf("expected tutor video, got %+v", out)
	}

	out, err = s.Select(ctx, "intro", false)
	if err != nil {
		t.Fatalf("select: %v", err)
	}
	if out.Audio == nil || out.Audio.Path != "/audio/ws/intro.mp3" {
		t.Fatalf("expected narration cue, got %+v", out.Audio)
	}
}

func TestSessionRegistry(t *testing.T) {
	t.Parallel()
	media := &gatedMedia{release: make(chan struct{})}
	close(media.release)
	uc := newUsecase(media, &channelAudio{})
	ctx := context.Background()

	s, err := uc.Open(ctx, dto.OpenInput{WorksheetID: "ws", Page: 1})
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	found, err := uc.Session(s.ID())
	if err != nil || found.ID() != s.ID() {
		t.Fatalf("lookup: %v", err)
	}
	if _, err := uc.Session("nope"); !errors.Is(err, apperrors.ErrUnknownSession) {
		t.Fatalf("expected unknown session, got %v", err)
	}
	if err := uc.CloseSession(ctx, s.ID()); err != nil {
		t.Fatalf("close session: %v", err)
	}
	if _, err := uc.Session(s.ID()); !errors.Is(err, apperrors.ErrUnknownSession) {
		t.Fatalf("closed session must be gone, got %v", err)
	}
	if _, err := s.Select(ctx, "intro", false); !errors.Is(err, apperrors.ErrUnknownSession) {
		t.Fatalf("closed session must reject calls, got %v", err)
	}
}

func TestOpenRejectsInvalidPage(t *testing.T) {
	t.Parallel()
	uc := newUsecase(&gatedMedia{release: make(chan struct{})}, &channelAudio{})
	if _, err := uc.Open(context.Background(), dto.OpenInput{WorksheetID: "ws", Page: 0}); !errors.Is(err, apperrors.ErrInvalidInput) {
		t.Fatalf("expected invalid input, got %v", err)
	}
}

func TestSessionErrors(t *testing.T) {
	t.Parallel()
	media := &gatedMedia{release: make(chan struct{})}
	close(media.release)
	uc := newUsecase(media, &channelAudio{})
	ctx := context.Background()
	s, err := uc.Open(ctx, dto.OpenInput{WorksheetID: "ws", Page: 1})
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer uc.Close(ctx)

	if _, err := s.Select(ctx, "blank", false); !errors.Is(err, apperrors.ErrUnitNotClickable) {
		t.Fatalf("expected not clickable, got %v", err)
	}
	if _, err := s.SeekStep(ctx, 0); !errors.Is(err, apperrors.ErrNoActiveUnit) {
		t.Fatalf("expected no active unit, got %v", err)
	}
	if _, err := s.Select(ctx, "intro", false); err != nil {
		t.Fatalf("select: %v", err)
	}
	if _, err := s.SeekStep(ctx, 1); !errors.Is(err, apperrors.ErrInvalidInput) {
		t.Fatalf("expected undisplayed step to be rejected, got %v", err)
	}
	if _, err := s.AudioEvent(ctx, dto.AudioEventInput{Kind: "exploded"}); !errors.Is(err, apperrors.ErrInvalidInput) {
		t.Fatalf("expected invalid audio event, got %v", err)
	}
}

func TestAudioEventsArePumped(t *testing.T) {
	t.Parallel()
	media := &gatedMedia{release: make(chan struct{})}
	close(media.release)
	audio := &channelAudio{events: make(chan domain.AudioEvent, 4)}
	uc := newUsecase(media, audio)
	ctx := context.Background()

	s, err := uc.Open(ctx, dto.OpenInput{WorksheetID: "ws", Page: 1})
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	updates, cancel := subscribe(s)
	defer cancel()
	waitFor(t, s, updates, func(o dto.SessionOutput) bool { return o.Media == "available" })

	out, err := s.Select(ctx, "intro", false)
	if err != nil || out.Audio == nil {
		t.Fatalf("select: %v %+v", err, out.Audio)
	}
	audio.events <- domain.AudioEvent{Seq: out.Audio.Seq, Kind: domain.AudioPlaying}
	waitFor(t, s, updates, func(o dto.SessionOutput) bool { return o.Speaking })

	if err := uc.Close(ctx); err != nil {
		t.Fatalf("close: %v", err)
	}
	audio.mu.Lock()
	defer audio.mu.Unlock()
	if !audio.closed {
		t.Fatalf("expected audio output to be closed")
	}
}

func TestCloseCancelsPendingProbe(t *testing.T) {
	t.Parallel()
	uc := newUsecase(&gatedMedia{release: make(chan struct{})}, &channelAudio{})
	ctx := context.Background()
	s, err := uc.Open(ctx, dto.OpenInput{WorksheetID: "ws", Page: 1})
	if err != nil {
		t.Fatalf("open: %v", err)
	}

	done := make(chan error, 1)
	go func() { done <- s.Close(ctx) }()
	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("close: %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatalf("close blocked on the pending probe")
	}
}
