package player

import (
	"context"
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"tutorcast/internal/modules/playback/dto"
)

type fakeSession struct {
	out      dto.SessionOutput
	calls    []string
	seekTo   float64
	observer func(dto.SessionOutput)
	closed   bool
}

func (f *fakeSession) record(call string) dto.SessionOutput {
	f.calls = append(f.calls, call)
	return f.out
}

func (f *fakeSession) Snapshot() dto.SessionOutput { return f.out }
func (f *fakeSession) Mount(context.Context, string, int, *dto.HandoffInput) (dto.SessionOutput, error) {
	return f.record("mount"), nil
}
func (f *fakeSession) Reload(context.Context) (dto.SessionOutput, error) {
	return f.record("reload"), nil
}
func (f *fakeSession) Navigate(_ context.Context, delta int) (dto.SessionOutput, error) {
	if delta < 0 {
		return f.record("prev"), nil
	}
	return f.record("next"), nil
}
func (f *fakeSession) Select(_ context.Context, unitID string, _ bool) (dto.SessionOutput, error) {
	if unitID != "guidance_1" {
		return f.record("select " + unitID), errors.New("unit is not clickable")
	}
	return f.record("select " + unitID), nil
}
func (f *fakeSession) Advance(context.Context) dto.SessionOutput { return f.record("advance") }
func (f *fakeSession) SeekStep(context.Context, int) (dto.SessionOutput, error) {
	return f.record("seek"), nil
}
func (f *fakeSession) Exit(context.Context) dto.SessionOutput             { return f.record("exit") }
func (f *fakeSession) OpenGuidanceList(context.Context) dto.SessionOutput { return f.record("guidance") }
func (f *fakeSession) VideoTick(float64) dto.VideoTickOutput {
	if f.seekTo > 0 {
		return dto.VideoTickOutput{Seek: true, SeekTo: f.seekTo}
	}
	return dto.VideoTickOutput{}
}
func (f *fakeSession) SetTutor(context.Context, string) (dto.SessionOutput, error) {
	return f.record("tutor"), nil
}
func (f *fakeSession) Subscribe(fn func(dto.SessionOutput)) func() {
	f.observer = fn
	return func() { f.observer = nil }
}
func (f *fakeSession) Close(context.Context) error {
	f.closed = true
	return nil
}

func newFake() *fakeSession {
	return &fakeSession{out: dto.SessionOutput{
		SessionID:   "s1",
		WorksheetID: "fractions",
		Page:        1,
		Mode:        "auto",
		Media:       "available",
		Tutor:       "default",
		VideoSource: "/tutors/default/loop.mp4",
		Units: []dto.UnitOutput{
			{ID: "guidance_0", Kind: "guidance", Title: "Warm up"},
			{ID: "guidance_1", Kind: "guidance", Title: "Fractions", Paragraphs: []string{"one", "two"}, Clickable: true},
		},
		State: dto.StateOutput{Phase: "idle"},
	}}
}

func attached(t *testing.T, s *fakeSession) Model {
	t.Helper()
	m := New(nil, 10)
	m, _ = m.Update(tea.WindowSizeMsg{Width: 100, Height: 30})
	m, _ = m.Update(AttachedMsg{Session: s})
	if !m.Attached() || m.Snapshot().WorksheetID != "fractions" {
		t.Fatalf("expected session to be attached")
	}
	return m
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestKeysDriveTheSession(t *testing.T) {
	t.Parallel()
	s := newFake()
	m := attached(t, s)

	steps := []tea.KeyMsg{runes("n"), runes("2"), {Type: tea.KeyEsc}, runes("g"), {Type: tea.KeyRight}, {Type: tea.KeyLeft}}
	for _, k := range steps {
		m, _ = m.Update(k)
	}
	want := []string{"advance", "seek", "exit", "guidance", "next", "prev"}
	if len(s.calls) != len(want) {
		t.Fatalf("unexpected calls: %v", s.calls)
	}
	for i := range want {
		if s.calls[i] != want[i] {
			t.Fatalf("unexpected call %d: got=%q want=%q", i, s.calls[i], want[i])
		}
	}
}

func TestBackToBackKeysKeepTheirOrder(t *testing.T) {
	t.Parallel()
	s := newFake()
	m := attached(t, s)
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyDown})

	// Commands returned in between are never run: each key must already
	// have reached the session when Update returns.
	for _, k := range []tea.KeyMsg{{Type: tea.KeyEnter}, runes("n"), {Type: tea.KeyEsc}, {Type: tea.KeyEnter}} {
		m, _ = m.Update(k)
	}
	want := []string{"select guidance_1", "advance", "exit", "select guidance_1"}
	if len(s.calls) != len(want) {
		t.Fatalf("unexpected calls: %v", s.calls)
	}
	for i := range want {
		if s.calls[i] != want[i] {
			t.Fatalf("call %d out of order: got=%q want=%q (all %v)", i, s.calls[i], want[i], s.calls)
		}
	}
}

func TestSelectErrorRaisesDismissableNotice(t *testing.T) {
	t.Parallel()
	s := newFake()
	m := attached(t, s)

	// The highlighted unit is the inert first one.
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if m.notice == "" {
		t.Fatalf("expected a notice after a rejected selection")
	}
	m, _ = m.Update(runes("x"))
	if m.notice != "" {
		t.Fatalf("expected notice to be dismissed")
	}

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyDown})
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if m.notice != "" || s.calls[len(s.calls)-1] != "select guidance_1" {
		t.Fatalf("unexpected selection: calls=%v notice=%q", s.calls, m.notice)
	}
}

func TestClockFollowsSynchronizer(t *testing.T) {
	t.Parallel()
	s := newFake()
	m := attached(t, s)

	m, _ = m.Update(clockTickMsg{})
	if m.videoTime <= 0 || m.videoTime >= 1 {
		t.Fatalf("expected the clock to advance by one step, got %v", m.videoTime)
	}
	s.seekTo = 10
	m, _ = m.Update(clockTickMsg{})
	if m.videoTime != 10 {
		t.Fatalf("expected the clock to follow the seek, got %v", m.videoTime)
	}

	s.out.VideoSource = ""
	m, _ = m.Update(actionMsg{out: s.out})
	m, _ = m.Update(clockTickMsg{})
	if m.videoTime != 0 {
		t.Fatalf("expected the clock to stop without a video, got %v", m.videoTime)
	}
}

func TestObserverSignalsWithoutBlocking(t *testing.T) {
	t.Parallel()
	s := newFake()
	m := attached(t, s)
	if s.observer == nil {
		t.Fatalf("expected a subscription")
	}
	for i := 0; i < 5; i++ {
		s.observer(s.out)
	}

	s.out.State = dto.StateOutput{Phase: "viewing", ActiveUnitID: "guidance_1", DisplayedParagraphs: []string{"one"}, TextMode: true}
	msg := waitForUpdate(m.updates)()
	m, _ = m.Update(msg)
	if m.Snapshot().State.ActiveUnitID != "guidance_1" {
		t.Fatalf("expected the update to pull the latest snapshot")
	}
}

func TestReattachDropsPreviousSession(t *testing.T) {
	t.Parallel()
	first := newFake()
	m := attached(t, first)

	second := newFake()
	second.out.WorksheetID = "decimals"
	m, _ = m.Update(AttachedMsg{Session: second})
	if first.observer != nil {
		t.Fatalf("expected the first session to be unsubscribed")
	}
	if m.Snapshot().WorksheetID != "decimals" || second.observer == nil {
		t.Fatalf("expected the new session to render")
	}
}

func TestDetachClosesSession(t *testing.T) {
	t.Parallel()
	s := newFake()
	m := attached(t, s)
	updates := m.updates

	cmd := m.detach()
	if m.Attached() {
		t.Fatalf("expected no session after detach")
	}
	if msg := waitForUpdate(updates)(); msg != nil {
		t.Fatalf("expected the closed update channel to end the wait, got %T", msg)
	}
	if msg := cmd(); msg != nil {
		t.Fatalf("unexpected close result: %v", msg)
	}
	if !s.closed {
		t.Fatalf("expected the session to be closed")
	}
}
