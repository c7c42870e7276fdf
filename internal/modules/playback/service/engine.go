package service

import (
	"context"
	"fmt"
	"sort"

	"tutorcast/internal/modules/playback/domain"
	playbackout "tutorcast/internal/modules/playback/port/out"
	apperrors "tutorcast/internal/platform/errors"
	"tutorcast/internal/platform/logger"
)

type MediaStatus string

const (
	MediaUnknown     MediaStatus = "unknown"
	MediaProbing     MediaStatus = "probing"
	MediaAvailable   MediaStatus = "available"
	MediaUnavailable MediaStatus = "unavailable"
)

// Handoff is the resume position handed over by a caller returning to a page.
type Handoff struct {
	UnitID    string
	StepIndex int
}

type ProbeRequest struct {
	Generation  uint64
	Key         string
	WorksheetID string
	Page        int
	Unit        domain.Unit
}

type ProbeResult struct {
	Generation uint64
	Key        string
	Available  bool
	Reason     string
}

type Snapshot struct {
	WorksheetID  string
	Page         int
	Mode         domain.Mode
	DRMProtected bool
	Units        []domain.Unit
	State        domain.State
	Media        MediaStatus
	Tutor        string
	VideoSource  string
	Speaking     bool
	Audio        domain.Cue
	Generation   uint64
}

type Deps struct {
	Content  playbackout.ContentSource
	Progress playbackout.ProgressStore
	Media    playbackout.MediaPort
	Audio    playbackout.AudioOutput
	Log      *logger.Logger
}

// Engine drives one viewer's playback: it mounts pages, runs the state
// machine and carries out persistence, audio and video effects.
// Only RunProbe may be called concurrently with other methods.
type Engine struct {
	content  playbackout.ContentSource
	progress playbackout.ProgressStore
	media    playbackout.MediaPort
	audio    playbackout.AudioOutput
	log      *logger.Logger

	machine *domain.Machine
	sync    playbackout.Synchronizer

	mounted     bool
	worksheetID string
	page        int
	drm         bool
	generation  uint64
	record      domain.SavedProgress
	handoff     *Handoff
	mediaStatus MediaStatus
	tutor       string
	cue         domain.Cue
	audioSeq    uint64

	observers    map[int]func(Snapshot)
	nextObserver int
}

func NewEngine(deps Deps) *Engine {
	log := deps.Log
	if log == nil {
		log = logger.Nop()
	}
	return &Engine{
		content:     deps.Content,
		progress:    deps.Progress,
		media:       deps.Media,
		audio:       deps.Audio,
		log:         log.With("service", "PlaybackEngine"),
		machine:     domain.NewMachine(),
		sync:        deps.Media.NewSynchronizer(),
		record:      domain.EmptyProgress(),
		mediaStatus: MediaUnknown,
		observers:   map[int]func(Snapshot){},
	}
}

// Mount shows a page. A different worksheet or page resets playback first;
// the same page only refreshes its content snapshot.
func (e *Engine) Mount(ctx context.Context, worksheetID string, page int, handoff *Handoff) error {
	if worksheetID == "" || page <= 0 {
		return fmt.Errorf("mount %q page %d: %w", worksheetID, page, apperrors.ErrInvalidInput)
	}
	if !e.mounted || worksheetID != e.worksheetID || page != e.page {
		e.resetForNavigation(worksheetID, page)
		e.tutor = e.progress.Tutor(ctx)
		e.record = e.progress.Load(ctx, worksheetID, page)
	}
	if handoff != nil && !e.machine.Restored() {
		h := *handoff
		e.handoff = &h
	}
	return e.reload(ctx)
}

// Reload fetches a fresh content snapshot for the mounted page.
// Reload re-reads the mounted page. A page whose narration was found missing
// is probed again.
func (e *Engine) Reload(ctx context.Context) error {
	if !e.mounted {
		return fmt.Errorf("nothing is mounted: %w", apperrors.ErrInvalidInput)
	}
	if e.mediaStatus == MediaUnavailable {
		e.media.ForgetProbe(e.worksheetID, e.page)
		e.mediaStatus = MediaUnknown
	}
	return e.reload(ctx)
}

func (e *Engine) reload(ctx context.Context) error {
	page, err := e.content.LoadPage(ctx, e.worksheetID, e.page)
	if err != nil {
		return err
	}
	_, wasActive := e.machine.Active()
	e.drm = page.DRMProtected
	e.machine.Load(page.Mode, page.Units)
	if _, active := e.machine.Active(); wasActive && !active {
		e.stopAudio()
	}
	e.restore(ctx)
	e.notify()
	return nil
}

func (e *Engine) restore(ctx context.Context) {
	if e.machine.Restored() || len(e.machine.Units()) == 0 {
		return
	}
	id, step := "", 0
	switch {
	case e.handoff != nil && e.machine.Selectable(e.handoff.UnitID):
		id, step = e.handoff.UnitID, e.handoff.StepIndex
	default:
		if last := e.record.LastActive; last != "" && e.machine.Selectable(last) {
			id = last
			step, _ = e.record.Step(last)
		}
	}
	e.handoff = nil
	t := e.machine.Restore(id, step)
	if t.Changed {
		e.log.Debug("playback restored", "worksheet_id", e.worksheetID, "page", e.page, "unit_id", id, "step", step)
	}
	e.apply(ctx, t, false)
}

func (e *Engine) resetForNavigation(worksheetID string, page int) {
	e.stopAudio()
	e.machine.Reset()
	e.sync.SetSource("")
	e.generation++
	e.mounted = true
	e.worksheetID = worksheetID
	e.page = page
	e.drm = false
	e.handoff = nil
	e.record = domain.EmptyProgress()
	e.mediaStatus = MediaUnknown
}

// Select activates a unit, resuming from its saved step. It reports false
// when the unit is unknown or not clickable.
func (e *Engine) Select(ctx context.Context, unitID string, fromList bool) bool {
	if !e.machine.Selectable(unitID) {
		return false
	}
	saved := -1
	if step, ok := e.record.Step(unitID); ok {
		saved = step
	}
	e.apply(ctx, e.machine.Select(unitID, saved, fromList), true)
	return true
}

func (e *Engine) Advance(ctx context.Context) {
	e.apply(ctx, e.machine.Advance(), true)
}

func (e *Engine) SeekStep(ctx context.Context, step int) {
	e.apply(ctx, e.machine.SeekStep(step), true)
}

func (e *Engine) Exit(ctx context.Context) {
	e.apply(ctx, e.machine.Exit(), true)
}

func (e *Engine) OpenGuidanceList(ctx context.Context) {
	e.apply(ctx, e.machine.OpenGuidanceList(), true)
}

func (e *Engine) apply(ctx context.Context, t domain.Transition, notify bool) {
	switch t.Persist {
	case domain.PersistStep:
		if u, ok := e.machine.Active(); ok {
			step := e.machine.State().StepIndex
			e.record = e.record.WithStep(u.ID, step)
			if err := e.progress.SaveStep(ctx, e.worksheetID, e.page, u.ID, step); err != nil {
				e.log.Warn("progress not saved", "worksheet_id", e.worksheetID, "page", e.page, "unit_id", u.ID, "error", err)
			}
		}
	case domain.PersistClearActive:
		e.record = e.record.WithoutActive()
		if err := e.progress.ClearActive(ctx, e.worksheetID, e.page); err != nil {
			e.log.Warn("active unit not cleared", "worksheet_id", e.worksheetID, "page", e.page, "error", err)
		}
	}
	switch t.Audio {
	case domain.AudioPlay:
		e.playStep(ctx, t.AudioStep)
	case domain.AudioStop:
		e.stopAudio()
	}
	if notify && !t.Noop() {
		e.notify()
	}
}

func (e *Engine) playStep(ctx context.Context, step int) {
	if e.mediaStatus != MediaAvailable {
		return
	}
	u, ok := e.machine.Active()
	if !ok {
		return
	}
	path, err := e.media.AudioPath(e.worksheetID, u, step)
	if err != nil {
		e.log.Warn("no audio path for unit", "unit_id", u.ID, "step", step, "error", err)
		return
	}
	e.audioSeq++
	e.cue = domain.Cue{Seq: e.audioSeq, Path: path, UnitID: u.ID, Step: step}
	if err := e.audio.Play(ctx, e.cue); err != nil {
		e.log.Warn("audio playback failed", "path", path, "error", err)
		e.cue = domain.Cue{}
		e.sync.AudioStopped()
	}
}

func (e *Engine) stopAudio() {
	if e.cue.Empty() && !e.sync.Speaking() {
		return
	}
	e.audio.Stop()
	e.audioSeq++
	e.cue = domain.Cue{}
	e.sync.AudioStopped()
}

// AudioEvent feeds a playback signal from the audio output. Events for a
// superseded cue are dropped and reported as false.
func (e *Engine) AudioEvent(ev domain.AudioEvent) bool {
	if e.cue.Empty() || ev.Seq != e.cue.Seq {
		return false
	}
	switch ev.Kind {
	case domain.AudioPlaying:
		e.sync.AudioPlaying()
	case domain.AudioPaused, domain.AudioEnded:
		e.sync.AudioStopped()
	case domain.AudioFailed:
		e.log.Warn("audio playback failed", "path", e.cue.Path, "error", ev.Err)
		e.cue = domain.Cue{}
		e.sync.AudioStopped()
	default:
		return false
	}
	e.notify()
	return true
}

// VideoTick reports where the tutor video must seek for time t, if anywhere.
func (e *Engine) VideoTick(t float64) (float64, bool) {
	if e.mediaStatus != MediaAvailable {
		return 0, false
	}
	return e.sync.Tick(t)
}

func (e *Engine) SetTutor(ctx context.Context, tutor string) error {
	if err := e.progress.SetTutor(ctx, tutor); err != nil {
		return err
	}
	e.tutor = e.progress.Tutor(ctx)
	if e.mediaStatus == MediaAvailable {
		e.sync.SetSource(e.media.TutorVideoPath(e.tutor))
	}
	e.notify()
	return nil
}

// ProbeRequest hands out the page's one media probe. It returns false when
// a probe already ran or is running for this mount, or there is no content.
func (e *Engine) ProbeRequest() (ProbeRequest, bool) {
	units := e.machine.Units()
	if !e.mounted || e.mediaStatus != MediaUnknown || len(units) == 0 {
		return ProbeRequest{}, false
	}
	e.mediaStatus = MediaProbing
	return ProbeRequest{
		Generation:  e.generation,
		Key:         e.probeKey(),
		WorksheetID: e.worksheetID,
		Page:        e.page,
		Unit:        units[0],
	}, true
}

// RunProbe performs a probe. It touches no engine state and may run on any goroutine.
func (e *Engine) RunProbe(ctx context.Context, req ProbeRequest) ProbeResult {
	available, reason := e.media.Probe(ctx, req.WorksheetID, req.Page, req.Unit)
	return ProbeResult{Generation: req.Generation, Key: req.Key, Available: available, Reason: reason}
}

// ApplyProbe commits a probe result unless the page it was taken for is gone.
func (e *Engine) ApplyProbe(res ProbeResult) bool {
	if res.Generation != e.generation || res.Key != e.probeKey() || e.mediaStatus != MediaProbing {
		e.log.Debug("stale probe result dropped", "key", res.Key, "generation", res.Generation)
		return false
	}
	if res.Available {
		e.mediaStatus = MediaAvailable
		e.sync.SetSource(e.media.TutorVideoPath(e.tutor))
	} else {
		e.mediaStatus = MediaUnavailable
		e.log.Info("narration unavailable", "key", res.Key, "reason", res.Reason)
	}
	e.notify()
	return true
}

func (e *Engine) probeKey() string {
	return fmt.Sprintf("%s:%d", e.worksheetID, e.page)
}

func (e *Engine) Location() (string, int, bool) {
	return e.worksheetID, e.page, e.mounted
}

func (e *Engine) Snapshot() Snapshot {
	s := Snapshot{
		WorksheetID:  e.worksheetID,
		Page:         e.page,
		Mode:         e.machine.Mode(),
		DRMProtected: e.drm,
		Units:        e.machine.Units(),
		State:        e.machine.State(),
		Media:        e.mediaStatus,
		Tutor:        e.tutor,
		Speaking:     e.sync.Speaking(),
		Audio:        e.cue,
		Generation:   e.generation,
	}
	if e.mediaStatus == MediaAvailable {
		s.VideoSource = e.media.TutorVideoPath(e.tutor)
	}
	return s
}

// Subscribe registers an observer called after every state change. Observers
// run on the caller's goroutine and must not call back into the engine.
func (e *Engine) Subscribe(fn func(Snapshot)) func() {
	id := e.nextObserver
	e.nextObserver++
	e.observers[id] = fn
	return func() { delete(e.observers, id) }
}

func (e *Engine) notify() {
	if len(e.observers) == 0 {
		return
	}
	snap := e.Snapshot()
	ids := make([]int, 0, len(e.observers))
	for id := range e.observers {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	for _, id := range ids {
		e.observers[id](snap)
	}
}

// Close stops narration and invalidates outstanding probe results.
func (e *Engine) Close() {
	e.stopAudio()
	e.generation++
	e.observers = map[int]func(Snapshot){}
}
