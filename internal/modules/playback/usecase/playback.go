package usecase

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"go.uber.org/multierr"

	"tutorcast/internal/modules/playback/dto"
	playbackin "tutorcast/internal/modules/playback/port/in"
	playbackout "tutorcast/internal/modules/playback/port/out"
	"tutorcast/internal/modules/playback/service"
	apperrors "tutorcast/internal/platform/errors"
	"tutorcast/internal/platform/id"
	"tutorcast/internal/platform/logger"
)

// AudioFactory builds the audio output of a new session.
type AudioFactory func() playbackout.AudioOutput

type Interactor struct {
	content  playbackout.ContentSource
	progress playbackout.ProgressStore
	media    playbackout.MediaPort
	newAudio AudioFactory
	ids      id.Generator
	log      *logger.Logger

	mu       sync.Mutex
	sessions map[string]*session
}

func NewInteractor(
	content playbackout.ContentSource,
	progress playbackout.ProgressStore,
	media playbackout.MediaPort,
	newAudio AudioFactory,
	ids id.Generator,
	log *logger.Logger,
) playbackin.Usecase {
	return &Interactor{
		content:  content,
		progress: progress,
		media:    media,
		newAudio: newAudio,
		ids:      ids,
		log:      log,
		sessions: map[string]*session{},
	}
}

func (i *Interactor) Open(ctx context.Context, input dto.OpenInput) (playbackin.Session, error) {
	audio := i.newAudio()
	sessionID := i.ids.New()
	log := i.log.With("session_id", sessionID)
	engine := service.NewEngine(service.Deps{
		Content:  i.content,
		Progress: i.progress,
		Media:    i.media,
		Audio:    audio,
		Log:      log,
	})
	s := newSession(sessionID, engine, audio)
	if _, err := s.Mount(ctx, input.WorksheetID, input.Page, input.Handoff); err != nil {
		return nil, multierr.Append(err, s.Close(ctx))
	}
	i.mu.Lock()
	i.sessions[sessionID] = s
	i.mu.Unlock()
	log.Info("playback session opened", "worksheet_id", input.WorksheetID, "page", input.Page)
	return s, nil
}

func (i *Interactor) Session(sessionID string) (playbackin.Session, error) {
	i.mu.Lock()
	defer i.mu.Unlock()
	s, ok := i.sessions[sessionID]
	if !ok {
		return nil, fmt.Errorf("session %q: %w", sessionID, apperrors.ErrUnknownSession)
	}
	return s, nil
}

func (i *Interactor) CloseSession(ctx context.Context, sessionID string) error {
	i.mu.Lock()
	s, ok := i.sessions[sessionID]
	delete(i.sessions, sessionID)
	i.mu.Unlock()
	if !ok {
		return fmt.Errorf("session %q: %w", sessionID, apperrors.ErrUnknownSession)
	}
	return s.Close(ctx)
}

func (i *Interactor) Close(ctx context.Context) error {
	i.mu.Lock()
	ids := make([]string, 0, len(i.sessions))
	for sessionID := range i.sessions {
		ids = append(ids, sessionID)
	}
	sort.Strings(ids)
	open := make([]*session, 0, len(ids))
	for _, sessionID := range ids {
		open = append(open, i.sessions[sessionID])
	}
	i.sessions = map[string]*session{}
	i.mu.Unlock()

	var err error
	for _, s := range open {
		err = multierr.Append(err, s.Close(ctx))
	}
	return err
}
