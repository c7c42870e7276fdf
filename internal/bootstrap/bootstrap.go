package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/multierr"

	documentinadapter "tutorcast/internal/modules/document/adapter/in"
	documentoutadapter "tutorcast/internal/modules/document/adapter/out"
	documentin "tutorcast/internal/modules/document/port/in"
	documentservice "tutorcast/internal/modules/document/service"
	documentusecase "tutorcast/internal/modules/document/usecase"
	drminadapter "tutorcast/internal/modules/drm/adapter/in"
	drmoutadapter "tutorcast/internal/modules/drm/adapter/out"
	drmin "tutorcast/internal/modules/drm/port/in"
	drmservice "tutorcast/internal/modules/drm/service"
	drmusecase "tutorcast/internal/modules/drm/usecase"
	mediainadapter "tutorcast/internal/modules/media/adapter/in"
	mediaoutadapter "tutorcast/internal/modules/media/adapter/out"
	mediain "tutorcast/internal/modules/media/port/in"
	mediaout "tutorcast/internal/modules/media/port/out"
	mediaservice "tutorcast/internal/modules/media/service"
	mediausecase "tutorcast/internal/modules/media/usecase"
	playbackinadapter "tutorcast/internal/modules/playback/adapter/in"
	playbackoutadapter "tutorcast/internal/modules/playback/adapter/out"
	playbackin "tutorcast/internal/modules/playback/port/in"
	playbackout "tutorcast/internal/modules/playback/port/out"
	playbackusecase "tutorcast/internal/modules/playback/usecase"
	progressinadapter "tutorcast/internal/modules/progress/adapter/in"
	progressoutadapter "tutorcast/internal/modules/progress/adapter/out"
	progressin "tutorcast/internal/modules/progress/port/in"
	progressout "tutorcast/internal/modules/progress/port/out"
	progressservice "tutorcast/internal/modules/progress/service"
	progressusecase "tutorcast/internal/modules/progress/usecase"
	worksheetinadapter "tutorcast/internal/modules/worksheet/adapter/in"
	worksheetoutadapter "tutorcast/internal/modules/worksheet/adapter/out"
	worksheetin "tutorcast/internal/modules/worksheet/port/in"
	worksheetservice "tutorcast/internal/modules/worksheet/service"
	worksheetusecase "tutorcast/internal/modules/worksheet/usecase"
	"tutorcast/internal/platform/clock"
	"tutorcast/internal/platform/config"
	"tutorcast/internal/platform/httpx"
	"tutorcast/internal/platform/id"
	"tutorcast/internal/platform/logger"
	uiapp "tutorcast/internal/ui/app"
)

type App struct {
	Config config.Config
	Log    *logger.Logger

	WorksheetCLI worksheetinadapter.CLIHandler
	ProgressCLI  progressinadapter.CLIHandler
	DocumentCLI  documentinadapter.CLIHandler
	DRMCLI       drminadapter.CLIHandler
	MediaCLI     mediainadapter.CLIHandler

	worksheets worksheetin.Usecase
	progress   progressin.Usecase
	documents  documentin.Usecase
	drm        drmin.Usecase
	media      mediain.Usecase
	store      progressout.KVStore
}

func New(ctx context.Context, cfg config.Config, log *logger.Logger) (*App, error) {
	store, err := newProgressStore(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("new progress store: %w", err)
	}

	worksheetUC := worksheetusecase.NewInteractor(worksheetservice.NewWorksheetService(
		worksheetoutadapter.NewFileMetadataSource(cfg.ContentDir),
		log,
	))
	progressUC := progressusecase.NewInteractor(progressservice.NewProgressService(store, log))
	documentUC := documentusecase.NewInteractor(documentservice.NewDocumentService(
		documentoutadapter.NewLocalPDFReader(),
		cfg.DocumentDir,
	))
	drmUC := drmusecase.NewInteractor(drmservice.NewLayoutService(
		drmoutadapter.NewWorksheetBoxAdapter(worksheetUC),
		drmoutadapter.NewDocumentGeometryAdapter(documentUC),
	))
	mediaUC := mediausecase.NewInteractor(
		mediaservice.NewProbeService(newAssetChecker(cfg), cfg.ProbeTimeout, log),
		cfg.RestBoundary,
	)

	return &App{
		Config:       cfg,
		Log:          log,
		WorksheetCLI: worksheetinadapter.NewCLIHandler(worksheetUC),
		ProgressCLI:  progressinadapter.NewCLIHandler(progressUC),
		DocumentCLI:  documentinadapter.NewCLIHandler(documentUC),
		DRMCLI:       drminadapter.NewCLIHandler(drmUC),
		MediaCLI:     mediainadapter.NewCLIHandler(mediaUC),
		worksheets:   worksheetUC,
		progress:     progressUC,
		documents:    documentUC,
		drm:          drmUC,
		media:        mediaUC,
		store:        store,
	}, nil
}

// NewPlayback builds a session registry whose sessions each get their own audio output.
func (a *App) NewPlayback(newAudio playbackusecase.AudioFactory) playbackin.Usecase {
	return playbackusecase.NewInteractor(
		playbackoutadapter.NewWorksheetContentAdapter(a.worksheets),
		playbackoutadapter.NewProgressAdapter(a.progress, a.Log),
		playbackoutadapter.NewMediaAdapter(a.media),
		newAudio,
		id.UUID{},
		a.Log,
	)
}

func (a *App) Close() error {
	return a.store.Close()
}

// RunTUI plays narration locally through the configured player command.
// A non-empty worksheetID opens that page directly.
func RunTUI(ctx context.Context, app *App, worksheetID string, page int) (err error) {
	cfg := app.Config
	playback := app.NewPlayback(func() playbackout.AudioOutput {
		return playbackoutadapter.NewExecAudioPlayer(cfg.PlayerCommand, cfg.AssetRoot)
	})
	defer func() {
		err = multierr.Append(err, playback.Close(context.Background()))
	}()

	model := uiapp.NewModel(app.worksheets, playback, app.drm, cfg.RestBoundary)
	if worksheetID != "" {
		model = model.Resume(worksheetID, page)
	}
	program := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := program.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return err
	}
	return nil
}

// RunHTTP serves the JSON API until ctx is cancelled. Clients play audio
// themselves and report events back.
func RunHTTP(ctx context.Context, app *App, addr string) (err error) {
	playback := app.NewPlayback(func() playbackout.AudioOutput {
		return playbackoutadapter.NewClientAudioOutput()
	})
	defer func() {
		err = multierr.Append(err, playback.Close(context.Background()))
	}()

	handler := playbackinadapter.NewHTTPHandler(playback, app.worksheets, app.documents, app.drm)
	srv := &http.Server{
		Addr:              addr,
		Handler:           httpx.NewRouter(app.Log, handler),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		app.Log.Info("http server listening", "addr", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	app.Log.Info("http server shutting down")
	return srv.Shutdown(shutdownCtx)
}

func newProgressStore(ctx context.Context, cfg config.Config) (progressout.KVStore, error) {
	switch cfg.SessionBackend {
	case "memory":
		return progressoutadapter.NewMemoryStore(), nil
	case "sqlite":
		return progressoutadapter.NewSQLiteStore(cfg.DBPath, clock.SystemClock{})
	case "redis":
		return progressoutadapter.NewRedisStore(ctx, cfg.RedisAddr, cfg.RedisTTL)
	default:
		return progressoutadapter.NewFileStore(cfg.DataDir), nil
	}
}

func newAssetChecker(cfg config.Config) mediaout.AssetChecker {
	if cfg.AssetIsRemote() {
		return mediaoutadapter.NewHTTPAssetChecker(cfg.AssetRoot, &http.Client{Timeout: cfg.ProbeTimeout})
	}
	return mediaoutadapter.NewFileAssetChecker(cfg.AssetRoot)
}
