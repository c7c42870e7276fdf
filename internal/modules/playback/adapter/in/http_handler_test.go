package in_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	documentdomain "tutorcast/internal/modules/document/domain"
	documentservice "tutorcast/internal/modules/document/service"
	documentusecase "tutorcast/internal/modules/document/usecase"
	drmout "tutorcast/internal/modules/drm/adapter/out"
	drmservice "tutorcast/internal/modules/drm/service"
	drmusecase "tutorcast/internal/modules/drm/usecase"
	mediaout "tutorcast/internal/modules/media/adapter/out"
	mediaservice "tutorcast/internal/modules/media/service"
	mediausecase "tutorcast/internal/modules/media/usecase"
	playbackhttp "tutorcast/internal/modules/playback/adapter/in"
	playbackout "tutorcast/internal/modules/playback/adapter/out"
	"tutorcast/internal/modules/playback/dto"
	playbackport "tutorcast/internal/modules/playback/port/out"
	playbackusecase "tutorcast/internal/modules/playback/usecase"
	progressout "tutorcast/internal/modules/progress/adapter/out"
	progressservice "tutorcast/internal/modules/progress/service"
	progressusecase "tutorcast/internal/modules/progress/usecase"
	worksheetout "tutorcast/internal/modules/worksheet/adapter/out"
	worksheetservice "tutorcast/internal/modules/worksheet/service"
	worksheetusecase "tutorcast/internal/modules/worksheet/usecase"
	"tutorcast/internal/platform/httpx"
	"tutorcast/internal/platform/id"
	"tutorcast/internal/platform/logger"
)

const guidanceWorksheet = `{
  "mode": "auto",
  "drmProtectedPages": [2],
  "data": [
    {"page_number": 1, "guidance": [
      {"title": "**Warm up**", "description": ""},
      {"title": "Fractions", "description": "one\ntwo\nthree"}
    ]},
    {"page_number": 2, "guidance": [
      {"title": "Decimals", "description": ["four", "five"]}
    ]}
  ]
}`

type letterPages struct{}

func (letterPages) ReadPage(_ context.Context, _ string, page int) (documentdomain.Page, int, error) {
	return documentdomain.Page{Number: documentdomain.ClampPage(page, 2), Text: "text", Width: 612, Height: 792}, 2, nil
}

func newRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	root := t.TempDir()
	contentDir := filepath.Join(root, "worksheets")
	mediaDir := filepath.Join(root, "media")
	if err := os.MkdirAll(filepath.Join(mediaDir, "audio", "fractions"), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.MkdirAll(contentDir, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(filepath.Join(contentDir, "fractions.json"), []byte(guidanceWorksheet), 0o644); err != nil {
		t.Fatalf("write worksheet: %v", err)
	}
	if err := os.WriteFile(filepath.Join(mediaDir, "audio", "fractions", "1_1_1.mp3"), []byte("ID3"), 0o644); err != nil {
		t.Fatalf("write audio: %v", err)
	}

	log := logger.Nop()
	worksheets := worksheetusecase.NewInteractor(worksheetservice.NewWorksheetService(worksheetout.NewFileMetadataSource(contentDir), log))
	progress := progressusecase.NewInteractor(progressservice.NewProgressService(progressout.NewMemoryStore(), log))
	media := mediausecase.NewInteractor(mediaservice.NewProbeService(mediaout.NewFileAssetChecker(mediaDir), time.Second, log), 10)
	documents := documentusecase.NewInteractor(documentservice.NewDocumentService(letterPages{}, filepath.Join(root, "documents")))
	drm := drmusecase.NewInteractor(drmservice.NewLayoutService(drmout.NewWorksheetBoxAdapter(worksheets), drmout.NewDocumentGeometryAdapter(documents)))
	playback := playbackusecase.NewInteractor(
		playbackout.NewWorksheetContentAdapter(worksheets),
		playbackout.NewProgressAdapter(progress, log),
		playbackout.NewMediaAdapter(media),
		func() playbackport.AudioOutput { return playbackout.NewClientAudioOutput() },
		id.UUID{},
		log,
	)
	t.Cleanup(func() { _ = playback.Close(context.Background()) })
	return httpx.NewRouter(log, playbackhttp.NewHTTPHandler(playback, worksheets, documents, drm))
}

func do(t *testing.T, r http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func decodeSession(t *testing.T, rec *httptest.ResponseRecorder) dto.SessionOutput {
	t.Helper()
	var out dto.SessionOutput
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode session: %v (%s)", err, rec.Body.String())
	}
	return out
}

func TestSessionLifecycleOverHTTP(t *testing.T) {
	t.Parallel()
	r := newRouter(t)

	rec := do(t, r, http.MethodPost, "/api/sessions", map[string]any{"worksheetId": "fractions", "page": 1})
	if rec.Code != http.StatusCreated {
		t.Fatalf("unexpected status: got=%d want=%d (%s)", rec.Code, http.StatusCreated, rec.Body.String())
	}
	session := decodeSession(t, rec)
	if session.SessionID == "" || len(session.Units) != 2 || session.Units[0].Clickable || !session.Units[1].Clickable {
		t.Fatalf("unexpected session: %+v", session)
	}
	base := "/api/sessions/" + session.SessionID

	rec = do(t, r, http.MethodPost, base+"/select", map[string]any{"unitId": "guidance_0"})
	if rec.Code != http.StatusConflict {
		t.Fatalf("unexpected status for inert unit: got=%d want=%d", rec.Code, http.StatusConflict)
	}

	rec = do(t, r, http.MethodPost, base+"/select", map[string]any{"unitId": "guidance_1"})
	if rec.Code != http.StatusOK {
		t.Fatalf("select: %d %s", rec.Code, rec.Body.String())
	}
	if st := decodeSession(t, rec).State; st.StepIndex != 0 || len(st.DisplayedParagraphs) != 1 {
		t.Fatalf("unexpected state: %+v", st)
	}

	if st := decodeSession(t, do(t, r, http.MethodPost, base+"/advance", nil)).State; st.StepIndex != 1 || len(st.DisplayedParagraphs) != 2 {
		t.Fatalf("unexpected state after advance: %+v", st)
	}

	if rec := do(t, r, http.MethodPost, base+"/seek", map[string]any{}); rec.Code != http.StatusBadRequest {
		t.Fatalf("seek without step: got=%d want=%d", rec.Code, http.StatusBadRequest)
	}

	if st := decodeSession(t, do(t, r, http.MethodPost, base+"/exit", nil)).State; st.Phase != "idle" || st.TextMode {
		t.Fatalf("unexpected state after exit: %+v", st)
	}

	rec = do(t, r, http.MethodPost, base+"/navigate", map[string]any{"delta": 1})
	if out := decodeSession(t, rec); out.Page != 2 || !out.DRMProtected || out.State.ActiveUnitID != "" {
		t.Fatalf("unexpected page after navigate: %+v", out)
	}

	rec = do(t, r, http.MethodPost, base+"/navigate", map[string]any{"delta": -1})
	if out := decodeSession(t, rec); out.Page != 1 || out.State.ActiveUnitID != "" {
		t.Fatalf("exit cleared the active unit, nothing to restore: %+v", out)
	}

	if rec := do(t, r, http.MethodDelete, base, nil); rec.Code != http.StatusNoContent {
		t.Fatalf("delete: got=%d want=%d", rec.Code, http.StatusNoContent)
	}
	if rec := do(t, r, http.MethodGet, base, nil); rec.Code != http.StatusNotFound {
		t.Fatalf("get after delete: got=%d want=%d", rec.Code, http.StatusNotFound)
	}
}

func TestGuidanceListOverHTTP(t *testing.T) {
	t.Parallel()
	r := newRouter(t)
	session := decodeSession(t, do(t, r, http.MethodPost, "/api/sessions", map[string]any{"worksheetId": "fractions", "page": 1}))
	base := "/api/sessions/" + session.SessionID

	if st := decodeSession(t, do(t, r, http.MethodPost, base+"/guidance", nil)).State; st.GuidanceView != "list" || !st.TextMode {
		t.Fatalf("expected list view: %+v", st)
	}
	if st := decodeSession(t, do(t, r, http.MethodPost, base+"/select", map[string]any{"unitId": "guidance_1", "fromList": true})).State; st.GuidanceView != "detail" {
		t.Fatalf("expected detail view: %+v", st)
	}
	if st := decodeSession(t, do(t, r, http.MethodPost, base+"/exit", nil)).State; st.GuidanceView != "list" {
		t.Fatalf("expected collapse to list: %+v", st)
	}
	if st := decodeSession(t, do(t, r, http.MethodPost, base+"/exit", nil)).State; st.GuidanceSubMode || st.TextMode {
		t.Fatalf("expected full exit: %+v", st)
	}
}

func TestResumeHandoffOverHTTP(t *testing.T) {
	t.Parallel()
	r := newRouter(t)
	rec := do(t, r, http.MethodPost, "/api/sessions", map[string]any{
		"worksheetId": "fractions",
		"page":        1,
		"handoff":     map[string]any{"initialActiveContent": "guidance_1", "initialCurrentStepIndex": 2},
	})
	if st := decodeSession(t, rec).State; st.ActiveUnitID != "guidance_1" || st.StepIndex != 2 || len(st.DisplayedParagraphs) != 3 {
		t.Fatalf("expected handoff restoration: %+v", st)
	}
}

func TestNarrationAvailabilityOverHTTP(t *testing.T) {
	t.Parallel()
	r := newRouter(t)
	session := decodeSession(t, do(t, r, http.MethodPost, "/api/sessions", map[string]any{"worksheetId": "fractions", "page": 1}))
	base := "/api/sessions/" + session.SessionID

	deadline := time.Now().Add(2 * time.Second)
	for session.Media == "probing" && time.Now().Before(deadline) {
		time.Sleep(10 * time.Millisecond)
		session = decodeSession(t, do(t, r, http.MethodGet, base, nil))
	}
	// The probe targets the first unit, whose first-step asset exists on disk.
	if session.Media != "available" || session.VideoSource != "/tutors/default/loop.mp4" {
		t.Fatalf("expected narration available: %+v", session)
	}

	out := decodeSession(t, do(t, r, http.MethodPost, base+"/select", map[string]any{"unitId": "guidance_1"}))
	if out.Audio == nil || out.Audio.Path != "/audio/fractions/1_2_1.mp3" {
		t.Fatalf("unexpected cue: %+v", out.Audio)
	}
	out = decodeSession(t, do(t, r, http.MethodPost, base+"/audio", map[string]any{"seq": out.Audio.Seq, "kind": "playing"}))
	if !out.Speaking {
		t.Fatalf("expected speaking after playing event")
	}

	var tick dto.VideoTickOutput
	rec := do(t, r, http.MethodPost, base+"/video", map[string]any{"time": 3.0})
	if err := json.Unmarshal(rec.Body.Bytes(), &tick); err != nil {
		t.Fatalf("decode tick: %v", err)
	}
	if !tick.Seek || tick.SeekTo != 10 {
		t.Fatalf("expected seek into speaking window, got %+v", tick)
	}

	out = decodeSession(t, do(t, r, http.MethodPost, base+"/tutor", map[string]any{"tutor": "amira"}))
	if out.VideoSource != "/tutors/amira/loop.mp4" || out.Tutor != "amira" {
		t.Fatalf("unexpected tutor switch: %+v", out)
	}
}

func TestWorksheetPageAndDRMOverHTTP(t *testing.T) {
	t.Parallel()
	r := newRouter(t)

	rec := do(t, r, http.MethodGet, "/api/worksheets/fractions/pages/2", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("page: %d %s", rec.Code, rec.Body.String())
	}
	var page struct {
		Content struct {
			DRMProtected bool `json:"drmProtected"`
		} `json:"content"`
		Document struct {
			Width float64 `json:"width"`
		} `json:"document"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &page); err != nil {
		t.Fatalf("decode page: %v", err)
	}
	if !page.Content.DRMProtected || page.Document.Width != 612 {
		t.Fatalf("unexpected page: %s", rec.Body.String())
	}

	rec = do(t, r, http.MethodGet, "/api/worksheets/fractions/pages/2/drm?width=306", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("drm: %d %s", rec.Code, rec.Body.String())
	}
	var layout struct {
		Protected bool    `json:"protected"`
		Scale     float64 `json:"scale"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &layout); err != nil {
		t.Fatalf("decode layout: %v", err)
	}
	if !layout.Protected || layout.Scale != 0.5 {
		t.Fatalf("unexpected layout: %s", rec.Body.String())
	}

	if rec := do(t, r, http.MethodGet, "/api/worksheets/fractions/pages/0", nil); rec.Code != http.StatusBadRequest {
		t.Fatalf("page 0: got=%d want=%d", rec.Code, http.StatusBadRequest)
	}
}
