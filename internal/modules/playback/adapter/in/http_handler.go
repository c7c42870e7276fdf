package in

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	documentdto "tutorcast/internal/modules/document/dto"
	documentin "tutorcast/internal/modules/document/port/in"
	drmdto "tutorcast/internal/modules/drm/dto"
	drmin "tutorcast/internal/modules/drm/port/in"
	"tutorcast/internal/modules/playback/dto"
	playbackin "tutorcast/internal/modules/playback/port/in"
	worksheetdto "tutorcast/internal/modules/worksheet/dto"
	worksheetin "tutorcast/internal/modules/worksheet/port/in"
	apperrors "tutorcast/internal/platform/errors"
	"tutorcast/internal/platform/httpx"
)

type HTTPHandler struct {
	playback   playbackin.Usecase
	worksheets worksheetin.Usecase
	documents  documentin.Usecase
	drm        drmin.Usecase
}

func NewHTTPHandler(playback playbackin.Usecase, worksheets worksheetin.Usecase, documents documentin.Usecase, drm drmin.Usecase) *HTTPHandler {
	return &HTTPHandler{playback: playback, worksheets: worksheets, documents: documents, drm: drm}
}

func (h *HTTPHandler) Register(api *gin.RouterGroup) {
	sessions := api.Group("/sessions")
	{
		sessions.POST("", h.OpenSession)
		sessions.GET("/:id", h.GetSession)
		sessions.DELETE("/:id", h.CloseSession)
		sessions.POST("/:id/select", h.Select)
		sessions.POST("/:id/advance", h.Advance)
		sessions.POST("/:id/seek", h.Seek)
		sessions.POST("/:id/exit", h.Exit)
		sessions.POST("/:id/guidance", h.OpenGuidanceList)
		sessions.POST("/:id/navigate", h.Navigate)
		sessions.POST("/:id/reload", h.Reload)
		sessions.POST("/:id/audio", h.AudioEvent)
		sessions.POST("/:id/video", h.VideoTick)
		sessions.POST("/:id/tutor", h.SetTutor)
	}
	worksheets := api.Group("/worksheets")
	{
		worksheets.GET("", h.ListWorksheets)
		worksheets.GET("/:id/pages/:page", h.GetPage)
		worksheets.GET("/:id/pages/:page/drm", h.GetDRMLayout)
	}
}

type openSessionRequest struct {
	WorksheetID string            `json:"worksheetId"`
	Page        int               `json:"page"`
	Handoff     *dto.HandoffInput `json:"handoff,omitempty"`
}

// POST /api/sessions
func (h *HTTPHandler) OpenSession(c *gin.Context) {
	var req openSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpx.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	session, err := h.playback.Open(c.Request.Context(), dto.OpenInput{WorksheetID: req.WorksheetID, Page: req.Page, Handoff: req.Handoff})
	if err != nil {
		httpx.RespondAppError(c, err)
		return
	}
	c.JSON(http.StatusCreated, session.Snapshot())
}

// GET /api/sessions/:id
func (h *HTTPHandler) GetSession(c *gin.Context) {
	session, ok := h.session(c)
	if !ok {
		return
	}
	httpx.RespondOK(c, session.Snapshot())
}

// DELETE /api/sessions/:id
func (h *HTTPHandler) CloseSession(c *gin.Context) {
	if err := h.playback.CloseSession(c.Request.Context(), c.Param("id")); err != nil {
		httpx.RespondAppError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

type selectRequest struct {
	UnitID   string `json:"unitId"`
	FromList bool   `json:"fromList"`
}

// POST /api/sessions/:id/select
func (h *HTTPHandler) Select(c *gin.Context) {
	session, ok := h.session(c)
	if !ok {
		return
	}
	var req selectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpx.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	out, err := session.Select(c.Request.Context(), req.UnitID, req.FromList)
	respond(c, out, err)
}

// POST /api/sessions/:id/advance
func (h *HTTPHandler) Advance(c *gin.Context) {
	session, ok := h.session(c)
	if !ok {
		return
	}
	httpx.RespondOK(c, session.Advance(c.Request.Context()))
}

type seekRequest struct {
	Step *int `json:"step"`
}

// POST /api/sessions/:id/seek
func (h *HTTPHandler) Seek(c *gin.Context) {
	session, ok := h.session(c)
	if !ok {
		return
	}
	var req seekRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Step == nil {
		httpx.RespondError(c, http.StatusBadRequest, "invalid_request", bindErr(err, "step is required"))
		return
	}
	out, err := session.SeekStep(c.Request.Context(), *req.Step)
	respond(c, out, err)
}

// POST /api/sessions/:id/exit
func (h *HTTPHandler) Exit(c *gin.Context) {
	session, ok := h.session(c)
	if !ok {
		return
	}
	httpx.RespondOK(c, session.Exit(c.Request.Context()))
}

// POST /api/sessions/:id/guidance
func (h *HTTPHandler) OpenGuidanceList(c *gin.Context) {
	session, ok := h.session(c)
	if !ok {
		return
	}
	httpx.RespondOK(c, session.OpenGuidanceList(c.Request.Context()))
}

type navigateRequest struct {
	Delta       int               `json:"delta"`
	WorksheetID string            `json:"worksheetId"`
	Page        int               `json:"page"`
	Handoff     *dto.HandoffInput `json:"handoff,omitempty"`
}

// POST /api/sessions/:id/navigate
// Either a relative page delta or an absolute worksheet and page.
func (h *HTTPHandler) Navigate(c *gin.Context) {
	session, ok := h.session(c)
	if !ok {
		return
	}
	var req navigateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpx.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	var (
		out dto.SessionOutput
		err error
	)
	if req.WorksheetID != "" || req.Page != 0 {
		worksheetID := req.WorksheetID
		if worksheetID == "" {
			worksheetID = session.Snapshot().WorksheetID
		}
		out, err = session.Mount(c.Request.Context(), worksheetID, req.Page, req.Handoff)
	} else {
		out, err = session.Navigate(c.Request.Context(), req.Delta)
	}
	respond(c, out, err)
}

// POST /api/sessions/:id/reload
func (h *HTTPHandler) Reload(c *gin.Context) {
	session, ok := h.session(c)
	if !ok {
		return
	}
	out, err := session.Reload(c.Request.Context())
	respond(c, out, err)
}

// POST /api/sessions/:id/audio
func (h *HTTPHandler) AudioEvent(c *gin.Context) {
	session, ok := h.session(c)
	if !ok {
		return
	}
	var req dto.AudioEventInput
	if err := c.ShouldBindJSON(&req); err != nil {
		httpx.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	out, err := session.AudioEvent(c.Request.Context(), req)
	respond(c, out, err)
}

type videoTickRequest struct {
	Time float64 `json:"time"`
}

// POST /api/sessions/:id/video
func (h *HTTPHandler) VideoTick(c *gin.Context) {
	session, ok := h.session(c)
	if !ok {
		return
	}
	var req videoTickRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpx.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	httpx.RespondOK(c, session.VideoTick(req.Time))
}

type tutorRequest struct {
	Tutor string `json:"tutor"`
}

// POST /api/sessions/:id/tutor
func (h *HTTPHandler) SetTutor(c *gin.Context) {
	session, ok := h.session(c)
	if !ok {
		return
	}
	var req tutorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpx.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	out, err := session.SetTutor(c.Request.Context(), req.Tutor)
	if err != nil {
		httpx.RespondError(c, http.StatusBadRequest, "invalid_tutor", err)
		return
	}
	httpx.RespondOK(c, out)
}

// GET /api/worksheets
func (h *HTTPHandler) ListWorksheets(c *gin.Context) {
	ids, err := h.worksheets.ListWorksheets(c.Request.Context())
	if err != nil {
		httpx.RespondAppError(c, err)
		return
	}
	httpx.RespondOK(c, gin.H{"worksheets": ids})
}

type pageResponse struct {
	Content  worksheetdto.PageOutput `json:"content"`
	Document documentdto.PageOutput  `json:"document"`
}

// GET /api/worksheets/:id/pages/:page
func (h *HTTPHandler) GetPage(c *gin.Context) {
	page, ok := pageParam(c)
	if !ok {
		return
	}
	worksheetID := c.Param("id")
	content, err := h.worksheets.LoadPage(c.Request.Context(), worksheetdto.LoadPageInput{WorksheetID: worksheetID, Page: page})
	if err != nil {
		httpx.RespondAppError(c, err)
		return
	}
	doc, err := h.documents.OpenPage(c.Request.Context(), documentdto.OpenPageInput{WorksheetID: worksheetID, Page: page})
	if err != nil {
		httpx.RespondError(c, http.StatusBadGateway, "document_unavailable", err)
		return
	}
	httpx.RespondOK(c, pageResponse{Content: content, Document: doc})
}

// GET /api/worksheets/:id/pages/:page/drm?width=&height=
func (h *HTTPHandler) GetDRMLayout(c *gin.Context) {
	page, ok := pageParam(c)
	if !ok {
		return
	}
	width, errW := strconv.ParseFloat(c.Query("width"), 64)
	height, errH := strconv.ParseFloat(c.DefaultQuery("height", "0"), 64)
	if errW != nil || errH != nil {
		httpx.RespondError(c, http.StatusBadRequest, "invalid_request", fmt.Errorf("width and height must be numbers"))
		return
	}
	out, err := h.drm.Layout(c.Request.Context(), drmdto.LayoutInput{
		WorksheetID:     c.Param("id"),
		Page:            page,
		ContainerWidth:  width,
		ContainerHeight: height,
	})
	if err != nil {
		httpx.RespondAppError(c, err)
		return
	}
	httpx.RespondOK(c, out)
}

func (h *HTTPHandler) session(c *gin.Context) (playbackin.Session, bool) {
	session, err := h.playback.Session(c.Param("id"))
	if err != nil {
		httpx.RespondAppError(c, err)
		return nil, false
	}
	return session, true
}

func pageParam(c *gin.Context) (int, bool) {
	page, err := strconv.Atoi(c.Param("page"))
	if err != nil || page <= 0 {
		httpx.RespondError(c, http.StatusBadRequest, "invalid_request", fmt.Errorf("page %q: %w", c.Param("page"), apperrors.ErrInvalidInput))
		return 0, false
	}
	return page, true
}

func respond(c *gin.Context, out dto.SessionOutput, err error) {
	if err != nil {
		httpx.RespondAppError(c, err)
		return
	}
	httpx.RespondOK(c, out)
}

func bindErr(err error, fallback string) error {
	if err != nil {
		return err
	}
	return fmt.Errorf("%s", fallback)
}
