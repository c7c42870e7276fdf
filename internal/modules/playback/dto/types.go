package dto

// HandoffInput is the resume position passed by a caller returning to a page.
type HandoffInput struct {
	UnitID    string `json:"initialActiveContent"`
	StepIndex int    `json:"initialCurrentStepIndex"`
}

type OpenInput struct {
	WorksheetID string
	Page        int
	Handoff     *HandoffInput
}

type UnitOutput struct {
	ID         string   `json:"id"`
	Kind       string   `json:"kind"`
	Title      string   `json:"title"`
	Direction  string   `json:"direction"`
	Paragraphs []string `json:"paragraphs"`
	Index      int      `json:"index"`
	Clickable  bool     `json:"clickable"`
}

type StateOutput struct {
	Phase               string   `json:"phase"`
	ActiveUnitID        string   `json:"activeUnitId,omitempty"`
	StepIndex           int      `json:"stepIndex"`
	DisplayedParagraphs []string `json:"displayedParagraphs"`
	TextMode            bool     `json:"textModeActive"`
	GuidanceSubMode     bool     `json:"guidanceSubModeActive"`
	GuidanceView        string   `json:"guidanceView,omitempty"`
}

type AudioCueOutput struct {
	Seq    uint64 `json:"seq"`
	Path   string `json:"path"`
	UnitID string `json:"unitId"`
	Step   int    `json:"step"`
}

type SessionOutput struct {
	SessionID    string          `json:"sessionId"`
	WorksheetID  string          `json:"worksheetId"`
	Page         int             `json:"page"`
	Mode         string          `json:"mode"`
	DRMProtected bool            `json:"drmProtected"`
	Units        []UnitOutput    `json:"units"`
	State        StateOutput     `json:"state"`
	Media        string          `json:"media"`
	Tutor        string          `json:"tutor"`
	VideoSource  string          `json:"videoSource,omitempty"`
	Speaking     bool            `json:"speaking"`
	Audio        *AudioCueOutput `json:"audio,omitempty"`
}

type AudioEventInput struct {
	Seq   uint64 `json:"seq"`
	Kind  string `json:"kind"`
	Error string `json:"error,omitempty"`
}

type VideoTickOutput struct {
	SeekTo float64 `json:"seekTo"`
	Seek   bool    `json:"seek"`
}
