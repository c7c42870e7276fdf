package dto

type LoadPageInput struct {
	WorksheetID string
	Page        int
}

type UnitOutput struct {
	ID         string   `json:"id"`
	Kind       string   `json:"kind"`
	Name       string   `json:"name"`
	Title      string   `json:"title"`
	RawTitle   string   `json:"rawTitle"`
	Direction  string   `json:"direction"`
	Paragraphs []string `json:"paragraphs"`
	Page       int      `json:"page"`
	Index      int      `json:"index"`
	Clickable  bool     `json:"clickable"`
	X          float64  `json:"x"`
	Y          float64  `json:"y"`
	Width      float64  `json:"width"`
	Height     float64  `json:"height"`
}

type PageOutput struct {
	WorksheetID  string       `json:"worksheetId"`
	Page         int          `json:"page"`
	Mode         string       `json:"mode"`
	DRMProtected bool         `json:"drmProtected"`
	Units        []UnitOutput `json:"units"`
}
