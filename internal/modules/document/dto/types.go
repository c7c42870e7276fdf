package dto

type OpenPageInput struct {
	WorksheetID string
	Page        int
}

type PageOutput struct {
	WorksheetID string  `json:"worksheetId"`
	Page        int     `json:"page"`
	TotalPages  int     `json:"totalPages"`
	Text        string  `json:"text"`
	Width       float64 `json:"width"`
	Height      float64 `json:"height"`
}
