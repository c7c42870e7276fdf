package dto

type PageKey struct {
	WorksheetID string
	Page        int
}

type SaveStepInput struct {
	WorksheetID string
	Page        int
	UnitID      string
	StepIndex   int
}

type RecordOutput struct {
	Key                 string         `json:"key"`
	LastActiveContentID string         `json:"lastActiveContentId,omitempty"`
	HasActive           bool           `json:"hasActive"`
	Steps               map[string]int `json:"steps"`
}
