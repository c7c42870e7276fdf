package dto

type NarrationRef struct {
	WorksheetID string
	Kind        string
	UnitName    string
	Page        int
	UnitIndex   int
}

type ProbeInput struct {
	WorksheetID string
	Page        int
	Narration   NarrationRef
}

type ProbeOutput struct {
	Key       string
	AssetPath string
	Available bool
	Reason    string
}
