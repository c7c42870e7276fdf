package dto

type LayoutInput struct {
	WorksheetID     string
	Page            int
	ContainerWidth  float64
	ContainerHeight float64
}

type WindowOutput struct {
	UnitID string  `json:"unitId"`
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

type LayoutOutput struct {
	WorksheetID string         `json:"worksheetId"`
	Page        int            `json:"page"`
	Protected   bool           `json:"protected"`
	PageWidth   float64        `json:"pageWidth"`
	PageHeight  float64        `json:"pageHeight"`
	Scale       float64        `json:"scale"`
	OffsetX     float64        `json:"offsetX"`
	OffsetY     float64        `json:"offsetY"`
	Windows     []WindowOutput `json:"windows"`
}
