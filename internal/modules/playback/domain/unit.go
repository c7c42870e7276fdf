package domain

type Mode string

const (
	ModeRegions Mode = "regions"
	ModeAuto    Mode = "auto"
)

type UnitKind string

const (
	UnitRegion   UnitKind = "region"
	UnitGuidance UnitKind = "guidance"
)

// Unit is the slice of a normalized content unit the engine needs.
type Unit struct {
	ID         string
	Kind       UnitKind
	Name       string
	Title      string
	Direction  string
	Paragraphs []string
	Page       int
	Index      int
	Clickable  bool
}

// LastStep is the highest valid step index, or -1 for a unit without paragraphs.
func (u Unit) LastStep() int {
	return len(u.Paragraphs) - 1
}

// Page is one mounted page's content snapshot.
type Page struct {
	WorksheetID  string
	Page         int
	Mode         Mode
	DRMProtected bool
	Units        []Unit
}

// SavedProgress mirrors the persisted session record of one page.
type SavedProgress struct {
	LastActive string
	Steps      map[string]int
}

func EmptyProgress() SavedProgress {
	return SavedProgress{Steps: map[string]int{}}
}

func (p SavedProgress) Step(unitID string) (int, bool) {
	step, ok := p.Steps[unitID]
	return step, ok
}

func (p SavedProgress) WithStep(unitID string, step int) SavedProgress {
	out := p.clone()
	out.LastActive = unitID
	out.Steps[unitID] = step
	return out
}

func (p SavedProgress) WithoutActive() SavedProgress {
	out := p.clone()
	out.LastActive = ""
	return out
}

func (p SavedProgress) clone() SavedProgress {
	out := SavedProgress{LastActive: p.LastActive, Steps: make(map[string]int, len(p.Steps))}
	for k, v := range p.Steps {
		out.Steps[k] = v
	}
	return out
}
