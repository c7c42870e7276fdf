package domain

type Phase string

const (
	PhaseIdle    Phase = "idle"
	PhaseViewing Phase = "viewing"
)

// GuidanceView is the auto-mode guidance panel: hidden, listing every item, or showing one.
type GuidanceView string

const (
	GuidanceHidden GuidanceView = ""
	GuidanceList   GuidanceView = "list"
	GuidanceDetail GuidanceView = "detail"
)

// State is a read-only view of the machine. DisplayedParagraphs is always the
// active unit's paragraphs up to and including StepIndex, and empty when idle.
type State struct {
	Phase               Phase
	ActiveUnitID        string
	StepIndex           int
	DisplayedParagraphs []string
	TextMode            bool
	GuidanceSubMode     bool
	GuidanceView        GuidanceView
	Restored            bool
}

type PersistOp int

const (
	PersistNone PersistOp = iota
	PersistStep
	PersistClearActive
)

type AudioOp int

const (
	AudioKeep AudioOp = iota
	AudioPlay
	AudioStop
)

// Transition lists the side effects a state change asks the engine to carry out.
type Transition struct {
	Changed   bool
	Audio     AudioOp
	AudioStep int
	Persist   PersistOp
}

func (t Transition) Noop() bool {
	return !t.Changed && t.Audio == AudioKeep && t.Persist == PersistNone
}

// Machine owns the playback state of one mounted page. It is not safe for
// concurrent use; callers serialize access.
type Machine struct {
	mode     Mode
	units    []Unit
	active   string
	step     int
	textMode bool
	view     GuidanceView
	restored bool
}

func NewMachine() *Machine {
	return &Machine{}
}

// Load installs a new content snapshot. An active unit that is still present
// and clickable keeps its step, clamped to the new paragraph count.
func (m *Machine) Load(mode Mode, units []Unit) {
	m.mode = mode
	m.units = units
	if m.mode != ModeAuto && m.view != GuidanceHidden {
		m.view = GuidanceHidden
	}
	if m.active == "" {
		return
	}
	u, ok := m.find(m.active)
	if !ok || !u.Clickable {
		m.clear()
		return
	}
	m.step = clampStep(m.step, u)
}

func (m *Machine) Mode() Mode { return m.mode }

func (m *Machine) Units() []Unit { return m.units }

func (m *Machine) Restored() bool { return m.restored }

func (m *Machine) Unit(id string) (Unit, bool) { return m.find(id) }

// Selectable reports whether id names a clickable unit of the current snapshot.
func (m *Machine) Selectable(id string) bool {
	u, ok := m.find(id)
	return ok && u.Clickable
}

func (m *Machine) Active() (Unit, bool) {
	if m.active == "" {
		return Unit{}, false
	}
	return m.find(m.active)
}

func (m *Machine) State() State {
	st := State{
		Phase:           PhaseIdle,
		TextMode:        m.textMode,
		GuidanceView:    m.view,
		GuidanceSubMode: m.view != GuidanceHidden,
		Restored:        m.restored,
	}
	u, ok := m.Active()
	if !ok {
		st.DisplayedParagraphs = []string{}
		return st
	}
	st.Phase = PhaseViewing
	st.ActiveUnitID = u.ID
	st.StepIndex = m.step
	st.DisplayedParagraphs = append([]string(nil), u.Paragraphs[:m.step+1]...)
	return st
}

// Select activates a unit. savedStep < 0 means no saved progress. fromList
// marks a pick from the guidance list, which opens the detail sub-state.
func (m *Machine) Select(id string, savedStep int, fromList bool) Transition {
	u, ok := m.find(id)
	if !ok || !u.Clickable {
		return Transition{}
	}
	if id == m.active {
		t := Transition{Audio: AudioPlay, AudioStep: m.step}
		if fromList && m.view == GuidanceList {
			m.view = GuidanceDetail
			t.Changed = true
		}
		return t
	}
	step := 0
	if savedStep >= 0 {
		step = clampStep(savedStep, u)
	}
	m.active = id
	m.step = step
	m.textMode = true
	if fromList && m.mode == ModeAuto {
		m.view = GuidanceDetail
	} else {
		m.view = GuidanceHidden
	}
	return Transition{Changed: true, Audio: AudioPlay, AudioStep: step, Persist: PersistStep}
}

func (m *Machine) Advance() Transition {
	u, ok := m.Active()
	if !ok || m.step >= u.LastStep() {
		return Transition{}
	}
	m.step++
	return Transition{Changed: true, Audio: AudioPlay, AudioStep: m.step, Persist: PersistStep}
}

// SeekStep replays an already displayed step without touching state.
func (m *Machine) SeekStep(step int) Transition {
	if _, ok := m.Active(); !ok || step < 0 || step > m.step {
		return Transition{}
	}
	return Transition{Audio: AudioPlay, AudioStep: step}
}

// Exit leaves the guidance detail for the list when it is open, otherwise
// clears the active unit and leaves text mode.
func (m *Machine) Exit() Transition {
	if m.view == GuidanceDetail {
		m.view = GuidanceList
		return Transition{Changed: true}
	}
	if m.active == "" && !m.textMode {
		return Transition{}
	}
	hadActive := m.active != ""
	m.clear()
	t := Transition{Changed: true, Audio: AudioStop}
	if hadActive {
		t.Persist = PersistClearActive
	}
	return t
}

func (m *Machine) OpenGuidanceList() Transition {
	if m.mode != ModeAuto || (m.textMode && m.view == GuidanceList) {
		return Transition{}
	}
	m.textMode = true
	m.view = GuidanceList
	return Transition{Changed: true}
}

// Restore applies a saved position once per mount. The first call with
// content loaded consumes the latch even when id is empty or unknown.
func (m *Machine) Restore(id string, step int) Transition {
	if m.restored || len(m.units) == 0 {
		return Transition{}
	}
	m.restored = true
	if m.active != "" {
		return Transition{}
	}
	u, ok := m.find(id)
	if !ok || !u.Clickable {
		return Transition{}
	}
	m.active = id
	m.step = clampStep(step, u)
	m.textMode = true
	m.view = GuidanceHidden
	return Transition{Changed: true, Persist: PersistStep}
}

// Reset drops everything including the restore latch, for navigation.
func (m *Machine) Reset() Transition {
	wasActive := m.active != "" || m.textMode
	*m = Machine{}
	return Transition{Changed: wasActive, Audio: AudioStop}
}

func (m *Machine) clear() {
	m.active = ""
	m.step = 0
	m.textMode = false
	m.view = GuidanceHidden
}

func (m *Machine) find(id string) (Unit, bool) {
	if id == "" {
		return Unit{}, false
	}
	for _, u := range m.units {
		if u.ID == id {
			return u, true
		}
	}
	return Unit{}, false
}

func clampStep(step int, u Unit) int {
	if step < 0 {
		return 0
	}
	if last := u.LastStep(); step > last {
		if last < 0 {
			return 0
		}
		return last
	}
	return step
}
