package domain

// Cue is one narration request. Seq increases with every play or stop so
// late events from a superseded cue can be told apart.
type Cue struct {
	Seq    uint64
	Path   string
	UnitID string
	Step   int
}

func (c Cue) Empty() bool { return c.Path == "" }

type AudioEventKind string

const (
	AudioPlaying AudioEventKind = "playing"
	AudioPaused  AudioEventKind = "paused"
	AudioEnded   AudioEventKind = "ended"
	AudioFailed  AudioEventKind = "error"
)

func (k AudioEventKind) Valid() bool {
	switch k {
	case AudioPlaying, AudioPaused, AudioEnded, AudioFailed:
		return true
	}
	return false
}

type AudioEvent struct {
	Seq  uint64
	Kind AudioEventKind
	Err  string
}
