package domain

const (
	DefaultRestBoundary = 10.0
	snapMargin          = 0.1
)

// VideoSync keeps a looping tutor video in its resting window [0, R) while
// narration is silent and in its speaking window [R, 2R) while it plays.
// It never reads the audio clock; only play/stop signals and video ticks drive it.
type VideoSync struct {
	rest    float64
	source  string
	playing bool
}

func NewVideoSync(rest float64) *VideoSync {
	if rest <= 0 {
		rest = DefaultRestBoundary
	}
	return &VideoSync{rest: rest}
}

// SetSource rehomes the synchronizer onto a new video and reports whether it changed.
func (s *VideoSync) SetSource(source string) bool {
	if source == s.source {
		return false
	}
	s.source = source
	s.playing = false
	return true
}

func (s *VideoSync) Source() string { return s.source }

func (s *VideoSync) AudioPlaying() { s.playing = true }

func (s *VideoSync) AudioStopped() { s.playing = false }

func (s *VideoSync) Speaking() bool { return s.playing }

func (s *VideoSync) RestBoundary() float64 { return s.rest }

// Tick returns the position the video must seek to, if any, for the current time t.
func (s *VideoSync) Tick(t float64) (float64, bool) {
	if s.source == "" {
		return 0, false
	}
	if s.playing {
		if t < s.rest || t >= 2*s.rest-snapMargin {
			return s.rest, true
		}
		return 0, false
	}
	if t >= s.rest-snapMargin {
		return 0, true
	}
	return 0, false
}
