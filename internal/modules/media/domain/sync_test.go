package domain_test

import (
	"testing"

	"tutorcast/internal/modules/media/domain"
)

func TestVideoSyncRestingLoop(t *testing.T) {
	t.Parallel()
	s := domain.NewVideoSync(10)
	if _, seek := s.Tick(9.95); seek {
		t.Fatalf("no source means no seeking")
	}
	s.SetSource("/tutors/default/loop.mp4")
	if _, seek := s.Tick(5); seek {
		t.Fatalf("resting window should play freely")
	}
	if to, seek := s.Tick(9.95); !seek || to != 0 {
		t.Fatalf("just under R should snap to 0, got %v %v", to, seek)
	}
	if to, seek := s.Tick(14); !seek || to != 0 {
		t.Fatalf("speaking window without audio should revert to 0, got %v %v", to, seek)
	}
}

func TestVideoSyncSpeakingLoop(t *testing.T) {
	t.Parallel()
	s := domain.NewVideoSync(10)
	s.SetSource("/tutors/default/loop.mp4")
	s.AudioPlaying()
	if to, seek := s.Tick(3); !seek || to != 10 {
		t.Fatalf("audio playing should jump into speak window, got %v %v", to, seek)
	}
	if _, seek := s.Tick(15); seek {
		t.Fatalf("inside speak window should play freely")
	}
	if to, seek := s.Tick(19.95); !seek || to != 10 {
		t.Fatalf("upper bound should loop back to R, got %v %v", to, seek)
	}
	s.AudioStopped()
	if to, seek := s.Tick(12); !seek || to != 0 {
		t.Fatalf("pause should revert to resting loop, got %v %v", to, seek)
	}
}

func TestVideoSyncSourceChangeResets(t *testing.T) {
	t.Parallel()
	s := domain.NewVideoSync(0)
	if s.RestBoundary() != domain.DefaultRestBoundary {
		t.Fatalf("non-positive boundary should use default")
	}
	s.SetSource("a")
	s.AudioPlaying()
	if s.SetSource("a") {
		t.Fatalf("same source should not reset")
	}
	if !s.Speaking() {
		t.Fatalf("same source keeps speaking state")
	}
	if !s.SetSource("b") || s.Speaking() {
		t.Fatalf("new source should reset speaking state")
	}
}
