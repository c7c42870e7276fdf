package domain_test

import (
	"testing"
	"time"

	"tutorcast/internal/modules/media/domain"
)

func TestAudioPathConventions(t *testing.T) {
	t.Parallel()
	got, err := domain.AudioPath(domain.Narration{WorksheetID: "ws1", Kind: domain.SourceRegion, UnitName: "q3"}, 0)
	if err != nil || got != "/audio/ws1/q3_1.mp3" {
		t.Fatalf("unexpected region path %q %v", got, err)
	}
	got, err = domain.AudioPath(domain.Narration{WorksheetID: "ws1", Kind: domain.SourceGuidance, Page: 4, UnitIndex: 1}, 2)
	if err != nil || got != "/audio/ws1/4_2_3.mp3" {
		t.Fatalf("unexpected guidance path %q %v", got, err)
	}
	if _, err := domain.AudioPath(domain.Narration{WorksheetID: "ws1", Kind: domain.SourceRegion}, 0); err == nil {
		t.Fatalf("region without name should fail")
	}
	if _, err := domain.AudioPath(domain.Narration{Kind: domain.SourceGuidance}, 0); err == nil {
		t.Fatalf("missing worksheet should fail")
	}
	if got := domain.TutorVideoPath(""); got != "/tutors/default/loop.mp4" {
		t.Fatalf("unexpected default tutor path %q", got)
	}
}

func TestLatchCommitsOnce(t *testing.T) {
	t.Parallel()
	l := domain.NewLatch()
	if !l.Commit(domain.Outcome{Available: true, Reason: "buffered"}) {
		t.Fatalf("first commit should win")
	}
	if l.Commit(domain.Outcome{Available: false, Reason: "timeout"}) {
		t.Fatalf("second commit should lose")
	}
	select {
	case <-l.Done():
	case <-time.After(time.Second):
		t.Fatalf("done should be closed after commit")
	}
	if o := l.Outcome(); !o.Available || o.Reason != "buffered" {
		t.Fatalf("unexpected outcome %+v", o)
	}
}
