package domain

import (
	"fmt"
	"path"
	"strings"
)

type SourceKind string

const (
	SourceRegion   SourceKind = "region"
	SourceGuidance SourceKind = "guidance"
)

// Narration identifies the narrated unit an audio asset belongs to.
type Narration struct {
	WorksheetID string
	Kind        SourceKind
	UnitName    string
	Page        int
	UnitIndex   int
}

// AudioPath returns the asset path of the zero-based step of a unit.
// Region audio is named after the unit, guidance audio after page and 1-indexed position.
func AudioPath(n Narration, step int) (string, error) {
	if strings.TrimSpace(n.WorksheetID) == "" {
		return "", fmt.Errorf("worksheet id is required")
	}
	if step < 0 {
		return "", fmt.Errorf("step %d is negative", step)
	}
	var name string
	switch n.Kind {
	case SourceRegion:
		if strings.TrimSpace(n.UnitName) == "" {
			return "", fmt.Errorf("region audio requires a unit name")
		}
		name = fmt.Sprintf("%s_%d.mp3", n.UnitName, step+1)
	case SourceGuidance:
		name = fmt.Sprintf("%d_%d_%d.mp3", n.Page, n.UnitIndex+1, step+1)
	default:
		return "", fmt.Errorf("unknown narration kind %q", n.Kind)
	}
	return path.Join("/audio", n.WorksheetID, name), nil
}

const DefaultTutor = "default"

func TutorVideoPath(tutor string) string {
	tutor = strings.TrimSpace(tutor)
	if tutor == "" {
		tutor = DefaultTutor
	}
	return path.Join("/tutors", tutor, "loop.mp4")
}
