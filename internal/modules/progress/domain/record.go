package domain

import (
	"encoding/json"
	"fmt"
)

const TutorPreferenceKey = "selected_tutor"

type StepProgress struct {
	CurrentStepIndex int `json:"currentStepIndex"`
}

// Record is the per-page session state: the last active unit plus every unit's step.
type Record struct {
	LastActiveContentID *string                 `json:"lastActiveContentId"`
	Content             map[string]StepProgress `json:"content"`
}

func Key(worksheetID string, page int) string {
	return fmt.Sprintf("worksheet_page_state_%s_%d", worksheetID, page)
}

func EmptyRecord() Record {
	return Record{Content: map[string]StepProgress{}}
}

// WithStep returns a copy with unitID active at step, keeping other units' progress.
func (r Record) WithStep(unitID string, step int) Record {
	out := r.clone()
	id := unitID
	out.LastActiveContentID = &id
	out.Content[unitID] = StepProgress{CurrentStepIndex: step}
	return out
}

// WithoutActive returns a copy with no active unit and progress untouched.
func (r Record) WithoutActive() Record {
	out := r.clone()
	out.LastActiveContentID = nil
	return out
}

func (r Record) LastActive() (string, bool) {
	if r.LastActiveContentID == nil || *r.LastActiveContentID == "" {
		return "", false
	}
	return *r.LastActiveContentID, true
}

func (r Record) Step(unitID string) (int, bool) {
	p, ok := r.Content[unitID]
	if !ok {
		return 0, false
	}
	return p.CurrentStepIndex, true
}

func (r Record) clone() Record {
	out := Record{Content: make(map[string]StepProgress, len(r.Content))}
	if r.LastActiveContentID != nil {
		id := *r.LastActiveContentID
		out.LastActiveContentID = &id
	}
	for k, v := range r.Content {
		out.Content[k] = v
	}
	return out
}

func Encode(r Record) (string, error) {
	if r.Content == nil {
		r.Content = map[string]StepProgress{}
	}
	raw, err := json.Marshal(r)
	if err != nil {
		return "", fmt.Errorf("encode session record: %w", err)
	}
	return string(raw), nil
}

func Decode(raw string) (Record, error) {
	r := Record{}
	if err := json.Unmarshal([]byte(raw), &r); err != nil {
		return Record{}, fmt.Errorf("decode session record: %w", err)
	}
	if r.Content == nil {
		r.Content = map[string]StepProgress{}
	}
	for id, p := range r.Content {
		if p.CurrentStepIndex < 0 {
			r.Content[id] = StepProgress{}
		}
	}
	return r, nil
}
