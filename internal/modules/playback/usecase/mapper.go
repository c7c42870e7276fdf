package usecase

import (
	"tutorcast/internal/modules/playback/dto"
	"tutorcast/internal/modules/playback/service"
)

func toSessionOutput(sessionID string, snap service.Snapshot) dto.SessionOutput {
	out := dto.SessionOutput{
		SessionID:    sessionID,
		WorksheetID:  snap.WorksheetID,
		Page:         snap.Page,
		Mode:         string(snap.Mode),
		DRMProtected: snap.DRMProtected,
		Units:        make([]dto.UnitOutput, 0, len(snap.Units)),
		State: dto.StateOutput{
			Phase:               string(snap.State.Phase),
			ActiveUnitID:        snap.State.ActiveUnitID,
			StepIndex:           snap.State.StepIndex,
			DisplayedParagraphs: snap.State.DisplayedParagraphs,
			TextMode:            snap.State.TextMode,
			GuidanceSubMode:     snap.State.GuidanceSubMode,
			GuidanceView:        string(snap.State.GuidanceView),
		},
		Media:       string(snap.Media),
		Tutor:       snap.Tutor,
		VideoSource: snap.VideoSource,
		Speaking:    snap.Speaking,
	}
	for _, u := range snap.Units {
		out.Units = append(out.Units, dto.UnitOutput{
			ID:         u.ID,
			Kind:       string(u.Kind),
			Title:      u.Title,
			Direction:  u.Direction,
			Paragraphs: u.Paragraphs,
			Index:      u.Index,
			Clickable:  u.Clickable,
		})
	}
	if !snap.Audio.Empty() {
		out.Audio = &dto.AudioCueOutput{Seq: snap.Audio.Seq, Path: snap.Audio.Path, UnitID: snap.Audio.UnitID, Step: snap.Audio.Step}
	}
	return out
}
