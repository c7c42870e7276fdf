package in

import (
	"context"

	mediadto "tutorcast/internal/modules/media/dto"
	mediain "tutorcast/internal/modules/media/port/in"
)

type CLIHandler struct {
	usecase mediain.Usecase
}

func NewCLIHandler(usecase mediain.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

// Probe checks the first-step narration of one unit on a page.
func (h CLIHandler) Probe(ctx context.Context, ref mediadto.NarrationRef) (mediadto.ProbeOutput, error) {
	return h.usecase.Probe(ctx, mediadto.ProbeInput{WorksheetID: ref.WorksheetID, Page: ref.Page, Narration: ref})
}

func (h CLIHandler) AudioPath(ref mediadto.NarrationRef, step int) (string, error) {
	return h.usecase.AudioPath(ref, step)
}

func (h CLIHandler) TutorVideoPath(tutor string) string {
	return h.usecase.TutorVideoPath(tutor)
}
