package usecase_test

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"testing"

	"tutorcast/internal/modules/document/domain"
	"tutorcast/internal/modules/document/dto"
	"tutorcast/internal/modules/document/service"
	"tutorcast/internal/modules/document/usecase"
	apperrors "tutorcast/internal/platform/errors"
)

type fakePageReader struct {
	total    int
	lastPath string
	lastPage int
}

func (r *fakePageReader) ReadPage(_ context.Context, path string, page int) (domain.Page, int, error) {
	r.lastPath = path
	r.lastPage = page
	return domain.Page{Number: domain.ClampPage(page, r.total), Text: "pdf text", Width: 600, Height: 800}, r.total, nil
}

type errPageReader struct{}

func (errPageReader) ReadPage(context.Context, string, int) (domain.Page, int, error) {
	return domain.Page{}, 0, fmt.Errorf("pdf fail")
}

type zeroBoxReader struct{}

func (zeroBoxReader) ReadPage(context.Context, string, int) (domain.Page, int, error) {
	return domain.Page{Number: 1}, 1, nil
}

func TestOpenPageResolvesPathAndClamps(t *testing.T) {
	t.Parallel()
	reader := &fakePageReader{total: 3}
	uc := usecase.NewInteractor(service.NewDocumentService(reader, "/docs"))

	out, err := uc.OpenPage(context.Background(), dto.OpenPageInput{WorksheetID: "algebra", Page: 9})
	if err != nil {
		t.Fatalf("open page: %v", err)
	}
	if reader.lastPath != filepath.Join("/docs", "algebra.pdf") {
		t.Fatalf("unexpected path %q", reader.lastPath)
	}
	if out.Page != 3 || out.TotalPages != 3 || out.Width != 600 || out.Height != 800 {
		t.Fatalf("unexpected output: %+v", out)
	}

	if _, err := uc.OpenPage(context.Background(), dto.OpenPageInput{WorksheetID: "algebra", Page: -2}); err != nil {
		t.Fatalf("open page: %v", err)
	}
	if reader.lastPage != 1 {
		t.Fatalf("expected non-positive page to clamp to 1, got %d", reader.lastPage)
	}
}

func TestOpenPageRejectsTraversal(t *testing.T) {
	t.Parallel()
	uc := usecase.NewInteractor(service.NewDocumentService(&fakePageReader{total: 1}, "/docs"))
	if _, err := uc.OpenPage(context.Background(), dto.OpenPageInput{WorksheetID: "../secret", Page: 1}); !errors.Is(err, apperrors.ErrInvalidInput) {
		t.Fatalf("expected invalid input, got %v", err)
	}
}

func TestOpenPageErrors(t *testing.T) {
	t.Parallel()
	uc := usecase.NewInteractor(service.NewDocumentService(errPageReader{}, "/docs"))
	if _, err := uc.OpenPage(context.Background(), dto.OpenPageInput{WorksheetID: "a", Page: 1}); err == nil {
		t.Fatalf("expected reader failure to surface")
	}
}

func TestOpenPageDefaultsGeometry(t *testing.T) {
	t.Parallel()
	uc := usecase.NewInteractor(service.NewDocumentService(zeroBoxReader{}, "/docs"))
	out, err := uc.OpenPage(context.Background(), dto.OpenPageInput{WorksheetID: "a", Page: 1})
	if err != nil {
		t.Fatalf("open page: %v", err)
	}
	if out.Width != domain.DefaultPageWidth || out.Height != domain.DefaultPageHeight {
		t.Fatalf("expected default geometry, got %+v", out)
	}
}
