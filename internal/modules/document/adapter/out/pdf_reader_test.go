package out

import (
	"context"
	"path/filepath"
	"testing"

	"rsc.io/pdf"
)

func TestLocalPDFReaderMissingFile(t *testing.T) {
	t.Parallel()
	r := NewLocalPDFReader()
	if _, _, err := r.ReadPage(context.Background(), filepath.Join(t.TempDir(), "missing.pdf"), 1); err == nil {
		t.Fatalf("expected missing file error")
	}
}

func TestMediaBoxDefaultsOnNull(t *testing.T) {
	t.Parallel()
	var v pdf.Value
	w, h := mediaBox(v)
	if w != 612 || h != 792 {
		t.Fatalf("expected letter defaults, got %v x %v", w, h)
	}
}
