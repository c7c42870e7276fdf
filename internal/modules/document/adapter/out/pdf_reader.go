package out

import (
	"context"
	"fmt"
	"os"
	"strings"

	"tutorcast/internal/modules/document/domain"
	documentout "tutorcast/internal/modules/document/port/out"
	"rsc.io/pdf"
)

type LocalPDFReader struct{}

func NewLocalPDFReader() documentout.PageReader {
	return &LocalPDFReader{}
}

func (r *LocalPDFReader) ReadPage(_ context.Context, path string, page int) (domain.Page, int, error) {
	f, err := os.Open(path)
	if err != nil {
		return domain.Page{}, 0, fmt.Errorf("open pdf: %w", err)
	}
	defer f.Close()
	info, err := f.Stat()
	if err != nil {
		return domain.Page{}, 0, fmt.Errorf("stat pdf: %w", err)
	}
	doc, err := pdf.NewReader(f, info.Size())
	if err != nil {
		return domain.Page{}, 0, fmt.Errorf("parse pdf: %w", err)
	}
	total := doc.NumPage()
	if total == 0 {
		return domain.Page{Number: 1, Width: domain.DefaultPageWidth, Height: domain.DefaultPageHeight}, 0, nil
	}
	page = domain.ClampPage(page, total)
	p := doc.Page(page)
	if p.V.IsNull() {
		return domain.Page{}, total, fmt.Errorf("pdf page %d is null", page)
	}
	width, height := mediaBox(p.V)
	return domain.Page{Number: page, Text: pageText(p), Width: width, Height: height}, total, nil
}

func pageText(p pdf.Page) (text string) {
	defer func() {
		// rsc.io/pdf panics on content streams it cannot decode.
		if recover() != nil {
			text = ""
		}
	}()
	content := p.Content()
	parts := make([]string, 0, len(content.Text))
	for _, t := range content.Text {
		if strings.TrimSpace(t.S) == "" {
			continue
		}
		parts = append(parts, t.S)
	}
	return strings.Join(parts, " ")
}

// mediaBox walks the page tree upwards because MediaBox is inheritable.
func mediaBox(v pdf.Value) (float64, float64) {
	for depth := 0; !v.IsNull() && depth < 32; depth++ {
		box := v.Key("MediaBox")
		if box.Kind() == pdf.Array && box.Len() == 4 {
			w := box.Index(2).Float64() - box.Index(0).Float64()
			h := box.Index(3).Float64() - box.Index(1).Float64()
			if w < 0 {
				w = -w
			}
			if h < 0 {
				h = -h
			}
			if w > 0 && h > 0 {
				return w, h
			}
		}
		v = v.Key("Parent")
	}
	return domain.DefaultPageWidth, domain.DefaultPageHeight
}
