package domain

import (
	"strings"
	"unicode/utf8"

	"golang.org/x/text/unicode/bidi"
)

type Kind string

const (
	KindRegion   Kind = "region"
	KindGuidance Kind = "guidance"
)

type Direction string

const (
	LeftToRight Direction = "ltr"
	RightToLeft Direction = "rtl"
)

// Rect is a bounding box in document-space units.
type Rect struct {
	X      float64
	Y      float64
	Width  float64
	Height float64
}

// ContentUnit is the mode-independent view of a region or a guidance entry.
type ContentUnit struct {
	ID         string
	Kind       Kind
	Name       string
	Title      string
	RawTitle   string
	Paragraphs []string
	Page       int
	Index      int
	Rect       Rect
}

// Clickable reports whether selecting the unit can start playback.
func (u ContentUnit) Clickable() bool {
	return len(u.Paragraphs) > 0 && !placeholderOnly(u.Paragraphs)
}

func (u ContentUnit) Direction() Direction {
	return DetectDirection(u.RawTitle)
}

var emphasis = strings.NewReplacer("**", "", "__", "", "*", "")

// StripEmphasis removes markdown emphasis markers from a title.
func StripEmphasis(title string) string {
	return strings.TrimSpace(emphasis.Replace(title))
}

// DetectDirection returns RightToLeft when the first strong character is Hebrew or Arabic class.
func DetectDirection(text string) Direction {
	for len(text) > 0 {
		props, size := bidi.LookupString(text)
		if size == 0 {
			_, size = utf8.DecodeRuneInString(text)
		}
		switch props.Class() {
		case bidi.R, bidi.AL:
			return RightToLeft
		case bidi.L:
			return LeftToRight
		}
		text = text[size:]
	}
	return LeftToRight
}
