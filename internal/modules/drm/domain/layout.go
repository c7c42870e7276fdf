package domain

// Rect is a box in either document space or view space, depending on the caller.
type Rect struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

func (r Rect) Empty() bool {
	return r.Width <= 0 || r.Height <= 0
}

// Viewport maps document space into view space: view = doc*Scale + Offset.
type Viewport struct {
	Scale   float64
	OffsetX float64
	OffsetY float64
}

func (v Viewport) Apply(r Rect) Rect {
	return Rect{
		X:      r.X*v.Scale + v.OffsetX,
		Y:      r.Y*v.Scale + v.OffsetY,
		Width:  r.Width * v.Scale,
		Height: r.Height * v.Scale,
	}
}

// FitViewport scales a page to fit the container and centers it.
// A non-positive container height fits by width only.
func FitViewport(pageW, pageH, containerW, containerH float64) Viewport {
	if pageW <= 0 || pageH <= 0 || containerW <= 0 {
		return Viewport{Scale: 1}
	}
	scale := containerW / pageW
	if containerH > 0 {
		if s := containerH / pageH; s < scale {
			scale = s
		}
	}
	vp := Viewport{Scale: scale}
	vp.OffsetX = (containerW - pageW*scale) / 2
	if containerH > 0 {
		vp.OffsetY = (containerH - pageH*scale) / 2
	}
	return vp
}

// Box is a content unit's bounding box in document space.
type Box struct {
	UnitID string
	Rect   Rect
}

// Window is a clear window in view space revealing one unit of a protected page.
type Window struct {
	UnitID string
	Rect   Rect
}

type Layout struct {
	Protected bool
	Viewport  Viewport
	Windows   []Window
}

// ComputeLayout derives clear windows for a protected page. Unprotected pages
// render unmasked and carry no windows; boxes without area are skipped.
func ComputeLayout(protected bool, boxes []Box, vp Viewport) Layout {
	layout := Layout{Protected: protected, Viewport: vp}
	if !protected {
		return layout
	}
	layout.Windows = make([]Window, 0, len(boxes))
	for _, b := range boxes {
		if b.Rect.Empty() {
			continue
		}
		layout.Windows = append(layout.Windows, Window{UnitID: b.UnitID, Rect: vp.Apply(b.Rect)})
	}
	return layout
}

// Boundary holds one page's inputs so a resize only recomputes the viewport.
type Boundary struct {
	Protected  bool
	PageWidth  float64
	PageHeight float64
	Boxes      []Box
}

func (b Boundary) Resize(containerW, containerH float64) Layout {
	return ComputeLayout(b.Protected, b.Boxes, FitViewport(b.PageWidth, b.PageHeight, containerW, containerH))
}
