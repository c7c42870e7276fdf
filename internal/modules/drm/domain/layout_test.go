package domain

import (
	"math"
	"testing"
)

func approx(a, b float64) bool { return math.Abs(a-b) < 1e-9 }

func TestFitViewportCentersPage(t *testing.T) {
	t.Parallel()
	vp := FitViewport(100, 200, 400, 400)
	if !approx(vp.Scale, 2) || !approx(vp.OffsetX, 100) || !approx(vp.OffsetY, 0) {
		t.Fatalf("unexpected viewport: %+v", vp)
	}
	vp = FitViewport(100, 200, 300, 0)
	if !approx(vp.Scale, 3) || !approx(vp.OffsetX, 0) || !approx(vp.OffsetY, 0) {
		t.Fatalf("unexpected width-only viewport: %+v", vp)
	}
}

func TestClearWindowTracksResize(t *testing.T) {
	t.Parallel()
	region := Rect{X: 10, Y: 20, Width: 30, Height: 40}
	boundary := Boundary{Protected: true, PageWidth: 100, PageHeight: 100, Boxes: []Box{{UnitID: "intro", Rect: region}}}

	for _, size := range [][2]float64{{200, 300}, {500, 250}} {
		layout := boundary.Resize(size[0], size[1])
		if len(layout.Windows) != 1 {
			t.Fatalf("expected one window, got %d", len(layout.Windows))
		}
		vp := layout.Viewport
		got := layout.Windows[0].Rect
		want := Rect{
			X:      region.X*vp.Scale + vp.OffsetX,
			Y:      region.Y*vp.Scale + vp.OffsetY,
			Width:  region.Width * vp.Scale,
			Height: region.Height * vp.Scale,
		}
		if !approx(got.X, want.X) || !approx(got.Y, want.Y) || !approx(got.Width, want.Width) || !approx(got.Height, want.Height) {
			t.Fatalf("size %v: got %+v want %+v", size, got, want)
		}
	}

	small := boundary.Resize(200, 300).Viewport.Scale
	large := boundary.Resize(500, 250).Viewport.Scale
	if approx(small, large) {
		t.Fatalf("resize should change scale")
	}
}

func TestUnprotectedPageHasNoWindows(t *testing.T) {
	t.Parallel()
	layout := ComputeLayout(false, []Box{{UnitID: "a", Rect: Rect{Width: 1, Height: 1}}}, Viewport{Scale: 1})
	if layout.Protected || len(layout.Windows) != 0 {
		t.Fatalf("unexpected layout: %+v", layout)
	}
}

func TestEmptyBoxesAreSkipped(t *testing.T) {
	t.Parallel()
	layout := ComputeLayout(true, []Box{{UnitID: "guidance_0"}, {UnitID: "r", Rect: Rect{Width: 2, Height: 2}}}, Viewport{Scale: 1})
	if len(layout.Windows) != 1 || layout.Windows[0].UnitID != "r" {
		t.Fatalf("unexpected windows: %+v", layout.Windows)
	}
}
