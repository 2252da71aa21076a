package rs_test

import (
	"image"
	"image/color"
	"testing"

	"github.com/gogpu/rs"
	"github.com/gogpu/rs/backend/software"
)

func newSoftwareContext(t testing.TB, opts ...rs.Option) (*rs.Context, *software.Runtime) {
	t.Helper()
	rt := software.New()
	ctx, err := rs.NewContext(rt, opts...)
	if err != nil {
		t.Fatalf("NewContext: %v", err)
	}
	t.Cleanup(func() {
		_ = ctx.Destroy()
		rt.Close()
	})
	return ctx, rt
}

// square returns a black w x h image with a white square in the middle.
func square(w, h, side int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := range h {
		for x := range w {
			c := color.NRGBA{A: 255}
			if abs(x-w/2) < side/2 && abs(y-h/2) < side/2 {
				c = color.NRGBA{R: 255, G: 255, B: 255, A: 255}
			}
			img.SetNRGBA(x, y, c)
		}
	}
	return img
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
