package software

import (
	"fmt"
	"image"
	"math"

	"github.com/gogpu/rs"
	"github.com/gogpu/rs/internal/parallel"
	"golang.org/x/image/draw"
)

// resize scales src into dst with Catmull-Rom bicubic filtering. u8x4 and
// u8 cells go through x/image; other layouts use the float path.
func (r *Runtime) resize(src, dst *allocation, region *rs.Region) error {
	if src.typ.y == 0 || dst.typ.y == 0 || src.typ.z > 0 || dst.typ.z > 0 {
		return fmt.Errorf("%w: resize needs 2D allocations", ErrShape)
	}
	if !src.elem().compatible(dst.elem()) {
		return fmt.Errorf("%w: resize of %s into %s", ErrUnsupported, src.elem(), dst.elem())
	}
	dp, err := decode(dst)
	if err != nil {
		return err
	}
	b, err := resolve(region, dp)
	if err != nil {
		return err
	}

	e := src.elem()
	if e.dt == rs.DataTypeUnsigned8 && (e.vecSize == 4 || e.vecSize == 1) {
		resizeImage(src, dst, b)
		return nil
	}

	sp, err := decode(src)
	if err != nil {
		return err
	}
	resizeBicubic(r.pool, sp, dp, b)
	dp.encode(dst)
	return nil
}

// resizeImage scales u8 cells with draw.CatmullRom and copies the launch
// rows into dst.
func resizeImage(src, dst *allocation, b box) {
	sw, sh := src.typ.x, src.typ.y
	dw, dh := dst.typ.x, dst.typ.y
	n := src.elem().vecSize

	var in, out draw.Image
	var pix []byte
	if n == 4 {
		in = &image.NRGBA{Pix: src.data, Stride: 4 * sw, Rect: image.Rect(0, 0, sw, sh)}
		o := image.NewNRGBA(image.Rect(0, 0, dw, dh))
		out, pix = o, o.Pix
	} else {
		in = &image.Gray{Pix: src.data, Stride: sw, Rect: image.Rect(0, 0, sw, sh)}
		o := image.NewGray(image.Rect(0, 0, dw, dh))
		out, pix = o, o.Pix
	}
	draw.CatmullRom.Scale(out, out.Bounds(), in, in.Bounds(), draw.Src, nil)

	for y := b.y0; y < b.y1; y++ {
		row := (y*dw + b.x0) * n
		end := (y*dw + b.x1) * n
		copy(dst.data[row:end], pix[row:end])
	}
}

// resizeBicubic samples sp at the centre of every launch cell of dp.
func resizeBicubic(pool *parallel.WorkerPool, sp, dp *plane, b box) {
	scaleX := float64(sp.w) / float64(dp.w)
	scaleY := float64(sp.h) / float64(dp.h)
	n := sp.n

	pool.Rows(b.y0, b.y1, func(y0, y1 int) {
		for y := y0; y < y1; y++ {
			fy := (float64(y)+0.5)*scaleY - 0.5
			iy := int(math.Floor(fy))
			wy := cubicWeights(fy - float64(iy))
			for x := b.x0; x < b.x1; x++ {
				fx := (float64(x)+0.5)*scaleX - 0.5
				ix := int(math.Floor(fx))
				wx := cubicWeights(fx - float64(ix))

				d := dp.at(x, y, 0)
				for c := range n {
					var acc float64
					for j := range 4 {
						for i := range 4 {
							s := sp.clamped(ix+i-1, iy+j-1)
							acc += float64(sp.v[s+c]) * wx[i] * wy[j]
						}
					}
					dp.v[d+c] = float32(acc)
				}
			}
		}
	})
}

// cubicWeights returns the Catmull-Rom weights (a = -0.5) of the four
// samples around a point t in [0, 1) past the second one.
func cubicWeights(t float64) [4]float64 {
	t2 := t * t
	t3 := t2 * t
	return [4]float64{
		-0.5*t3 + t2 - 0.5*t,
		1.5*t3 - 2.5*t2 + 1,
		-1.5*t3 + 2*t2 + 0.5*t,
		0.5*t3 - 0.5*t2,
	}
}
