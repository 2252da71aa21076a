package software

import (
	"fmt"
	"math"

	"github.com/gogpu/rs"
)

// gaussianKernel returns the normalized 1D kernel for a blur radius. The
// kernel spans ceil(radius) cells on each side with sigma = 0.4*radius+0.6.
func gaussianKernel(radius float32) []float32 {
	if radius <= 0 {
		return []float32{1}
	}
	sigma := 0.4*float64(radius) + 0.6
	half := int(math.Ceil(float64(radius)))
	kernel := make([]float32, 2*half+1)

	twoSigmaSq := 2 * sigma * sigma
	sum := 0.0
	for i := range kernel {
		x := float64(i - half)
		v := math.Exp(-(x * x) / twoSigmaSq)
		kernel[i] = float32(v)
		sum += v
	}
	inv := float32(1 / sum)
	for i := range kernel {
		kernel[i] *= inv
	}
	return kernel
}

// cachedKernel returns the kernel for radius, quantized to 0.01.
func (r *Runtime) cachedKernel(radius float32) []float32 {
	k, _ := r.kernels.GetOrCreate(int(radius*100), func() ([]float32, error) {
		return gaussianKernel(radius), nil
	})
	return k
}

// blur runs a separable gaussian: a horizontal pass over every row into a
// float buffer, then a vertical pass over the launch rows.
func (r *Runtime) blur(in *intrinsic, src, dst *allocation, region *rs.Region) error {
	if src.typ.y == 0 || dst.typ.y == 0 || src.typ.z > 0 || dst.typ.z > 0 {
		return fmt.Errorf("%w: blur needs 2D allocations", ErrShape)
	}
	if !src.elem().compatible(dst.elem()) || (in.elem != nil && !in.elem.compatible(src.elem())) {
		return fmt.Errorf("%w: blur of %s into %s", ErrUnsupported, src.elem(), dst.elem())
	}
	sp, err := decode(src)
	if err != nil {
		return err
	}
	dp, err := decode(dst)
	if err != nil {
		return err
	}
	if err := samePlaneShape(in.kind, sp, dp); err != nil {
		return err
	}
	b, err := resolve(region, dp)
	if err != nil {
		return err
	}

	kernel := r.cachedKernel(in.radius)
	half := len(kernel) / 2
	n := sp.n
	width := b.x1 - b.x0

	// Horizontal pass: every row, launch columns only.
	temp := make([]float32, sp.h*width*n)
	r.pool.Rows(0, sp.h, func(y0, y1 int) {
		for y := y0; y < y1; y++ {
			for x := b.x0; x < b.x1; x++ {
				t := (y*width + x - b.x0) * n
				for k, w := range kernel {
					s := sp.clamped(x+k-half, y)
					for c := range n {
						temp[t+c] += sp.v[s+c] * w
					}
				}
			}
		}
	})

	// Vertical pass: launch rows.
	r.pool.Rows(b.y0, b.y1, func(y0, y1 int) {
		for y := y0; y < y1; y++ {
			for x := b.x0; x < b.x1; x++ {
				d := dp.at(x, y, 0)
				for c := range n {
					dp.v[d+c] = 0
				}
				for k, w := range kernel {
					ky := clampInt(y+k-half, 0, sp.h-1)
					t := (ky*width + x - b.x0) * n
					for c := range n {
						dp.v[d+c] += temp[t+c] * w
					}
				}
			}
		}
	})
	dp.encode(dst)
	return nil
}
