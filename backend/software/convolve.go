package software

import (
	"fmt"

	"github.com/gogpu/rs"
)

// convolve applies the 3x3 or 5x5 kernel in in.coeffs with edge extension.
// Coefficients are row-major with the centre in the middle.
func (r *Runtime) convolve(in *intrinsic, src, dst *allocation, region *rs.Region) error {
	if !src.elem().compatible(dst.elem()) {
		return fmt.Errorf("%w: convolve of %s into %s", ErrUnsupported, src.elem(), dst.elem())
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

	size := 3
	if in.kind == rs.IntrinsicConvolve5x5 {
		size = 5
	}
	half := size / 2
	n := sp.n

	r.pool.Rows(b.y0, b.y1, func(y0, y1 int) {
		for y := y0; y < y1; y++ {
			for x := b.x0; x < b.x1; x++ {
				d := dp.at(x, y, 0)
				for c := range n {
					dp.v[d+c] = 0
				}
				for ky := range size {
					for kx := range size {
						w := in.coeffs[ky*size+kx]
						if w == 0 {
							continue
						}
						s := sp.clamped(x+kx-half, y+ky-half)
						for c := range n {
							dp.v[d+c] += sp.v[s+c] * w
						}
					}
				}
			}
		}
	})
	dp.encode(dst)
	return nil
}
