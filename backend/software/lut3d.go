package software

import (
	"fmt"

	"github.com/gogpu/rs"
)

// lookup3D maps the RGB of each u8x4 cell through a 3D table with
// trilinear interpolation. Alpha is copied from the input.
func (r *Runtime) lookup3D(lut, src, dst *allocation, region *rs.Region) error {
	for _, a := range []*allocation{lut, src, dst} {
		if e := a.elem(); e.dt != rs.DataTypeUnsigned8 || e.vecSize != 4 {
			return fmt.Errorf("%w: 3D LUT needs u8x4, got %s", ErrUnsupported, e)
		}
	}
	if lut.typ.z == 0 {
		return fmt.Errorf("%w: LUT is not 3D", ErrShape)
	}
	sp, err := decode(src)
	if err != nil {
		return err
	}
	dp, err := decode(dst)
	if err != nil {
		return err
	}
	if err := samePlaneShape(rs.Intrinsic3DLUT, sp, dp); err != nil {
		return err
	}
	b, err := resolve(region, dp)
	if err != nil {
		return err
	}
	tp, err := decode(lut)
	if err != nil {
		return err
	}

	dims := [3]int{tp.w, tp.h, tp.d}
	for z := b.z0; z < b.z1; z++ {
		r.pool.Rows(b.y0, b.y1, func(y0, y1 int) {
			for y := y0; y < y1; y++ {
				for x := b.x0; x < b.x1; x++ {
					s := sp.at(x, y, z)
					var base [3]int
					var frac [3]float32
					for c := range 3 {
						pos := sp.v[s+c] / 255 * float32(dims[c]-1)
						i := int(pos)
						if i >= dims[c]-1 {
							i = max(dims[c]-2, 0)
						}
						base[c] = i
						frac[c] = pos - float32(i)
					}

					d := dp.at(x, y, z)
					for c := range 3 {
						var acc float32
						for corner := range 8 {
							w := float32(1)
							var idx [3]int
							for axis := range 3 {
								if corner&(1<<axis) != 0 {
									idx[axis] = min(base[axis]+1, dims[axis]-1)
									w *= frac[axis]
								} else {
									idx[axis] = base[axis]
									w *= 1 - frac[axis]
								}
							}
							if w == 0 {
								continue
							}
							acc += tp.v[tp.at(idx[0], idx[1], idx[2])+c] * w
						}
						dp.v[d+c] = acc
					}
					dp.v[d+3] = sp.v[s+3]
				}
			}
		})
	}
	dp.encode(dst)
	return nil
}
