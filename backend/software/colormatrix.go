package software

import (
	"github.com/gogpu/rs"
)

// colorMatrix computes out = M * in + add per cell. Missing input
// components read as 0; u8 components are normalized to [0, 1] on input
// and scaled back on output.
func (r *Runtime) colorMatrix(in *intrinsic, src, dst *allocation, region *rs.Region) error {
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

	inScale := sp.scale()
	outScale := 1 / dp.scale()
	m := &in.matrix

	for z := b.z0; z < b.z1; z++ {
		r.pool.Rows(b.y0, b.y1, func(y0, y1 int) {
			for y := y0; y < y1; y++ {
				for x := b.x0; x < b.x1; x++ {
					var v [4]float32
					s := sp.at(x, y, z)
					for c := range sp.n {
						v[c] = sp.v[s+c] * inScale
					}
					d := dp.at(x, y, z)
					for row := range dp.n {
						sum := in.add[row]
						for k := range 4 {
							sum += m[k*4+row] * v[k]
						}
						dp.v[d+row] = sum * outScale
					}
				}
			}
		})
	}
	dp.encode(dst)
	return nil
}
