package software

import (
	"encoding/binary"
	"fmt"
	"math"

	"github.com/gogpu/rs"
)

// plane is an allocation decoded to float components. u8 components keep
// their 0..255 value; f32 components are copied as is.
type plane struct {
	w, h, d int
	n       int // components per cell
	u8      bool
	v       []float32
}

func decode(a *allocation) (*plane, error) {
	e := a.elem()
	if e.dt != rs.DataTypeUnsigned8 && e.dt != rs.DataTypeFloat32 {
		return nil, fmt.Errorf("%w: %s", ErrUnsupported, e)
	}
	t := a.typ
	p := &plane{
		w: t.x, h: max(t.y, 1), d: max(t.z, 1),
		n:  e.vecSize,
		u8: e.dt == rs.DataTypeUnsigned8,
	}
	p.v = make([]float32, t.count()*p.n)
	if p.u8 {
		for i, b := range a.data {
			p.v[i] = float32(b)
		}
		return p, nil
	}
	for i := range p.v {
		p.v[i] = math.Float32frombits(binary.LittleEndian.Uint32(a.data[i*4:]))
	}
	return p, nil
}

// encode writes p back into a. u8 components are rounded and clamped.
func (p *plane) encode(a *allocation) {
	if p.u8 {
		for i, f := range p.v {
			a.data[i] = clampUint8(f)
		}
		return
	}
	for i, f := range p.v {
		binary.LittleEndian.PutUint32(a.data[i*4:], math.Float32bits(f))
	}
}

// at returns the index of the first component of cell (x, y, z).
func (p *plane) at(x, y, z int) int {
	return ((z*p.h+y)*p.w + x) * p.n
}

// clamped returns the index of cell (x, y) with edge extension, z = 0.
func (p *plane) clamped(x, y int) int {
	return p.at(clampInt(x, 0, p.w-1), clampInt(y, 0, p.h-1), 0)
}

// scale returns the factor mapping stored values to [0, 1].
func (p *plane) scale() float32 {
	if p.u8 {
		return 1.0 / 255
	}
	return 1
}

// box is a launch region resolved against an allocation.
type box struct {
	x0, x1, y0, y1, z0, z1 int
}

func (b box) full(p *plane) bool {
	return b.x0 == 0 && b.y0 == 0 && b.z0 == 0 && b.x1 == p.w && b.y1 == p.h && b.z1 == p.d
}

// resolve clips region to p. A nil region covers p.
func resolve(region *rs.Region, p *plane) (box, error) {
	b := box{0, p.w, 0, p.h, 0, p.d}
	if region == nil {
		return b, nil
	}
	dims := []struct {
		start, end int
		lo, hi     *int
		size       int
	}{
		{region.XStart, region.XEnd, &b.x0, &b.x1, p.w},
		{region.YStart, region.YEnd, &b.y0, &b.y1, p.h},
		{region.ZStart, region.ZEnd, &b.z0, &b.z1, p.d},
	}
	for _, d := range dims {
		end := d.end
		if end == 0 {
			end = d.size
		}
		if d.start < 0 || end > d.size || d.start >= end {
			return box{}, fmt.Errorf("software: launch range [%d, %d) outside dimension %d", d.start, end, d.size)
		}
		*d.lo, *d.hi = d.start, end
	}
	return b, nil
}

// clampInt clamps v to [lo, hi].
func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// clampUint8 clamps a float32 to [0, 255] and rounds to nearest.
func clampUint8(v float32) uint8 {
	if v <= 0 || math.IsNaN(float64(v)) {
		return 0
	}
	if v >= 255 {
		return 255
	}
	return uint8(v + 0.5)
}
