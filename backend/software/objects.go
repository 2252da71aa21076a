package software

import (
	"fmt"

	"github.com/gogpu/rs"
)

// element mirrors rs.Element on the runtime side.
type element struct {
	dt         rs.DataType
	dk         rs.DataKind
	normalized bool
	vecSize    int
}

func (e *element) bytes() int { return e.dt.Size() * e.vecSize }

// compatible reports whether cells of e and o share a layout.
func (e *element) compatible(o *element) bool {
	return e.dt == o.dt && e.vecSize == o.vecSize
}

func (e *element) String() string {
	return fmt.Sprintf("%sx%d", e.dt, e.vecSize)
}

// typ is an allocation shape.
type typ struct {
	elem    *element
	x, y, z int
}

func (t *typ) count() int { return t.x * max(t.y, 1) * max(t.z, 1) }

// allocation owns the cell bytes.
type allocation struct {
	typ   *typ
	usage rs.AllocationUsage
	data  []byte
}

func (a *allocation) elem() *element { return a.typ.elem }

// intrinsic holds the globals of a built-in kernel.
type intrinsic struct {
	kind rs.IntrinsicKind
	elem *element // nil for kernels without a creation element

	radius float32
	coeffs []float32
	matrix [16]float32
	add    [4]float32

	// input is the allocation bound to the input (or LUT) global, 0 when unset.
	input uint64
}

func newIntrinsic(kind rs.IntrinsicKind, e *element) *intrinsic {
	in := &intrinsic{kind: kind, elem: e, radius: rs.DefaultBlurRadius}
	switch kind {
	case rs.IntrinsicConvolve3x3:
		in.coeffs = make([]float32, 9)
		in.coeffs[4] = 1
	case rs.IntrinsicConvolve5x5:
		in.coeffs = make([]float32, 25)
		in.coeffs[12] = 1
	}
	for i := range 4 {
		in.matrix[i*4+i] = 1
	}
	return in
}

// fontObj is a parsed font.
type fontObj struct {
	family   string
	fullName string
	sizePx   float32
	data     []byte
}

// object is one entry of the object table.
type object struct {
	con  uint64
	name string
	val  any // *element, *typ, *allocation, *intrinsic or *fontObj
}

func kindName(v any) string {
	switch v.(type) {
	case *element:
		return "element"
	case *typ:
		return "type"
	case *allocation:
		return "allocation"
	case *intrinsic:
		return "script"
	case *fontObj:
		return "font"
	default:
		return "unknown"
	}
}
