package rs

import "fmt"

// Type describes the shape of an allocation: an element repeated over up
// to three dimensions.
type Type struct {
	BaseObj

	elem    *Element
	x, y, z int
}

// NewType creates a type of x*y*z cells of e. x must be at least 1; y and z
// may be 0 for lower-dimensional types, and z > 0 requires y > 0.
func NewType(ctx *Context, e *Element, x, y, z int) (*Type, error) {
	if err := ctx.validate("NewType"); err != nil {
		return nil, err
	}
	if e == nil {
		return nil, illegalArgument("NewType", "element is nil")
	}
	if x < 1 {
		return nil, illegalArgument("NewType", fmt.Sprintf("X dimension %d must be >= 1", x))
	}
	if y < 0 || z < 0 {
		return nil, illegalArgument("NewType", "dimensions must be >= 0")
	}
	if z > 0 && y < 1 {
		return nil, illegalArgument("NewType", "Y dimension required when Z is present")
	}
	eid, err := e.ID(ctx)
	if err != nil {
		return nil, err
	}

	id, err := ctx.rt.TypeCreate(ctx.con, eid, x, y, z)
	if err != nil {
		return nil, runtimeError("NewType", err)
	}
	t := &Type{elem: e, x: x, y: y, z: z}
	if err := initObject(t, &t.BaseObj, ctx, id, KindType); err != nil {
		return nil, err
	}
	return t, nil
}

// Element returns the cell element.
func (t *Type) Element() *Element { return t.elem }

// X returns the X dimension.
func (t *Type) X() int { return t.x }

// Y returns the Y dimension, 0 for 1D types.
func (t *Type) Y() int { return t.y }

// Z returns the Z dimension, 0 for 1D and 2D types.
func (t *Type) Z() int { return t.z }

// Dims returns the number of dimensions, 1 to 3.
func (t *Type) Dims() int {
	switch {
	case t.z > 0:
		return 3
	case t.y > 0:
		return 2
	default:
		return 1
	}
}

// Count returns the number of cells.
func (t *Type) Count() int {
	return t.x * max(t.y, 1) * max(t.z, 1)
}

// Bytes returns the byte size of an allocation of this type.
func (t *Type) Bytes() int {
	return t.Count() * t.elem.Bytes()
}
