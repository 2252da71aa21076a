package rs

import "fmt"

// Blur radius limits.
const (
	DefaultBlurRadius = 5
	MaxBlurRadius     = 25
)

// errUnsupportedElement is the detail reported for elements a kernel
// cannot process.
const errUnsupportedElement = "Unsupported element type."

// ScriptIntrinsicBlur is a gaussian blur over a 2D allocation of u8 or
// u8x4 cells.
type ScriptIntrinsicBlur struct {
	Script

	input  *Allocation
	radius float32
}

// NewBlur creates a blur kernel for element e, which must be compatible
// with U8 or U8_4. The radius starts at DefaultBlurRadius.
func NewBlur(ctx *Context, e *Element) (*ScriptIntrinsicBlur, error) {
	if err := ctx.validate("NewBlur"); err != nil {
		return nil, err
	}
	if e == nil {
		return nil, illegalArgument("NewBlur", errUnsupportedElement)
	}
	u8, err := U8(ctx)
	if err != nil {
		return nil, err
	}
	u8x4, err := U8_4(ctx)
	if err != nil {
		return nil, err
	}
	if !e.IsCompatible(u8) && !e.IsCompatible(u8x4) {
		return nil, illegalArgument("NewBlur", errUnsupportedElement)
	}

	id, err := createIntrinsic(ctx, "NewBlur", IntrinsicBlur, e)
	if err != nil {
		return nil, err
	}
	s := &ScriptIntrinsicBlur{radius: DefaultBlurRadius}
	if err := initObject(s, &s.BaseObj, ctx, id, KindBlur); err != nil {
		return nil, err
	}
	return s, nil
}

// SetInput sets the 2D allocation to blur.
func (s *ScriptIntrinsicBlur) SetInput(a *Allocation) error {
	if a == nil {
		return illegalArgument("SetInput", "input is nil")
	}
	if a.Type().Dims() < 2 {
		return illegalArgument("SetInput", "Input set to a 1D Allocation")
	}
	if err := s.setVarObj("SetInput", SlotBlurInput, a); err != nil {
		return err
	}
	s.input = a
	return nil
}

// Input returns the allocation set by SetInput.
func (s *ScriptIntrinsicBlur) Input() *Allocation { return s.input }

// SetRadius sets the blur radius in pixels, 0 < r <= 25.
func (s *ScriptIntrinsicBlur) SetRadius(r float32) error {
	if r <= 0 || r > MaxBlurRadius {
		return illegalArgument("SetRadius", "Radius out of range (0 < r <= 25).")
	}
	if err := s.setVarF("SetRadius", SlotBlurRadius, r); err != nil {
		return err
	}
	s.radius = r
	return nil
}

// Radius returns the current radius.
func (s *ScriptIntrinsicBlur) Radius() float32 { return s.radius }

// ForEach blurs the input into aout.
func (s *ScriptIntrinsicBlur) ForEach(aout *Allocation) error {
	return s.ForEachWith(aout, nil)
}

// ForEachWith blurs the part of the input selected by opts into aout.
func (s *ScriptIntrinsicBlur) ForEachWith(aout *Allocation, opts *LaunchOptions) error {
	if aout == nil {
		return illegalArgument("ForEach", "output is nil")
	}
	if aout.Type().Dims() < 2 {
		return illegalArgument("ForEach", "Output is a 1D Allocation")
	}
	return s.forEach("ForEach", KernelRoot, nil, aout, opts)
}

// String describes the kernel.
func (s *ScriptIntrinsicBlur) String() string {
	return fmt.Sprintf("blur(r=%g)", s.radius)
}
