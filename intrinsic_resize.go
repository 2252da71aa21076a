package rs

// ScriptIntrinsicResize scales a 2D allocation into an output of any size
// using bicubic interpolation.
type ScriptIntrinsicResize struct {
	Script

	input *Allocation
}

// NewResize creates a resize kernel.
func NewResize(ctx *Context) (*ScriptIntrinsicResize, error) {
	id, err := createIntrinsic(ctx, "NewResize", IntrinsicResize, nil)
	if err != nil {
		return nil, err
	}
	s := &ScriptIntrinsicResize{}
	if err := initObject(s, &s.BaseObj, ctx, id, KindResize); err != nil {
		return nil, err
	}
	return s, nil
}

// SetInput sets the allocation to scale. Its element must be u8 or f32.
func (s *ScriptIntrinsicResize) SetInput(a *Allocation) error {
	if a == nil {
		return illegalArgument("SetInput", "input is nil")
	}
	if err := checkPixelElement("SetInput", a.Element()); err != nil {
		return err
	}
	if err := s.setVarObj("SetInput", SlotResizeInput, a); err != nil {
		return err
	}
	s.input = a
	return nil
}

// ForEachBicubic scales the input into aout, which must not be the input.
func (s *ScriptIntrinsicResize) ForEachBicubic(aout *Allocation) error {
	return s.ForEachBicubicWith(aout, nil)
}

// ForEachBicubicWith scales into the region of aout selected by opts.
func (s *ScriptIntrinsicResize) ForEachBicubicWith(aout *Allocation, opts *LaunchOptions) error {
	if aout == nil {
		return illegalArgument("ForEachBicubic", "output is nil")
	}
	if aout == s.input {
		return illegalArgument("ForEachBicubic", "Output cannot be same as Input.")
	}
	return s.forEach("ForEachBicubic", KernelRoot, nil, aout, opts)
}
