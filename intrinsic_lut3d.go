package rs

// ScriptIntrinsic3DLUT maps RGB through a 3D lookup table with trilinear
// interpolation. Alpha passes through.
type ScriptIntrinsic3DLUT struct {
	Script

	elem *Element
	lut  *Allocation
}

// New3DLUT creates a lookup kernel for element e, which must be compatible
// with U8_4.
func New3DLUT(ctx *Context, e *Element) (*ScriptIntrinsic3DLUT, error) {
	if err := ctx.validate("New3DLUT"); err != nil {
		return nil, err
	}
	u8x4, err := U8_4(ctx)
	if err != nil {
		return nil, err
	}
	if e == nil || !e.IsCompatible(u8x4) {
		return nil, illegalArgument("New3DLUT", "Element must be compatible with uchar4.")
	}
	id, err := createIntrinsic(ctx, "New3DLUT", Intrinsic3DLUT, e)
	if err != nil {
		return nil, err
	}
	s := &ScriptIntrinsic3DLUT{elem: e}
	if err := initObject(s, &s.BaseObj, ctx, id, Kind3DLUT); err != nil {
		return nil, err
	}
	return s, nil
}

// SetLUT sets the table: a 3D allocation indexed by (r, g, b) whose element
// matches the kernel's.
func (s *ScriptIntrinsic3DLUT) SetLUT(lut *Allocation) error {
	if lut == nil {
		return illegalArgument("SetLUT", "LUT is nil")
	}
	if lut.Type().Dims() != 3 {
		return illegalArgument("SetLUT", "LUT must be 3d.")
	}
	if !lut.Element().IsCompatible(s.elem) {
		return illegalArgument("SetLUT", "LUT element type must match.")
	}
	if err := s.setVarObj("SetLUT", SlotLUT, lut); err != nil {
		return err
	}
	s.lut = lut
	return nil
}

// LUT returns the table set by SetLUT.
func (s *ScriptIntrinsic3DLUT) LUT() *Allocation { return s.lut }

// ForEach maps ain into aout.
func (s *ScriptIntrinsic3DLUT) ForEach(ain, aout *Allocation) error {
	return s.ForEachWith(ain, aout, nil)
}

// ForEachWith maps the region selected by opts.
func (s *ScriptIntrinsic3DLUT) ForEachWith(ain, aout *Allocation, opts *LaunchOptions) error {
	if ain == nil || aout == nil {
		return illegalArgument("ForEach", "input and output are required")
	}
	return s.forEach("ForEach", KernelRoot, ain, aout, opts)
}
