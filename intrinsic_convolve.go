package rs

import "fmt"

// ScriptIntrinsicConvolve3x3 applies a 3x3 convolution to a 2D allocation.
type ScriptIntrinsicConvolve3x3 struct {
	Script

	input  *Allocation
	coeffs [9]float32
}

// ScriptIntrinsicConvolve5x5 applies a 5x5 convolution to a 2D allocation.
type ScriptIntrinsicConvolve5x5 struct {
	Script

	input  *Allocation
	coeffs [25]float32
}

// checkPixelElement accepts u8 and f32 elements of 1 to 4 components.
func checkPixelElement(op string, e *Element) error {
	if e == nil || !(e.isU8() || e.isF32()) {
		return illegalArgument(op, errUnsupportedElement)
	}
	return nil
}

// NewConvolve3x3 creates a 3x3 convolution for element e. The initial
// coefficients are the identity kernel.
func NewConvolve3x3(ctx *Context, e *Element) (*ScriptIntrinsicConvolve3x3, error) {
	if err := checkPixelElement("NewConvolve3x3", e); err != nil {
		return nil, err
	}
	id, err := createIntrinsic(ctx, "NewConvolve3x3", IntrinsicConvolve3x3, e)
	if err != nil {
		return nil, err
	}
	s := &ScriptIntrinsicConvolve3x3{}
	s.coeffs[4] = 1
	if err := initObject(s, &s.BaseObj, ctx, id, KindConvolve3x3); err != nil {
		return nil, err
	}
	return s, nil
}

// SetInput sets the allocation to convolve.
func (s *ScriptIntrinsicConvolve3x3) SetInput(a *Allocation) error {
	if err := s.setVarObj("SetInput", SlotConvolveInput, a); err != nil {
		return err
	}
	s.input = a
	return nil
}

// SetCoefficients sets the kernel, row-major, centre at index 4.
func (s *ScriptIntrinsicConvolve3x3) SetCoefficients(v []float32) error {
	if len(v) != 9 {
		return illegalArgument("SetCoefficients", fmt.Sprintf("need 9 coefficients, got %d", len(v)))
	}
	if err := s.setVarPacked("SetCoefficients", SlotConvolveCoefficients, NewFieldPacker(9*4).AddF32s(v...)); err != nil {
		return err
	}
	copy(s.coeffs[:], v)
	return nil
}

// Coefficients returns the current kernel.
func (s *ScriptIntrinsicConvolve3x3) Coefficients() [9]float32 { return s.coeffs }

// ForEach convolves the input into aout.
func (s *ScriptIntrinsicConvolve3x3) ForEach(aout *Allocation) error {
	return s.ForEachWith(aout, nil)
}

// ForEachWith convolves the region selected by opts.
func (s *ScriptIntrinsicConvolve3x3) ForEachWith(aout *Allocation, opts *LaunchOptions) error {
	if aout == nil {
		return illegalArgument("ForEach", "output is nil")
	}
	return s.forEach("ForEach", KernelRoot, nil, aout, opts)
}

// NewConvolve5x5 creates a 5x5 convolution for element e. The initial
// coefficients are the identity kernel.
func NewConvolve5x5(ctx *Context, e *Element) (*ScriptIntrinsicConvolve5x5, error) {
	if err := checkPixelElement("NewConvolve5x5", e); err != nil {
		return nil, err
	}
	id, err := createIntrinsic(ctx, "NewConvolve5x5", IntrinsicConvolve5x5, e)
	if err != nil {
		return nil, err
	}
	s := &ScriptIntrinsicConvolve5x5{}
	s.coeffs[12] = 1
	if err := initObject(s, &s.BaseObj, ctx, id, KindConvolve5x5); err != nil {
		return nil, err
	}
	return s, nil
}

// SetInput sets the allocation to convolve.
func (s *ScriptIntrinsicConvolve5x5) SetInput(a *Allocation) error {
	if err := s.setVarObj("SetInput", SlotConvolveInput, a); err != nil {
		return err
	}
	s.input = a
	return nil
}

// SetCoefficients sets the kernel, row-major, centre at index 12.
func (s *ScriptIntrinsicConvolve5x5) SetCoefficients(v []float32) error {
	if len(v) != 25 {
		return illegalArgument("SetCoefficients", fmt.Sprintf("need 25 coefficients, got %d", len(v)))
	}
	if err := s.setVarPacked("SetCoefficients", SlotConvolveCoefficients, NewFieldPacker(25*4).AddF32s(v...)); err != nil {
		return err
	}
	copy(s.coeffs[:], v)
	return nil
}

// Coefficients returns the current kernel.
func (s *ScriptIntrinsicConvolve5x5) Coefficients() [25]float32 { return s.coeffs }

// ForEach convolves the input into aout.
func (s *ScriptIntrinsicConvolve5x5) ForEach(aout *Allocation) error {
	return s.ForEachWith(aout, nil)
}

// ForEachWith convolves the region selected by opts.
func (s *ScriptIntrinsicConvolve5x5) ForEachWith(aout *Allocation, opts *LaunchOptions) error {
	if aout == nil {
		return illegalArgument("ForEach", "output is nil")
	}
	return s.forEach("ForEach", KernelRoot, nil, aout, opts)
}
