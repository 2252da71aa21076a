package rs

import "github.com/gogpu/rs/vec"

// ScriptIntrinsicColorMatrix multiplies every cell by a 4x4 matrix and adds
// a constant vector: out = M * in + add. u8 components are normalized to
// [0, 1] before the multiply and clamped back after.
type ScriptIntrinsicColorMatrix struct {
	Script

	matrix Matrix4f
	add    vec.Float4
}

// NewColorMatrix creates a color matrix kernel. The matrix starts as
// identity and the add vector as zero.
func NewColorMatrix(ctx *Context) (*ScriptIntrinsicColorMatrix, error) {
	id, err := createIntrinsic(ctx, "NewColorMatrix", IntrinsicColorMatrix, nil)
	if err != nil {
		return nil, err
	}
	s := &ScriptIntrinsicColorMatrix{matrix: Identity4f()}
	if err := initObject(s, &s.BaseObj, ctx, id, KindColorMatrix); err != nil {
		return nil, err
	}
	return s, nil
}

// setMatrix sends m to the runtime and keeps it on success.
func (s *ScriptIntrinsicColorMatrix) setMatrix(op string, m Matrix4f) error {
	if err := s.setVarPacked(op, SlotColorMatrix, NewFieldPacker(16*4).AddMatrix4f(&m)); err != nil {
		return err
	}
	s.matrix = m
	return nil
}

// SetColorMatrix sets a full 4x4 matrix.
func (s *ScriptIntrinsicColorMatrix) SetColorMatrix(m Matrix4f) error {
	return s.setMatrix("SetColorMatrix", m)
}

// SetColorMatrix3 sets the RGB part of the matrix; alpha passes through.
func (s *ScriptIntrinsicColorMatrix) SetColorMatrix3(m Matrix3f) error {
	return s.setMatrix("SetColorMatrix3", m.To4f())
}

// Matrix returns the current matrix.
func (s *ScriptIntrinsicColorMatrix) Matrix() Matrix4f { return s.matrix }

// SetAdd sets the vector added after the multiply. For u8 cells the values
// are in normalized units.
func (s *ScriptIntrinsicColorMatrix) SetAdd(v vec.Float4) error {
	if err := s.setVarPacked("SetAdd", SlotColorMatrixAdd, NewFieldPacker(4*4).AddF32s(v[:]...)); err != nil {
		return err
	}
	s.add = v
	return nil
}

// Add returns the current add vector.
func (s *ScriptIntrinsicColorMatrix) Add() vec.Float4 { return s.add }

// SetGreyscale sets a matrix writing luminance to RGB.
func (s *ScriptIntrinsicColorMatrix) SetGreyscale() error {
	m := Identity4f()
	for row := range 3 {
		m.Set(0, row, 0.299)
		m.Set(1, row, 0.587)
		m.Set(2, row, 0.114)
	}
	return s.setMatrix("SetGreyscale", m)
}

// SetRGBtoYUV sets a matrix converting RGB to YUV.
func (s *ScriptIntrinsicColorMatrix) SetRGBtoYUV() error {
	m := Identity4f()
	setRows(&m, [3][3]float32{
		{0.299, 0.587, 0.114},
		{-0.14713, -0.28886, 0.436},
		{0.615, -0.51499, -0.10001},
	})
	return s.setMatrix("SetRGBtoYUV", m)
}

// SetYUVtoRGB sets a matrix converting YUV to RGB.
func (s *ScriptIntrinsicColorMatrix) SetYUVtoRGB() error {
	m := Identity4f()
	setRows(&m, [3][3]float32{
		{1, 0, 1.13983},
		{1, -0.39465, -0.58060},
		{1, 2.03211, 0},
	})
	return s.setMatrix("SetYUVtoRGB", m)
}

func setRows(m *Matrix4f, rows [3][3]float32) {
	for row, r := range rows {
		for col, v := range r {
			m.Set(col, row, v)
		}
	}
}

// ForEach transforms ain into aout. Both must have u8 or f32 elements;
// they may differ in vector size.
func (s *ScriptIntrinsicColorMatrix) ForEach(ain, aout *Allocation) error {
	return s.ForEachWith(ain, aout, nil)
}

// ForEachWith transforms the region selected by opts.
func (s *ScriptIntrinsicColorMatrix) ForEachWith(ain, aout *Allocation, opts *LaunchOptions) error {
	if ain == nil || aout == nil {
		return illegalArgument("ForEach", "input and output are required")
	}
	if err := checkPixelElement("ForEach", ain.Element()); err != nil {
		return err
	}
	if err := checkPixelElement("ForEach", aout.Element()); err != nil {
		return err
	}
	return s.forEach("ForEach", KernelRoot, ain, aout, opts)
}
