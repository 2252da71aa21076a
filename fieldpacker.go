package rs

import (
	"encoding/binary"
	"math"
)

// FieldPacker packs script globals in the runtime's little-endian layout.
type FieldPacker struct {
	buf []byte
}

// NewFieldPacker returns a packer with room for size bytes.
func NewFieldPacker(size int) *FieldPacker {
	return &FieldPacker{buf: make([]byte, 0, size)}
}

// AddF32 appends a float32.
func (p *FieldPacker) AddF32(v float32) *FieldPacker {
	p.buf = binary.LittleEndian.AppendUint32(p.buf, math.Float32bits(v))
	return p
}

// AddF32s appends each value in vs.
func (p *FieldPacker) AddF32s(vs ...float32) *FieldPacker {
	for _, v := range vs {
		p.AddF32(v)
	}
	return p
}

// AddI32 appends an int32.
func (p *FieldPacker) AddI32(v int32) *FieldPacker {
	p.buf = binary.LittleEndian.AppendUint32(p.buf, uint32(v))
	return p
}

// AddU32 appends a uint32.
func (p *FieldPacker) AddU32(v uint32) *FieldPacker {
	p.buf = binary.LittleEndian.AppendUint32(p.buf, v)
	return p
}

// AddU8 appends a byte.
func (p *FieldPacker) AddU8(v uint8) *FieldPacker {
	p.buf = append(p.buf, v)
	return p
}

// AddMatrix4f appends the 16 floats of m in column-major order.
func (p *FieldPacker) AddMatrix4f(m *Matrix4f) *FieldPacker {
	return p.AddF32s(m[:]...)
}

// AddMatrix3f appends the 9 floats of m in column-major order.
func (p *FieldPacker) AddMatrix3f(m *Matrix3f) *FieldPacker {
	return p.AddF32s(m[:]...)
}

// Len returns the number of packed bytes.
func (p *FieldPacker) Len() int { return len(p.buf) }

// Bytes returns the packed data.
func (p *FieldPacker) Bytes() []byte { return p.buf }

// UnpackF32s decodes little-endian float32 values packed by a FieldPacker.
func UnpackF32s(data []byte) []float32 {
	out := make([]float32, len(data)/4)
	for i := range out {
		out[i] = math.Float32frombits(binary.LittleEndian.Uint32(data[i*4:]))
	}
	return out
}
