package rs

import "github.com/gogpu/rs/vec"

// Matrix4f is a 4x4 float matrix stored in column-major order:
//
//	| m[0] m[4] m[8]  m[12] |
//	| m[1] m[5] m[9]  m[13] |
//	| m[2] m[6] m[10] m[14] |
//	| m[3] m[7] m[11] m[15] |
//
// The zero value is the zero matrix; use Identity4f for identity.
type Matrix4f [16]float32

// Identity4f returns the 4x4 identity matrix.
func Identity4f() Matrix4f {
	var m Matrix4f
	m.LoadIdentity()
	return m
}

// Get returns the element at column col and row row.
func (m *Matrix4f) Get(col, row int) float32 {
	return m[col*4+row]
}

// Set stores v at column col and row row.
func (m *Matrix4f) Set(col, row int, v float32) {
	m[col*4+row] = v
}

// LoadIdentity resets m to identity.
func (m *Matrix4f) LoadIdentity() {
	*m = Matrix4f{}
	m[0], m[5], m[10], m[15] = 1, 1, 1, 1
}

// Multiply sets m to m * rhs.
func (m *Matrix4f) Multiply(rhs *Matrix4f) {
	var r Matrix4f
	for col := range 4 {
		for row := range 4 {
			var sum float32
			for k := range 4 {
				sum += m.Get(k, row) * rhs.Get(col, k)
			}
			r.Set(col, row, sum)
		}
	}
	*m = r
}

// Transpose transposes m in place.
func (m *Matrix4f) Transpose() {
	for i := range 3 {
		for j := i + 1; j < 4; j++ {
			m[i*4+j], m[j*4+i] = m[j*4+i], m[i*4+j]
		}
	}
}

// Transform returns m * v.
func (m *Matrix4f) Transform(v vec.Float4) vec.Float4 {
	var out vec.Float4
	for row := range 4 {
		for k := range 4 {
			out[row] += m.Get(k, row) * v[k]
		}
	}
	return out
}

// IsIdentity reports whether m is the identity matrix.
func (m *Matrix4f) IsIdentity() bool {
	return *m == Identity4f()
}

// Matrix3f is a 3x3 float matrix stored in column-major order.
type Matrix3f [9]float32

// Identity3f returns the 3x3 identity matrix.
func Identity3f() Matrix3f {
	var m Matrix3f
	m.LoadIdentity()
	return m
}

// Get returns the element at column col and row row.
func (m *Matrix3f) Get(col, row int) float32 {
	return m[col*3+row]
}

// Set stores v at column col and row row.
func (m *Matrix3f) Set(col, row int, v float32) {
	m[col*3+row] = v
}

// LoadIdentity resets m to identity.
func (m *Matrix3f) LoadIdentity() {
	*m = Matrix3f{}
	m[0], m[4], m[8] = 1, 1, 1
}

// Multiply sets m to m * rhs.
func (m *Matrix3f) Multiply(rhs *Matrix3f) {
	var r Matrix3f
	for col := range 3 {
		for row := range 3 {
			var sum float32
			for k := range 3 {
				sum += m.Get(k, row) * rhs.Get(col, k)
			}
			r.Set(col, row, sum)
		}
	}
	*m = r
}

// Transpose transposes m in place.
func (m *Matrix3f) Transpose() {
	m[1], m[3] = m[3], m[1]
	m[2], m[6] = m[6], m[2]
	m[5], m[7] = m[7], m[5]
}

// To4f embeds m in the upper-left corner of a 4x4 identity matrix.
func (m *Matrix3f) To4f() Matrix4f {
	r := Identity4f()
	for col := range 3 {
		for row := range 3 {
			r.Set(col, row, m.Get(col, row))
		}
	}
	return r
}
