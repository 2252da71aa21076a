package vec

// Integer is the set of sized integer component types.
type Integer interface {
	~int8 | ~int16 | ~int32 | ~int64 | ~uint8 | ~uint16 | ~uint32 | ~uint64
}

// Float is the set of float component types.
type Float interface {
	~float32 | ~float64
}

// Scalar is the set of component types a vector can hold.
type Scalar interface {
	Integer | Float
}

// Vec2 is a 2-component vector.
type Vec2[T Scalar] [2]T

// Vec3 is a 3-component vector.
type Vec3[T Scalar] [3]T

// Vec4 is a 4-component vector.
type Vec4[T Scalar] [4]T

// Splat2 returns a Vec2 with every component set to s.
func Splat2[T Scalar](s T) Vec2[T] { return Vec2[T]{s, s} }

// Splat3 returns a Vec3 with every component set to s.
func Splat3[T Scalar](s T) Vec3[T] { return Vec3[T]{s, s, s} }

// Splat4 returns a Vec4 with every component set to s.
func Splat4[T Scalar](s T) Vec4[T] { return Vec4[T]{s, s, s, s} }

// Add returns v + w.
func (v Vec2[T]) Add(w Vec2[T]) Vec2[T] { return Vec2[T]{v[0] + w[0], v[1] + w[1]} }

// AddScalar returns v with s added to every component.
func (v Vec2[T]) AddScalar(s T) Vec2[T] { return Vec2[T]{v[0] + s, v[1] + s} }

// Sub returns v - w.
func (v Vec2[T]) Sub(w Vec2[T]) Vec2[T] { return Vec2[T]{v[0] - w[0], v[1] - w[1]} }

// SubScalar returns v with s subtracted from every component.
func (v Vec2[T]) SubScalar(s T) Vec2[T] { return Vec2[T]{v[0] - s, v[1] - s} }

// Mul returns the component-wise product.
func (v Vec2[T]) Mul(w Vec2[T]) Vec2[T] { return Vec2[T]{v[0] * w[0], v[1] * w[1]} }

// MulScalar returns v scaled by s.
func (v Vec2[T]) MulScalar(s T) Vec2[T] { return Vec2[T]{v[0] * s, v[1] * s} }

// Div returns the component-wise quotient. Integer division by zero panics.
func (v Vec2[T]) Div(w Vec2[T]) Vec2[T] { return Vec2[T]{v[0] / w[0], v[1] / w[1]} }

// DivScalar returns v divided by s.
func (v Vec2[T]) DivScalar(s T) Vec2[T] { return Vec2[T]{v[0] / s, v[1] / s} }

// Neg returns -v. Unsigned components wrap.
func (v Vec2[T]) Neg() Vec2[T] { return Vec2[T]{-v[0], -v[1]} }

// Dot returns the dot product.
func (v Vec2[T]) Dot(w Vec2[T]) T { return v[0]*w[0] + v[1]*w[1] }

// AddMultiple returns v + a*factor.
func (v Vec2[T]) AddMultiple(a Vec2[T], factor T) Vec2[T] {
	return Vec2[T]{v[0] + a[0]*factor, v[1] + a[1]*factor}
}

// Len returns the number of components.
func (v Vec2[T]) Len() int { return 2 }

// Sum returns the sum of the components.
func (v Vec2[T]) Sum() T { return v[0] + v[1] }

// At returns component i. It panics if i is out of range.
func (v Vec2[T]) At(i int) T { return v[i] }

// SetAt sets component i. It panics if i is out of range.
func (v *Vec2[T]) SetAt(i int, s T) { v[i] = s }

// AddAt adds s to component i. It panics if i is out of range.
func (v *Vec2[T]) AddAt(i int, s T) { v[i] += s }

// Set copies w into v.
func (v *Vec2[T]) Set(w Vec2[T]) { *v = w }

// CopyTo writes the components to dst starting at off.
func (v Vec2[T]) CopyTo(dst []T, off int) { copy(dst[off:off+2], v[:]) }

// Add returns v + w.
func (v Vec3[T]) Add(w Vec3[T]) Vec3[T] { return Vec3[T]{v[0] + w[0], v[1] + w[1], v[2] + w[2]} }

// AddScalar returns v with s added to every component.
func (v Vec3[T]) AddScalar(s T) Vec3[T] { return Vec3[T]{v[0] + s, v[1] + s, v[2] + s} }

// Sub returns v - w.
func (v Vec3[T]) Sub(w Vec3[T]) Vec3[T] { return Vec3[T]{v[0] - w[0], v[1] - w[1], v[2] - w[2]} }

// SubScalar returns v with s subtracted from every component.
func (v Vec3[T]) SubScalar(s T) Vec3[T] { return Vec3[T]{v[0] - s, v[1] - s, v[2] - s} }

// Mul returns the component-wise product.
func (v Vec3[T]) Mul(w Vec3[T]) Vec3[T] { return Vec3[T]{v[0] * w[0], v[1] * w[1], v[2] * w[2]} }

// MulScalar returns v scaled by s.
func (v Vec3[T]) MulScalar(s T) Vec3[T] { return Vec3[T]{v[0] * s, v[1] * s, v[2] * s} }

// Div returns the component-wise quotient. Integer division by zero panics.
func (v Vec3[T]) Div(w Vec3[T]) Vec3[T] { return Vec3[T]{v[0] / w[0], v[1] / w[1], v[2] / w[2]} }

// DivScalar returns v divided by s.
func (v Vec3[T]) DivScalar(s T) Vec3[T] { return Vec3[T]{v[0] / s, v[1] / s, v[2] / s} }

// Neg returns -v. Unsigned components wrap.
func (v Vec3[T]) Neg() Vec3[T] { return Vec3[T]{-v[0], -v[1], -v[2]} }

// Dot returns the dot product.
func (v Vec3[T]) Dot(w Vec3[T]) T { return v[0]*w[0] + v[1]*w[1] + v[2]*w[2] }

// AddMultiple returns v + a*factor.
func (v Vec3[T]) AddMultiple(a Vec3[T], factor T) Vec3[T] {
	return Vec3[T]{v[0] + a[0]*factor, v[1] + a[1]*factor, v[2] + a[2]*factor}
}

// Len returns the number of components.
func (v Vec3[T]) Len() int { return 3 }

// Sum returns the sum of the components.
func (v Vec3[T]) Sum() T { return v[0] + v[1] + v[2] }

// At returns component i. It panics if i is out of range.
func (v Vec3[T]) At(i int) T { return v[i] }

// SetAt sets component i. It panics if i is out of range.
func (v *Vec3[T]) SetAt(i int, s T) { v[i] = s }

// AddAt adds s to component i. It panics if i is out of range.
func (v *Vec3[T]) AddAt(i int, s T) { v[i] += s }

// Set copies w into v.
func (v *Vec3[T]) Set(w Vec3[T]) { *v = w }

// CopyTo writes the components to dst starting at off.
func (v Vec3[T]) CopyTo(dst []T, off int) { copy(dst[off:off+3], v[:]) }

// Add returns v + w.
func (v Vec4[T]) Add(w Vec4[T]) Vec4[T] {
	return Vec4[T]{v[0] + w[0], v[1] + w[1], v[2] + w[2], v[3] + w[3]}
}

// AddScalar returns v with s added to every component.
func (v Vec4[T]) AddScalar(s T) Vec4[T] { return Vec4[T]{v[0] + s, v[1] + s, v[2] + s, v[3] + s} }

// Sub returns v - w.
func (v Vec4[T]) Sub(w Vec4[T]) Vec4[T] {
	return Vec4[T]{v[0] - w[0], v[1] - w[1], v[2] - w[2], v[3] - w[3]}
}

// SubScalar returns v with s subtracted from every component.
func (v Vec4[T]) SubScalar(s T) Vec4[T] { return Vec4[T]{v[0] - s, v[1] - s, v[2] - s, v[3] - s} }

// Mul returns the component-wise product.
func (v Vec4[T]) Mul(w Vec4[T]) Vec4[T] {
	return Vec4[T]{v[0] * w[0], v[1] * w[1], v[2] * w[2], v[3] * w[3]}
}

// MulScalar returns v scaled by s.
func (v Vec4[T]) MulScalar(s T) Vec4[T] { return Vec4[T]{v[0] * s, v[1] * s, v[2] * s, v[3] * s} }

// Div returns the component-wise quotient. Integer division by zero panics.
func (v Vec4[T]) Div(w Vec4[T]) Vec4[T] {
	return Vec4[T]{v[0] / w[0], v[1] / w[1], v[2] / w[2], v[3] / w[3]}
}

// DivScalar returns v divided by s.
func (v Vec4[T]) DivScalar(s T) Vec4[T] { return Vec4[T]{v[0] / s, v[1] / s, v[2] / s, v[3] / s} }

// Neg returns -v. Unsigned components wrap.
func (v Vec4[T]) Neg() Vec4[T] { return Vec4[T]{-v[0], -v[1], -v[2], -v[3]} }

// Dot returns the dot product.
func (v Vec4[T]) Dot(w Vec4[T]) T { return v[0]*w[0] + v[1]*w[1] + v[2]*w[2] + v[3]*w[3] }

// AddMultiple returns v + a*factor.
func (v Vec4[T]) AddMultiple(a Vec4[T], factor T) Vec4[T] {
	return Vec4[T]{v[0] + a[0]*factor, v[1] + a[1]*factor, v[2] + a[2]*factor, v[3] + a[3]*factor}
}

// Len returns the number of components.
func (v Vec4[T]) Len() int { return 4 }

// Sum returns the sum of the components.
func (v Vec4[T]) Sum() T { return v[0] + v[1] + v[2] + v[3] }

// At returns component i. It panics if i is out of range.
func (v Vec4[T]) At(i int) T { return v[i] }

// SetAt sets component i. It panics if i is out of range.
func (v *Vec4[T]) SetAt(i int, s T) { v[i] = s }

// AddAt adds s to component i. It panics if i is out of range.
func (v *Vec4[T]) AddAt(i int, s T) { v[i] += s }

// Set copies w into v.
func (v *Vec4[T]) Set(w Vec4[T]) { *v = w }

// CopyTo writes the components to dst starting at off.
func (v Vec4[T]) CopyTo(dst []T, off int) { copy(dst[off:off+4], v[:]) }

// Mod2 returns the component-wise remainder a % b.
func Mod2[T Integer](a, b Vec2[T]) Vec2[T] { return Vec2[T]{a[0] % b[0], a[1] % b[1]} }

// Mod3 returns the component-wise remainder a % b.
func Mod3[T Integer](a, b Vec3[T]) Vec3[T] {
	return Vec3[T]{a[0] % b[0], a[1] % b[1], a[2] % b[2]}
}

// Mod4 returns the component-wise remainder a % b.
func Mod4[T Integer](a, b Vec4[T]) Vec4[T] {
	return Vec4[T]{a[0] % b[0], a[1] % b[1], a[2] % b[2], a[3] % b[3]}
}
