// Package vec provides small fixed-size numeric vectors.
//
// Vec2, Vec3 and Vec4 are arrays over any sized integer or float type, so
// they compare with == and copy by value. Arithmetic methods return new
// vectors; SetAt, AddAt and Set modify in place.
//
//	a := vec.Float4{1, 2, 3, 4}
//	b := a.MulScalar(2).Add(vec.Splat4[float32](1))
//	d := a.Dot(b)
//
// The named aliases (Float2, Int3, Long4, ...) cover every component type.
package vec
