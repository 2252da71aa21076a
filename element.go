package rs

import (
	"fmt"

	"github.com/gogpu/gputypes"
)

// DataType is the scalar type of one element component.
type DataType uint8

const (
	DataTypeNone DataType = iota
	DataTypeFloat32
	DataTypeFloat64
	DataTypeSigned8
	DataTypeSigned16
	DataTypeSigned32
	DataTypeSigned64
	DataTypeUnsigned8
	DataTypeUnsigned16
	DataTypeUnsigned32
	DataTypeUnsigned64
)

// Size returns the byte size of one component.
func (t DataType) Size() int {
	switch t {
	case DataTypeSigned8, DataTypeUnsigned8:
		return 1
	case DataTypeSigned16, DataTypeUnsigned16:
		return 2
	case DataTypeFloat32, DataTypeSigned32, DataTypeUnsigned32:
		return 4
	case DataTypeFloat64, DataTypeSigned64, DataTypeUnsigned64:
		return 8
	default:
		return 0
	}
}

// String returns the type name.
func (t DataType) String() string {
	switch t {
	case DataTypeFloat32:
		return "f32"
	case DataTypeFloat64:
		return "f64"
	case DataTypeSigned8:
		return "i8"
	case DataTypeSigned16:
		return "i16"
	case DataTypeSigned32:
		return "i32"
	case DataTypeSigned64:
		return "i64"
	case DataTypeUnsigned8:
		return "u8"
	case DataTypeUnsigned16:
		return "u16"
	case DataTypeUnsigned32:
		return "u32"
	case DataTypeUnsigned64:
		return "u64"
	default:
		return "none"
	}
}

// DataKind is the semantic interpretation of an element.
type DataKind uint8

const (
	DataKindUser DataKind = iota
	DataKindPixelL
	DataKindPixelA
	DataKindPixelLA
	DataKindPixelRGB
	DataKindPixelRGBA
)

// elementKey identifies a cached element in a context.
type elementKey struct {
	dt         DataType
	dk         DataKind
	normalized bool
	vecSize    int
}

// Element describes one cell of an allocation: a scalar type repeated
// 1 to 4 times.
type Element struct {
	BaseObj

	dataType   DataType
	dataKind   DataKind
	normalized bool
	vecSize    int
}

// NewElement creates an element of vecSize components of type dt.
func NewElement(ctx *Context, dt DataType, dk DataKind, normalized bool, vecSize int) (*Element, error) {
	if err := ctx.validate("NewElement"); err != nil {
		return nil, err
	}
	if dt.Size() == 0 {
		return nil, illegalArgument("NewElement", fmt.Sprintf("unsupported data type %s", dt))
	}
	if vecSize < 1 || vecSize > 4 {
		return nil, illegalArgument("NewElement", fmt.Sprintf("vector size %d out of range [1, 4]", vecSize))
	}
	if dk == DataKindPixelRGBA && vecSize != 4 {
		return nil, illegalArgument("NewElement", "RGBA pixel elements need 4 components")
	}

	id, err := ctx.rt.ElementCreate(ctx.con, dt, dk, normalized, vecSize)
	if err != nil {
		return nil, runtimeError("NewElement", err)
	}
	e := &Element{dataType: dt, dataKind: dk, normalized: normalized, vecSize: vecSize}
	if err := initObject(e, &e.BaseObj, ctx, id, KindElement); err != nil {
		return nil, err
	}
	return e, nil
}

// cachedElement returns the context-wide element for key, creating it once.
func (c *Context) cachedElement(key elementKey) (*Element, error) {
	c.elemMu.Lock()
	defer c.elemMu.Unlock()

	if c.elemCache == nil {
		return nil, newError("element", ErrNoContext)
	}
	if e, ok := c.elemCache[key]; ok {
		return e, nil
	}
	e, err := NewElement(c, key.dt, key.dk, key.normalized, key.vecSize)
	if err != nil {
		return nil, err
	}
	c.elemCache[key] = e
	return e, nil
}

// U8 returns the context's single unsigned byte element.
func U8(ctx *Context) (*Element, error) {
	return ctx.cachedElement(elementKey{dt: DataTypeUnsigned8, vecSize: 1})
}

// U8_2 returns the context's 2-component unsigned byte element.
func U8_2(ctx *Context) (*Element, error) {
	return ctx.cachedElement(elementKey{dt: DataTypeUnsigned8, vecSize: 2})
}

// U8_3 returns the context's 3-component unsigned byte element.
func U8_3(ctx *Context) (*Element, error) {
	return ctx.cachedElement(elementKey{dt: DataTypeUnsigned8, vecSize: 3})
}

// U8_4 returns the context's 4-component unsigned byte element.
func U8_4(ctx *Context) (*Element, error) {
	return ctx.cachedElement(elementKey{dt: DataTypeUnsigned8, vecSize: 4})
}

// F32 returns the context's single float element.
func F32(ctx *Context) (*Element, error) {
	return ctx.cachedElement(elementKey{dt: DataTypeFloat32, vecSize: 1})
}

// F32_2 returns the context's 2-component float element.
func F32_2(ctx *Context) (*Element, error) {
	return ctx.cachedElement(elementKey{dt: DataTypeFloat32, vecSize: 2})
}

// F32_3 returns the context's 3-component float element.
func F32_3(ctx *Context) (*Element, error) {
	return ctx.cachedElement(elementKey{dt: DataTypeFloat32, vecSize: 3})
}

// F32_4 returns the context's 4-component float element.
func F32_4(ctx *Context) (*Element, error) {
	return ctx.cachedElement(elementKey{dt: DataTypeFloat32, vecSize: 4})
}

// RGBA8888 returns the context's normalized RGBA pixel element.
func RGBA8888(ctx *Context) (*Element, error) {
	return ctx.cachedElement(elementKey{dt: DataTypeUnsigned8, dk: DataKindPixelRGBA, normalized: true, vecSize: 4})
}

// DataType returns the component type.
func (e *Element) DataType() DataType { return e.dataType }

// DataKind returns the semantic kind.
func (e *Element) DataKind() DataKind { return e.dataKind }

// VectorSize returns the number of components.
func (e *Element) VectorSize() int { return e.vecSize }

// Normalized reports whether integer components map to [0, 1].
func (e *Element) Normalized() bool { return e.normalized }

// Bytes returns the byte size of one element.
func (e *Element) Bytes() int { return e.dataType.Size() * e.vecSize }

// IsCompatible reports whether allocations of e and other can be used
// interchangeably: same object, or same data type, vector size and size.
// The data kind is ignored.
func (e *Element) IsCompatible(other *Element) bool {
	if other == nil {
		return false
	}
	if e == other || e.Equal(other) {
		return true
	}
	return e.dataType != DataTypeNone &&
		e.dataType == other.dataType &&
		e.vecSize == other.vecSize &&
		e.Bytes() == other.Bytes()
}

// isU8 reports whether e is an unsigned byte element with 1 to 4 components.
func (e *Element) isU8() bool {
	return e.dataType == DataTypeUnsigned8
}

// isF32 reports whether e is a float element with 1 to 4 components.
func (e *Element) isF32() bool {
	return e.dataType == DataTypeFloat32
}

// TextureFormat returns the GPU texture format holding one element, or
// TextureFormatUndefined when there is no direct match.
func (e *Element) TextureFormat() gputypes.TextureFormat {
	switch {
	case e.dataType == DataTypeUnsigned8 && e.vecSize == 1:
		return gputypes.TextureFormatR8Unorm
	case e.dataType == DataTypeUnsigned8 && e.vecSize == 2:
		return gputypes.TextureFormatRG8Unorm
	case e.dataType == DataTypeUnsigned8 && e.vecSize == 4:
		return gputypes.TextureFormatRGBA8Unorm
	case e.dataType == DataTypeFloat32 && e.vecSize == 1:
		return gputypes.TextureFormatR32Float
	case e.dataType == DataTypeFloat32 && e.vecSize == 2:
		return gputypes.TextureFormatRG32Float
	case e.dataType == DataTypeFloat32 && e.vecSize == 4:
		return gputypes.TextureFormatRGBA32Float
	default:
		return gputypes.TextureFormatUndefined
	}
}

// String describes the element, e.g. "u8x4".
func (e *Element) String() string {
	if e.vecSize == 1 {
		return e.dataType.String()
	}
	return fmt.Sprintf("%sx%d", e.dataType, e.vecSize)
}
