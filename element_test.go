package rs

import (
	"errors"
	"testing"

	"github.com/gogpu/gputypes"
)

func TestNewElement_Validation(t *testing.T) {
	ctx, _ := newTestContext(t)
	tests := []struct {
		name    string
		dt      DataType
		dk      DataKind
		vecSize int
		detail  string
	}{
		{"no type", DataTypeNone, DataKindUser, 1, "unsupported data type none"},
		{"zero components", DataTypeFloat32, DataKindUser, 0, "vector size 0 out of range [1, 4]"},
		{"five components", DataTypeUnsigned8, DataKindUser, 5, "vector size 5 out of range [1, 4]"},
		{"rgba of three", DataTypeUnsigned8, DataKindPixelRGBA, 3, "RGBA pixel elements need 4 components"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewElement(ctx, tt.dt, tt.dk, false, tt.vecSize)
			wantDetail(t, err, KindIllegalArgument, tt.detail)
		})
	}
}

func TestNewElement_RuntimeFailure(t *testing.T) {
	ctx, f := newTestContext(t)
	f.failNext = errors.New("out of handles")
	if _, err := NewElement(ctx, DataTypeFloat32, DataKindUser, false, 2); !errors.Is(err, ErrRuntime) {
		t.Errorf("err = %v, want ErrRuntime", err)
	}
}

func TestElementHelpers(t *testing.T) {
	ctx, _ := newTestContext(t)
	tests := []struct {
		name       string
		fn         func(*Context) (*Element, error)
		dt         DataType
		vecSize    int
		bytes      int
		normalized bool
		str        string
		format     gputypes.TextureFormat
	}{
		{"U8", U8, DataTypeUnsigned8, 1, 1, false, "u8", gputypes.TextureFormatR8Unorm},
		{"U8_2", U8_2, DataTypeUnsigned8, 2, 2, false, "u8x2", gputypes.TextureFormatRG8Unorm},
		{"U8_3", U8_3, DataTypeUnsigned8, 3, 3, false, "u8x3", gputypes.TextureFormatUndefined},
		{"U8_4", U8_4, DataTypeUnsigned8, 4, 4, false, "u8x4", gputypes.TextureFormatRGBA8Unorm},
		{"F32", F32, DataTypeFloat32, 1, 4, false, "f32", gputypes.TextureFormatR32Float},
		{"F32_2", F32_2, DataTypeFloat32, 2, 8, false, "f32x2", gputypes.TextureFormatRG32Float},
		{"F32_3", F32_3, DataTypeFloat32, 3, 12, false, "f32x3", gputypes.TextureFormatUndefined},
		{"F32_4", F32_4, DataTypeFloat32, 4, 16, false, "f32x4", gputypes.TextureFormatRGBA32Float},
		{"RGBA8888", RGBA8888, DataTypeUnsigned8, 4, 4, true, "u8x4", gputypes.TextureFormatRGBA8Unorm},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e, err := tt.fn(ctx)
			if err != nil {
				t.Fatal(err)
			}
			if e.DataType() != tt.dt || e.VectorSize() != tt.vecSize || e.Bytes() != tt.bytes || e.Normalized() != tt.normalized {
				t.Errorf("got %s vec=%d bytes=%d normalized=%v", e.DataType(), e.VectorSize(), e.Bytes(), e.Normalized())
			}
			if e.String() != tt.str {
				t.Errorf("String = %q, want %q", e.String(), tt.str)
			}
			if e.TextureFormat() != tt.format {
				t.Errorf("TextureFormat = %v, want %v", e.TextureFormat(), tt.format)
			}
			if e.Kind() != KindElement {
				t.Errorf("Kind = %s", e.Kind())
			}
		})
	}
}

func TestElement_IsCompatible(t *testing.T) {
	ctx, _ := newTestContext(t)
	u8x4, _ := U8_4(ctx)
	rgba, _ := RGBA8888(ctx)
	f32, _ := F32(ctx)
	i32, _ := NewElement(ctx, DataTypeSigned32, DataKindUser, false, 1)
	own, _ := NewElement(ctx, DataTypeUnsigned8, DataKindPixelRGBA, false, 4)

	tests := []struct {
		name string
		a, b *Element
		want bool
	}{
		{"same object", u8x4, u8x4, true},
		{"kind ignored", u8x4, rgba, true},
		{"new element same shape", own, u8x4, true},
		{"same size other type", f32, i32, false},
		{"other vector size", u8x4, f32, false},
		{"nil", u8x4, nil, false},
	}
	for _, tt := range tests {
		if got := tt.a.IsCompatible(tt.b); got != tt.want {
			t.Errorf("%s: IsCompatible = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestDataType_Size(t *testing.T) {
	tests := []struct {
		dt   DataType
		size int
	}{
		{DataTypeNone, 0},
		{DataTypeSigned8, 1},
		{DataTypeUnsigned16, 2},
		{DataTypeFloat32, 4},
		{DataTypeUnsigned32, 4},
		{DataTypeFloat64, 8},
		{DataTypeSigned64, 8},
	}
	for _, tt := range tests {
		if got := tt.dt.Size(); got != tt.size {
			t.Errorf("%s.Size() = %d, want %d", tt.dt, got, tt.size)
		}
	}
}

func TestNewType(t *testing.T) {
	ctx, _ := newTestContext(t)
	e, _ := F32_2(ctx)
	tests := []struct {
		name    string
		x, y, z int
		dims    int
		count   int
	}{
		{"1D", 7, 0, 0, 1, 7},
		{"2D", 4, 3, 0, 2, 12},
		{"3D", 2, 3, 4, 3, 24},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			typ, err := NewType(ctx, e, tt.x, tt.y, tt.z)
			if err != nil {
				t.Fatal(err)
			}
			if typ.Dims() != tt.dims || typ.Count() != tt.count || typ.Bytes() != tt.count*8 {
				t.Errorf("dims=%d count=%d bytes=%d", typ.Dims(), typ.Count(), typ.Bytes())
			}
			if typ.X() != tt.x || typ.Y() != tt.y || typ.Z() != tt.z || typ.Element() != e {
				t.Error("accessors disagree with the constructor")
			}
		})
	}
}

func TestNewType_Validation(t *testing.T) {
	ctx, _ := newTestContext(t)
	e, _ := U8(ctx)
	tests := []struct {
		name    string
		e       *Element
		x, y, z int
		detail  string
	}{
		{"nil element", nil, 1, 0, 0, "element is nil"},
		{"zero x", e, 0, 0, 0, "X dimension 0 must be >= 1"},
		{"negative y", e, 1, -1, 0, "dimensions must be >= 0"},
		{"z without y", e, 1, 0, 2, "Y dimension required when Z is present"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewType(ctx, tt.e, tt.x, tt.y, tt.z)
			wantDetail(t, err, KindIllegalArgument, tt.detail)
		})
	}

	d, _ := NewElement(ctx, DataTypeUnsigned8, DataKindUser, false, 1)
	_ = d.Destroy()
	if _, err := NewType(ctx, d, 1, 0, 0); !errors.Is(err, ErrDestroyed) {
		t.Errorf("NewType with destroyed element = %v, want ErrDestroyed", err)
	}
}
