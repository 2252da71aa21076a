package rs

import (
	"errors"
	"math"
	"testing"

	"github.com/gogpu/rs/vec"
)

// fixtures creates the allocations shared by the intrinsic tests.
type fixtures struct {
	ctx    *Context
	f      *fakeRuntime
	u8x4   *Element
	plane  *Allocation // 4x4 u8x4
	out    *Allocation // 4x4 u8x4
	line   *Allocation // 16 u8x4
	volume *Allocation // 4x4x4 u8x4
}

func newFixtures(t *testing.T) fixtures {
	t.Helper()
	ctx, f := newTestContext(t)
	u8x4, err := U8_4(ctx)
	if err != nil {
		t.Fatal(err)
	}
	alloc := func(x, y, z int) *Allocation {
		typ, err := NewType(ctx, u8x4, x, y, z)
		if err != nil {
			t.Fatal(err)
		}
		a, err := NewAllocation(ctx, typ, 0)
		if err != nil {
			t.Fatal(err)
		}
		return a
	}
	return fixtures{
		ctx:    ctx,
		f:      f,
		u8x4:   u8x4,
		plane:  alloc(4, 4, 0),
		out:    alloc(4, 4, 0),
		line:   alloc(16, 0, 0),
		volume: alloc(4, 4, 4),
	}
}

func (x fixtures) lastLaunch(t *testing.T) fakeLaunch {
	t.Helper()
	if len(x.f.launches) == 0 {
		t.Fatal("no launch recorded")
	}
	return x.f.launches[len(x.f.launches)-1]
}

func TestBlur(t *testing.T) {
	x := newFixtures(t)
	b, err := NewBlur(x.ctx, x.u8x4)
	if err != nil {
		t.Fatal(err)
	}
	sid := mustID(t, b)
	if b.Radius() != DefaultBlurRadius || b.String() != "blur(r=5)" {
		t.Errorf("new blur = %s", b)
	}

	for _, r := range []float32{0, -1, 25.5, 100} {
		wantDetail(t, b.SetRadius(r), KindIllegalArgument, "Radius out of range (0 < r <= 25).")
	}
	if b.Radius() != DefaultBlurRadius {
		t.Errorf("rejected radius changed the state: %g", b.Radius())
	}
	if err := b.SetRadius(MaxBlurRadius); err != nil {
		t.Fatal(err)
	}
	if got := x.f.varFloats(sid, SlotBlurRadius); len(got) != 1 || got[0] != 25 {
		t.Errorf("native radius = %v, want [25]", got)
	}

	wantDetail(t, b.SetInput(nil), KindIllegalArgument, "input is nil")
	wantDetail(t, b.SetInput(x.line), KindIllegalArgument, "Input set to a 1D Allocation")
	if err := b.SetInput(x.plane); err != nil {
		t.Fatal(err)
	}
	if b.Input() != x.plane || x.f.objVars[fakeSlot{sid, SlotBlurInput}] != mustID(t, x.plane) {
		t.Error("input not bound")
	}

	wantDetail(t, b.ForEach(x.line), KindIllegalArgument, "Output is a 1D Allocation")
	wantDetail(t, b.ForEach(nil), KindIllegalArgument, "output is nil")
	if err := b.ForEach(x.out); err != nil {
		t.Fatal(err)
	}
	l := x.lastLaunch(t)
	if l.sid != sid || l.slot != KernelRoot || l.ain != 0 || l.aout != mustID(t, x.out) || l.region != nil {
		t.Errorf("launch = %+v", l)
	}
}

func TestNewBlur_Elements(t *testing.T) {
	ctx, _ := newTestContext(t)
	u8, _ := U8(ctx)
	rgba, _ := RGBA8888(ctx)
	f32, _ := F32(ctx)
	u8x2, _ := U8_2(ctx)
	tests := []struct {
		name string
		e    *Element
		ok   bool
	}{
		{"u8", u8, true},
		{"rgba", rgba, true},
		{"f32", f32, false},
		{"u8x2", u8x2, false},
		{"nil", nil, false},
	}
	for _, tt := range tests {
		_, err := NewBlur(ctx, tt.e)
		if tt.ok {
			if err != nil {
				t.Errorf("%s: %v", tt.name, err)
			}
			continue
		}
		wantDetail(t, err, KindIllegalArgument, "Unsupported element type.")
	}
}

func TestScript_Destroyed(t *testing.T) {
	x := newFixtures(t)
	b, _ := NewBlur(x.ctx, x.u8x4)
	_ = b.Destroy()
	if err := b.SetRadius(3); !errors.Is(err, ErrDestroyed) {
		t.Errorf("SetRadius = %v, want ErrDestroyed", err)
	}
	if err := b.ForEach(x.out); !errors.Is(err, ErrDestroyed) {
		t.Errorf("ForEach = %v, want ErrDestroyed", err)
	}
}

func TestScript_ForeignObjects(t *testing.T) {
	x := newFixtures(t)
	other := newFixtures(t)
	b, _ := NewBlur(x.ctx, x.u8x4)

	if err := b.SetInput(other.plane); !errors.Is(err, ErrContextMismatch) {
		t.Errorf("SetInput(foreign) = %v, want ErrContextMismatch", err)
	}
	if err := b.ForEach(other.out); !errors.Is(err, ErrContextMismatch) {
		t.Errorf("ForEach(foreign) = %v, want ErrContextMismatch", err)
	}
	_ = x.out.Destroy()
	if err := b.ForEach(x.out); !errors.Is(err, ErrDestroyed) {
		t.Errorf("ForEach(destroyed) = %v, want ErrDestroyed", err)
	}
	if _, err := NewBlur(x.ctx, other.u8x4); !errors.Is(err, ErrContextMismatch) {
		t.Errorf("NewBlur(foreign element) = %v, want ErrContextMismatch", err)
	}
}

func TestScript_ForEachNeedsAllocation(t *testing.T) {
	x := newFixtures(t)
	c, _ := NewColorMatrix(x.ctx)
	err := c.forEach("ForEach", KernelRoot, nil, nil, nil)
	wantDetail(t, err, KindIllegalArgument, "at least one of input or output is required")
}

func TestScript_UnbindWithNil(t *testing.T) {
	x := newFixtures(t)
	c, _ := NewConvolve3x3(x.ctx, x.u8x4)
	sid := mustID(t, c)
	if err := c.SetInput(x.plane); err != nil {
		t.Fatal(err)
	}
	var none *Allocation
	if err := c.SetInput(none); err != nil {
		t.Fatal(err)
	}
	if got := x.f.objVars[fakeSlot{sid, SlotConvolveInput}]; got != 0 {
		t.Errorf("bound id = %d after unbinding, want 0", got)
	}
}

func TestConvolve(t *testing.T) {
	x := newFixtures(t)
	c3, err := NewConvolve3x3(x.ctx, x.u8x4)
	if err != nil {
		t.Fatal(err)
	}
	c5, err := NewConvolve5x5(x.ctx, x.u8x4)
	if err != nil {
		t.Fatal(err)
	}
	if k := c3.Coefficients(); k != [9]float32{4: 1} {
		t.Errorf("3x3 default = %v, want identity", k)
	}
	if k := c5.Coefficients(); k != [25]float32{12: 1} {
		t.Errorf("5x5 default = %v, want identity", k)
	}

	wantDetail(t, c3.SetCoefficients(make([]float32, 8)), KindIllegalArgument, "need 9 coefficients, got 8")
	wantDetail(t, c5.SetCoefficients(make([]float32, 9)), KindIllegalArgument, "need 25 coefficients, got 9")

	box := []float32{1, 1, 1, 1, 1, 1, 1, 1, 1}
	for i := range box {
		box[i] /= 9
	}
	if err := c3.SetCoefficients(box); err != nil {
		t.Fatal(err)
	}
	if got := x.f.varFloats(mustID(t, c3), SlotConvolveCoefficients); len(got) != 9 || got[0] != box[0] {
		t.Errorf("native coefficients = %v", got)
	}

	var opts LaunchOptions
	if err := opts.SetY(1, 3); err != nil {
		t.Fatal(err)
	}
	if err := c3.ForEachWith(x.out, &opts); err != nil {
		t.Fatal(err)
	}
	if r := x.lastLaunch(t).region; r == nil || r.YStart != 1 || r.YEnd != 3 || r.XEnd != 0 {
		t.Errorf("region = %+v", r)
	}
	wantDetail(t, c5.ForEach(nil), KindIllegalArgument, "output is nil")
}

func TestNewConvolve_Elements(t *testing.T) {
	ctx, _ := newTestContext(t)
	f64, _ := NewElement(ctx, DataTypeFloat64, DataKindUser, false, 1)
	i16, _ := NewElement(ctx, DataTypeSigned16, DataKindUser, false, 2)
	f32x2, _ := F32_2(ctx)
	for _, e := range []*Element{f64, i16, nil} {
		_, err := NewConvolve3x3(ctx, e)
		wantDetail(t, err, KindIllegalArgument, "Unsupported element type.")
		_, err = NewConvolve5x5(ctx, e)
		wantDetail(t, err, KindIllegalArgument, "Unsupported element type.")
	}
	if _, err := NewConvolve3x3(ctx, f32x2); err != nil {
		t.Errorf("f32x2: %v", err)
	}
}

func approx(a, b float32) bool {
	return math.Abs(float64(a-b)) < 1e-4
}

func TestColorMatrix(t *testing.T) {
	x := newFixtures(t)
	c, err := NewColorMatrix(x.ctx)
	if err != nil {
		t.Fatal(err)
	}
	sid := mustID(t, c)
	if m := c.Matrix(); !m.IsIdentity() {
		t.Errorf("default matrix = %v, want identity", m)
	}

	white := vec.Float4{1, 1, 1, 1}
	tests := []struct {
		name string
		set  func() error
		in   vec.Float4
		want vec.Float4
	}{
		{"greyscale white", c.SetGreyscale, white, white},
		{"greyscale red", c.SetGreyscale, vec.Float4{1, 0, 0, 1}, vec.Float4{0.299, 0.299, 0.299, 1}},
		{"rgb to yuv white", c.SetRGBtoYUV, white, vec.Float4{1, 0, 0, 1}},
		{"yuv to rgb", c.SetYUVtoRGB, vec.Float4{0.5, 0, 0, 1}, vec.Float4{0.5, 0.5, 0.5, 1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.set(); err != nil {
				t.Fatal(err)
			}
			m := c.Matrix()
			got := m.Transform(tt.in)
			for i := range got {
				if !approx(got[i], tt.want[i]) {
					t.Fatalf("M*%v = %v, want %v", tt.in, got, tt.want)
				}
			}
			native := x.f.varFloats(sid, SlotColorMatrix)
			if len(native) != 16 {
				t.Fatalf("native matrix has %d floats", len(native))
			}
			for i := range native {
				if native[i] != m[i] {
					t.Fatalf("native matrix %v differs from %v", native, m)
				}
			}
		})
	}

	if err := c.SetAdd(vec.Float4{0.1, 0.2, 0.3, 0}); err != nil {
		t.Fatal(err)
	}
	if got := x.f.varFloats(sid, SlotColorMatrixAdd); len(got) != 4 || got[2] != 0.3 {
		t.Errorf("native add = %v", got)
	}
	if c.Add()[1] != 0.2 {
		t.Errorf("Add = %v", c.Add())
	}

	m3 := Identity3f()
	m3.Set(0, 1, 0.5)
	if err := c.SetColorMatrix3(m3); err != nil {
		t.Fatal(err)
	}
	if m := c.Matrix(); m.Get(0, 1) != 0.5 || m.Get(3, 3) != 1 {
		t.Errorf("SetColorMatrix3 gave %v", m)
	}
}

func TestColorMatrix_FailedSetKeepsState(t *testing.T) {
	x := newFixtures(t)
	c, _ := NewColorMatrix(x.ctx)
	_ = x.ctx.Destroy()
	if err := c.SetGreyscale(); !errors.Is(err, ErrNoContext) {
		t.Fatalf("SetGreyscale = %v, want ErrNoContext", err)
	}
	if m := c.Matrix(); !m.IsIdentity() {
		t.Errorf("matrix changed by a failed set: %v", m)
	}
}

func TestColorMatrix_ForEach(t *testing.T) {
	x := newFixtures(t)
	c, _ := NewColorMatrix(x.ctx)
	wantDetail(t, c.ForEach(x.plane, nil), KindIllegalArgument, "input and output are required")

	i32, _ := NewElement(x.ctx, DataTypeSigned32, DataKindUser, false, 1)
	bad, _ := NewAllocation2D(x.ctx, i32, 4, 4)
	wantDetail(t, c.ForEach(bad, x.out), KindIllegalArgument, "Unsupported element type.")

	f32, _ := F32_4(x.ctx)
	fout, _ := NewAllocation2D(x.ctx, f32, 4, 4)
	if err := c.ForEach(x.plane, fout); err != nil {
		t.Fatalf("u8x4 to f32x4: %v", err)
	}
	if l := x.lastLaunch(t); l.ain != mustID(t, x.plane) || l.aout != mustID(t, fout) {
		t.Errorf("launch = %+v", l)
	}
}

func Test3DLUT(t *testing.T) {
	x := newFixtures(t)
	u8, _ := U8(x.ctx)
	if _, err := New3DLUT(x.ctx, u8); err == nil {
		t.Fatal("New3DLUT(u8) succeeded")
	} else {
		wantDetail(t, err, KindIllegalArgument, "Element must be compatible with uchar4.")
	}

	lut, err := New3DLUT(x.ctx, x.u8x4)
	if err != nil {
		t.Fatal(err)
	}
	wantDetail(t, lut.SetLUT(nil), KindIllegalArgument, "LUT is nil")
	wantDetail(t, lut.SetLUT(x.plane), KindIllegalArgument, "LUT must be 3d.")

	f32x4, _ := F32_4(x.ctx)
	ft, _ := NewType(x.ctx, f32x4, 2, 2, 2)
	fv, _ := NewAllocation(x.ctx, ft, 0)
	wantDetail(t, lut.SetLUT(fv), KindIllegalArgument, "LUT element type must match.")

	if err := lut.SetLUT(x.volume); err != nil {
		t.Fatal(err)
	}
	if lut.LUT() != x.volume {
		t.Error("LUT not kept")
	}
	wantDetail(t, lut.ForEach(nil, x.out), KindIllegalArgument, "input and output are required")
	if err := lut.ForEach(x.plane, x.out); err != nil {
		t.Fatal(err)
	}
}

func TestResize(t *testing.T) {
	x := newFixtures(t)
	r, err := NewResize(x.ctx)
	if err != nil {
		t.Fatal(err)
	}
	wantDetail(t, r.SetInput(nil), KindIllegalArgument, "input is nil")

	i8, _ := NewElement(x.ctx, DataTypeSigned8, DataKindUser, false, 4)
	bad, _ := NewAllocation2D(x.ctx, i8, 2, 2)
	wantDetail(t, r.SetInput(bad), KindIllegalArgument, "Unsupported element type.")

	if err := r.SetInput(x.plane); err != nil {
		t.Fatal(err)
	}
	wantDetail(t, r.ForEachBicubic(x.plane), KindIllegalArgument, "Output cannot be same as Input.")
	wantDetail(t, r.ForEachBicubic(nil), KindIllegalArgument, "output is nil")
	if err := r.ForEachBicubic(x.out); err != nil {
		t.Fatal(err)
	}
	if got := x.f.created[len(x.f.created)-1]; got != IntrinsicResize {
		t.Errorf("created kind = %s, want resize", got)
	}
}

func TestIntrinsicKind_String(t *testing.T) {
	tests := []struct {
		kind IntrinsicKind
		want string
	}{
		{IntrinsicBlur, "blur"},
		{IntrinsicConvolve3x3, "convolve3x3"},
		{IntrinsicConvolve5x5, "convolve5x5"},
		{IntrinsicColorMatrix, "colormatrix"},
		{Intrinsic3DLUT, "3dlut"},
		{IntrinsicResize, "resize"},
	}
	for _, tt := range tests {
		if got := tt.kind.String(); got != tt.want {
			t.Errorf("String() = %q, want %q", got, tt.want)
		}
	}
}
