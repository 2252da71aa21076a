package rs

import (
	"encoding/binary"
	"fmt"
	"image"
	"math"

	"golang.org/x/image/draw"
)

// Allocation is typed storage owned by the native runtime.
type Allocation struct {
	BaseObj

	typ   *Type
	usage AllocationUsage
	// ownsType is set when the allocation created typ itself; Destroy
	// releases it too.
	ownsType bool
}

// NewAllocation creates storage for t.
func NewAllocation(ctx *Context, t *Type, usage AllocationUsage) (*Allocation, error) {
	if err := ctx.validate("NewAllocation"); err != nil {
		return nil, err
	}
	if t == nil {
		return nil, illegalArgument("NewAllocation", "type is nil")
	}
	if usage == 0 {
		usage = UsageScript
	}
	tid, err := t.ID(ctx)
	if err != nil {
		return nil, err
	}

	id, err := ctx.rt.AllocationCreate(ctx.con, tid, usage)
	if err != nil {
		return nil, runtimeError("NewAllocation", err)
	}
	a := &Allocation{typ: t, usage: usage}
	if err := initObject(a, &a.BaseObj, ctx, id, KindAllocation); err != nil {
		return nil, err
	}
	return a, nil
}

// newOwningAllocation creates a type for e and an allocation that owns it.
// The type is destroyed again when the allocation cannot be created.
func newOwningAllocation(ctx *Context, e *Element, x, y int, usage AllocationUsage) (*Allocation, error) {
	t, err := NewType(ctx, e, x, y, 0)
	if err != nil {
		return nil, err
	}
	a, err := NewAllocation(ctx, t, usage)
	if err != nil {
		_ = t.Destroy()
		return nil, err
	}
	a.ownsType = true
	return a, nil
}

// NewAllocationSized creates a 1D allocation of n cells of e. The
// allocation owns its type.
func NewAllocationSized(ctx *Context, e *Element, n int) (*Allocation, error) {
	return newOwningAllocation(ctx, e, n, 0, UsageScript)
}

// NewAllocation2D creates a w x h allocation of e. The allocation owns its
// type.
func NewAllocation2D(ctx *Context, e *Element, w, h int) (*Allocation, error) {
	return newOwningAllocation(ctx, e, w, h, UsageScript)
}

// NewAllocationFromImage creates an RGBA_8888 allocation holding img as
// non-premultiplied pixels.
func NewAllocationFromImage(ctx *Context, img image.Image) (*Allocation, error) {
	if img == nil {
		return nil, illegalArgument("NewAllocationFromImage", "image is nil")
	}
	b := img.Bounds()
	if b.Empty() {
		return nil, illegalArgument("NewAllocationFromImage", "image is empty")
	}
	e, err := RGBA8888(ctx)
	if err != nil {
		return nil, err
	}
	a, err := newOwningAllocation(ctx, e, b.Dx(), b.Dy(), UsageScript|UsageGraphicsTexture)
	if err != nil {
		return nil, err
	}
	if err := a.CopyFromImage(img); err != nil {
		_ = a.Destroy()
		return nil, err
	}
	return a, nil
}

// Destroy releases the allocation, then the type when the allocation
// created it. Only the call that destroys the allocation releases the type.
func (a *Allocation) Destroy() error {
	if err := a.BaseObj.Destroy(); err != nil {
		return err
	}
	if a.ownsType {
		return a.typ.Destroy()
	}
	return nil
}

// Type returns the allocation type.
func (a *Allocation) Type() *Type { return a.typ }

// Element returns the cell element.
func (a *Allocation) Element() *Element { return a.typ.elem }

// Usage returns the usage bitmask.
func (a *Allocation) Usage() AllocationUsage { return a.usage }

// Bytes returns the byte size of the allocation.
func (a *Allocation) Bytes() int { return a.typ.Bytes() }

// nativeID returns the id and context for a call into the runtime.
func (a *Allocation) nativeID(op string) (*Context, uint64, error) {
	id, err := a.ID(nil)
	if err != nil {
		return nil, 0, err
	}
	ctx := a.Context()
	if err := ctx.validate(op); err != nil {
		return nil, 0, err
	}
	return ctx, id, nil
}

// CopyFrom replaces the contents with data. len(data) must equal Bytes.
func (a *Allocation) CopyFrom(data []byte) error {
	if len(data) != a.Bytes() {
		return illegalArgument("CopyFrom", fmt.Sprintf("data size %d does not match allocation size %d", len(data), a.Bytes()))
	}
	ctx, id, err := a.nativeID("CopyFrom")
	if err != nil {
		return err
	}
	if err := ctx.rt.AllocationWrite(ctx.con, id, data); err != nil {
		return runtimeError("CopyFrom", err)
	}
	return nil
}

// CopyTo copies the contents into data. len(data) must equal Bytes.
func (a *Allocation) CopyTo(data []byte) error {
	if len(data) != a.Bytes() {
		return illegalArgument("CopyTo", fmt.Sprintf("data size %d does not match allocation size %d", len(data), a.Bytes()))
	}
	ctx, id, err := a.nativeID("CopyTo")
	if err != nil {
		return err
	}
	if err := ctx.rt.AllocationRead(ctx.con, id, data); err != nil {
		return runtimeError("CopyTo", err)
	}
	return nil
}

// CopyFromFloat32 replaces the contents of a float allocation.
func (a *Allocation) CopyFromFloat32(data []float32) error {
	if !a.Element().isF32() {
		return illegalArgument("CopyFromFloat32", fmt.Sprintf("allocation element %s is not f32", a.Element()))
	}
	buf := make([]byte, len(data)*4)
	for i, f := range data {
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(f))
	}
	return a.CopyFrom(buf)
}

// CopyToFloat32 copies the contents of a float allocation into data.
func (a *Allocation) CopyToFloat32(data []float32) error {
	if !a.Element().isF32() {
		return illegalArgument("CopyToFloat32", fmt.Sprintf("allocation element %s is not f32", a.Element()))
	}
	buf := make([]byte, len(data)*4)
	if err := a.CopyTo(buf); err != nil {
		return err
	}
	for i := range data {
		data[i] = math.Float32frombits(binary.LittleEndian.Uint32(buf[i*4:]))
	}
	return nil
}

// CopyFromImage replaces the contents of a 2D u8x4 allocation with img.
// The image must have the allocation's dimensions.
func (a *Allocation) CopyFromImage(img image.Image) error {
	if err := a.checkImageShape("CopyFromImage"); err != nil {
		return err
	}
	b := img.Bounds()
	if b.Dx() != a.typ.x || b.Dy() != a.typ.y {
		return illegalArgument("CopyFromImage", fmt.Sprintf("image %dx%d does not match allocation %dx%d", b.Dx(), b.Dy(), a.typ.x, a.typ.y))
	}
	dst, ok := img.(*image.NRGBA)
	if !ok || dst.Stride != 4*b.Dx() {
		dst = image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
		draw.Draw(dst, dst.Bounds(), img, b.Min, draw.Src)
	}
	return a.CopyFrom(dst.Pix[:a.Bytes()])
}

// ToImage returns the contents of a 2D u8x4 allocation as an image.
func (a *Allocation) ToImage() (*image.NRGBA, error) {
	if err := a.checkImageShape("ToImage"); err != nil {
		return nil, err
	}
	img := image.NewNRGBA(image.Rect(0, 0, a.typ.x, a.typ.y))
	if err := a.CopyTo(img.Pix); err != nil {
		return nil, err
	}
	return img, nil
}

func (a *Allocation) checkImageShape(op string) error {
	e := a.Element()
	if !e.isU8() || e.vecSize != 4 {
		return illegalArgument(op, fmt.Sprintf("allocation element %s is not u8x4", e))
	}
	if a.typ.Dims() != 2 {
		return illegalArgument(op, "allocation is not 2D")
	}
	return nil
}
