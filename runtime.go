package rs

// Runtime is the native compute runtime this package binds to.
//
// Every object handed out by a Runtime is identified by an opaque uint64 id;
// 0 is never a valid id. Ids are meaningful only together with the context
// id (con) they were created in. The binding layer guarantees that
// ObjectDestroy is called at most once per id and never after ContextDestroy
// for the owning context.
//
// Implementations are provided by backend packages:
//   - backend/software: pure Go reference runtime
//   - backend/gpu: GPU accelerator plugged into the software runtime
type Runtime interface {
	// ContextCreate creates a native context and returns its id.
	ContextCreate(flags ContextFlags) (uint64, error)

	// ContextDestroy tears down a native context and every object in it.
	ContextDestroy(con uint64)

	// ContextFinish blocks until all queued work in the context completes.
	ContextFinish(con uint64) error

	// ObjectDestroy releases all native resources behind id.
	// Only valid while the context is alive.
	ObjectDestroy(con, id uint64)

	// AssignName associates a display name (UTF-8) with a native object.
	AssignName(con, id uint64, name []byte)

	// ObjectName returns the name previously assigned to id, or a name the
	// runtime assigned itself. Empty when the object has no name.
	ObjectName(con, id uint64) string

	// ElementCreate creates an element describing one cell of an allocation.
	ElementCreate(con uint64, dt DataType, dk DataKind, normalized bool, vecSize int) (uint64, error)

	// TypeCreate creates an allocation type of x*y*z cells of element eid.
	TypeCreate(con, eid uint64, x, y, z int) (uint64, error)

	// AllocationCreate creates storage for a type.
	AllocationCreate(con, tid uint64, usage AllocationUsage) (uint64, error)

	// AllocationWrite copies data into an allocation. len(data) equals the
	// allocation byte size.
	AllocationWrite(con, aid uint64, data []byte) error

	// AllocationRead copies an allocation into data. len(data) equals the
	// allocation byte size.
	AllocationRead(con, aid uint64, data []byte) error

	// IntrinsicCreate creates a built-in kernel. eid may be 0 for kernels
	// that take their element from the bound allocations.
	IntrinsicCreate(con uint64, kind IntrinsicKind, eid uint64) (uint64, error)

	// ScriptSetVar sets a packed (little-endian) script global.
	ScriptSetVar(con, sid uint64, slot int, data []byte) error

	// ScriptSetVarObj binds a native object to a script global. oid may be 0
	// to unbind.
	ScriptSetVarObj(con, sid uint64, slot int, oid uint64) error

	// ScriptForEach launches kernel slot over aout (or ain when aout is 0).
	// region may be nil to cover the whole allocation.
	ScriptForEach(con, sid uint64, slot int, ain, aout uint64, region *Region) error

	// FontCreate creates a native font from font file bytes.
	FontCreate(con uint64, data []byte, pointSize float32, dpi int) (uint64, error)
}

// Region restricts a kernel launch to [XStart, XEnd) x [YStart, YEnd) x
// [ZStart, ZEnd). An End of 0 means "to the end of the dimension".
type Region struct {
	XStart, XEnd int
	YStart, YEnd int
	ZStart, ZEnd int
}

// ContextFlags configures a native context.
type ContextFlags uint32

const (
	// ContextFlagNone requests default behavior.
	ContextFlagNone ContextFlags = 0

	// ContextFlagSynchronous makes every launch complete before returning.
	ContextFlagSynchronous ContextFlags = 1 << 0

	// ContextFlagLowLatency prefers latency over throughput.
	ContextFlagLowLatency ContextFlags = 1 << 1

	// ContextFlagLowPower prefers power efficiency over throughput.
	ContextFlagLowPower ContextFlags = 1 << 2
)

// AllocationUsage is a bitmask describing how an allocation is used.
type AllocationUsage uint32

const (
	// UsageScript means the allocation is bound to or launched by scripts.
	UsageScript AllocationUsage = 1 << 0

	// UsageGraphicsTexture means the allocation may be sampled as a texture.
	UsageGraphicsTexture AllocationUsage = 1 << 1

	// UsageShared means the allocation may be backed by host memory.
	UsageShared AllocationUsage = 1 << 7
)

// IntrinsicKind identifies a built-in kernel. Values match the native ids.
type IntrinsicKind uint32

const (
	IntrinsicConvolve3x3 IntrinsicKind = 1
	IntrinsicColorMatrix IntrinsicKind = 2
	IntrinsicConvolve5x5 IntrinsicKind = 4
	IntrinsicBlur        IntrinsicKind = 5
	Intrinsic3DLUT       IntrinsicKind = 8
	IntrinsicResize      IntrinsicKind = 12
)

// String returns the kernel name.
func (k IntrinsicKind) String() string {
	switch k {
	case IntrinsicConvolve3x3:
		return "convolve3x3"
	case IntrinsicColorMatrix:
		return "colormatrix"
	case IntrinsicConvolve5x5:
		return "convolve5x5"
	case IntrinsicBlur:
		return "blur"
	case Intrinsic3DLUT:
		return "3dlut"
	case IntrinsicResize:
		return "resize"
	default:
		return "unknown"
	}
}

// Script global slots and kernel slots shared by the binding layer and the
// runtimes. Each intrinsic interprets its own slots.
const (
	SlotBlurRadius = 0
	SlotBlurInput  = 1

	SlotConvolveCoefficients = 0
	SlotConvolveInput        = 1

	SlotColorMatrix    = 0
	SlotColorMatrixAdd = 1

	SlotLUT = 0

	SlotResizeInput = 0

	// KernelRoot is the default kernel of every intrinsic.
	KernelRoot = 0
)
