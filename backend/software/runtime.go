package software

import (
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"

	"github.com/gogpu/rs"
	"github.com/gogpu/rs/internal/cache"
	"github.com/gogpu/rs/internal/parallel"
)

// Runtime errors.
var (
	ErrUnknownContext = errors.New("software: unknown context")
	ErrUnknownObject  = errors.New("software: unknown object")
	ErrWrongKind      = errors.New("software: object has the wrong kind")
	ErrUnsupported    = errors.New("software: unsupported element")
	ErrNoInput        = errors.New("software: kernel input not set")
	ErrShape          = errors.New("software: allocation shape mismatch")
)

// Runtime is a pure Go implementation of rs.Runtime. Object ids are
// allocated from one counter per runtime and are never reused, so a stale
// id can never alias a newer object.
//
// Runtime is safe for concurrent use. Kernel launches and allocation
// copies run one at a time; each launch splits its rows across a worker
// pool.
type Runtime struct {
	mu       sync.RWMutex
	nextID   uint64
	contexts map[uint64]rs.ContextFlags
	objects  map[uint64]*object

	exec    sync.Mutex
	accel   Accelerator
	kernels *cache.Cache[int, []float32]
	pool    *parallel.WorkerPool

	logger atomic.Pointer[slog.Logger]

	released        atomic.Int64
	invalidReleases atomic.Int64
}

var _ rs.Runtime = (*Runtime)(nil)

// New creates a runtime.
func New(opts ...Option) *Runtime {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	r := &Runtime{
		contexts: make(map[uint64]rs.ContextFlags),
		objects:  make(map[uint64]*object),
		accel:    cpuAccelerator{},
		kernels:  cache.New[int, []float32](o.kernelCacheSize),
	}
	if o.workers != 1 {
		r.pool = parallel.NewWorkerPool(o.workers)
	}
	r.logger.Store(rs.Logger())
	if o.accel != nil {
		if err := o.accel.Init(); err != nil {
			r.log().Warn("software: accelerator init failed, using CPU",
				"accelerator", o.accel.Name(), "error", err)
		} else {
			r.accel = o.accel
			r.log().Info("software: accelerator enabled", "accelerator", o.accel.Name())
		}
	}
	return r
}

// SetLogger sets the runtime logger. rs.NewContext calls it with the
// package logger.
func (r *Runtime) SetLogger(l *slog.Logger) {
	if l == nil {
		l = rs.Logger()
	}
	r.logger.Store(l)
}

func (r *Runtime) log() *slog.Logger { return r.logger.Load() }

// Accelerator returns the active accelerator name, "cpu" when none.
func (r *Runtime) Accelerator() string { return r.accel.Name() }

// Close releases the accelerator and stops the worker pool. Later
// launches run on the calling goroutine.
func (r *Runtime) Close() {
	r.exec.Lock()
	defer r.exec.Unlock()
	r.pool.Close()
	r.accel.Close()
	r.accel = cpuAccelerator{}
}

// Stats describes the object table.
type Stats struct {
	Contexts int
	Objects  int
	// Released counts successful ObjectDestroy calls.
	Released int64
	// InvalidReleases counts ObjectDestroy calls for ids that were not live.
	InvalidReleases int64
	Kernels         cache.Stats
}

// Stats returns a snapshot of the object table.
func (r *Runtime) Stats() Stats {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return Stats{
		Contexts:        len(r.contexts),
		Objects:         len(r.objects),
		Released:        r.released.Load(),
		InvalidReleases: r.invalidReleases.Load(),
		Kernels:         r.kernels.Stats(),
	}
}

// Live reports whether id names a live object.
func (r *Runtime) Live(id uint64) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.objects[id]
	return ok
}

// ContextCreate implements rs.Runtime.
func (r *Runtime) ContextCreate(flags rs.ContextFlags) (uint64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	r.contexts[r.nextID] = flags
	return r.nextID, nil
}

// ContextDestroy implements rs.Runtime. Every object of the context is
// dropped.
func (r *Runtime) ContextDestroy(con uint64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.contexts[con]; !ok {
		r.log().Warn("software: destroying unknown context", "con", con)
		return
	}
	dropped := 0
	for id, o := range r.objects {
		if o.con == con {
			delete(r.objects, id)
			dropped++
		}
	}
	delete(r.contexts, con)
	r.log().Debug("software: context destroyed", "con", con, "dropped", dropped)
}

// ContextFinish implements rs.Runtime. Launches are synchronous, so it
// only waits for a launch in flight.
func (r *Runtime) ContextFinish(con uint64) error {
	r.mu.RLock()
	_, ok := r.contexts[con]
	r.mu.RUnlock()
	if !ok {
		return fmt.Errorf("%w: %d", ErrUnknownContext, con)
	}
	r.exec.Lock()
	defer r.exec.Unlock()
	return nil
}

// ObjectDestroy implements rs.Runtime.
func (r *Runtime) ObjectDestroy(con, id uint64) {
	r.mu.Lock()
	o, ok := r.objects[id]
	if ok && o.con == con {
		delete(r.objects, id)
	}
	r.mu.Unlock()

	if !ok || o.con != con {
		r.invalidReleases.Add(1)
		r.log().Warn("software: release of unknown object", "con", con, "id", id)
		return
	}
	r.released.Add(1)
	r.log().Debug("software: object released", "kind", kindName(o.val), "id", id)
}

// AssignName implements rs.Runtime.
func (r *Runtime) AssignName(con, id uint64, name []byte) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if o, ok := r.objects[id]; ok && o.con == con {
		o.name = string(name)
	}
}

// ObjectName implements rs.Runtime.
func (r *Runtime) ObjectName(con, id uint64) string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if o, ok := r.objects[id]; ok && o.con == con {
		return o.name
	}
	return ""
}

// insert adds an object to the table. Caller must not hold r.mu.
func (r *Runtime) insert(con uint64, name string, val any) (uint64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.contexts[con]; !ok {
		return 0, fmt.Errorf("%w: %d", ErrUnknownContext, con)
	}
	r.nextID++
	r.objects[r.nextID] = &object{con: con, name: name, val: val}
	return r.nextID, nil
}

// lookup returns the value of id in con as a T.
func lookup[T any](r *Runtime, con, id uint64) (T, error) {
	r.mu.RLock()
	o, ok := r.objects[id]
	r.mu.RUnlock()

	var zero T
	if !ok || o.con != con {
		return zero, fmt.Errorf("%w: %d", ErrUnknownObject, id)
	}
	v, ok := o.val.(T)
	if !ok {
		return zero, fmt.Errorf("%w: %d is a %s", ErrWrongKind, id, kindName(o.val))
	}
	return v, nil
}

// ElementCreate implements rs.Runtime.
func (r *Runtime) ElementCreate(con uint64, dt rs.DataType, dk rs.DataKind, normalized bool, vecSize int) (uint64, error) {
	if dt.Size() == 0 || vecSize < 1 || vecSize > 4 {
		return 0, fmt.Errorf("%w: %s x %d", ErrUnsupported, dt, vecSize)
	}
	return r.insert(con, "", &element{dt: dt, dk: dk, normalized: normalized, vecSize: vecSize})
}

// TypeCreate implements rs.Runtime.
func (r *Runtime) TypeCreate(con, eid uint64, x, y, z int) (uint64, error) {
	e, err := lookup[*element](r, con, eid)
	if err != nil {
		return 0, err
	}
	if x < 1 || y < 0 || z < 0 {
		return 0, fmt.Errorf("%w: %dx%dx%d", ErrShape, x, y, z)
	}
	return r.insert(con, "", &typ{elem: e, x: x, y: y, z: z})
}

// AllocationCreate implements rs.Runtime.
func (r *Runtime) AllocationCreate(con, tid uint64, usage rs.AllocationUsage) (uint64, error) {
	t, err := lookup[*typ](r, con, tid)
	if err != nil {
		return 0, err
	}
	a := &allocation{typ: t, usage: usage, data: make([]byte, t.count()*t.elem.bytes())}
	return r.insert(con, "", a)
}

// AllocationWrite implements rs.Runtime.
func (r *Runtime) AllocationWrite(con, aid uint64, data []byte) error {
	a, err := lookup[*allocation](r, con, aid)
	if err != nil {
		return err
	}
	if len(data) != len(a.data) {
		return fmt.Errorf("%w: write of %d bytes into %d", ErrShape, len(data), len(a.data))
	}
	r.exec.Lock()
	copy(a.data, data)
	r.exec.Unlock()
	return nil
}

// AllocationRead implements rs.Runtime.
func (r *Runtime) AllocationRead(con, aid uint64, data []byte) error {
	a, err := lookup[*allocation](r, con, aid)
	if err != nil {
		return err
	}
	if len(data) != len(a.data) {
		return fmt.Errorf("%w: read of %d bytes from %d", ErrShape, len(data), len(a.data))
	}
	r.exec.Lock()
	copy(data, a.data)
	r.exec.Unlock()
	return nil
}

// IntrinsicCreate implements rs.Runtime.
func (r *Runtime) IntrinsicCreate(con uint64, kind rs.IntrinsicKind, eid uint64) (uint64, error) {
	var e *element
	if eid != 0 {
		var err error
		if e, err = lookup[*element](r, con, eid); err != nil {
			return 0, err
		}
	}
	switch kind {
	case rs.IntrinsicBlur, rs.IntrinsicConvolve3x3, rs.IntrinsicConvolve5x5, rs.Intrinsic3DLUT:
		if e == nil {
			return 0, fmt.Errorf("software: %s needs an element", kind)
		}
	case rs.IntrinsicColorMatrix, rs.IntrinsicResize:
	default:
		return 0, fmt.Errorf("software: unknown intrinsic %d", kind)
	}
	return r.insert(con, "", newIntrinsic(kind, e))
}

// ScriptSetVar implements rs.Runtime.
func (r *Runtime) ScriptSetVar(con, sid uint64, slot int, data []byte) error {
	in, err := lookup[*intrinsic](r, con, sid)
	if err != nil {
		return err
	}
	vals := rs.UnpackF32s(data)

	r.exec.Lock()
	defer r.exec.Unlock()
	switch {
	case in.kind == rs.IntrinsicBlur && slot == rs.SlotBlurRadius && len(vals) == 1:
		if vals[0] <= 0 || vals[0] > rs.MaxBlurRadius {
			return fmt.Errorf("software: blur radius %g out of range", vals[0])
		}
		in.radius = vals[0]
	case (in.kind == rs.IntrinsicConvolve3x3 || in.kind == rs.IntrinsicConvolve5x5) &&
		slot == rs.SlotConvolveCoefficients && len(vals) == len(in.coeffs):
		copy(in.coeffs, vals)
	case in.kind == rs.IntrinsicColorMatrix && slot == rs.SlotColorMatrix && len(vals) == 16:
		copy(in.matrix[:], vals)
	case in.kind == rs.IntrinsicColorMatrix && slot == rs.SlotColorMatrixAdd && len(vals) == 4:
		copy(in.add[:], vals)
	default:
		return fmt.Errorf("software: %s has no %d-byte global in slot %d", in.kind, len(data), slot)
	}
	return nil
}

// ScriptSetVarObj implements rs.Runtime.
func (r *Runtime) ScriptSetVarObj(con, sid uint64, slot int, oid uint64) error {
	in, err := lookup[*intrinsic](r, con, sid)
	if err != nil {
		return err
	}
	if oid != 0 {
		if _, err := lookup[*allocation](r, con, oid); err != nil {
			return err
		}
	}
	var want int
	switch in.kind {
	case rs.IntrinsicBlur:
		want = rs.SlotBlurInput
	case rs.IntrinsicConvolve3x3, rs.IntrinsicConvolve5x5:
		want = rs.SlotConvolveInput
	case rs.Intrinsic3DLUT:
		want = rs.SlotLUT
	case rs.IntrinsicResize:
		want = rs.SlotResizeInput
	default:
		return fmt.Errorf("software: %s has no object globals", in.kind)
	}
	if slot != want {
		return fmt.Errorf("software: %s has no object global in slot %d", in.kind, slot)
	}

	r.exec.Lock()
	in.input = oid
	r.exec.Unlock()
	return nil
}

// FontCreate implements rs.Runtime.
func (r *Runtime) FontCreate(con uint64, data []byte, pointSize float32, dpi int) (uint64, error) {
	f, err := parseFont(data, pointSize, dpi)
	if err != nil {
		return 0, err
	}
	return r.insert(con, f.fullName, f)
}
