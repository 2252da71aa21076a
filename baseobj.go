package rs

import (
	"reflect"
	"runtime"
	"sync"
	"sync/atomic"
)

// ObjectKind names the concrete wrapper type of a native object.
// Two objects are equal only if their kinds match.
type ObjectKind string

// Object kinds of the wrappers in this package.
const (
	KindElement     ObjectKind = "Element"
	KindType        ObjectKind = "Type"
	KindAllocation  ObjectKind = "Allocation"
	KindFont        ObjectKind = "Font"
	KindBlur        ObjectKind = "ScriptIntrinsicBlur"
	KindConvolve3x3 ObjectKind = "ScriptIntrinsicConvolve3x3"
	KindConvolve5x5 ObjectKind = "ScriptIntrinsicConvolve5x5"
	KindColorMatrix ObjectKind = "ScriptIntrinsicColorMatrix"
	Kind3DLUT       ObjectKind = "ScriptIntrinsic3DLUT"
	KindResize      ObjectKind = "ScriptIntrinsicResize"
)

// Object is implemented by every wrapper around a native object.
type Object interface {
	base() *BaseObj
}

// handleState is the part of a BaseObj the safety net can reach. It must
// never point back to the owning wrapper, or the wrapper would stay
// reachable forever.
type handleState struct {
	id        atomic.Uint64
	ctx       atomic.Pointer[Context]
	destroyed atomic.Bool
	kind      ObjectKind
}

// release performs the release protocol. It returns false if another caller
// already did.
func (s *handleState) release() bool {
	if !s.destroyed.CompareAndSwap(false, true) {
		return false
	}
	if ctx := s.ctx.Load(); ctx != nil {
		ctx.releaseObject(s.id.Load())
	}
	s.ctx.Store(nil)
	s.id.Store(0)
	return true
}

// BaseObj owns the id of one native object and guarantees it is released
// exactly once.
//
// Wrapper types embed BaseObj and register themselves as its owner. If a
// wrapper becomes unreachable without Destroy, the safety net releases the
// native object and reports a leak.
//
// BaseObj must not be copied after creation.
type BaseObj struct {
	state   *handleState
	cleanup runtime.Cleanup

	nameMu sync.Mutex
	name   string
}

// initObject binds o to ctx and id and attaches the safety net to owner,
// the wrapper that embeds o. id may be 0 for objects whose id is bound
// later with bindID.
func initObject[T any](owner *T, o *BaseObj, ctx *Context, id uint64, kind ObjectKind) error {
	if err := ctx.validate("create " + string(kind)); err != nil {
		return err
	}
	s := &handleState{kind: kind}
	s.ctx.Store(ctx)
	s.id.Store(id)
	o.state = s
	o.cleanup = runtime.AddCleanup(owner, (*handleState).collect, s)
	ctx.logger().Debug("rs: object created", "kind", string(kind), "id", id)
	return nil
}

func (o *BaseObj) base() *BaseObj { return o }

// Kind returns the wrapper kind.
func (o *BaseObj) Kind() ObjectKind {
	if o.state == nil {
		return ""
	}
	return o.state.kind
}

// Context returns the owning context, or nil once destroyed.
func (o *BaseObj) Context() *Context {
	if o.state == nil {
		return nil
	}
	return o.state.ctx.Load()
}

// bindID sets the native id of an object created without one.
func (o *BaseObj) bindID(id uint64) error {
	s := o.state
	if s == nil {
		return newError("bindID", ErrNotBound)
	}
	if s.destroyed.Load() {
		return newError("bindID", ErrDestroyed)
	}
	if id == 0 {
		return illegalArgument("bindID", "id must be nonzero")
	}
	if !s.id.CompareAndSwap(0, id) {
		return newError("bindID", ErrAlreadyBound)
	}
	return nil
}

// ID returns the native id. ctx may be nil; otherwise it must be the
// context that created the object.
func (o *BaseObj) ID(ctx *Context) (uint64, error) {
	s := o.state
	if s == nil {
		return 0, newError("ID", ErrNotBound)
	}
	if s.destroyed.Load() {
		return 0, newError("ID", ErrDestroyed)
	}
	id := s.id.Load()
	if id == 0 {
		// A concurrent Destroy clears the id after flipping destroyed.
		if s.destroyed.Load() {
			return 0, newError("ID", ErrDestroyed)
		}
		return 0, newError("ID", ErrNotBound)
	}
	owner := s.ctx.Load()
	if owner == nil {
		return 0, newError("ID", ErrDestroyed)
	}
	if ctx != nil && ctx != owner {
		return 0, newError("ID", ErrContextMismatch)
	}
	return id, nil
}

// Name returns the name of the object, or "" if it has none.
func (o *BaseObj) Name() string {
	o.nameMu.Lock()
	defer o.nameMu.Unlock()
	return o.name
}

// SetName assigns a name to the object, in the native runtime and locally.
// A name can be assigned only once.
func (o *BaseObj) SetName(name string) error {
	if o.state != nil && o.state.destroyed.Load() {
		return newError("SetName", ErrDestroyed)
	}
	if name == "" {
		return newError("SetName", ErrEmptyName)
	}

	o.nameMu.Lock()
	defer o.nameMu.Unlock()

	if o.name != "" {
		return newError("SetName", ErrAlreadyNamed)
	}
	id, err := o.ID(nil)
	if err != nil {
		return err
	}
	ctx := o.state.ctx.Load()
	if ctx == nil {
		return newError("SetName", ErrDestroyed)
	}

	ctx.teardown.RLock()
	defer ctx.teardown.RUnlock()
	if !ctx.alive.Load() {
		return newError("SetName", ErrNoContext)
	}
	ctx.rt.AssignName(ctx.con, id, []byte(name))
	o.name = name
	return nil
}

// updateFromNative adopts the name the runtime holds for the object, if the
// object has none yet.
func (o *BaseObj) updateFromNative() error {
	id, err := o.ID(nil)
	if err != nil {
		return err
	}
	ctx := o.state.ctx.Load()
	if ctx == nil {
		return newError("updateFromNative", ErrDestroyed)
	}
	if err := ctx.validate("updateFromNative"); err != nil {
		return err
	}
	name := ctx.rt.ObjectName(ctx.con, id)

	o.nameMu.Lock()
	if o.name == "" {
		o.name = name
	}
	o.nameMu.Unlock()
	return nil
}

// Destroy releases the native object. It fails if the object was already
// destroyed. Concurrent calls release the native object exactly once.
func (o *BaseObj) Destroy() error {
	s := o.state
	if s == nil {
		return newError("Destroy", ErrNotBound)
	}
	ctx := s.ctx.Load()
	id := s.id.Load()
	if !s.release() {
		return newError("Destroy", ErrAlreadyDestroyed)
	}
	o.cleanup.Stop()
	if ctx != nil {
		ctx.logger().Debug("rs: object destroyed", "kind", string(s.kind), "id", id)
	}
	return nil
}

// IsDestroyed reports whether Destroy or the safety net released the object.
func (o *BaseObj) IsDestroyed() bool {
	return o.state != nil && o.state.destroyed.Load()
}

// Equal reports whether other wraps the same native object: same kind and
// same id.
func (o *BaseObj) Equal(other Object) bool {
	if other == nil || isNilObject(other) {
		return false
	}
	ob := other.base()
	if ob == o {
		return true
	}
	return o.Kind() == ob.Kind() && o.rawID() == ob.rawID()
}

// Hash folds the high and low halves of the id. Equal objects hash equally;
// destroyed and unbound objects hash to 0.
func (o *BaseObj) Hash() uint32 {
	id := o.rawID()
	return uint32(id) ^ uint32(id>>32)
}

func (o *BaseObj) rawID() uint64 {
	if o.state == nil || o.state.destroyed.Load() {
		return 0
	}
	return o.state.id.Load()
}

func isNilObject(obj Object) bool {
	v := reflect.ValueOf(obj)
	return v.Kind() == reflect.Pointer && v.IsNil()
}
