package rs

import (
	"log/slog"
	"sync"
	"sync/atomic"
)

// Context is a session with a native runtime. Every object is created in a
// Context and must only be used with it.
//
// Context is safe for concurrent use. Object releases hold the teardown lock
// in shared mode; Destroy holds it exclusively, so it waits for in-flight
// releases and no release can run against a torn-down context.
type Context struct {
	rt  Runtime
	con uint64

	// teardown serializes object releases (read) against Destroy (write).
	teardown sync.RWMutex
	alive    atomic.Bool

	opts contextOptions

	elemMu    sync.Mutex
	elemCache map[elementKey]*Element
}

// NewContext creates a native context on rt.
func NewContext(rt Runtime, opts ...Option) (*Context, error) {
	if rt == nil {
		return nil, illegalArgument("NewContext", "runtime is nil")
	}
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	propagateLogger(rt, Logger())

	con, err := rt.ContextCreate(o.flags)
	if err != nil {
		return nil, runtimeError("NewContext", err)
	}
	if con == 0 {
		return nil, &Error{Kind: KindRuntime, Op: "NewContext", Detail: "runtime returned context id 0"}
	}

	c := &Context{
		rt:        rt,
		con:       con,
		opts:      o,
		elemCache: make(map[elementKey]*Element),
	}
	c.alive.Store(true)
	c.logger().Info("rs: context created", "con", con, "flags", uint32(o.flags))
	return c, nil
}

// Runtime returns the native runtime backing the context.
func (c *Context) Runtime() Runtime {
	return c.rt
}

// DPI returns the display density used for fonts.
func (c *Context) DPI() int {
	return c.opts.dpi
}

// IsAlive reports whether the context has not been destroyed.
func (c *Context) IsAlive() bool {
	return c.alive.Load()
}

// validate fails with ErrNoContext once the context is destroyed.
func (c *Context) validate(op string) error {
	if c == nil || !c.alive.Load() {
		return newError(op, ErrNoContext)
	}
	return nil
}

// Finish blocks until all work queued in the context has completed.
func (c *Context) Finish() error {
	if err := c.validate("Finish"); err != nil {
		return err
	}
	if err := c.rt.ContextFinish(c.con); err != nil {
		return runtimeError("Finish", err)
	}
	return nil
}

// Destroy tears down the native context and everything created in it.
// Objects that were not destroyed first become unusable; destroying them
// later is still allowed and skips the native call.
func (c *Context) Destroy() error {
	c.teardown.Lock()
	defer c.teardown.Unlock()

	if !c.alive.Load() {
		return newError("Destroy", ErrNoContext)
	}
	c.rt.ContextDestroy(c.con)
	c.alive.Store(false)

	c.elemMu.Lock()
	c.elemCache = nil
	c.elemMu.Unlock()

	c.logger().Info("rs: context destroyed", "con", c.con)
	return nil
}

// releaseObject runs the native half of the release protocol: the native
// call happens under the shared teardown lock and only while alive.
func (c *Context) releaseObject(id uint64) bool {
	c.teardown.RLock()
	defer c.teardown.RUnlock()

	if !c.alive.Load() || id == 0 {
		return false
	}
	c.rt.ObjectDestroy(c.con, id)
	return true
}

func (c *Context) logger() *slog.Logger {
	if c.opts.logger != nil {
		return c.opts.logger
	}
	return Logger()
}
