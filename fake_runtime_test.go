package rs

import (
	"errors"
	"log/slog"
	"sync"
	"testing"
)

var errFakeUnknownContext = errors.New("fake: unknown context")

type fakeSlot struct {
	sid  uint64
	slot int
}

type fakeLaunch struct {
	sid       uint64
	slot      int
	ain, aout uint64
	region    *Region
}

// fakeRuntime records every call made through the Runtime interface.
type fakeRuntime struct {
	mu sync.Mutex

	nextID   uint64
	contexts map[uint64]bool
	live     map[uint64]uint64 // object id -> context id
	names    map[uint64]string
	data     map[uint64][]byte

	flags           ContextFlags
	destroys        map[uint64]int
	lateDestroys    int // ObjectDestroy after the context was torn down
	contextDestroys int
	vars            map[fakeSlot][]byte
	objVars         map[fakeSlot]uint64
	launches        []fakeLaunch
	created         []IntrinsicKind

	failNext  error  // returned by the next create call
	failAlloc error  // returned by every AllocationCreate
	zeroID    bool   // create calls return id 0
	fontName  string // name assigned to fonts
	fontPoint float32
	fontDPI   int
	logger    *slog.Logger
}

func newFakeRuntime() *fakeRuntime {
	return &fakeRuntime{
		contexts: make(map[uint64]bool),
		live:     make(map[uint64]uint64),
		names:    make(map[uint64]string),
		data:     make(map[uint64][]byte),
		destroys: make(map[uint64]int),
		vars:     make(map[fakeSlot][]byte),
		objVars:  make(map[fakeSlot]uint64),
	}
}

// newTestContext returns a context on a fresh fake runtime, destroyed when
// the test ends.
func newTestContext(t *testing.T, opts ...Option) (*Context, *fakeRuntime) {
	t.Helper()
	f := newFakeRuntime()
	ctx, err := NewContext(f, opts...)
	if err != nil {
		t.Fatalf("NewContext: %v", err)
	}
	t.Cleanup(func() { _ = ctx.Destroy() })
	return ctx, f
}

func (f *fakeRuntime) create(con uint64) (uint64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.failNext; err != nil {
		f.failNext = nil
		return 0, err
	}
	if !f.contexts[con] {
		return 0, errFakeUnknownContext
	}
	if f.zeroID {
		return 0, nil
	}
	f.nextID++
	f.live[f.nextID] = con
	return f.nextID, nil
}

func (f *fakeRuntime) destroyCount(id uint64) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.destroys[id]
}

func (f *fakeRuntime) totalDestroys() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, c := range f.destroys {
		n += c
	}
	return n
}

func (f *fakeRuntime) varFloats(sid uint64, slot int) []float32 {
	f.mu.Lock()
	defer f.mu.Unlock()
	return UnpackF32s(f.vars[fakeSlot{sid, slot}])
}

func (f *fakeRuntime) SetLogger(l *slog.Logger) { f.logger = l }

func (f *fakeRuntime) ContextCreate(flags ContextFlags) (uint64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.failNext; err != nil {
		f.failNext = nil
		return 0, err
	}
	if f.zeroID {
		return 0, nil
	}
	f.flags = flags
	f.nextID++
	f.contexts[f.nextID] = true
	return f.nextID, nil
}

func (f *fakeRuntime) ContextDestroy(con uint64) {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.contexts, con)
	for id, c := range f.live {
		if c == con {
			delete(f.live, id)
		}
	}
	f.contextDestroys++
}

func (f *fakeRuntime) ContextFinish(con uint64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if !f.contexts[con] {
		return errFakeUnknownContext
	}
	return nil
}

func (f *fakeRuntime) ObjectDestroy(con, id uint64) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if !f.contexts[con] {
		f.lateDestroys++
	}
	f.destroys[id]++
	delete(f.live, id)
}

func (f *fakeRuntime) AssignName(_, id uint64, name []byte) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.names[id] = string(name)
}

func (f *fakeRuntime) ObjectName(_, id uint64) string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.names[id]
}

func (f *fakeRuntime) ElementCreate(con uint64, _ DataType, _ DataKind, _ bool, _ int) (uint64, error) {
	return f.create(con)
}

func (f *fakeRuntime) TypeCreate(con, _ uint64, _, _, _ int) (uint64, error) {
	return f.create(con)
}

func (f *fakeRuntime) AllocationCreate(con, _ uint64, _ AllocationUsage) (uint64, error) {
	f.mu.Lock()
	err := f.failAlloc
	f.mu.Unlock()
	if err != nil {
		return 0, err
	}
	return f.create(con)
}

func (f *fakeRuntime) AllocationWrite(_, aid uint64, data []byte) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.data[aid] = append([]byte(nil), data...)
	return nil
}

func (f *fakeRuntime) AllocationRead(_, aid uint64, data []byte) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	copy(data, f.data[aid])
	return nil
}

func (f *fakeRuntime) IntrinsicCreate(con uint64, kind IntrinsicKind, _ uint64) (uint64, error) {
	id, err := f.create(con)
	if err == nil {
		f.mu.Lock()
		f.created = append(f.created, kind)
		f.mu.Unlock()
	}
	return id, err
}

func (f *fakeRuntime) ScriptSetVar(_, sid uint64, slot int, data []byte) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.vars[fakeSlot{sid, slot}] = append([]byte(nil), data...)
	return nil
}

func (f *fakeRuntime) ScriptSetVarObj(_, sid uint64, slot int, oid uint64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.objVars[fakeSlot{sid, slot}] = oid
	return nil
}

func (f *fakeRuntime) ScriptForEach(_, sid uint64, slot int, ain, aout uint64, region *Region) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.launches = append(f.launches, fakeLaunch{sid: sid, slot: slot, ain: ain, aout: aout, region: region})
	return nil
}

func (f *fakeRuntime) FontCreate(con uint64, _ []byte, pointSize float32, dpi int) (uint64, error) {
	id, err := f.create(con)
	if err != nil || id == 0 {
		return id, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.names[id] = f.fontName
	f.fontPoint, f.fontDPI = pointSize, dpi
	return id, nil
}
