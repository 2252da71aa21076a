package backend

import (
	"fmt"
	"slices"
	"sync"

	"github.com/gogpu/rs"
)

var (
	registryMu sync.RWMutex
	factories  = make(map[string]Factory)
	// Priority order for runtime selection (first that starts wins).
	priority = []string{BackendGPU, BackendSoftware}
)

// Register registers a runtime factory under name. Backend packages call
// it from init. A later registration under the same name replaces the
// earlier one.
func Register(name string, f Factory) {
	registryMu.Lock()
	defer registryMu.Unlock()
	factories[name] = f
}

// Unregister removes a factory. Intended for tests.
func Unregister(name string) {
	registryMu.Lock()
	defer registryMu.Unlock()
	delete(factories, name)
}

// Available returns the registered names, sorted.
func Available() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()

	names := make([]string, 0, len(factories))
	for name := range factories {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// IsRegistered reports whether name is registered.
func IsRegistered(name string) bool {
	registryMu.RLock()
	defer registryMu.RUnlock()
	_, ok := factories[name]
	return ok
}

// New creates the runtime registered under name.
func New(name string) (rs.Runtime, error) {
	registryMu.RLock()
	f, ok := factories[name]
	registryMu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrBackendNotAvailable, name)
	}
	return f()
}

// Default creates the best runtime that starts: GPU first, then software,
// then any other registered backend. Failures are logged and skipped.
func Default() (rs.Runtime, error) {
	registryMu.RLock()
	names := slices.Clone(priority)
	for name := range factories {
		if !slices.Contains(names, name) {
			names = append(names, name)
		}
	}
	registryMu.RUnlock()

	for _, name := range names {
		if !IsRegistered(name) {
			continue
		}
		rt, err := New(name)
		if err == nil {
			rs.Logger().Info("backend: selected", "backend", name)
			return rt, nil
		}
		rs.Logger().Warn("backend: unavailable", "backend", name, "error", err)
	}
	return nil, ErrBackendNotAvailable
}
