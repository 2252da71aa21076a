package backend

import (
	"errors"
	"slices"
	"testing"

	"github.com/gogpu/rs"
)

func withRegistry(t *testing.T) {
	t.Helper()
	registryMu.Lock()
	saved := factories
	factories = make(map[string]Factory)
	registryMu.Unlock()
	t.Cleanup(func() {
		registryMu.Lock()
		factories = saved
		registryMu.Unlock()
	})
}

func TestRegistry_RegisterAndNew(t *testing.T) {
	withRegistry(t)

	Register("b", func() (rs.Runtime, error) { return nil, nil })
	Register("a", func() (rs.Runtime, error) { return nil, nil })

	if got := Available(); !slices.Equal(got, []string{"a", "b"}) {
		t.Errorf("Available() = %v", got)
	}
	if !IsRegistered("a") {
		t.Error("IsRegistered(a) = false")
	}
	Unregister("a")
	if IsRegistered("a") {
		t.Error("IsRegistered(a) after Unregister = true")
	}
	if _, err := New("a"); !errors.Is(err, ErrBackendNotAvailable) {
		t.Errorf("New(a) err = %v, want ErrBackendNotAvailable", err)
	}
}

func TestRegistry_DefaultSkipsFailingBackends(t *testing.T) {
	withRegistry(t)

	var tried []string
	Register(BackendGPU, func() (rs.Runtime, error) {
		tried = append(tried, BackendGPU)
		return nil, errors.New("no adapter")
	})
	Register(BackendSoftware, func() (rs.Runtime, error) {
		tried = append(tried, BackendSoftware)
		return nil, nil
	})

	if _, err := Default(); err != nil {
		t.Fatalf("Default() err = %v", err)
	}
	if !slices.Equal(tried, []string{BackendGPU, BackendSoftware}) {
		t.Errorf("tried = %v, want gpu then software", tried)
	}
}

func TestRegistry_DefaultEmpty(t *testing.T) {
	withRegistry(t)
	if _, err := Default(); !errors.Is(err, ErrBackendNotAvailable) {
		t.Errorf("Default() err = %v, want ErrBackendNotAvailable", err)
	}
}
