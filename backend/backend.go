package backend

import (
	"errors"

	"github.com/gogpu/rs"
)

// Common backend errors.
var (
	// ErrBackendNotAvailable is returned when a requested backend is not registered.
	ErrBackendNotAvailable = errors.New("backend: not available")
)

// Backend name constants.
const (
	// BackendSoftware is the pure Go CPU runtime.
	BackendSoftware = "software"
	// BackendGPU is the software runtime with the wgpu accelerator.
	BackendGPU = "gpu"
)

// Factory creates a runtime. Factories may fail, for example when no GPU
// adapter is present.
type Factory func() (rs.Runtime, error)
