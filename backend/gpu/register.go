//go:build !nogpu

package gpu

import (
	"fmt"

	"github.com/gogpu/rs"
	"github.com/gogpu/rs/backend"
	"github.com/gogpu/rs/backend/software"
)

// init registers the GPU runtime. Creating it fails when no hardware
// adapter is available, so backend.Default falls through to software.
func init() {
	backend.Register(backend.BackendGPU, func() (rs.Runtime, error) {
		a := NewAccelerator()
		if err := a.Init(); err != nil {
			return nil, fmt.Errorf("%w: %w", backend.ErrBackendNotAvailable, err)
		}
		return software.New(software.WithAccelerator(a)), nil
	})
}
