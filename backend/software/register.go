package software

import (
	"github.com/gogpu/rs"
	"github.com/gogpu/rs/backend"
)

// init registers the software runtime on package import.
func init() {
	backend.Register(backend.BackendSoftware, func() (rs.Runtime, error) {
		return New(), nil
	})
}
