package software

import (
	"errors"

	"github.com/gogpu/rs"
)

// ErrFallbackToCPU indicates the accelerator cannot handle a launch.
// The runtime transparently runs the CPU kernel instead.
var ErrFallbackToCPU = errors.New("software: falling back to CPU kernel")

// Job is one kernel launch handed to an Accelerator. Src and Dst hold the
// cells of a 2D allocation, row by row, in the element's layout.
type Job struct {
	Kind          rs.IntrinsicKind
	Width, Height int
	DataType      rs.DataType
	VecSize       int

	Src, Dst []byte

	// Params carries the kernel globals as floats:
	//   - ColorMatrix: 16 matrix values (column-major) then 4 add values
	//   - Convolve3x3: 9 coefficients
	Params []float32
}

// Accelerator is an optional offload target for intrinsic launches.
//
// The runtime asks CanAccelerate first and only offers whole-allocation
// launches. Run returns ErrFallbackToCPU for anything it cannot handle;
// any other error is logged and the CPU kernel runs as well.
type Accelerator interface {
	// Name returns the accelerator name (e.g., "wgpu").
	Name() string

	// Init acquires device resources. Called once by WithAccelerator.
	Init() error

	// Close releases device resources.
	Close()

	// CanAccelerate is a fast check used to skip the accelerator entirely.
	CanAccelerate(kind rs.IntrinsicKind) bool

	// Run executes job, writing job.Dst.
	Run(job Job) error
}

// cpuAccelerator runs nothing and is used when no accelerator is set.
type cpuAccelerator struct{}

var _ Accelerator = cpuAccelerator{}

func (cpuAccelerator) Name() string                       { return "cpu" }
func (cpuAccelerator) Init() error                        { return nil }
func (cpuAccelerator) Close()                             {}
func (cpuAccelerator) CanAccelerate(rs.IntrinsicKind) bool { return false }
func (cpuAccelerator) Run(Job) error                      { return ErrFallbackToCPU }
