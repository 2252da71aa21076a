package gpu

import (
	_ "embed"
	"fmt"

	"github.com/gogpu/naga"
	"github.com/gogpu/rs"
)

//go:embed shaders/colormatrix.wgsl
var colorMatrixShaderSource string

//go:embed shaders/convolve3x3.wgsl
var convolve3x3ShaderSource string

// kernel describes one offloaded intrinsic.
type kernel struct {
	kind   rs.IntrinsicKind
	label  string
	source string
	params int // number of float params the shader reads
}

var kernels = map[rs.IntrinsicKind]kernel{
	rs.IntrinsicColorMatrix: {rs.IntrinsicColorMatrix, "rs-colormatrix", colorMatrixShaderSource, 20},
	rs.IntrinsicConvolve3x3: {rs.IntrinsicConvolve3x3, "rs-convolve3x3", convolve3x3ShaderSource, 9},
}

// CompileShaders compiles every embedded WGSL shader to SPIR-V and returns
// the SPIR-V size in bytes per kernel. It needs no device.
func CompileShaders() (map[rs.IntrinsicKind]int, error) {
	out := make(map[rs.IntrinsicKind]int, len(kernels))
	for kind, k := range kernels {
		spirv, err := naga.Compile(k.source)
		if err != nil {
			return nil, fmt.Errorf("gpu: compile %s shader: %w", k.label, err)
		}
		out[kind] = len(spirv)
	}
	return out, nil
}
