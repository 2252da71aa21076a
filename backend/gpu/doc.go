// Package gpu offloads intrinsic launches to the GPU through gogpu/wgpu.
//
// The accelerator plugs into the software runtime and takes over whole
// allocation launches it has a compute shader for:
//   - color matrix on u8x4
//   - 3x3 convolution on u8x4
//
// Everything else, and any launch the device fails, runs on the CPU.
//
// Importing the package registers the "gpu" runtime:
//
//	import _ "github.com/gogpu/rs/backend/gpu"
//
//	rt, err := backend.New(backend.BackendGPU)
//
// A host that already owns a device can share it:
//
//	a := gpu.NewAccelerator()
//	if err := a.SetDeviceProvider(app); err != nil { ... }
//	rt := software.New(software.WithAccelerator(a))
//
// Build with -tags nogpu to leave the GPU stack out of the binary.
package gpu
