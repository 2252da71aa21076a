// Package software provides a pure Go implementation of rs.Runtime.
//
// The runtime keeps every native object in an in-memory table and runs
// the intrinsic kernels on the CPU:
//   - blur: separable gaussian with edge extension
//   - convolve 3x3 and 5x5
//   - color matrix
//   - 3D lookup table with trilinear interpolation
//   - bicubic resize
//
// Kernel rows are split into bands across a worker pool sized by
// WithWorkers; Close stops it.
//
// An Accelerator may take over eligible launches:
//
//	rt := software.New(software.WithAccelerator(gpu.NewAccelerator()))
//	ctx, err := rs.NewContext(rt)
//
// Stats and Live expose the object table, which tests use to check that
// every native object is released exactly once.
package software
