// Package rs binds Go to a native compute runtime: contexts, typed
// allocations and built-in image kernels, all living in the runtime and
// addressed through opaque ids.
//
// # Overview
//
// Every wrapper (Element, Type, Allocation, Font and the intrinsic kernels)
// embeds BaseObj, which owns one native id and guarantees the native object
// is released exactly once:
//   - explicitly, by Destroy, or
//   - by a safety net when the wrapper becomes unreachable without Destroy,
//     which also reports a leak.
//
// Objects are bound to the Context that created them. Using an object with
// another context, after Destroy, or after the context is gone fails with
// an *Error of kind KindInvalidState.
//
// # Quick Start
//
//	import (
//	    "github.com/gogpu/rs"
//	    "github.com/gogpu/rs/backend/software"
//	)
//
//	ctx, err := rs.NewContext(software.New())
//	if err != nil {
//	    return err
//	}
//	defer ctx.Destroy()
//
//	in, _ := rs.NewAllocationFromImage(ctx, img)
//	defer in.Destroy()
//	out, _ := rs.NewAllocation(ctx, in.Type(), rs.UsageScript)
//	defer out.Destroy()
//
//	blur, _ := rs.NewBlur(ctx, in.Element())
//	defer blur.Destroy()
//	_ = blur.SetRadius(8)
//	_ = blur.SetInput(in)
//	_ = blur.ForEach(out)
//	result, _ := out.ToImage()
//
// # Runtimes
//
// The native side is any implementation of Runtime:
//   - backend/software: pure Go reference runtime
//   - backend/gpu: wgpu compute accelerator for the software runtime
//
// # Errors
//
// Every failure is a usage defect returned as *Error. Use errors.Is with
// the kind sentinels (ErrInvalidState, ErrIllegalArgument, ErrRuntime) or
// the detailed ones (ErrDestroyed, ErrContextMismatch, ...).
//
// # Logging
//
// rs is silent by default. See SetLogger.
package rs
