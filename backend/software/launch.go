package software

import (
	"errors"
	"fmt"

	"github.com/gogpu/rs"
)

// ScriptForEach implements rs.Runtime.
func (r *Runtime) ScriptForEach(con, sid uint64, slot int, ain, aout uint64, region *rs.Region) error {
	in, err := lookup[*intrinsic](r, con, sid)
	if err != nil {
		return err
	}
	if slot != rs.KernelRoot {
		return fmt.Errorf("software: %s has no kernel %d", in.kind, slot)
	}
	if aout == 0 {
		return fmt.Errorf("software: %s needs an output allocation", in.kind)
	}
	dst, err := lookup[*allocation](r, con, aout)
	if err != nil {
		return err
	}

	// Kernels reading a global take their source from it; the others from ain.
	srcID := ain
	switch in.kind {
	case rs.IntrinsicBlur, rs.IntrinsicConvolve3x3, rs.IntrinsicConvolve5x5, rs.IntrinsicResize:
		srcID = in.input
	}
	if srcID == 0 {
		return fmt.Errorf("%w: %s", ErrNoInput, in.kind)
	}
	src, err := lookup[*allocation](r, con, srcID)
	if err != nil {
		return fmt.Errorf("software: %s input: %w", in.kind, err)
	}
	var lut *allocation
	if in.kind == rs.Intrinsic3DLUT {
		if in.input == 0 {
			return fmt.Errorf("%w: %s table", ErrNoInput, in.kind)
		}
		if lut, err = lookup[*allocation](r, con, in.input); err != nil {
			return fmt.Errorf("software: %s table: %w", in.kind, err)
		}
	}

	r.exec.Lock()
	defer r.exec.Unlock()

	if region == nil && r.tryAccelerate(in, src, dst) {
		return nil
	}

	switch in.kind {
	case rs.IntrinsicBlur:
		return r.blur(in, src, dst, region)
	case rs.IntrinsicConvolve3x3, rs.IntrinsicConvolve5x5:
		return r.convolve(in, src, dst, region)
	case rs.IntrinsicColorMatrix:
		return r.colorMatrix(in, src, dst, region)
	case rs.Intrinsic3DLUT:
		return r.lookup3D(lut, src, dst, region)
	case rs.IntrinsicResize:
		return r.resize(src, dst, region)
	default:
		return fmt.Errorf("software: unknown intrinsic %d", in.kind)
	}
}

// tryAccelerate offers a whole-allocation 2D launch to the accelerator. It
// reports whether the accelerator produced the output. Caller holds r.exec.
func (r *Runtime) tryAccelerate(in *intrinsic, src, dst *allocation) bool {
	if !r.accel.CanAccelerate(in.kind) {
		return false
	}
	st, dt := src.typ, dst.typ
	if st.z > 0 || st.y == 0 || st.x != dt.x || st.y != dt.y || !src.elem().compatible(dst.elem()) {
		return false
	}

	job := Job{
		Kind:     in.kind,
		Width:    st.x,
		Height:   st.y,
		DataType: src.elem().dt,
		VecSize:  src.elem().vecSize,
		Src:      src.data,
		Dst:      dst.data,
	}
	switch in.kind {
	case rs.IntrinsicColorMatrix:
		job.Params = append(append(make([]float32, 0, 20), in.matrix[:]...), in.add[:]...)
	case rs.IntrinsicConvolve3x3, rs.IntrinsicConvolve5x5:
		job.Params = append([]float32(nil), in.coeffs...)
	}

	err := r.accel.Run(job)
	switch {
	case err == nil:
		return true
	case errors.Is(err, ErrFallbackToCPU):
		r.log().Debug("software: accelerator declined", "kernel", in.kind.String())
	default:
		r.log().Warn("software: accelerator failed, using CPU",
			"accelerator", r.accel.Name(), "kernel", in.kind.String(), "error", err)
	}
	return false
}

// samePlaneShape checks that two planes have the same cells.
func samePlaneShape(kind rs.IntrinsicKind, a, b *plane) error {
	if a.w != b.w || a.h != b.h || a.d != b.d {
		return fmt.Errorf("%w: %s input %dx%dx%d, output %dx%dx%d",
			ErrShape, kind, a.w, a.h, a.d, b.w, b.h, b.d)
	}
	return nil
}
