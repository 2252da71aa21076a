package rs

// Script is the base of every kernel wrapper. It marshals globals and
// launches through the owning context, fetching every object id with the
// script's context so destroyed or foreign objects are rejected.
type Script struct {
	BaseObj
}

// createIntrinsic asks the runtime for a built-in kernel. e may be nil.
func createIntrinsic(ctx *Context, op string, kind IntrinsicKind, e *Element) (uint64, error) {
	if err := ctx.validate(op); err != nil {
		return 0, err
	}
	var eid uint64
	if e != nil {
		var err error
		if eid, err = e.ID(ctx); err != nil {
			return 0, err
		}
	}
	id, err := ctx.rt.IntrinsicCreate(ctx.con, kind, eid)
	if err != nil {
		return 0, runtimeError(op, err)
	}
	return id, nil
}

// native returns the owning context and the script id.
func (s *Script) native(op string) (*Context, uint64, error) {
	id, err := s.ID(nil)
	if err != nil {
		return nil, 0, err
	}
	ctx := s.Context()
	if err := ctx.validate(op); err != nil {
		return nil, 0, err
	}
	return ctx, id, nil
}

// setVarF sets a float global.
func (s *Script) setVarF(op string, slot int, v float32) error {
	return s.setVarPacked(op, slot, NewFieldPacker(4).AddF32(v))
}

// setVarPacked sets a global from packed data.
func (s *Script) setVarPacked(op string, slot int, p *FieldPacker) error {
	ctx, id, err := s.native(op)
	if err != nil {
		return err
	}
	if err := ctx.rt.ScriptSetVar(ctx.con, id, slot, p.Bytes()); err != nil {
		return runtimeError(op, err)
	}
	return nil
}

// setVarObj binds obj to a global. A nil obj unbinds it.
func (s *Script) setVarObj(op string, slot int, obj Object) error {
	ctx, id, err := s.native(op)
	if err != nil {
		return err
	}
	var oid uint64
	if obj != nil && !isNilObject(obj) {
		if oid, err = obj.base().ID(ctx); err != nil {
			return err
		}
	}
	if err := ctx.rt.ScriptSetVarObj(ctx.con, id, slot, oid); err != nil {
		return runtimeError(op, err)
	}
	return nil
}

// forEach launches kernel slot. ain may be nil for kernels that read their
// input from a global.
func (s *Script) forEach(op string, slot int, ain, aout *Allocation, opts *LaunchOptions) error {
	ctx, id, err := s.native(op)
	if err != nil {
		return err
	}
	if ain == nil && aout == nil {
		return illegalArgument(op, "at least one of input or output is required")
	}
	var inID, outID uint64
	if ain != nil {
		if inID, err = ain.ID(ctx); err != nil {
			return err
		}
	}
	if aout != nil {
		if outID, err = aout.ID(ctx); err != nil {
			return err
		}
	}
	if err := ctx.rt.ScriptForEach(ctx.con, id, slot, inID, outID, opts.region()); err != nil {
		return runtimeError(op, err)
	}
	return nil
}
