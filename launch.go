package rs

import "fmt"

// LaunchOptions restricts a kernel launch to a sub-range of the output.
// Ends are exclusive; an unset dimension covers the whole allocation.
type LaunchOptions struct {
	r Region
}

// SetX limits the launch to columns [start, end).
func (o *LaunchOptions) SetX(start, end int) error {
	if err := checkRange("SetX", start, end); err != nil {
		return err
	}
	o.r.XStart, o.r.XEnd = start, end
	return nil
}

// SetY limits the launch to rows [start, end).
func (o *LaunchOptions) SetY(start, end int) error {
	if err := checkRange("SetY", start, end); err != nil {
		return err
	}
	o.r.YStart, o.r.YEnd = start, end
	return nil
}

// SetZ limits the launch to slices [start, end).
func (o *LaunchOptions) SetZ(start, end int) error {
	if err := checkRange("SetZ", start, end); err != nil {
		return err
	}
	o.r.ZStart, o.r.ZEnd = start, end
	return nil
}

// Region returns the launch region.
func (o *LaunchOptions) Region() Region {
	return o.r
}

func (o *LaunchOptions) region() *Region {
	if o == nil {
		return nil
	}
	r := o.r
	return &r
}

func checkRange(op string, start, end int) error {
	if start < 0 || end <= start {
		return illegalArgument(op, fmt.Sprintf("invalid dimension range [%d, %d)", start, end))
	}
	return nil
}
