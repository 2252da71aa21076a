package software

import (
	"fmt"

	"golang.org/x/image/font/opentype"
	"golang.org/x/image/font/sfnt"
)

// parseFont validates font bytes and reads the names the runtime reports.
func parseFont(data []byte, pointSize float32, dpi int) (*fontObj, error) {
	f, err := opentype.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("software: failed to parse font: %w", err)
	}
	var buf sfnt.Buffer
	family, _ := f.Name(&buf, sfnt.NameIDFamily)
	full, err := f.Name(&buf, sfnt.NameIDFull)
	if err != nil || full == "" {
		full = family
	}
	return &fontObj{
		family:   family,
		fullName: full,
		sizePx:   pointSize * float32(dpi) / 72,
		data:     data,
	}, nil
}

// FontInfo describes a native font.
type FontInfo struct {
	Family   string
	FullName string
	SizePx   float32
}

// Font returns the description of font id in con.
func (r *Runtime) Font(con, id uint64) (FontInfo, error) {
	f, err := lookup[*fontObj](r, con, id)
	if err != nil {
		return FontInfo{}, err
	}
	return FontInfo{Family: f.family, FullName: f.fullName, SizePx: f.sizePx}, nil
}
