package rs

import (
	"bytes"

	"github.com/go-text/typesetting/font"
)

// FontStyle selects a face within a family.
type FontStyle uint8

const (
	FontNormal FontStyle = iota
	FontBold
	FontItalic
	FontBoldItalic
)

// String returns the style name.
func (s FontStyle) String() string {
	switch s {
	case FontNormal:
		return "normal"
	case FontBold:
		return "bold"
	case FontItalic:
		return "italic"
	case FontBoldItalic:
		return "bold-italic"
	default:
		return "unknown"
	}
}

// Font is a native font created from font file bytes.
type Font struct {
	BaseObj

	desc      font.Description
	pointSize float32
}

// CreateFont creates a font for family and style from catalog. Unknown
// families fall back to sans-serif. A nil catalog means DefaultFontCatalog.
func CreateFont(ctx *Context, catalog *FontCatalog, family string, style FontStyle, pointSize float32) (*Font, error) {
	if catalog == nil {
		catalog = DefaultFontCatalog()
	}
	face, err := catalog.Lookup(family, style)
	if err != nil {
		return nil, err
	}
	return CreateFontFromData(ctx, face.Data, pointSize)
}

// CreateFontFromData creates a font from TrueType or OpenType bytes.
func CreateFontFromData(ctx *Context, data []byte, pointSize float32) (*Font, error) {
	if err := ctx.validate("CreateFont"); err != nil {
		return nil, err
	}
	if pointSize <= 0 {
		return nil, illegalArgument("CreateFont", "point size must be positive")
	}
	desc, err := describeFont(data)
	if err != nil {
		return nil, &Error{Kind: KindIllegalArgument, Op: "CreateFont", Detail: "invalid font data", Cause: err}
	}

	id, err := ctx.rt.FontCreate(ctx.con, data, pointSize, ctx.DPI())
	if err != nil {
		return nil, runtimeError("CreateFont", err)
	}
	if id == 0 {
		return nil, &Error{Kind: KindRuntime, Op: "CreateFont", Detail: "Unable to create font " + desc.Family}
	}
	f := &Font{desc: desc, pointSize: pointSize}
	if err := initObject(f, &f.BaseObj, ctx, id, KindFont); err != nil {
		return nil, err
	}
	if err := f.updateFromNative(); err != nil {
		_ = f.Destroy()
		return nil, err
	}
	return f, nil
}

// Description returns the family and aspect read from the font file.
func (f *Font) Description() font.Description { return f.desc }

// Family returns the family name read from the font file.
func (f *Font) Family() string { return f.desc.Family }

// PointSize returns the requested size in points.
func (f *Font) PointSize() float32 { return f.pointSize }

// Style derives the FontStyle from the font's aspect.
func (f *Font) Style() FontStyle {
	return styleOf(f.desc.Aspect)
}

func describeFont(data []byte) (font.Description, error) {
	face, err := font.ParseTTF(bytes.NewReader(data))
	if err != nil {
		return font.Description{}, err
	}
	return face.Describe(), nil
}

// styleOf maps an aspect to a style. Semibold counts as bold: Go Bold
// declares weight 600.
func styleOf(a font.Aspect) FontStyle {
	bold := a.Weight >= font.WeightSemibold
	italic := a.Style == font.StyleItalic
	switch {
	case bold && italic:
		return FontBoldItalic
	case bold:
		return FontBold
	case italic:
		return FontItalic
	default:
		return FontNormal
	}
}
