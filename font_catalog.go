package rs

import (
	"fmt"
	"io/fs"
	"strings"
	"sync"

	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/gobolditalic"
	"golang.org/x/image/font/gofont/goitalic"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/gofont/gomonobold"
	"golang.org/x/image/font/gofont/gomonobolditalic"
	"golang.org/x/image/font/gofont/gomonoitalic"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/gofont/gosmallcaps"
	"golang.org/x/image/font/gofont/gosmallcapsitalic"
	"golang.org/x/text/cases"
	"gopkg.in/yaml.v3"
)

// FallbackFamily is used when a requested family is not in a catalog.
const FallbackFamily = "sans-serif"

// FontFace is one font file of a family.
type FontFace struct {
	Name string
	Data []byte
}

// FontFamily groups the faces of a family, indexed by FontStyle.
type FontFamily struct {
	Name  string
	Faces [4]FontFace
}

// FontCatalog maps family names and their aliases to families. Lookups are
// case-insensitive. A catalog is immutable after construction.
type FontCatalog struct {
	families map[string]*FontFamily
}

// FamilySpec declares a family and the names it answers to.
type FamilySpec struct {
	Family  FontFamily
	Aliases []string
}

// NewFontCatalog builds a catalog from specs. Every family is reachable by
// its name and aliases. The catalog must contain FallbackFamily.
func NewFontCatalog(specs ...FamilySpec) (*FontCatalog, error) {
	c := &FontCatalog{families: make(map[string]*FontFamily)}
	for i := range specs {
		fam := specs[i].Family
		if fam.Name == "" {
			return nil, illegalArgument("NewFontCatalog", "family name is empty")
		}
		for style, face := range fam.Faces {
			if len(face.Data) == 0 {
				return nil, illegalArgument("NewFontCatalog", fmt.Sprintf("family %q has no %s face", fam.Name, FontStyle(style)))
			}
		}
		for _, name := range append([]string{fam.Name}, specs[i].Aliases...) {
			key := foldFamily(name)
			if _, dup := c.families[key]; dup {
				return nil, illegalArgument("NewFontCatalog", fmt.Sprintf("family name %q declared twice", name))
			}
			c.families[key] = &fam
		}
	}
	if _, ok := c.families[FallbackFamily]; !ok {
		return nil, illegalArgument("NewFontCatalog", "catalog has no "+FallbackFamily+" family")
	}
	return c, nil
}

// Lookup returns the face for family and style, falling back to
// FallbackFamily for unknown names.
func (c *FontCatalog) Lookup(family string, style FontStyle) (FontFace, error) {
	if style > FontBoldItalic {
		return FontFace{}, illegalArgument("Lookup", fmt.Sprintf("unknown font style %d", style))
	}
	return c.Family(family).Faces[style], nil
}

// Family returns the family registered for name, or the fallback family.
func (c *FontCatalog) Family(name string) *FontFamily {
	if fam, ok := c.families[foldFamily(name)]; ok {
		return fam
	}
	return c.families[FallbackFamily]
}

// Has reports whether name is a known family or alias.
func (c *FontCatalog) Has(name string) bool {
	_, ok := c.families[foldFamily(name)]
	return ok
}

func foldFamily(name string) string {
	return cases.Fold().String(strings.TrimSpace(name))
}

var (
	defaultCatalogOnce sync.Once
	defaultCatalog     *FontCatalog
)

// DefaultFontCatalog returns a catalog backed by the Go fonts. It knows the
// sans-serif, serif and monospace families under their common aliases.
// The Go fonts have no serif design; serif names map to Go Smallcaps for
// the upright faces and Go Bold for the bold ones.
func DefaultFontCatalog() *FontCatalog {
	defaultCatalogOnce.Do(func() {
		c, err := NewFontCatalog(
			FamilySpec{
				Family: FontFamily{Name: "sans-serif", Faces: [4]FontFace{
					{"Go-Regular", goregular.TTF},
					{"Go-Bold", gobold.TTF},
					{"Go-Italic", goitalic.TTF},
					{"Go-BoldItalic", gobolditalic.TTF},
				}},
				Aliases: []string{"arial", "helvetica", "tahoma", "verdana"},
			},
			FamilySpec{
				Family: FontFamily{Name: "serif", Faces: [4]FontFace{
					{"Go-Smallcaps", gosmallcaps.TTF},
					{"Go-Bold", gobold.TTF},
					{"Go-Smallcaps-Italic", gosmallcapsitalic.TTF},
					{"Go-BoldItalic", gobolditalic.TTF},
				}},
				Aliases: []string{"times", "times new roman", "palatino", "georgia", "baskerville",
					"goudy", "fantasy", "cursive", "itc stone serif"},
			},
			FamilySpec{
				Family: FontFamily{Name: "monospace", Faces: [4]FontFace{
					{"Go-Mono", gomono.TTF},
					{"Go-Mono-Bold", gomonobold.TTF},
					{"Go-Mono-Italic", gomonoitalic.TTF},
					{"Go-Mono-BoldItalic", gomonobolditalic.TTF},
				}},
				Aliases: []string{"courier", "courier new", "monaco"},
			},
		)
		if err != nil {
			panic("rs: default font catalog: " + err.Error())
		}
		defaultCatalog = c
	})
	return defaultCatalog
}

// catalogFile is the YAML layout read by LoadFontCatalog:
//
//	families:
//	  - name: sans-serif
//	    aliases: [arial, helvetica]
//	    normal: fonts/Roboto-Regular.ttf
//	    bold: fonts/Roboto-Bold.ttf
//	    italic: fonts/Roboto-Italic.ttf
//	    bold_italic: fonts/Roboto-BoldItalic.ttf
type catalogFile struct {
	Families []struct {
		Name       string   `yaml:"name"`
		Aliases    []string `yaml:"aliases"`
		Normal     string   `yaml:"normal"`
		Bold       string   `yaml:"bold"`
		Italic     string   `yaml:"italic"`
		BoldItalic string   `yaml:"bold_italic"`
	} `yaml:"families"`
}

// LoadFontCatalog reads a YAML catalog at path in fsys. Font file paths in
// the catalog are resolved in fsys. A missing style reuses the normal face.
func LoadFontCatalog(fsys fs.FS, path string) (*FontCatalog, error) {
	raw, err := fs.ReadFile(fsys, path)
	if err != nil {
		return nil, fmt.Errorf("rs: read font catalog: %w", err)
	}
	var cf catalogFile
	if err := yaml.Unmarshal(raw, &cf); err != nil {
		return nil, fmt.Errorf("rs: parse font catalog %s: %w", path, err)
	}

	files := make(map[string][]byte)
	load := func(p string) ([]byte, error) {
		if data, ok := files[p]; ok {
			return data, nil
		}
		data, err := fs.ReadFile(fsys, p)
		if err != nil {
			return nil, fmt.Errorf("rs: read font %s: %w", p, err)
		}
		files[p] = data
		return data, nil
	}

	specs := make([]FamilySpec, 0, len(cf.Families))
	for _, f := range cf.Families {
		if f.Normal == "" {
			return nil, illegalArgument("LoadFontCatalog", fmt.Sprintf("family %q has no normal face", f.Name))
		}
		spec := FamilySpec{Family: FontFamily{Name: f.Name}, Aliases: f.Aliases}
		for style, p := range [4]string{f.Normal, f.Bold, f.Italic, f.BoldItalic} {
			if p == "" {
				p = f.Normal
			}
			data, err := load(p)
			if err != nil {
				return nil, err
			}
			spec.Family.Faces[style] = FontFace{Name: p, Data: data}
		}
		specs = append(specs, spec)
	}
	return NewFontCatalog(specs...)
}
