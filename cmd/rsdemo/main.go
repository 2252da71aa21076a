// Command rsdemo runs one rs intrinsic over a PNG image.
//
// Usage:
//
//	rsdemo -in photo.png -out blurred.png -op blur -radius 8
//	rsdemo -op greyscale -backend software
//
// Without -in a generated test pattern is used.
package main

import (
	"flag"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"log"
	"log/slog"
	"os"

	"github.com/gogpu/rs"
	"github.com/gogpu/rs/backend"

	// Register backends via init().
	_ "github.com/gogpu/rs/backend/gpu"
	_ "github.com/gogpu/rs/backend/software"
)

func main() {
	var (
		in      = flag.String("in", "", "input PNG (default: generated pattern)")
		out     = flag.String("out", "rsdemo.png", "output PNG")
		op      = flag.String("op", "blur", "blur, greyscale, yuv, convolve, emboss, resize or lut")
		radius  = flag.Float64("radius", rs.DefaultBlurRadius, "blur radius, 0 < r <= 25")
		scale   = flag.Float64("scale", 0.5, "resize factor")
		name    = flag.String("backend", "", "runtime backend (default: best available)")
		verbose = flag.Bool("v", false, "log runtime activity")
	)
	flag.Parse()

	if *verbose {
		rs.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug})))
	}

	src, err := loadImage(*in)
	if err != nil {
		log.Fatalf("Failed to load input: %v", err)
	}

	rt, err := newRuntime(*name)
	if err != nil {
		log.Fatalf("Failed to start runtime: %v", err)
	}
	if c, ok := rt.(interface{ Close() }); ok {
		defer c.Close()
	}
	ctx, err := rs.NewContext(rt)
	if err != nil {
		log.Fatalf("Failed to create context: %v", err)
	}
	defer func() { _ = ctx.Destroy() }()

	res, err := run(ctx, *op, src, float32(*radius), *scale)
	if err != nil {
		log.Fatalf("%s failed: %v", *op, err)
	}
	if err := savePNG(*out, res); err != nil {
		log.Fatalf("Failed to save: %v", err)
	}
	log.Printf("%s saved to %s (%dx%d)\n", *op, *out, res.Bounds().Dx(), res.Bounds().Dy())
}

func newRuntime(name string) (rs.Runtime, error) {
	if name == "" {
		return backend.Default()
	}
	return backend.New(name)
}

// run applies op to src and returns the result.
func run(ctx *rs.Context, op string, src image.Image, radius float32, scale float64) (*image.NRGBA, error) {
	ain, err := rs.NewAllocationFromImage(ctx, src)
	if err != nil {
		return nil, err
	}
	defer func() { _ = ain.Destroy() }()

	w, h := ain.Type().X(), ain.Type().Y()
	if op == "resize" {
		w, h = max(1, int(float64(w)*scale)), max(1, int(float64(h)*scale))
	}
	aout, err := rs.NewAllocation2D(ctx, ain.Element(), w, h)
	if err != nil {
		return nil, err
	}
	defer func() { _ = aout.Destroy() }()

	switch op {
	case "blur":
		err = blur(ctx, ain, aout, radius)
	case "greyscale", "yuv":
		err = colorMatrix(ctx, ain, aout, op)
	case "convolve":
		err = sharpen(ctx, ain, aout)
	case "emboss":
		err = emboss(ctx, ain, aout)
	case "resize":
		err = resize(ctx, ain, aout)
	case "lut":
		err = warm(ctx, ain, aout)
	default:
		err = fmt.Errorf("unknown op %q", op)
	}
	if err != nil {
		return nil, err
	}
	if err := ctx.Finish(); err != nil {
		return nil, err
	}
	return aout.ToImage()
}

func blur(ctx *rs.Context, ain, aout *rs.Allocation, radius float32) error {
	s, err := rs.NewBlur(ctx, ain.Element())
	if err != nil {
		return err
	}
	defer func() { _ = s.Destroy() }()
	if err := s.SetRadius(radius); err != nil {
		return err
	}
	if err := s.SetInput(ain); err != nil {
		return err
	}
	return s.ForEach(aout)
}

func colorMatrix(ctx *rs.Context, ain, aout *rs.Allocation, op string) error {
	s, err := rs.NewColorMatrix(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = s.Destroy() }()
	if op == "yuv" {
		err = s.SetRGBtoYUV()
	} else {
		err = s.SetGreyscale()
	}
	if err != nil {
		return err
	}
	return s.ForEach(ain, aout)
}

func sharpen(ctx *rs.Context, ain, aout *rs.Allocation) error {
	s, err := rs.NewConvolve3x3(ctx, ain.Element())
	if err != nil {
		return err
	}
	defer func() { _ = s.Destroy() }()
	if err := s.SetCoefficients([]float32{
		0, -1, 0,
		-1, 5, -1,
		0, -1, 0,
	}); err != nil {
		return err
	}
	if err := s.SetInput(ain); err != nil {
		return err
	}
	return s.ForEach(aout)
}

func emboss(ctx *rs.Context, ain, aout *rs.Allocation) error {
	s, err := rs.NewConvolve5x5(ctx, ain.Element())
	if err != nil {
		return err
	}
	defer func() { _ = s.Destroy() }()
	k := make([]float32, 25)
	k[0], k[6], k[12], k[18], k[24] = -1, -1, 1, 1, 1
	if err := s.SetCoefficients(k); err != nil {
		return err
	}
	if err := s.SetInput(ain); err != nil {
		return err
	}
	return s.ForEach(aout)
}

func resize(ctx *rs.Context, ain, aout *rs.Allocation) error {
	s, err := rs.NewResize(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = s.Destroy() }()
	if err := s.SetInput(ain); err != nil {
		return err
	}
	return s.ForEachBicubic(aout)
}

// lutSize is the edge length of the lookup table built by warm.
const lutSize = 16

// warm maps the image through a lookup table that lifts reds and cuts blues.
func warm(ctx *rs.Context, ain, aout *rs.Allocation) error {
	e := ain.Element()
	t, err := rs.NewType(ctx, e, lutSize, lutSize, lutSize)
	if err != nil {
		return err
	}
	defer func() { _ = t.Destroy() }()
	table, err := rs.NewAllocation(ctx, t, rs.UsageScript)
	if err != nil {
		return err
	}
	defer func() { _ = table.Destroy() }()

	data := make([]byte, 0, lutSize*lutSize*lutSize*4)
	level := func(i int) float64 { return float64(i) * 255 / (lutSize - 1) }
	for b := range lutSize {
		for g := range lutSize {
			for r := range lutSize {
				data = append(data,
					uint8(min(255, level(r)*1.1+10)),
					uint8(level(g)),
					uint8(level(b)*0.85),
					255)
			}
		}
	}
	if err := table.CopyFrom(data); err != nil {
		return err
	}

	s, err := rs.New3DLUT(ctx, e)
	if err != nil {
		return err
	}
	defer func() { _ = s.Destroy() }()
	if err := s.SetLUT(table); err != nil {
		return err
	}
	return s.ForEach(ain, aout)
}

func loadImage(path string) (image.Image, error) {
	if path == "" {
		return pattern(256, 256), nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return png.Decode(f)
}

// pattern draws a colored gradient with a checkerboard overlay.
func pattern(w, h int) image.Image {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := range h {
		for x := range w {
			c := color.NRGBA{
				R: uint8(x * 255 / (w - 1)),
				G: uint8(y * 255 / (h - 1)),
				B: 160,
				A: 255,
			}
			if (x/32+y/32)%2 == 0 {
				c.R, c.G, c.B = c.R/2, c.G/2, c.B/2
			}
			img.SetNRGBA(x, y, c)
		}
	}
	return img
}

func savePNG(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
