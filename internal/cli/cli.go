package cli

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/jtmiller/image-helpers/internal/imaging"
)

// App holds the command dispatcher and its dependencies. Command output
// goes to Out, logging to the logger's own writer (stderr by default).
type App struct {
	Out   io.Writer
	log   *logrus.Logger
	cache *imaging.BufferCache
}

// New creates an App with logging configured from the
// IMAGE_HELPERS_LOG_LEVEL environment variable (default warn).
func New() *App {
	log := logrus.New()
	log.SetOutput(os.Stderr)
	log.SetLevel(logrus.WarnLevel)
	if lvl, err := logrus.ParseLevel(os.Getenv("IMAGE_HELPERS_LOG_LEVEL")); err == nil {
		log.SetLevel(lvl)
	}
	return &App{
		Out:   os.Stdout,
		log:   log,
		cache: imaging.NewBufferCache(),
	}
}

// Run dispatches args (without the program name) to a command. It
// returns an error for unknown commands, bad flags, and helper
// failures; the caller decides the exit code.
func (a *App) Run(args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("no command given, expected one of: info, resize, crop, rotate, convert, concat, annotate")
	}

	cmd, rest := args[0], args[1:]
	a.log.WithField("command", cmd).Debug("dispatching")

	switch cmd {
	case "info":
		return a.runInfo(rest)
	case "resize":
		return a.runResize(rest)
	case "crop":
		return a.runCrop(rest)
	case "rotate":
		return a.runRotate(rest)
	case "convert":
		return a.runConvert(rest)
	case "concat":
		return a.runConcat(rest)
	case "annotate":
		return a.runAnnotate(rest)
	}
	return fmt.Errorf("unknown command %q", cmd)
}

func (a *App) runInfo(args []string) error {
	fs := flag.NewFlagSet("info", flag.ContinueOnError)
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		return fmt.Errorf("info: expected exactly one input file")
	}

	b, err := a.cache.Load(fs.Arg(0))
	if err != nil {
		return err
	}
	fmt.Fprintf(a.Out, "%s: %dx%d, %d channel(s)\n", fs.Arg(0), b.Width, b.Height, b.Channels)
	return nil
}

func (a *App) runResize(args []string) error {
	fs := flag.NewFlagSet("resize", flag.ContinueOnError)
	width := fs.Int("width", 0, "target width in pixels")
	height := fs.Int("height", 0, "target height in pixels")
	filterName := fs.String("filter", "lanczos", "resample filter: lanczos, linear, nearest, box")
	out := fs.String("o", "", "output file")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 1 || *out == "" {
		return fmt.Errorf("resize: expected -o OUTPUT and one input file")
	}

	filter, err := imaging.ParseFilter(*filterName)
	if err != nil {
		return err
	}
	b, err := a.cache.Load(fs.Arg(0))
	if err != nil {
		return err
	}
	resized, err := imaging.Resize(b, *width, *height, filter)
	if err != nil {
		return err
	}
	a.log.WithFields(logrus.Fields{"from": fmt.Sprintf("%dx%d", b.Width, b.Height),
		"to": fmt.Sprintf("%dx%d", resized.Width, resized.Height)}).Info("resized")
	return imaging.Save(resized, *out)
}

func (a *App) runCrop(args []string) error {
	fs := flag.NewFlagSet("crop", flag.ContinueOnError)
	x := fs.Int("x", 0, "left edge of the crop region")
	y := fs.Int("y", 0, "top edge of the crop region")
	w := fs.Int("w", 0, "crop width")
	h := fs.Int("h", 0, "crop height")
	out := fs.String("o", "", "output file")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 1 || *out == "" {
		return fmt.Errorf("crop: expected -o OUTPUT and one input file")
	}

	b, err := a.cache.Load(fs.Arg(0))
	if err != nil {
		return err
	}
	cropped, err := imaging.Crop(b, imaging.Rect{X: *x, Y: *y, W: *w, H: *h})
	if err != nil {
		return err
	}
	return imaging.Save(cropped, *out)
}

func (a *App) runRotate(args []string) error {
	fs := flag.NewFlagSet("rotate", flag.ContinueOnError)
	angle := fs.Float64("angle", 0, "rotation angle in degrees, counterclockwise")
	pivotSpec := fs.String("pivot", "", "optional pivot point as x,y (default: rotate about center)")
	out := fs.String("o", "", "output file")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 1 || *out == "" {
		return fmt.Errorf("rotate: expected -o OUTPUT and one input file")
	}

	var pivot *imaging.Point
	if *pivotSpec != "" {
		var px, py int
		if _, err := fmt.Sscanf(*pivotSpec, "%d,%d", &px, &py); err != nil {
			return fmt.Errorf("rotate: pivot must be x,y: %w", err)
		}
		pivot = &imaging.Point{X: px, Y: py}
	}

	b, err := a.cache.Load(fs.Arg(0))
	if err != nil {
		return err
	}
	rotated, err := imaging.Rotate(b, *angle, pivot)
	if err != nil {
		return err
	}
	return imaging.Save(rotated, *out)
}

func (a *App) runConvert(args []string) error {
	fs := flag.NewFlagSet("convert", flag.ContinueOnError)
	fromName := fs.String("from", "", "source color format: gray, rgb, bgr, rgba")
	toName := fs.String("to", "", "target color format: gray, rgb, bgr, rgba")
	out := fs.String("o", "", "output file")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 1 || *out == "" {
		return fmt.Errorf("convert: expected -o OUTPUT and one input file")
	}

	from, err := imaging.ParseFormat(*fromName)
	if err != nil {
		return err
	}
	to, err := imaging.ParseFormat(*toName)
	if err != nil {
		return err
	}
	b, err := a.cache.Load(fs.Arg(0))
	if err != nil {
		return err
	}
	converted, err := imaging.Convert(b, from, to)
	if err != nil {
		return err
	}
	return imaging.Save(converted, *out)
}

func (a *App) runConcat(args []string) error {
	fs := flag.NewFlagSet("concat", flag.ContinueOnError)
	policyName := fs.String("policy", "resize-down", "size policy: cut, fill, resize-down, resize-up")
	vertical := fs.Bool("vertical", false, "stack top to bottom instead of left to right")
	fillHex := fs.String("fill", "#FFFFFF", "pad color for the fill policy")
	out := fs.String("o", "", "output file")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() < 2 || *out == "" {
		return fmt.Errorf("concat: expected -o OUTPUT and at least two input files")
	}

	policy, err := imaging.ParseConcatPolicy(*policyName)
	if err != nil {
		return err
	}

	bufs := make([]*imaging.Buffer, fs.NArg())
	for i, path := range fs.Args() {
		if bufs[i], err = a.cache.Load(path); err != nil {
			return err
		}
	}

	var fill imaging.Pixel
	if policy == imaging.ConcatFill {
		if fill, err = colorFor(bufs[0], *fillHex); err != nil {
			return err
		}
	}

	var joined *imaging.Buffer
	if *vertical {
		joined, err = imaging.ConcatVertical(bufs, policy, fill)
	} else {
		joined, err = imaging.ConcatHorizontal(bufs, policy, fill)
	}
	if err != nil {
		return err
	}
	a.log.WithFields(logrus.Fields{"inputs": fs.NArg(),
		"size": fmt.Sprintf("%dx%d", joined.Width, joined.Height)}).Info("concatenated")
	return imaging.Save(joined, *out)
}

func (a *App) runAnnotate(args []string) error {
	fs := flag.NewFlagSet("annotate", flag.ContinueOnError)
	rectSpec := fs.String("rect", "", "rectangle outline as x,y,w,h")
	fillRect := fs.Bool("solid", false, "fill the rectangle instead of outlining it")
	thickness := fs.Int("thickness", 1, "outline thickness in pixels")
	colorHex := fs.String("color", "#FF0000", "annotation color")
	grid := fs.Int("grid", 0, "overlay a grid with the given spacing")
	label := fs.String("label", "", "text label to draw")
	atSpec := fs.String("at", "0,0", "label position as x,y")
	out := fs.String("o", "", "output file")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 1 || *out == "" {
		return fmt.Errorf("annotate: expected -o OUTPUT and one input file")
	}
	if *rectSpec == "" && *grid == 0 && *label == "" {
		return fmt.Errorf("annotate: nothing to draw, give -rect, -grid, or -label")
	}

	b, err := a.cache.Load(fs.Arg(0))
	if err != nil {
		return err
	}
	c, err := colorFor(b, *colorHex)
	if err != nil {
		return err
	}

	if *rectSpec != "" {
		var r imaging.Rect
		if _, err := fmt.Sscanf(*rectSpec, "%d,%d,%d,%d", &r.X, &r.Y, &r.W, &r.H); err != nil {
			return fmt.Errorf("annotate: rect must be x,y,w,h: %w", err)
		}
		if *fillRect {
			b, err = imaging.FillRect(b, r, c)
		} else {
			b, err = imaging.DrawRect(b, r, c, *thickness)
		}
		if err != nil {
			return err
		}
	}

	if *grid > 0 {
		if b, err = imaging.DrawGrid(b, *grid, c, false); err != nil {
			return err
		}
	}

	if *label != "" {
		var lx, ly int
		if _, err := fmt.Sscanf(*atSpec, "%d,%d", &lx, &ly); err != nil {
			return fmt.Errorf("annotate: -at must be x,y: %w", err)
		}
		bg := make(imaging.Pixel, b.Channels)
		if b.Channels == 4 {
			bg[3] = 0xff
		}
		if b, err = imaging.DrawLabel(b, lx, ly, *label, c, bg); err != nil {
			return err
		}
	}

	return imaging.Save(b, *out)
}

// colorFor parses a hex color and adapts it to the buffer's channel
// count: grayscale targets get the BT.601-weighted luminance of the
// parsed color, 3- and 4-channel targets gain or lose an alpha value.
func colorFor(b *imaging.Buffer, hex string) (imaging.Pixel, error) {
	px, err := imaging.ParseHexColor(hex)
	if err != nil {
		return nil, err
	}
	switch b.Channels {
	case 1:
		rgb, err := imaging.NewUniform(1, 1, px[:3])
		if err != nil {
			return nil, err
		}
		gray, err := imaging.Convert(rgb, imaging.FormatRGB, imaging.FormatGray)
		if err != nil {
			return nil, err
		}
		return gray.At(0, 0), nil
	case 4:
		if len(px) == 3 {
			return append(px, 0xff), nil
		}
	case 3:
		if len(px) == 4 {
			return px[:3], nil
		}
	}
	return px, nil
}

// Usage returns the top-level help text.
func Usage() string {
	var sb strings.Builder
	sb.WriteString("image-helpers - standalone image utility commands\n\n")
	sb.WriteString("Usage: image-helpers <command> [flags] <file...>\n\n")
	sb.WriteString("Commands:\n")
	sb.WriteString("  info      print dimensions and channel count\n")
	sb.WriteString("  resize    resize to -width x -height\n")
	sb.WriteString("  crop      extract the region -x,-y,-w,-h\n")
	sb.WriteString("  rotate    rotate by -angle degrees, optionally about -pivot\n")
	sb.WriteString("  convert   convert -from one color format -to another\n")
	sb.WriteString("  concat    join inputs, -vertical to stack, -policy to reconcile sizes\n")
	sb.WriteString("  annotate  draw -rect, -grid, or -label onto a copy\n\n")
	sb.WriteString("Environment variables:\n")
	sb.WriteString("  IMAGE_HELPERS_LOG_LEVEL=debug    enable debug logging\n")
	return sb.String()
}
