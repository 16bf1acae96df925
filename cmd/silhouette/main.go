// Command silhouette converts an image's opacity mask into a Defold collision
// file: a convex hull shape ("hull") or a static collision object made of
// boxes along the outline ("chain").
package main

import (
	"bytes"
	"fmt"
	"image"
	"io"
	"log/slog"
	"os"

	"github.com/logrusorgru/aurora"
	"github.com/pkg/errors"
	"gopkg.in/alecthomas/kingpin.v2"

	"github.com/osuushi/silhouette"
	"github.com/osuushi/silhouette/config"
	"github.com/osuushi/silhouette/maskio"
	"github.com/osuushi/silhouette/preview"
)

type options struct {
	configPath string
	cfg        config.Config
	// Names of flags given explicitly on the command line
	set map[string]bool

	imagePath  string
	outputPath string

	previewPath  string
	previewScale float64
	imgcat       bool
	svgPath      string
	outlinePath  string
	verbose      bool
	noColor      bool
}

func main() {
	au, err := run(os.Args[1:], os.Stdout, os.Stderr)
	if err != nil {
		fmt.Fprintln(os.Stderr, au.Red("error:"), err)
		os.Exit(1)
	}
}

func newApp(o *options) *kingpin.Application {
	app := kingpin.New("silhouette", "Convert image silhouettes into 2D collision geometry.")
	app.HelpFlag.Short('h')

	mark := func(name string) kingpin.Action {
		return func(*kingpin.ParseContext) error {
			o.set[name] = true
			return nil
		}
	}

	app.Flag("config", "YAML configuration file.").StringVar(&o.configPath)
	app.Flag("threshold", "Minimum alpha (0-255) for a pixel to be solid.").
		Action(mark("threshold")).IntVar(&o.cfg.Threshold)
	app.Flag("max-vertices", "Maximum number of hull vertices.").
		Action(mark("max-vertices")).IntVar(&o.cfg.MaxVertices)
	app.Flag("epsilon", "Outline simplification tolerance in pixels.").
		Action(mark("epsilon")).Float64Var(&o.cfg.Epsilon)
	app.Flag("thickness", "Half thickness of outline boxes in pixels.").
		Action(mark("thickness")).Float64Var(&o.cfg.Thickness)
	app.Flag("group", "Collision group.").
		Action(mark("group")).StringVar(&o.cfg.Group)
	app.Flag("mask", "Collision mask; repeat for several.").
		Action(mark("mask")).StringsVar(&o.cfg.Masks)
	app.Flag("friction", "Friction coefficient.").
		Action(mark("friction")).Float64Var(&o.cfg.Friction)
	app.Flag("restitution", "Restitution coefficient.").
		Action(mark("restitution")).Float64Var(&o.cfg.Restitution)

	app.Flag("preview", "Write a PNG preview of the result.").PlaceHolder("PNG").StringVar(&o.previewPath)
	app.Flag("preview-scale", "Scale factor of the PNG preview.").Default("4").Float64Var(&o.previewScale)
	app.Flag("imgcat", "Print the PNG preview in the terminal (iTerm).").BoolVar(&o.imgcat)
	app.Flag("svg", "Write an SVG overlay of the result.").PlaceHolder("FILE").StringVar(&o.svgPath)
	app.Flag("outline-svg", "Write a potrace outline of the mask.").PlaceHolder("FILE").StringVar(&o.outlinePath)
	app.Flag("verbose", "Log pipeline details to stderr.").Short('v').BoolVar(&o.verbose)
	app.Flag("no-color", "Disable coloured output.").BoolVar(&o.noColor)

	for _, mode := range []silhouette.Mode{silhouette.ModeHull, silhouette.ModeChain} {
		help := "Emit a convex hull shape."
		if mode == silhouette.ModeChain {
			help = "Emit a static collision object lined with boxes."
		}
		cmd := app.Command(mode.String(), help)
		cmd.Arg("image", "Source image.").Required().ExistingFileVar(&o.imagePath)
		cmd.Arg("output", "Collision file to write. Standard output if omitted.").StringVar(&o.outputPath)
	}
	return app
}

// Defaults, then the config file, then flags given explicitly.
func (o *options) resolveConfig() (config.Config, error) {
	cfg := config.Default()
	if o.configPath != "" {
		loaded, err := config.Load(o.configPath)
		if err != nil {
			return config.Config{}, err
		}
		cfg = loaded
	}
	if o.set["threshold"] {
		cfg.Threshold = o.cfg.Threshold
	}
	if o.set["max-vertices"] {
		cfg.MaxVertices = o.cfg.MaxVertices
	}
	if o.set["epsilon"] {
		cfg.Epsilon = o.cfg.Epsilon
	}
	if o.set["thickness"] {
		cfg.Thickness = o.cfg.Thickness
	}
	if o.set["group"] {
		cfg.Group = o.cfg.Group
	}
	if o.set["mask"] {
		cfg.Masks = o.cfg.Masks
	}
	if o.set["friction"] {
		cfg.Friction = o.cfg.Friction
	}
	if o.set["restitution"] {
		cfg.Restitution = o.cfg.Restitution
	}
	return cfg, cfg.Validate()
}

// The collision data goes to stdout when no output path is given, so status
// lines always go to stderr.
func run(args []string, stdout, stderr io.Writer) (aurora.Aurora, error) {
	o := &options{set: make(map[string]bool)}
	app := newApp(o)
	command, err := app.Parse(args)
	au := aurora.NewAurora(!o.noColor)
	if err != nil {
		return au, err
	}
	if o.verbose {
		silhouette.SetLogger(slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		})))
	}

	mode, err := silhouette.ParseMode(command)
	if err != nil {
		return au, err
	}
	cfg, err := o.resolveConfig()
	if err != nil {
		return au, errors.Wrap(err, "configuration")
	}

	img, err := maskio.Load(o.imagePath)
	if err != nil {
		return au, err
	}
	result, err := silhouette.Convert(img, mode, cfg)
	if err != nil {
		return au, err
	}
	if o.outputPath == "" {
		if _, err := stdout.Write(result.Data); err != nil {
			return au, errors.Wrap(err, "writing collision data")
		}
		fmt.Fprintln(stderr, au.Green("wrote"), au.Bold("stdout"), summary(result))
	} else {
		if err := silhouette.WriteFileAtomic(o.outputPath, result.Data, 0o644); err != nil {
			return au, err
		}
		fmt.Fprintln(stderr, au.Green("wrote"), au.Bold(o.outputPath), summary(result))
	}

	if err := o.writeDebugOutputs(au, stderr, img, cfg, result); err != nil {
		return au, err
	}
	return au, nil
}

func summary(result *silhouette.Result) string {
	if result.Mode == silhouette.ModeHull {
		return fmt.Sprintf("(%d hull vertices)", len(result.Hull.Points))
	}
	return fmt.Sprintf("(%d contours, %d boxes)", len(result.Contours), len(result.Boxes))
}

func (o *options) writeDebugOutputs(au aurora.Aurora, status io.Writer, img image.Image, cfg config.Config, result *silhouette.Result) error {
	scene := preview.Scene{
		Width:    result.Width,
		Height:   result.Height,
		Image:    img,
		Hull:     result.Hull,
		Contours: result.Contours,
		Boxes:    result.Boxes,
	}

	if o.previewPath != "" {
		var buf bytes.Buffer
		if err := preview.RenderPNG(&buf, scene, o.previewScale); err != nil {
			return err
		}
		if err := silhouette.WriteFileAtomic(o.previewPath, buf.Bytes(), 0o644); err != nil {
			return err
		}
		fmt.Fprintln(status, au.Cyan("preview"), o.previewPath)
		if o.imgcat {
			if err := preview.Show(o.previewPath); err != nil {
				return err
			}
		}
	}

	if o.svgPath != "" {
		var buf bytes.Buffer
		if err := preview.WriteSVG(&buf, scene); err != nil {
			return err
		}
		if err := silhouette.WriteFileAtomic(o.svgPath, buf.Bytes(), 0o644); err != nil {
			return err
		}
		fmt.Fprintln(status, au.Cyan("svg"), o.svgPath)
	}

	if o.outlinePath != "" {
		mask := result.Mask
		if mask.Opaque == nil {
			mask = maskio.Grid(img, cfg.Threshold)
		}
		var buf bytes.Buffer
		if err := preview.OutlineSVG(&buf, mask); err != nil {
			return err
		}
		if err := silhouette.WriteFileAtomic(o.outlinePath, buf.Bytes(), 0o644); err != nil {
			return err
		}
		fmt.Fprintln(status, au.Cyan("outline"), o.outlinePath)
	}
	return nil
}
