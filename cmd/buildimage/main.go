// Command buildimage builds one image URL into a block grid and prints a
// summary.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/ironsheep/image-builder-mcp/internal/app"
	"github.com/ironsheep/image-builder-mcp/internal/builder"
)

const usage = "Usage: buildimage <imageURL>"

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("buildimage", flag.ContinueOnError)
	fs.SetOutput(stderr)

	var (
		configPath  = fs.String("config", "", "config file (default from IMAGE_BUILDER_CONFIG or config.yml)")
		maxEdge     = fs.Int("max-edge", 0, "override the configured max edge")
		x           = fs.Int("x", 0, "origin x")
		y           = fs.Int("y", 0, "origin y")
		z           = fs.Int("z", 0, "origin z")
		previewPath = fs.String("p", "", "write a PNG preview of the grid to this path")
		scale       = fs.Int("scale", 4, "preview upscale factor")
		rows        = fs.Bool("rows", false, "print the label grid")
		timeout     = fs.Duration("timeout", time.Minute, "overall time limit")
	)
	fs.Usage = func() {
		fmt.Fprintln(stderr, usage)
		fmt.Fprintln(stderr)
		fmt.Fprintln(stderr, "Fetches the image, scales its longer edge down to the max edge and maps")
		fmt.Fprintln(stderr, "every pixel to the closest palette block. A local path may be given")
		fmt.Fprintln(stderr, "instead of a URL.")
		fmt.Fprintln(stderr)
		fmt.Fprintln(stderr, "Options:")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return 2
	}
	if fs.NArg() < 1 {
		fs.Usage()
		return 2
	}
	if *maxEdge < 0 {
		fmt.Fprintln(stderr, "Max edge cannot be negative.")
		return 2
	}

	logger := log.New(stderr, "", 0)
	a, err := app.Load(*configPath, app.Options{AllowFile: true, Logger: logger})
	if err != nil {
		fmt.Fprintln(stderr, "Failed to load config:", err)
		return 1
	}

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	req := builder.Request{
		URL:     toURL(fs.Arg(0)),
		Origin:  builder.Location{X: *x, Y: *y, Z: *z},
		MaxEdge: *maxEdge,
	}
	res, err := a.Builder.Build(ctx, req)
	if err != nil {
		fmt.Fprintf(stderr, "Build failed (%s): %v\n", builder.KindOf(err), err)
		return 1
	}

	printResult(stdout, res, *rows)

	if *previewPath != "" && res.Grid.Len() > 0 {
		if err := writePreview(*previewPath, res, *scale); err != nil {
			fmt.Fprintln(stderr, "Failed to write preview:", err)
			return 1
		}
		fmt.Fprintf(stdout, "Preview written to %s\n", *previewPath)
	}
	return 0
}

// toURL turns a local path into a file URL. Anything with a scheme is left
// alone.
func toURL(arg string) string {
	if strings.Contains(arg, "://") {
		return arg
	}
	abs, err := filepath.Abs(arg)
	if err != nil {
		return arg
	}
	return (&url.URL{Scheme: "file", Path: filepath.ToSlash(abs)}).String()
}

func printResult(w io.Writer, res *builder.Result, rows bool) {
	fmt.Fprintf(w, "Built %s\n", res.URL)
	fmt.Fprintf(w, "  source: %dx%d %s\n", res.Source.Width, res.Source.Height, res.Source.Format)
	fmt.Fprintf(w, "  grid:   %dx%d at (%d, %d, %d)\n", res.Target.Width, res.Target.Height,
		res.Origin.X, res.Origin.Y, res.Origin.Z)
	for _, c := range res.Counts {
		fmt.Fprintf(w, "  %-24s %d\n", c.Label, c.Count)
	}
	if rows {
		for _, row := range res.Grid.Rows() {
			fmt.Fprintln(w, strings.Join(row, " "))
		}
	}
}

func writePreview(path string, res *builder.Result, scale int) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := res.WritePreview(f, scale); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
