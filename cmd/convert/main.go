// Command convert re-encodes PPM frames written by rasterize into another
// image format chosen by the destination extension.
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"trirast/internal/export"
)

func convert(src, dst string, o export.Options) error {
	f, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("open %s: %w", src, err)
	}
	defer f.Close()

	img, err := export.ReadPPM(f)
	if err != nil {
		return fmt.Errorf("%s: %w", src, err)
	}
	if err := export.Save(dst, export.FromImage(img), o); err != nil {
		return err
	}
	b := img.Bounds()
	fmt.Printf("OK  %s -> %s  (%dx%d)\n", src, dst, b.Dx(), b.Dy())
	return nil
}

func main() {
	ext := flag.String("to", "png", "Target format extension (png, webp, bmp, tiff, tga)")
	flip := flag.Bool("flip", false, "Flip rows so row 0 ends up at the bottom")
	scale := flag.Int("scale", 1, "Integer nearest-neighbour upscale")
	flag.Parse()

	if flag.NArg() == 0 {
		fmt.Fprintln(os.Stderr, "usage: convert [-to png] [-flip] [-scale n] frame.ppm ...")
		os.Exit(2)
	}

	opts := export.Options{FlipY: *flip, Scale: *scale}
	errors := 0
	for _, src := range flag.Args() {
		dst := strings.TrimSuffix(src, filepath.Ext(src)) + "." + strings.TrimPrefix(*ext, ".")
		if err := convert(src, dst, opts); err != nil {
			fmt.Fprintf(os.Stderr, "ERR %v\n", err)
			errors++
		}
	}
	if errors > 0 {
		fmt.Printf("\nDone with %d error(s).\n", errors)
		os.Exit(1)
	}
}
