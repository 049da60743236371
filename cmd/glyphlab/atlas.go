package main

import (
	"errors"
	"flag"
	"fmt"
	"image"
	"io"
	"os"

	"github.com/disintegration/imaging"
	"github.com/gogpu/glyphlab"
	"github.com/gogpu/glyphlab/text"
	"golang.org/x/term"
)

var errTerminal = errors.New("refusing to write PNG to a terminal; use -o or redirect stdout")

func atlasCmd(args []string) error {
	fs := flag.NewFlagSet("atlas", flag.ContinueOnError)
	font := fs.String("font", "", "TrueType/OpenType font file (default: Go Regular)")
	parser := fs.String("parser", "ximage", "font parser: ximage or gotext")
	size := fs.Int("size", 32, "pixel size")
	scale := fs.Int("scale", 1, "integer upscale factor (nearest neighbour)")
	output := fs.String("o", "-", "output PNG file, - for stdout")
	verbose := fs.Bool("v", false, "debug logging")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *scale < 1 {
		return fmt.Errorf("invalid scale %d", *scale)
	}
	setupLogging(*verbose)

	if *output == "-" && term.IsTerminal(int(os.Stdout.Fd())) {
		return errTerminal
	}

	atlas, err := buildAtlas(*font, *parser, *size, nil)
	if err != nil {
		return err
	}
	img := atlasImage(atlas, *scale)
	glyphlab.Logger().Info("atlas built",
		"font", atlas.Font, "size", atlas.PixelSize, "width", atlas.Width, "height", atlas.Height, "scale", *scale)

	if *output == "-" {
		return writePNG(os.Stdout, img)
	}
	return imaging.Save(img, *output)
}

// atlasImage renders the packed coverage as grayscale, scaled by an
// integer factor.
func atlasImage(atlas *text.Atlas, scale int) image.Image {
	a := atlas.Image()
	var img image.Image = &image.Gray{Pix: a.Pix, Stride: a.Stride, Rect: a.Rect}
	if scale > 1 {
		b := img.Bounds()
		img = imaging.Resize(img, b.Dx()*scale, b.Dy()*scale, imaging.NearestNeighbor)
	}
	return img
}

func writePNG(w io.Writer, img image.Image) error {
	return imaging.Encode(w, img, imaging.PNG)
}
