package export

import (
	"errors"
	"fmt"
	"image"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/HugoSmits86/nativewebp"
	"github.com/ftrvxmtrx/tga"
	"golang.org/x/image/draw"

	"github.com/alacrity-engine/anim-importer/internal/atlas"
	"github.com/alacrity-engine/anim-importer/internal/sheet"
)

// ErrSpriteName is returned for sprite names that can't be used
// as a file name inside the output directory.
var ErrSpriteName = errors.New("sprite name is not a plain file name")

// DecodeSheet decodes a sprite sheet; format is a file extension.
// TGA has no magic number, so the format is never sniffed.
func DecodeSheet(r io.Reader, format string) (image.Image, error) {
	var (
		img image.Image
		err error
	)

	switch strings.ToLower(strings.TrimPrefix(format, ".")) {
	case "png":
		img, err = png.Decode(r)
	case "tga":
		img, err = tga.Decode(r)
	default:
		return nil, fmt.Errorf("unsupported sheet format %q", format)
	}
	if err != nil {
		return nil, fmt.Errorf("decode sheet: %w", err)
	}

	return img, nil
}

// Crop copies the sprite out of the sheet, scaled up by scale
// with nearest-neighbor sampling. Sprite rects have a bottom-left
// origin, so y is flipped back against the canvas height.
func Crop(img image.Image, sp atlas.Sprite, canvasHeight, scale int) (*image.RGBA, error) {
	if scale < 1 {
		scale = 1
	}

	b := img.Bounds()
	top := sheet.FlipY(canvasHeight, sp.Y, sp.Height)
	src := image.Rect(sp.X, top, sp.X+sp.Width, top+sp.Height).Add(b.Min)

	if !src.In(b) {
		return nil, fmt.Errorf("sprite %q at %v lies outside the sheet %v", sp.Name, src, b)
	}

	dst := image.NewRGBA(image.Rect(0, 0, sp.Width*scale, sp.Height*scale))
	if scale == 1 {
		draw.Draw(dst, dst.Bounds(), img, src.Min, draw.Src)
	} else {
		draw.NearestNeighbor.Scale(dst, dst.Bounds(), img, src, draw.Src, nil)
	}

	return dst, nil
}

// checkName rejects empty names, dot names and anything
// containing a path separator.
func checkName(name string) error {
	if name == "" || name == "." || name == ".." ||
		strings.ContainsAny(name, `/\`) || filepath.Base(name) != name {
		return fmt.Errorf("%w: %q", ErrSpriteName, name)
	}

	return nil
}

// Sprites writes every atlas sprite as <dir>/<name>.webp.
// Nothing is written unless every name is safe and unique.
func Sprites(img image.Image, a *atlas.Atlas, canvasHeight int, dir string, scale int) error {
	seen := make(map[string]bool, len(a.Sprites))
	for _, sp := range a.Sprites {
		if err := checkName(sp.Name); err != nil {
			return err
		}

		if seen[sp.Name] {
			return fmt.Errorf("%w: %q is used twice", ErrSpriteName, sp.Name)
		}
		seen[sp.Name] = true
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	for _, sp := range a.Sprites {
		out, err := Crop(img, sp, canvasHeight, scale)
		if err != nil {
			return err
		}

		if err := writeWebP(filepath.Join(dir, sp.Name+".webp"), out); err != nil {
			return fmt.Errorf("sprite %q: %w", sp.Name, err)
		}
	}

	return nil
}

func writeWebP(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := nativewebp.Encode(f, img, nil); err != nil {
		return fmt.Errorf("webp encode: %w", err)
	}

	return f.Close()
}
