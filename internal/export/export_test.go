package export

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/alacrity-engine/anim-importer/internal/atlas"
)

var (
	red  = color.RGBA{255, 0, 0, 255}
	blue = color.RGBA{0, 0, 255, 255}
)

// testSheet is 8x8: the top half red, the bottom half blue.
func testSheet() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, 8, 8))
	for y := 0; y < 8; y++ {
		for x := 0; x < 8; x++ {
			c := red
			if y >= 4 {
				c = blue
			}
			img.SetRGBA(x, y, c)
		}
	}

	return img
}

func TestCropFlipsY(t *testing.T) {
	img := testSheet()

	tests := []struct {
		name   string
		sprite atlas.Sprite
		want   color.RGBA
	}{
		{"bottom-left origin low row", atlas.Sprite{Name: "a", X: 0, Y: 0, Width: 8, Height: 4}, blue},
		{"bottom-left origin high row", atlas.Sprite{Name: "b", X: 0, Y: 4, Width: 8, Height: 4}, red},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := Crop(img, tt.sprite, 8, 1)
			if err != nil {
				t.Fatal(err)
			}
			if got := out.RGBAAt(1, 1); got != tt.want {
				t.Errorf("pixel = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestCropScale(t *testing.T) {
	out, err := Crop(testSheet(), atlas.Sprite{Name: "a", Width: 4, Height: 4}, 8, 3)
	if err != nil {
		t.Fatal(err)
	}

	if out.Bounds().Dx() != 12 || out.Bounds().Dy() != 12 {
		t.Errorf("bounds = %v, want 12x12", out.Bounds())
	}
	if got := out.RGBAAt(11, 11); got != blue {
		t.Errorf("pixel = %v, want %v", got, blue)
	}
}

func TestCropOutside(t *testing.T) {
	if _, err := Crop(testSheet(), atlas.Sprite{Name: "a", X: 6, Width: 4, Height: 4}, 8, 1); err == nil {
		t.Error("Crop() expected error for sprite outside the sheet")
	}
}

func TestSprites(t *testing.T) {
	buf := new(bytes.Buffer)
	if err := png.Encode(buf, testSheet()); err != nil {
		t.Fatal(err)
	}

	img, err := DecodeSheet(buf, ".png")
	if err != nil {
		t.Fatal(err)
	}

	dir := filepath.Join(t.TempDir(), "sprites")
	a := &atlas.Atlas{Sprites: []atlas.Sprite{
		{Name: "hero 0", Width: 4, Height: 4},
		{Name: "hero 1", X: 4, Width: 4, Height: 4},
	}}

	if err := Sprites(img, a, 8, dir, 2); err != nil {
		t.Fatal(err)
	}

	for _, sp := range a.Sprites {
		info, err := os.Stat(filepath.Join(dir, sp.Name+".webp"))
		if err != nil {
			t.Errorf("sprite %q not written: %v", sp.Name, err)
			continue
		}
		if info.Size() == 0 {
			t.Errorf("sprite %q is empty", sp.Name)
		}
	}
}

func TestSpritesRejectsUnsafeNames(t *testing.T) {
	tests := []struct {
		name    string
		sprites []string
	}{
		{"parent dir", []string{"../evil"}},
		{"nested", []string{"a/b"}},
		{"backslash", []string{`..\evil`}},
		{"dot dot", []string{".."}},
		{"empty", []string{""}},
		{"duplicate", []string{"idle_0", "idle_0"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			root := t.TempDir()
			dir := filepath.Join(root, "sprites")

			a := &atlas.Atlas{}
			for _, name := range tt.sprites {
				a.Sprites = append(a.Sprites, atlas.Sprite{Name: name, Width: 4, Height: 4})
			}

			err := Sprites(testSheet(), a, 8, dir, 1)
			if !errors.Is(err, ErrSpriteName) {
				t.Fatalf("Sprites() error = %v, want %v", err, ErrSpriteName)
			}

			if _, err := os.Stat(filepath.Join(root, "evil.webp")); !os.IsNotExist(err) {
				t.Errorf("file written outside the sprite dir: %v", err)
			}
			if _, err := os.Stat(dir); !os.IsNotExist(err) {
				t.Errorf("sprite dir created for rejected atlas: %v", err)
			}
		})
	}
}

func TestDecodeSheetGarbage(t *testing.T) {
	if _, err := DecodeSheet(bytes.NewReader([]byte("not an image")), "png"); err == nil {
		t.Error("DecodeSheet() expected error")
	}
	if _, err := DecodeSheet(bytes.NewReader(nil), "gif"); err == nil {
		t.Error("DecodeSheet() expected error for unsupported format")
	}
}
