package atlas

import (
	"errors"
	"fmt"

	"github.com/alacrity-engine/anim-importer/internal/sheet"
)

var ErrUnknownNaming = errors.New("unknown sprite naming scheme")

// Naming selects how sprites are named.
type Naming int

const (
	Classic           Naming = iota // hero 0
	FileAnimationZero               // hero_idle_0
	FileAnimationOne                // hero_idle_1
	AnimationZero                   // idle_0
	AnimationOne                    // idle_1
)

func ParseNaming(s string) (Naming, error) {
	switch s {
	case "classic":
		return Classic, nil
	case "file_animation_zero":
		return FileAnimationZero, nil
	case "file_animation_one":
		return FileAnimationOne, nil
	case "animation_zero":
		return AnimationZero, nil
	case "animation_one":
		return AnimationOne, nil
	}

	return 0, fmt.Errorf("%w: %q", ErrUnknownNaming, s)
}

// Settings configures sprite packing.
type Settings struct {
	Alignment     Alignment
	PivotMode     PivotMode
	CustomPivot   Point
	Naming        Naming
	PixelsPerUnit float64
}

// Sprite is one entry of the atlas.
type Sprite struct {
	Name      string `yaml:"name"`
	X         int    `yaml:"x"`
	Y         int    `yaml:"y"`
	Width     int    `yaml:"width"`
	Height    int    `yaml:"height"`
	Alignment string `yaml:"alignment"`
	Pivot     Point  `yaml:"pivot"`
}

// Atlas describes the sprites of one sheet. Frames that share a rect
// share a sprite; FrameSprite maps each frame to its sprite.
type Atlas struct {
	Sprites        []Sprite `yaml:"sprites"`
	FrameSprite    []int    `yaml:"frame_sprite"`
	MaxTextureSize int      `yaml:"max_texture_size"`
	PixelsPerUnit  float64  `yaml:"pixels_per_unit"`
}

type spriteKey struct {
	x, y, w, h int
	trim       sheet.Trim
}

func keyOf(f sheet.Frame) spriteKey {
	k := spriteKey{x: f.X, y: f.Y, w: f.Width, h: f.Height}
	if f.Trim != nil {
		k.trim = *f.Trim
	}

	return k
}

// Build lays out the atlas for s.
func Build(s *sheet.Sheet, settings Settings) (*Atlas, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}

	names := spriteNames(s, settings.Naming)
	atlas := &Atlas{
		Sprites:        make([]Sprite, 0, len(s.Frames)),
		FrameSprite:    make([]int, len(s.Frames)),
		MaxTextureSize: s.MaxTextureSize(),
		PixelsPerUnit:  settings.PixelsPerUnit,
	}
	seen := make(map[spriteKey]int, len(s.Frames))

	for i, f := range s.Frames {
		key := keyOf(f)
		if idx, ok := seen[key]; ok {
			atlas.FrameSprite[i] = idx
			continue
		}

		pivot, err := ComputePivot(settings, f)
		if err != nil {
			return nil, fmt.Errorf("frame %d: %w", i, err)
		}

		seen[key] = len(atlas.Sprites)
		atlas.FrameSprite[i] = len(atlas.Sprites)
		atlas.Sprites = append(atlas.Sprites, Sprite{
			Name:      names[i],
			X:         f.X,
			Y:         f.Y,
			Width:     f.Width,
			Height:    f.Height,
			Alignment: settings.Alignment.String(),
			Pivot:     pivot,
		})
	}

	return atlas, nil
}

// spriteNames names every frame. Frames outside any animation,
// and every frame under the classic scheme, use "<sheet> <index>".
func spriteNames(s *sheet.Sheet, naming Naming) []string {
	names := make([]string, len(s.Frames))
	for i := range names {
		names[i] = fmt.Sprintf("%s %d", s.Name, i)
	}

	if naming == Classic {
		return names
	}

	base := 0
	if naming == FileAnimationOne || naming == AnimationOne {
		base = 1
	}

	named := make([]bool, len(s.Frames))

	for _, anim := range s.Animations {
		for i := anim.First; i <= anim.Last; i++ {
			if named[i] {
				continue
			}

			n := i - anim.First + base
			switch naming {
			case FileAnimationZero, FileAnimationOne:
				names[i] = fmt.Sprintf("%s_%s_%d", s.Name, anim.Name, n)
			default:
				names[i] = fmt.Sprintf("%s_%d", anim.Name, n)
			}
			named[i] = true
		}
	}

	return names
}
