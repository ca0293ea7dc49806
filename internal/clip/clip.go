package clip

import (
	"fmt"

	"github.com/alacrity-engine/anim-importer/internal/atlas"
	"github.com/alacrity-engine/anim-importer/internal/loop"
	"github.com/alacrity-engine/anim-importer/internal/sheet"
	"github.com/alacrity-engine/anim-importer/internal/timeline"
)

// Clip is what an animation player needs to play one animation.
// Sprites holds atlas sprite indices, one per keyframe.
type Clip struct {
	Name      string    `yaml:"name"`
	Sprites   []int     `yaml:"sprites"`
	Frames    []int     `yaml:"frames"`
	Times     []float64 `yaml:"times"`
	Durations []int     `yaml:"durations"`
	Duration  float64   `yaml:"duration"`
	Loop      bool      `yaml:"loop"`
}

// Settings configures clip assembly.
type Settings struct {
	FrameRate  float64
	NonLooping []string
	// Previous holds loop flags of clips imported earlier;
	// they win over the classifier.
	Previous map[string]bool
}

// Assemble builds one clip per animation of s.
func Assemble(s *sheet.Sheet, a *atlas.Atlas, settings Settings) ([]Clip, error) {
	classifier, err := loop.New(settings.NonLooping)
	if err != nil {
		return nil, err
	}

	clips := make([]Clip, 0, len(s.Animations))

	for _, anim := range s.Animations {
		tl, err := timeline.Build(anim, s.Frames, settings.FrameRate)
		if err != nil {
			return nil, fmt.Errorf("animation %s: %w", anim.Name, err)
		}

		looping := classifier.Loops(anim.Name)
		if prev, ok := settings.Previous[anim.Name]; ok {
			looping = prev
		}

		frames := tl.Frames()
		c := Clip{
			Name:      anim.Name,
			Frames:    frames,
			Sprites:   make([]int, len(frames)),
			Times:     tl.Times(),
			Durations: make([]int, len(frames)),
			Duration:  tl.Duration(),
			Loop:      looping,
		}

		for i, f := range frames {
			c.Sprites[i] = a.FrameSprite[f]
			c.Durations[i] = s.Frames[f].Duration
		}

		clips = append(clips, c)
	}

	return clips, nil
}
