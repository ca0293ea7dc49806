package main

import (
	"gopkg.in/yaml.v2"

	"github.com/alacrity-engine/anim-importer/internal/atlas"
	"github.com/alacrity-engine/anim-importer/internal/clip"
)

// KeyframeMeta is one keyframe of a clip
// as printed by the -show flag.
type KeyframeMeta struct {
	Time   float64 `yaml:"time"`
	Sprite string  `yaml:"sprite"`
}

// ClipMeta is clip metadata
// written as YAML.
type ClipMeta struct {
	Name      string         `yaml:"name"`
	Loop      bool           `yaml:"loop"`
	Duration  float64        `yaml:"duration"`
	Keyframes []KeyframeMeta `yaml:"keyframes"`
}

func clipMeta(c clip.Clip, a *atlas.Atlas) ClipMeta {
	meta := ClipMeta{
		Name:      c.Name,
		Loop:      c.Loop,
		Duration:  c.Duration,
		Keyframes: make([]KeyframeMeta, len(c.Times)),
	}

	for i, t := range c.Times {
		meta.Keyframes[i] = KeyframeMeta{
			Time:   t,
			Sprite: a.Sprites[c.Sprites[i]].Name,
		}
	}

	return meta
}

// WriteClipMeta encodes the metadata of c as YAML.
func WriteClipMeta(c clip.Clip, a *atlas.Atlas) ([]byte, error) {
	return yaml.Marshal(clipMeta(c, a))
}
