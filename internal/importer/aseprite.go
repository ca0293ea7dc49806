package importer

import (
	"fmt"

	"github.com/tidwall/gjson"

	"github.com/alacrity-engine/anim-importer/internal/sheet"
)

// Aseprite reads the JSON written by `aseprite -b --data ... --list-tags`,
// in either the json-array or the json-hash layout.
type Aseprite struct{}

func (Aseprite) Import(name string, data []byte) (*sheet.Sheet, error) {
	if !gjson.ValidBytes(data) {
		return nil, ErrInvalidDocument
	}

	root := gjson.ParseBytes(data)

	meta := root.Get("meta")
	if !meta.IsObject() {
		return nil, ErrMissingMeta
	}

	w, okW := intField(meta, "size.w")
	h, okH := intField(meta, "size.h")
	if !okW || !okH {
		return nil, ErrMissingSize
	}

	s := &sheet.Sheet{
		Name:   name,
		Width:  w,
		Height: h,
	}

	tags := meta.Get("frameTags")
	if !tags.IsArray() {
		return nil, ErrMissingFrameTags
	}

	for i, tag := range tags.Array() {
		anim, err := parseTag(tag)
		if err != nil {
			return nil, fmt.Errorf("frame tag %d: %w", i, err)
		}

		s.Animations = append(s.Animations, anim)
	}

	frames := root.Get("frames")
	if !frames.IsArray() && !frames.IsObject() {
		return nil, ErrMissingFrames
	}

	var err error
	frames.ForEach(func(key, value gjson.Result) bool {
		var f sheet.Frame
		f, err = parseFrame(key, value, s.Height)
		if err != nil {
			err = fmt.Errorf("frame %d: %w", len(s.Frames), err)
			return false
		}

		s.Frames = append(s.Frames, f)
		return true
	})
	if err != nil {
		return nil, err
	}

	if err := s.Validate(); err != nil {
		return nil, err
	}

	return s, nil
}

func parseTag(tag gjson.Result) (sheet.Animation, error) {
	name := tag.Get("name")
	if name.Type != gjson.String {
		return sheet.Animation{}, fmt.Errorf("%w: tag without name", ErrMalformed)
	}

	from, okFrom := intField(tag, "from")
	to, okTo := intField(tag, "to")
	if !okFrom || !okTo {
		return sheet.Animation{}, fmt.Errorf("%w: tag %q without from/to", ErrMalformed, name.String())
	}

	return sheet.Animation{
		Name:      name.String(),
		First:     from,
		Last:      to,
		Direction: sheet.ParseDirection(tag.Get("direction").String()),
	}, nil
}

func parseFrame(key, value gjson.Result, canvasHeight int) (sheet.Frame, error) {
	name := value.Get("filename").String()
	if name == "" {
		name = key.String()
	}
	if name == "" {
		return sheet.Frame{}, fmt.Errorf("%w: frame without filename", ErrMalformed)
	}

	rect, err := parseRect(value.Get("frame"))
	if err != nil {
		return sheet.Frame{}, fmt.Errorf("frame %q: %w", name, err)
	}

	duration, ok := intField(value, "duration")
	if !ok {
		return sheet.Frame{}, fmt.Errorf("%w: frame %q without duration", ErrMalformed, name)
	}

	f := sheet.Frame{
		Name:     name,
		X:        rect[0],
		Y:        sheet.FlipY(canvasHeight, rect[1], rect[3]),
		Width:    rect[2],
		Height:   rect[3],
		Duration: duration,
	}

	if value.Get("trimmed").Bool() {
		src, err := parseRect(value.Get("spriteSourceSize"))
		if err != nil {
			return sheet.Frame{}, fmt.Errorf("frame %q spriteSourceSize: %w", name, err)
		}

		sw, okW := intField(value, "sourceSize.w")
		sh, okH := intField(value, "sourceSize.h")
		if !okW || !okH {
			return sheet.Frame{}, fmt.Errorf("%w: frame %q without sourceSize", ErrMalformed, name)
		}

		f.Trim = &sheet.Trim{
			X:            src[0],
			Y:            sheet.FlipY(sh, src[1], src[3]),
			SourceWidth:  sw,
			SourceHeight: sh,
		}
	}

	return f, nil
}

// parseRect reads an {x, y, w, h} object.
func parseRect(r gjson.Result) ([4]int, error) {
	var rect [4]int

	if !r.IsObject() {
		return rect, fmt.Errorf("%w: missing rect", ErrMalformed)
	}

	for i, key := range []string{"x", "y", "w", "h"} {
		v, ok := intField(r, key)
		if !ok {
			return rect, fmt.Errorf("%w: rect without %q", ErrMalformed, key)
		}

		rect[i] = v
	}

	return rect, nil
}

func intField(r gjson.Result, path string) (int, bool) {
	v := r.Get(path)
	if v.Type != gjson.Number {
		return 0, false
	}

	return int(v.Int()), true
}
