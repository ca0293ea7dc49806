package importer

import (
	"archive/zip"
	"bytes"
	"fmt"
	"io"
	"sort"
	"strconv"

	"github.com/tidwall/gjson"

	"github.com/alacrity-engine/anim-importer/internal/sheet"
)

const pyxelDocument = "docData.json"

// PyxelEdit reads a .pyxel archive. Its animations are runs of tiles
// on a fixed grid; every frame of every animation gets its own entry
// in the frame table.
type PyxelEdit struct{}

type pyxelAnimation struct {
	key         int
	name        string
	baseTile    int
	length      int
	duration    int
	multipliers []int
}

func (PyxelEdit) Import(name string, data []byte) (*sheet.Sheet, error) {
	doc, err := readZipEntry(data, pyxelDocument)
	if err != nil {
		return nil, err
	}

	if !gjson.ValidBytes(doc) {
		return nil, ErrInvalidDocument
	}

	return parsePyxelDocument(name, gjson.ParseBytes(doc))
}

func readZipEntry(data []byte, entry string) ([]byte, error) {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("open pyxel archive: %w", err)
	}

	for _, f := range zr.File {
		if f.Name != entry {
			continue
		}

		rc, err := f.Open()
		if err != nil {
			return nil, fmt.Errorf("open %s: %w", entry, err)
		}
		defer rc.Close()

		return io.ReadAll(rc)
	}

	return nil, fmt.Errorf("%w: archive has no %s", ErrMissingMeta, entry)
}

func parsePyxelDocument(name string, root gjson.Result) (*sheet.Sheet, error) {
	canvas := root.Get("canvas")
	if !canvas.IsObject() {
		return nil, ErrMissingMeta
	}

	w, okW := intField(canvas, "width")
	h, okH := intField(canvas, "height")
	if !okW || !okH {
		return nil, ErrMissingSize
	}

	tileW, okTW := intField(root, "tileset.tileWidth")
	tileH, okTH := intField(root, "tileset.tileHeight")
	if !okTW || !okTH || tileW <= 0 || tileH <= 0 {
		return nil, fmt.Errorf("%w: tileset without tile size", ErrMalformed)
	}

	animsDoc := root.Get("animations")
	if !animsDoc.IsObject() {
		return nil, ErrMissingFrameTags
	}

	var anims []pyxelAnimation
	var err error

	animsDoc.ForEach(func(key, value gjson.Result) bool {
		var a pyxelAnimation
		a, err = parsePyxelAnimation(key.String(), value)
		if err != nil {
			return false
		}

		anims = append(anims, a)
		return true
	})
	if err != nil {
		return nil, err
	}

	sort.Slice(anims, func(i, j int) bool {
		return anims[i].key < anims[j].key
	})

	s := &sheet.Sheet{
		Name:   name,
		Width:  w,
		Height: h,
	}
	columns := w / tileW
	if columns == 0 {
		return nil, fmt.Errorf("%w: tile width %d exceeds canvas width %d", ErrMalformed, tileW, w)
	}

	for _, a := range anims {
		anim := sheet.Animation{
			Name:  a.name,
			First: len(s.Frames),
			Last:  len(s.Frames) + a.length - 1,
		}

		for i := 0; i < a.length; i++ {
			tile := a.baseTile + i
			row, column := tile/columns, tile%columns

			duration := a.duration
			if i < len(a.multipliers) {
				duration = a.duration * a.multipliers[i] / 100
			}

			s.Frames = append(s.Frames, sheet.Frame{
				Name:     fmt.Sprintf("%s %d", name, tile),
				X:        column * tileW,
				Y:        sheet.FlipY(h, row*tileH, tileH),
				Width:    tileW,
				Height:   tileH,
				Duration: duration,
			})
		}

		s.Animations = append(s.Animations, anim)
	}

	if err := s.Validate(); err != nil {
		return nil, err
	}

	return s, nil
}

func parsePyxelAnimation(key string, value gjson.Result) (pyxelAnimation, error) {
	idx, err := strconv.Atoi(key)
	if err != nil {
		return pyxelAnimation{}, fmt.Errorf("%w: animation key %q", ErrMalformed, key)
	}

	a := pyxelAnimation{
		key:  idx,
		name: value.Get("name").String(),
	}

	var okBase, okLen, okDur bool
	a.baseTile, okBase = intField(value, "baseTile")
	a.length, okLen = intField(value, "length")
	a.duration, okDur = intField(value, "frameDuration")
	if a.name == "" || !okBase || !okLen || !okDur || a.length <= 0 {
		return pyxelAnimation{}, fmt.Errorf("%w: animation %q", ErrMalformed, key)
	}

	for _, m := range value.Get("frameDurationMultipliers").Array() {
		a.multipliers = append(a.multipliers, int(m.Int()))
	}

	return a, nil
}
