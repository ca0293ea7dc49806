package importer

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/alacrity-engine/anim-importer/internal/sheet"
)

var (
	ErrUnsupported      = errors.New("unsupported source format")
	ErrInvalidDocument  = errors.New("document is not valid JSON")
	ErrMissingMeta      = errors.New("no 'meta' object")
	ErrMissingSize      = errors.New("no 'meta.size' object")
	ErrMissingFrameTags = errors.New("no 'meta.frameTags' array")
	ErrMissingFrames    = errors.New("no 'frames' collection")
	ErrMalformed        = errors.New("malformed entry")
)

// Importer turns the bytes of one source file into a sheet.
type Importer interface {
	Import(name string, data []byte) (*sheet.Sheet, error)
}

var importers = map[string]Importer{
	"json":  Aseprite{},
	"pyxel": PyxelEdit{},
}

// For picks the importer handling the extension of path.
func For(path string) (Importer, error) {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(path), "."))

	// Native Aseprite files are binary; only their data export is read.
	if ext == "ase" || ext == "aseprite" {
		return nil, fmt.Errorf("%w: %q, export it with `aseprite -b --data <file>.json --list-tags` first",
			ErrUnsupported, ext)
	}

	imp, ok := importers[ext]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnsupported, ext)
	}

	return imp, nil
}

// Extensions lists every supported file extension.
func Extensions() []string {
	exts := make([]string, 0, len(importers))
	for ext := range importers {
		exts = append(exts, ext)
	}

	return exts
}
