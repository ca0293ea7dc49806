package atlas

import (
	"errors"
	"fmt"

	"github.com/alacrity-engine/anim-importer/internal/sheet"
)

var (
	ErrUnknownAlignment = errors.New("unknown sprite alignment")
	ErrUnknownPivotMode = errors.New("unknown pivot mode")
)

// Alignment is the anchor of a sprite inside its rect.
type Alignment int

const (
	Center Alignment = iota
	TopLeft
	TopCenter
	TopRight
	LeftCenter
	RightCenter
	BottomLeft
	BottomCenter
	BottomRight
	Custom
)

var alignmentNames = map[string]Alignment{
	"center":        Center,
	"top_left":      TopLeft,
	"top_center":    TopCenter,
	"top_right":     TopRight,
	"left_center":   LeftCenter,
	"right_center":  RightCenter,
	"bottom_left":   BottomLeft,
	"bottom_center": BottomCenter,
	"bottom_right":  BottomRight,
	"custom":        Custom,
}

// Normalized pivots of the standard alignments, origin bottom-left.
var alignmentPivots = map[Alignment]Point{
	Center:       {0.5, 0.5},
	TopLeft:      {0, 1},
	TopCenter:    {0.5, 1},
	TopRight:     {1, 1},
	LeftCenter:   {0, 0.5},
	RightCenter:  {1, 0.5},
	BottomLeft:   {0, 0},
	BottomCenter: {0.5, 0},
	BottomRight:  {1, 0},
}

func ParseAlignment(s string) (Alignment, error) {
	a, ok := alignmentNames[s]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrUnknownAlignment, s)
	}

	return a, nil
}

func (a Alignment) String() string {
	for name, v := range alignmentNames {
		if v == a {
			return name
		}
	}

	return fmt.Sprintf("Alignment(%d)", int(a))
}

// PivotMode says how a custom pivot offset is interpreted.
type PivotMode int

const (
	// Normalized offsets are fractions of the sprite size.
	Normalized PivotMode = iota
	// Pixels offsets are measured from the bottom-left corner.
	Pixels
)

func ParsePivotMode(s string) (PivotMode, error) {
	switch s {
	case "normalized":
		return Normalized, nil
	case "pixels":
		return Pixels, nil
	}

	return 0, fmt.Errorf("%w: %q", ErrUnknownPivotMode, s)
}

// Point is a normalized or pixel position.
type Point struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
}

// basePivot resolves the alignment against a box of w by h pixels.
func basePivot(s Settings, w, h int) (Point, error) {
	if w <= 0 || h <= 0 {
		return Point{}, fmt.Errorf("%w: pivot box %dx%d", sheet.ErrDegenerateFrame, w, h)
	}

	if s.Alignment != Custom {
		p, ok := alignmentPivots[s.Alignment]
		if !ok {
			return Point{}, fmt.Errorf("%w: %d", ErrUnknownAlignment, int(s.Alignment))
		}

		return p, nil
	}

	switch s.PivotMode {
	case Normalized:
		return s.CustomPivot, nil
	case Pixels:
		return Point{
			X: s.CustomPivot.X / float64(w),
			Y: s.CustomPivot.Y / float64(h),
		}, nil
	}

	return Point{}, fmt.Errorf("%w: %d", ErrUnknownPivotMode, int(s.PivotMode))
}

// ComputePivot returns the normalized pivot of f. A trimmed frame gets
// the pivot its untrimmed source canvas would have, re-expressed inside
// the trimmed rect, so differently trimmed frames stay aligned.
func ComputePivot(s Settings, f sheet.Frame) (Point, error) {
	if f.Width <= 0 || f.Height <= 0 {
		return Point{}, fmt.Errorf("%w: frame %q is %dx%d",
			sheet.ErrDegenerateFrame, f.Name, f.Width, f.Height)
	}

	if f.Trim == nil {
		return basePivot(s, f.Width, f.Height)
	}

	sw, sh := float64(f.Trim.SourceWidth), float64(f.Trim.SourceHeight)

	full, err := basePivot(s, f.Trim.SourceWidth, f.Trim.SourceHeight)
	if err != nil {
		return Point{}, err
	}

	return Point{
		X: (full.X - float64(f.Trim.X)/sw) * sw / float64(f.Width),
		Y: (full.Y - float64(f.Trim.Y)/sh) * sh / float64(f.Height),
	}, nil
}
