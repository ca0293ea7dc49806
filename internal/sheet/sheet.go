package sheet

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrFrameRange      = errors.New("animation frame range out of bounds")
	ErrDegenerateFrame = errors.New("frame has zero area")
	ErrFrameDuration   = errors.New("frame duration must be positive")
	ErrDuplicateName   = errors.New("duplicate animation name")
)

// Direction is the playback direction of an animation.
type Direction int

const (
	Forward Direction = iota
	Reverse
	PingPong
)

// ParseDirection maps the direction string of an Aseprite
// frame tag. Anything unrecognized plays forward.
func ParseDirection(s string) Direction {
	switch s {
	case "reverse":
		return Reverse
	case "pingpong":
		return PingPong
	default:
		return Forward
	}
}

func (d Direction) String() string {
	switch d {
	case Reverse:
		return "reverse"
	case PingPong:
		return "pingpong"
	default:
		return "forward"
	}
}

// Trim describes where a trimmed frame sat in its
// original canvas. X and Y use a bottom-left origin.
type Trim struct {
	X            int
	Y            int
	SourceWidth  int
	SourceHeight int
}

// Frame is a single packed sub-image.
type Frame struct {
	Name     string
	X        int
	Y        int
	Width    int
	Height   int
	Duration int // milliseconds
	Trim     *Trim
}

// Animation is a named contiguous range of frames.
type Animation struct {
	Name      string
	First     int
	Last      int
	Direction Direction
	Loop      bool
}

// FrameCount returns the number of frames in the range.
func (a Animation) FrameCount() int {
	return a.Last - a.First + 1
}

func (a Animation) String() string {
	return fmt.Sprintf("%s (%d-%d)", a.Name, a.First, a.Last)
}

// CheckRange reports whether the animation range fits into n frames.
func (a Animation) CheckRange(n int) error {
	if a.First < 0 || a.First > a.Last || a.Last >= n {
		return fmt.Errorf("%w: %s with %d frames", ErrFrameRange, a, n)
	}

	return nil
}

// Sheet is everything parsed from one source file.
type Sheet struct {
	Name       string
	Width      int
	Height     int
	Frames     []Frame
	Animations []Animation
}

// MaxTextureSize is the largest canvas dimension.
func (s *Sheet) MaxTextureSize() int {
	return max(s.Width, s.Height)
}

// HasAnimations reports whether any tag was found.
func (s *Sheet) HasAnimations() bool {
	return len(s.Animations) > 0
}

// Validate checks every frame size and duration, every animation
// range, and that animation names are unique.
func (s *Sheet) Validate() error {
	for i, f := range s.Frames {
		if f.Width <= 0 || f.Height <= 0 {
			return fmt.Errorf("%w: frame %d (%q) is %dx%d",
				ErrDegenerateFrame, i, f.Name, f.Width, f.Height)
		}

		if f.Trim != nil && (f.Trim.SourceWidth <= 0 || f.Trim.SourceHeight <= 0) {
			return fmt.Errorf("%w: frame %d (%q) has source size %dx%d",
				ErrDegenerateFrame, i, f.Name, f.Trim.SourceWidth, f.Trim.SourceHeight)
		}

		if f.Duration <= 0 {
			return fmt.Errorf("%w: frame %d (%q) lasts %dms",
				ErrFrameDuration, i, f.Name, f.Duration)
		}
	}

	seen := make(map[string]bool, len(s.Animations))
	for _, anim := range s.Animations {
		if err := anim.CheckRange(len(s.Frames)); err != nil {
			return err
		}

		if seen[anim.Name] {
			return fmt.Errorf("%w: %q", ErrDuplicateName, anim.Name)
		}
		seen[anim.Name] = true
	}

	return nil
}

// Animation looks up an animation by its exact name.
func (s *Sheet) Animation(name string) (Animation, bool) {
	for _, anim := range s.Animations {
		if anim.Name == name {
			return anim, true
		}
	}

	return Animation{}, false
}

// Similar returns the animation called name or, failing that, the
// animation with the longest name contained in it, so "idleAlt"
// resolves to "idle".
func (s *Sheet) Similar(name string) (Animation, bool) {
	if anim, ok := s.Animation(name); ok {
		return anim, true
	}

	var (
		best  Animation
		found bool
	)

	for _, anim := range s.Animations {
		if anim.Name == "" || !strings.Contains(name, anim.Name) {
			continue
		}

		if !found || len(anim.Name) > len(best.Name) {
			best = anim
			found = true
		}
	}

	return best, found
}

// FlipY converts a top-left y coordinate into the bottom-left
// origin used by the target engine.
func FlipY(canvasHeight, y, height int) int {
	return canvasHeight - y - height
}
