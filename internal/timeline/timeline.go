package timeline

import (
	"errors"
	"fmt"

	"github.com/alacrity-engine/anim-importer/internal/sheet"
)

var ErrFrameRate = errors.New("frame rate must be positive")

// Keyframe shows frame Frame starting at Time seconds.
type Keyframe struct {
	Time  float64
	Frame int
}

// Timeline is the keyframe list of one animation. The last
// keyframe repeats the final frame just before the clip ends
// so a fixed frame rate player holds it for its full duration.
type Timeline struct {
	Keyframes []Keyframe
	duration  float64
}

// Duration is the summed duration of every played frame.
func (tl Timeline) Duration() float64 {
	return tl.duration
}

func (tl Timeline) Times() []float64 {
	times := make([]float64, len(tl.Keyframes))
	for i, k := range tl.Keyframes {
		times[i] = k.Time
	}

	return times
}

func (tl Timeline) Frames() []int {
	frames := make([]int, len(tl.Keyframes))
	for i, k := range tl.Keyframes {
		frames[i] = k.Frame
	}

	return frames
}

// Sequence returns the frame indices in the order they are played.
// A ping-pong animation runs forward and then back through the
// interior frames, so it can be longer than the frame range.
func Sequence(anim sheet.Animation, frames []sheet.Frame) ([]int, error) {
	if err := anim.CheckRange(len(frames)); err != nil {
		return nil, err
	}

	n := anim.FrameCount()
	seq := make([]int, 0, 2*n)

	switch anim.Direction {
	case sheet.Reverse:
		for i := anim.Last; i >= anim.First; i-- {
			seq = append(seq, i)
		}

	case sheet.PingPong:
		for i := anim.First; i <= anim.Last; i++ {
			seq = append(seq, i)
		}
		for i := anim.Last - 1; i > anim.First; i-- {
			seq = append(seq, i)
		}

	default:
		for i := anim.First; i <= anim.Last; i++ {
			seq = append(seq, i)
		}
	}

	return seq, nil
}

// Build derives the keyframes of anim at the given player frame rate.
func Build(anim sheet.Animation, frames []sheet.Frame, frameRate float64) (Timeline, error) {
	if frameRate <= 0 {
		return Timeline{}, fmt.Errorf("%w: %v", ErrFrameRate, frameRate)
	}

	seq, err := Sequence(anim, frames)
	if err != nil {
		return Timeline{}, err
	}

	keyframes := make([]Keyframe, 0, len(seq)+1)
	elapsed := 0.0

	for _, idx := range seq {
		keyframes = append(keyframes, Keyframe{Time: elapsed, Frame: idx})
		elapsed += float64(frames[idx].Duration) / 1000
	}

	keyframes = append(keyframes, Keyframe{
		Time:  elapsed - 1/frameRate,
		Frame: seq[len(seq)-1],
	})

	return Timeline{
		Keyframes: keyframes,
		duration:  elapsed,
	}, nil
}
