package loop

import (
	"fmt"
	"regexp"
	"strings"
)

// Classifier decides which animations loop. Every configured entry is
// matched as a whole word, and may itself be a regular expression.
type Classifier struct {
	re *regexp.Regexp
}

// New builds a classifier from the names of animations that must not loop.
// Blank entries are ignored.
func New(nonLooping []string) (*Classifier, error) {
	var parts []string

	for _, p := range nonLooping {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}

		parts = append(parts, `\b(?:`+p+`)\b`)
	}

	if len(parts) == 0 {
		return &Classifier{}, nil
	}

	re, err := regexp.Compile(strings.Join(parts, "|"))
	if err != nil {
		return nil, fmt.Errorf("compile non-looping patterns: %w", err)
	}

	return &Classifier{re: re}, nil
}

// Loops reports whether the animation called name should loop.
func (c *Classifier) Loops(name string) bool {
	if c == nil || c.re == nil {
		return true
	}

	return !c.re.MatchString(name)
}

// Classify maps every name to its loop flag.
func Classify(names, nonLooping []string) (map[string]bool, error) {
	c, err := New(nonLooping)
	if err != nil {
		return nil, err
	}

	out := make(map[string]bool, len(names))
	for _, name := range names {
		out[name] = c.Loops(name)
	}

	return out, nil
}
