package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/alacrity-engine/anim-importer/internal/clip"
	"github.com/alacrity-engine/anim-importer/internal/store"
)

// parseLoopOverrides reads a comma separated list of
// name=bool pairs, e.g. "idle=true,death=false".
func parseLoopOverrides(s string) (map[string]bool, error) {
	overrides := map[string]bool{}
	if strings.TrimSpace(s) == "" {
		return overrides, nil
	}

	for _, pair := range strings.Split(s, ",") {
		name, value, ok := strings.Cut(strings.TrimSpace(pair), "=")
		name = strings.TrimSpace(name)
		if !ok || name == "" {
			return nil, fmt.Errorf("loop override %q: want name=bool", pair)
		}

		looping, err := strconv.ParseBool(strings.TrimSpace(value))
		if err != nil {
			return nil, fmt.Errorf("loop override %q: %w", pair, err)
		}

		overrides[name] = looping
	}

	return overrides, nil
}

// applyLoopOverrides stores the loop flags and mirrors
// them onto the assembled clips.
func applyLoopOverrides(resourceFile *store.Store, sheetName string, clips []clip.Clip, overrides map[string]bool) error {
	for name, looping := range overrides {
		if err := resourceFile.SetLoop(sheetName, name, looping); err != nil {
			return err
		}

		for i := range clips {
			if clips[i].Name == name {
				clips[i].Loop = looping
			}
		}
	}

	return nil
}
