package loop

import (
	"reflect"
	"testing"
)

func TestLoops(t *testing.T) {
	tests := []struct {
		name     string
		patterns []string
		anim     string
		want     bool
	}{
		{"no patterns", nil, "death", true},
		{"blank pattern", []string{"  "}, "death", true},
		{"exact", []string{"death"}, "death", false},
		{"word inside name", []string{"death"}, "hero death", false},
		{"underscore joins words", []string{"death"}, "death_fast", true},
		{"substring only", []string{"die"}, "studied", true},
		{"one of many", []string{"death", "jump"}, "jump", false},
		{"regex fragment", []string{"attack\\d+"}, "attack2", false},
		{"regex fragment no match", []string{"attack\\d+"}, "attack", true},
		{"alternation stays bounded", []string{"hit|hurt"}, "hurting", true},
		{"alternation matches", []string{"hit|hurt"}, "hurt", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := New(tt.patterns)
			if err != nil {
				t.Fatalf("New() error = %v", err)
			}
			if got := c.Loops(tt.anim); got != tt.want {
				t.Errorf("Loops(%q) = %v, want %v", tt.anim, got, tt.want)
			}
		})
	}
}

func TestNewInvalidPattern(t *testing.T) {
	if _, err := New([]string{"death", "("}); err == nil {
		t.Error("New() expected error for invalid pattern")
	}
}

func TestClassifyIdempotent(t *testing.T) {
	names := []string{"idle", "run", "death", "jump_start"}
	patterns := []string{"death", "jump_start"}

	first, err := Classify(names, patterns)
	if err != nil {
		t.Fatal(err)
	}
	second, err := Classify(names, patterns)
	if err != nil {
		t.Fatal(err)
	}

	if !reflect.DeepEqual(first, second) {
		t.Errorf("Classify() not idempotent: %v vs %v", first, second)
	}

	want := map[string]bool{"idle": true, "run": true, "death": false, "jump_start": false}
	if !reflect.DeepEqual(first, want) {
		t.Errorf("Classify() = %v, want %v", first, want)
	}
}
