package sheet

import (
	"errors"
	"testing"
)

func testSheet() *Sheet {
	return &Sheet{
		Name:   "hero",
		Width:  64,
		Height: 32,
		Frames: []Frame{
			{Name: "hero 0", Width: 16, Height: 16, Duration: 100},
			{Name: "hero 1", X: 16, Width: 16, Height: 16, Duration: 100},
			{Name: "hero 2", X: 32, Width: 16, Height: 16, Duration: 100},
		},
		Animations: []Animation{
			{Name: "idle", First: 0, Last: 1},
			{Name: "idle_long", First: 0, Last: 2},
			{Name: "run", First: 2, Last: 2},
		},
	}
}

func TestParseDirection(t *testing.T) {
	tests := []struct {
		in   string
		want Direction
	}{
		{"", Forward},
		{"forward", Forward},
		{"reverse", Reverse},
		{"pingpong", PingPong},
		{"pingpong_reverse", Forward},
	}

	for _, tt := range tests {
		if got := ParseDirection(tt.in); got != tt.want {
			t.Errorf("ParseDirection(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestMaxTextureSize(t *testing.T) {
	s := testSheet()
	if got := s.MaxTextureSize(); got != 64 {
		t.Errorf("MaxTextureSize() = %d, want 64", got)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(s *Sheet)
		wantErr error
	}{
		{
			name:   "valid",
			mutate: func(s *Sheet) {},
		},
		{
			name:    "last past end",
			mutate:  func(s *Sheet) { s.Animations[0].Last = 3 },
			wantErr: ErrFrameRange,
		},
		{
			name:    "negative first",
			mutate:  func(s *Sheet) { s.Animations[0].First = -1 },
			wantErr: ErrFrameRange,
		},
		{
			name:    "first after last",
			mutate:  func(s *Sheet) { s.Animations[1].First = 2; s.Animations[1].Last = 1 },
			wantErr: ErrFrameRange,
		},
		{
			name:    "zero width frame",
			mutate:  func(s *Sheet) { s.Frames[1].Width = 0 },
			wantErr: ErrDegenerateFrame,
		},
		{
			name:    "zero duration",
			mutate:  func(s *Sheet) { s.Frames[1].Duration = 0 },
			wantErr: ErrFrameDuration,
		},
		{
			name:    "negative duration",
			mutate:  func(s *Sheet) { s.Frames[2].Duration = -50 },
			wantErr: ErrFrameDuration,
		},
		{
			name:    "duplicate animation name",
			mutate:  func(s *Sheet) { s.Animations[2].Name = "idle" },
			wantErr: ErrDuplicateName,
		},
		{
			name:    "zero source size",
			mutate:  func(s *Sheet) { s.Frames[0].Trim = &Trim{SourceWidth: 0, SourceHeight: 16} },
			wantErr: ErrDegenerateFrame,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := testSheet()
			tt.mutate(s)

			err := s.Validate()
			if tt.wantErr == nil && err != nil {
				t.Fatalf("Validate() error = %v", err)
			}
			if tt.wantErr != nil && !errors.Is(err, tt.wantErr) {
				t.Fatalf("Validate() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestSimilar(t *testing.T) {
	s := testSheet()

	tests := []struct {
		query string
		want  string
		found bool
	}{
		{"idle", "idle", true},
		{"idleAlt", "idle", true},
		{"idle_long_2", "idle_long", true},
		{"jump", "", false},
	}

	for _, tt := range tests {
		got, ok := s.Similar(tt.query)
		if ok != tt.found || got.Name != tt.want {
			t.Errorf("Similar(%q) = %q, %v, want %q, %v", tt.query, got.Name, ok, tt.want, tt.found)
		}
	}
}

func TestFlipY(t *testing.T) {
	if got := FlipY(32, 0, 16); got != 16 {
		t.Errorf("FlipY(32, 0, 16) = %d, want 16", got)
	}
	if got := FlipY(32, 16, 16); got != 0 {
		t.Errorf("FlipY(32, 16, 16) = %d, want 0", got)
	}
}
