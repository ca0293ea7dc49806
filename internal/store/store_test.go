package store

import (
	"errors"
	"path/filepath"
	"reflect"
	"testing"

	bolt "go.etcd.io/bbolt"

	"github.com/alacrity-engine/anim-importer/internal/atlas"
	"github.com/alacrity-engine/anim-importer/internal/clip"
	"github.com/alacrity-engine/anim-importer/internal/sheet"
)

func openTemp(t *testing.T) *Store {
	t.Helper()

	s, err := Open(filepath.Join(t.TempDir(), "stage.res"))
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { s.Close() })

	return s
}

func build(t *testing.T, name string) (*atlas.Atlas, []clip.Clip) {
	t.Helper()

	sh := &sheet.Sheet{
		Name:   name,
		Width:  32,
		Height: 16,
		Frames: []sheet.Frame{
			{X: 0, Width: 16, Height: 16, Duration: 100},
			{X: 16, Width: 16, Height: 16, Duration: 120},
		},
		Animations: []sheet.Animation{
			{Name: "idle", First: 0, Last: 1},
			{Name: "death", First: 1, Last: 1},
		},
	}

	a, err := atlas.Build(sh, atlas.Settings{Alignment: atlas.BottomCenter})
	if err != nil {
		t.Fatal(err)
	}

	clips, err := clip.Assemble(sh, a, clip.Settings{FrameRate: 60, NonLooping: []string{"death"}})
	if err != nil {
		t.Fatal(err)
	}

	return a, clips
}

func TestSaveSheet(t *testing.T) {
	s := openTemp(t)
	a, clips := build(t, "hero")

	if err := s.SaveSheet("hero", a, clips); err != nil {
		t.Fatal(err)
	}

	got, err := s.Clip("hero", "idle")
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(got, clips[0]) {
		t.Errorf("Clip() = %+v, want %+v", got, clips[0])
	}

	storedAtlas, err := s.Atlas("hero")
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(storedAtlas, a) {
		t.Errorf("Atlas() = %+v, want %+v", storedAtlas, a)
	}

	err = s.db.View(func(tx *bolt.Tx) error {
		for _, b := range [][]byte{bucketAnimations, bucketTags} {
			buck := tx.Bucket(b)
			if buck == nil {
				t.Errorf("bucket %s missing", b)
				continue
			}
			if buck.Stats().KeyN == 0 {
				t.Errorf("bucket %s is empty", b)
			}
		}

		return nil
	})
	if err != nil {
		t.Fatal(err)
	}
}

func TestPreviousLoops(t *testing.T) {
	s := openTemp(t)

	loops, err := s.PreviousLoops("hero")
	if err != nil {
		t.Fatal(err)
	}
	if len(loops) != 0 {
		t.Errorf("PreviousLoops() on empty store = %v", loops)
	}

	a, clips := build(t, "hero")
	if err := s.SaveSheet("hero", a, clips); err != nil {
		t.Fatal(err)
	}

	other, otherClips := build(t, "hero_big")
	if err := s.SaveSheet("hero_big", other, otherClips); err != nil {
		t.Fatal(err)
	}
	if err := s.SetLoop("hero_big", "idle", false); err != nil {
		t.Fatal(err)
	}

	loops, err = s.PreviousLoops("hero")
	if err != nil {
		t.Fatal(err)
	}
	if want := map[string]bool{"idle": true, "death": false}; !reflect.DeepEqual(loops, want) {
		t.Errorf("PreviousLoops() = %v, want %v", loops, want)
	}
}

func TestNotFound(t *testing.T) {
	s := openTemp(t)

	if _, err := s.Clip("hero", "idle"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Clip() error = %v, want %v", err, ErrNotFound)
	}
	if _, err := s.Atlas("hero"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Atlas() error = %v, want %v", err, ErrNotFound)
	}
	if err := s.SetLoop("hero", "idle", true); !errors.Is(err, ErrNotFound) {
		t.Errorf("SetLoop() error = %v, want %v", err, ErrNotFound)
	}
}
