package store

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/alacrity-engine/core/geometry"
	codec "github.com/alacrity-engine/resource-codec"
	bolt "go.etcd.io/bbolt"
	"gopkg.in/yaml.v2"

	"github.com/alacrity-engine/anim-importer/internal/atlas"
	"github.com/alacrity-engine/anim-importer/internal/clip"
)

var (
	bucketAnimations = []byte("animations")
	bucketClips      = []byte("clips")
	bucketAtlases    = []byte("atlases")
	bucketTags       = []byte("tags")
)

var ErrNotFound = errors.New("not found in resource file")

// Store is a resource file holding imported sheets.
type Store struct {
	db *bolt.DB
}

// clipRecord is the YAML form of a stored clip.
type clipRecord struct {
	Sheet     string `yaml:"sheet"`
	clip.Clip `yaml:",inline"`
}

// Open opens or creates the resource file at path.
func Open(path string) (*Store, error) {
	db, err := bolt.Open(path, 0666, nil)
	if err != nil {
		return nil, fmt.Errorf("open resource file %s: %w", path, err)
	}

	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

func clipKey(sheetName, clipName string) []byte {
	return []byte(sheetName + "_" + clipName)
}

// SaveSheet writes the atlas and every clip of one sheet
// in a single transaction.
func (s *Store) SaveSheet(sheetName string, a *atlas.Atlas, clips []clip.Clip) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		animBucket, err := tx.CreateBucketIfNotExists(bucketAnimations)
		if err != nil {
			return err
		}

		clipBucket, err := tx.CreateBucketIfNotExists(bucketClips)
		if err != nil {
			return err
		}

		names := make([]string, 0, len(clips))

		for _, c := range clips {
			anim, err := animationData(sheetName, a, c)
			if err != nil {
				return fmt.Errorf("clip %s: %w", c.Name, err)
			}

			data, err := anim.ToBytes()
			if err != nil {
				return fmt.Errorf("encode clip %s: %w", c.Name, err)
			}

			if err := animBucket.Put(clipKey(sheetName, c.Name), data); err != nil {
				return err
			}

			record, err := yaml.Marshal(clipRecord{Sheet: sheetName, Clip: c})
			if err != nil {
				return err
			}

			if err := clipBucket.Put(clipKey(sheetName, c.Name), record); err != nil {
				return err
			}

			names = append(names, c.Name)
		}

		atlasBucket, err := tx.CreateBucketIfNotExists(bucketAtlases)
		if err != nil {
			return err
		}

		atlasData, err := yaml.Marshal(a)
		if err != nil {
			return err
		}

		if err := atlasBucket.Put([]byte(sheetName), atlasData); err != nil {
			return err
		}

		tagBucket, err := tx.CreateBucketIfNotExists(bucketTags)
		if err != nil {
			return err
		}

		tagData, err := codec.EncodeTag(names)
		if err != nil {
			return err
		}

		return tagBucket.Put([]byte(sheetName), tagData)
	})
}

// animationData lays out the played frames of c for the engine. The
// trailing hold keyframe only exists for clip players, so it is dropped.
func animationData(sheetName string, a *atlas.Atlas, c clip.Clip) (*codec.AnimationData, error) {
	played := len(c.Sprites) - 1
	if played < 1 {
		return nil, fmt.Errorf("clip has no played frames")
	}

	anim := &codec.AnimationData{
		TextureID: sheetName,
		Frames:    make([]geometry.Rect, 0, played),
		Durations: make([]int32, 0, played),
	}

	for i := 0; i < played; i++ {
		sp := a.Sprites[c.Sprites[i]]

		anim.Frames = append(anim.Frames, geometry.R(
			float64(sp.X), float64(sp.Y),
			float64(sp.X+sp.Width), float64(sp.Y+sp.Height)))
		anim.Durations = append(anim.Durations, int32(c.Durations[i]))
	}

	return anim, nil
}

// Clip reads back one stored clip.
func (s *Store) Clip(sheetName, clipName string) (clip.Clip, error) {
	var record clipRecord

	err := s.db.View(func(tx *bolt.Tx) error {
		buck := tx.Bucket(bucketClips)
		if buck == nil {
			return fmt.Errorf("%w: clip %s", ErrNotFound, clipName)
		}

		data := buck.Get(clipKey(sheetName, clipName))
		if data == nil {
			return fmt.Errorf("%w: clip %s", ErrNotFound, clipName)
		}

		return yaml.Unmarshal(data, &record)
	})
	if err != nil {
		return clip.Clip{}, err
	}

	return record.Clip, nil
}

// Atlas reads back the atlas of a sheet.
func (s *Store) Atlas(sheetName string) (*atlas.Atlas, error) {
	var a atlas.Atlas

	err := s.db.View(func(tx *bolt.Tx) error {
		buck := tx.Bucket(bucketAtlases)
		if buck == nil {
			return fmt.Errorf("%w: atlas %s", ErrNotFound, sheetName)
		}

		data := buck.Get([]byte(sheetName))
		if data == nil {
			return fmt.Errorf("%w: atlas %s", ErrNotFound, sheetName)
		}

		return yaml.Unmarshal(data, &a)
	})
	if err != nil {
		return nil, err
	}

	return &a, nil
}

// PreviousLoops returns the loop flag of every clip stored
// for the sheet, so a reimport keeps hand-edited settings.
func (s *Store) PreviousLoops(sheetName string) (map[string]bool, error) {
	loops := map[string]bool{}
	prefix := []byte(sheetName + "_")

	err := s.db.View(func(tx *bolt.Tx) error {
		buck := tx.Bucket(bucketClips)
		if buck == nil {
			return nil
		}

		c := buck.Cursor()
		for k, v := c.Seek(prefix); k != nil && bytes.HasPrefix(k, prefix); k, v = c.Next() {
			var record clipRecord
			if err := yaml.Unmarshal(v, &record); err != nil {
				return fmt.Errorf("decode clip %s: %w", k, err)
			}

			// "hero_big_idle" also starts with "hero_".
			if record.Sheet != sheetName {
				continue
			}

			loops[record.Name] = record.Loop
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return loops, nil
}

// SetLoop changes the loop flag of a stored clip.
func (s *Store) SetLoop(sheetName, clipName string, looping bool) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		buck := tx.Bucket(bucketClips)
		if buck == nil {
			return fmt.Errorf("%w: clip %s", ErrNotFound, clipName)
		}

		key := clipKey(sheetName, clipName)
		data := buck.Get(key)
		if data == nil {
			return fmt.Errorf("%w: clip %s", ErrNotFound, clipName)
		}

		var record clipRecord
		if err := yaml.Unmarshal(data, &record); err != nil {
			return err
		}

		record.Loop = looping

		updated, err := yaml.Marshal(record)
		if err != nil {
			return err
		}

		return buck.Put(key, updated)
	})
}
