// Package bolt persists a compiled rule store to a bbolt database so the
// daemon can warm-start without re-parsing list text.
package bolt

import (
	"encoding/binary"
	"time"

	bbolt "go.etcd.io/bbolt"

	"github.com/haukened/hostparts/internal/psl/domain"
)

var (
	bucketNormal    = []byte("normal")
	bucketWildcard  = []byte("wildcard")
	bucketException = []byte("exception")
	bucketMeta      = []byte("meta")

	keyCount   = []byte("count")
	keySavedAt = []byte("saved_at")
)

// value encoding: one byte, 1 for public rules, 0 for private.
const (
	flagPrivate byte = 0
	flagPublic  byte = 1
)

// Snapshot reads and writes compiled rule sets at a fixed database path.
type Snapshot struct {
	db *bbolt.DB
}

// Open opens (or creates) the snapshot database at path and ensures the
// buckets exist.
func Open(path string) (*Snapshot, error) {
	db, err := bbolt.Open(path, 0o600, &bbolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, err
	}
	if err := db.Update(func(tx *bbolt.Tx) error {
		for _, name := range [][]byte{bucketNormal, bucketWildcard, bucketException, bucketMeta} {
			if _, err := tx.CreateBucketIfNotExists(name); err != nil {
				return err
			}
		}
		return nil
	}); err != nil {
		_ = db.Close()
		return nil, err
	}
	return &Snapshot{db: db}, nil
}

func (s *Snapshot) Close() error { return s.db.Close() }

// Save replaces the stored snapshot with the contents of store.
func (s *Snapshot) Save(store domain.RuleStore, savedAt time.Time) error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		// Drop and recreate so removed rules do not linger.
		for _, name := range [][]byte{bucketNormal, bucketWildcard, bucketException} {
			if err := tx.DeleteBucket(name); err != nil {
				return err
			}
			if _, err := tx.CreateBucket(name); err != nil {
				return err
			}
		}

		var walkErr error
		store.Walk(func(kind domain.RuleKind, r domain.Rule) {
			if walkErr != nil {
				return
			}
			var b *bbolt.Bucket
			switch kind {
			case domain.RuleWildcard:
				b = tx.Bucket(bucketWildcard)
			case domain.RuleException:
				b = tx.Bucket(bucketException)
			default:
				b = tx.Bucket(bucketNormal)
			}
			walkErr = b.Put([]byte(r.Pattern), []byte{publicFlag(r.Public)})
		})
		if walkErr != nil {
			return walkErr
		}

		meta := tx.Bucket(bucketMeta)
		if err := meta.Put(keyCount, encodeUint64(uint64(store.Len()))); err != nil {
			return err
		}
		return meta.Put(keySavedAt, encodeUint64(uint64(savedAt.Unix())))
	})
}

// Load rebuilds a RuleStore from the stored snapshot. The second return is
// false when the database holds no snapshot.
func (s *Snapshot) Load() (domain.RuleStore, bool, error) {
	builder := domain.NewStoreBuilder()
	err := s.db.View(func(tx *bbolt.Tx) error {
		if b := tx.Bucket(bucketNormal); b != nil {
			if err := b.ForEach(func(k, v []byte) error {
				builder.Add(string(k), isPublic(v))
				return nil
			}); err != nil {
				return err
			}
		}
		if b := tx.Bucket(bucketWildcard); b != nil {
			if err := b.ForEach(func(k, v []byte) error {
				builder.Add("*."+string(k), isPublic(v))
				return nil
			}); err != nil {
				return err
			}
		}
		if b := tx.Bucket(bucketException); b != nil {
			if err := b.ForEach(func(k, v []byte) error {
				builder.Add("!"+string(k), isPublic(v))
				return nil
			}); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return domain.RuleStore{}, false, err
	}
	if builder.Len() == 0 {
		return domain.RuleStore{}, false, nil
	}
	return builder.Build(), true, nil
}

// Stats describes the stored snapshot.
type Stats struct {
	RuleCount   uint64
	SavedAtUnix int64
}

// Stats reports the stored rule count and save timestamp from the meta bucket.
func (s *Snapshot) Stats() Stats {
	var st Stats
	_ = s.db.View(func(tx *bbolt.Tx) error {
		b := tx.Bucket(bucketMeta)
		if b == nil {
			return nil
		}
		if v := b.Get(keyCount); len(v) == 8 {
			st.RuleCount = binary.BigEndian.Uint64(v)
		}
		if v := b.Get(keySavedAt); len(v) == 8 {
			st.SavedAtUnix = int64(binary.BigEndian.Uint64(v))
		}
		return nil
	})
	return st
}

func publicFlag(public bool) byte {
	if public {
		return flagPublic
	}
	return flagPrivate
}

func isPublic(v []byte) bool {
	return len(v) == 1 && v[0] == flagPublic
}

func encodeUint64(n uint64) []byte {
	buf := make([]byte, 8)
	binary.BigEndian.PutUint64(buf, n)
	return buf
}
