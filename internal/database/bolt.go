package database

import (
	"bytes"
	"encoding/binary"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	bolt "go.etcd.io/bbolt"

	"github.com/streamflix/streamflix/internal/models"
)

const (
	progressFileMode = 0600
	progressBucket   = "progress"
)

// BoltProgressStore implements ProgressStore using bbolt.
// Records are keyed by user id (big-endian) + item id so a user's records
// occupy one contiguous key range.
type BoltProgressStore struct {
	db *bolt.DB
}

// NewBoltProgress opens (creating if needed) the progress database at dbPath.
func NewBoltProgress(dbPath string) (*BoltProgressStore, error) {
	if dir := filepath.Dir(dbPath); dir != "." {
		if err := os.MkdirAll(dir, dbDirMode); err != nil {
			return nil, fmt.Errorf("failed to create progress directory: %w", err)
		}
	}

	db, err := bolt.Open(dbPath, progressFileMode, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("failed to open progress database: %w", err)
	}

	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(progressBucket))
		return err
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create progress bucket: %w", err)
	}

	return &BoltProgressStore{db: db}, nil
}

// Close closes the store.
func (s *BoltProgressStore) Close() error {
	return s.db.Close()
}

// SaveProgress upserts one progress record, keyed by (user, item).
func (s *BoltProgressStore) SaveProgress(p *models.WatchProgress) error {
	p.UpdatedAt = time.Now()

	data, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("failed to encode progress: %w", err)
	}

	err = s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket([]byte(progressBucket)).Put(progressKey(p.UserID, p.ItemID), data)
	})
	if err != nil {
		return fmt.Errorf("failed to store progress: %w", err)
	}
	return nil
}

// ListProgress returns all records for a user, newest first.
func (s *BoltProgressStore) ListProgress(userID uint) ([]models.WatchProgress, error) {
	var records []models.WatchProgress
	prefix := userPrefix(userID)

	err := s.db.View(func(tx *bolt.Tx) error {
		c := tx.Bucket([]byte(progressBucket)).Cursor()
		for k, v := c.Seek(prefix); k != nil && bytes.HasPrefix(k, prefix); k, v = c.Next() {
			var p models.WatchProgress
			if err := json.Unmarshal(v, &p); err != nil {
				return fmt.Errorf("corrupt progress record %q: %w", k, err)
			}
			records = append(records, p)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list progress: %w", err)
	}

	sort.Slice(records, func(i, j int) bool {
		return records[i].UpdatedAt.After(records[j].UpdatedAt)
	})
	return records, nil
}

// DeleteProgress removes a record; deleting an absent record is a no-op.
func (s *BoltProgressStore) DeleteProgress(userID uint, itemID string) error {
	err := s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket([]byte(progressBucket)).Delete(progressKey(userID, itemID))
	})
	if err != nil {
		return fmt.Errorf("failed to delete progress: %w", err)
	}
	return nil
}

func progressKey(userID uint, itemID string) []byte {
	return append(userPrefix(userID), []byte(itemID)...)
}

func userPrefix(userID uint) []byte {
	key := make([]byte, 9)
	binary.BigEndian.PutUint64(key, uint64(userID))
	key[8] = '/'
	return key
}
