package voucher

import (
	"encoding/json"
	"fmt"
	"time"

	"go.etcd.io/bbolt"
)

const (
	draftBucketName    = "drafts"
	settingsBucketName = "settings"
)

// DB defines the interface for database operations. The settings
// methods double as the renewal poller's local key-value storage.
type DB interface {
	// SaveDraft saves a draft record to the database
	SaveDraft(record *DraftRecord) error

	// GetDraft retrieves a draft record by ID
	GetDraft(id string) (*DraftRecord, error)

	// ListDrafts returns all draft records
	ListDrafts() ([]*DraftRecord, error)

	// DeleteDraft removes a draft record from the database
	DeleteDraft(id string) error

	// GetSetting reads a settings key; missing keys read as ""
	GetSetting(key string) (string, error)

	// PutSetting writes a settings key
	PutSetting(key, value string) error

	// DeleteSetting removes a settings key
	DeleteSetting(key string) error

	// Close closes the database connection
	Close() error
}

// BoltDB implements the DB interface using BoltDB
type BoltDB struct {
	db *bbolt.DB
}

// NewBoltDB creates a new BoltDB instance
func NewBoltDB(path string) (*BoltDB, error) {
	db, err := bbolt.Open(path, 0600, &bbolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("opening boltdb: %w", err)
	}

	// Create buckets if they don't exist
	err = db.Update(func(tx *bbolt.Tx) error {
		if _, err := tx.CreateBucketIfNotExists([]byte(draftBucketName)); err != nil {
			return err
		}
		if _, err := tx.CreateBucketIfNotExists([]byte(settingsBucketName)); err != nil {
			return err
		}
		return nil
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("creating buckets: %w", err)
	}

	return &BoltDB{db: db}, nil
}

// SaveDraft saves a draft record to the database
func (b *BoltDB) SaveDraft(record *DraftRecord) error {
	return b.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket([]byte(draftBucketName))
		data, err := json.Marshal(record)
		if err != nil {
			return fmt.Errorf("marshaling draft: %w", err)
		}
		return bucket.Put([]byte(record.ID), data)
	})
}

// GetDraft retrieves a draft record by ID
func (b *BoltDB) GetDraft(id string) (*DraftRecord, error) {
	var record *DraftRecord
	err := b.db.View(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket([]byte(draftBucketName))
		data := bucket.Get([]byte(id))
		if data == nil {
			return fmt.Errorf("draft not found: %s", id)
		}
		return json.Unmarshal(data, &record)
	})
	if err != nil {
		return nil, err
	}
	return record, nil
}

// ListDrafts returns all draft records
func (b *BoltDB) ListDrafts() ([]*DraftRecord, error) {
	records := make([]*DraftRecord, 0)
	err := b.db.View(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket([]byte(draftBucketName))
		return bucket.ForEach(func(k, v []byte) error {
			var record DraftRecord
			if err := json.Unmarshal(v, &record); err != nil {
				return fmt.Errorf("unmarshaling draft: %w", err)
			}
			records = append(records, &record)
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	return records, nil
}

// DeleteDraft removes a draft record from the database
func (b *BoltDB) DeleteDraft(id string) error {
	return b.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket([]byte(draftBucketName))
		return bucket.Delete([]byte(id))
	})
}

// GetSetting reads a settings key. A missing key is "" rather than an
// error; callers treat emptiness as absence.
func (b *BoltDB) GetSetting(key string) (string, error) {
	var value string
	err := b.db.View(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket([]byte(settingsBucketName))
		if data := bucket.Get([]byte(key)); data != nil {
			value = string(data)
		}
		return nil
	})
	if err != nil {
		return "", err
	}
	return value, nil
}

// PutSetting writes a settings key
func (b *BoltDB) PutSetting(key, value string) error {
	return b.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket([]byte(settingsBucketName))
		return bucket.Put([]byte(key), []byte(value))
	})
}

// DeleteSetting removes a settings key
func (b *BoltDB) DeleteSetting(key string) error {
	return b.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket([]byte(settingsBucketName))
		return bucket.Delete([]byte(key))
	})
}

// Close closes the database connection
func (b *BoltDB) Close() error {
	return b.db.Close()
}
