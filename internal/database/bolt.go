package database

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/inovacc/upstream/internal/model"
	"go.etcd.io/bbolt"
)

const boltBucketSettings = "settings" // key: option name -> Record JSON

type Bolt struct {
	db *bbolt.DB
}

// NewBolt opens (creating if needed) a BoltDB settings store at path.
func NewBolt(path string) (*Bolt, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	db, err := bbolt.Open(path, 0600, &bbolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, err
	}

	if err := db.Update(func(tx *bbolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(boltBucketSettings))

		return err
	}); err != nil {
		_ = db.Close()

		return nil, err
	}

	return &Bolt{db: db}, nil
}

func (b *Bolt) Ping() error {
	return b.db.View(func(tx *bbolt.Tx) error {
		return nil
	})
}

func (b *Bolt) Load() (model.Record, error) {
	rec := model.Record{}

	err := b.db.View(func(tx *bbolt.Tx) error {
		v := tx.Bucket([]byte(boltBucketSettings)).Get([]byte(model.OptionName))
		if v == nil {
			return nil
		}

		return json.Unmarshal(v, &rec)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to load settings: %w", err)
	}

	return rec, nil
}

func (b *Bolt) Save(fragment model.Record) error {
	if fragment == nil {
		return errors.New("settings fragment is required")
	}

	return b.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket([]byte(boltBucketSettings))

		stored := model.Record{}

		if v := bucket.Get([]byte(model.OptionName)); v != nil {
			if err := json.Unmarshal(v, &stored); err != nil {
				return fmt.Errorf("failed to decode stored settings: %w", err)
			}
		}

		data, err := json.Marshal(stored.Merge(fragment))
		if err != nil {
			return err
		}

		return bucket.Put([]byte(model.OptionName), data)
	})
}

func (b *Bolt) Delete() error {
	return b.db.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket([]byte(boltBucketSettings)).Delete([]byte(model.OptionName))
	})
}

func (b *Bolt) Close() error {
	return b.db.Close()
}
