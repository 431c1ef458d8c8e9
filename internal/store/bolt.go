package store

import (
	"encoding/json"
	"time"

	"go.etcd.io/bbolt"

	"github.com/inovacc/kollect/internal/kinto"
)

// records are stored one nested bucket per collection:
// collections/<bucket/collection>/<id> -> Record JSON
const boltBucketCollections = "collections"

// Bolt is the bbolt-backed store.
type Bolt struct {
	storage *bbolt.DB
}

// NewBolt creates or opens a bolt database at the specified path.
func NewBolt(path string) (*Bolt, error) {
	instance, err := bbolt.Open(path, 0600, &bbolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, err
	}

	if err := instance.Update(func(tx *bbolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(boltBucketCollections))

		return err
	}); err != nil {
		_ = instance.Close()

		return nil, err
	}

	return &Bolt{storage: instance}, nil
}

// Ping verifies the database is usable.
func (b *Bolt) Ping() error {
	return b.storage.View(func(tx *bbolt.Tx) error {
		return nil
	})
}

// Close closes the database.
func (b *Bolt) Close() error {
	return b.storage.Close()
}

func (b *Bolt) SaveRecord(collection string, rec kinto.Record) error {
	return b.storage.Update(func(tx *bbolt.Tx) error {
		coll, err := tx.Bucket([]byte(boltBucketCollections)).CreateBucketIfNotExists([]byte(collection))
		if err != nil {
			return err
		}

		data, err := json.Marshal(rec)
		if err != nil {
			return err
		}

		return coll.Put([]byte(rec.ID), data)
	})
}

func (b *Bolt) GetRecord(collection, id string) (kinto.Record, error) {
	var rec kinto.Record

	err := b.storage.View(func(tx *bbolt.Tx) error {
		coll := tx.Bucket([]byte(boltBucketCollections)).Bucket([]byte(collection))
		if coll == nil {
			return ErrNotFound
		}

		data := coll.Get([]byte(id))
		if data == nil {
			return ErrNotFound
		}

		return json.Unmarshal(data, &rec)
	})

	return rec, err
}

func (b *Bolt) DeleteRecord(collection, id string) (kinto.Record, error) {
	var rec kinto.Record

	err := b.storage.Update(func(tx *bbolt.Tx) error {
		coll := tx.Bucket([]byte(boltBucketCollections)).Bucket([]byte(collection))
		if coll == nil {
			return ErrNotFound
		}

		data := coll.Get([]byte(id))
		if data == nil {
			return ErrNotFound
		}

		if err := json.Unmarshal(data, &rec); err != nil {
			return err
		}

		return coll.Delete([]byte(id))
	})

	return rec, err
}

func (b *Bolt) ListRecords(collection string) ([]kinto.Record, error) {
	records := make([]kinto.Record, 0)

	err := b.storage.View(func(tx *bbolt.Tx) error {
		coll := tx.Bucket([]byte(boltBucketCollections)).Bucket([]byte(collection))
		if coll == nil {
			return nil
		}

		return coll.ForEach(func(_, data []byte) error {
			var rec kinto.Record
			if err := json.Unmarshal(data, &rec); err != nil {
				return err
			}

			records = append(records, rec)

			return nil
		})
	})

	return records, err
}
