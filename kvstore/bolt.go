// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package kvstore

import (
	"time"

	"github.com/pkg/errors"
	"go.etcd.io/bbolt"
)

var epochBucket = []byte("epochs")

// BoltStore persists values in a single bbolt bucket.
type BoltStore struct {
	conn *bbolt.DB
}

// OpenBolt opens (or creates) the bbolt file at path.
func OpenBolt(path string) (*BoltStore, error) {
	// bbolt blocks forever on a file locked by another process without a timeout
	db, err := bbolt.Open(path, 0600, &bbolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, errors.Wrap(err, "failed to open bbolt db")
	}

	err = db.Update(func(tx *bbolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(epochBucket)
		return errors.Wrap(err, "failed to create epochs bucket")
	})
	if err != nil {
		db.Close()
		return nil, err
	}

	return &BoltStore{conn: db}, nil
}

// Get implements the Store interface.
func (b *BoltStore) Get(key string) ([]byte, error) {
	var val []byte
	err := b.conn.View(func(tx *bbolt.Tx) error {
		data := tx.Bucket(epochBucket).Get([]byte(key))
		if data == nil {
			return ErrNotFound
		}
		// data is only valid for the life of the transaction
		val = append([]byte(nil), data...)
		return nil
	})
	return val, err
}

// Set implements the Store interface.
func (b *BoltStore) Set(key string, val []byte) error {
	err := b.conn.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket(epochBucket).Put([]byte(key), val)
	})
	return errors.Wrapf(err, "failed to set %q", key)
}

// SetIfAbsent implements the Store interface. An existing value is read in a
// view transaction. Otherwise the check and the write share one update
// transaction, so concurrent writers in this process cannot both win.
func (b *BoltStore) SetIfAbsent(key string, val []byte) ([]byte, error) {
	existing, err := b.Get(key)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, ErrNotFound) {
		return nil, errors.Wrapf(err, "failed to read %q", key)
	}

	var stored []byte
	err = b.conn.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(epochBucket)
		if data := bucket.Get([]byte(key)); data != nil {
			stored = append([]byte(nil), data...)
			return nil
		}
		if err := bucket.Put([]byte(key), val); err != nil {
			return err
		}
		stored = append([]byte(nil), val...)
		return nil
	})
	if err != nil {
		return nil, errors.Wrapf(err, "failed to set %q", key)
	}
	return stored, nil
}

// Close closes the underlying bbolt file.
func (b *BoltStore) Close() error {
	return b.conn.Close()
}
