// Georec - Multi-Region Product Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/georec

package objectstore

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/dgraph-io/badger/v4"
)

// Key prefixes for BadgerDB storage
const (
	bucketKeyPrefix = "bkt:"
	objectKeyPrefix = "obj:"
)

// BadgerStore implements Store on top of BadgerDB.
type BadgerStore struct {
	db *badger.DB
}

// NewBadgerStore creates a BadgerDB-backed object store.
// The caller owns db and is responsible for closing it.
func NewBadgerStore(db *badger.DB) *BadgerStore {
	return &BadgerStore{db: db}
}

// OpenBadger opens a BadgerDB instance at path, or an in-memory instance when
// inMemory is set.
func OpenBadger(path string, inMemory bool) (*badger.DB, error) {
	opts := badger.DefaultOptions(path).WithLogger(nil)
	if inMemory {
		opts = badger.DefaultOptions("").WithInMemory(true).WithLogger(nil)
	}
	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open badger at %q: %w", path, err)
	}
	return db, nil
}

// Get returns the object contents.
func (s *BadgerStore) Get(ctx context.Context, bucket, key string) ([]byte, error) {
	if err := validateNames(bucket, key); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var data []byte
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(objectKey(bucket, key))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return ErrObjectNotFound
		}
		if err != nil {
			return fmt.Errorf("get object: %w", err)
		}
		data, err = item.ValueCopy(nil)
		return err
	})
	if err != nil {
		return nil, err
	}
	return data, nil
}

// Put writes an object and marks its bucket as existing.
func (s *BadgerStore) Put(ctx context.Context, bucket, key string, data []byte) error {
	if err := validateNames(bucket, key); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	return s.db.Update(func(txn *badger.Txn) error {
		if err := txn.Set(bucketKey(bucket), nil); err != nil {
			return fmt.Errorf("set bucket marker: %w", err)
		}
		if err := txn.Set(objectKey(bucket, key), data); err != nil {
			return fmt.Errorf("set object: %w", err)
		}
		return nil
	})
}

// BucketExists reports whether the bucket marker is present.
func (s *BadgerStore) BucketExists(ctx context.Context, bucket string) (bool, error) {
	if err := validateNames(bucket, "-"); err != nil {
		return false, err
	}
	if err := ctx.Err(); err != nil {
		return false, err
	}

	exists := false
	err := s.db.View(func(txn *badger.Txn) error {
		_, err := txn.Get(bucketKey(bucket))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("get bucket marker: %w", err)
		}
		exists = true
		return nil
	})
	return exists, err
}

// CreateBucket writes the bucket marker.
func (s *BadgerStore) CreateBucket(ctx context.Context, bucket string) error {
	if err := validateNames(bucket, "-"); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Set(bucketKey(bucket), nil)
	})
}

// List returns the objects in a bucket. Badger iterates keys in byte order, so
// results are sorted by key.
func (s *BadgerStore) List(ctx context.Context, bucket string) ([]ObjectInfo, error) {
	exists, err := s.BucketExists(ctx, bucket)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, ErrBucketNotFound
	}

	prefix := []byte(objectKeyPrefix + bucket + "/")
	var objects []ObjectInfo

	err = s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		opts.Prefix = prefix
		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Rewind(); it.Valid(); it.Next() {
			if err := ctx.Err(); err != nil {
				return err
			}
			item := it.Item()
			objects = append(objects, ObjectInfo{
				Bucket: bucket,
				Key:    strings.TrimPrefix(string(item.Key()), string(prefix)),
				Size:   item.ValueSize(),
			})
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return objects, nil
}

// Delete removes an object.
func (s *BadgerStore) Delete(ctx context.Context, bucket, key string) error {
	if err := validateNames(bucket, key); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	return s.db.Update(func(txn *badger.Txn) error {
		err := txn.Delete(objectKey(bucket, key))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil
		}
		return err
	})
}

func bucketKey(bucket string) []byte {
	return []byte(bucketKeyPrefix + bucket)
}

func objectKey(bucket, key string) []byte {
	return []byte(objectKeyPrefix + bucket + "/" + key)
}

// validateNames rejects empty names and bucket names containing the key separator.
func validateNames(bucket, key string) error {
	if bucket == "" || key == "" || strings.Contains(bucket, "/") {
		return fmt.Errorf("%w: bucket=%q key=%q", ErrInvalidName, bucket, key)
	}
	return nil
}
