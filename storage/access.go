// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage

import (
	"sync"

	"github.com/syndtr/goleveldb/leveldb"
	"github.com/syndtr/goleveldb/leveldb/iterator"
	ldb_util "github.com/syndtr/goleveldb/leveldb/util"
)

// Access - the operations available on one database
type Access interface {
	Abort()
	Begin()
	Commit() error
	Delete([]byte)
	Get([]byte) ([]byte, error)
	GetCommitted([]byte) ([]byte, error)
	Has([]byte) (bool, error)
	HasCommitted([]byte) (bool, error)
	InUse() bool
	Iterator(*ldb_util.Range) iterator.Iterator
	Put([]byte, []byte)
}

// AccessData - a database together with its pending batch
//
// the batch is exclusive: Begin waits until any other user of the
// batch has called Commit or Abort
type AccessData struct {
	exclusive sync.Mutex

	sync.Mutex
	inUse  bool
	db     *leveldb.DB
	batch  *leveldb.Batch
	staged *staging
}

func newDA(db *leveldb.DB, batch *leveldb.Batch, staged *staging) Access {
	return &AccessData{
		inUse:  false,
		db:     db,
		batch:  batch,
		staged: staged,
	}
}

// Begin - take exclusive use of the batch
func (d *AccessData) Begin() {
	d.exclusive.Lock()

	d.Lock()
	d.inUse = true
	d.Unlock()
}

// Put - stage a write
func (d *AccessData) Put(key []byte, value []byte) {
	d.staged.put(key, value)
	d.batch.Put(key, value)
}

// Delete - stage a delete
func (d *AccessData) Delete(key []byte) {
	d.staged.remove(key)
	d.batch.Delete(key)
}

// Commit - write the batch and release it
func (d *AccessData) Commit() error {
	err := d.db.Write(d.batch, nil)
	d.release()
	return err
}

// Abort - discard the batch and release it
func (d *AccessData) Abort() {
	d.release()
}

func (d *AccessData) release() {
	d.Lock()
	wasInUse := d.inUse
	d.batch.Reset()
	d.staged.reset()
	d.inUse = false
	d.Unlock()

	if wasInUse {
		d.exclusive.Unlock()
	}
}

// Get - read a key, staged writes take precedence over the database
func (d *AccessData) Get(key []byte) ([]byte, error) {
	if entry, found := d.staged.lookup(key); found {
		if entry.deleted {
			return nil, leveldb.ErrNotFound
		}
		return entry.value, nil
	}
	return d.db.Get(key, nil)
}

// GetCommitted - read a key ignoring any staged writes
func (d *AccessData) GetCommitted(key []byte) ([]byte, error) {
	return d.db.Get(key, nil)
}

// Has - check a key, staged writes take precedence over the database
func (d *AccessData) Has(key []byte) (bool, error) {
	if entry, found := d.staged.lookup(key); found {
		return !entry.deleted, nil
	}
	return d.db.Has(key, nil)
}

// HasCommitted - check a key ignoring any staged writes
func (d *AccessData) HasCommitted(key []byte) (bool, error) {
	return d.db.Has(key, nil)
}

// InUse - true between Begin and Commit/Abort
func (d *AccessData) InUse() bool {
	d.Lock()
	defer d.Unlock()
	return d.inUse
}

// Iterator - iterate over committed data
func (d *AccessData) Iterator(searchRange *ldb_util.Range) iterator.Iterator {
	return d.db.NewIterator(searchRange, nil)
}
