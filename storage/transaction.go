// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage

import (
	"github.com/pkg/errors"
	"github.com/syndtr/goleveldb/leveldb"

	"github.com/bitmark-inc/bulletind/fault"
	"github.com/bitmark-inc/logger"
)

// Transaction - staged writes against the pools of one database
//
// Begin blocks until the previous user has called Commit or Abort;
// nothing reaches the disk before Commit
type Transaction interface {
	Abort()
	Begin()
	Commit() error
	Delete(*PoolHandle, []byte)
	Get(*PoolHandle, []byte) []byte
	GetN(*PoolHandle, []byte) (uint64, bool)
	Has(*PoolHandle, []byte) bool
	InUse() bool
	Put(*PoolHandle, []byte, []byte)
	PutN(*PoolHandle, []byte, uint64)
}

type transactionData struct {
	access Access
}

func newTransaction(access Access) Transaction {
	return &transactionData{
		access: access,
	}
}

func (t *transactionData) Begin() {
	t.access.Begin()
}

func (t *transactionData) Put(p *PoolHandle, key []byte, value []byte) {
	t.mustBeInUse("Put")
	t.access.Put(p.prefixKey(key), value)
}

func (t *transactionData) PutN(p *PoolHandle, key []byte, value uint64) {
	t.Put(p, key, EncodeN(value))
}

func (t *transactionData) Delete(p *PoolHandle, key []byte) {
	t.mustBeInUse("Delete")
	t.access.Delete(p.prefixKey(key))
}

func (t *transactionData) Get(p *PoolHandle, key []byte) []byte {
	value, err := t.access.Get(p.prefixKey(key))
	if leveldb.ErrNotFound == err {
		return nil
	}
	logger.PanicIfError("transaction.Get", err)
	return value
}

func (t *transactionData) GetN(p *PoolHandle, key []byte) (uint64, bool) {
	return decodeN(key, t.Get(p, key))
}

func (t *transactionData) Has(p *PoolHandle, key []byte) bool {
	found, err := t.access.Has(p.prefixKey(key))
	logger.PanicIfError("transaction.Has", err)
	return found
}

func (t *transactionData) Commit() error {
	if !t.access.InUse() {
		return fault.TransactionNotStarted
	}
	err := t.access.Commit()
	if nil != err {
		return errors.Wrap(err, "commit")
	}
	return nil
}

func (t *transactionData) Abort() {
	t.access.Abort()
}

func (t *transactionData) InUse() bool {
	return t.access.InUse()
}

// writes are only legal between Begin and Commit/Abort
func (t *transactionData) mustBeInUse(operation string) {
	if !t.access.InUse() {
		logger.Panicf("transaction.%s: %s", operation, fault.TransactionNotStarted)
	}
}
