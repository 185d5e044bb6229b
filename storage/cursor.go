// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage

import (
	"github.com/syndtr/goleveldb/leveldb/util"

	"github.com/bitmark-inc/bulletind/fault"
)

// FetchCursor - resumable forward scan over one pool
type FetchCursor struct {
	pool  *PoolHandle
	scope util.Range
}

// NewFetchCursor - a cursor positioned at the first key of the pool
func (p *PoolHandle) NewFetchCursor() *FetchCursor {
	return &FetchCursor{
		pool: p,
		scope: util.Range{
			Start: []byte{p.prefix},
			Limit: p.limit,
		},
	}
}

// Seek - continue from key, or the first key after it
func (cursor *FetchCursor) Seek(key []byte) *FetchCursor {
	cursor.scope.Start = cursor.pool.prefixKey(key)
	return cursor
}

// Fetch - up to count elements, leaving the cursor after the last one
func (cursor *FetchCursor) Fetch(count int) ([]Element, error) {
	if nil == cursor {
		return nil, fault.InvalidCursor
	}
	if count <= 0 {
		return nil, fault.InvalidCount
	}
	if nil == cursor.pool.access {
		return nil, nil
	}

	results := make([]Element, 0, count)

	iter := cursor.pool.access.Iterator(&cursor.scope)
	for len(results) < count && iter.Next() {
		results = append(results, copyElement(iter.Key(), iter.Value()))
	}
	iter.Release()

	// the smallest key above the last one is that key followed by a zero byte
	if n := len(results); n > 0 {
		cursor.scope.Start = append(cursor.pool.prefixKey(results[n-1].Key), 0)
	}

	return results, iter.Error()
}

// Map - apply f to every remaining element, stopping at the first error
func (cursor *FetchCursor) Map(f func(key []byte, value []byte) error) error {
	if nil == cursor {
		return fault.InvalidCursor
	}
	if nil == cursor.pool.access {
		return nil
	}

	iter := cursor.pool.access.Iterator(&cursor.scope)
	defer iter.Release()

	for iter.Next() {
		e := copyElement(iter.Key(), iter.Value())
		if err := f(e.Key, e.Value); nil != err {
			return err
		}
	}
	return iter.Error()
}
