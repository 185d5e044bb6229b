// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package bulletin

import (
	"encoding/binary"
	"math"

	"github.com/bitmark-inc/bulletind/account"
	"github.com/bitmark-inc/bulletind/fault"
	"github.com/bitmark-inc/bulletind/storage"
	"github.com/bitmark-inc/logger"
)

// keys in the counters pool
var (
	nextIdKey         = []byte("bulletin-next-id")
	liveCountKey      = []byte("bulletin-live-count")
	decommissionedKey = []byte("bulletin-decommissioned")
	priceKey          = []byte("bulletin-price")
)

// the owner index and the record store
//
// both are only written here, and only through the board's
// transaction, so an identifier is in the record store exactly when
// some owner maps to it
type index struct {
	owners    *storage.PoolHandle
	bulletins *storage.PoolHandle
	counters  *storage.PoolHandle
	trx       storage.Transaction
}

func idKey(id uint32) []byte {
	return storage.EncodeN(uint64(id))
}

// return the current counter and advance it
func (ix *index) allocate() uint32 {
	next, _ := ix.trx.GetN(ix.counters, nextIdKey)
	if next > math.MaxUint32 {
		logger.Panicf("bulletin: identifier space exhausted at: %d", next)
	}
	ix.trx.PutN(ix.counters, nextIdKey, next+1)
	return uint32(next)
}

func (ix *index) lookupByOwner(owner account.Account) (uint32, *Record, bool) {
	id, found := ix.owners.GetN(owner.Key())
	if !found {
		return 0, nil, false
	}

	record, found := ix.lookupById(uint32(id))
	if !found {
		logger.Panicf("bulletin: broken invariant: owner: %s  id: %d  has no record", owner, id)
	}
	return uint32(id), record, true
}

func (ix *index) lookupById(id uint32) (*Record, bool) {
	buffer := ix.bulletins.Get(idKey(id))
	if nil == buffer {
		return nil, false
	}
	record, err := Unpack(buffer)
	if nil != err {
		logger.Panicf("bulletin: corrupt record: %d  error: %s", id, err)
	}
	return record, true
}

// caller guarantees the owner has no record
func (ix *index) insert(record *Record) uint32 {
	packed, err := record.Pack()
	logger.PanicIfError("bulletin: pack record", err)

	id := ix.allocate()
	ix.trx.PutN(ix.owners, record.Owner.Key(), uint64(id))
	ix.trx.Put(ix.bulletins, idKey(id), packed)

	live, _ := ix.trx.GetN(ix.counters, liveCountKey)
	ix.trx.PutN(ix.counters, liveCountKey, live+1)

	return id
}

func (ix *index) remove(owner account.Account) (uint32, error) {
	id, found := ix.trx.GetN(ix.owners, owner.Key())
	if !found {
		return 0, fault.BulletinNotFound
	}

	ix.trx.Delete(ix.owners, owner.Key())
	ix.trx.Delete(ix.bulletins, idKey(uint32(id)))

	live, _ := ix.trx.GetN(ix.counters, liveCountKey)
	if 0 == live {
		logger.Panicf("bulletin: broken invariant: live count is zero removing id: %d", id)
	}
	ix.trx.PutN(ix.counters, liveCountKey, live-1)

	return uint32(id), nil
}

// records in identifier order starting at start
func (ix *index) list(start uint32, count int) ([]Entry, error) {
	cursor := ix.bulletins.NewFetchCursor().Seek(idKey(start))
	elements, err := cursor.Fetch(count)
	if nil != err {
		return nil, err
	}

	entries := make([]Entry, 0, len(elements))
	for _, e := range elements {
		id, _ := decodeId(e.Key)
		record, err := Unpack(e.Value)
		if nil != err {
			logger.Panicf("bulletin: corrupt record: %x  error: %s", e.Key, err)
		}
		entries = append(entries, Entry{
			Id:     id,
			Record: *record,
		})
	}
	return entries, nil
}

func decodeId(key []byte) (uint32, bool) {
	if 8 != len(key) {
		return 0, false
	}
	return uint32(binary.BigEndian.Uint64(key)), true
}

func (ix *index) liveCount() uint32 {
	n, _ := ix.counters.GetN(liveCountKey)
	return uint32(n)
}

func (ix *index) nextId() uint32 {
	n, _ := ix.counters.GetN(nextIdKey)
	return uint32(n)
}

func (ix *index) decommissioned() bool {
	n, _ := ix.counters.GetN(decommissionedKey)
	return 0 != n
}
