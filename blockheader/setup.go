// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package blockheader - the checkpoint source of the ledger
//
// The current block height is persisted in the host database and is
// advanced at a fixed interval by a background producer.
package blockheader

import (
	"math"
	"sync"
	"time"

	"github.com/bitmark-inc/bulletind/storage"
	"github.com/bitmark-inc/logger"
)

// GenesisHeight - the height of a freshly created chain
const GenesisHeight = 1

var heightKey = []byte("height")

// Header - current block height
type Header struct {
	sync.RWMutex

	log      *logger.L
	pool     *storage.PoolHandle
	trx      storage.Transaction
	interval time.Duration

	height uint64
}

// New - load the current height, creating the genesis height if the
// chain is empty
func New(db *storage.Database, interval time.Duration) (*Header, error) {
	log := logger.New("blockheader")

	h := &Header{
		log:      log,
		pool:     db.Host.Chain,
		trx:      db.HostTransaction(),
		interval: interval,
	}

	height, found := h.pool.GetN(heightKey)
	if !found {
		height = GenesisHeight
		err := h.store(height)
		if nil != err {
			return nil, err
		}
		log.Infof("new chain at genesis height: %d", height)
	}
	h.height = height

	log.Infof("block height: %d  interval: %s", height, interval)
	return h, nil
}

// Height - return current height
func (h *Header) Height() uint64 {
	h.RLock()
	defer h.RUnlock()

	return h.height
}

// Advance - move to the next block and return its height
//
// the height saturates at the maximum uint64
func (h *Header) Advance() (uint64, error) {
	h.Lock()
	defer h.Unlock()

	if math.MaxUint64 == h.height {
		h.log.Warn("block height at maximum")
		return h.height, nil
	}

	next := h.height + 1
	err := h.store(next)
	if nil != err {
		return h.height, err
	}
	h.height = next
	return next, nil
}

func (h *Header) store(height uint64) error {
	h.trx.Begin()
	h.trx.PutN(h.pool, heightKey, height)
	return h.trx.Commit()
}
