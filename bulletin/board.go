// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package bulletin - a single-slot, pay-per-duration bulletin board
//
// Each owner may hold at most one bulletin.  A bulletin is bought by
// paying price-per-block times the number of blocks it should stay
// listed; any overpayment is refunded to the owner.  Identifiers are
// assigned sequentially from zero and never reused.
//
// Posting with a duration of zero is accepted and produces a bulletin
// that expires at the block it was posted in, which has no practical
// use.
package bulletin

import (
	"sync"

	"github.com/bitmark-inc/bulletind/account"
	"github.com/bitmark-inc/bulletind/fault"
	"github.com/bitmark-inc/bulletind/metrics"
	"github.com/bitmark-inc/bulletind/payment"
	"github.com/bitmark-inc/bulletind/storage"
	"github.com/bitmark-inc/logger"
)

// Checkpoint - source of the current block height
type Checkpoint interface {
	Height() uint64
}

// Environment - the collaborators of a board
type Environment struct {
	Checkpoint Checkpoint
	Payment    payment.Provider
	Custody    account.Account
	Events     Sink
}

// Board - the ledger
//
// every operation holds the board lock for its whole duration
type Board struct {
	sync.Mutex

	log   *logger.L
	index index
	env   Environment
	price uint64
}

// New - open the board stored in the ledger database
//
// the price is fixed when the board is first created; a different
// price on a later start is ignored
func New(db *storage.Database, pricePerBlock uint64, env Environment) (*Board, error) {
	log := logger.New("bulletin")

	b := &Board{
		log: log,
		index: index{
			owners:    db.Ledger.OwnerIndex,
			bulletins: db.Ledger.Bulletins,
			counters:  db.Ledger.Counters,
			trx:       db.LedgerTransaction(),
		},
		env: env,
	}

	price, found := b.index.counters.GetN(priceKey)
	if !found {
		trx := b.index.trx
		trx.Begin()
		trx.PutN(b.index.counters, priceKey, pricePerBlock)
		trx.PutN(b.index.counters, nextIdKey, 0)
		trx.PutN(b.index.counters, liveCountKey, 0)
		err := trx.Commit()
		if nil != err {
			return nil, err
		}
		price = pricePerBlock
		log.Infof("new board  price per block: %d", price)
	} else if price != pricePerBlock {
		log.Warnf("stored price per block: %d  ignoring configured: %d", price, pricePerBlock)
	}
	b.price = price

	log.Infof("price per block: %d  live: %d  next id: %d  decommissioned: %t",
		price, b.index.liveCount(), b.index.nextId(), b.index.decommissioned())

	return b, nil
}

// Price - the listing price per block
func (b *Board) Price() uint64 {
	return b.price
}

// Height - the current checkpoint
func (b *Board) Height() uint64 {
	return b.env.Checkpoint.Height()
}

// Submit - post a bulletin for owner lasting duration blocks
//
// tendered is the amount the owner has already paid into custody by
// some earlier step; Post combines that payment with the submission.
// any amount above the listing fee is credited back to the owner.
// Nothing is changed unless the whole post succeeds.
func (b *Board) Submit(owner account.Account, duration uint64, text string, tendered uint64) (*PostedEvent, error) {
	b.Lock()
	defer b.Unlock()

	event, err := b.submit(owner, duration, text, tendered)
	if nil != err {
		metrics.Operations.WithLabelValues("post", metrics.ResultRejected).Inc()
		b.log.Debugf("post: owner: %s  duration: %d  tendered: %d  error: %s", owner, duration, tendered, err)
		return nil, err
	}
	metrics.Operations.WithLabelValues("post", metrics.ResultOk).Inc()
	return event, nil
}

// Post - take tendered from the owner into custody, then submit
//
// the debit, the post and the return of a rejected tender all run
// under the board lock, so no other operation sees the tender in
// custody while the post is undecided
func (b *Board) Post(owner account.Account, duration uint64, text string, tendered uint64) (*PostedEvent, error) {
	b.Lock()
	defer b.Unlock()

	err := b.env.Payment.Debit(owner, tendered)
	if nil != err {
		metrics.Operations.WithLabelValues("post", metrics.ResultRejected).Inc()
		b.log.Debugf("post: owner: %s  tendered: %d  debit error: %s", owner, tendered, err)
		return nil, err
	}

	event, err := b.submit(owner, duration, text, tendered)
	if nil != err {
		e := b.env.Payment.Credit(owner, tendered)
		if nil != e {
			logger.Panicf("bulletin: return tendered: %d  to: %s  failed: %s", tendered, owner, e)
		}
		metrics.Operations.WithLabelValues("post", metrics.ResultRejected).Inc()
		b.log.Debugf("post: owner: %s  duration: %d  tendered: %d  returned  error: %s", owner, duration, tendered, err)
		return nil, err
	}
	metrics.Operations.WithLabelValues("post", metrics.ResultOk).Inc()
	return event, nil
}

func (b *Board) submit(owner account.Account, duration uint64, text string, tendered uint64) (*PostedEvent, error) {
	if b.index.decommissioned() {
		return nil, fault.Decommissioned
	}

	if len(text) > MaximumTextLength {
		return nil, fault.TextTooLong
	}

	if _, _, found := b.index.lookupByOwner(owner); found {
		return nil, fault.BulletinAlreadyExists
	}

	fee := ListingFee(b.price, duration)
	if tendered < fee {
		return nil, &fault.InsufficientPaymentError{Required: fee}
	}

	checkpoint := b.env.Checkpoint.Height()
	expiry, ok := expiryHeight(checkpoint, duration)
	if !ok {
		return nil, fault.DurationTooLong
	}

	record := &Record{
		Owner:     owner,
		PostedAt:  checkpoint,
		ExpiresAt: expiry,
		Text:      text,
	}

	// all checks passed: from here on nothing may fail except fatally
	trx := b.index.trx
	trx.Begin()

	id := b.index.insert(record)

	refund := tendered - fee
	err := b.env.Payment.Credit(owner, refund)
	if nil != err {
		trx.Abort()
		logger.Panicf("bulletin: refund: %d  to: %s  failed: %s", refund, owner, err)
	}

	err = trx.Commit()
	if nil != err {
		logger.Panicf("bulletin: commit post: %d  error: %s", id, err)
	}

	metrics.Fees.Add(float64(fee))
	metrics.Refunds.Add(float64(refund))

	b.log.Infof("posted: %d  owner: %s  at: %d  expires: %d  fee: %d  refund: %d", id, owner, checkpoint, expiry, fee, refund)

	event := PostedEvent{
		Owner:     owner,
		ExpiresAt: expiry,
		Id:        id,
	}
	if nil != b.env.Events {
		b.env.Events.Posted(event)
	}
	return &event, nil
}

// Remove - delete the owner's bulletin
func (b *Board) Remove(owner account.Account) (uint32, error) {
	b.Lock()
	defer b.Unlock()

	if b.index.decommissioned() {
		metrics.Operations.WithLabelValues("delete", metrics.ResultRejected).Inc()
		return 0, fault.Decommissioned
	}

	trx := b.index.trx
	trx.Begin()

	id, err := b.index.remove(owner)
	if nil != err {
		trx.Abort()
		metrics.Operations.WithLabelValues("delete", metrics.ResultRejected).Inc()
		return 0, err
	}

	err = trx.Commit()
	if nil != err {
		logger.Panicf("bulletin: commit remove: %d  error: %s", id, err)
	}

	metrics.Operations.WithLabelValues("delete", metrics.ResultOk).Inc()
	b.log.Infof("removed: %d  owner: %s", id, owner)

	if nil != b.env.Events {
		b.env.Events.Removed(RemovedEvent{
			Owner: owner,
			Id:    id,
		})
	}
	return id, nil
}

// Decommission - permanently close an empty board
//
// when no bulletins are stored the whole custody balance is credited
// to the requester and true is returned; on a non-empty board
// nothing happens and false is returned
func (b *Board) Decommission(requester account.Account) (bool, error) {
	b.Lock()
	defer b.Unlock()

	if b.index.decommissioned() {
		return false, fault.Decommissioned
	}

	if 0 != b.index.liveCount() {
		metrics.Operations.WithLabelValues("terminate", metrics.ResultNoOp).Inc()
		b.log.Debugf("decommission by: %s  ignored: board not empty", requester)
		return false, nil
	}

	trx := b.index.trx
	trx.Begin()
	trx.PutN(b.index.counters, decommissionedKey, 1)

	residual := b.env.Payment.Balance(b.env.Custody)
	err := b.env.Payment.Credit(requester, residual)
	if nil != err {
		trx.Abort()
		b.log.Errorf("decommission: credit: %d  to: %s  error: %s", residual, requester, err)
		return false, err
	}

	err = trx.Commit()
	if nil != err {
		logger.Panicf("bulletin: commit decommission error: %s", err)
	}

	metrics.Operations.WithLabelValues("terminate", metrics.ResultOk).Inc()
	b.log.Warnf("decommissioned by: %s  residual: %d", requester, residual)
	return true, nil
}

// GetByAccount - the bulletin of an owner
func (b *Board) GetByAccount(owner account.Account) (*Record, bool) {
	b.Lock()
	defer b.Unlock()

	_, record, found := b.index.lookupByOwner(owner)
	return record, found
}

// GetById - the bulletin with an identifier
func (b *Board) GetById(id uint32) (*Record, bool) {
	b.Lock()
	defer b.Unlock()

	return b.index.lookupById(id)
}

// List - up to count bulletins in identifier order from start
func (b *Board) List(start uint32, count int) ([]Entry, error) {
	b.Lock()
	defer b.Unlock()

	return b.index.list(start, count)
}

// LiveCount - number of stored bulletins
func (b *Board) LiveCount() uint32 {
	b.Lock()
	defer b.Unlock()

	return b.index.liveCount()
}

// NextId - identifier the next bulletin will receive
func (b *Board) NextId() uint32 {
	b.Lock()
	defer b.Unlock()

	return b.index.nextId()
}

// Decommissioned - true once the board is closed
func (b *Board) Decommissioned() bool {
	b.Lock()
	defer b.Unlock()

	return b.index.decommissioned()
}
