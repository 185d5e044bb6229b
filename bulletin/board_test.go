// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package bulletin_test

import (
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"

	"github.com/bitmark-inc/bulletind/account"
	"github.com/bitmark-inc/bulletind/bulletin"
	"github.com/bitmark-inc/bulletind/fault"
	"github.com/bitmark-inc/bulletind/fixtures"
	"github.com/bitmark-inc/bulletind/payment/mocks"
)

func TestPostScenario(t *testing.T) {
	tb, cleanup := setup(t, testPrice)
	defer cleanup()

	// tender 999 for 100 blocks at 10 per block
	event, err := tb.post(t, fixtures.Alice, 100, "Text", 999)
	assert.Nil(t, event, "event on failure")
	required, ok := fault.IsErrInsufficientPayment(err)
	assert.True(t, ok, "wrong error: %v", err)
	assert.Equal(t, uint64(1000), required, "required fee")

	assert.Equal(t, uint32(0), tb.board.LiveCount(), "live count changed")
	assert.Equal(t, uint32(0), tb.board.NextId(), "next id changed")
	_, found := tb.board.GetByAccount(fixtures.Alice)
	assert.False(t, found, "record stored on failure")
	_, found = tb.board.GetById(0)
	assert.False(t, found, "record stored on failure")
	assert.Equal(t, 0, len(tb.events.posted), "event emitted on failure")

	// the failed tender stays in custody: the caller refunds it
	assert.Nil(t, tb.bank.Credit(fixtures.Alice, 999), "return of escrow")
	assert.Equal(t, uint64(999), tb.bank.Balance(fixtures.Alice), "escrow returned")

	// tender exactly 1000
	event, err = tb.post(t, fixtures.Alice, 100, "Text", 1000)
	assert.Nil(t, err, "post error")
	assert.Equal(t, &bulletin.PostedEvent{
		Owner:     fixtures.Alice,
		ExpiresAt: testHeight + 100,
		Id:        0,
	}, event, "posted event")

	assert.Equal(t, uint64(999), tb.bank.Balance(fixtures.Alice), "refund on exact payment")
	assert.Equal(t, uint64(1000), tb.bank.Balance(fixtures.Custody), "custody")

	expected := &bulletin.Record{
		Owner:     fixtures.Alice,
		PostedAt:  testHeight,
		ExpiresAt: testHeight + 100,
		Text:      "Text",
	}
	record, found := tb.board.GetByAccount(fixtures.Alice)
	assert.True(t, found, "record not found by owner")
	assert.Equal(t, expected, record, "record by owner")

	record, found = tb.board.GetById(0)
	assert.True(t, found, "record not found by id")
	assert.Equal(t, expected, record, "record by id")

	_, found = tb.board.GetByAccount(fixtures.Bob)
	assert.False(t, found, "record for another owner")

	assert.Equal(t, uint32(1), tb.board.LiveCount(), "live count")
	assert.Equal(t, uint32(1), tb.board.NextId(), "next id")
	assert.Equal(t, []bulletin.PostedEvent{*event}, tb.events.posted, "recorded events")
}

func TestPostFreeRefundsEverything(t *testing.T) {
	tb, cleanup := setup(t, 0)
	defer cleanup()

	assert.Equal(t, uint64(0), tb.board.Price(), "price")

	_, err := tb.post(t, fixtures.Alice, 100, "free", 1500)
	assert.Nil(t, err, "post error")
	assert.Equal(t, uint64(1500), tb.bank.Balance(fixtures.Alice), "refund")
	assert.Equal(t, uint64(0), tb.bank.Balance(fixtures.Custody), "custody")
}

func TestPostOverpaymentRefund(t *testing.T) {
	tb, cleanup := setup(t, testPrice)
	defer cleanup()

	_, err := tb.post(t, fixtures.Alice, 100, "Text", 1500)
	assert.Nil(t, err, "post error")
	assert.Equal(t, uint64(500), tb.bank.Balance(fixtures.Alice), "refund")
	assert.Equal(t, uint64(1000), tb.bank.Balance(fixtures.Custody), "custody")
}

func TestPostAlreadyExists(t *testing.T) {
	tb, cleanup := setup(t, testPrice)
	defer cleanup()

	_, err := tb.post(t, fixtures.Alice, 10, "first", 100)
	assert.Nil(t, err, "post error")

	_, err = tb.board.Submit(fixtures.Alice, 20, "second", 200)
	assert.Equal(t, fault.BulletinAlreadyExists, err, "second post")
	assert.True(t, fault.IsErrExists(err), "error class")

	record, found := tb.board.GetByAccount(fixtures.Alice)
	assert.True(t, found, "record lost")
	assert.Equal(t, "first", record.Text, "record replaced")
	assert.Equal(t, uint32(1), tb.board.LiveCount(), "live count")
	assert.Equal(t, uint32(1), tb.board.NextId(), "next id")
	assert.Equal(t, 1, len(tb.events.posted), "events")
}

func TestPostTextLength(t *testing.T) {
	tb, cleanup := setup(t, 0)
	defer cleanup()

	_, err := tb.board.Submit(fixtures.Alice, 1, strings.Repeat("x", bulletin.MaximumTextLength+1), 0)
	assert.Equal(t, fault.TextTooLong, err, "long text")
	assert.Equal(t, uint32(0), tb.board.NextId(), "next id changed")

	_, err = tb.board.Submit(fixtures.Alice, 1, strings.Repeat("x", bulletin.MaximumTextLength), 0)
	assert.Nil(t, err, "maximum length text")
}

func TestPostZeroDuration(t *testing.T) {
	tb, cleanup := setup(t, testPrice)
	defer cleanup()

	event, err := tb.board.Submit(fixtures.Alice, 0, "already expired", 0)
	assert.Nil(t, err, "zero duration post")
	assert.Equal(t, uint64(testHeight), event.ExpiresAt, "expiry")

	record, _ := tb.board.GetByAccount(fixtures.Alice)
	assert.Equal(t, record.PostedAt, record.ExpiresAt, "zero duration record")
}

func TestPostDurationTooLong(t *testing.T) {
	tb, cleanup := setup(t, 0)
	defer cleanup()

	_, err := tb.board.Submit(fixtures.Alice, math.MaxUint64, "forever", 0)
	assert.Equal(t, fault.DurationTooLong, err, "overflowing expiry")
	assert.Equal(t, uint32(0), tb.board.LiveCount(), "live count changed")

	_, err = tb.board.Submit(fixtures.Alice, math.MaxUint64-testHeight, "almost forever", 0)
	assert.Nil(t, err, "largest expiry")
}

func TestPostSaturatedFee(t *testing.T) {
	tb, cleanup := setup(t, math.MaxUint64)
	defer cleanup()

	_, err := tb.board.Submit(fixtures.Alice, 2, "expensive", math.MaxUint64-1)
	required, ok := fault.IsErrInsufficientPayment(err)
	assert.True(t, ok, "wrong error: %v", err)
	assert.Equal(t, uint64(math.MaxUint64), required, "saturated fee")
}

func TestRemove(t *testing.T) {
	tb, cleanup := setup(t, testPrice)
	defer cleanup()

	_, err := tb.board.Remove(fixtures.Alice)
	assert.Equal(t, fault.BulletinNotFound, err, "remove never posted")
	assert.True(t, fault.IsErrNotFound(err), "error class")
	assert.Equal(t, 0, len(tb.events.removed), "event on failed remove")

	_, err = tb.post(t, fixtures.Alice, 10, "Text", 100)
	assert.Nil(t, err, "post error")

	_, err = tb.board.Remove(fixtures.Bob)
	assert.Equal(t, fault.BulletinNotFound, err, "remove by other owner")

	id, err := tb.board.Remove(fixtures.Alice)
	assert.Nil(t, err, "remove error")
	assert.Equal(t, uint32(0), id, "removed id")
	assert.Equal(t, []bulletin.RemovedEvent{{Owner: fixtures.Alice, Id: 0}}, tb.events.removed, "removed events")

	_, err = tb.board.Remove(fixtures.Alice)
	assert.Equal(t, fault.BulletinNotFound, err, "repeated remove")
	assert.Equal(t, 1, len(tb.events.removed), "event on repeated remove")

	_, found := tb.board.GetByAccount(fixtures.Alice)
	assert.False(t, found, "record by owner after remove")
	_, found = tb.board.GetById(0)
	assert.False(t, found, "record by id after remove")
	assert.Equal(t, uint32(0), tb.board.LiveCount(), "live count")
}

func TestIdentifiersNeverReused(t *testing.T) {
	tb, cleanup := setup(t, 0)
	defer cleanup()

	ids := []uint32{}
	post := func(owner account.Account) {
		event, err := tb.board.Submit(owner, 5, "Text", 0)
		if nil != err {
			t.Fatalf("post error: %s", err)
		}
		ids = append(ids, event.Id)
	}

	post(fixtures.Alice)
	post(fixtures.Bob)
	_, err := tb.board.Remove(fixtures.Alice)
	assert.Nil(t, err, "remove error")
	post(fixtures.Alice)
	_, err = tb.board.Remove(fixtures.Bob)
	assert.Nil(t, err, "remove error")
	post(fixtures.Carol)
	post(fixtures.Bob)

	assert.Equal(t, []uint32{0, 1, 2, 3, 4}, ids, "identifiers")
	assert.Equal(t, uint32(3), tb.board.LiveCount(), "live count")

	_, found := tb.board.GetById(0)
	assert.False(t, found, "removed id 0 present")
	_, found = tb.board.GetById(1)
	assert.False(t, found, "removed id 1 present")

	record, found := tb.board.GetById(2)
	assert.True(t, found, "id 2 missing")
	assert.Equal(t, fixtures.Alice, record.Owner, "owner of id 2")
}

func TestList(t *testing.T) {
	tb, cleanup := setup(t, 0)
	defer cleanup()

	for i, owner := range []account.Account{fixtures.Alice, fixtures.Bob, fixtures.Carol} {
		_, err := tb.board.Submit(owner, uint64(i), owner.String(), 0)
		assert.Nil(t, err, "post error")
	}
	_, err := tb.board.Remove(fixtures.Bob)
	assert.Nil(t, err, "remove error")

	entries, err := tb.board.List(0, 10)
	assert.Nil(t, err, "list error")
	assert.Equal(t, 2, len(entries), "entries")
	assert.Equal(t, uint32(0), entries[0].Id, "first id")
	assert.Equal(t, fixtures.Alice, entries[0].Record.Owner, "first owner")
	assert.Equal(t, uint32(2), entries[1].Id, "second id")
	assert.Equal(t, fixtures.Carol.String(), entries[1].Record.Text, "second text")

	entries, err = tb.board.List(1, 1)
	assert.Nil(t, err, "list error")
	assert.Equal(t, 1, len(entries), "entries from 1")
	assert.Equal(t, uint32(2), entries[0].Id, "id from 1")

	entries, err = tb.board.List(3, 10)
	assert.Nil(t, err, "list error")
	assert.Equal(t, 0, len(entries), "entries past the end")

	_, err = tb.board.List(0, 0)
	assert.Equal(t, fault.InvalidCount, err, "zero count")
}

func TestDecommission(t *testing.T) {
	tb, cleanup := setup(t, testPrice)
	defer cleanup()

	_, err := tb.post(t, fixtures.Alice, 10, "Text", 100)
	assert.Nil(t, err, "post error")

	// not empty: nothing happens
	done, err := tb.board.Decommission(fixtures.Bob)
	assert.Nil(t, err, "decommission of non-empty board")
	assert.False(t, done, "non-empty board decommissioned")
	assert.False(t, tb.board.Decommissioned(), "flag set")
	assert.Equal(t, uint64(100), tb.bank.Balance(fixtures.Custody), "custody moved")
	assert.Equal(t, uint64(0), tb.bank.Balance(fixtures.Bob), "requester paid")
	assert.Equal(t, 1, len(tb.events.posted), "events")
	assert.Equal(t, 0, len(tb.events.removed), "events")

	_, err = tb.board.Remove(fixtures.Alice)
	assert.Nil(t, err, "remove error")

	done, err = tb.board.Decommission(fixtures.Bob)
	assert.Nil(t, err, "decommission error")
	assert.True(t, done, "empty board not decommissioned")
	assert.True(t, tb.board.Decommissioned(), "flag not set")
	assert.Equal(t, uint64(0), tb.bank.Balance(fixtures.Custody), "custody not emptied")
	assert.Equal(t, uint64(100), tb.bank.Balance(fixtures.Bob), "residual not paid")

	_, err = tb.board.Submit(fixtures.Carol, 0, "late", 0)
	assert.Equal(t, fault.Decommissioned, err, "post after decommission")
	_, err = tb.board.Remove(fixtures.Carol)
	assert.Equal(t, fault.Decommissioned, err, "remove after decommission")
	_, err = tb.board.Decommission(fixtures.Carol)
	assert.Equal(t, fault.Decommissioned, err, "decommission twice")

	// queries still work
	_, found := tb.board.GetById(0)
	assert.False(t, found, "record after decommission")
	assert.Equal(t, uint32(1), tb.board.NextId(), "next id")
}

func TestDecommissionCreditFailure(t *testing.T) {
	db, cleanup, err := fixtures.SetupTestDatabase()
	if nil != err {
		t.Fatalf("database error: %s", err)
	}
	defer cleanup()

	ctl := gomock.NewController(t)
	defer ctl.Finish()

	provider := mocks.NewMockProvider(ctl)
	provider.EXPECT().Balance(fixtures.Custody).Return(uint64(50)).Times(1)
	provider.EXPECT().Credit(fixtures.Bob, uint64(50)).Return(fault.InsufficientFunds).Times(1)

	board, err := bulletin.New(db, testPrice, bulletin.Environment{
		Checkpoint: fixedHeight(testHeight),
		Payment:    provider,
		Custody:    fixtures.Custody,
	})
	assert.Nil(t, err, "new error")

	done, err := board.Decommission(fixtures.Bob)
	assert.Equal(t, fault.InsufficientFunds, err, "credit failure")
	assert.False(t, done, "decommissioned after failure")
	assert.False(t, board.Decommissioned(), "flag set after failure")
}

func TestRefundFailureIsFatal(t *testing.T) {
	db, cleanup, err := fixtures.SetupTestDatabase()
	if nil != err {
		t.Fatalf("database error: %s", err)
	}
	defer cleanup()

	ctl := gomock.NewController(t)
	defer ctl.Finish()

	provider := mocks.NewMockProvider(ctl)
	provider.EXPECT().Credit(fixtures.Alice, uint64(500)).Return(errors.New("custody broken")).Times(1)

	events := &recordingSink{}
	board, err := bulletin.New(db, testPrice, bulletin.Environment{
		Checkpoint: fixedHeight(testHeight),
		Payment:    provider,
		Custody:    fixtures.Custody,
		Events:     events,
	})
	assert.Nil(t, err, "new error")

	assert.Panics(t, func() {
		_, _ = board.Submit(fixtures.Alice, 100, "Text", 1500)
	}, "refund failure did not halt")

	// nothing from the failed post is visible
	_, found := board.GetByAccount(fixtures.Alice)
	assert.False(t, found, "record stored")
	_, found = board.GetById(0)
	assert.False(t, found, "record stored")
	assert.Equal(t, uint32(0), board.LiveCount(), "live count")
	assert.Equal(t, uint32(0), board.NextId(), "next id")
	assert.Equal(t, 0, len(events.posted), "event emitted")
	assert.False(t, db.LedgerTransaction().InUse(), "transaction left open")
}

func TestBrokenIndexIsFatal(t *testing.T) {
	tb, cleanup := setup(t, 0)
	defer cleanup()

	// an owner entry pointing at a record that does not exist
	trx := tb.db.LedgerTransaction()
	trx.Begin()
	trx.PutN(tb.db.Ledger.OwnerIndex, fixtures.Alice.Key(), 7)
	assert.Nil(t, trx.Commit(), "commit error")

	assert.Panics(t, func() {
		tb.board.GetByAccount(fixtures.Alice)
	}, "broken invariant not fatal")
}

func TestReopen(t *testing.T) {
	tb, cleanup := setup(t, testPrice)
	defer cleanup()

	_, err := tb.post(t, fixtures.Alice, 10, "Text", 100)
	assert.Nil(t, err, "post error")

	// a second board on the same database sees the same state and
	// keeps the original price
	board, err := bulletin.New(tb.db, testPrice*2, bulletin.Environment{
		Checkpoint: fixedHeight(testHeight),
		Payment:    tb.bank,
		Custody:    fixtures.Custody,
	})
	assert.Nil(t, err, "reopen error")
	assert.Equal(t, uint64(testPrice), board.Price(), "price changed")
	assert.Equal(t, uint32(1), board.LiveCount(), "live count")
	assert.Equal(t, uint32(1), board.NextId(), "next id")

	record, found := board.GetByAccount(fixtures.Alice)
	assert.True(t, found, "record lost")
	assert.Equal(t, "Text", record.Text, "record text")
}

func TestPostPaysFromBalance(t *testing.T) {
	tb, cleanup := setup(t, testPrice)
	defer cleanup()

	assert.Nil(t, tb.bank.Mint(fixtures.Alice, 100), "mint error")

	event, err := tb.board.Post(fixtures.Alice, 5, "Text", 80)
	assert.Nil(t, err, "post error")
	assert.Equal(t, uint32(0), event.Id, "wrong id")
	assert.Equal(t, uint64(50), tb.bank.Balance(fixtures.Alice), "owner balance")
	assert.Equal(t, uint64(50), tb.bank.Balance(fixtures.Custody), "custody balance")
}

func TestPostReturnsRejectedTender(t *testing.T) {
	tb, cleanup := setup(t, testPrice)
	defer cleanup()

	assert.Nil(t, tb.bank.Mint(fixtures.Alice, 100), "mint error")
	_, err := tb.board.Post(fixtures.Alice, 5, "Text", 50)
	assert.Nil(t, err, "post error")

	// second post by the same owner
	_, err = tb.board.Post(fixtures.Alice, 1, "Again", 30)
	assert.Equal(t, fault.BulletinAlreadyExists, err, "second post")
	assert.Equal(t, uint64(50), tb.bank.Balance(fixtures.Alice), "tender not returned")
	assert.Equal(t, uint64(50), tb.bank.Balance(fixtures.Custody), "custody kept tender")

	// decommissioned board
	_, err = tb.board.Remove(fixtures.Alice)
	assert.Nil(t, err, "remove error")
	done, err := tb.board.Decommission(fixtures.Bob)
	assert.Nil(t, err, "decommission error")
	assert.True(t, done, "not decommissioned")

	_, err = tb.board.Post(fixtures.Alice, 1, "Late", 30)
	assert.Equal(t, fault.Decommissioned, err, "post after decommission")
	assert.Equal(t, uint64(50), tb.bank.Balance(fixtures.Alice), "tender not returned")
	assert.Equal(t, uint64(50), tb.bank.Balance(fixtures.Bob), "residual")
	assert.Equal(t, uint64(0), tb.bank.Balance(fixtures.Custody), "custody kept tender")
}

func TestPostDebitFailure(t *testing.T) {
	db, cleanup, err := fixtures.SetupTestDatabase()
	if nil != err {
		t.Fatalf("database error: %s", err)
	}
	defer cleanup()

	ctl := gomock.NewController(t)
	defer ctl.Finish()

	provider := mocks.NewMockProvider(ctl)
	provider.EXPECT().Debit(fixtures.Carol, uint64(40)).Return(fault.InsufficientFunds).Times(1)

	board, err := bulletin.New(db, testPrice, bulletin.Environment{
		Checkpoint: fixedHeight(testHeight),
		Payment:    provider,
		Custody:    fixtures.Custody,
	})
	assert.Nil(t, err, "new error")

	_, err = board.Post(fixtures.Carol, 2, "Text", 40)
	assert.Equal(t, fault.InsufficientFunds, err, "debit failure")
	assert.Equal(t, uint32(0), board.NextId(), "identifier allocated")
}

func TestPostReturnFailureIsFatal(t *testing.T) {
	db, cleanup, err := fixtures.SetupTestDatabase()
	if nil != err {
		t.Fatalf("database error: %s", err)
	}
	defer cleanup()

	ctl := gomock.NewController(t)
	defer ctl.Finish()

	provider := mocks.NewMockProvider(ctl)
	gomock.InOrder(
		provider.EXPECT().Debit(fixtures.Alice, uint64(10)).Return(nil),
		provider.EXPECT().Credit(fixtures.Alice, uint64(10)).Return(errors.New("custody broken")),
	)

	board, err := bulletin.New(db, testPrice, bulletin.Environment{
		Checkpoint: fixedHeight(testHeight),
		Payment:    provider,
		Custody:    fixtures.Custody,
	})
	assert.Nil(t, err, "new error")

	assert.Panics(t, func() {
		_, _ = board.Post(fixtures.Alice, 5, "Text", 10)
	}, "lost tender did not halt")
	assert.Equal(t, uint32(0), board.LiveCount(), "live count")
}
