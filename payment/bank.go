// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package payment

import (
	"math"
	"sync"

	"github.com/bitmark-inc/bulletind/account"
	"github.com/bitmark-inc/bulletind/fault"
	"github.com/bitmark-inc/bulletind/storage"
	"github.com/bitmark-inc/logger"
)

// Bank - a Provider keeping balances in the host database
type Bank struct {
	sync.Mutex

	log     *logger.L
	custody account.Account
	pool    *storage.PoolHandle
	trx     storage.Transaction
}

// NewBank - balances held in the host database with the given
// custody account
func NewBank(db *storage.Database, custody account.Account) *Bank {
	log := logger.New("bank")
	log.Infof("custody account: %s", custody)

	return &Bank{
		log:     log,
		custody: custody,
		pool:    db.Host.Balances,
		trx:     db.HostTransaction(),
	}
}

// Custody - the account holding escrowed funds
func (b *Bank) Custody() account.Account {
	return b.custody
}

// Balance - current balance of an account
func (b *Bank) Balance(a account.Account) uint64 {
	n, _ := b.pool.GetN(a.Key())
	return n
}

// Debit - move funds from an account into custody
func (b *Bank) Debit(from account.Account, amount uint64) error {
	err := b.transfer(from, b.custody, amount)
	if nil != err {
		b.log.Debugf("debit: %s  amount: %d  error: %s", from, amount, err)
		return err
	}
	b.log.Debugf("debit: %s  amount: %d", from, amount)
	return nil
}

// Credit - move funds from custody to an account
func (b *Bank) Credit(to account.Account, amount uint64) error {
	err := b.transfer(b.custody, to, amount)
	if nil != err {
		b.log.Warnf("credit: %s  amount: %d  error: %s", to, amount, err)
		return err
	}
	b.log.Debugf("credit: %s  amount: %d", to, amount)
	return nil
}

// Mint - create funds in an account
func (b *Bank) Mint(to account.Account, amount uint64) error {
	b.Lock()
	defer b.Unlock()

	b.trx.Begin()

	balance, _ := b.trx.GetN(b.pool, to.Key())
	if balance > math.MaxUint64-amount {
		b.trx.Abort()
		return fault.BalanceOverflow
	}
	b.trx.PutN(b.pool, to.Key(), balance+amount)

	err := b.trx.Commit()
	if nil != err {
		return err
	}
	b.log.Infof("mint: %s  amount: %d", to, amount)
	return nil
}

func (b *Bank) transfer(from account.Account, to account.Account, amount uint64) error {
	b.Lock()
	defer b.Unlock()

	b.trx.Begin()

	fromBalance, _ := b.trx.GetN(b.pool, from.Key())
	if fromBalance < amount {
		b.trx.Abort()
		return fault.InsufficientFunds
	}

	if 0 == amount || from.PublicKey == to.PublicKey {
		b.trx.Abort()
		return nil
	}

	toBalance, _ := b.trx.GetN(b.pool, to.Key())
	if toBalance > math.MaxUint64-amount {
		b.trx.Abort()
		return fault.BalanceOverflow
	}

	b.trx.PutN(b.pool, from.Key(), fromBalance-amount)
	b.trx.PutN(b.pool, to.Key(), toBalance+amount)

	return b.trx.Commit()
}
