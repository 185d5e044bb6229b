// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package bank

import (
	"golang.org/x/time/rate"

	"github.com/bitmark-inc/bulletind/account"
	"github.com/bitmark-inc/bulletind/fault"
	"github.com/bitmark-inc/bulletind/metrics"
	"github.com/bitmark-inc/bulletind/payment"
	"github.com/bitmark-inc/bulletind/rpc/ratelimit"
	"github.com/bitmark-inc/logger"
)

const (
	rateLimitBank = 100
	rateBurstBank = 50

	// faucet calls are much rarer
	rateLimitFaucet = 1
	rateBurstFaucet = 5
)

// Bank - type for the RPC
type Bank struct {
	Log           *logger.L
	Limiter       *rate.Limiter
	FaucetLimiter *rate.Limiter
	Bank          *payment.Bank
	FaucetLimit   uint64
}

// New - create the RPC service
//
// a zero faucet limit disables the faucet
func New(log *logger.L, bank *payment.Bank, faucetLimit uint64) *Bank {
	return &Bank{
		Log:           log,
		Limiter:       rate.NewLimiter(rateLimitBank, rateBurstBank),
		FaucetLimiter: rate.NewLimiter(rateLimitFaucet, rateBurstFaucet),
		Bank:          bank,
		FaucetLimit:   faucetLimit,
	}
}

// BalanceArguments - arguments for RPC
type BalanceArguments struct {
	Account *account.Account `json:"account"` // base58
}

// BalanceReply - result of balance RPC
type BalanceReply struct {
	Balance uint64 `json:"balance,string"`
}

// Balance - current balance of an account
func (b *Bank) Balance(arguments *BalanceArguments, reply *BalanceReply) error {
	if err := ratelimit.Limit(b.Limiter); nil != err {
		return err
	}
	metrics.RPCRequests.WithLabelValues("Bank.Balance").Inc()

	if nil == arguments || nil == arguments.Account || arguments.Account.IsZero() {
		return fault.InvalidAccount
	}

	reply.Balance = b.Bank.Balance(*arguments.Account)
	return nil
}

// FaucetArguments - arguments for RPC
type FaucetArguments struct {
	Account *account.Account `json:"account"`       // base58
	Amount  uint64           `json:"amount,string"` // new funds
}

// Faucet - create new funds in an account
func (b *Bank) Faucet(arguments *FaucetArguments, reply *BalanceReply) error {
	if err := ratelimit.Limit(b.FaucetLimiter); nil != err {
		return err
	}
	metrics.RPCRequests.WithLabelValues("Bank.Faucet").Inc()

	if 0 == b.FaucetLimit {
		return fault.FaucetDisabled
	}

	if nil == arguments || nil == arguments.Account || arguments.Account.IsZero() {
		return fault.InvalidAccount
	}

	if 0 == arguments.Amount || arguments.Amount > b.FaucetLimit {
		return fault.InvalidAmount
	}

	err := b.Bank.Mint(*arguments.Account, arguments.Amount)
	if nil != err {
		return err
	}

	b.Log.Infof("faucet: %d  to: %s", arguments.Amount, arguments.Account)

	reply.Balance = b.Bank.Balance(*arguments.Account)
	return nil
}
