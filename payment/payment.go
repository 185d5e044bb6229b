// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package payment - the value transfer primitive used by the ledger
//
// Funds paid to the ledger are held in a custody account.  A debit
// moves funds from a caller into custody and a credit moves funds
// from custody out to a recipient.
package payment

import (
	"github.com/bitmark-inc/bulletind/account"
)

//go:generate mockgen -destination mocks/provider.go -package mocks github.com/bitmark-inc/bulletind/payment Provider

// Provider - transfers value between accounts and the custody account
type Provider interface {
	// Debit - move amount from the account into custody
	Debit(from account.Account, amount uint64) error
	// Credit - move amount from custody to the account
	Credit(to account.Account, amount uint64) error
	// Balance - current balance of an account
	Balance(a account.Account) uint64
}
