// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package rpccalls

import (
	"github.com/bitmark-inc/bulletind/account"
	"github.com/bitmark-inc/bulletind/rpc/bank"
)

// Balance - the balance of an account
func (client *Client) Balance(a account.Account) (*bank.BalanceReply, error) {
	args := bank.BalanceArguments{
		Account: &a,
	}

	var reply bank.BalanceReply
	if err := client.call("Bank.Balance", &args, &reply); nil != err {
		return nil, err
	}

	return &reply, nil
}

// Faucet - mint funds into an account
func (client *Client) Faucet(a account.Account, amount uint64) (*bank.BalanceReply, error) {
	args := bank.FaucetArguments{
		Account: &a,
		Amount:  amount,
	}

	var reply bank.BalanceReply
	if err := client.call("Bank.Faucet", &args, &reply); nil != err {
		return nil, err
	}

	return &reply, nil
}
