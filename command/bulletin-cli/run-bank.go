// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"fmt"

	"github.com/urfave/cli"
)

func runBalance(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	a, err := checkAccount("account", c.String("account"))
	if nil != err {
		return err
	}

	client, err := connect(m)
	if nil != err {
		return err
	}
	defer client.Close()

	response, err := client.Balance(a)
	if nil != err {
		return err
	}

	return printJson(m.w, response)
}

func runFaucet(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	a, err := checkAccount("account", c.String("account"))
	if nil != err {
		return err
	}

	amount := c.Uint64("amount")
	if 0 == amount {
		return ErrAmountIsRequired
	}

	if m.verbose {
		fmt.Fprintf(m.e, "account: %s\n", a)
		fmt.Fprintf(m.e, "amount: %d\n", amount)
	}

	client, err := connect(m)
	if nil != err {
		return err
	}
	defer client.Close()

	response, err := client.Faucet(a, amount)
	if nil != err {
		return err
	}

	return printJson(m.w, response)
}
