// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/pkg/errors"

	"github.com/bitmark-inc/bulletind/account"
	"github.com/bitmark-inc/bulletind/command/bulletin-cli/rpccalls"
	"github.com/bitmark-inc/bulletind/fault"
)

// connect using the global options
func connect(m *metadata) (*rpccalls.Client, error) {
	if m.verbose {
		fmt.Fprintf(m.e, "connect: %s\n", m.connect)
	}
	return rpccalls.NewClient(m.connect, m.fingerprint, m.verbose, m.e)
}

// decode a required base58 account option
func checkAccount(name string, value string) (account.Account, error) {
	if "" == value {
		return account.Account{}, errors.Wrap(fault.InvalidAccount, name)
	}
	a, err := account.FromBase58(value)
	if nil != err {
		return account.Account{}, errors.Wrapf(err, "%s: %q", name, value)
	}
	return a, nil
}

func printJson(handle io.Writer, message interface{}) error {

	b, err := json.MarshalIndent(message, "", "  ")
	if nil != err {
		return err
	}

	fmt.Fprintf(handle, "%s\n", b)
	return nil
}
