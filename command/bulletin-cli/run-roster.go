// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"github.com/urfave/cli"
)

func runOperators(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	client, err := connect(m)
	if nil != err {
		return err
	}
	defer client.Close()

	response, err := client.Operators()
	if nil != err {
		return err
	}

	return printJson(m.w, response)
}

func runVote(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	voter, err := checkAccount("voter", c.String("voter"))
	if nil != err {
		return err
	}
	operator, err := checkAccount("operator", c.String("operator"))
	if nil != err {
		return err
	}

	client, err := connect(m)
	if nil != err {
		return err
	}
	defer client.Close()

	response, err := client.Vote(voter, operator)
	if nil != err {
		return err
	}

	return printJson(m.w, response)
}

func runVoted(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	voter, err := checkAccount("voter", c.String("voter"))
	if nil != err {
		return err
	}

	client, err := connect(m)
	if nil != err {
		return err
	}
	defer client.Close()

	response, err := client.VotedFor(voter)
	if nil != err {
		return err
	}

	return printJson(m.w, response)
}
