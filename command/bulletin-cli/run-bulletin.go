// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"math"

	"github.com/urfave/cli"

	"github.com/bitmark-inc/bulletind/command/bulletin-cli/rpccalls"
)

func runPost(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	owner, err := checkAccount("owner", c.String("owner"))
	if nil != err {
		return err
	}

	duration := c.Uint64("duration")
	if 0 == duration {
		return ErrDurationIsRequired
	}

	amount := c.Uint64("amount")
	if 0 == amount {
		return ErrAmountIsRequired
	}

	text := c.String("text")

	if m.verbose {
		fmt.Fprintf(m.e, "owner: %s\n", owner)
		fmt.Fprintf(m.e, "duration: %d\n", duration)
		fmt.Fprintf(m.e, "amount: %d\n", amount)
		fmt.Fprintf(m.e, "text: %q\n", text)
	}

	client, err := connect(m)
	if nil != err {
		return err
	}
	defer client.Close()

	response, err := client.Post(&rpccalls.PostData{
		Owner:    owner,
		Duration: duration,
		Tendered: amount,
		Text:     text,
	})
	if nil != err {
		return err
	}

	return printJson(m.w, response)
}

func runDelete(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	owner, err := checkAccount("owner", c.String("owner"))
	if nil != err {
		return err
	}

	client, err := connect(m)
	if nil != err {
		return err
	}
	defer client.Close()

	response, err := client.Delete(owner)
	if nil != err {
		return err
	}

	return printJson(m.w, response)
}

func runGet(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	ownerString := c.String("owner")
	id := c.Int64("id")

	if "" == ownerString && id < 0 {
		return ErrIdOrOwnerRequired
	}
	if id > math.MaxUint32 {
		return ErrInvalidId
	}

	client, err := connect(m)
	if nil != err {
		return err
	}
	defer client.Close()

	if "" != ownerString {
		owner, err := checkAccount("owner", ownerString)
		if nil != err {
			return err
		}
		response, err := client.GetByOwner(owner)
		if nil != err {
			return err
		}
		return printJson(m.w, response)
	}

	response, err := client.GetById(uint32(id))
	if nil != err {
		return err
	}
	return printJson(m.w, response)
}

func runList(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	start := c.Uint("start")
	if start > math.MaxUint32 {
		return ErrInvalidId
	}
	count := c.Int("count")

	client, err := connect(m)
	if nil != err {
		return err
	}
	defer client.Close()

	response, err := client.List(uint32(start), count)
	if nil != err {
		return err
	}

	return printJson(m.w, response)
}

func runTerminate(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	requester, err := checkAccount("requester", c.String("requester"))
	if nil != err {
		return err
	}

	client, err := connect(m)
	if nil != err {
		return err
	}
	defer client.Close()

	response, err := client.Terminate(requester)
	if nil != err {
		return err
	}

	return printJson(m.w, response)
}
