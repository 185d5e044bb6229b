// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package rpccalls

import (
	"github.com/bitmark-inc/bulletind/account"
	"github.com/bitmark-inc/bulletind/bulletin"
	"github.com/bitmark-inc/bulletind/rpc/board"
)

// PostData - the bulletin to post
type PostData struct {
	Owner    account.Account
	Duration uint64
	Tendered uint64
	Text     string
}

// Post - post a bulletin, paying tendered from the owner's balance
func (client *Client) Post(data *PostData) (*board.PostReply, error) {
	args := board.PostArguments{
		Owner:    &data.Owner,
		Duration: data.Duration,
		Tendered: data.Tendered,
		Text:     data.Text,
	}

	var reply board.PostReply
	if err := client.call("Bulletin.Post", &args, &reply); nil != err {
		return nil, err
	}

	return &reply, nil
}

// Delete - remove the owner's bulletin
func (client *Client) Delete(owner account.Account) (*board.DeleteReply, error) {
	args := board.OwnerArguments{
		Owner: &owner,
	}

	var reply board.DeleteReply
	if err := client.call("Bulletin.Delete", &args, &reply); nil != err {
		return nil, err
	}

	return &reply, nil
}

// GetByOwner - the owner's bulletin
func (client *Client) GetByOwner(owner account.Account) (*bulletin.Record, error) {
	args := board.OwnerArguments{
		Owner: &owner,
	}

	var reply bulletin.Record
	if err := client.call("Bulletin.Get", &args, &reply); nil != err {
		return nil, err
	}

	return &reply, nil
}

// GetById - the bulletin with an identifier
func (client *Client) GetById(id uint32) (*bulletin.Record, error) {
	args := board.IdArguments{
		Id: id,
	}

	var reply bulletin.Record
	if err := client.call("Bulletin.GetById", &args, &reply); nil != err {
		return nil, err
	}

	return &reply, nil
}

// List - a page of bulletins
func (client *Client) List(start uint32, count int) (*board.ListReply, error) {
	args := board.ListArguments{
		Start: start,
		Count: count,
	}

	var reply board.ListReply
	if err := client.call("Bulletin.List", &args, &reply); nil != err {
		return nil, err
	}

	return &reply, nil
}

// Terminate - decommission an empty board
func (client *Client) Terminate(requester account.Account) (*board.TerminateReply, error) {
	args := board.TerminateArguments{
		Requester: &requester,
	}

	var reply board.TerminateReply
	if err := client.call("Bulletin.Terminate", &args, &reply); nil != err {
		return nil, err
	}

	return &reply, nil
}
