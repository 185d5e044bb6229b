// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package rpccalls

import (
	"github.com/bitmark-inc/bulletind/account"
	"github.com/bitmark-inc/bulletind/roster"
	rpcroster "github.com/bitmark-inc/bulletind/rpc/roster"
)

// Operators - the whole roster
func (client *Client) Operators() (*rpcroster.ListReply, error) {
	var reply rpcroster.ListReply
	if err := client.call("Roster.List", &rpcroster.ListArguments{}, &reply); nil != err {
		return nil, err
	}

	return &reply, nil
}

// Operator - one roster entry
func (client *Client) Operator(id account.Account) (*roster.Operator, error) {
	args := rpcroster.OperatorArguments{
		Id: &id,
	}

	var reply roster.Operator
	if err := client.call("Roster.Get", &args, &reply); nil != err {
		return nil, err
	}

	return &reply, nil
}

// Vote - vote for an operator
func (client *Client) Vote(voter account.Account, operator account.Account) (*rpcroster.VoteReply, error) {
	args := rpcroster.VoteArguments{
		Voter:    &voter,
		Operator: &operator,
	}

	var reply rpcroster.VoteReply
	if err := client.call("Roster.Vote", &args, &reply); nil != err {
		return nil, err
	}

	return &reply, nil
}

// VotedFor - the operators a voter has voted for
func (client *Client) VotedFor(voter account.Account) (*rpcroster.VotedForReply, error) {
	args := rpcroster.VotedForArguments{
		Voter: &voter,
	}

	var reply rpcroster.VotedForReply
	if err := client.call("Roster.VotedFor", &args, &reply); nil != err {
		return nil, err
	}

	return &reply, nil
}
