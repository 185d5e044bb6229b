// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package roster

import (
	"golang.org/x/time/rate"

	"github.com/bitmark-inc/bulletind/account"
	"github.com/bitmark-inc/bulletind/fault"
	"github.com/bitmark-inc/bulletind/metrics"
	"github.com/bitmark-inc/bulletind/roster"
	"github.com/bitmark-inc/bulletind/rpc/ratelimit"
	"github.com/bitmark-inc/logger"
)

const (
	rateLimitRoster = 200
	rateBurstRoster = 100
)

// Roster - type for the RPC
type Roster struct {
	Log     *logger.L
	Limiter *rate.Limiter
	Roster  *roster.Roster
}

// New - create the RPC service
func New(log *logger.L, r *roster.Roster) *Roster {
	return &Roster{
		Log:     log,
		Limiter: rate.NewLimiter(rateLimitRoster, rateBurstRoster),
		Roster:  r,
	}
}

// ListArguments - empty arguments
type ListArguments struct{}

// ListReply - all operators
type ListReply struct {
	Operators []roster.Operator `json:"operators"`
}

// List - all operators in roster order
func (r *Roster) List(_ *ListArguments, reply *ListReply) error {
	if err := ratelimit.Limit(r.Limiter); nil != err {
		return err
	}
	metrics.RPCRequests.WithLabelValues("Roster.List").Inc()

	reply.Operators = r.Roster.Operators()
	return nil
}

// OperatorArguments - arguments naming an operator
type OperatorArguments struct {
	Id *account.Account `json:"id"` // base58
}

// Get - one operator
func (r *Roster) Get(arguments *OperatorArguments, reply *roster.Operator) error {
	if err := ratelimit.Limit(r.Limiter); nil != err {
		return err
	}
	metrics.RPCRequests.WithLabelValues("Roster.Get").Inc()

	if nil == arguments || nil == arguments.Id || arguments.Id.IsZero() {
		return fault.InvalidAccount
	}

	op := r.Roster.Operator(*arguments.Id)
	if op.IsZero() {
		return fault.OperatorNotFound
	}
	*reply = op
	return nil
}

// VoteArguments - arguments for RPC
type VoteArguments struct {
	Voter    *account.Account `json:"voter"`    // base58
	Operator *account.Account `json:"operator"` // base58
}

// VoteReply - result of vote RPC
type VoteReply struct {
	Recorded bool `json:"recorded"`
}

// Vote - one vote for an operator, repeat votes are ignored
func (r *Roster) Vote(arguments *VoteArguments, reply *VoteReply) error {
	if err := ratelimit.Limit(r.Limiter); nil != err {
		return err
	}
	metrics.RPCRequests.WithLabelValues("Roster.Vote").Inc()

	if nil == arguments || nil == arguments.Voter || arguments.Voter.IsZero() ||
		nil == arguments.Operator || arguments.Operator.IsZero() {
		return fault.InvalidAccount
	}

	recorded, err := r.Roster.AddVote(*arguments.Voter, *arguments.Operator)
	if nil != err {
		return err
	}
	reply.Recorded = recorded
	return nil
}

// VotedForArguments - arguments for RPC
type VotedForArguments struct {
	Voter *account.Account `json:"voter"` // base58
}

// VotedForReply - operators voted for
type VotedForReply struct {
	Operators []account.Account `json:"operators"`
}

// VotedFor - the operators a voter has voted for
func (r *Roster) VotedFor(arguments *VotedForArguments, reply *VotedForReply) error {
	if err := ratelimit.Limit(r.Limiter); nil != err {
		return err
	}
	metrics.RPCRequests.WithLabelValues("Roster.VotedFor").Inc()

	if nil == arguments || nil == arguments.Voter || arguments.Voter.IsZero() {
		return fault.InvalidAccount
	}

	reply.Operators = r.Roster.VotedFor(*arguments.Voter)
	return nil
}
