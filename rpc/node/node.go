// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package node

import (
	"time"

	"golang.org/x/time/rate"

	"github.com/bitmark-inc/bulletind/account"
	"github.com/bitmark-inc/bulletind/bulletin"
	"github.com/bitmark-inc/bulletind/counter"
	"github.com/bitmark-inc/bulletind/metrics"
	"github.com/bitmark-inc/bulletind/payment"
	"github.com/bitmark-inc/bulletind/rpc/ratelimit"
	"github.com/bitmark-inc/logger"
)

const (
	rateLimitNode = 200
	rateBurstNode = 100
)

// Node - type for RPC calls
type Node struct {
	Log        *logger.L
	Limiter    *rate.Limiter
	Start      time.Time
	Version    string
	Checkpoint bulletin.Checkpoint
	Board      *bulletin.Board
	Payment    payment.Provider
	Custody    account.Account
	counter    *counter.Counter
}

// New - create the RPC service
func New(
	log *logger.L,
	start time.Time,
	version string,
	counter *counter.Counter,
	checkpoint bulletin.Checkpoint,
	board *bulletin.Board,
	provider payment.Provider,
	custody account.Account,
) *Node {
	return &Node{
		Log:        log,
		Limiter:    rate.NewLimiter(rateLimitNode, rateBurstNode),
		Start:      start,
		Version:    version,
		Checkpoint: checkpoint,
		Board:      board,
		Payment:    provider,
		Custody:    custody,
		counter:    counter,
	}
}

// InfoArguments - empty arguments for info request
type InfoArguments struct{}

// InfoReply - results from info request
type InfoReply struct {
	Version        string          `json:"version"`
	Uptime         string          `json:"uptime"`
	Height         uint64          `json:"height"`
	Price          uint64          `json:"price,string"`
	LiveCount      uint32          `json:"liveCount"`
	NextId         uint32          `json:"nextId"`
	Decommissioned bool            `json:"decommissioned"`
	Custody        account.Account `json:"custody"`
	CustodyBalance uint64          `json:"custodyBalance,string"`
	RPCs           uint64          `json:"rpcs"`
}

// Info - return some information about this node
func (node *Node) Info(_ *InfoArguments, reply *InfoReply) error {
	if err := ratelimit.Limit(node.Limiter); nil != err {
		return err
	}
	metrics.RPCRequests.WithLabelValues("Node.Info").Inc()

	reply.Version = node.Version
	reply.Uptime = time.Since(node.Start).String()
	reply.Height = node.Checkpoint.Height()
	reply.Price = node.Board.Price()
	reply.LiveCount = node.Board.LiveCount()
	reply.NextId = node.Board.NextId()
	reply.Decommissioned = node.Board.Decommissioned()
	reply.Custody = node.Custody
	reply.CustodyBalance = node.Payment.Balance(node.Custody)
	reply.RPCs = node.counter.Uint64()
	return nil
}
