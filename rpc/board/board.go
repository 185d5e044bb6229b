// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package board - the Bulletin RPC service
//
// the caller identity is taken from the arguments, no signature is
// checked
package board

import (
	"golang.org/x/time/rate"

	"github.com/bitmark-inc/bulletind/account"
	"github.com/bitmark-inc/bulletind/bulletin"
	"github.com/bitmark-inc/bulletind/fault"
	"github.com/bitmark-inc/bulletind/metrics"
	"github.com/bitmark-inc/bulletind/rpc/ratelimit"
	"github.com/bitmark-inc/logger"
)

const (
	MaximumListCount = 100
	rateLimitBoard   = 200
	rateBurstBoard   = 100
)

// Bulletin - type for the RPC
type Bulletin struct {
	Log     *logger.L
	Limiter *rate.Limiter
	Board   *bulletin.Board
}

// New - create the RPC service
func New(log *logger.L, board *bulletin.Board) *Bulletin {
	return &Bulletin{
		Log:     log,
		Limiter: rate.NewLimiter(rateLimitBoard, rateBurstBoard),
		Board:   board,
	}
}

// Bulletin post
// -------------

// PostArguments - arguments for RPC
type PostArguments struct {
	Owner    *account.Account `json:"owner"`           // base58
	Duration uint64           `json:"duration,string"` // blocks
	Text     string           `json:"text"`
	Tendered uint64           `json:"tendered,string"` // amount paid into custody
}

// PostReply - result of post RPC
type PostReply struct {
	Id        uint32 `json:"id"`
	ExpiresAt uint64 `json:"expiresAt,string"`
}

// Post - pay the tendered amount into custody and post a bulletin
//
// if the post is rejected the tendered amount is returned
func (b *Bulletin) Post(arguments *PostArguments, reply *PostReply) error {
	if err := ratelimit.Limit(b.Limiter); nil != err {
		return err
	}
	metrics.RPCRequests.WithLabelValues("Bulletin.Post").Inc()

	if nil == arguments || nil == arguments.Owner || arguments.Owner.IsZero() {
		return fault.InvalidAccount
	}
	owner := *arguments.Owner

	b.Log.Infof("post: owner: %s  duration: %d  tendered: %d", owner, arguments.Duration, arguments.Tendered)

	event, err := b.Board.Post(owner, arguments.Duration, arguments.Text, arguments.Tendered)
	if nil != err {
		return err
	}

	reply.Id = event.Id
	reply.ExpiresAt = event.ExpiresAt
	return nil
}

// Bulletin delete
// ---------------

// OwnerArguments - arguments naming an owner
type OwnerArguments struct {
	Owner *account.Account `json:"owner"` // base58
}

// DeleteReply - result of delete RPC
type DeleteReply struct {
	Id uint32 `json:"id"`
}

// Delete - remove the owner's bulletin
func (b *Bulletin) Delete(arguments *OwnerArguments, reply *DeleteReply) error {
	if err := ratelimit.Limit(b.Limiter); nil != err {
		return err
	}
	metrics.RPCRequests.WithLabelValues("Bulletin.Delete").Inc()

	if nil == arguments || nil == arguments.Owner || arguments.Owner.IsZero() {
		return fault.InvalidAccount
	}

	id, err := b.Board.Remove(*arguments.Owner)
	if nil != err {
		return err
	}
	reply.Id = id
	return nil
}

// Bulletin get
// ------------

// Get - the bulletin of an owner
func (b *Bulletin) Get(arguments *OwnerArguments, reply *bulletin.Record) error {
	if err := ratelimit.Limit(b.Limiter); nil != err {
		return err
	}
	metrics.RPCRequests.WithLabelValues("Bulletin.Get").Inc()

	if nil == arguments || nil == arguments.Owner || arguments.Owner.IsZero() {
		return fault.InvalidAccount
	}

	record, found := b.Board.GetByAccount(*arguments.Owner)
	if !found {
		return fault.BulletinNotFound
	}
	*reply = *record
	return nil
}

// IdArguments - arguments naming a bulletin identifier
type IdArguments struct {
	Id uint32 `json:"id"`
}

// GetById - the bulletin with an identifier
func (b *Bulletin) GetById(arguments *IdArguments, reply *bulletin.Record) error {
	if err := ratelimit.Limit(b.Limiter); nil != err {
		return err
	}
	metrics.RPCRequests.WithLabelValues("Bulletin.GetById").Inc()

	if nil == arguments {
		return fault.MissingParameters
	}

	record, found := b.Board.GetById(arguments.Id)
	if !found {
		return fault.BulletinNotFound
	}
	*reply = *record
	return nil
}

// Bulletin list
// -------------

// ListArguments - arguments for RPC
type ListArguments struct {
	Start uint32 `json:"start"` // first identifier
	Count int    `json:"count"` // number of records
}

// ListReply - result of list RPC
type ListReply struct {
	Next      uint32           `json:"next"` // Start value for the next call
	Bulletins []bulletin.Entry `json:"bulletins"`
}

// List - stored bulletins in identifier order
func (b *Bulletin) List(arguments *ListArguments, reply *ListReply) error {
	if nil == arguments {
		return fault.MissingParameters
	}
	if err := ratelimit.LimitN(b.Limiter, arguments.Count, MaximumListCount); nil != err {
		return err
	}
	metrics.RPCRequests.WithLabelValues("Bulletin.List").Inc()

	entries, err := b.Board.List(arguments.Start, arguments.Count)
	if nil != err {
		return err
	}

	reply.Next = arguments.Start
	if n := len(entries); n > 0 {
		reply.Next = entries[n-1].Id + 1
	}
	reply.Bulletins = entries
	return nil
}

// Bulletin terminate
// ------------------

// TerminateArguments - arguments for RPC
type TerminateArguments struct {
	Requester *account.Account `json:"requester"` // base58
}

// TerminateReply - result of terminate RPC
type TerminateReply struct {
	Terminated bool `json:"terminated"`
}

// Terminate - decommission an empty board, paying the custody balance
// to the requester
func (b *Bulletin) Terminate(arguments *TerminateArguments, reply *TerminateReply) error {
	if err := ratelimit.Limit(b.Limiter); nil != err {
		return err
	}
	metrics.RPCRequests.WithLabelValues("Bulletin.Terminate").Inc()

	if nil == arguments || nil == arguments.Requester || arguments.Requester.IsZero() {
		return fault.InvalidAccount
	}

	terminated, err := b.Board.Decommission(*arguments.Requester)
	if nil != err {
		return err
	}
	reply.Terminated = terminated
	return nil
}
