// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package bulletin

import (
	"github.com/bitmark-inc/bulletind/account"
	"github.com/bitmark-inc/bulletind/messagebus"
	"github.com/bitmark-inc/logger"
)

// event commands as sent on the message bus
const (
	PostedCommand  = "posted"
	RemovedCommand = "removed"
)

// PostedEvent - a bulletin was stored
type PostedEvent struct {
	Owner     account.Account `json:"owner"`
	ExpiresAt uint64          `json:"expiresAt"`
	Id        uint32          `json:"id"`
}

// RemovedEvent - a bulletin was deleted by its owner
type RemovedEvent struct {
	Owner account.Account `json:"owner"`
	Id    uint32          `json:"id"`
}

// Sink - receives the events of successful mutations
type Sink interface {
	Posted(PostedEvent)
	Removed(RemovedEvent)
}

// broadcast form: owner as its packed bytes
type packedPosted struct {
	Owner     []byte `cbor:"1,keyasint"`
	ExpiresAt uint64 `cbor:"2,keyasint"`
	Id        uint32 `cbor:"3,keyasint"`
}

type packedRemoved struct {
	Owner []byte `cbor:"1,keyasint"`
	Id    uint32 `cbor:"2,keyasint"`
}

// BusSink - forwards events to a message bus with the owner as topic
type BusSink struct {
	bus *messagebus.BroadcastQueue
}

// NewBusSink - sink writing to the given bus
func NewBusSink(bus *messagebus.BroadcastQueue) *BusSink {
	return &BusSink{
		bus: bus,
	}
}

// Posted - implements Sink
func (s *BusSink) Posted(e PostedEvent) {
	data, err := encMode.Marshal(packedPosted{
		Owner:     e.Owner.Bytes(),
		ExpiresAt: e.ExpiresAt,
		Id:        e.Id,
	})
	logger.PanicIfError("bulletin: pack posted event", err)
	s.bus.Send(PostedCommand, e.Owner.Key(), data)
}

// Removed - implements Sink
func (s *BusSink) Removed(e RemovedEvent) {
	data, err := encMode.Marshal(packedRemoved{
		Owner: e.Owner.Bytes(),
		Id:    e.Id,
	})
	logger.PanicIfError("bulletin: pack removed event", err)
	s.bus.Send(RemovedCommand, e.Owner.Key(), data)
}

// DecodePosted - decode the payload of a posted message
func DecodePosted(data []byte) (PostedEvent, error) {
	var p packedPosted
	err := decMode.Unmarshal(data, &p)
	if nil != err {
		return PostedEvent{}, err
	}
	owner, err := account.FromBytes(p.Owner)
	if nil != err {
		return PostedEvent{}, err
	}
	return PostedEvent{Owner: owner, ExpiresAt: p.ExpiresAt, Id: p.Id}, nil
}

// DecodeRemoved - decode the payload of a removed message
func DecodeRemoved(data []byte) (RemovedEvent, error) {
	var p packedRemoved
	err := decMode.Unmarshal(data, &p)
	if nil != err {
		return RemovedEvent{}, err
	}
	owner, err := account.FromBytes(p.Owner)
	if nil != err {
		return RemovedEvent{}, err
	}
	return RemovedEvent{Owner: owner, Id: p.Id}, nil
}
