// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package messagebus

import (
	"bytes"
	"sync"
)

// internal constants
const (
	defaultQueueSize = 1000
)

// Message - a single event
type Message struct {
	Command    string
	Topic      []byte
	Parameters [][]byte
}

type listener struct {
	topic []byte
	queue chan Message
}

// BroadcastQueue - delivers each message to every matching listener
//
// delivery never blocks the sender: a listener whose queue is full
// misses the message
type BroadcastQueue struct {
	sync.RWMutex

	listeners []*listener
	dropped   uint64
}

// New - create an empty queue
func New() *BroadcastQueue {
	return &BroadcastQueue{}
}

// Send - deliver a message to all current listeners
func (q *BroadcastQueue) Send(command string, topic []byte, parameters ...[]byte) {
	m := Message{
		Command:    command,
		Topic:      topic,
		Parameters: parameters,
	}

	q.RLock()
	dropped := uint64(0)
	for _, l := range q.listeners {
		if !bytes.HasPrefix(topic, l.topic) {
			continue
		}
		select {
		case l.queue <- m:
		default:
			dropped += 1
		}
	}
	q.RUnlock()

	if 0 != dropped {
		q.Lock()
		q.dropped += dropped
		q.Unlock()
	}
}

// Chan - a new listener for every message
//
// size <= 0 selects the default queue size
func (q *BroadcastQueue) Chan(size int) <-chan Message {
	return q.Subscribe(nil, size)
}

// Subscribe - a new listener for messages whose topic starts with
// the given prefix
func (q *BroadcastQueue) Subscribe(topic []byte, size int) <-chan Message {
	if size <= 0 {
		size = defaultQueueSize
	}

	l := &listener{
		topic: append([]byte{}, topic...),
		queue: make(chan Message, size),
	}

	q.Lock()
	q.listeners = append(q.listeners, l)
	q.Unlock()

	return l.queue
}

// Release - remove a listener and close its channel
func (q *BroadcastQueue) Release(c <-chan Message) {
	q.Lock()
	defer q.Unlock()

	for i, l := range q.listeners {
		if (<-chan Message)(l.queue) == c {
			q.listeners = append(q.listeners[:i], q.listeners[i+1:]...)
			close(l.queue)
			return
		}
	}
}

// Dropped - count of messages a full listener missed
func (q *BroadcastQueue) Dropped() uint64 {
	q.RLock()
	defer q.RUnlock()
	return q.dropped
}
