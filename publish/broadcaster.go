// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package publish

import (
	zmq "github.com/pebbe/zmq4"

	"github.com/bitmark-inc/bulletind/messagebus"
	"github.com/bitmark-inc/bulletind/zmqutil"
	"github.com/bitmark-inc/logger"
)

const (
	broadcasterZapDomain = "broadcaster"
	queueSize            = 1000
)

type broadcaster struct {
	log    *logger.L
	socket *zmq.Socket
	bus    *messagebus.BroadcastQueue
	queue  <-chan messagebus.Message
}

func newBroadcaster(log *logger.L, privateKey []byte, publicKey []byte, broadcast []string, bus *messagebus.BroadcastQueue) (*broadcaster, error) {
	socket, err := zmqutil.NewBind(log, zmq.PUB, broadcasterZapDomain, privateKey, publicKey, broadcast)
	if nil != err {
		log.Errorf("bind error: %s", err)
		return nil, err
	}

	return &broadcaster{
		log:    log,
		socket: socket,
		bus:    bus,
		queue:  bus.Chan(queueSize),
	}, nil
}

// Run - forward bus messages until shutdown
func (brdc *broadcaster) Run(args interface{}, shutdown <-chan struct{}) {
	log := brdc.log

	log.Info("starting…")

loop:
	for {
		select {
		case <-shutdown:
			break loop
		case item := <-brdc.queue:
			log.Debugf("sending: %s  topic: %x", item.Command, item.Topic)
			err := brdc.process(&item)
			if nil != err {
				log.Errorf("send: %s  error: %s", item.Command, err)
			}
		}
	}

	brdc.bus.Release(brdc.queue)
	brdc.socket.Close()
	log.Info("stopped")
}

// send one message as topic ++ command ++ parameters
func (brdc *broadcaster) process(item *messagebus.Message) error {
	parts := make([]interface{}, 0, 2+len(item.Parameters))
	parts = append(parts, item.Topic, item.Command)
	for _, p := range item.Parameters {
		parts = append(parts, p)
	}
	_, err := brdc.socket.SendMessageDontwait(parts...)
	return err
}
