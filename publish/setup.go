// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package publish - broadcast ledger events on a ZMQ PUB socket
//
// Each event is sent as a multipart message:
//
//   topic (owner public key) ++ command ++ CBOR event
//
// so subscribers can filter on an owner by subscribing to the 32 byte
// key.
package publish

import (
	"github.com/bitmark-inc/bulletind/background"
	"github.com/bitmark-inc/bulletind/messagebus"
	"github.com/bitmark-inc/bulletind/zmqutil"
	"github.com/bitmark-inc/logger"
)

// Configuration - a block of configuration data
type Configuration struct {
	Broadcast  []string `gluamapper:"broadcast" json:"broadcast"`
	PrivateKey string   `gluamapper:"private_key" json:"private_key"`
	PublicKey  string   `gluamapper:"public_key" json:"public_key"`
}

// Publisher - the running broadcaster
type Publisher struct {
	log        *logger.L
	brdc       *broadcaster
	background *background.T
}

// New - bind the publishing sockets and start forwarding events from
// the bus
//
// returns nil without error if no broadcast address is configured
func New(configuration *Configuration, bus *messagebus.BroadcastQueue) (*Publisher, error) {
	log := logger.New("publish")

	if 0 == len(configuration.Broadcast) {
		log.Info("no broadcast addresses: publishing disabled")
		return nil, nil
	}

	log.Info("starting…")

	privateKey := []byte{}
	publicKey := []byte{}
	if "" != configuration.PrivateKey {
		var err error
		privateKey, err = zmqutil.ReadPrivateKeyFile(configuration.PrivateKey)
		if nil != err {
			log.Errorf("read private key file: %q  error: %s", configuration.PrivateKey, err)
			return nil, err
		}
		publicKey, err = zmqutil.ReadPublicKeyFile(configuration.PublicKey)
		if nil != err {
			log.Errorf("read public key file: %q  error: %s", configuration.PublicKey, err)
			return nil, err
		}
		log.Tracef("public key: %x", publicKey)
	}

	brdc, err := newBroadcaster(log, privateKey, publicKey, configuration.Broadcast, bus)
	if nil != err {
		return nil, err
	}

	p := &Publisher{
		log:  log,
		brdc: brdc,
	}

	log.Info("start background…")
	p.background = background.Start(background.Processes{brdc}, nil)

	return p, nil
}

// Stop - stop the broadcaster and close its socket
func (p *Publisher) Stop() {
	if nil == p {
		return
	}
	p.log.Info("shutting down…")
	p.background.Stop()
	p.log.Info("finished")
	p.log.Flush()
}
