// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package zmqutil

import (
	"strings"
	"sync"
	"time"

	zmq "github.com/pebbe/zmq4"

	"github.com/bitmark-inc/logger"
)

const (
	heartbeatInterval = 15 * time.Second
	heartbeatTimeout  = 60 * time.Second
	heartbeatTTL      = 120 * time.Second
)

var (
	authOnce  sync.Once
	authError error
)

// StartAuthentication - run the ZAP handler needed by CURVE sockets
//
// safe to call repeatedly; later calls report the first result
func StartAuthentication() error {
	authOnce.Do(func() {
		zmq.AuthSetVerbose(false)
		authError = zmq.AuthStart()
	})
	return authError
}

// CanonicalAddress - ZMQ endpoint for a listen address and whether
// it is IPv6
//
//   "127.0.0.1:2139"   -> "tcp://127.0.0.1:2139"
//   "[::1]:2139"       -> "tcp://[::1]:2139"
//   "*:2139"           -> "tcp://*:2139"
func CanonicalAddress(address string) (string, bool) {
	endpoint := strings.TrimSpace(address)
	if !strings.Contains(endpoint, "://") {
		endpoint = "tcp://" + endpoint
	}
	return endpoint, strings.Contains(endpoint, "[")
}

// NewBind - create one socket bound to all the listen addresses
//
// with an empty private key the socket is not encrypted
func NewBind(log *logger.L, socketType zmq.Type, zapDomain string, privateKey []byte, publicKey []byte, listen []string) (*zmq.Socket, error) {
	v6 := false
	endpoints := make([]string, 0, len(listen))
	for _, address := range listen {
		endpoint, isV6 := CanonicalAddress(address)
		endpoints = append(endpoints, endpoint)
		v6 = v6 || isV6
	}

	socket, err := NewServerSocket(socketType, zapDomain, privateKey, publicKey, v6)
	if nil != err {
		return nil, err
	}

	for i, endpoint := range endpoints {
		err = socket.Bind(endpoint)
		if nil != err {
			log.Errorf("cannot bind[%d]: %q  error: %s", i, endpoint, err)
			socket.Close()
			return nil, err
		}
		log.Infof("bind[%d]: %q  IPv6: %t", i, endpoint, v6)
	}
	return socket, nil
}

// NewServerSocket - create a socket suitable for a server side connection
func NewServerSocket(socketType zmq.Type, zapDomain string, privateKey []byte, publicKey []byte, v6 bool) (*zmq.Socket, error) {
	socket, err := zmq.NewSocket(socketType)
	if nil != err {
		return nil, err
	}

	if 0 != len(privateKey) {
		err = StartAuthentication()
		if nil != err {
			socket.Close()
			return nil, err
		}

		// allow any client to connect
		zmq.AuthCurveAdd(zapDomain, zmq.CURVE_ALLOW_ANY)

		socket.SetCurveServer(1)
		socket.SetCurveSecretkey(string(privateKey))
		socket.SetZapDomain(zapDomain)
		socket.SetIdentity(string(publicKey)) // just use public key for identity
	}

	socket.SetIpv6(v6)
	socket.SetLinger(0)

	// heartbeat
	socket.SetHeartbeatIvl(heartbeatInterval)
	socket.SetHeartbeatTimeout(heartbeatTimeout)
	socket.SetHeartbeatTtl(heartbeatTTL)

	return socket, nil
}
