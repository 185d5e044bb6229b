// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package listeners - network front ends of the RPC server
package listeners

import (
	"net"
	"strings"

	"github.com/bitmark-inc/bulletind/fault"
	"github.com/bitmark-inc/logger"
)

const minConnectionCount = 1

// Listener - a started network front end
type Listener interface {
	Serve() error
	Close()
}

// change "*:PORT" to "[::]:PORT" on the assumption that this will
// listen on tcp4 and tcp6, and return the network for each address
func parseListenAddress(addrs []string, log *logger.L) ([]string, []string, error) {
	networks := make([]string, len(addrs))
	addresses := make([]string, len(addrs))
	for i, listen := range addrs {
		host, port, err := net.SplitHostPort(strings.TrimSpace(listen))
		if nil != err {
			log.Errorf("listen: %q  error: %s", listen, err)
			return nil, nil, fault.InvalidIpAddress
		}

		switch {
		case "*" == host:
			host = "::"
			networks[i] = "tcp"
		case strings.Contains(host, ":"):
			networks[i] = "tcp6"
		default:
			networks[i] = "tcp4"
		}

		if ip := net.ParseIP(host); nil == ip {
			log.Errorf("listen: %q  error: %s", listen, fault.InvalidIpAddress)
			return nil, nil, fault.InvalidIpAddress
		}
		addresses[i] = net.JoinHostPort(host, port)
	}

	return networks, addresses, nil
}
