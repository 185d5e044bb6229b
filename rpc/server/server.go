// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package server

import (
	"net/rpc"
	"time"

	"github.com/bitmark-inc/bulletind/bulletin"
	"github.com/bitmark-inc/bulletind/counter"
	"github.com/bitmark-inc/bulletind/payment"
	"github.com/bitmark-inc/bulletind/roster"
	"github.com/bitmark-inc/bulletind/rpc/bank"
	"github.com/bitmark-inc/bulletind/rpc/board"
	"github.com/bitmark-inc/bulletind/rpc/node"
	rpcroster "github.com/bitmark-inc/bulletind/rpc/roster"
	"github.com/bitmark-inc/logger"
)

// Services - the components reachable over RPC
type Services struct {
	Board       *bulletin.Board
	Roster      *roster.Roster
	Bank        *payment.Bank
	FaucetLimit uint64
}

// Create - an RPC server with all services registered
func Create(log *logger.L, version string, rpcCount *counter.Counter, services *Services) *rpc.Server {
	start := time.Now().UTC()

	server := rpc.NewServer()

	_ = server.Register(board.New(log, services.Board))
	_ = server.Register(rpcroster.New(log, services.Roster))
	_ = server.Register(bank.New(log, services.Bank, services.FaucetLimit))
	_ = server.Register(node.New(log, start, version, rpcCount, services.Board, services.Board, services.Bank, services.Bank.Custody()))

	return server
}
