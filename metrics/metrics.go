// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package metrics - prometheus instrumentation of the ledger
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "bulletind"

// operation results
const (
	ResultOk       = "ok"
	ResultRejected = "rejected"
	ResultNoOp     = "noop"
)

// Operations - count of ledger mutations by operation and result
var Operations = prometheus.NewCounterVec(prometheus.CounterOpts{
	Namespace: namespace,
	Subsystem: "board",
	Name:      "operations_total",
	Help:      "ledger mutations by operation and result",
}, []string{"operation", "result"})

// Fees - total of listing fees kept by the ledger
var Fees = prometheus.NewCounter(prometheus.CounterOpts{
	Namespace: namespace,
	Subsystem: "board",
	Name:      "fees_total",
	Help:      "listing fees kept",
})

// Refunds - total of overpayments returned to owners
var Refunds = prometheus.NewCounter(prometheus.CounterOpts{
	Namespace: namespace,
	Subsystem: "board",
	Name:      "refunds_total",
	Help:      "overpayments returned",
})

// Votes - count of votes recorded by the roster
var Votes = prometheus.NewCounterVec(prometheus.CounterOpts{
	Namespace: namespace,
	Subsystem: "roster",
	Name:      "votes_total",
	Help:      "roster votes by result",
}, []string{"result"})

// RPCRequests - count of RPC calls by method
var RPCRequests = prometheus.NewCounterVec(prometheus.CounterOpts{
	Namespace: namespace,
	Subsystem: "rpc",
	Name:      "requests_total",
	Help:      "RPC calls by method",
}, []string{"method"})

// Register - add all ledger metrics and the state collector to a
// registry
func Register(registry prometheus.Registerer, state StateSource) error {
	collectors := []prometheus.Collector{
		Operations,
		Fees,
		Refunds,
		Votes,
		RPCRequests,
		NewStateCollector(state),
	}
	for _, c := range collectors {
		if err := registry.Register(c); nil != err {
			return err
		}
	}
	return nil
}
