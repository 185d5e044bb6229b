// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// StateSource - current ledger values sampled at scrape time
type StateSource interface {
	LiveCount() uint32
	NextId() uint32
	Height() uint64
	Decommissioned() bool
}

// StateCollector - exports the ledger state as gauges
type StateCollector struct {
	source StateSource

	live           *prometheus.Desc
	nextId         *prometheus.Desc
	height         *prometheus.Desc
	decommissioned *prometheus.Desc
}

// NewStateCollector - collector reading from the given source
func NewStateCollector(source StateSource) *StateCollector {
	return &StateCollector{
		source: source,

		live: prometheus.NewDesc(
			namespace+"_board_live_count",
			"Number of bulletins currently stored",
			nil, nil,
		),
		nextId: prometheus.NewDesc(
			namespace+"_board_next_id",
			"Identifier the next bulletin will receive",
			nil, nil,
		),
		height: prometheus.NewDesc(
			namespace+"_block_height",
			"Current block height",
			nil, nil,
		),
		decommissioned: prometheus.NewDesc(
			namespace+"_board_decommissioned",
			"1 once the board has been decommissioned",
			nil, nil,
		),
	}
}

// Describe - implements prometheus.Collector
func (c *StateCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.live
	ch <- c.nextId
	ch <- c.height
	ch <- c.decommissioned
}

// Collect - implements prometheus.Collector
func (c *StateCollector) Collect(ch chan<- prometheus.Metric) {
	decommissioned := 0.0
	if c.source.Decommissioned() {
		decommissioned = 1.0
	}

	ch <- prometheus.MustNewConstMetric(c.live, prometheus.GaugeValue, float64(c.source.LiveCount()))
	ch <- prometheus.MustNewConstMetric(c.nextId, prometheus.GaugeValue, float64(c.source.NextId()))
	ch <- prometheus.MustNewConstMetric(c.height, prometheus.GaugeValue, float64(c.source.Height()))
	ch <- prometheus.MustNewConstMetric(c.decommissioned, prometheus.GaugeValue, decommissioned)
}
