// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package metrics_test

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"

	"github.com/bitmark-inc/bulletind/metrics"
)

type fixedState struct{}

func (fixedState) LiveCount() uint32    { return 3 }
func (fixedState) NextId() uint32       { return 7 }
func (fixedState) Height() uint64       { return 42 }
func (fixedState) Decommissioned() bool { return false }

func TestStateCollector(t *testing.T) {
	registry := prometheus.NewRegistry()
	err := metrics.Register(registry, fixedState{})
	assert.Nil(t, err, "register error")

	metrics.Operations.WithLabelValues("post", metrics.ResultOk).Inc()

	families, err := registry.Gather()
	assert.Nil(t, err, "gather error")

	values := make(map[string]float64)
	for _, f := range families {
		for _, m := range f.GetMetric() {
			if nil != m.GetGauge() {
				values[f.GetName()] = m.GetGauge().GetValue()
			}
		}
	}

	assert.Equal(t, 3.0, values["bulletind_board_live_count"], "live count")
	assert.Equal(t, 7.0, values["bulletind_board_next_id"], "next id")
	assert.Equal(t, 42.0, values["bulletind_block_height"], "height")
	assert.Equal(t, 0.0, values["bulletind_board_decommissioned"], "decommissioned")

	// registering twice fails
	err = metrics.Register(registry, fixedState{})
	assert.NotNil(t, err, "duplicate registration")
}
