// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"runtime"
	"time"

	"github.com/bitmark-inc/bulletind/messagebus"
	"github.com/bitmark-inc/logger"
)

const (
	statsInterval = time.Minute
	megabyte      = 1 << 20
)

// background reporter of heap usage and dropped events
type memoryStats struct {
	log *logger.L
	bus *messagebus.BroadcastQueue
}

func newMemoryStats(bus *messagebus.BroadcastQueue) *memoryStats {
	return &memoryStats{
		log: logger.New("memory"),
		bus: bus,
	}
}

func (s *memoryStats) Run(args interface{}, shutdown <-chan struct{}) {
	ticker := time.NewTicker(statsInterval)
	defer ticker.Stop()

	s.report()
	for {
		select {
		case <-shutdown:
			return
		case <-ticker.C:
			s.report()
		}
	}
}

func (s *memoryStats) report() {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)

	s.log.Infof("heap: %d M  total allocated: %d M  system: %d M  gc cycles: %d",
		m.HeapAlloc/megabyte, m.TotalAlloc/megabyte, m.Sys/megabyte, m.NumGC)
	s.log.Infof("goroutines: %d  events dropped: %d", runtime.NumGoroutine(), s.bus.Dropped())
}
