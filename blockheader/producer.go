// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package blockheader

import (
	"time"
)

// Run - background process producing one block per interval
func (h *Header) Run(args interface{}, shutdown <-chan struct{}) {
	log := h.log

	if h.interval <= 0 {
		log.Info("block production disabled")
		<-shutdown
		return
	}

	log.Info("starting…")

	ticker := time.NewTicker(h.interval)
	defer ticker.Stop()

loop:
	for {
		select {
		case <-shutdown:
			break loop
		case <-ticker.C:
			height, err := h.Advance()
			if nil != err {
				log.Errorf("advance error: %s", err)
				continue loop
			}
			log.Debugf("block height: %d", height)
		}
	}

	log.Info("shutting down…")
	log.Flush()
}
