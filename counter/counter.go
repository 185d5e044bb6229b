// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package counter - bounded count of open connections
package counter

import (
	"sync/atomic"
)

// Counter - connection slots in use, safe from any goroutine
type Counter uint64

// Acquire - take one slot if fewer than limit are in use
func (c *Counter) Acquire(limit uint64) bool {
	for {
		n := atomic.LoadUint64((*uint64)(c))
		if n >= limit {
			return false
		}
		if atomic.CompareAndSwapUint64((*uint64)(c), n, n+1) {
			return true
		}
	}
}

// Release - return a slot taken by Acquire
func (c *Counter) Release() {
	atomic.AddUint64((*uint64)(c), ^uint64(0))
}

// Uint64 - slots in use
func (c *Counter) Uint64() uint64 {
	return atomic.LoadUint64((*uint64)(c))
}
