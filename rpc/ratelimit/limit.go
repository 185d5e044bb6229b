// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package ratelimit - throttling of RPC requests
package ratelimit

import (
	"time"

	"golang.org/x/time/rate"

	"github.com/bitmark-inc/bulletind/fault"
)

// wait out a reservation of n tokens, failing when n exceeds the burst
func take(limiter *rate.Limiter, n int) error {
	reservation := limiter.ReserveN(time.Now(), n)
	if !reservation.OK() {
		return fault.RateLimiting
	}
	if delay := reservation.Delay(); delay > 0 {
		time.Sleep(delay)
	}
	return nil
}

// Limit - charge one token for a request
func Limit(limiter *rate.Limiter) error {
	return take(limiter, 1)
}

// LimitN - charge one token per requested item
//
// a count outside 1..maximumCount still costs a token and then fails
// with InvalidCount
func LimitN(limiter *rate.Limiter, count int, maximumCount int) error {
	if count > 0 && count <= maximumCount {
		return take(limiter, count)
	}
	if err := take(limiter, 1); nil != err {
		return err
	}
	return fault.InvalidCount
}
