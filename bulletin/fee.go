// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package bulletin

import (
	"math"
	"math/bits"
)

// ListingFee - price per block times the number of blocks
//
// saturates at math.MaxUint64 instead of wrapping
func ListingFee(pricePerBlock uint64, duration uint64) uint64 {
	hi, lo := bits.Mul64(pricePerBlock, duration)
	if 0 != hi {
		return math.MaxUint64
	}
	return lo
}

// expiry block, false if it cannot be represented
func expiryHeight(checkpoint uint64, duration uint64) (uint64, bool) {
	sum, carry := bits.Add64(checkpoint, duration, 0)
	return sum, 0 == carry
}
