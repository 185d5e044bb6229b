// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"github.com/bitmark-inc/bulletind/fault"
)

// common errors - keep in alphabetic order
const (
	ErrAmountIsRequired   = fault.InvalidError("amount is required")
	ErrDurationIsRequired = fault.InvalidError("duration is required")
	ErrIdOrOwnerRequired  = fault.InvalidError("one of id or owner is required")
	ErrInvalidId          = fault.InvalidError("invalid identifier")
)
