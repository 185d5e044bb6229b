// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package fault - sentinel errors shared by the board, the roster
// and the RPC services
//
// Callers test with == against these values; the one structured
// error, InsufficientPaymentError, carries the required fee.
package fault
