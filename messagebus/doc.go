// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package messagebus - fan out of ledger events to in-process
// listeners
//
// Every message carries a topic (the owner account key for ledger
// events).  A listener either receives all messages or only those
// whose topic starts with its subscription prefix.
package messagebus
