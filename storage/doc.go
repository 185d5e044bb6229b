// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package storage maintains the on-disk data store
//
// Two LevelDB databases are kept: the ledger database holds
// everything the bulletin board and roster own and the host
// database holds the state of the environment the ledger runs in
// (account balances and the block height).  Each database is split
// into a series of pools, each pool is defined by a prefix byte that
// is obtained from the prefix tag in the struct defining the
// available pools.
//
// Notes:
// 1. each separate pool has a single byte prefix (to spread the keys in LevelDB)
// 2. ++           = concatenation of byte data
// 3. id           = bulletin identifier as big endian uint64 (8 bytes)
// 4. position     = roster position as big endian uint64 (8 bytes)
// 5. owner        = account public key (32 bytes)
// 6. count        = big endian uint64 (8 bytes)
//
// Ledger:
//
//   O ++ owner                 - owner index
//                                data: id
//   R ++ id                    - bulletin records
//                                data: CBOR encoded record
//   C ++ counter name          - allocator, live count and lifecycle flags
//                                data: count
//   P ++ position              - roster operators
//                                data: CBOR encoded operator
//   Q ++ owner                 - roster index
//                                data: position
//   V ++ voter ++ owner        - votes cast
//                                data: position
//
// Host:
//
//   B ++ owner                 - account balance
//                                data: count
//   H ++ "height"              - current block height
//                                data: count
//
// Testing:
//
//   Z ++ key                   - testing data
package storage
