// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// bulletin-cli - command line access to a bulletind node
//
// e.g. to post for 100 blocks paying 1000:
//
//   bulletin-cli -c 127.0.0.1:2130 post -o ACCOUNT -d 100 -a 1000 -t 'text'
package main
