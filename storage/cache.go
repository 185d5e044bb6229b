// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage

import (
	cache "github.com/patrickmn/go-cache"
)

// writes staged by an open transaction, visible to its own reads
// until Commit or Abort resets them
type staging struct {
	entries *cache.Cache
}

type stagedEntry struct {
	deleted bool
	value   []byte
}

// entries never expire so no janitor goroutine is needed
func newStaging() *staging {
	return &staging{
		entries: cache.New(cache.NoExpiration, 0),
	}
}

func (s *staging) put(key []byte, value []byte) {
	s.entries.Set(string(key), stagedEntry{value: value}, cache.NoExpiration)
}

func (s *staging) remove(key []byte) {
	s.entries.Set(string(key), stagedEntry{deleted: true}, cache.NoExpiration)
}

// found is false when the key has not been touched in this transaction
func (s *staging) lookup(key []byte) (entry stagedEntry, found bool) {
	item, found := s.entries.Get(string(key))
	if !found {
		return stagedEntry{}, false
	}
	return item.(stagedEntry), true
}

func (s *staging) reset() {
	s.entries.Flush()
}
