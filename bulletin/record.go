// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package bulletin

import (
	"github.com/fxamacker/cbor/v2"

	"github.com/bitmark-inc/bulletind/account"
	"github.com/bitmark-inc/logger"
)

// MaximumTextLength - bytes allowed in a bulletin text
const MaximumTextLength = 2048

// Record - one posted bulletin
//
// a record is never changed after it is stored
type Record struct {
	Owner     account.Account `json:"owner"`
	PostedAt  uint64          `json:"postedAt"`
	ExpiresAt uint64          `json:"expiresAt"`
	Text      string          `json:"text"`
}

// Entry - a record together with its identifier
type Entry struct {
	Id     uint32 `json:"id"`
	Record Record `json:"record"`
}

// stored form of a record
type packedRecord struct {
	Owner     []byte `cbor:"1,keyasint"`
	PostedAt  uint64 `cbor:"2,keyasint"`
	ExpiresAt uint64 `cbor:"3,keyasint"`
	Text      string `cbor:"4,keyasint"`
}

var (
	encMode cbor.EncMode
	decMode cbor.DecMode
)

func init() {
	var err error
	encMode, err = cbor.CoreDetEncOptions().EncMode()
	logger.PanicIfError("bulletin: cbor encoder", err)
	decMode, err = cbor.DecOptions{}.DecMode()
	logger.PanicIfError("bulletin: cbor decoder", err)
}

// Pack - encode a record for storage
func (r *Record) Pack() ([]byte, error) {
	return encMode.Marshal(packedRecord{
		Owner:     r.Owner.Bytes(),
		PostedAt:  r.PostedAt,
		ExpiresAt: r.ExpiresAt,
		Text:      r.Text,
	})
}

// Unpack - decode a stored record
func Unpack(buffer []byte) (*Record, error) {
	var p packedRecord
	err := decMode.Unmarshal(buffer, &p)
	if nil != err {
		return nil, err
	}

	owner, err := account.FromBytes(p.Owner)
	if nil != err {
		return nil, err
	}

	return &Record{
		Owner:     owner,
		PostedAt:  p.PostedAt,
		ExpiresAt: p.ExpiresAt,
		Text:      p.Text,
	}, nil
}
