// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package roster

import (
	"github.com/fxamacker/cbor/v2"

	"github.com/bitmark-inc/bulletind/account"
	"github.com/bitmark-inc/bulletind/fault"
	"github.com/bitmark-inc/logger"
)

// MaximumCommission - commission is a percentage
const MaximumCommission = 100

// Operator - one entry of the roster
type Operator struct {
	Id           account.Account `json:"id"`
	Name         string          `json:"name"`
	OwnStaked    uint64          `json:"ownStaked"`
	OtherStaked  uint64          `json:"otherStaked"`
	Commission   uint8           `json:"commission"`
	TotalStakers uint16          `json:"totalStakers"`
	VotePoints   uint64          `json:"votePoints"`
}

// stored form, a nil Id is the empty sentinel
type packedOperator struct {
	Id           []byte `cbor:"1,keyasint,omitempty"`
	Name         string `cbor:"2,keyasint"`
	OwnStaked    uint64 `cbor:"3,keyasint"`
	OtherStaked  uint64 `cbor:"4,keyasint"`
	Commission   uint8  `cbor:"5,keyasint"`
	TotalStakers uint16 `cbor:"6,keyasint"`
	VotePoints   uint64 `cbor:"7,keyasint"`
}

var (
	encMode cbor.EncMode
	decMode cbor.DecMode
)

func init() {
	var err error
	encMode, err = cbor.CoreDetEncOptions().EncMode()
	logger.PanicIfError("roster: cbor encoder", err)
	decMode, err = cbor.DecOptions{}.DecMode()
	logger.PanicIfError("roster: cbor decoder", err)
}

// IsZero - true for the empty sentinel
func (op *Operator) IsZero() bool {
	return *op == Operator{}
}

func (op *Operator) validate() error {
	if op.Id.IsZero() {
		return fault.InvalidAccount
	}
	if "" == op.Name {
		return fault.MissingOperatorName
	}
	if op.Commission > MaximumCommission {
		return fault.InvalidCommission
	}
	return nil
}

func (op *Operator) pack() []byte {
	p := packedOperator{
		Name:         op.Name,
		OwnStaked:    op.OwnStaked,
		OtherStaked:  op.OtherStaked,
		Commission:   op.Commission,
		TotalStakers: op.TotalStakers,
		VotePoints:   op.VotePoints,
	}
	if !op.IsZero() {
		p.Id = op.Id.Bytes()
	}
	buffer, err := encMode.Marshal(p)
	logger.PanicIfError("roster: pack operator", err)
	return buffer
}

func unpack(buffer []byte) Operator {
	var p packedOperator
	err := decMode.Unmarshal(buffer, &p)
	logger.PanicIfError("roster: unpack operator", err)

	op := Operator{
		Name:         p.Name,
		OwnStaked:    p.OwnStaked,
		OtherStaked:  p.OtherStaked,
		Commission:   p.Commission,
		TotalStakers: p.TotalStakers,
		VotePoints:   p.VotePoints,
	}
	if 0 != len(p.Id) {
		op.Id, err = account.FromBytes(p.Id)
		logger.PanicIfError("roster: unpack operator id", err)
	}
	return op
}
