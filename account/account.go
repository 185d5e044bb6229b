// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package account - the identity of a bulletin owner, voter or
// operator
//
// An account is an ed25519 public key plus a network flag.  The text
// form is Base58 of: key variant ++ public key ++ checksum, where the
// checksum is the first four bytes of SHA3-256(key variant ++ public
// key).
package account

import (
	"bytes"

	"github.com/mr-tron/base58"
	"golang.org/x/crypto/ed25519"
	"golang.org/x/crypto/sha3"

	"github.com/bitmark-inc/bulletind/fault"
)

// miscellaneous constants
const (
	checksumLength = 4

	// bits in key code starting from LSB
	publicKeyCode = 0x01
	testKeyCode   = 0x02

	algorithmShift = 4 // shift 4 bits to get algorithm
	ed25519Code    = 1 // the only algorithm supported

	// PublicKeyLength - bytes in an account public key
	PublicKeyLength = ed25519.PublicKeySize

	// PackedLength - bytes in the packed form: variant ++ key
	PackedLength = 1 + PublicKeyLength
)

// Account - owner identity, usable as a map key
type Account struct {
	Test      bool
	PublicKey [PublicKeyLength]byte
}

// New - create an account from an ed25519 public key
func New(publicKey []byte, test bool) (Account, error) {
	a := Account{Test: test}
	if PublicKeyLength != len(publicKey) {
		return a, fault.InvalidAccount
	}
	copy(a.PublicKey[:], publicKey)
	return a, nil
}

// FromBase58 - decode the text form of an account
func FromBase58(accountBase58Encoded string) (Account, error) {
	decoded, err := base58.Decode(accountBase58Encoded)
	if nil != err || len(decoded) != PackedLength+checksumLength {
		return Account{}, fault.CannotDecodeAccount
	}

	checksumStart := len(decoded) - checksumLength
	checksum := sha3.Sum256(decoded[:checksumStart])
	if !bytes.Equal(checksum[:checksumLength], decoded[checksumStart:]) {
		return Account{}, fault.ChecksumMismatch
	}

	return FromBytes(decoded[:checksumStart])
}

// FromBytes - decode the packed form of an account
func FromBytes(packed []byte) (Account, error) {
	if PackedLength != len(packed) {
		return Account{}, fault.InvalidAccount
	}

	keyVariant := packed[0]
	if keyVariant&publicKeyCode != publicKeyCode {
		return Account{}, fault.InvalidAccount
	}
	if ed25519Code != keyVariant>>algorithmShift {
		return Account{}, fault.InvalidAccount
	}

	return New(packed[1:], 0 != keyVariant&testKeyCode)
}

// Bytes - the packed form: key variant ++ public key
func (account Account) Bytes() []byte {
	keyVariant := byte(ed25519Code<<algorithmShift | publicKeyCode)
	if account.Test {
		keyVariant |= testKeyCode
	}
	buffer := make([]byte, 0, PackedLength+checksumLength)
	buffer = append(buffer, keyVariant)
	return append(buffer, account.PublicKey[:]...)
}

// Key - bytes used to index storage pools
func (account Account) Key() []byte {
	return account.PublicKey[:]
}

// IsZero - true if the public key is all zero bytes
func (account Account) IsZero() bool {
	return account.PublicKey == [PublicKeyLength]byte{}
}

// String - Base58 text form with checksum
func (account Account) String() string {
	buffer := account.Bytes()
	checksum := sha3.Sum256(buffer)
	buffer = append(buffer, checksum[:checksumLength]...)
	return base58.Encode(buffer)
}

// MarshalText - convert account to Base58 for JSON
func (account Account) MarshalText() ([]byte, error) {
	return []byte(account.String()), nil
}

// UnmarshalText - convert Base58 account text to an account
func (account *Account) UnmarshalText(s []byte) error {
	a, err := FromBase58(string(s))
	if nil != err {
		return err
	}
	*account = a
	return nil
}
