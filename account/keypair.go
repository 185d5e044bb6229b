// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package account

import (
	"crypto/rand"
	"encoding/hex"

	"golang.org/x/crypto/ed25519"

	"github.com/bitmark-inc/bulletind/fault"
)

// KeyPair - a private key and the account it controls
type KeyPair struct {
	Account    Account
	PrivateKey ed25519.PrivateKey
}

// NewKeyPair - generate a random key pair
func NewKeyPair(test bool) (*KeyPair, error) {
	publicKey, privateKey, err := ed25519.GenerateKey(rand.Reader)
	if nil != err {
		return nil, err
	}
	a, err := New(publicKey, test)
	if nil != err {
		return nil, err
	}
	return &KeyPair{
		Account:    a,
		PrivateKey: privateKey,
	}, nil
}

// KeyPairFromHex - rebuild a key pair from a hex private key
func KeyPairFromHex(privateKeyHex string, test bool) (*KeyPair, error) {
	privateKey, err := hex.DecodeString(privateKeyHex)
	if nil != err {
		return nil, err
	}
	if ed25519.PrivateKeySize != len(privateKey) {
		return nil, fault.InvalidAccount
	}
	publicKey := ed25519.PrivateKey(privateKey).Public().(ed25519.PublicKey)
	a, err := New(publicKey, test)
	if nil != err {
		return nil, err
	}
	return &KeyPair{
		Account:    a,
		PrivateKey: privateKey,
	}, nil
}

// PrivateKeyHex - hex form of the private key for configuration files
func (keyPair *KeyPair) PrivateKeyHex() string {
	return hex.EncodeToString(keyPair.PrivateKey)
}
