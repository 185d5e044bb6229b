// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package zmqutil_test

import (
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bitmark-inc/bulletind/fault"
	"github.com/bitmark-inc/bulletind/zmqutil"
)

func TestCanonicalAddress(t *testing.T) {
	tests := []struct {
		address  string
		endpoint string
		v6       bool
	}{
		{"127.0.0.1:2139", "tcp://127.0.0.1:2139", false},
		{" *:2139 ", "tcp://*:2139", false},
		{"[::1]:2139", "tcp://[::1]:2139", true},
		{"tcp://0.0.0.0:2140", "tcp://0.0.0.0:2140", false},
		{"ipc:///tmp/events", "ipc:///tmp/events", false},
	}

	for i, item := range tests {
		endpoint, v6 := zmqutil.CanonicalAddress(item.address)
		assert.Equal(t, item.endpoint, endpoint, "%d: endpoint", i)
		assert.Equal(t, item.v6, v6, "%d: v6", i)
	}
}

func TestKeyPair(t *testing.T) {
	dir, err := ioutil.TempDir("", "zmqutil-")
	if nil != err {
		t.Fatalf("temp dir error: %s", err)
	}
	defer os.RemoveAll(dir)

	publicFile := filepath.Join(dir, "publish.public")
	privateFile := filepath.Join(dir, "publish.private")

	err = zmqutil.MakeKeyPair(publicFile, privateFile)
	assert.Nil(t, err, "make key pair")

	publicKey, err := zmqutil.ReadPublicKeyFile(publicFile)
	assert.Nil(t, err, "read public key")
	assert.Equal(t, 32, len(publicKey), "public key length")

	privateKey, err := zmqutil.ReadPrivateKeyFile(privateFile)
	assert.Nil(t, err, "read private key")
	assert.Equal(t, 32, len(privateKey), "private key length")

	_, err = zmqutil.ReadPublicKeyFile(privateFile)
	assert.Equal(t, fault.InvalidPublicKeyFile, err, "private key read as public")
	_, err = zmqutil.ReadPrivateKeyFile(publicFile)
	assert.Equal(t, fault.InvalidPrivateKeyFile, err, "public key read as private")

	err = zmqutil.MakeKeyPair(publicFile, privateFile)
	assert.Equal(t, fault.KeyFileAlreadyExists, err, "overwrite")
}

func TestParseKey(t *testing.T) {
	_, _, err := zmqutil.ParseKey("PUBLIC:00")
	assert.Equal(t, fault.InvalidPublicKeyFile, err, "short public key")

	_, _, err = zmqutil.ParseKey("PRIVATE:0011")
	assert.Equal(t, fault.InvalidPrivateKeyFile, err, "short private key")

	_, _, err = zmqutil.ParseKey("no tag")
	assert.Equal(t, fault.InvalidPublicKeyFile, err, "untagged")

	key, private, err := zmqutil.ParseKey("PUBLIC:0000000000000000000000000000000000000000000000000000000000000001\n")
	assert.Nil(t, err, "valid public key")
	assert.False(t, private, "public key marked private")
	assert.Equal(t, byte(1), key[31], "decoded key")
}
