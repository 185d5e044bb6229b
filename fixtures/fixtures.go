// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package fixtures

import (
	"fmt"
	"io/ioutil"
	"os"
	"path/filepath"

	"golang.org/x/crypto/ed25519"

	"github.com/bitmark-inc/bulletind/account"
	"github.com/bitmark-inc/bulletind/storage"
	"github.com/bitmark-inc/logger"
)

const (
	dir         = "testing"
	LogCategory = "testing"
)

// deterministic accounts for tests
var (
	Custody = testAccount(0xc0)
	Alice   = testAccount(0xa1)
	Bob     = testAccount(0xb0)
	Carol   = testAccount(0xca)
)

func testAccount(seedByte byte) account.Account {
	seed := make([]byte, ed25519.SeedSize)
	for i := range seed {
		seed[i] = seedByte
	}
	publicKey := ed25519.NewKeyFromSeed(seed).Public().(ed25519.PublicKey)
	a, err := account.New(publicKey, true)
	if nil != err {
		panic(err)
	}
	return a
}

// SetupTestLogger - log to a file under the testing directory
func SetupTestLogger() {
	removeFiles()
	_ = os.Mkdir(dir, 0700)

	logging := logger.Configuration{
		Directory: dir,
		File:      fmt.Sprintf("%s.log", LogCategory),
		Size:      1048576,
		Count:     10,
		Console:   false,
		Levels: map[string]string{
			logger.DefaultTag: "critical",
		},
	}

	// start logging
	_ = logger.Initialise(logging)
}

// TeardownTestLogger - stop logging and remove the log files
func TeardownTestLogger() {
	logger.Finalise()
	removeFiles()
}

// SetupTestDatabase - open a fresh database in a temporary directory
//
// the returned function closes the database and removes the directory
func SetupTestDatabase() (*storage.Database, func(), error) {
	tempDir, err := ioutil.TempDir("", "bulletind-test-")
	if nil != err {
		return nil, nil, err
	}

	db, err := storage.Open(filepath.Join(tempDir, "test"), false)
	if nil != err {
		os.RemoveAll(tempDir)
		return nil, nil, err
	}

	return db, func() {
		db.Close()
		os.RemoveAll(tempDir)
	}, nil
}

func removeFiles() {
	err := os.RemoveAll(dir)
	if nil != err {
		fmt.Println("remove dir with error: ", err)
	}
}
