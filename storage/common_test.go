// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage_test

import (
	"os"
	"testing"

	"github.com/bitmark-inc/bulletind/fixtures"
	"github.com/bitmark-inc/bulletind/storage"
)

// common test setup routines

// configure for testing
func setup(t *testing.T) (*storage.Database, func()) {
	db, cleanup, err := fixtures.SetupTestDatabase()
	if nil != err {
		t.Fatalf("storage open error: %s", err)
	}
	return db, cleanup
}

// a string data item
type stringElement struct {
	key   string
	value string
}

// make an element array
func makeElements(input []stringElement) []storage.Element {
	output := make([]storage.Element, 0, len(input))
	for _, e := range input {
		output = append(output, storage.Element{
			Key:   []byte(e.key),
			Value: []byte(e.value),
		})
	}
	return output
}

// data for various test routines
var testElements = []stringElement{
	{"key-one", "data-one"},
	{"key-two", "data-two"},
	{"key-three", "data-three"},
	{"key-four", "data-four"},
	{"key-five", "data-five"},
	{"key-six", "data-six"},
	{"key-seven", "data-seven"},
}

// this is the expected order
var expectedElements = makeElements([]stringElement{
	{"key-five", "data-five"},
	{"key-four", "data-four"},
	{"key-one", "data-one"},
	{"key-seven", "data-seven"},
	{"key-six", "data-six"},
	{"key-three", "data-three"},
	{"key-two", "data-two"},
})

// a key that must not exist
var nonExistantKey = []byte("/nonexistant")

func populate(t *testing.T, db *storage.Database) {
	trx := db.LedgerTransaction()
	trx.Begin()
	for _, e := range testElements {
		trx.Put(db.Ledger.TestData, []byte(e.key), []byte(e.value))
	}
	err := trx.Commit()
	if nil != err {
		t.Fatalf("commit error: %s", err)
	}
}

func TestMain(m *testing.M) {
	fixtures.SetupTestLogger()
	result := m.Run()
	fixtures.TeardownTestLogger()
	os.Exit(result)
}
