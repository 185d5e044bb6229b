// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage

import (
	"encoding/binary"
	"reflect"
	"sync"

	"github.com/pkg/errors"
	"github.com/syndtr/goleveldb/leveldb"
	ldb_opt "github.com/syndtr/goleveldb/leveldb/opt"

	"github.com/bitmark-inc/bulletind/fault"
	"github.com/bitmark-inc/logger"
)

// LedgerPools - the set of pools owned by the ledger
// note: fields must be exported for reflection
type LedgerPools struct {
	OwnerIndex    *PoolHandle `prefix:"O"`
	Bulletins     *PoolHandle `prefix:"R"`
	Counters      *PoolHandle `prefix:"C"`
	Operators     *PoolHandle `prefix:"P"`
	OperatorIndex *PoolHandle `prefix:"Q"`
	Votes         *PoolHandle `prefix:"V"`
	TestData      *PoolHandle `prefix:"Z"`
}

// HostPools - the set of pools describing the host environment
type HostPools struct {
	Balances *PoolHandle `prefix:"B"`
	Chain    *PoolHandle `prefix:"H"`
	TestData *PoolHandle `prefix:"Z"`
}

// Store - one LevelDB database with its batch transaction
type Store struct {
	db     *leveldb.DB
	access Access
	trx    Transaction
}

// Transaction - the single batch transaction of this store
func (s *Store) Transaction() Transaction {
	return s.trx
}

// Database - the ledger and host stores and their pools
type Database struct {
	sync.Mutex

	Ledger LedgerPools
	Host   HostPools

	ledger *Store
	host   *Store
}

const (
	currentLedgerVersion = 0x01
	currentHostVersion   = 0x01

	ledgerSuffix = "-ledger.leveldb"
	hostSuffix   = "-host.leveldb"
)

// key under which the database version is stored
// it is outside the range of all the pool prefixes
var versionKey = []byte{0x00, 'V', 'E', 'R', 'S', 'I', 'O', 'N'}

// Open - open both databases rooted at the given file name prefix
func Open(name string, readOnly bool) (*Database, error) {
	d := &Database{}

	ledger, err := openStore(name+ledgerSuffix, readOnly, currentLedgerVersion, &d.Ledger)
	if nil != err {
		return nil, errors.Wrap(err, "ledger database")
	}

	host, err := openStore(name+hostSuffix, readOnly, currentHostVersion, &d.Host)
	if nil != err {
		ledger.db.Close()
		return nil, errors.Wrap(err, "host database")
	}

	d.ledger = ledger
	d.host = host

	return d, nil
}

// Close - close both databases
func (d *Database) Close() {
	d.Lock()
	defer d.Unlock()

	if nil != d.ledger {
		d.ledger.db.Close()
		d.ledger = nil
	}
	if nil != d.host {
		d.host.db.Close()
		d.host = nil
	}
}

// LedgerTransaction - the batch transaction for the ledger pools
func (d *Database) LedgerTransaction() Transaction {
	return d.ledger.trx
}

// HostTransaction - the batch transaction for the host pools
func (d *Database) HostTransaction() Transaction {
	return d.host.trx
}

func openStore(fileName string, readOnly bool, version int, pools interface{}) (*Store, error) {
	db, dbVersion, err := getDB(fileName, readOnly)
	if nil != err {
		return nil, err
	}

	if 0 == dbVersion {
		if readOnly {
			db.Close()
			return nil, errors.Errorf("database: %q is not initialised", fileName)
		}
		err = putVersion(db, version)
		if nil != err {
			db.Close()
			return nil, err
		}
	} else if version != dbVersion {
		db.Close()
		return nil, errors.Errorf("database: %q version: %d  expected: %d", fileName, dbVersion, version)
	}

	access := newDA(db, new(leveldb.Batch), newStaging())
	store := &Store{
		db:     db,
		access: access,
		trx:    newTransaction(access),
	}

	err = bindPools(pools, access)
	if nil != err {
		db.Close()
		return nil, err
	}
	return store, nil
}

// fill in every *PoolHandle field of the struct from its prefix tag
func bindPools(pools interface{}, access Access) error {
	v := reflect.ValueOf(pools)
	if reflect.Ptr != v.Kind() || reflect.Struct != v.Elem().Kind() {
		return fault.InvalidStructPointer
	}
	s := v.Elem()
	st := s.Type()

	seen := make(map[byte]string)
	for i := 0; i < s.NumField(); i += 1 {
		fieldInfo := st.Field(i)

		prefixTag := fieldInfo.Tag.Get("prefix")
		if 1 != len(prefixTag) {
			logger.Panicf("storage: pool: %v has invalid prefix: %q", fieldInfo, prefixTag)
		}
		prefix := prefixTag[0]
		if other, ok := seen[prefix]; ok {
			logger.Panicf("storage: pool: %s duplicates prefix of: %s", fieldInfo.Name, other)
		}
		seen[prefix] = fieldInfo.Name

		limit := []byte{prefix + 1}
		if 0xff == prefix {
			limit = nil
		}

		p := &PoolHandle{
			prefix: prefix,
			limit:  limit,
			access: access,
		}
		s.Field(i).Set(reflect.ValueOf(p))
	}
	return nil
}

// return:
//   database handle
//   version number
func getDB(name string, readOnly bool) (*leveldb.DB, int, error) {
	opt := &ldb_opt.Options{
		ErrorIfExist:   false,
		ErrorIfMissing: readOnly,
		ReadOnly:       readOnly,
	}

	db, err := leveldb.OpenFile(name, opt)
	if nil != err {
		return nil, 0, err
	}

	versionValue, err := db.Get(versionKey, nil)
	if leveldb.ErrNotFound == err {
		return db, 0, nil
	} else if nil != err {
		db.Close()
		return nil, 0, err
	}

	if 4 != len(versionValue) {
		db.Close()
		return nil, 0, errors.Errorf("incompatible database version length: expected: %d  actual: %d", 4, len(versionValue))
	}

	version := int(binary.BigEndian.Uint32(versionValue))
	return db, version, nil
}

func putVersion(db *leveldb.DB, version int) error {
	currentVersion := make([]byte, 4)
	binary.BigEndian.PutUint32(currentVersion, uint32(version))

	return db.Put(versionKey, currentVersion, nil)
}
