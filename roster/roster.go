// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package roster - a list of operators that accounts can vote for
//
// Operators are kept in a dense list addressed by position.  Position
// zero holds an empty sentinel, so the first operator is at position
// one.  An index maps each operator account to its position and each
// voter may vote once for any operator.
package roster

import (
	"sync"

	"github.com/bitmark-inc/bulletind/account"
	"github.com/bitmark-inc/bulletind/fault"
	"github.com/bitmark-inc/bulletind/metrics"
	"github.com/bitmark-inc/bulletind/storage"
	"github.com/bitmark-inc/logger"
)

var lengthKey = []byte("roster-length")

// Roster - the operator list
type Roster struct {
	sync.Mutex

	log       *logger.L
	operators *storage.PoolHandle
	index     *storage.PoolHandle
	votes     *storage.PoolHandle
	counters  *storage.PoolHandle
	trx       storage.Transaction
}

// New - open the roster, creating the sentinel on first use
func New(db *storage.Database) (*Roster, error) {
	r := &Roster{
		log:       logger.New("roster"),
		operators: db.Ledger.Operators,
		index:     db.Ledger.OperatorIndex,
		votes:     db.Ledger.Votes,
		counters:  db.Ledger.Counters,
		trx:       db.LedgerTransaction(),
	}

	if _, found := r.counters.GetN(lengthKey); !found {
		r.trx.Begin()
		r.trx.Put(r.operators, positionKey(0), (&Operator{}).pack())
		r.trx.PutN(r.counters, lengthKey, 1)
		err := r.trx.Commit()
		if nil != err {
			return nil, err
		}
	}

	r.log.Infof("operators: %d", r.count())
	return r, nil
}

func positionKey(position uint64) []byte {
	return storage.EncodeN(position)
}

func voteKey(voter account.Account, operatorId account.Account) []byte {
	key := make([]byte, 0, 2*account.PublicKeyLength)
	key = append(key, voter.Key()...)
	return append(key, operatorId.Key()...)
}

// number of operators, excluding the sentinel
func (r *Roster) count() uint64 {
	length, _ := r.counters.GetN(lengthKey)
	if 0 == length {
		return 0
	}
	return length - 1
}

// Count - number of operators
func (r *Roster) Count() uint64 {
	r.Lock()
	defer r.Unlock()
	return r.count()
}

// AddOperator - append one operator
func (r *Roster) AddOperator(op Operator) error {
	return r.AddOperators([]Operator{op})
}

// AddOperators - append operators in order
//
// either all are added or, on error, none
func (r *Roster) AddOperators(ops []Operator) error {
	r.Lock()
	defer r.Unlock()

	err := r.append(ops)
	if nil != err {
		return err
	}
	for _, op := range ops {
		r.log.Infof("added operator: %s  name: %q", op.Id, op.Name)
	}
	return nil
}

// Seed - add the operators only if the roster is empty
func (r *Roster) Seed(ops []Operator) error {
	r.Lock()
	defer r.Unlock()

	if 0 != r.count() || 0 == len(ops) {
		return nil
	}
	err := r.append(ops)
	if nil != err {
		return err
	}
	r.log.Infof("seeded %d operators", len(ops))
	return nil
}

func (r *Roster) append(ops []Operator) error {
	seen := make(map[account.Account]struct{})
	for i := range ops {
		op := &ops[i]
		if err := op.validate(); nil != err {
			return err
		}
		if _, ok := seen[op.Id]; ok || r.index.Has(op.Id.Key()) {
			return fault.OperatorAlreadyExists
		}
		seen[op.Id] = struct{}{}
	}

	r.trx.Begin()
	length, _ := r.trx.GetN(r.counters, lengthKey)
	for i := range ops {
		position := length + uint64(i)
		r.trx.Put(r.operators, positionKey(position), ops[i].pack())
		r.trx.PutN(r.index, ops[i].Id.Key(), position)
	}
	r.trx.PutN(r.counters, lengthKey, length+uint64(len(ops)))
	return r.trx.Commit()
}

// Operators - all operators in position order
func (r *Roster) Operators() []Operator {
	r.Lock()
	defer r.Unlock()

	length, _ := r.counters.GetN(lengthKey)
	result := make([]Operator, 0, r.count())
	for position := uint64(1); position < length; position += 1 {
		result = append(result, r.at(position))
	}
	return result
}

// Operator - the operator with the given account, or the empty
// sentinel if there is none
func (r *Roster) Operator(id account.Account) Operator {
	r.Lock()
	defer r.Unlock()

	position, _ := r.index.GetN(id.Key())
	return r.at(position)
}

func (r *Roster) at(position uint64) Operator {
	buffer := r.operators.Get(positionKey(position))
	if nil == buffer {
		return Operator{}
	}
	return unpack(buffer)
}

// AddVote - record one vote from voter for an operator
//
// voting for an unknown operator or voting twice for the same
// operator changes nothing and returns false
func (r *Roster) AddVote(voter account.Account, operatorId account.Account) (bool, error) {
	r.Lock()
	defer r.Unlock()

	position, found := r.index.GetN(operatorId.Key())
	if !found {
		metrics.Votes.WithLabelValues(metrics.ResultNoOp).Inc()
		r.log.Debugf("vote by: %s  for unknown: %s", voter, operatorId)
		return false, nil
	}

	key := voteKey(voter, operatorId)
	if r.votes.Has(key) {
		metrics.Votes.WithLabelValues(metrics.ResultNoOp).Inc()
		r.log.Debugf("repeat vote by: %s  for: %s", voter, operatorId)
		return false, nil
	}

	op := r.at(position)
	op.VotePoints += 1

	r.trx.Begin()
	r.trx.Put(r.operators, positionKey(position), op.pack())
	r.trx.PutN(r.votes, key, position)
	err := r.trx.Commit()
	if nil != err {
		return false, err
	}

	metrics.Votes.WithLabelValues(metrics.ResultOk).Inc()
	r.log.Infof("vote by: %s  for: %s  points: %d", voter, operatorId, op.VotePoints)
	return true, nil
}

// VotedFor - operators the voter has voted for, in position order
func (r *Roster) VotedFor(voter account.Account) []account.Account {
	r.Lock()
	defer r.Unlock()

	length, _ := r.counters.GetN(lengthKey)
	result := make([]account.Account, 0)
	for position := uint64(1); position < length; position += 1 {
		op := r.at(position)
		if r.votes.Has(voteKey(voter, op.Id)) {
			result = append(result, op.Id)
		}
	}
	return result
}
