// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package roster_test

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bitmark-inc/bulletind/account"
	"github.com/bitmark-inc/bulletind/fault"
	"github.com/bitmark-inc/bulletind/fixtures"
	"github.com/bitmark-inc/bulletind/roster"
	rpcroster "github.com/bitmark-inc/bulletind/rpc/roster"
	"github.com/bitmark-inc/logger"
)

func setup(t *testing.T) (*rpcroster.Roster, func()) {
	db, cleanup, err := fixtures.SetupTestDatabase()
	if nil != err {
		t.Fatalf("database error: %s", err)
	}

	r, err := roster.New(db)
	if nil != err {
		cleanup()
		t.Fatalf("roster error: %s", err)
	}

	err = r.Seed([]roster.Operator{
		{Id: fixtures.Alice, Name: "alice", OwnStaked: 100, Commission: 5},
		{Id: fixtures.Bob, Name: "bob", OwnStaked: 200, Commission: 10},
	})
	if nil != err {
		cleanup()
		t.Fatalf("seed error: %s", err)
	}

	return rpcroster.New(logger.New(fixtures.LogCategory), r), cleanup
}

func TestMain(m *testing.M) {
	fixtures.SetupTestLogger()
	result := m.Run()
	fixtures.TeardownTestLogger()
	os.Exit(result)
}

func TestList(t *testing.T) {
	r, cleanup := setup(t)
	defer cleanup()

	var reply rpcroster.ListReply
	err := r.List(&rpcroster.ListArguments{}, &reply)
	assert.Nil(t, err, "list error")
	assert.Equal(t, 2, len(reply.Operators), "operator count")
	assert.Equal(t, "alice", reply.Operators[0].Name, "first operator")
	assert.Equal(t, "bob", reply.Operators[1].Name, "second operator")
}

func TestGet(t *testing.T) {
	r, cleanup := setup(t)
	defer cleanup()

	bob := fixtures.Bob
	var op roster.Operator
	err := r.Get(&rpcroster.OperatorArguments{Id: &bob}, &op)
	assert.Nil(t, err, "get error")
	assert.Equal(t, uint64(200), op.OwnStaked, "wrong operator")

	carol := fixtures.Carol
	err = r.Get(&rpcroster.OperatorArguments{Id: &carol}, &op)
	assert.Equal(t, fault.OperatorNotFound, err, "unknown operator")

	err = r.Get(&rpcroster.OperatorArguments{}, &op)
	assert.Equal(t, fault.InvalidAccount, err, "missing id")
}

func TestVote(t *testing.T) {
	r, cleanup := setup(t)
	defer cleanup()

	carol := fixtures.Carol
	bob := fixtures.Bob
	alice := fixtures.Alice

	var reply rpcroster.VoteReply
	err := r.Vote(&rpcroster.VoteArguments{Voter: &carol, Operator: &bob}, &reply)
	assert.Nil(t, err, "vote error")
	assert.True(t, reply.Recorded, "vote not recorded")

	err = r.Vote(&rpcroster.VoteArguments{Voter: &carol, Operator: &bob}, &reply)
	assert.Nil(t, err, "repeat vote error")
	assert.False(t, reply.Recorded, "repeat vote recorded")

	err = r.Vote(&rpcroster.VoteArguments{Voter: &carol, Operator: &alice}, &reply)
	assert.Nil(t, err, "vote error")
	assert.True(t, reply.Recorded, "vote not recorded")

	var op roster.Operator
	err = r.Get(&rpcroster.OperatorArguments{Id: &bob}, &op)
	assert.Nil(t, err, "get error")
	assert.Equal(t, uint64(1), op.VotePoints, "vote points")

	var voted rpcroster.VotedForReply
	err = r.VotedFor(&rpcroster.VotedForArguments{Voter: &carol}, &voted)
	assert.Nil(t, err, "voted for error")
	assert.Equal(t, []account.Account{fixtures.Alice, fixtures.Bob}, voted.Operators, "roster order")

	err = r.Vote(&rpcroster.VoteArguments{Voter: &carol}, &reply)
	assert.Equal(t, fault.InvalidAccount, err, "missing operator")
}
