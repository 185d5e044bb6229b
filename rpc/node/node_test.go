// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package node_test

import (
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"

	"github.com/bitmark-inc/bulletind/bulletin"
	"github.com/bitmark-inc/bulletind/counter"
	"github.com/bitmark-inc/bulletind/fixtures"
	"github.com/bitmark-inc/bulletind/payment/mocks"
	"github.com/bitmark-inc/bulletind/rpc/node"
	"github.com/bitmark-inc/logger"
)

type fixedHeight uint64

func (h fixedHeight) Height() uint64 {
	return uint64(h)
}

func TestNodeInfo(t *testing.T) {
	fixtures.SetupTestLogger()
	defer fixtures.TeardownTestLogger()

	ctl := gomock.NewController(t)
	defer ctl.Finish()

	db, cleanup, err := fixtures.SetupTestDatabase()
	if nil != err {
		t.Fatalf("database error: %s", err)
	}
	defer cleanup()

	p := mocks.NewMockProvider(ctl)
	p.EXPECT().Balance(fixtures.Custody).Return(uint64(1234)).Times(1)

	b, err := bulletin.New(db, 7, bulletin.Environment{
		Checkpoint: fixedHeight(99),
		Payment:    p,
		Custody:    fixtures.Custody,
	})
	if nil != err {
		t.Fatalf("board error: %s", err)
	}

	c := counter.Counter(5)

	n := node.New(
		logger.New(fixtures.LogCategory),
		time.Now(),
		"100",
		&c,
		fixedHeight(99),
		b,
		p,
		fixtures.Custody,
	)

	var reply node.InfoReply
	err = n.Info(&node.InfoArguments{}, &reply)
	assert.Nil(t, err, "wrong Info")
	assert.Equal(t, "100", reply.Version, "wrong version")
	assert.Equal(t, uint64(99), reply.Height, "wrong height")
	assert.Equal(t, uint64(7), reply.Price, "wrong price")
	assert.Equal(t, uint32(0), reply.LiveCount, "wrong live count")
	assert.Equal(t, uint32(0), reply.NextId, "wrong next id")
	assert.False(t, reply.Decommissioned, "wrong decommissioned")
	assert.Equal(t, fixtures.Custody, reply.Custody, "wrong custody")
	assert.Equal(t, uint64(1234), reply.CustodyBalance, "wrong custody balance")
	assert.Equal(t, c.Uint64(), reply.RPCs, "wrong connection count")
}
