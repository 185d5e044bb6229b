// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package publish_test

import (
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"
	"time"

	zmq "github.com/pebbe/zmq4"
	"github.com/stretchr/testify/assert"

	"github.com/bitmark-inc/bulletind/bulletin"
	"github.com/bitmark-inc/bulletind/fixtures"
	"github.com/bitmark-inc/bulletind/messagebus"
	"github.com/bitmark-inc/bulletind/publish"
)

func TestMain(m *testing.M) {
	fixtures.SetupTestLogger()
	result := m.Run()
	fixtures.TeardownTestLogger()
	os.Exit(result)
}

func TestDisabled(t *testing.T) {
	p, err := publish.New(&publish.Configuration{}, messagebus.New())
	assert.Nil(t, err, "disabled publisher error")
	assert.Nil(t, p, "disabled publisher created")

	// stopping a disabled publisher is harmless
	p.Stop()
}

func TestOwnerSubscription(t *testing.T) {
	dir, err := ioutil.TempDir("", "publish-")
	if nil != err {
		t.Fatalf("temp dir error: %s", err)
	}
	defer os.RemoveAll(dir)

	endpoint := "ipc://" + filepath.Join(dir, "events")

	bus := messagebus.New()
	p, err := publish.New(&publish.Configuration{
		Broadcast: []string{endpoint},
	}, bus)
	if nil != err {
		t.Fatalf("publisher error: %s", err)
	}
	defer p.Stop()

	sub, err := zmq.NewSocket(zmq.SUB)
	if nil != err {
		t.Fatalf("socket error: %s", err)
	}
	defer sub.Close()
	sub.SetLinger(0)
	sub.SetRcvtimeo(100 * time.Millisecond)
	sub.SetSubscribe(string(fixtures.Alice.Key()))
	err = sub.Connect(endpoint)
	if nil != err {
		t.Fatalf("connect error: %s", err)
	}

	sink := bulletin.NewBusSink(bus)

	// repeat until the subscription has propagated
	var parts [][]byte
	for i := 0; i < 50 && nil == parts; i += 1 {
		sink.Posted(bulletin.PostedEvent{Owner: fixtures.Bob, ExpiresAt: 20, Id: 1})
		sink.Posted(bulletin.PostedEvent{Owner: fixtures.Alice, ExpiresAt: 10, Id: 0})
		parts, _ = sub.RecvMessageBytes(0)
	}

	if !assert.Equal(t, 3, len(parts), "message parts") {
		return
	}
	assert.Equal(t, fixtures.Alice.Key(), parts[0], "topic")
	assert.Equal(t, bulletin.PostedCommand, string(parts[1]), "command")

	event, err := bulletin.DecodePosted(parts[2])
	assert.Nil(t, err, "decode error")
	assert.Equal(t, bulletin.PostedEvent{Owner: fixtures.Alice, ExpiresAt: 10, Id: 0}, event, "event")
}
