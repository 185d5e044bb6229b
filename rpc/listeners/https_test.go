// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package listeners_test

import (
	"bytes"
	"crypto/tls"
	"encoding/json"
	"net/http"
	"net/rpc"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/bitmark-inc/bulletind/fault"
	"github.com/bitmark-inc/bulletind/fixtures"
	"github.com/bitmark-inc/bulletind/rpc/handler"
	"github.com/bitmark-inc/bulletind/rpc/listeners"
	"github.com/bitmark-inc/logger"
)

type state struct{}

func (state) LiveCount() uint32    { return 0 }
func (state) NextId() uint32       { return 0 }
func (state) Height() uint64       { return 1 }
func (state) Decommissioned() bool { return false }

func newHTTPS(t *testing.T, configuration *listeners.HTTPSConfiguration) listeners.Listener {
	s := rpc.NewServer()
	_ = s.Register(Add{})

	log := logger.New(fixtures.LogCategory)
	h := handler.New(log, s, state{}, http.NotFoundHandler(), time.Now(), "1.0", 5)

	l, err := listeners.NewHTTPS(configuration, log, testTLS, h)
	if nil != err {
		t.Fatalf("NewHTTPS error: %s", err)
	}
	return l
}

func TestHttpsListenerServeRPC(t *testing.T) {
	listen := randomListen()
	l := newHTTPS(t, &listeners.HTTPSConfiguration{
		MaximumConnections: 5,
		Listen:             []string{listen},
	})

	err := l.Serve()
	assert.Nil(t, err, "wrong Serve")
	defer l.Close()

	client := &http.Client{
		Transport: &http.Transport{
			TLSClientConfig: &tls.Config{InsecureSkipVerify: true},
		},
	}

	body := []byte(`{"id":1,"method":"Add.Add","params":[{"A":3,"B":4}]}`)
	resp, err := client.Post("https://"+listen+"/bulletind/rpc", "application/json", bytes.NewReader(body))
	if nil != err {
		t.Fatalf("post error: %s", err)
	}
	defer resp.Body.Close()

	var reply struct {
		Result int         `json:"result"`
		Error  interface{} `json:"error"`
	}
	err = json.NewDecoder(resp.Body).Decode(&reply)
	assert.Nil(t, err, "decode error")
	assert.Equal(t, 7, reply.Result, "wrong result")
	assert.Nil(t, reply.Error, "wrong error")
}

func TestHttpsListenerServeDetailsForbidden(t *testing.T) {
	listen := randomListen()
	l := newHTTPS(t, &listeners.HTTPSConfiguration{
		MaximumConnections: 5,
		Listen:             []string{listen},
		Allow: map[string][]string{
			"details": {"192.0.2.0/24"},
		},
	})

	err := l.Serve()
	assert.Nil(t, err, "wrong Serve")
	defer l.Close()

	client := &http.Client{
		Transport: &http.Transport{
			TLSClientConfig: &tls.Config{InsecureSkipVerify: true},
		},
	}

	resp, err := client.Get("https://" + listen + "/bulletind/details")
	if nil != err {
		t.Fatalf("get error: %s", err)
	}
	defer resp.Body.Close()

	assert.Equal(t, http.StatusForbidden, resp.StatusCode, "wrong status")
}

func TestHttpsListenerDisabled(t *testing.T) {
	log := logger.New(fixtures.LogCategory)
	h := handler.New(log, rpc.NewServer(), state{}, http.NotFoundHandler(), time.Now(), "1.0", 5)

	l, err := listeners.NewHTTPS(&listeners.HTTPSConfiguration{}, log, testTLS, h)
	assert.Nil(t, err, "wrong error")
	assert.Nil(t, l, "listener created without addresses")
}

func TestHttpsListenerInvalidAllow(t *testing.T) {
	log := logger.New(fixtures.LogCategory)
	h := handler.New(log, rpc.NewServer(), state{}, http.NotFoundHandler(), time.Now(), "1.0", 5)

	_, err := listeners.NewHTTPS(&listeners.HTTPSConfiguration{
		MaximumConnections: 5,
		Listen:             []string{randomListen()},
		Allow: map[string][]string{
			"details": {"not-a-network"},
		},
	}, log, testTLS, h)
	assert.NotNil(t, err, "invalid allow accepted")

	_, err = listeners.NewHTTPS(&listeners.HTTPSConfiguration{
		MaximumConnections: 0,
		Listen:             []string{randomListen()},
	}, log, testTLS, h)
	assert.Equal(t, fault.MissingParameters, err, "zero connections accepted")
}
