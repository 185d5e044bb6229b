// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package listeners_test

import (
	"crypto/tls"
	"fmt"
	"io/ioutil"
	"math/rand"
	"os"
	"path/filepath"
	"testing"

	"github.com/bitmark-inc/bulletind/fixtures"
	"github.com/bitmark-inc/bulletind/rpc/certificate"
	"github.com/bitmark-inc/logger"
)

type Add struct{}
type AddArg struct {
	A, B int
}

func (a Add) Add(arg *AddArg, reply *int) error {
	*reply = arg.A + arg.B
	return nil
}

var testTLS *tls.Config

func TestMain(m *testing.M) {
	fixtures.SetupTestLogger()

	dir, err := ioutil.TempDir("", "listeners-")
	if nil != err {
		fmt.Printf("temp dir error: %s\n", err)
		os.Exit(1)
	}

	cer := filepath.Join(dir, "rpc.crt")
	key := filepath.Join(dir, "rpc.key")
	err = certificate.Generate("test", cer, key, []string{"127.0.0.1"})
	if nil == err {
		var reloader *certificate.Reloader
		reloader, err = certificate.NewReloader(logger.New(fixtures.LogCategory), "test", cer, key)
		if nil == err {
			testTLS = reloader.Config()
		}
	}
	if nil != err {
		fmt.Printf("certificate error: %s\n", err)
		os.RemoveAll(dir)
		os.Exit(1)
	}

	result := m.Run()

	os.RemoveAll(dir)
	fixtures.TeardownTestLogger()
	os.Exit(result)
}

func randomListen() string {
	port := rand.Intn(30000) + 30000
	return fmt.Sprintf("127.0.0.1:%d", port)
}
