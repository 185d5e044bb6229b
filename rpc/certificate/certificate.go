// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package certificate - TLS certificates for the RPC listeners
package certificate

import (
	"io/ioutil"
	"os"
	"time"

	"github.com/bitmark-inc/certgen"
	"golang.org/x/crypto/sha3"

	"github.com/bitmark-inc/bulletind/fault"
)

const validity = 10 * 365 * 24 * time.Hour

// Fingerprint - compute the fingerprint of a certificate
//
// FreeBSD: openssl x509 -outform DER -in rpc.crt | sha3sum -a 256
func Fingerprint(certificate []byte) [32]byte {
	return sha3.Sum256(certificate)
}

// Generate - create a self-signed certificate and its private key
//
// with extra hosts given the certificate covers only those hosts
func Generate(name string, certificateFileName string, keyFileName string, extraHosts []string) error {
	if fileExists(certificateFileName) {
		return fault.CertificateFileAlreadyExists
	}
	if fileExists(keyFileName) {
		return fault.KeyFileAlreadyExists
	}

	org := "bulletind self signed cert for: " + name
	validUntil := time.Now().Add(validity)
	cert, key, err := certgen.NewTLSCertPair(org, validUntil, 0 != len(extraHosts), extraHosts)
	if err != nil {
		return err
	}

	if err = ioutil.WriteFile(certificateFileName, cert, 0666); err != nil {
		return err
	}

	if err = ioutil.WriteFile(keyFileName, key, 0600); err != nil {
		os.Remove(certificateFileName)
		return err
	}

	return nil
}

func fileExists(name string) bool {
	_, err := os.Stat(name)
	return nil == err
}
