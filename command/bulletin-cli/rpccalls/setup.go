// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package rpccalls - client side of the bulletind JSON RPC
package rpccalls

import (
	"bytes"
	"crypto/tls"
	"crypto/x509"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/rpc"
	"net/rpc/jsonrpc"

	"github.com/pkg/errors"

	"github.com/bitmark-inc/bulletind/fault"
	"github.com/bitmark-inc/bulletind/rpc/certificate"
)

// Client - to hold RPC connections streams
type Client struct {
	conn    net.Conn
	client  *rpc.Client
	verbose bool
	handle  io.Writer // if verbose is set output items here
}

// NewClient - create a RPC connection to a bulletind
//
// if fingerprint is not blank the server certificate must have that
// SHA3-256 fingerprint (hex)
func NewClient(connect string, fingerprint string, verbose bool, handle io.Writer) (*Client, error) {

	tlsConfig := &tls.Config{
		InsecureSkipVerify: true,
	}

	if "" != fingerprint {
		expected, err := hex.DecodeString(fingerprint)
		if nil != err {
			return nil, errors.Wrap(err, "fingerprint")
		}
		tlsConfig.VerifyPeerCertificate = func(rawCerts [][]byte, _ [][]*x509.Certificate) error {
			if 0 == len(rawCerts) {
				return fault.FingerprintMismatch
			}
			actual := certificate.Fingerprint(rawCerts[0])
			if !bytes.Equal(expected, actual[:]) {
				return fault.FingerprintMismatch
			}
			return nil
		}
	}

	conn, err := tls.Dial("tcp", connect, tlsConfig)
	if err != nil {
		return nil, err
	}

	return newClient(conn, verbose, handle), nil
}

func newClient(conn net.Conn, verbose bool, handle io.Writer) *Client {
	return &Client{
		conn:    conn,
		client:  jsonrpc.NewClient(conn),
		verbose: verbose,
		handle:  handle,
	}
}

// Close - shutdown the bulletind connection
func (c *Client) Close() {
	c.client.Close()
	c.conn.Close()
}

// call a remote method, echoing arguments and reply when verbose
func (c *Client) call(method string, args interface{}, reply interface{}) error {
	c.trace(method, "request", args)
	if err := c.client.Call(method, args, reply); nil != err {
		c.trace(method, "error", err.Error())
		return err
	}
	c.trace(method, "reply", reply)
	return nil
}

func (c *Client) trace(method string, direction string, item interface{}) {
	if !c.verbose {
		return
	}
	b, err := json.MarshalIndent(item, "", "  ")
	if nil != err {
		fmt.Fprintf(c.handle, "%s %s: %v\n", method, direction, item)
		return
	}
	fmt.Fprintf(c.handle, "%s %s:\n%s\n", method, direction, b)
}
