// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package handler - HTTP access to the RPC server, node details and
// metrics
package handler

import (
	"bytes"
	"encoding/json"
	"io"
	"net"
	"net/http"
	"net/rpc"
	"net/rpc/jsonrpc"
	"time"

	"github.com/bitmark-inc/bulletind/counter"
	"github.com/bitmark-inc/bulletind/metrics"
	"github.com/bitmark-inc/logger"
)

// access control names
const (
	allowDetails = "details"
	allowMetrics = "metrics"
)

// Handler - the HTTP endpoints
type Handler interface {
	RPC(http.ResponseWriter, *http.Request)
	Details(http.ResponseWriter, *http.Request)
	Metrics(http.ResponseWriter, *http.Request)
	Root(http.ResponseWriter, *http.Request)
	SetAllow(map[string][]*net.IPNet)
}

type handler struct {
	log                *logger.L
	server             *rpc.Server
	state              metrics.StateSource
	metrics            http.Handler
	start              time.Time
	version            string
	allow              map[string][]*net.IPNet
	count              counter.Counter
	maximumConnections uint64
}

// New - create the HTTP handlers
func New(
	log *logger.L,
	server *rpc.Server,
	state metrics.StateSource,
	metricsHandler http.Handler,
	start time.Time,
	version string,
	maximumConnections uint64,
) Handler {
	return &handler{
		log:                log,
		server:             server,
		state:              state,
		metrics:            metricsHandler,
		start:              start,
		version:            version,
		allow:              make(map[string][]*net.IPNet),
		maximumConnections: maximumConnections,
	}
}

// SetAllow - replace the access control lists
func (h *handler) SetAllow(allow map[string][]*net.IPNet) {
	h.allow = allow
}

// adapt a request body and response to the connection the RPC codec
// expects
type internalConnection struct {
	in  io.Reader
	out io.Writer
}

func (c *internalConnection) Read(p []byte) (n int, err error) {
	return c.in.Read(p)
}
func (c *internalConnection) Write(d []byte) (n int, err error) {
	return c.out.Write(d)
}
func (c *internalConnection) Close() error {
	return nil
}

// Root - matches anything not matched and returns error
func (h *handler) Root(w http.ResponseWriter, r *http.Request) {
	sendError(w, http.StatusNotFound, "not found")
}

// RPC - perform a single JSON RPC call
func (h *handler) RPC(w http.ResponseWriter, r *http.Request) {
	if http.MethodPost != r.Method {
		sendError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	if !h.enter() {
		sendError(w, http.StatusTooManyRequests, http.StatusText(http.StatusTooManyRequests))
		return
	}
	defer h.count.Release()

	var buffer bytes.Buffer
	serverCodec := jsonrpc.NewServerCodec(&internalConnection{in: r.Body, out: &buffer})
	err := h.server.ServeRequest(serverCodec)
	if nil != err {
		h.log.Debugf("serve request error: %s", err)
		sendError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(buffer.Bytes())
}

// Details - node state as JSON for monitoring
func (h *handler) Details(w http.ResponseWriter, r *http.Request) {
	if !h.check(w, r, allowDetails) {
		return
	}
	defer h.count.Release()

	type reply struct {
		Version        string `json:"version"`
		Uptime         string `json:"uptime"`
		Height         uint64 `json:"height"`
		LiveCount      uint32 `json:"liveCount"`
		NextId         uint32 `json:"nextId"`
		Decommissioned bool   `json:"decommissioned"`
		Connections    uint64 `json:"connections"`
	}

	sendReply(w, reply{
		Version:        h.version,
		Uptime:         time.Since(h.start).String(),
		Height:         h.state.Height(),
		LiveCount:      h.state.LiveCount(),
		NextId:         h.state.NextId(),
		Decommissioned: h.state.Decommissioned(),
		Connections:    h.count.Uint64(),
	})
}

// Metrics - prometheus exposition
func (h *handler) Metrics(w http.ResponseWriter, r *http.Request) {
	if !h.check(w, r, allowMetrics) {
		return
	}
	defer h.count.Release()

	h.metrics.ServeHTTP(w, r)
}

// check method, access and connection count for a GET endpoint
//
// on true the caller holds one connection slot
func (h *handler) check(w http.ResponseWriter, r *http.Request, name string) bool {
	if http.MethodGet != r.Method {
		sendError(w, http.StatusMethodNotAllowed, "method not allowed")
		return false
	}

	if !h.isAllowed(name, r.RemoteAddr) {
		h.log.Warnf("deny access: %q  to: %s", r.RemoteAddr, name)
		sendError(w, http.StatusForbidden, "forbidden")
		return false
	}

	if !h.enter() {
		sendError(w, http.StatusTooManyRequests, http.StatusText(http.StatusTooManyRequests))
		return false
	}
	return true
}

func (h *handler) enter() bool {
	return h.count.Acquire(h.maximumConnections)
}

func (h *handler) isAllowed(name string, remoteAddr string) bool {
	host, _, err := net.SplitHostPort(remoteAddr)
	if nil != err {
		return false
	}
	ip := net.ParseIP(host)
	if nil == ip {
		return false
	}
	for _, cidr := range h.allow[name] {
		if cidr.Contains(ip) {
			return true
		}
	}
	return false
}

func sendReply(w http.ResponseWriter, reply interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.WriteHeader(http.StatusOK)
	_ = json.NewEncoder(w).Encode(reply)
}

func sendError(w http.ResponseWriter, code int, message string) {
	type errorReply struct {
		Code  int    `json:"code"`
		Error string `json:"error"`
	}
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(errorReply{
		Code:  code,
		Error: message,
	})
}
