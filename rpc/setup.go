// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package rpc - client access to the ledger
//
// JSON RPC is offered over a raw TLS listener and over HTTPS; the
// HTTPS listener also serves node details and metrics.
package rpc

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/bitmark-inc/bulletind/background"
	"github.com/bitmark-inc/bulletind/counter"
	"github.com/bitmark-inc/bulletind/fault"
	"github.com/bitmark-inc/bulletind/rpc/certificate"
	"github.com/bitmark-inc/bulletind/rpc/handler"
	"github.com/bitmark-inc/bulletind/rpc/listeners"
	"github.com/bitmark-inc/bulletind/rpc/server"
	"github.com/bitmark-inc/logger"
)

const (
	rpcName   = "client_rpc"
	httpsName = "https_rpc"
)

// RPC - the running listeners
type RPC struct {
	log        *logger.L
	count      counter.Counter
	listeners  []listeners.Listener
	background []*background.T
}

// New - create the RPC server and start all configured listeners
func New(
	rpcConfiguration *listeners.RPCConfiguration,
	httpsConfiguration *listeners.HTTPSConfiguration,
	version string,
	services *server.Services,
	registry *prometheus.Registry,
) (*RPC, error) {
	log := logger.New("rpc")
	log.Info("starting…")

	if nil == services.Board || nil == services.Roster || nil == services.Bank {
		return nil, fault.MissingParameters
	}

	r := &RPC{
		log: log,
	}

	s := server.Create(log, version, &r.count, services)

	rpcCertificate, err := certificate.NewReloader(log, rpcName, rpcConfiguration.Certificate, rpcConfiguration.PrivateKey)
	if nil != err {
		return nil, err
	}
	r.background = append(r.background, background.Start(background.Processes{rpcCertificate}, nil))

	rpcListener, err := listeners.NewRPC(rpcConfiguration, log, &r.count, s, rpcCertificate.Config(), rpcCertificate.Fingerprint())
	if nil != err {
		r.Stop()
		return nil, err
	}
	err = rpcListener.Serve()
	if nil != err {
		r.Stop()
		return nil, err
	}
	r.listeners = append(r.listeners, rpcListener)

	if 0 == len(httpsConfiguration.Listen) {
		log.Infof("disable: %s", httpsName)
		return r, nil
	}

	httpsCertificate, err := certificate.NewReloader(log, httpsName, httpsConfiguration.Certificate, httpsConfiguration.PrivateKey)
	if nil != err {
		r.Stop()
		return nil, err
	}
	r.background = append(r.background, background.Start(background.Processes{httpsCertificate}, nil))
	log.Infof("%s: SHA3-256 fingerprint: %x", httpsName, httpsCertificate.Fingerprint())

	metricsHandler := promhttp.HandlerFor(registry, promhttp.HandlerOpts{})
	h := handler.New(log, s, services.Board, metricsHandler, time.Now(), version, httpsConfiguration.MaximumConnections)

	httpsListener, err := listeners.NewHTTPS(httpsConfiguration, log, httpsCertificate.Config(), h)
	if nil != err {
		r.Stop()
		return nil, err
	}
	err = httpsListener.Serve()
	if nil != err {
		r.Stop()
		return nil, err
	}
	r.listeners = append(r.listeners, httpsListener)

	return r, nil
}

// Stop - close all listeners
func (r *RPC) Stop() {
	r.log.Info("shutting down…")
	for _, l := range r.listeners {
		l.Close()
	}
	r.listeners = nil
	for _, b := range r.background {
		b.Stop()
	}
	r.background = nil
	r.log.Info("finished")
	r.log.Flush()
}
