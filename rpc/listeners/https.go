// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package listeners

import (
	"crypto/tls"
	"net"
	"net/http"
	"strings"
	"sync"
	"time"

	"golang.org/x/net/netutil"

	"github.com/bitmark-inc/bulletind/fault"
	"github.com/bitmark-inc/bulletind/rpc/handler"
	"github.com/bitmark-inc/logger"
)

const (
	httpsLogName     = "https_rpc"
	readWriteTimeout = 10 * time.Second
)

// HTTPSConfiguration - configuration file data for HTTPS setup
type HTTPSConfiguration struct {
	MaximumConnections uint64              `gluamapper:"maximum_connections" json:"maximum_connections"`
	Listen             []string            `gluamapper:"listen" json:"listen"`
	Certificate        string              `gluamapper:"certificate" json:"certificate"`
	PrivateKey         string              `gluamapper:"private_key" json:"private_key"`
	Allow              map[string][]string `gluamapper:"allow" json:"allow"`
}

type httpsListener struct {
	sync.Mutex

	log            *logger.L
	networks       []string
	addresses      []string
	maxConnections uint64
	tlsConfig      *tls.Config
	servers        []*http.Server
	mux            *http.ServeMux
}

// NewHTTPS - a TLS HTTP listener for RPC, details and metrics
//
// returns nil without error if no listen address is configured
func NewHTTPS(
	configuration *HTTPSConfiguration,
	log *logger.L,
	tlsConfig *tls.Config,
	hdlr handler.Handler,
) (Listener, error) {
	if 0 == len(configuration.Listen) {
		log.Infof("disable: %s", httpsLogName)
		return nil, nil
	}

	if configuration.MaximumConnections < minConnectionCount {
		log.Errorf("invalid %s maximum connection limit: %d", httpsLogName, configuration.MaximumConnections)
		return nil, fault.MissingParameters
	}

	networks, addresses, err := parseListenAddress(configuration.Listen, log)
	if nil != err {
		return nil, err
	}

	// access control by path
	allow := make(map[string][]*net.IPNet)
	for path, cidrs := range configuration.Allow {
		set := make([]*net.IPNet, len(cidrs))
		for i, ip := range cidrs {
			_, cidr, err := net.ParseCIDR(strings.TrimSpace(ip))
			if nil != err {
				log.Errorf("%s allow: %q  error: %s", httpsLogName, ip, err)
				return nil, err
			}
			set[i] = cidr
		}
		allow[path] = set
	}
	hdlr.SetAllow(allow)

	mux := http.NewServeMux()
	mux.HandleFunc("/bulletind/rpc", hdlr.RPC)
	mux.HandleFunc("/bulletind/details", hdlr.Details)
	mux.HandleFunc("/bulletind/metrics", hdlr.Metrics)
	mux.HandleFunc("/", hdlr.Root)

	return &httpsListener{
		log:            log,
		networks:       networks,
		addresses:      addresses,
		maxConnections: configuration.MaximumConnections,
		tlsConfig:      tlsConfig,
		mux:            mux,
	}, nil
}

// Serve - bind all addresses and start serving
func (h *httpsListener) Serve() error {
	h.Lock()
	defer h.Unlock()

	for i, listen := range h.addresses {
		h.log.Infof("starting server: %s on: %q", httpsLogName, listen)

		ln, err := net.Listen(h.networks[i], listen)
		if err != nil {
			h.log.Errorf("%s listen error: %s", httpsLogName, err)
			return err
		}

		cfg := h.tlsConfig.Clone()
		cfg.NextProtos = []string{"http/1.1"}
		tlsListener := tls.NewListener(netutil.LimitListener(ln, int(h.maxConnections)), cfg)

		s := &http.Server{
			Handler:        h.mux,
			ReadTimeout:    readWriteTimeout,
			WriteTimeout:   readWriteTimeout,
			MaxHeaderBytes: 1 << 20,
		}
		h.servers = append(h.servers, s)

		go func() {
			err := s.Serve(tlsListener)
			h.log.Infof("%s terminated: %s", httpsLogName, err)
		}()
	}

	return nil
}

// Close - stop all servers
func (h *httpsListener) Close() {
	h.Lock()
	defer h.Unlock()

	for _, s := range h.servers {
		_ = s.Close()
	}
	h.servers = nil
}
