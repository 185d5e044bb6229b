// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/bitmark-inc/bulletind/background"
	"github.com/bitmark-inc/bulletind/blockheader"
	"github.com/bitmark-inc/bulletind/bulletin"
	"github.com/bitmark-inc/bulletind/messagebus"
	"github.com/bitmark-inc/bulletind/metrics"
	"github.com/bitmark-inc/bulletind/payment"
	"github.com/bitmark-inc/bulletind/publish"
	"github.com/bitmark-inc/bulletind/roster"
	"github.com/bitmark-inc/bulletind/rpc"
	"github.com/bitmark-inc/bulletind/rpc/server"
	"github.com/bitmark-inc/bulletind/storage"
	"github.com/bitmark-inc/bulletind/zmqutil"
	"github.com/bitmark-inc/exitwithstatus"
	"github.com/bitmark-inc/getoptions"
	"github.com/bitmark-inc/logger"
)

// set by the linker: go build -ldflags "-X main.version=M.N" ./...
var version = "zero" // do not change this value

// main program
func main() {
	// ensure exit handler is first
	defer exitwithstatus.Handler()

	flags := []getoptions.Option{
		{Long: "help", HasArg: getoptions.NO_ARGUMENT, Short: 'h'},
		{Long: "verbose", HasArg: getoptions.NO_ARGUMENT, Short: 'v'},
		{Long: "quiet", HasArg: getoptions.NO_ARGUMENT, Short: 'q'},
		{Long: "version", HasArg: getoptions.NO_ARGUMENT, Short: 'V'},
		{Long: "config-file", HasArg: getoptions.REQUIRED_ARGUMENT, Short: 'c'},
		{Long: "memory-stats", HasArg: getoptions.NO_ARGUMENT, Short: 'm'},
	}

	program, options, arguments, err := getoptions.GetOS(flags)
	if nil != err {
		exitwithstatus.Message("%s: getoptions error: %s", program, err)
	}

	if len(options["version"]) > 0 {
		processSetupCommand(program, []string{"version"})
		return
	}

	if len(options["help"]) > 0 {
		processSetupCommand(program, []string{"help"})
		return
	}

	// these commands do not require the configuration and
	// process data needed for initial setup
	if len(arguments) > 0 && processSetupCommand(program, arguments) {
		return
	}

	if 1 != len(options["config-file"]) {
		exitwithstatus.Message("%s: only one config-file option is required, %d were detected", program, len(options["config-file"]))
	}

	// read options and parse the configuration file
	configurationFile := options["config-file"][0]
	theConfiguration, err := getConfiguration(configurationFile)
	if nil != err {
		exitwithstatus.Message("%s: failed to read configuration from: %q  error: %s", program, configurationFile, err)
	}

	// these commands require the configuration and
	// perform enquiries on the configuration
	if len(arguments) > 0 && processConfigCommand(arguments, theConfiguration) {
		return
	}

	// start logging
	if err = logger.Initialise(theConfiguration.Logging); nil != err {
		exitwithstatus.Message("%s: logger setup failed with error: %s", program, err)
	}
	defer logger.Finalise()

	// create a logger channel for the main program
	log := logger.New("main")
	defer log.Info("finished")
	log.Info("starting…")
	log.Infof("version: %s", version)
	log.Debugf("theConfiguration: %v", theConfiguration)

	// ------------------
	// start of real main
	// ------------------

	// optional PID file
	// use if not running under a supervisor program like daemon(8)
	if "" != theConfiguration.PidFile {
		lockFile, err := os.OpenFile(theConfiguration.PidFile, os.O_WRONLY|os.O_EXCL|os.O_CREATE, os.ModeExclusive|0600)
		if err != nil {
			if os.IsExist(err) {
				exitwithstatus.Message("%s: another instance is already running", program)
			}
			exitwithstatus.Message("%s: PID file: %q creation failed, error: %s", program, theConfiguration.PidFile, err)
		}
		fmt.Fprintf(lockFile, "%d\n", os.Getpid())
		lockFile.Close()
		defer os.Remove(theConfiguration.PidFile)
	}

	// already validated by getConfiguration
	custody, _ := theConfiguration.custody()
	operators, _ := theConfiguration.operators()

	log.Infof("database: %q", theConfiguration.Database.Name)
	log.Infof("custody: %s", custody)

	// connection info
	log.Debugf("%s = %#v", "ClientRPC", theConfiguration.ClientRPC)
	log.Debugf("%s = %#v", "HttpsRPC", theConfiguration.HttpsRPC)
	log.Debugf("%s = %#v", "Publishing", theConfiguration.Publishing)

	// start the data storage
	log.Info("open storage")
	db, err := storage.Open(theConfiguration.Database.Name, false)
	if nil != err {
		log.Criticalf("storage open error: %s", err)
		exitwithstatus.Message("storage open error: %s", err)
	}
	defer db.Close()

	// block height source
	log.Info("initialise blockheader")
	header, err := blockheader.New(db, time.Duration(theConfiguration.BlockInterval)*time.Second)
	if nil != err {
		log.Criticalf("blockheader initialise error: %s", err)
		exitwithstatus.Message("blockheader initialise error: %s", err)
	}
	producer := background.Start(background.Processes{header}, nil)
	defer producer.Stop()

	bank := payment.NewBank(db, custody)

	bus := messagebus.New()

	log.Info("initialise bulletin board")
	board, err := bulletin.New(db, theConfiguration.PricePerBlock, bulletin.Environment{
		Checkpoint: header,
		Payment:    bank,
		Custody:    custody,
		Events:     bulletin.NewBusSink(bus),
	})
	if nil != err {
		log.Criticalf("bulletin initialise error: %s", err)
		exitwithstatus.Message("bulletin initialise error: %s", err)
	}

	log.Info("initialise roster")
	operatorRoster, err := roster.New(db)
	if nil != err {
		log.Criticalf("roster initialise error: %s", err)
		exitwithstatus.Message("roster initialise error: %s", err)
	}
	err = operatorRoster.Seed(operators)
	if nil != err {
		log.Criticalf("roster seed error: %s", err)
		exitwithstatus.Message("roster seed error: %s", err)
	}

	// initialise encryption
	err = zmqutil.StartAuthentication()
	if nil != err {
		log.Criticalf("zmq.AuthStart: error: %s", err)
		exitwithstatus.Message("zmq.AuthStart: error: %s", err)
	}

	// start up the publishing background processes
	publisher, err := publish.New(&theConfiguration.Publishing, bus)
	if nil != err {
		log.Criticalf("publish initialise error: %s", err)
		exitwithstatus.Message("publish initialise error: %s", err)
	}
	defer publisher.Stop()

	registry := prometheus.NewRegistry()
	err = metrics.Register(registry, board)
	if nil != err {
		log.Criticalf("metrics register error: %s", err)
		exitwithstatus.Message("metrics register error: %s", err)
	}

	// start up the rpc background processes
	services := &server.Services{
		Board:       board,
		Roster:      operatorRoster,
		Bank:        bank,
		FaucetLimit: theConfiguration.FaucetLimit,
	}
	listeners, err := rpc.New(&theConfiguration.ClientRPC, &theConfiguration.HttpsRPC, version, services, registry)
	if nil != err {
		log.Criticalf("rpc initialise error: %s", err)
		exitwithstatus.Message("rpc initialise error: %s", err)
	}
	defer listeners.Stop()

	if len(options["memory-stats"]) > 0 {
		stats := background.Start(background.Processes{newMemoryStats(bus)}, nil)
		defer stats.Stop()
	}

	// wait for CTRL-C before shutting down to allow manual testing
	if 0 == len(options["quiet"]) {
		fmt.Printf("\n\nWaiting for CTRL-C (SIGINT) or 'kill <pid>' (SIGTERM)…")
	}

	// turn Signals into channel messages
	ch := make(chan os.Signal, 1)
	signal.Notify(ch, syscall.SIGINT, syscall.SIGTERM)
	sig := <-ch
	log.Infof("received signal: %v", sig)
	if 0 == len(options["quiet"]) {
		fmt.Printf("\nreceived signal: %v\n", sig)
		fmt.Printf("\nshutting down…\n")
	}

	log.Info("shutting down…")
}
