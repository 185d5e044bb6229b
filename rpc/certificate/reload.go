// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package certificate

import (
	"crypto/tls"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"

	"github.com/bitmark-inc/logger"
)

// Reloader - serves the current key pair and loads it again whenever
// the certificate or key file is replaced
type Reloader struct {
	sync.RWMutex

	log                 *logger.L
	name                string
	certificateFileName string
	keyFileName         string
	watcher             *fsnotify.Watcher

	keyPair     *tls.Certificate
	fingerprint [32]byte
}

// NewReloader - load the key pair and watch its files
//
// the Reloader must be started as a background process for changes
// to take effect
func NewReloader(log *logger.L, name string, certificateFileName string, keyFileName string) (*Reloader, error) {
	r := &Reloader{
		log:                 log,
		name:                name,
		certificateFileName: filepath.Clean(certificateFileName),
		keyFileName:         filepath.Clean(keyFileName),
	}

	err := r.reload()
	if nil != err {
		log.Errorf("%s failed to load keypair: %v", name, err)
		return nil, err
	}

	watcher, err := fsnotify.NewWatcher()
	if nil != err {
		log.Errorf("%s new watcher error: %s", name, err)
		return nil, err
	}

	// watch directories so replacement by rename is seen
	directories := map[string]struct{}{
		filepath.Dir(r.certificateFileName): {},
		filepath.Dir(r.keyFileName):         {},
	}
	for d := range directories {
		err := watcher.Add(d)
		if nil != err {
			watcher.Close()
			log.Errorf("%s watch: %q  error: %s", name, d, err)
			return nil, err
		}
	}
	r.watcher = watcher

	return r, nil
}

// Config - a TLS configuration always presenting the current key pair
func (r *Reloader) Config() *tls.Config {
	return &tls.Config{
		GetCertificate: r.GetCertificate,
	}
}

// GetCertificate - the current key pair, for tls.Config
func (r *Reloader) GetCertificate(_ *tls.ClientHelloInfo) (*tls.Certificate, error) {
	r.RLock()
	defer r.RUnlock()
	return r.keyPair, nil
}

// Fingerprint - fingerprint of the current certificate
func (r *Reloader) Fingerprint() [32]byte {
	r.RLock()
	defer r.RUnlock()
	return r.fingerprint
}

// Run - background process reloading on file changes
func (r *Reloader) Run(args interface{}, shutdown <-chan struct{}) {
	log := r.log
	defer r.watcher.Close()

loop:
	for {
		select {
		case <-shutdown:
			break loop

		case event, ok := <-r.watcher.Events:
			if !ok {
				break loop
			}
			if !r.isWatched(event) {
				continue loop
			}
			log.Debugf("%s file event: %v", r.name, event)

			// a failed load keeps the previous key pair; the
			// other file of the pair may not have been replaced yet
			err := r.reload()
			if nil != err {
				log.Warnf("%s reload error: %s", r.name, err)
				continue loop
			}
			log.Infof("%s reloaded  SHA3-256 fingerprint: %x", r.name, r.Fingerprint())

		case err, ok := <-r.watcher.Errors:
			if !ok {
				break loop
			}
			log.Errorf("%s watcher error: %s", r.name, err)
		}
	}
}

func (r *Reloader) isWatched(event fsnotify.Event) bool {
	if 0 == event.Op&(fsnotify.Write|fsnotify.Create) {
		return false
	}
	name := filepath.Clean(event.Name)
	return name == r.certificateFileName || name == r.keyFileName
}

func (r *Reloader) reload() error {
	keyPair, err := tls.LoadX509KeyPair(r.certificateFileName, r.keyFileName)
	if nil != err {
		return err
	}

	r.Lock()
	r.keyPair = &keyPair
	r.fingerprint = Fingerprint(keyPair.Certificate[0])
	r.Unlock()

	return nil
}
