// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package fault

import (
	"fmt"
)

// GenericError - error base
type GenericError string

// to allow for different classes of errors
type ExistsError GenericError
type InvalidError GenericError
type LengthError GenericError
type NotFoundError GenericError
type ProcessError GenericError

// common errors - keep in alphabetic order
var (
	BalanceOverflow              = InvalidError("balance overflow")
	BulletinAlreadyExists        = ExistsError("bulletin already exists")
	BulletinNotFound             = NotFoundError("bulletin not found")
	CannotDecodeAccount          = InvalidError("cannot decode account")
	CertificateFileAlreadyExists = ExistsError("certificate file already exists")
	ChecksumMismatch             = ProcessError("checksum mismatch")
	ConfigurationNotFound        = NotFoundError("configuration file not found")
	Decommissioned               = ProcessError("bulletin board is decommissioned")
	DurationTooLong              = InvalidError("duration too long")
	FaucetDisabled               = ProcessError("faucet is disabled")
	FingerprintMismatch          = InvalidError("certificate fingerprint mismatch")
	InsufficientFunds            = ProcessError("insufficient funds")
	InvalidAccount               = InvalidError("invalid account")
	InvalidAmount                = InvalidError("invalid amount")
	InvalidCommission            = InvalidError("invalid commission")
	InvalidCount                 = InvalidError("invalid count")
	InvalidCursor                = InvalidError("invalid cursor")
	InvalidIpAddress             = InvalidError("invalid IP address")
	InvalidPrivateKeyFile        = InvalidError("invalid private key file")
	InvalidPublicKeyFile         = InvalidError("invalid public key file")
	InvalidStructPointer         = InvalidError("invalid struct pointer")
	KeyFileAlreadyExists         = ExistsError("key file already exists")
	MissingOperatorName          = InvalidError("missing operator name")
	MissingParameters            = InvalidError("missing parameters")
	OperatorAlreadyExists        = ExistsError("operator already exists")
	OperatorNotFound             = NotFoundError("operator not found")
	RateLimiting                 = InvalidError("rate limiting")
	TextTooLong                  = LengthError("text too long")
	TransactionNotStarted        = ProcessError("transaction not started")
)

// InsufficientPaymentError - the tendered amount did not cover the
// listing cost, Required holds the cost that must be paid
type InsufficientPaymentError struct {
	Required uint64
}

// the error interface base method
func (e GenericError) Error() string { return string(e) }

// the error interface methods
func (e ExistsError) Error() string   { return string(e) }
func (e InvalidError) Error() string  { return string(e) }
func (e LengthError) Error() string   { return string(e) }
func (e NotFoundError) Error() string { return string(e) }
func (e ProcessError) Error() string  { return string(e) }

func (e *InsufficientPaymentError) Error() string {
	return fmt.Sprintf("listing cost too low: required: %d", e.Required)
}

// determine the class of an error
func IsErrExists(e error) bool   { _, ok := e.(ExistsError); return ok }
func IsErrInvalid(e error) bool  { _, ok := e.(InvalidError); return ok }
func IsErrLength(e error) bool   { _, ok := e.(LengthError); return ok }
func IsErrNotFound(e error) bool { _, ok := e.(NotFoundError); return ok }
func IsErrProcess(e error) bool  { _, ok := e.(ProcessError); return ok }

// IsErrInsufficientPayment - true for a listing cost failure, also
// returns the required amount
func IsErrInsufficientPayment(e error) (uint64, bool) {
	p, ok := e.(*InsufficientPaymentError)
	if !ok {
		return 0, false
	}
	return p.Required, true
}
