// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2019 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package fault

// GenericError - error base
type GenericError string

// to allow for different classes of errors
type ExistsError GenericError
type InvalidError GenericError
type LengthError GenericError
type NotFoundError GenericError
type ProcessError GenericError
type RecordError GenericError

// common errors - keep in alphabetic order
var (
	ErrAccessDenied           = ProcessError("access denied")
	ErrAlreadyInitialised     = ExistsError("already initialised")
	ErrBadMetadata            = InvalidError("bad metadata")
	ErrBadSignature           = RecordError("bad signature")
	ErrCannotDecodeAccount    = InvalidError("cannot decode account")
	ErrCannotDecodePrivateKey = InvalidError("cannot decode private key")
	ErrChecksumMismatch       = InvalidError("checksum mismatch")
	ErrCryptoFailure          = ProcessError("crypto failure")
	ErrInvalidCompression     = InvalidError("invalid compression")
	ErrInvalidConfiguration   = InvalidError("invalid configuration")
	ErrInvalidKey             = InvalidError("invalid key")
	ErrInvalidKeyLength       = LengthError("invalid key length")
	ErrInvalidLoggerChannel   = InvalidError("invalid logger channel")
	ErrInvalidMaximumSize     = InvalidError("invalid maximum size")
	ErrInvalidNetwork         = InvalidError("invalid network")
	ErrInvalidPrevTxHash      = InvalidError("invalid previous transaction hash")
	ErrInvalidStructPointer   = InvalidError("invalid struct pointer")
	ErrInvalidWallet          = InvalidError("invalid wallet")
	ErrMalformed              = RecordError("malformed transaction")
	ErrNoPayload              = NotFoundError("no payload")
	ErrNotEncrypted           = ProcessError("payload not encrypted")
	ErrNotInitialised         = ProcessError("not initialised")
	ErrNotPrivateKey          = InvalidError("not private key")
	ErrNotPublicKey           = InvalidError("not public key")
	ErrNotSigned              = ProcessError("transaction not signed")
	ErrNotSupported           = ProcessError("not supported")
	ErrPayloadNotFound        = NotFoundError("payload not found")
	ErrPayloadTooLarge        = LengthError("payload too large")
	ErrTooManyPayloads        = LengthError("too many payloads")
	ErrUnsupportedVersion     = InvalidError("unsupported version")
)

// the error interface base method
func (e GenericError) Error() string { return string(e) }

// the error interface methods
func (e ExistsError) Error() string   { return string(e) }
func (e InvalidError) Error() string  { return string(e) }
func (e LengthError) Error() string   { return string(e) }
func (e NotFoundError) Error() string { return string(e) }
func (e ProcessError) Error() string  { return string(e) }
func (e RecordError) Error() string   { return string(e) }

// determine the class of an error
func IsErrExists(e error) bool   { _, ok := e.(ExistsError); return ok }
func IsErrInvalid(e error) bool  { _, ok := e.(InvalidError); return ok }
func IsErrLength(e error) bool   { _, ok := e.(LengthError); return ok }
func IsErrNotFound(e error) bool { _, ok := e.(NotFoundError); return ok }
func IsErrProcess(e error) bool  { _, ok := e.(ProcessError); return ok }
func IsErrRecord(e error) bool   { _, ok := e.(RecordError); return ok }
