// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2019 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package envelope

import (
	"time"

	"github.com/bitmark-inc/txenvelope/fault"
	"github.com/bitmark-inc/txenvelope/payload"
	"github.com/bitmark-inc/txenvelope/util"
)

// header word
const (
	TransactionFlag = 0x80000000
	versionMask     = 0x7fffffff
	HeaderSize      = 4
)

// Transport - the serialized form of a transaction
//
// ID is the hex content hash, only present on a signed transaction;
// RegisterID is not used by any current version
type Transport struct {
	ID         string
	RegisterID string
	Data       []byte
}

// Envelope - operations common to every transaction version
type Envelope interface {
	GetTxVersion() uint32
	GetTxSender() (string, error)
	GetTxRecipients() ([]string, error)
	GetTxTimeStamp() (time.Time, error)
	GetPrevTxHash() (string, error)
	GetTxMetaData() (string, error)
	GetTxHash() (string, error)
	GetTxSignature() (string, error)
	GetTxPayloadManager() *payload.Manager

	SetTxRecipients(wallets []string) ([]bool, error)
	SetTxMetaData(metadata string) error
	SetPrevTxHash(hash string) error

	SignTx(privateKey string) error
	VerifyTx() error

	GetTxTransport() (*Transport, error)
	ToJSON() (string, error)
}

// Format - constructor and parser for one transaction version
type Format interface {
	Version() uint32
	New(settings payload.Settings) Envelope
	Parse(data []byte, settings payload.Settings) (Envelope, error)
}

// AppendHeader - append the header word for a version
func AppendHeader(buffer []byte, version uint32) []byte {
	return util.AppendUint32(buffer, TransactionFlag|(version&versionMask))
}

// ReadHeader - extract the version from the start of a blob
func ReadHeader(data []byte) (uint32, int, error) {
	word, n, err := util.Uint32FromBytes(data)
	if nil != err {
		return 0, 0, fault.ErrMalformed
	}
	if 0 == word&TransactionFlag {
		return 0, 0, fault.ErrMalformed
	}
	return word & versionMask, n, nil
}
