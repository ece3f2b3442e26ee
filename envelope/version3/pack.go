// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2019 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package version3

import (
	"bytes"

	"golang.org/x/crypto/ed25519"

	"github.com/bitmark-inc/txenvelope/account"
	"github.com/bitmark-inc/txenvelope/digest"
	"github.com/bitmark-inc/txenvelope/envelope"
	"github.com/bitmark-inc/txenvelope/fault"
	"github.com/bitmark-inc/txenvelope/payload"
	"github.com/bitmark-inc/txenvelope/util"
)

// longest address binary accepted: 9 byte varint network plus key
const maximumAddressLength = 9 + ed25519.PublicKeySize

// serialize, leaving the signature empty for the signed content
func (tx *Transaction) pack(withSignature bool) []byte {
	buffer := envelope.AppendHeader(make([]byte, 0, 256), Version)
	buffer = append(buffer, tx.prevHash[:]...)

	buffer = util.AppendVarint64(buffer, uint64(len(tx.recipients)))
	for _, r := range tx.recipients {
		buffer = util.AppendBytes(buffer, r.Bytes())
	}

	buffer = util.AppendBytes(buffer, []byte(tx.metadata))

	buffer = util.AppendUint64(buffer, tx.timestamp)
	if nil != tx.sender {
		buffer = util.AppendBytes(buffer, tx.sender.Bytes())
	} else {
		buffer = util.AppendBytes(buffer, nil)
	}
	if withSignature {
		buffer = util.AppendBytes(buffer, tx.signature)
	} else {
		buffer = util.AppendBytes(buffer, nil)
	}

	return tx.payloads.Pack(buffer)
}

// Parse - decode a version 3 transport blob
//
// the blob must be in canonical form: re-serializing the result gives
// the same bytes; an embedded signature must verify
func Parse(data []byte, settings payload.Settings) (tx *Transaction, err error) {
	defer func() {
		if r := recover(); nil != r {
			tx = nil
			err = fault.ErrMalformed
		}
	}()

	tx, err = unpack(data, settings)
	if nil != err {
		if nil != settings.Log {
			settings.Log.Debugf("parse error: %s", err)
		}
		return nil, err
	}
	return tx, nil
}

func unpack(data []byte, settings payload.Settings) (*Transaction, error) {
	version, n, err := envelope.ReadHeader(data)
	if nil != err {
		return nil, err
	}
	if Version != version {
		return nil, fault.ErrUnsupportedVersion
	}

	tx := &Transaction{
		log: settings.Log,
	}

	if len(data[n:]) < digest.Length {
		return nil, fault.ErrMalformed
	}
	copy(tx.prevHash[:], data[n:n+digest.Length])
	n += digest.Length

	recipientCount, count := util.ClippedVarint64(data[n:], 0, len(data))
	if 0 == count {
		return nil, fault.ErrMalformed
	}
	n += count

	tx.recipients = make([]*account.Account, 0, recipientCount)
	seen := make(map[string]struct{})
	for i := 0; i < recipientCount; i += 1 {
		address, count, err := util.FromBytes(data[n:], maximumAddressLength)
		if nil != err {
			return nil, err
		}
		n += count
		a, err := accountFromBytes(address)
		if nil != err {
			return nil, err
		}
		if _, ok := seen[string(address)]; ok {
			return nil, fault.ErrMalformed
		}
		seen[string(address)] = struct{}{}
		tx.recipients = append(tx.recipients, a)
	}

	metadata, count, err := util.FromBytes(data[n:], len(data))
	if nil != err {
		return nil, err
	}
	n += count
	if 0 != len(metadata) && !isJSONObject(metadata) {
		return nil, fault.ErrMalformed
	}
	tx.metadata = string(metadata)

	tx.timestamp, count, err = util.Uint64FromBytes(data[n:])
	if nil != err {
		return nil, err
	}
	n += count

	sender, count, err := util.FromBytes(data[n:], maximumAddressLength)
	if nil != err {
		return nil, err
	}
	n += count

	signature, count, err := util.FromBytes(data[n:], ed25519.SignatureSize)
	if nil != err {
		return nil, err
	}
	n += count

	manager, count, err := payload.Unpack(data[n:], settings)
	if nil != err {
		return nil, err
	}
	n += count
	attach(tx, manager)

	if n != len(data) {
		return nil, fault.ErrMalformed
	}

	unsigned := 0 == tx.timestamp && 0 == len(sender) && 0 == len(signature)
	if !unsigned {
		if 0 == tx.timestamp || ed25519.SignatureSize != len(signature) {
			return nil, fault.ErrMalformed
		}
		tx.sender, err = accountFromBytes(sender)
		if nil != err {
			return nil, err
		}
		tx.signature = signature
	}

	// rejects any alternative encoding of the same fields
	if !bytes.Equal(data, tx.pack(true)) {
		return nil, fault.ErrMalformed
	}

	if unsigned {
		return tx, nil
	}

	tx.hash = digest.NewDigest(tx.pack(false))
	if nil != tx.sender.CheckSignature(tx.hash[:], tx.signature) {
		tx.warnf("signature does not verify: %s  sender: %s", tx.hash, tx.sender)
		return nil, fault.ErrBadSignature
	}
	tx.signed = true
	return tx, nil
}

// addresses on the wire must be of the ed25519 family
func accountFromBytes(address []byte) (*account.Account, error) {
	a, err := account.AccountFromBytes(address)
	if nil != err || account.ED25519 != a.Network() {
		return nil, fault.ErrMalformed
	}
	return a, nil
}
