// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2019 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package payload

import (
	"math"

	"github.com/golang/snappy"

	"github.com/bitmark-inc/txenvelope/digest"
	"github.com/bitmark-inc/txenvelope/encrypt"
	"github.com/bitmark-inc/txenvelope/fault"
	"github.com/bitmark-inc/txenvelope/util"
)

// record layout
//
//	[Varint64 id][flags: u16 BE][Varint64 wrapped key count]
//	count x ([bytes: identity hash][bytes: wrapped key])
//	[bytes: content hash]
//	plaintext: [bytes: content]
//	encrypted: [bytes: nonce][bytes: tag][bytes: ciphertext]
//
// where [bytes: x] is [Varint64 length][x]
func (p *Payload) pack(buffer []byte) []byte {
	buffer = util.AppendVarint64(buffer, uint64(p.id))
	buffer = util.AppendUint16(buffer, p.flags())
	buffer = util.AppendVarint64(buffer, uint64(len(p.entries)))
	for _, e := range p.entries {
		buffer = util.AppendBytes(buffer, e.identity[:])
		buffer = util.AppendBytes(buffer, e.wrapped)
	}
	buffer = util.AppendBytes(buffer, p.hash[:])
	if p.encrypted() {
		buffer = util.AppendBytes(buffer, p.nonce)
		buffer = util.AppendBytes(buffer, p.tag)
		return util.AppendBytes(buffer, p.ciphertext)
	}
	return util.AppendBytes(buffer, p.content)
}

// decode one record from the start of buffer
//
// returns the payload and the number of bytes consumed
func unpackRecord(buffer []byte, maximumSize int) (*Payload, int, error) {
	id, n := util.FromVarint64(buffer)
	if 0 == n || 0 == id || id > math.MaxUint32 {
		return nil, 0, fault.ErrMalformed
	}

	flags, count, err := util.Uint16FromBytes(buffer[n:])
	if nil != err || 0 != flags&^flagMask {
		return nil, 0, fault.ErrMalformed
	}
	n += count

	entryCount, count := util.ClippedVarint64(buffer[n:], 0, len(buffer))
	if 0 == count {
		return nil, 0, fault.ErrMalformed
	}
	n += count

	encrypted := 0 != flags&flagEncrypted
	if encrypted != (entryCount > 0) {
		return nil, 0, fault.ErrMalformed
	}

	p := &Payload{
		id:         uint32(id),
		compressed: 0 != flags&flagCompressed,
	}

	for i := 0; i < entryCount; i += 1 {
		identity, count, err := util.FromBytes(buffer[n:], digest.Length)
		if nil != err || digest.Length != len(identity) {
			return nil, 0, fault.ErrMalformed
		}
		n += count

		wrapped, count, err := util.FromBytes(buffer[n:], encrypt.WrappedKeySize)
		if nil != err || encrypt.WrappedKeySize != len(wrapped) {
			return nil, 0, fault.ErrMalformed
		}
		n += count

		e := entry{wrapped: wrapped}
		copy(e.identity[:], identity)
		if p.indexOf(e.identity) >= 0 {
			return nil, 0, fault.ErrMalformed
		}
		p.entries = append(p.entries, e)
	}

	hash, count, err := util.FromBytes(buffer[n:], digest.Length)
	if nil != err {
		return nil, 0, err
	}
	if err := digest.FromBytes(&p.hash, hash); nil != err {
		return nil, 0, fault.ErrMalformed
	}
	n += count

	limit := storedLimit(p.compressed, maximumSize)
	if !encrypted {
		content, count, err := util.FromBytes(buffer[n:], limit)
		if nil != err || 0 == len(content) {
			return nil, 0, fault.ErrMalformed
		}
		n += count
		p.content = content
		if err := p.checkContent(maximumSize); nil != err {
			return nil, 0, err
		}
		return p, n, nil
	}

	p.nonce, count, err = util.FromBytes(buffer[n:], encrypt.NonceSize)
	if nil != err {
		return nil, 0, err
	}
	n += count

	p.tag, count, err = util.FromBytes(buffer[n:], encrypt.TagSize)
	if nil != err {
		return nil, 0, err
	}
	n += count

	p.ciphertext, count, err = util.FromBytes(buffer[n:], limit)
	if nil != err {
		return nil, 0, err
	}
	n += count

	if !p.verify() {
		return nil, 0, fault.ErrMalformed
	}
	return p, n, nil
}

// largest stored content for data of up to maximumSize bytes
//
// snappy output of incompressible data is longer than its input
func storedLimit(compressed bool, maximumSize int) int {
	if !compressed {
		return maximumSize
	}
	n := snappy.MaxEncodedLen(maximumSize)
	if n < 0 {
		return maximumSize
	}
	return n
}
