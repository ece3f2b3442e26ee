// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2019 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package util

import (
	"encoding/binary"

	"github.com/bitmark-inc/txenvelope/fault"
)

// fixed width big endian integers

// AppendUint16 - append a 2 byte big endian value
func AppendUint16(buffer []byte, value uint16) []byte {
	var b [2]byte
	binary.BigEndian.PutUint16(b[:], value)
	return append(buffer, b[:]...)
}

// AppendUint32 - append a 4 byte big endian value
func AppendUint32(buffer []byte, value uint32) []byte {
	var b [4]byte
	binary.BigEndian.PutUint32(b[:], value)
	return append(buffer, b[:]...)
}

// AppendUint64 - append an 8 byte big endian value
func AppendUint64(buffer []byte, value uint64) []byte {
	var b [8]byte
	binary.BigEndian.PutUint64(b[:], value)
	return append(buffer, b[:]...)
}

// Uint16FromBytes - read a 2 byte big endian value
func Uint16FromBytes(buffer []byte) (uint16, int, error) {
	if len(buffer) < 2 {
		return 0, 0, fault.ErrMalformed
	}
	return binary.BigEndian.Uint16(buffer), 2, nil
}

// Uint32FromBytes - read a 4 byte big endian value
func Uint32FromBytes(buffer []byte) (uint32, int, error) {
	if len(buffer) < 4 {
		return 0, 0, fault.ErrMalformed
	}
	return binary.BigEndian.Uint32(buffer), 4, nil
}

// Uint64FromBytes - read an 8 byte big endian value
func Uint64FromBytes(buffer []byte) (uint64, int, error) {
	if len(buffer) < 8 {
		return 0, 0, fault.ErrMalformed
	}
	return binary.BigEndian.Uint64(buffer), 8, nil
}
