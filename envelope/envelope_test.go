// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2019 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package envelope_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bitmark-inc/txenvelope/envelope"
	"github.com/bitmark-inc/txenvelope/fault"
)

func TestHeader(t *testing.T) {
	buffer := envelope.AppendHeader([]byte{}, 3)
	assert.Equal(t, []byte{0x80, 0x00, 0x00, 0x03}, buffer, "header bytes")

	version, n, err := envelope.ReadHeader(append(buffer, 0xff))
	assert.Nil(t, err, "read header")
	assert.Equal(t, uint32(3), version, "version")
	assert.Equal(t, envelope.HeaderSize, n, "consumed")
}

func TestHeaderInvalid(t *testing.T) {
	tests := [][]byte{
		{},
		{0x80, 0x00, 0x00},
		{0x00, 0x00, 0x00, 0x03},
		{0x7f, 0xff, 0xff, 0xff},
	}
	for i, item := range tests {
		_, _, err := envelope.ReadHeader(item)
		assert.Equal(t, fault.ErrMalformed, err, "%d: %x", i, item)
	}
}
