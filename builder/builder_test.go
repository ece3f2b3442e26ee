// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2019 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package builder_test

import (
	"bytes"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"

	"github.com/bitmark-inc/txenvelope/builder"
	"github.com/bitmark-inc/txenvelope/envelope"
	"github.com/bitmark-inc/txenvelope/envelope/mocks"
	"github.com/bitmark-inc/txenvelope/envelope/version3"
	"github.com/bitmark-inc/txenvelope/fault"
	"github.com/bitmark-inc/txenvelope/payload"
)

func TestDefaults(t *testing.T) {
	assert.Equal(t, []uint32{3}, builder.Versions(), "versions")

	tx, err := builder.New(3)
	assert.Nil(t, err, "new")
	assert.Equal(t, uint32(3), tx.GetTxVersion(), "version")
	_, ok := tx.(*version3.Transaction)
	assert.True(t, ok, "version 3 type")

	for _, v := range []uint32{0, 1, 2, 4, 0x7fffffff} {
		tx, err := builder.New(v)
		assert.Equal(t, fault.ErrUnsupportedVersion, err, "version %d", v)
		assert.Nil(t, tx, "version %d", v)
	}

	assert.Equal(t, fault.ErrNotInitialised, builder.Finalise(), "finalise")
}

func TestBuild(t *testing.T) {
	privateKey := newPrivateKey(t)
	recipient := newPrivateKey(t)

	tx, _ := builder.New(3)
	_, err := tx.SetTxRecipients([]string{recipient.Account().String()})
	assert.Nil(t, err, "recipients")
	_, _, err = tx.GetTxPayloadManager().AddPayload([]byte("built"), []string{recipient.Account().String()}, nil)
	assert.Nil(t, err, "add")
	assert.Nil(t, tx.SignTx(privateKey.String()), "sign")

	transport, err := tx.GetTxTransport()
	assert.Nil(t, err, "transport")

	parsed, err := builder.Build(transport.Data)
	if nil != err {
		t.Fatalf("build error: %s", err)
	}
	assert.Nil(t, parsed.VerifyTx(), "verify")
	sender, _ := parsed.GetTxSender()
	assert.Equal(t, privateKey.Account().String(), sender, "sender")

	again, _ := parsed.GetTxTransport()
	assert.True(t, bytes.Equal(transport.Data, again.Data), "re-serialized")

	data, err := parsed.GetTxPayloadManager().GetPayloadData(1, recipient.String())
	assert.Nil(t, err, "payload data")
	assert.Equal(t, []byte("built"), data, "plaintext")
}

func TestBuildInvalid(t *testing.T) {
	tests := []struct {
		data []byte
		err  error
	}{
		{nil, fault.ErrMalformed},
		{[]byte{0x80, 0x00, 0x00}, fault.ErrMalformed},
		{[]byte{0x00, 0x00, 0x00, 0x03, 0x00}, fault.ErrMalformed},
		{[]byte{0x80, 0x00, 0x00, 0x02}, fault.ErrUnsupportedVersion},
		{[]byte{0x80, 0x00, 0x00, 0x04, 0x01, 0x02}, fault.ErrUnsupportedVersion},
		{[]byte{0x80, 0x00, 0x00, 0x03}, fault.ErrMalformed},
	}
	for i, item := range tests {
		tx, err := builder.Build(item.data)
		assert.Equal(t, item.err, err, "%d: %x", i, item.data)
		assert.Nil(t, tx, "%d: no transaction", i)
	}
}

func TestInitialise(t *testing.T) {
	setupTestLogger()
	defer teardownTestLogger()

	configuration := &builder.Configuration{
		Payload: builder.PayloadConfiguration{
			Compression: builder.CompressionNone,
			MaximumSize: 64,
		},
		Versions: []int{3},
	}
	assert.Nil(t, builder.Initialise(configuration), "initialise")
	defer builder.Finalise()

	assert.Equal(t, fault.ErrAlreadyInitialised, builder.Initialise(configuration), "second initialise")
	assert.Equal(t, []uint32{3}, builder.Versions(), "versions")

	tx, err := builder.New(3)
	assert.Nil(t, err, "new")
	m := tx.GetTxPayloadManager()

	_, _, err = m.AddPayload(make([]byte, 65), nil, nil)
	assert.Equal(t, fault.ErrPayloadTooLarge, err, "too large")

	id, _, err := m.AddPayload(bytes.Repeat([]byte{'a'}, 64), nil, nil)
	assert.Nil(t, err, "largest")
	info, _ := m.GetPayloadInfo(id)
	assert.False(t, info.Compressed, "configured compression")
	assert.Equal(t, 64, info.Size, "stored as given")

	// the limit also applies when parsing
	transport, _ := tx.GetTxTransport()
	_, err = builder.Build(transport.Data)
	assert.Nil(t, err, "build within limit")

	assert.Nil(t, builder.Finalise(), "finalise")
	assert.Equal(t, fault.ErrNotInitialised, builder.Finalise(), "second finalise")

	// defaults apply again
	tx, _ = builder.New(3)
	id, _, err = tx.GetTxPayloadManager().AddPayload(make([]byte, 65), nil, nil)
	assert.Nil(t, err, "default limit")
	info, _ = tx.GetTxPayloadManager().GetPayloadInfo(id)
	assert.True(t, info.Compressed, "default compression")
}

func TestInitialiseLimitsParsing(t *testing.T) {
	setupTestLogger()
	defer teardownTestLogger()

	tx, _ := builder.New(3)
	_, _, err := tx.GetTxPayloadManager().AddPayload(make([]byte, 100), nil, &payload.Options{Compression: payload.NoCompression})
	assert.Nil(t, err, "add")
	transport, _ := tx.GetTxTransport()

	configuration := &builder.Configuration{
		Payload: builder.PayloadConfiguration{
			MaximumSize: 50,
		},
	}
	assert.Nil(t, builder.Initialise(configuration), "initialise")
	defer builder.Finalise()

	_, err = builder.Build(transport.Data)
	assert.Equal(t, fault.ErrMalformed, err, "content over limit")
}

func TestInitialiseInvalid(t *testing.T) {
	setupTestLogger()
	defer teardownTestLogger()

	tests := []struct {
		configuration builder.Configuration
		err           error
	}{
		{builder.Configuration{Payload: builder.PayloadConfiguration{Compression: "zip"}}, fault.ErrInvalidCompression},
		{builder.Configuration{Payload: builder.PayloadConfiguration{MaximumSize: -1}}, fault.ErrInvalidMaximumSize},
		{builder.Configuration{Versions: []int{3, 4}}, fault.ErrUnsupportedVersion},
		{builder.Configuration{Versions: []int{-3}}, fault.ErrUnsupportedVersion},
	}
	for i, item := range tests {
		configuration := item.configuration
		assert.Equal(t, item.err, builder.Initialise(&configuration), "%d: initialise", i)
		assert.Equal(t, fault.ErrNotInitialised, builder.Finalise(), "%d: not initialised", i)
	}

	assert.Nil(t, builder.Initialise(nil), "nil configuration")
	assert.Equal(t, []uint32{3}, builder.Versions(), "all versions")
	assert.Nil(t, builder.Finalise(), "finalise")
}

func TestDispatch(t *testing.T) {
	ctl := gomock.NewController(t)
	defer ctl.Finish()

	const version = 9
	f := mocks.NewMockFormat(ctl)
	remove := builder.RegisterFormat(version, f)
	defer remove()

	assert.Equal(t, []uint32{3, version}, builder.Versions(), "versions")

	created := version3.New(payload.Settings{})
	f.EXPECT().New(gomock.Any()).Return(created).Times(1)

	tx, err := builder.New(version)
	assert.Nil(t, err, "new")
	assert.Equal(t, envelope.Envelope(created), tx, "created by format")

	data := envelope.AppendHeader(nil, version)
	data = append(data, 0x01, 0x02, 0x03)
	f.EXPECT().Parse(data, gomock.Any()).Return(created, nil).Times(1)

	tx, err = builder.Build(data)
	assert.Nil(t, err, "build")
	assert.Equal(t, envelope.Envelope(created), tx, "parsed by format")

	other := envelope.AppendHeader(nil, version)
	f.EXPECT().Parse(other, gomock.Any()).Return(nil, fault.ErrMalformed).Times(1)
	tx, err = builder.Build(other)
	assert.Equal(t, fault.ErrMalformed, err, "format error")
	assert.Nil(t, tx, "no transaction")
}
