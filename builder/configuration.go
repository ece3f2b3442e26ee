// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2019 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package builder

import (
	"github.com/bitmark-inc/txenvelope/envelope"
	"github.com/bitmark-inc/txenvelope/fault"
	"github.com/bitmark-inc/txenvelope/payload"
)

// compression names
const (
	CompressionDefault = "default"
	CompressionNone    = "none"
)

// PayloadConfiguration - settings for every payload manager created
type PayloadConfiguration struct {
	Compression string `gluamapper:"compression" json:"compression"`
	MaximumSize int    `gluamapper:"maximum_size" json:"maximum_size"`
}

// Configuration - builder settings
type Configuration struct {
	Payload  PayloadConfiguration `gluamapper:"payload" json:"payload"`
	Versions []int                `gluamapper:"versions" json:"versions"`
}

// convert a configuration to manager settings and the enabled formats
func configure(configuration *Configuration) (payload.Settings, map[uint32]envelope.Format, error) {
	settings := payload.Settings{
		MaximumSize: payload.DefaultMaximumSize,
	}
	if nil == configuration {
		return settings, allFormats(), nil
	}

	switch configuration.Payload.Compression {
	case "", CompressionDefault:
		settings.Compression = payload.DefaultCompression
	case CompressionNone:
		settings.Compression = payload.NoCompression
	default:
		return payload.Settings{}, nil, fault.ErrInvalidCompression
	}

	switch size := configuration.Payload.MaximumSize; {
	case size < 0:
		return payload.Settings{}, nil, fault.ErrInvalidMaximumSize
	case size > 0:
		settings.MaximumSize = size
	}

	if 0 == len(configuration.Versions) {
		return settings, allFormats(), nil
	}

	known := allFormats()
	formats := make(map[uint32]envelope.Format)
	for _, v := range configuration.Versions {
		if v <= 0 {
			return payload.Settings{}, nil, fault.ErrUnsupportedVersion
		}
		f, ok := known[uint32(v)]
		if !ok {
			return payload.Settings{}, nil, fault.ErrUnsupportedVersion
		}
		formats[uint32(v)] = f
	}
	return settings, formats, nil
}
