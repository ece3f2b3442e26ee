// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2019 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package version3

import (
	"github.com/bitmark-inc/txenvelope/envelope"
	"github.com/bitmark-inc/txenvelope/payload"
)

// Format - the builder entry for version 3
type Format struct{}

// Version - the version handled
func (Format) Version() uint32 {
	return Version
}

// New - an empty version 3 transaction
func (Format) New(settings payload.Settings) envelope.Envelope {
	return New(settings)
}

// Parse - decode a version 3 transport blob
func (Format) Parse(data []byte, settings payload.Settings) (envelope.Envelope, error) {
	tx, err := Parse(data, settings)
	if nil != err {
		return nil, err
	}
	return tx, nil
}
