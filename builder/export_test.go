// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2019 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package builder

import (
	"github.com/bitmark-inc/txenvelope/envelope"
)

// RegisterFormat - make an extra version known for the duration of a
// test, the returned function removes it
func RegisterFormat(version uint32, f envelope.Format) func() {
	globalData.Lock()
	defer globalData.Unlock()

	knownFormats[version] = f
	return func() {
		globalData.Lock()
		defer globalData.Unlock()
		delete(knownFormats, version)
	}
}
