// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2019 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package digest - SHA3-256 content hashes
//
// A digest is printed and parsed as plain order lower case hex, the
// same form used for transaction and payload hashes on the wire.
package digest
