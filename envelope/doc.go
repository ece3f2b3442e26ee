// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2019 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package envelope - the version independent view of a transaction
//
// every transaction version implements Envelope and registers a Format
// with the builder; the first four bytes of a transport blob are a
// header word holding the transaction flag and the version
package envelope
