// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2019 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package version3 - the version 3 transaction
//
// layout of the transport blob
//
//	[version word: u32 BE][previous hash: 32 bytes]
//	[Varint64 recipient count] count x [bytes: address binary]
//	[bytes: metadata JSON or empty]
//	[timestamp: u64 BE][bytes: sender address binary][bytes: signature]
//	[payload list]
//
// the signed content is the same layout with an empty signature, its
// SHA3-256 hash is the transaction hash and the signature is made over
// that hash
package version3
