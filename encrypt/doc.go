// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2019 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package encrypt - payload ciphers and per recipient key wrapping
//
// Payload content is sealed with XChaCha20-Poly1305 under a fresh
// symmetric key.  The symmetric key is wrapped for each recipient by
// an ephemeral X25519 exchange against the Montgomery form of the
// recipient's ed25519 public key:
//
//	wrapped = ephemeral public key (32) || ChaCha20-Poly1305(kek, key)
//	kek     = HKDF-SHA256(shared secret, ephemeral public || recipient public)
//
// Only the holder of the matching private key can recover the
// symmetric key.
package encrypt
