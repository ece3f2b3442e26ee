// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2019 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package encrypt

import (
	"crypto/rand"
	"io"

	"golang.org/x/crypto/chacha20poly1305"

	"github.com/bitmark-inc/txenvelope/fault"
)

// sizes of the cipher components
const (
	KeySize   = chacha20poly1305.KeySize
	NonceSize = chacha20poly1305.NonceSizeX
	TagSize   = chacha20poly1305.Overhead
)

// NewKey - a fresh random symmetric key
func NewKey() ([]byte, error) {
	key := make([]byte, KeySize)
	if _, err := io.ReadFull(rand.Reader, key); nil != err {
		return nil, fault.ErrCryptoFailure
	}
	return key, nil
}

// Seal - encrypt plaintext with a random nonce, authenticating the
// additional data
func Seal(key []byte, plaintext []byte, additional []byte) (nonce []byte, tag []byte, ciphertext []byte, err error) {
	aead, err := chacha20poly1305.NewX(key)
	if nil != err {
		return nil, nil, nil, fault.ErrCryptoFailure
	}

	nonce = make([]byte, NonceSize)
	if _, err := io.ReadFull(rand.Reader, nonce); nil != err {
		return nil, nil, nil, fault.ErrCryptoFailure
	}

	sealed := aead.Seal(nil, nonce, plaintext, additional)
	split := len(sealed) - TagSize
	return nonce, sealed[split:], sealed[:split], nil
}

// Open - authenticate and decrypt
func Open(key []byte, nonce []byte, tag []byte, ciphertext []byte, additional []byte) ([]byte, error) {
	if NonceSize != len(nonce) || TagSize != len(tag) {
		return nil, fault.ErrCryptoFailure
	}
	aead, err := chacha20poly1305.NewX(key)
	if nil != err {
		return nil, fault.ErrCryptoFailure
	}

	sealed := make([]byte, 0, len(ciphertext)+TagSize)
	sealed = append(append(sealed, ciphertext...), tag...)
	plaintext, err := aead.Open(nil, nonce, sealed, additional)
	if nil != err {
		return nil, fault.ErrCryptoFailure
	}
	return plaintext, nil
}
