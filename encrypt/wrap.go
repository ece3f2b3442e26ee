// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2019 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package encrypt

import (
	"crypto/rand"
	"crypto/sha256"
	"io"

	"filippo.io/edwards25519"
	"golang.org/x/crypto/chacha20poly1305"
	"golang.org/x/crypto/curve25519"
	"golang.org/x/crypto/hkdf"

	"github.com/bitmark-inc/txenvelope/account"
	"github.com/bitmark-inc/txenvelope/fault"
)

// WrappedKeySize - ephemeral public key followed by the sealed key
const WrappedKeySize = 32 + KeySize + chacha20poly1305.Overhead

var wrapInfo = []byte("txenvelope payload key wrap")

// WrapKey - seal a symmetric key so only the recipient can open it
func WrapKey(recipient *account.Account, symmetricKey []byte) ([]byte, error) {
	if KeySize != len(symmetricKey) {
		return nil, fault.ErrCryptoFailure
	}

	recipientPublic, err := montgomery(recipient.PublicKeyBytes())
	if nil != err {
		return nil, err
	}

	var ephemeral [32]byte
	if _, err := io.ReadFull(rand.Reader, ephemeral[:]); nil != err {
		return nil, fault.ErrCryptoFailure
	}
	var ephemeralPublic [32]byte
	curve25519.ScalarBaseMult(&ephemeralPublic, &ephemeral)

	kek, err := deriveSharedSecret(&ephemeral, &recipientPublic, &ephemeralPublic, &recipientPublic)
	if nil != err {
		return nil, err
	}

	aead, err := chacha20poly1305.New(kek)
	if nil != err {
		return nil, fault.ErrCryptoFailure
	}

	// every kek is single use so a fixed nonce is safe
	var nonce [chacha20poly1305.NonceSize]byte
	wrapped := make([]byte, 0, WrappedKeySize)
	wrapped = append(wrapped, ephemeralPublic[:]...)
	return aead.Seal(wrapped, nonce[:], symmetricKey, nil), nil
}

// UnwrapKey - recover a symmetric key with the recipient's private key
func UnwrapKey(privateKey *account.PrivateKey, wrapped []byte) ([]byte, error) {
	if WrappedKeySize != len(wrapped) {
		return nil, fault.ErrCryptoFailure
	}

	scalar := privateKey.Curve25519()
	var recipientPublic [32]byte
	curve25519.ScalarBaseMult(&recipientPublic, &scalar)

	var ephemeralPublic [32]byte
	copy(ephemeralPublic[:], wrapped[:32])

	kek, err := deriveSharedSecret(&scalar, &ephemeralPublic, &ephemeralPublic, &recipientPublic)
	if nil != err {
		return nil, err
	}

	aead, err := chacha20poly1305.New(kek)
	if nil != err {
		return nil, fault.ErrCryptoFailure
	}

	var nonce [chacha20poly1305.NonceSize]byte
	key, err := aead.Open(nil, nonce[:], wrapped[32:], nil)
	if nil != err {
		return nil, fault.ErrCryptoFailure
	}
	return key, nil
}

// X25519 exchange followed by HKDF bound to both public keys
func deriveSharedSecret(scalar *[32]byte, peerPublic *[32]byte, ephemeralPublic *[32]byte, recipientPublic *[32]byte) ([]byte, error) {
	var shared [32]byte
	curve25519.ScalarMult(&shared, scalar, peerPublic)

	// a low order peer point gives an all zero secret
	if [32]byte{} == shared {
		return nil, fault.ErrCryptoFailure
	}

	salt := make([]byte, 0, 64)
	salt = append(salt, ephemeralPublic[:]...)
	salt = append(salt, recipientPublic[:]...)

	kek := make([]byte, KeySize)
	if _, err := io.ReadFull(hkdf.New(sha256.New, shared[:], salt, wrapInfo), kek); nil != err {
		return nil, fault.ErrCryptoFailure
	}
	return kek, nil
}

// convert an ed25519 public key to its X25519 form
func montgomery(publicKey []byte) ([32]byte, error) {
	var result [32]byte
	p, err := new(edwards25519.Point).SetBytes(publicKey)
	if nil != err {
		return result, fault.ErrInvalidWallet
	}
	copy(result[:], p.BytesMontgomery())
	return result, nil
}
