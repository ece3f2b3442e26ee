// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2019 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package encrypt_test

import (
	"bytes"
	"crypto/rand"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bitmark-inc/txenvelope/account"
	"github.com/bitmark-inc/txenvelope/encrypt"
	"github.com/bitmark-inc/txenvelope/fault"
)

func newKey(t *testing.T) *account.PrivateKey {
	privateKey, err := account.NewPrivateKey(account.ED25519, rand.Reader)
	if nil != err {
		t.Fatalf("new private key error: %s", err)
	}
	return privateKey
}

func TestSealOpen(t *testing.T) {
	key, err := encrypt.NewKey()
	if nil != err {
		t.Fatalf("new key error: %s", err)
	}
	assert.Equal(t, encrypt.KeySize, len(key), "key size")

	plaintext := []byte("the quick brown fox jumps over the lazy dog")
	additional := []byte("content hash")

	nonce, tag, ciphertext, err := encrypt.Seal(key, plaintext, additional)
	assert.Nil(t, err, "seal")
	assert.Equal(t, encrypt.NonceSize, len(nonce), "nonce size")
	assert.Equal(t, encrypt.TagSize, len(tag), "tag size")
	assert.Equal(t, len(plaintext), len(ciphertext), "ciphertext size")
	assert.False(t, bytes.Equal(plaintext, ciphertext), "ciphertext differs")

	opened, err := encrypt.Open(key, nonce, tag, ciphertext, additional)
	assert.Nil(t, err, "open")
	assert.Equal(t, plaintext, opened, "plaintext")

	_, err = encrypt.Open(key, nonce, tag, ciphertext, []byte("other"))
	assert.Equal(t, fault.ErrCryptoFailure, err, "wrong additional data")

	damaged := append([]byte{}, ciphertext...)
	damaged[0] ^= 0x01
	_, err = encrypt.Open(key, nonce, tag, damaged, additional)
	assert.Equal(t, fault.ErrCryptoFailure, err, "damaged ciphertext")

	_, err = encrypt.Open(key, nonce[:12], tag, ciphertext, additional)
	assert.Equal(t, fault.ErrCryptoFailure, err, "short nonce")

	other, _ := encrypt.NewKey()
	_, err = encrypt.Open(other, nonce, tag, ciphertext, additional)
	assert.Equal(t, fault.ErrCryptoFailure, err, "wrong key")

	_, _, _, err = encrypt.Seal(key[:16], plaintext, additional)
	assert.Equal(t, fault.ErrCryptoFailure, err, "short key")
}

func TestFreshNonce(t *testing.T) {
	key, _ := encrypt.NewKey()
	n1, _, c1, err := encrypt.Seal(key, []byte("same"), nil)
	assert.Nil(t, err, "first seal")
	n2, _, c2, err := encrypt.Seal(key, []byte("same"), nil)
	assert.Nil(t, err, "second seal")
	assert.NotEqual(t, n1, n2, "nonce reuse")
	assert.NotEqual(t, c1, c2, "identical ciphertext")
}

func TestWrapUnwrap(t *testing.T) {
	recipient := newKey(t)
	outsider := newKey(t)

	key, _ := encrypt.NewKey()
	wrapped, err := encrypt.WrapKey(recipient.Account(), key)
	if nil != err {
		t.Fatalf("wrap error: %s", err)
	}
	assert.Equal(t, encrypt.WrappedKeySize, len(wrapped), "wrapped size")
	assert.False(t, bytes.Contains(wrapped, recipient.Account().PublicKeyBytes()), "public key leaked")

	unwrapped, err := encrypt.UnwrapKey(recipient, wrapped)
	assert.Nil(t, err, "unwrap")
	assert.Equal(t, key, unwrapped, "key")

	_, err = encrypt.UnwrapKey(outsider, wrapped)
	assert.Equal(t, fault.ErrCryptoFailure, err, "outsider unwrap")

	_, err = encrypt.UnwrapKey(recipient, wrapped[:40])
	assert.Equal(t, fault.ErrCryptoFailure, err, "truncated")

	again, err := encrypt.WrapKey(recipient.Account(), key)
	assert.Nil(t, err, "second wrap")
	assert.NotEqual(t, wrapped, again, "ephemeral key reuse")
}

func TestWrapInvalid(t *testing.T) {
	key, _ := encrypt.NewKey()

	_, err := encrypt.WrapKey(newKey(t).Account(), key[:8])
	assert.Equal(t, fault.ErrCryptoFailure, err, "short symmetric key")

	// a low order point cannot receive a key
	zero, err := account.AccountFromPublicKey(account.ED25519, make([]byte, 32))
	assert.Nil(t, err, "zero account")
	_, err = encrypt.WrapKey(zero, key)
	assert.NotNil(t, err, "low order recipient")
}
