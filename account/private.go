// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2019 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package account

import (
	"crypto/sha512"
	"io"

	"golang.org/x/crypto/ed25519"

	"github.com/bitmark-inc/txenvelope/fault"
	"github.com/bitmark-inc/txenvelope/util"
)

// PrivateKey - signing key material
//
// only the 32 byte seed is encoded, the expanded key is recomputed
type PrivateKey struct {
	network    byte
	privateKey ed25519.PrivateKey
}

// PrivateKeyFromBase58 - decode private key text
func PrivateKeyFromBase58(privateKeyBase58Encoded string) (*PrivateKey, error) {
	network, seed, err := decode(privateKeyBase58Encoded, true)
	if nil != err {
		return nil, err
	}
	return PrivateKeyFromSeed(network, seed)
}

// PrivateKeyFromSeed - create a private key from a 32 byte seed
func PrivateKeyFromSeed(network byte, seed []byte) (*PrivateKey, error) {
	if _, ok := publicKeySizes[uint64(network)]; !ok {
		return nil, fault.ErrInvalidNetwork
	}
	if ed25519.SeedSize != len(seed) {
		return nil, fault.ErrInvalidKeyLength
	}
	return &PrivateKey{
		network:    network,
		privateKey: ed25519.NewKeyFromSeed(seed),
	}, nil
}

// NewPrivateKey - generate a random private key
func NewPrivateKey(network byte, random io.Reader) (*PrivateKey, error) {
	seed := make([]byte, ed25519.SeedSize)
	if _, err := io.ReadFull(random, seed); nil != err {
		return nil, err
	}
	return PrivateKeyFromSeed(network, seed)
}

// Account - the address corresponding to this key
func (privateKey *PrivateKey) Account() *Account {
	return &Account{
		network:   privateKey.network,
		publicKey: append([]byte{}, privateKey.privateKey.Public().(ed25519.PublicKey)...),
	}
}

// Network - the network code
func (privateKey *PrivateKey) Network() byte {
	return privateKey.network
}

// Seed - the 32 byte seed
func (privateKey *PrivateKey) Seed() []byte {
	return privateKey.privateKey.Seed()
}

// Sign - sign a message
func (privateKey *PrivateKey) Sign(message []byte) Signature {
	return ed25519.Sign(privateKey.privateKey, message)
}

// Curve25519 - the X25519 scalar that pairs with the Montgomery form
// of the public key
func (privateKey *PrivateKey) Curve25519() [32]byte {
	h := sha512.Sum512(privateKey.Seed())
	var scalar [32]byte
	copy(scalar[:], h[:32])
	scalar[0] &= 248
	scalar[31] &= 127
	scalar[31] |= 64
	return scalar
}

// Bytes - binary form [Varint64 network|flag][seed]
func (privateKey *PrivateKey) Bytes() []byte {
	buffer := util.ToVarint64(uint64(privateKey.network) | privateKeyFlag)
	return append(buffer, privateKey.Seed()...)
}

// String - base58 encoding of the key with checksum
func (privateKey *PrivateKey) String() string {
	return encode(privateKey.Bytes())
}
