// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2019 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package account

import (
	"bytes"
	"encoding/hex"

	"github.com/mr-tron/base58"
	"golang.org/x/crypto/ed25519"
	"golang.org/x/crypto/sha3"

	"github.com/bitmark-inc/txenvelope/digest"
	"github.com/bitmark-inc/txenvelope/fault"
	"github.com/bitmark-inc/txenvelope/util"
)

// supported key networks
const (
	ED25519 = 0x12
)

// miscellaneous constants
const (
	checksumLength = 4

	// set in the network code of encoded private keys
	privateKeyFlag = 0x80
)

// public key sizes by network
var publicKeySizes = map[uint64]int{
	ED25519: ed25519.PublicKeySize,
}

// Account - a wallet address: the network and public key of a key pair
type Account struct {
	network   byte
	publicKey []byte
}

// Signature - the type for a signature
type Signature []byte

// String - hex text of a signature
func (signature Signature) String() string {
	return hex.EncodeToString(signature)
}

// AccountFromBase58 - decode a wallet address from its Base58 text
func AccountFromBase58(accountBase58Encoded string) (*Account, error) {
	network, key, err := decode(accountBase58Encoded, false)
	if nil != err {
		if fault.ErrCannotDecodePrivateKey == err {
			return nil, fault.ErrCannotDecodeAccount
		}
		return nil, err
	}
	return AccountFromPublicKey(network, key)
}

// AccountFromBytes - decode the binary form [Varint64 network][public key]
func AccountFromBytes(accountBytes []byte) (*Account, error) {
	network, n := util.FromVarint64(accountBytes)
	if 0 == n {
		return nil, fault.ErrCannotDecodeAccount
	}
	if 0 != network&privateKeyFlag {
		return nil, fault.ErrNotPublicKey
	}
	return AccountFromPublicKey(byte(network), accountBytes[n:])
}

// AccountFromPublicKey - create an account from a raw public key
func AccountFromPublicKey(network byte, publicKey []byte) (*Account, error) {
	size, ok := publicKeySizes[uint64(network)]
	if !ok {
		return nil, fault.ErrInvalidNetwork
	}
	if size != len(publicKey) {
		return nil, fault.ErrInvalidKeyLength
	}
	return &Account{
		network:   network,
		publicKey: append([]byte{}, publicKey...),
	}, nil
}

// Network - the network code
func (account *Account) Network() byte {
	return account.network
}

// PublicKeyBytes - fetch the public key as byte slice
func (account *Account) PublicKeyBytes() []byte {
	return append([]byte{}, account.publicKey...)
}

// Bytes - binary form of the address
func (account *Account) Bytes() []byte {
	buffer := util.ToVarint64(uint64(account.network))
	return append(buffer, account.publicKey...)
}

// Identity - the recipient identity hash used in wrapped key entries
func (account *Account) Identity() digest.Digest {
	return digest.NewDigest(account.Bytes())
}

// Equal - true if both refer to the same key
func (account *Account) Equal(other *Account) bool {
	return nil != other && account.network == other.network && bytes.Equal(account.publicKey, other.publicKey)
}

// CheckSignature - check the signature of a message
func (account *Account) CheckSignature(message []byte, signature Signature) error {
	if ed25519.SignatureSize != len(signature) {
		return fault.ErrBadSignature
	}
	if !ed25519.Verify(account.publicKey, message, signature) {
		return fault.ErrBadSignature
	}
	return nil
}

// String - base58 encoding of the address with checksum
func (account *Account) String() string {
	return encode(account.Bytes())
}

// MarshalText - convert an account to its Base58 form
func (account Account) MarshalText() ([]byte, error) {
	return []byte(account.String()), nil
}

// UnmarshalText - convert Base58 text to an account
func (account *Account) UnmarshalText(s []byte) error {
	a, err := AccountFromBase58(string(s))
	if nil != err {
		return err
	}
	*account = *a
	return nil
}

// append checksum and convert to base58
func encode(buffer []byte) string {
	checksum := sha3.Sum256(buffer)
	buffer = append(buffer, checksum[:checksumLength]...)
	return base58.Encode(buffer)
}

// decode Base58 text, verify the checksum and split the network code
// from the key bytes
func decode(encoded string, private bool) (byte, []byte, error) {
	errDecode := fault.ErrCannotDecodePrivateKey
	decoded, err := base58.Decode(encoded)
	if nil != err || len(decoded) <= checksumLength {
		return 0, nil, errDecode
	}

	checksumStart := len(decoded) - checksumLength
	checksum := sha3.Sum256(decoded[:checksumStart])
	if !bytes.Equal(checksum[:checksumLength], decoded[checksumStart:]) {
		return 0, nil, fault.ErrChecksumMismatch
	}

	network, n := util.FromVarint64(decoded[:checksumStart])
	if 0 == n {
		return 0, nil, errDecode
	}

	isPrivate := 0 != network&privateKeyFlag
	if private && !isPrivate {
		return 0, nil, fault.ErrNotPrivateKey
	}
	if !private && isPrivate {
		return 0, nil, fault.ErrNotPublicKey
	}
	network &^= privateKeyFlag
	if network > 0xff {
		return 0, nil, fault.ErrInvalidNetwork
	}
	return byte(network), decoded[n:checksumStart], nil
}
