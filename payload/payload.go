// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2019 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package payload

import (
	"bytes"

	"github.com/golang/snappy"

	"github.com/bitmark-inc/txenvelope/account"
	"github.com/bitmark-inc/txenvelope/digest"
	"github.com/bitmark-inc/txenvelope/encrypt"
	"github.com/bitmark-inc/txenvelope/fault"
)

// Compression - how the canonical content is derived from the data
type Compression uint8

// compression types
const (
	DefaultCompression Compression = iota // snappy block format
	NoCompression                         // data is stored as given
)

// record flag bits
const (
	flagCompressed = 0x0001
	flagEncrypted  = 0x0002
	flagMask       = flagCompressed | flagEncrypted
)

// Options - per payload settings for AddPayload
type Options struct {
	Compression Compression
}

// Info - summary of a single payload
type Info struct {
	ID             uint32
	Hash           string
	Size           int
	Compressed     bool
	Encrypted      bool
	Recipients     []string
	RecipientCount int
}

// WrappedKey - the symmetric key sealed for one recipient
//
// Wallet is empty when the recipient is only known by its identity
// hash, as is the case for payloads decoded from the wire
type WrappedKey struct {
	Identity digest.Digest
	Key      []byte
	Wallet   string
}

// Container - a detached copy of a payload that can be imported into
// another transaction
type Container struct {
	ID          uint32
	Compressed  bool
	Hash        digest.Digest
	Content     []byte
	Nonce       []byte
	Tag         []byte
	Ciphertext  []byte
	WrappedKeys []WrappedKey
}

// one wrapped key entry
type entry struct {
	identity digest.Digest
	wrapped  []byte
	wallet   *account.Account
}

// Payload - one unit of transaction content
//
// content holds the canonical (compressed, pre-encryption) bytes and
// is nil for an encrypted payload whose symmetric key is not known
type Payload struct {
	id         uint32
	compressed bool
	hash       digest.Digest
	content    []byte
	entries    []entry
	key        []byte
	nonce      []byte
	tag        []byte
	ciphertext []byte
}

// create a plaintext payload
func newPayload(id uint32, data []byte, compression Compression) (*Payload, error) {
	p := &Payload{
		id: id,
	}
	switch compression {
	case NoCompression:
		p.content = append([]byte{}, data...)
	case DefaultCompression:
		p.compressed = true
		p.content = snappy.Encode(nil, data)
	default:
		return nil, fault.ErrInvalidCompression
	}
	p.hash = digest.NewDigest(p.content)
	return p, nil
}

func (p *Payload) encrypted() bool {
	return 0 != len(p.entries)
}

// encrypted and the symmetric key is not available
func (p *Payload) sealed() bool {
	return p.encrypted() && nil == p.key
}

func (p *Payload) flags() uint16 {
	flags := uint16(0)
	if p.compressed {
		flags |= flagCompressed
	}
	if p.encrypted() {
		flags |= flagEncrypted
	}
	return flags
}

func (p *Payload) size() int {
	if nil != p.content {
		return len(p.content)
	}
	return len(p.ciphertext)
}

func (p *Payload) indexOf(identity digest.Digest) int {
	for i, e := range p.entries {
		if e.identity == identity {
			return i
		}
	}
	return -1
}

// deep copy so a failed operation can be discarded
func (p *Payload) clone() *Payload {
	q := &Payload{
		id:         p.id,
		compressed: p.compressed,
		hash:       p.hash,
		content:    copyBytes(p.content),
		key:        copyBytes(p.key),
		nonce:      copyBytes(p.nonce),
		tag:        copyBytes(p.tag),
		ciphertext: copyBytes(p.ciphertext),
	}
	if nil != p.entries {
		q.entries = make([]entry, len(p.entries))
		for i, e := range p.entries {
			q.entries[i] = entry{
				identity: e.identity,
				wrapped:  copyBytes(e.wrapped),
				wallet:   e.wallet,
			}
		}
	}
	return q
}

// seal the content under the current key with a fresh nonce
func (p *Payload) encryptContent() error {
	nonce, tag, ciphertext, err := encrypt.Seal(p.key, p.content, p.hash[:])
	if nil != err {
		return err
	}
	p.nonce = nonce
	p.tag = tag
	p.ciphertext = ciphertext
	return nil
}

// wrap the current key for each wallet not already present
//
// returns per wallet flags, true if newly added
func (p *Payload) addRecipients(wallets []*account.Account) []bool {
	added := make([]bool, len(wallets))
	for i, w := range wallets {
		if nil == w {
			continue
		}
		identity := w.Identity()
		if p.indexOf(identity) >= 0 {
			continue
		}
		wrapped, err := encrypt.WrapKey(w, p.key)
		if nil != err {
			continue
		}
		p.entries = append(p.entries, entry{
			identity: identity,
			wrapped:  wrapped,
			wallet:   w,
		})
		added[i] = true
	}
	return added
}

// encrypt a plaintext payload for a set of wallets
//
// if no wallet could receive a key the payload stays plaintext
func (p *Payload) encryptFor(wallets []*account.Account) ([]bool, error) {
	key, err := encrypt.NewKey()
	if nil != err {
		return nil, err
	}
	p.key = key
	added := p.addRecipients(wallets)
	if !p.encrypted() {
		p.key = nil
		return added, nil
	}
	if err := p.encryptContent(); nil != err {
		return nil, err
	}
	return added, nil
}

// recover key and content using a recipient's private key
func (p *Payload) unlock(privateKey *account.PrivateKey) error {
	if !p.encrypted() {
		return fault.ErrNotEncrypted
	}
	if !p.sealed() {
		// key already known, but the caller must still be a recipient
		if p.indexOf(privateKey.Account().Identity()) < 0 {
			return fault.ErrAccessDenied
		}
		return nil
	}

	i := p.indexOf(privateKey.Account().Identity())
	if i < 0 {
		return fault.ErrAccessDenied
	}
	key, err := encrypt.UnwrapKey(privateKey, p.entries[i].wrapped)
	if nil != err {
		return err
	}
	content, err := encrypt.Open(key, p.nonce, p.tag, p.ciphertext, p.hash[:])
	if nil != err {
		return err
	}
	if digest.NewDigest(content) != p.hash {
		return fault.ErrCryptoFailure
	}
	p.key = key
	p.content = content
	p.entries[i].wallet = privateKey.Account()
	return nil
}

// drop all encryption, the content becomes plaintext
func (p *Payload) release() {
	p.entries = nil
	p.key = nil
	p.nonce = nil
	p.tag = nil
	p.ciphertext = nil
}

// the original data
func (p *Payload) data() ([]byte, error) {
	if nil == p.content {
		return nil, fault.ErrAccessDenied
	}
	if !p.compressed {
		return copyBytes(p.content), nil
	}
	data, err := snappy.Decode(nil, p.content)
	if nil != err {
		return nil, fault.ErrMalformed
	}
	return data, nil
}

// check the content against the hash where the content is known,
// otherwise only the structure of the encrypted record
func (p *Payload) verify() bool {
	if nil != p.content {
		return digest.NewDigest(p.content) == p.hash
	}
	return p.encrypted() &&
		encrypt.NonceSize == len(p.nonce) &&
		encrypt.TagSize == len(p.tag) &&
		0 != len(p.ciphertext)
}

func (p *Payload) info() *Info {
	recipients := make([]string, 0, len(p.entries))
	for _, e := range p.entries {
		if nil != e.wallet {
			recipients = append(recipients, e.wallet.String())
		}
	}
	return &Info{
		ID:             p.id,
		Hash:           p.hash.String(),
		Size:           p.size(),
		Compressed:     p.compressed,
		Encrypted:      p.encrypted(),
		Recipients:     recipients,
		RecipientCount: len(p.entries),
	}
}

func (p *Payload) container() *Container {
	c := &Container{
		ID:         p.id,
		Compressed: p.compressed,
		Hash:       p.hash,
		Nonce:      copyBytes(p.nonce),
		Tag:        copyBytes(p.tag),
		Ciphertext: copyBytes(p.ciphertext),
	}
	if !p.encrypted() {
		c.Content = copyBytes(p.content)
		return c
	}
	c.WrappedKeys = make([]WrappedKey, len(p.entries))
	for i, e := range p.entries {
		c.WrappedKeys[i] = WrappedKey{
			Identity: e.identity,
			Key:      copyBytes(e.wrapped),
		}
		if nil != e.wallet {
			c.WrappedKeys[i].Wallet = e.wallet.String()
		}
	}
	return c
}

// rebuild a payload from a container, validating it like a decoded
// record
func fromContainer(id uint32, c *Container, maximumSize int) (*Payload, error) {
	p := &Payload{
		id:         id,
		compressed: c.Compressed,
		hash:       c.Hash,
	}

	if 0 == len(c.WrappedKeys) {
		if 0 == len(c.Content) || len(c.Content) > storedLimit(c.Compressed, maximumSize) {
			return nil, fault.ErrMalformed
		}
		p.content = copyBytes(c.Content)
		if err := p.checkContent(maximumSize); nil != err {
			return nil, err
		}
		return p, nil
	}

	p.nonce = copyBytes(c.Nonce)
	p.tag = copyBytes(c.Tag)
	p.ciphertext = copyBytes(c.Ciphertext)
	for _, w := range c.WrappedKeys {
		if p.indexOf(w.Identity) >= 0 || encrypt.WrappedKeySize != len(w.Key) {
			return nil, fault.ErrMalformed
		}
		e := entry{
			identity: w.Identity,
			wrapped:  copyBytes(w.Key),
		}
		if "" != w.Wallet {
			a, err := account.AccountFromBase58(w.Wallet)
			if nil != err || a.Identity() != w.Identity {
				return nil, fault.ErrMalformed
			}
			e.wallet = a
		}
		p.entries = append(p.entries, e)
	}
	if !p.verify() || len(p.ciphertext) > storedLimit(c.Compressed, maximumSize) {
		return nil, fault.ErrMalformed
	}
	return p, nil
}

// plaintext content must match its hash and decompress when flagged
func (p *Payload) checkContent(maximumSize int) error {
	if digest.NewDigest(p.content) != p.hash {
		return fault.ErrMalformed
	}
	if p.compressed {
		n, err := snappy.DecodedLen(p.content)
		if nil != err || n > maximumSize {
			return fault.ErrMalformed
		}
		if _, err := snappy.Decode(nil, p.content); nil != err {
			return fault.ErrMalformed
		}
	}
	return nil
}

func (p *Payload) equal(q *Payload) bool {
	return bytes.Equal(p.pack(nil), q.pack(nil))
}

func copyBytes(b []byte) []byte {
	if nil == b {
		return nil
	}
	return append([]byte{}, b...)
}
