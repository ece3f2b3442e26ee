// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2019 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package version3

import (
	"bytes"
	"encoding/json"
	"time"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/txenvelope/account"
	"github.com/bitmark-inc/txenvelope/digest"
	"github.com/bitmark-inc/txenvelope/envelope"
	"github.com/bitmark-inc/txenvelope/fault"
	"github.com/bitmark-inc/txenvelope/payload"
)

// Version - the transaction version implemented here
const Version = 3

// Transaction - a version 3 transaction envelope
//
// the signing fields are all present or all clear, and are cleared by
// any change to the signed content
type Transaction struct {
	log *logger.L

	prevHash   digest.Digest
	recipients []*account.Account
	metadata   string
	payloads   *payload.Manager

	signed    bool
	timestamp uint64
	sender    *account.Account
	signature account.Signature
	hash      digest.Digest
}

// New - create an empty unsigned transaction
func New(settings payload.Settings) *Transaction {
	return attach(&Transaction{
		log:        settings.Log,
		recipients: []*account.Account{},
	}, payload.NewManager(settings))
}

// connect the payload manager so its changes clear the signature
func attach(tx *Transaction, m *payload.Manager) *Transaction {
	tx.payloads = m
	m.SetChangeHandler(func() {
		tx.invalidate("payloads")
	})
	return tx
}

func (tx *Transaction) debugf(format string, arguments ...interface{}) {
	if nil != tx.log {
		tx.log.Debugf(format, arguments...)
	}
}

func (tx *Transaction) warnf(format string, arguments ...interface{}) {
	if nil != tx.log {
		tx.log.Warnf(format, arguments...)
	}
}

// clear the signing fields
func (tx *Transaction) invalidate(reason string) {
	if tx.signed {
		tx.debugf("signature cleared by change to: %s", reason)
	}
	tx.signed = false
	tx.timestamp = 0
	tx.sender = nil
	tx.signature = nil
	tx.hash = digest.Digest{}
}

// GetTxVersion - always 3
func (tx *Transaction) GetTxVersion() uint32 {
	return Version
}

// GetTxSender - address of the signer
func (tx *Transaction) GetTxSender() (string, error) {
	if !tx.signed {
		return "", fault.ErrNotSigned
	}
	return tx.sender.String(), nil
}

// GetTxRecipients - recipient addresses in order
func (tx *Transaction) GetTxRecipients() ([]string, error) {
	recipients := make([]string, len(tx.recipients))
	for i, r := range tx.recipients {
		recipients[i] = r.String()
	}
	return recipients, nil
}

// GetTxTimeStamp - time of signing
func (tx *Transaction) GetTxTimeStamp() (time.Time, error) {
	if !tx.signed {
		return time.Time{}, fault.ErrNotSigned
	}
	return time.Unix(int64(tx.timestamp), 0).UTC(), nil
}

// GetPrevTxHash - hex of the previous transaction hash
func (tx *Transaction) GetPrevTxHash() (string, error) {
	return tx.prevHash.String(), nil
}

// GetTxMetaData - the metadata JSON text
func (tx *Transaction) GetTxMetaData() (string, error) {
	if "" == tx.metadata {
		return "", fault.ErrBadMetadata
	}
	return tx.metadata, nil
}

// GetTxHash - hex of the signed content hash
func (tx *Transaction) GetTxHash() (string, error) {
	if !tx.signed {
		return "", fault.ErrNotSigned
	}
	return tx.hash.String(), nil
}

// GetTxSignature - hex of the signature
func (tx *Transaction) GetTxSignature() (string, error) {
	if !tx.signed {
		return "", fault.ErrNotSigned
	}
	return tx.signature.String(), nil
}

// GetTxPayloadManager - the payloads of this transaction
//
// changes made through the manager clear the signature
func (tx *Transaction) GetTxPayloadManager() *payload.Manager {
	return tx.payloads
}

// SetTxRecipients - replace the recipient list
//
// invalid and repeated addresses are dropped and reported false; the
// signature survives if the resulting set equals the current one
func (tx *Transaction) SetTxRecipients(wallets []string) ([]bool, error) {
	if nil == wallets {
		return nil, fault.ErrInvalidWallet
	}

	accepted := make([]bool, len(wallets))
	recipients := make([]*account.Account, 0, len(wallets))
	seen := make(map[string]struct{})
	for i, w := range wallets {
		a, err := parseWallet(w)
		if nil != err {
			continue
		}
		k := string(a.Bytes())
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		recipients = append(recipients, a)
		accepted[i] = true
	}

	if sameSet(tx.recipients, recipients) {
		return accepted, nil
	}
	tx.recipients = recipients
	tx.invalidate("recipients")
	return accepted, nil
}

// SetTxMetaData - set the metadata to a JSON object
func (tx *Transaction) SetTxMetaData(metadata string) error {
	if !isJSONObject([]byte(metadata)) {
		return fault.ErrBadMetadata
	}
	if metadata == tx.metadata {
		return nil
	}
	tx.metadata = metadata
	tx.invalidate("metadata")
	return nil
}

// SetPrevTxHash - set the previous transaction hash from hex
//
// an empty string resets it to the null hash
func (tx *Transaction) SetPrevTxHash(hash string) error {
	var prevHash digest.Digest
	if "" != hash {
		d, err := digest.FromHex(hash)
		if nil != err {
			return fault.ErrInvalidPrevTxHash
		}
		prevHash = d
	}
	if prevHash == tx.prevHash {
		return nil
	}
	tx.prevHash = prevHash
	tx.invalidate("previous hash")
	return nil
}

// SignTx - sign with an encoded private key
//
// does nothing if the current signature is still valid
func (tx *Transaction) SignTx(privateKey string) error {
	if 0 == tx.payloads.GetPayloadsCount() {
		return fault.ErrNoPayload
	}
	key, err := parsePrivateKey(privateKey)
	if nil != err {
		return err
	}
	if tx.signed {
		return nil
	}

	tx.timestamp = uint64(time.Now().Unix())
	tx.sender = key.Account()
	tx.hash = digest.NewDigest(tx.pack(false))
	tx.signature = key.Sign(tx.hash[:])
	tx.signed = true

	tx.debugf("signed: %s  sender: %s", tx.hash, tx.sender)
	return nil
}

// VerifyTx - check the stored hash and signature against the content
func (tx *Transaction) VerifyTx() error {
	if !tx.signed {
		return fault.ErrNotSigned
	}
	if digest.NewDigest(tx.pack(false)) != tx.hash {
		return fault.ErrNotSigned
	}
	if nil != tx.sender.CheckSignature(tx.hash[:], tx.signature) {
		return fault.ErrNotSigned
	}
	return nil
}

// GetTxTransport - the serialized transaction
func (tx *Transaction) GetTxTransport() (*envelope.Transport, error) {
	if 0 == tx.payloads.GetPayloadsCount() {
		return nil, fault.ErrNoPayload
	}
	transport := &envelope.Transport{
		Data: tx.pack(true),
	}
	if tx.signed {
		transport.ID = tx.hash.String()
	}
	return transport, nil
}

// ToJSON - not available for this version
func (tx *Transaction) ToJSON() (string, error) {
	return "", fault.ErrNotSupported
}

// order independent comparison of two duplicate free lists
func sameSet(a []*account.Account, b []*account.Account) bool {
	if len(a) != len(b) {
		return false
	}
	set := make(map[string]struct{}, len(a))
	for _, r := range a {
		set[string(r.Bytes())] = struct{}{}
	}
	for _, r := range b {
		if _, ok := set[string(r.Bytes())]; !ok {
			return false
		}
	}
	return true
}

// metadata must be a single JSON object
func isJSONObject(data []byte) bool {
	trimmed := bytes.TrimSpace(data)
	if 0 == len(trimmed) || '{' != trimmed[0] {
		return false
	}
	return json.Valid(trimmed)
}

func parseWallet(wallet string) (*account.Account, error) {
	a, err := account.AccountFromBase58(wallet)
	if nil != err || account.ED25519 != a.Network() {
		return nil, fault.ErrInvalidWallet
	}
	return a, nil
}

func parsePrivateKey(privateKey string) (*account.PrivateKey, error) {
	key, err := account.PrivateKeyFromBase58(privateKey)
	if nil != err || account.ED25519 != key.Network() {
		return nil, fault.ErrInvalidKey
	}
	return key, nil
}
