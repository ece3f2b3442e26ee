// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2019 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package payload

import (
	"bytes"
	"math"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/txenvelope/account"
	"github.com/bitmark-inc/txenvelope/fault"
	"github.com/bitmark-inc/txenvelope/util"
)

// DefaultMaximumSize - largest accepted content when no limit is configured
const DefaultMaximumSize = 16 * 1024 * 1024

// Settings - manager wide configuration
type Settings struct {
	Compression Compression // used when AddPayload is given no options
	MaximumSize int         // limit on data and on any decoded content
	Log         *logger.L   // optional
}

// Manager - the ordered collection of payloads in one transaction
//
// ids start at 1 and are never reused, removal leaves no gap in the
// order of the remaining payloads
type Manager struct {
	settings Settings
	ids      []uint32
	payloads map[uint32]*Payload
	nextID   uint64
	onChange func()
}

// NewManager - create an empty manager
func NewManager(settings Settings) *Manager {
	if settings.MaximumSize <= 0 {
		settings.MaximumSize = DefaultMaximumSize
	}
	return &Manager{
		settings: settings,
		payloads: make(map[uint32]*Payload),
		nextID:   1,
	}
}

// SetChangeHandler - register a function to be called after every
// genuine change to the payload content
func (m *Manager) SetChangeHandler(f func()) {
	m.onChange = f
}

func (m *Manager) changed() {
	if nil != m.onChange {
		m.onChange()
	}
}

func (m *Manager) debugf(format string, arguments ...interface{}) {
	if nil != m.settings.Log {
		m.settings.Log.Debugf(format, arguments...)
	}
}

// replace a payload, calling the change handler only if the encoded
// record differs
func (m *Manager) commit(p *Payload) {
	old := m.payloads[p.id]
	m.payloads[p.id] = p
	if !old.equal(p) {
		m.changed()
	}
}

func (m *Manager) insert(p *Payload) {
	m.ids = append(m.ids, p.id)
	m.payloads[p.id] = p
	m.nextID = uint64(p.id) + 1
	m.changed()
}

func (m *Manager) allocateID() (uint32, error) {
	if m.nextID > math.MaxUint32 {
		return 0, fault.ErrTooManyPayloads
	}
	return uint32(m.nextID), nil
}

func (m *Manager) get(id uint32) (*Payload, error) {
	p, ok := m.payloads[id]
	if !ok {
		return nil, fault.ErrPayloadNotFound
	}
	return p, nil
}

// GetPayloadsCount - number of payloads
func (m *Manager) GetPayloadsCount() int {
	return len(m.ids)
}

// GetPayloadIDs - ids in transaction order
func (m *Manager) GetPayloadIDs() []uint32 {
	return append([]uint32{}, m.ids...)
}

// GetAllPayloadsInfo - summary of every payload in order
func (m *Manager) GetAllPayloadsInfo() ([]*Info, error) {
	if 0 == len(m.ids) {
		return nil, fault.ErrNoPayload
	}
	info := make([]*Info, len(m.ids))
	for i, id := range m.ids {
		info[i] = m.payloads[id].info()
	}
	return info, nil
}

// AddPayload - add data as a new payload, encrypted for the given
// wallets if any
//
// options may be nil to use the configured compression; the returned
// flags report which wallets were accepted
func (m *Manager) AddPayload(data []byte, wallets []string, options *Options) (uint32, []bool, error) {
	if 0 == len(data) {
		return 0, nil, fault.ErrNoPayload
	}
	if len(data) > m.settings.MaximumSize {
		return 0, nil, fault.ErrPayloadTooLarge
	}
	id, err := m.allocateID()
	if nil != err {
		return 0, nil, err
	}

	compression := m.settings.Compression
	if nil != options {
		compression = options.Compression
	}
	p, err := newPayload(id, data, compression)
	if nil != err {
		return 0, nil, err
	}

	accounts, accepted := parseWallets(wallets)
	if len(accounts) > 0 {
		added, err := p.encryptFor(accounts)
		if nil != err {
			return 0, nil, err
		}
		for i, a := range accounts {
			if nil != a && !added[i] {
				accepted[i] = false
			}
		}
	}

	m.insert(p)
	m.debugf("add payload: %d  size: %d  encrypted: %t", id, p.size(), p.encrypted())
	return id, accepted, nil
}

// ImportPayload - add a copy of a container as a new payload
//
// the container's own id is ignored
func (m *Manager) ImportPayload(c *Container) (uint32, error) {
	if nil == c {
		return 0, fault.ErrNoPayload
	}
	id, err := m.allocateID()
	if nil != err {
		return 0, err
	}
	p, err := fromContainer(id, c, m.settings.MaximumSize)
	if nil != err {
		return 0, err
	}
	m.insert(p)
	m.debugf("import payload: %d", id)
	return id, nil
}

// ImportPayloads - import several containers, reporting which were
// accepted
func (m *Manager) ImportPayloads(containers []*Container) ([]bool, error) {
	if 0 == len(containers) {
		return nil, fault.ErrNoPayload
	}
	imported := make([]bool, len(containers))
	for i, c := range containers {
		_, err := m.ImportPayload(c)
		if fault.ErrTooManyPayloads == err {
			return nil, err
		}
		imported[i] = nil == err
	}
	return imported, nil
}

// RemovePayload - delete a payload
func (m *Manager) RemovePayload(id uint32) error {
	if _, err := m.get(id); nil != err {
		return err
	}
	delete(m.payloads, id)
	for i, v := range m.ids {
		if v == id {
			m.ids = append(m.ids[:i], m.ids[i+1:]...)
			break
		}
	}
	m.changed()
	m.debugf("remove payload: %d", id)
	return nil
}

// ReplacePayloadData - overwrite the data of a payload
//
// compression and recipients are kept; an encrypted payload keeps its
// key and is sealed again under a fresh nonce
func (m *Manager) ReplacePayloadData(id uint32, data []byte) error {
	p, err := m.get(id)
	if nil != err {
		return err
	}
	if 0 == len(data) {
		return fault.ErrNoPayload
	}
	if len(data) > m.settings.MaximumSize {
		return fault.ErrPayloadTooLarge
	}
	if p.sealed() {
		return fault.ErrAccessDenied
	}

	compression := NoCompression
	if p.compressed {
		compression = DefaultCompression
	}
	q, err := newPayload(id, data, compression)
	if nil != err {
		return err
	}
	if p.encrypted() {
		r := p.clone()
		q.entries = r.entries
		q.key = r.key
		if err := q.encryptContent(); nil != err {
			return err
		}
	}

	m.payloads[id] = q
	m.changed()
	m.debugf("replace payload: %d  size: %d", id, q.size())
	return nil
}

// GetPayload - detached copy of a payload
func (m *Manager) GetPayload(id uint32) (*Container, error) {
	p, err := m.get(id)
	if nil != err {
		return nil, err
	}
	return p.container(), nil
}

// GetPayloadInfo - summary of a payload
func (m *Manager) GetPayloadInfo(id uint32) (*Info, error) {
	p, err := m.get(id)
	if nil != err {
		return nil, err
	}
	return p.info(), nil
}

// GetPayloadData - the original data of a payload
//
// an encrypted payload needs the private key of one of its
// recipients; a plaintext payload ignores the key
func (m *Manager) GetPayloadData(id uint32, privateKey string) ([]byte, error) {
	p, err := m.get(id)
	if nil != err {
		return nil, err
	}
	if !p.encrypted() {
		return p.data()
	}

	key, err := parsePrivateKey(privateKey)
	if nil != err {
		return nil, err
	}
	q := p.clone()
	if err := q.unlock(key); nil != err {
		return nil, err
	}
	return q.data()
}

// VerifyPayloads - check each payload's content against its hash
//
// encrypted payloads whose key is unknown can only be checked for
// structure
func (m *Manager) VerifyPayloads() ([]bool, error) {
	if 0 == len(m.ids) {
		return nil, fault.ErrNoPayload
	}
	result := make([]bool, len(m.ids))
	for i, id := range m.ids {
		result[i] = m.payloads[id].verify()
	}
	return result, nil
}

// Pack - append [Varint64 count] followed by every record
func (m *Manager) Pack(buffer []byte) []byte {
	buffer = util.AppendVarint64(buffer, uint64(len(m.ids)))
	for _, id := range m.ids {
		buffer = m.payloads[id].pack(buffer)
	}
	return buffer
}

// Unpack - decode a payload list as written by Pack
//
// returns the manager and the number of bytes consumed
func Unpack(buffer []byte, settings Settings) (m *Manager, n int, err error) {
	defer func() {
		if r := recover(); nil != r {
			m = nil
			n = 0
			err = fault.ErrMalformed
		}
	}()

	m = NewManager(settings)

	count, n := util.ClippedVarint64(buffer, 1, len(buffer))
	if 0 == n {
		return nil, 0, fault.ErrMalformed
	}

	for i := 0; i < count; i += 1 {
		p, length, err := unpackRecord(buffer[n:], m.settings.MaximumSize)
		if nil != err {
			return nil, 0, err
		}
		if uint64(p.id) < m.nextID {
			return nil, 0, fault.ErrMalformed
		}
		n += length
		m.ids = append(m.ids, p.id)
		m.payloads[p.id] = p
		m.nextID = uint64(p.id) + 1
	}
	return m, n, nil
}

// Equal - true if both managers encode to the same bytes
func (m *Manager) Equal(other *Manager) bool {
	return bytes.Equal(m.Pack(nil), other.Pack(nil))
}

// decode wallets, rejecting invalid entries and duplicates
func parseWallets(wallets []string) ([]*account.Account, []bool) {
	accounts := make([]*account.Account, len(wallets))
	accepted := make([]bool, len(wallets))
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
		accounts[i] = a
		accepted[i] = true
	}
	return accounts, accepted
}

func parseWallet(wallet string) (*account.Account, error) {
	if "" == wallet {
		return nil, fault.ErrInvalidWallet
	}
	a, err := account.AccountFromBase58(wallet)
	if nil != err || account.ED25519 != a.Network() {
		return nil, fault.ErrInvalidWallet
	}
	return a, nil
}

func parsePrivateKey(privateKey string) (*account.PrivateKey, error) {
	if "" == privateKey {
		return nil, fault.ErrInvalidKey
	}
	key, err := account.PrivateKeyFromBase58(privateKey)
	if nil != err || account.ED25519 != key.Network() {
		return nil, fault.ErrInvalidKey
	}
	return key, nil
}
