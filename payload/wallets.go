// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2019 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package payload

import (
	"github.com/bitmark-inc/txenvelope/account"
	"github.com/bitmark-inc/txenvelope/fault"
)

// AddPayloadWallet - add one recipient to a payload
//
// returns true if the wallet was newly added
func (m *Manager) AddPayloadWallet(id uint32, wallet string) (bool, error) {
	if _, err := parseWallet(wallet); nil != err {
		return false, err
	}
	added, err := m.AddPayloadWallets(id, []string{wallet})
	if nil != err {
		return false, err
	}
	return added[0], nil
}

// AddPayloadWallets - add recipients to a payload
//
// a plaintext payload becomes encrypted; an encrypted payload decoded
// from the wire needs AddPayloadWalletsWithKey since its key is not
// known
func (m *Manager) AddPayloadWallets(id uint32, wallets []string) ([]bool, error) {
	return m.addWallets(id, nil, wallets)
}

// AddPayloadWalletsWithKey - add recipients using the private key of
// an existing recipient to recover the payload key
func (m *Manager) AddPayloadWalletsWithKey(id uint32, privateKey string, wallets []string) ([]bool, error) {
	key, err := parsePrivateKey(privateKey)
	if nil != err {
		return nil, err
	}
	return m.addWallets(id, key, wallets)
}

func (m *Manager) addWallets(id uint32, privateKey *account.PrivateKey, wallets []string) ([]bool, error) {
	p, err := m.get(id)
	if nil != err {
		return nil, err
	}
	if 0 == len(wallets) {
		return nil, fault.ErrInvalidWallet
	}

	q := p.clone()
	if nil != privateKey && q.encrypted() {
		if err := q.unlock(privateKey); nil != err {
			return nil, err
		}
	}
	if q.sealed() {
		return nil, fault.ErrAccessDenied
	}

	accounts, accepted := parseWallets(wallets)

	var added []bool
	if q.encrypted() {
		added = q.addRecipients(accounts)
	} else {
		added, err = q.encryptFor(accounts)
		if nil != err {
			return nil, err
		}
	}
	for i := range accepted {
		accepted[i] = accepted[i] && added[i]
	}

	m.commit(q)
	m.debugf("payload: %d  recipients: %d", id, len(q.entries))
	return accepted, nil
}

// RemovePayloadWallet - remove one recipient from a payload
//
// returns true if the wallet was a recipient
func (m *Manager) RemovePayloadWallet(id uint32, wallet string) (bool, error) {
	if _, err := parseWallet(wallet); nil != err {
		return false, err
	}
	removed, err := m.RemovePayloadWallets(id, []string{wallet})
	if nil != err {
		return false, err
	}
	return removed[0], nil
}

// RemovePayloadWallets - remove recipients from a payload
//
// entries are matched by identity hash so this also works for
// payloads decoded from the wire; removing the last recipient turns
// the payload back into plaintext, which needs the payload key
func (m *Manager) RemovePayloadWallets(id uint32, wallets []string) ([]bool, error) {
	p, err := m.get(id)
	if nil != err {
		return nil, err
	}
	if 0 == len(wallets) {
		return nil, fault.ErrInvalidWallet
	}
	if !p.encrypted() {
		return nil, fault.ErrNotEncrypted
	}

	q := p.clone()
	accounts, _ := parseWallets(wallets)
	removed := make([]bool, len(wallets))
	for i, a := range accounts {
		if nil == a {
			continue
		}
		j := q.indexOf(a.Identity())
		if j < 0 {
			continue
		}
		q.entries = append(q.entries[:j], q.entries[j+1:]...)
		removed[i] = true
	}

	if !q.encrypted() {
		if p.sealed() {
			return nil, fault.ErrAccessDenied
		}
		q.release()
	}

	m.commit(q)
	m.debugf("payload: %d  recipients: %d", id, len(q.entries))
	return removed, nil
}

// ReleasePayload - decrypt a payload in place with a recipient's key
func (m *Manager) ReleasePayload(id uint32, privateKey string) error {
	p, err := m.get(id)
	if nil != err {
		return err
	}
	if !p.encrypted() {
		return fault.ErrNotEncrypted
	}
	key, err := parsePrivateKey(privateKey)
	if nil != err {
		return err
	}
	return m.release(p, key)
}

// ReleasePayloads - decrypt every payload the key can open
//
// returns the ids released, payloads that are plaintext or not
// addressed to the key are skipped
func (m *Manager) ReleasePayloads(privateKey string) ([]uint32, error) {
	if 0 == len(m.ids) {
		return nil, fault.ErrNoPayload
	}
	key, err := parsePrivateKey(privateKey)
	if nil != err {
		return nil, err
	}

	// open everything first so a failure leaves all payloads untouched
	opened := make([]*Payload, 0, len(m.ids))
	for _, id := range m.ids {
		q := m.payloads[id].clone()
		err := q.unlock(key)
		switch err {
		case nil:
			opened = append(opened, q)
		case fault.ErrNotEncrypted, fault.ErrAccessDenied:
		default:
			return nil, err
		}
	}

	released := make([]uint32, len(opened))
	for i, q := range opened {
		q.release()
		m.commit(q)
		released[i] = q.id
	}
	m.debugf("released payloads: %v", released)
	return released, nil
}

func (m *Manager) release(p *Payload, privateKey *account.PrivateKey) error {
	q := p.clone()
	if err := q.unlock(privateKey); nil != err {
		return err
	}
	q.release()
	m.commit(q)
	m.debugf("release payload: %d", q.id)
	return nil
}

// GetAccessiblePayloads - ids of payloads a wallet can read
//
// plaintext payloads are readable by everyone
func (m *Manager) GetAccessiblePayloads(wallet string) ([]uint32, error) {
	return m.filterAccess(wallet, true)
}

// GetInaccessiblePayloads - ids of encrypted payloads not addressed to
// a wallet
func (m *Manager) GetInaccessiblePayloads(wallet string) ([]uint32, error) {
	return m.filterAccess(wallet, false)
}

func (m *Manager) filterAccess(wallet string, accessible bool) ([]uint32, error) {
	if 0 == len(m.ids) {
		return nil, fault.ErrNoPayload
	}
	a, err := parseWallet(wallet)
	if nil != err {
		return nil, err
	}
	identity := a.Identity()
	result := make([]uint32, 0, len(m.ids))
	for _, id := range m.ids {
		p := m.payloads[id]
		access := !p.encrypted() || p.indexOf(identity) >= 0
		if access == accessible {
			result = append(result, id)
		}
	}
	return result, nil
}
