// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2019 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package version3_test

import (
	"crypto/rand"
	"fmt"
	"os"
	"testing"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/txenvelope/account"
	"github.com/bitmark-inc/txenvelope/envelope/version3"
	"github.com/bitmark-inc/txenvelope/payload"
)

const (
	dir         = "testing"
	logCategory = "testing"
)

func setupTestLogger() {
	removeFiles()
	_ = os.Mkdir(dir, 0700)

	logging := logger.Configuration{
		Directory: dir,
		File:      fmt.Sprintf("%s.log", logCategory),
		Size:      1048576,
		Count:     10,
		Console:   false,
		Levels: map[string]string{
			logger.DefaultTag: "critical",
		},
	}

	// start logging
	_ = logger.Initialise(logging)
}

func teardownTestLogger() {
	logger.Finalise()
	removeFiles()
}

func removeFiles() {
	err := os.RemoveAll(dir)
	if nil != err {
		fmt.Println("remove dir with error: ", err)
	}
}

type testKey struct {
	privateKey *account.PrivateKey
	key        string
	wallet     string
}

func newTestKey(t *testing.T) testKey {
	privateKey, err := account.NewPrivateKey(account.ED25519, rand.Reader)
	if nil != err {
		t.Fatalf("new private key error: %s", err)
	}
	return testKey{
		privateKey: privateKey,
		key:        privateKey.String(),
		wallet:     privateKey.Account().String(),
	}
}

// a transaction with one plaintext payload signed by signer
func newSignedTransaction(t *testing.T, signer testKey) *version3.Transaction {
	tx := version3.New(payload.Settings{})
	_, _, err := tx.GetTxPayloadManager().AddPayload([]byte("first payload"), nil, nil)
	if nil != err {
		t.Fatalf("add payload error: %s", err)
	}
	if err := tx.SignTx(signer.key); nil != err {
		t.Fatalf("sign error: %s", err)
	}
	return tx
}

// the signing fields that must change together
type signingState struct {
	sender    string
	hash      string
	signature string
	err       error
}

func signing(tx *version3.Transaction) signingState {
	sender, err := tx.GetTxSender()
	hash, _ := tx.GetTxHash()
	signature, _ := tx.GetTxSignature()
	return signingState{
		sender:    sender,
		hash:      hash,
		signature: signature,
		err:       err,
	}
}
