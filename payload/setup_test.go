// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2019 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package payload_test

import (
	"crypto/rand"
	"fmt"
	"os"
	"testing"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/txenvelope/account"
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

// a manager with a change counter attached
func newManager(settings payload.Settings) (*payload.Manager, *int) {
	m := payload.NewManager(settings)
	changes := 0
	m.SetChangeHandler(func() {
		changes += 1
	})
	return m, &changes
}
