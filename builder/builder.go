// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2019 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package builder

import (
	"sort"
	"sync"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/txenvelope/envelope"
	"github.com/bitmark-inc/txenvelope/envelope/version3"
	"github.com/bitmark-inc/txenvelope/fault"
	"github.com/bitmark-inc/txenvelope/payload"
)

// every version that can be enabled
var knownFormats = map[uint32]envelope.Format{
	version3.Version: version3.Format{},
}

// globals
type globalDataType struct {
	sync.RWMutex
	log         *logger.L
	initialised bool
	settings    payload.Settings
	formats     map[uint32]envelope.Format
}

// global data
var globalData globalDataType

// Initialise - apply a configuration and open the log channel
func Initialise(configuration *Configuration) error {
	globalData.Lock()
	defer globalData.Unlock()

	if globalData.initialised {
		return fault.ErrAlreadyInitialised
	}

	log := logger.New("envelope")
	if nil == log {
		return fault.ErrInvalidLoggerChannel
	}

	settings, formats, err := configure(configuration)
	if nil != err {
		log.Errorf("configuration error: %s", err)
		return err
	}
	settings.Log = log

	globalData.log = log
	globalData.settings = settings
	globalData.formats = formats
	globalData.initialised = true

	log.Infof("versions: %v  maximum size: %d", sortedVersions(formats), settings.MaximumSize)
	return nil
}

// Finalise - return to the default settings
func Finalise() error {
	globalData.Lock()
	defer globalData.Unlock()

	if !globalData.initialised {
		return fault.ErrNotInitialised
	}

	globalData.log.Info("finished")
	globalData.log.Flush()

	globalData.log = nil
	globalData.settings = payload.Settings{}
	globalData.formats = nil
	globalData.initialised = false
	return nil
}

// New - create an empty transaction of the given version
func New(version uint32) (envelope.Envelope, error) {
	settings, formats := current()
	f, ok := formats[version]
	if !ok {
		return nil, fault.ErrUnsupportedVersion
	}
	return f.New(settings), nil
}

// Build - parse a transport blob using the version in its header
func Build(data []byte) (envelope.Envelope, error) {
	version, _, err := envelope.ReadHeader(data)
	if nil != err {
		return nil, err
	}

	settings, formats := current()
	f, ok := formats[version]
	if !ok {
		if nil != settings.Log {
			settings.Log.Debugf("unsupported version: %d", version)
		}
		return nil, fault.ErrUnsupportedVersion
	}
	return f.Parse(data, settings)
}

// Versions - the enabled versions in ascending order
func Versions() []uint32 {
	_, formats := current()
	return sortedVersions(formats)
}

// the configured settings, or the defaults if not initialised
func current() (payload.Settings, map[uint32]envelope.Format) {
	globalData.RLock()
	defer globalData.RUnlock()

	if globalData.initialised {
		return globalData.settings, globalData.formats
	}
	settings, formats, _ := configure(nil)
	return settings, formats
}

func allFormats() map[uint32]envelope.Format {
	formats := make(map[uint32]envelope.Format, len(knownFormats))
	for v, f := range knownFormats {
		formats[v] = f
	}
	return formats
}

func sortedVersions(formats map[uint32]envelope.Format) []uint32 {
	versions := make([]uint32, 0, len(formats))
	for v := range formats {
		versions = append(versions, v)
	}
	sort.Slice(versions, func(i, j int) bool {
		return versions[i] < versions[j]
	})
	return versions
}
