// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2019 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package configuration

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/txenvelope/builder"
	"github.com/bitmark-inc/txenvelope/fault"
	"github.com/bitmark-inc/txenvelope/util"
)

// basic defaults, directories are relative to the configuration file
const (
	defaultLogDirectory = "log"
	defaultLogFile      = "envelope.log"
	defaultLogCount     = 10          //  number of log files retained
	defaultLogSize      = 1024 * 1024 // rotate when <logfile> exceeds this size
)

// Configuration - the contents of a configuration file
type Configuration struct {
	Logging  logger.Configuration  `gluamapper:"logging" json:"logging"`
	Envelope builder.Configuration `gluamapper:"envelope" json:"envelope"`
}

// GetConfiguration - read a configuration file, fill in defaults and
// make the log directory absolute, creating it if necessary
func GetConfiguration(configurationFileName string) (*Configuration, error) {

	configurationFileName, err := filepath.Abs(filepath.Clean(configurationFileName))
	if nil != err {
		return nil, err
	}
	if !util.IsRegularFile(configurationFileName) {
		return nil, fmt.Errorf("configuration: %q is not a file", configurationFileName)
	}
	directory := filepath.Dir(configurationFileName)

	options := &Configuration{
		Logging: logger.Configuration{
			Directory: defaultLogDirectory,
			File:      defaultLogFile,
			Size:      defaultLogSize,
			Count:     defaultLogCount,
			Levels: map[string]string{
				logger.DefaultTag: "critical",
			},
		},
		Envelope: builder.Configuration{
			Payload: builder.PayloadConfiguration{
				Compression: builder.CompressionDefault,
			},
		},
	}

	if err := ParseConfigurationFile(configurationFileName, options); err != nil {
		return nil, err
	}

	// the log file must be a plain name inside the log directory
	switch filepath.Dir(options.Logging.File) {
	case "", ".":
	default:
		return nil, fault.ErrInvalidConfiguration
	}

	options.Logging.Directory = util.EnsureAbsolute(directory, options.Logging.Directory)
	if err := os.MkdirAll(options.Logging.Directory, 0700); nil != err {
		return nil, err
	}

	return options, nil
}
