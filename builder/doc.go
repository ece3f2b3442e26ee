// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2019 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package builder - create and parse transactions of any supported
// version
//
// without Initialise every known version is enabled with default
// payload settings and nothing is logged
package builder
