// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package eqsys

import "github.com/cpmech/gosl/chk"

// newConfigError builds the configuration-error kind used for unknown
// linear-solver names. It is returned from New, never printed.
func newConfigError(format string, args ...interface{}) error {
	return chk.Err(format, args...)
}
