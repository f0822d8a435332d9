// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package config

import "errors"

var ErrInvalidArithmetic = errors.New("invalid arithmetic mode")
