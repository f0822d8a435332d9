// Copyright (C) 2023, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package codec

import "errors"

var (
	ErrInvalidSize = errors.New("invalid size")
	ErrInvalidID   = errors.New("invalid id")
)
