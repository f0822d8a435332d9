// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package program

import "errors"

var (
	ErrInvalidInstructionData = errors.New("invalid instruction data")
	ErrNotEnoughAccountKeys   = errors.New("not enough account keys")
	ErrIncorrectProgramID     = errors.New("incorrect program id")
	ErrInvalidAccountData     = errors.New("invalid account data")
	ErrArithmeticOverflow     = errors.New("arithmetic overflow")
)
