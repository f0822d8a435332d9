// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package runtime

import "errors"

var (
	ErrProgramNotFound             = errors.New("program not found")
	ErrDuplicateProgram            = errors.New("duplicate program")
	ErrAccountNotFound             = errors.New("account not found")
	ErrDuplicateAccount            = errors.New("duplicate account")
	ErrExternalAccountDataModified = errors.New("instruction modified data of an account it does not own")
	ErrAccountDataSizeChanged      = errors.New("instruction changed the size of account data")
)
