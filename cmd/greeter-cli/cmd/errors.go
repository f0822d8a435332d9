// Copyright (C) 2023, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package cmd

import "errors"

var (
	ErrInvalidPlan           = errors.New("invalid plan")
	ErrInvalidStep           = errors.New("invalid step")
	ErrInvalidEndpoint       = errors.New("invalid endpoint")
	ErrInvalidConfigFormat   = errors.New("invalid config format")
	ErrInvalidOperator       = errors.New("invalid operator")
	ErrMissingAccountName    = errors.New("missing account name")
	ErrResultAssertionFailed = errors.New("result assertion failed")
)
