// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package program

import "github.com/ava-labs/avalanchego/ids"

// Program is the entrypoint a host calls for every invocation.
//
// An invocation either returns nil and the host persists the modified
// accounts, or returns an error and the host discards every modification.
type Program interface {
	ProcessInstruction(programID ids.ID, accounts []*AccountInfo, data []byte) error
}

// ProcessFunc adapts a function to the [Program] interface.
type ProcessFunc func(programID ids.ID, accounts []*AccountInfo, data []byte) error

func (f ProcessFunc) ProcessInstruction(programID ids.ID, accounts []*AccountInfo, data []byte) error {
	return f(programID, accounts, data)
}
