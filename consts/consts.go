// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package consts

import (
	"github.com/ava-labs/avalanchego/ids"
	"github.com/ava-labs/avalanchego/version"
)

const (
	Name = "greeter"

	IDLen     = ids.IDLen
	ByteLen   = 1
	BoolLen   = 1
	Uint32Len = 4
	Uint64Len = 8
	MaxUint32 = ^uint32(0)

	// GreetingAccountSize is the size of a serialized counter account.
	GreetingAccountSize = Uint32Len
)

// ProgramID is the identity the greeter program is deployed under by the
// simulator.
var ProgramID ids.ID

func init() {
	b := make([]byte, ids.IDLen)
	copy(b, []byte(Name))
	programID, err := ids.ToID(b)
	if err != nil {
		panic(err)
	}
	ProgramID = programID
}

var Version = &version.Semantic{
	Major: 0,
	Minor: 0,
	Patch: 1,
}
