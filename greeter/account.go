// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package greeter

import (
	"fmt"

	"github.com/near/borsh-go"

	"github.com/ava-labs/hellocounter/consts"
	"github.com/ava-labs/hellocounter/program"
)

// GreetingAccount is the state kept in a counter account.
type GreetingAccount struct {
	// number of greetings
	Counter uint32
}

// UnmarshalGreetingAccount parses account data. The data must be exactly
// [consts.GreetingAccountSize] bytes.
func UnmarshalGreetingAccount(b []byte) (*GreetingAccount, error) {
	if len(b) != consts.GreetingAccountSize {
		return nil, fmt.Errorf(
			"%w: expected %d bytes but found %d",
			program.ErrInvalidAccountData,
			consts.GreetingAccountSize,
			len(b),
		)
	}
	g := &GreetingAccount{}
	if err := borsh.Deserialize(g, b); err != nil {
		return nil, fmt.Errorf("%w: %w", program.ErrInvalidAccountData, err)
	}
	return g, nil
}

// Marshal returns the little-endian encoding of the counter.
func (g *GreetingAccount) Marshal() ([]byte, error) {
	return borsh.Serialize(*g)
}
