// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package cmd

import (
	"context"
	"fmt"

	"github.com/ava-labs/avalanchego/ids"
	"github.com/ava-labs/avalanchego/utils/hashing"

	"github.com/ava-labs/hellocounter/codec"
	"github.com/ava-labs/hellocounter/consts"
	"github.com/ava-labs/hellocounter/greeter"
)

// accountID derives the account key used for the named account.
func accountID(name string) ids.ID {
	return ids.ID(hashing.ComputeHash256Array([]byte(consts.Name + "/" + name)))
}

// parseOwner resolves an owner argument given as cb58 or 0x prefixed hex.
// An empty owner selects the greeter program.
func parseOwner(owner string) (ids.ID, error) {
	if owner == "" {
		return consts.ProgramID, nil
	}
	return codec.LoadID(owner)
}

func (s *simulator) createAccount(ctx context.Context, name string, owner ids.ID, space uint64) (ids.ID, error) {
	if name == "" {
		return ids.Empty, ErrMissingAccountName
	}
	key := accountID(name)
	return key, s.rt.CreateAccount(ctx, key, owner, space)
}

func (s *simulator) invoke(ctx context.Context, name string, instruction greeter.Instruction) (uint32, error) {
	if name == "" {
		return 0, ErrMissingAccountName
	}
	if err := s.rt.Invoke(ctx, consts.ProgramID, []ids.ID{accountID(name)}, instruction.Bytes()); err != nil {
		return 0, err
	}
	return s.readCounter(ctx, name)
}

func (s *simulator) readCounter(ctx context.Context, name string) (uint32, error) {
	if name == "" {
		return 0, ErrMissingAccountName
	}
	account, err := s.rt.GetAccount(ctx, accountID(name))
	if err != nil {
		return 0, err
	}
	g, err := greeter.UnmarshalGreetingAccount(account.Data)
	if err != nil {
		return 0, fmt.Errorf("account %q: %w", name, err)
	}
	return g.Counter, nil
}
