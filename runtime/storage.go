// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package runtime

import (
	"context"
	"errors"
	"fmt"

	"github.com/ava-labs/avalanchego/database"
	"github.com/ava-labs/avalanchego/ids"
	"github.com/near/borsh-go"

	"github.com/ava-labs/hellocounter/consts"
	"github.com/ava-labs/hellocounter/program"
	"github.com/ava-labs/hellocounter/state"
)

// State
// 0x0/ (accounts)
//   -> [key] => accountRecord
const accountPrefix byte = 0x0

// accountRecord is the persisted form of an account.
type accountRecord struct {
	Owner      ids.ID
	Lamports   uint64
	Data       []byte
	Executable bool
	RentEpoch  uint64
}

// [accountPrefix] + [key]
func AccountKey(key ids.ID) []byte {
	k := make([]byte, consts.ByteLen+consts.IDLen)
	k[0] = accountPrefix
	copy(k[1:], key[:])
	return k
}

// GetAccount returns the account stored at [key] or [ErrAccountNotFound].
func GetAccount(ctx context.Context, im state.Immutable, key ids.ID) (*program.AccountInfo, error) {
	v, err := im.GetValue(ctx, AccountKey(key))
	if errors.Is(err, database.ErrNotFound) {
		return nil, fmt.Errorf("%w: %s", ErrAccountNotFound, key)
	}
	if err != nil {
		return nil, err
	}
	record := &accountRecord{}
	if err := borsh.Deserialize(record, v); err != nil {
		return nil, err
	}
	return &program.AccountInfo{
		Key:        key,
		Owner:      record.Owner,
		Lamports:   record.Lamports,
		Data:       record.Data,
		Executable: record.Executable,
		RentEpoch:  record.RentEpoch,
	}, nil
}

// HasAccount returns true if an account is stored at [key].
func HasAccount(ctx context.Context, im state.Immutable, key ids.ID) (bool, error) {
	_, err := im.GetValue(ctx, AccountKey(key))
	if errors.Is(err, database.ErrNotFound) {
		return false, nil
	}
	return err == nil, err
}

// SetAccount stores [account] at its key.
func SetAccount(ctx context.Context, mu state.Mutable, account *program.AccountInfo) error {
	v, err := borsh.Serialize(accountRecord{
		Owner:      account.Owner,
		Lamports:   account.Lamports,
		Data:       account.Data,
		Executable: account.Executable,
		RentEpoch:  account.RentEpoch,
	})
	if err != nil {
		return err
	}
	return mu.Insert(ctx, AccountKey(account.Key), v)
}
