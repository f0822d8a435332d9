// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package program

import (
	"bytes"

	"github.com/ava-labs/avalanchego/ids"
)

// AccountInfo is the view of an account handed to a program for the
// duration of a single invocation. Data may be modified in place; the host
// decides whether the modification is persisted.
type AccountInfo struct {
	Key        ids.ID
	Owner      ids.ID
	Lamports   uint64
	Data       []byte
	IsSigner   bool
	IsWritable bool
	Executable bool
	RentEpoch  uint64
}

// IsOwnedBy returns true if [programID] owns the account.
func (a *AccountInfo) IsOwnedBy(programID ids.ID) bool {
	return a.Owner == programID
}

// Clone returns a deep copy of the account.
func (a *AccountInfo) Clone() *AccountInfo {
	c := *a
	c.Data = bytes.Clone(a.Data)
	return &c
}

// AccountIter hands out the accounts of an invocation in order.
type AccountIter struct {
	accounts []*AccountInfo
	next     int
}

func NewAccountIter(accounts []*AccountInfo) *AccountIter {
	return &AccountIter{accounts: accounts}
}

// Next returns the next account or [ErrNotEnoughAccountKeys] once all
// accounts have been consumed.
func (i *AccountIter) Next() (*AccountInfo, error) {
	if i.next >= len(i.accounts) {
		return nil, ErrNotEnoughAccountKeys
	}
	account := i.accounts[i.next]
	i.next++
	return account, nil
}

// Remaining returns the number of accounts not yet consumed.
func (i *AccountIter) Remaining() int {
	return len(i.accounts) - i.next
}
