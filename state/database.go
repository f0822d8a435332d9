// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package state

import (
	"context"

	"github.com/ava-labs/avalanchego/database"
)

var (
	_ Mutable = (*DatabaseMutable)(nil)
	_ Batcher = (*DatabaseMutable)(nil)
)

// DatabaseMutable exposes an avalanchego [database.Database] as [Mutable].
type DatabaseMutable struct {
	db database.Database
}

func NewDatabaseMutable(db database.Database) *DatabaseMutable {
	return &DatabaseMutable{db: db}
}

func (d *DatabaseMutable) GetValue(_ context.Context, key []byte) ([]byte, error) {
	return d.db.Get(key)
}

func (d *DatabaseMutable) Insert(_ context.Context, key []byte, value []byte) error {
	return d.db.Put(key, value)
}

func (d *DatabaseMutable) Remove(_ context.Context, key []byte) error {
	return d.db.Delete(key)
}

func (d *DatabaseMutable) NewBatch() Batch {
	return &databaseBatch{b: d.db.NewBatch()}
}

type databaseBatch struct {
	b database.Batch
}

func (b *databaseBatch) Insert(key []byte, value []byte) error {
	return b.b.Put(key, value)
}

func (b *databaseBatch) Remove(key []byte) error {
	return b.b.Delete(key)
}

func (b *databaseBatch) Write() error {
	return b.b.Write()
}
