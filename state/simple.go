// Copyright (C) 2023, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package state

import (
	"context"

	"github.com/ava-labs/avalanchego/database"
	"github.com/ava-labs/avalanchego/utils/maybe"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

var _ Mutable = (*SimpleMutable)(nil)

// SimpleMutable buffers writes on top of [Mutable] until [Commit] is called.
// Dropping a SimpleMutable discards every buffered write.
type SimpleMutable struct {
	v Mutable

	changes map[string]maybe.Maybe[[]byte]
}

func NewSimpleMutable(v Mutable) *SimpleMutable {
	return &SimpleMutable{v, make(map[string]maybe.Maybe[[]byte])}
}

func (s *SimpleMutable) GetValue(ctx context.Context, k []byte) ([]byte, error) {
	if v, ok := s.changes[string(k)]; ok {
		if v.IsNothing() {
			return nil, database.ErrNotFound
		}
		return v.Value(), nil
	}
	return s.v.GetValue(ctx, k)
}

func (s *SimpleMutable) Insert(_ context.Context, k []byte, v []byte) error {
	s.changes[string(k)] = maybe.Some(v)
	return nil
}

func (s *SimpleMutable) Remove(_ context.Context, k []byte) error {
	s.changes[string(k)] = maybe.Nothing[[]byte]()
	return nil
}

// Len returns the number of buffered writes.
func (s *SimpleMutable) Len() int {
	return len(s.changes)
}

// Commit writes the buffered changes to the underlying store. If the store
// implements [Batcher] the changes are applied atomically.
func (s *SimpleMutable) Commit(ctx context.Context) error {
	keys := maps.Keys(s.changes)
	slices.Sort(keys)

	if b, ok := s.v.(Batcher); ok {
		batch := b.NewBatch()
		for _, k := range keys {
			v := s.changes[k]
			var err error
			if v.IsNothing() {
				err = batch.Remove([]byte(k))
			} else {
				err = batch.Insert([]byte(k), v.Value())
			}
			if err != nil {
				return err
			}
		}
		if err := batch.Write(); err != nil {
			return err
		}
	} else {
		for _, k := range keys {
			v := s.changes[k]
			var err error
			if v.IsNothing() {
				err = s.v.Remove(ctx, []byte(k))
			} else {
				err = s.v.Insert(ctx, []byte(k), v.Value())
			}
			if err != nil {
				return err
			}
		}
	}
	s.changes = make(map[string]maybe.Maybe[[]byte])
	return nil
}
