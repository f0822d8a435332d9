// Copyright (C) 2023, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package state

import "context"

type Immutable interface {
	GetValue(ctx context.Context, key []byte) (value []byte, err error)
}

type Mutable interface {
	Immutable

	Insert(ctx context.Context, key []byte, value []byte) error
	Remove(ctx context.Context, key []byte) error
}

// Batcher is implemented by stores that can apply several writes atomically.
type Batcher interface {
	NewBatch() Batch
}

type Batch interface {
	Insert(key []byte, value []byte) error
	Remove(key []byte) error
	Write() error
}
