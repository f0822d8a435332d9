// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package codec

import (
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/ava-labs/avalanchego/ids"
)

const hexPrefix = "0x"

// ToHex encodes [b] as 0x prefixed hex.
func ToHex(b []byte) string {
	return hexPrefix + hex.EncodeToString(b)
}

// LoadHex decodes optionally 0x prefixed hex. Pass -1 as [expectedSize] to
// accept any length.
func LoadHex(s string, expectedSize int) ([]byte, error) {
	b, err := hex.DecodeString(strings.TrimPrefix(s, hexPrefix))
	if err != nil {
		return nil, err
	}
	if expectedSize != -1 && len(b) != expectedSize {
		return nil, fmt.Errorf("%w: expected %d bytes, got %d", ErrInvalidSize, expectedSize, len(b))
	}
	return b, nil
}

// LoadID parses an account or program id given either as 0x prefixed hex
// or in the cb58 form printed by [ids.ID.String].
func LoadID(s string) (ids.ID, error) {
	if !strings.HasPrefix(s, hexPrefix) {
		id, err := ids.FromString(s)
		if err != nil {
			return ids.Empty, fmt.Errorf("%w: %w", ErrInvalidID, err)
		}
		return id, nil
	}
	b, err := LoadHex(s, ids.IDLen)
	if err != nil {
		return ids.Empty, fmt.Errorf("%w: %w", ErrInvalidID, err)
	}
	return ids.ToID(b)
}

// Bytes is raw data that is printed as hex.
type Bytes []byte

func (b Bytes) String() string {
	return ToHex(b)
}

func (b Bytes) MarshalText() ([]byte, error) {
	return []byte(b.String()), nil
}

func (b *Bytes) UnmarshalText(text []byte) error {
	decoded, err := LoadHex(string(text), -1)
	if err != nil {
		return err
	}
	*b = decoded
	return nil
}
