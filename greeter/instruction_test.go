// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package greeter

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ava-labs/hellocounter/program"
)

func TestUnpackInstruction(t *testing.T) {
	tests := []struct {
		name        string
		data        []byte
		expected    Instruction
		expectedErr error
	}{
		{
			name:     "increment",
			data:     []byte{0},
			expected: Increment,
		},
		{
			name:     "decrement",
			data:     []byte{1},
			expected: Decrement,
		},
		{
			name:     "reset",
			data:     []byte{2},
			expected: Reset,
		},
		{
			name:     "trailing bytes ignored",
			data:     []byte{1, 0xff, 0xff},
			expected: Decrement,
		},
		{
			name:        "unknown discriminant",
			data:        []byte{3},
			expectedErr: program.ErrInvalidInstructionData,
		},
		{
			name:        "max discriminant",
			data:        []byte{0xff},
			expectedErr: program.ErrInvalidInstructionData,
		},
		{
			name:        "empty",
			data:        []byte{},
			expectedErr: program.ErrInvalidInstructionData,
		},
		{
			name:        "nil",
			expectedErr: program.ErrInvalidInstructionData,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require := require.New(t)
			instruction, err := UnpackInstruction(tt.data)
			require.ErrorIs(err, tt.expectedErr)
			if tt.expectedErr == nil {
				require.Equal(tt.expected, instruction)
			}
		})
	}
}

func TestInstructionBytes(t *testing.T) {
	require := require.New(t)

	for _, instruction := range []Instruction{Increment, Decrement, Reset} {
		unpacked, err := UnpackInstruction(instruction.Bytes())
		require.NoError(err)
		require.Equal(instruction, unpacked)
	}
}

func TestParseInstruction(t *testing.T) {
	require := require.New(t)

	instruction, err := ParseInstruction("Increment")
	require.NoError(err)
	require.Equal(Increment, instruction)

	instruction, err = ParseInstruction("reset")
	require.NoError(err)
	require.Equal(Reset, instruction)

	_, err = ParseInstruction("multiply")
	require.ErrorIs(err, program.ErrInvalidInstructionData)

	require.Equal("decrement", Decrement.String())
	require.Equal("unknown(7)", Instruction(7).String())
}
