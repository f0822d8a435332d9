// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package greeter

import (
	"fmt"
	"strings"

	"github.com/ava-labs/hellocounter/program"
)

// Instruction selects the operation applied to the counter. It is encoded
// as the first byte of the instruction data; any trailing bytes are ignored.
type Instruction uint8

const (
	Increment Instruction = iota
	Decrement
	Reset
)

var (
	instructions = map[byte]Instruction{
		0: Increment,
		1: Decrement,
		2: Reset,
	}

	instructionNames = map[Instruction]string{
		Increment: "increment",
		Decrement: "decrement",
		Reset:     "reset",
	}
)

// UnpackInstruction decodes the instruction selected by the first byte of
// [data].
func UnpackInstruction(data []byte) (Instruction, error) {
	if len(data) == 0 {
		return 0, fmt.Errorf("%w: empty instruction", program.ErrInvalidInstructionData)
	}
	instruction, ok := instructions[data[0]]
	if !ok {
		return 0, fmt.Errorf("%w: unknown instruction %d", program.ErrInvalidInstructionData, data[0])
	}
	return instruction, nil
}

// ParseInstruction returns the instruction named [name].
func ParseInstruction(name string) (Instruction, error) {
	for instruction, instructionName := range instructionNames {
		if strings.EqualFold(name, instructionName) {
			return instruction, nil
		}
	}
	return 0, fmt.Errorf("%w: unknown instruction %q", program.ErrInvalidInstructionData, name)
}

// Bytes returns the instruction data that selects [i].
func (i Instruction) Bytes() []byte {
	return []byte{byte(i)}
}

func (i Instruction) String() string {
	if name, ok := instructionNames[i]; ok {
		return name
	}
	return fmt.Sprintf("unknown(%d)", uint8(i))
}
