// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package greeter

import (
	"fmt"

	"github.com/ava-labs/avalanchego/ids"
	"github.com/ava-labs/avalanchego/utils/logging"
	"go.uber.org/zap"

	"github.com/ava-labs/hellocounter/consts"
	"github.com/ava-labs/hellocounter/program"
)

// Arithmetic controls what happens when the counter would leave the
// uint32 range.
type Arithmetic string

const (
	// Wrapping lets the counter wrap around (decrementing 0 yields
	// MaxUint32).
	Wrapping Arithmetic = "wrapping"
	// Checked fails the invocation with [program.ErrArithmeticOverflow].
	Checked Arithmetic = "checked"
)

func (a Arithmetic) Valid() bool {
	return a == Wrapping || a == Checked
}

var _ program.Program = (*Program)(nil)

type Program struct {
	log        logging.Logger
	arithmetic Arithmetic
}

func New(log logging.Logger, arithmetic Arithmetic) *Program {
	return &Program{
		log:        log,
		arithmetic: arithmetic,
	}
}

// ProcessInstruction runs a single invocation with wrapping arithmetic.
func ProcessInstruction(
	log logging.Logger,
	programID ids.ID,
	accounts []*program.AccountInfo,
	data []byte,
) error {
	return New(log, Wrapping).ProcessInstruction(programID, accounts, data)
}

// ProcessInstruction decodes [data], applies it to the counter held by the
// first account and writes the result back into the account data. The
// account data is only written once every check has passed.
func (p *Program) ProcessInstruction(
	programID ids.ID,
	accounts []*program.AccountInfo,
	data []byte,
) error {
	p.log.Info("hello world started")

	if len(data) == 0 {
		p.log.Info("no instruction")
		return program.ErrInvalidInstructionData
	}

	instruction, err := UnpackInstruction(data)
	if err != nil {
		return err
	}

	account, err := program.NewAccountIter(accounts).Next()
	if err != nil {
		return err
	}

	if !account.IsOwnedBy(programID) {
		p.log.Info("invalid account owner",
			zap.Stringer("owner", account.Owner),
			zap.Stringer("programID", programID),
		)
		return program.ErrIncorrectProgramID
	}

	greeting, err := UnmarshalGreetingAccount(account.Data)
	if err != nil {
		return err
	}

	counter, err := p.apply(instruction, greeting.Counter)
	if err != nil {
		return err
	}
	greeting.Counter = counter

	b, err := greeting.Marshal()
	if err != nil {
		return err
	}
	copy(account.Data, b)

	p.log.Info("greeted",
		zap.Stringer("instruction", instruction),
		zap.Uint32("counter", greeting.Counter),
	)
	return nil
}

func (p *Program) apply(instruction Instruction, counter uint32) (uint32, error) {
	switch instruction {
	case Increment:
		if p.arithmetic == Checked && counter == consts.MaxUint32 {
			return 0, fmt.Errorf("%w: increment of %d", program.ErrArithmeticOverflow, counter)
		}
		return counter + 1, nil
	case Decrement:
		if p.arithmetic == Checked && counter == 0 {
			return 0, fmt.Errorf("%w: decrement of 0", program.ErrArithmeticOverflow)
		}
		return counter - 1, nil
	case Reset:
		return 0, nil
	default:
		return 0, fmt.Errorf("%w: %s", program.ErrInvalidInstructionData, instruction)
	}
}
