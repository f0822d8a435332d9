// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package runtime

import (
	"context"
	"errors"
	"testing"

	"github.com/ava-labs/avalanchego/database/memdb"
	"github.com/ava-labs/avalanchego/ids"
	"github.com/ava-labs/avalanchego/utils/logging"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/ava-labs/hellocounter/consts"
	"github.com/ava-labs/hellocounter/greeter"
	"github.com/ava-labs/hellocounter/pebble"
	"github.com/ava-labs/hellocounter/program"
	"github.com/ava-labs/hellocounter/state"
	"github.com/ava-labs/hellocounter/trace"
)

func newTestRuntime(t *testing.T, db state.Mutable) *Runtime {
	tracer, err := trace.New(&trace.Config{})
	require.NoError(t, err)
	r, err := New(logging.NoLog{}, tracer, db, prometheus.NewRegistry())
	require.NoError(t, err)
	return r
}

func newGreeterRuntime(t *testing.T) (*Runtime, ids.ID) {
	r := newTestRuntime(t, state.NewDatabaseMutable(memdb.New()))
	programID := ids.GenerateTestID()
	require.NoError(t, r.Register(programID, greeter.New(logging.NoLog{}, greeter.Wrapping)))
	return r, programID
}

func counterAt(t *testing.T, r *Runtime, key ids.ID) uint32 {
	account, err := r.GetAccount(context.Background(), key)
	require.NoError(t, err)
	g, err := greeter.UnmarshalGreetingAccount(account.Data)
	require.NoError(t, err)
	return g.Counter
}

func TestInvokeGreeter(t *testing.T) {
	require := require.New(t)
	ctx := context.Background()

	r, programID := newGreeterRuntime(t)
	key := ids.GenerateTestID()
	require.NoError(r.CreateAccount(ctx, key, programID, consts.GreetingAccountSize))
	require.Zero(counterAt(t, r, key))

	steps := []struct {
		instruction greeter.Instruction
		expected    uint32
	}{
		{greeter.Increment, 1},
		{greeter.Increment, 2},
		{greeter.Decrement, 1},
		{greeter.Increment, 2},
		{greeter.Reset, 0},
	}
	for _, step := range steps {
		require.NoError(r.Invoke(ctx, programID, []ids.ID{key}, step.instruction.Bytes()))
		require.Equal(step.expected, counterAt(t, r, key))
	}
	require.Equal(float64(len(steps)), testutil.ToFloat64(r.metrics.invocations))
	require.Zero(testutil.ToFloat64(r.metrics.failures))
}

func TestInvokeForeignOwner(t *testing.T) {
	require := require.New(t)
	ctx := context.Background()

	r, programID := newGreeterRuntime(t)
	key := ids.GenerateTestID()
	require.NoError(r.CreateAccount(ctx, key, ids.GenerateTestID(), consts.GreetingAccountSize))
	before, err := r.GetAccount(ctx, key)
	require.NoError(err)

	err = r.Invoke(ctx, programID, []ids.ID{key}, greeter.Increment.Bytes())
	require.ErrorIs(err, program.ErrIncorrectProgramID)

	after, err := r.GetAccount(ctx, key)
	require.NoError(err)
	require.Equal(before, after)
	require.Equal(float64(1), testutil.ToFloat64(r.metrics.failures))
}

func TestInvokeErrors(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name        string
		programID   func(ids.ID) ids.ID
		keys        func(ids.ID) []ids.ID
		data        []byte
		expectedErr error
	}{
		{
			name:        "unknown program",
			programID:   func(ids.ID) ids.ID { return ids.GenerateTestID() },
			keys:        func(key ids.ID) []ids.ID { return []ids.ID{key} },
			data:        greeter.Increment.Bytes(),
			expectedErr: ErrProgramNotFound,
		},
		{
			name:        "unknown account",
			keys:        func(ids.ID) []ids.ID { return []ids.ID{ids.GenerateTestID()} },
			data:        greeter.Increment.Bytes(),
			expectedErr: ErrAccountNotFound,
		},
		{
			name:        "no accounts",
			keys:        func(ids.ID) []ids.ID { return nil },
			data:        greeter.Increment.Bytes(),
			expectedErr: program.ErrNotEnoughAccountKeys,
		},
		{
			name:        "empty instruction",
			keys:        func(key ids.ID) []ids.ID { return []ids.ID{key} },
			data:        nil,
			expectedErr: program.ErrInvalidInstructionData,
		},
		{
			name:        "unknown instruction",
			keys:        func(key ids.ID) []ids.ID { return []ids.ID{key} },
			data:        []byte{3},
			expectedErr: program.ErrInvalidInstructionData,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require := require.New(t)

			r, programID := newGreeterRuntime(t)
			key := ids.GenerateTestID()
			require.NoError(r.CreateAccount(ctx, key, programID, consts.GreetingAccountSize))

			target := programID
			if tt.programID != nil {
				target = tt.programID(programID)
			}
			err := r.Invoke(ctx, target, tt.keys(key), tt.data)
			require.ErrorIs(err, tt.expectedErr)
			require.Zero(counterAt(t, r, key))
		})
	}
}

func TestInvokeUnallocatedAccount(t *testing.T) {
	require := require.New(t)
	ctx := context.Background()

	r, programID := newGreeterRuntime(t)
	key := ids.GenerateTestID()
	require.NoError(r.CreateAccount(ctx, key, programID, 0))

	err := r.Invoke(ctx, programID, []ids.ID{key}, greeter.Increment.Bytes())
	require.ErrorIs(err, program.ErrInvalidAccountData)
}

func TestInvokeDiscardsWritesOnFailure(t *testing.T) {
	require := require.New(t)
	ctx := context.Background()

	r := newTestRuntime(t, state.NewDatabaseMutable(memdb.New()))
	programID := ids.GenerateTestID()
	errFail := errors.New("fail after write")
	require.NoError(r.Register(programID, program.ProcessFunc(
		func(_ ids.ID, accounts []*program.AccountInfo, _ []byte) error {
			accounts[0].Data[0] = 0xff
			return errFail
		},
	)))

	key := ids.GenerateTestID()
	require.NoError(r.CreateAccount(ctx, key, programID, 4))
	require.ErrorIs(r.Invoke(ctx, programID, []ids.ID{key}, []byte{0}), errFail)

	account, err := r.GetAccount(ctx, key)
	require.NoError(err)
	require.Equal([]byte{0, 0, 0, 0}, account.Data)
}

func TestInvokeRejectsExternalModification(t *testing.T) {
	require := require.New(t)
	ctx := context.Background()

	r := newTestRuntime(t, state.NewDatabaseMutable(memdb.New()))
	programID := ids.GenerateTestID()
	require.NoError(r.Register(programID, program.ProcessFunc(
		func(_ ids.ID, accounts []*program.AccountInfo, _ []byte) error {
			for _, account := range accounts {
				account.Data[0]++
			}
			return nil
		},
	)))

	owned := ids.GenerateTestID()
	foreign := ids.GenerateTestID()
	require.NoError(r.CreateAccount(ctx, owned, programID, 1))
	require.NoError(r.CreateAccount(ctx, foreign, ids.GenerateTestID(), 1))

	err := r.Invoke(ctx, programID, []ids.ID{owned, foreign}, nil)
	require.ErrorIs(err, ErrExternalAccountDataModified)

	for _, key := range []ids.ID{owned, foreign} {
		account, err := r.GetAccount(ctx, key)
		require.NoError(err)
		require.Equal([]byte{0}, account.Data)
	}
}

func TestInvokeRejectsResize(t *testing.T) {
	require := require.New(t)
	ctx := context.Background()

	r := newTestRuntime(t, state.NewDatabaseMutable(memdb.New()))
	programID := ids.GenerateTestID()
	require.NoError(r.Register(programID, program.ProcessFunc(
		func(_ ids.ID, accounts []*program.AccountInfo, _ []byte) error {
			accounts[0].Data = append(accounts[0].Data, 1)
			return nil
		},
	)))

	key := ids.GenerateTestID()
	require.NoError(r.CreateAccount(ctx, key, programID, 4))
	require.ErrorIs(r.Invoke(ctx, programID, []ids.ID{key}, nil), ErrAccountDataSizeChanged)
}

func TestInvokeDuplicateKeysShareAccount(t *testing.T) {
	require := require.New(t)
	ctx := context.Background()

	r := newTestRuntime(t, state.NewDatabaseMutable(memdb.New()))
	programID := ids.GenerateTestID()
	require.NoError(r.Register(programID, program.ProcessFunc(
		func(_ ids.ID, accounts []*program.AccountInfo, _ []byte) error {
			require.Same(accounts[0], accounts[1])
			accounts[1].Data[0] = 7
			return nil
		},
	)))

	key := ids.GenerateTestID()
	require.NoError(r.CreateAccount(ctx, key, programID, 1))
	require.NoError(r.Invoke(ctx, programID, []ids.ID{key, key}, nil))

	account, err := r.GetAccount(ctx, key)
	require.NoError(err)
	require.Equal([]byte{7}, account.Data)
}

func TestRegisterAndCreateDuplicates(t *testing.T) {
	require := require.New(t)
	ctx := context.Background()

	r, programID := newGreeterRuntime(t)
	require.ErrorIs(r.Register(programID, greeter.New(logging.NoLog{}, greeter.Checked)), ErrDuplicateProgram)

	key := ids.GenerateTestID()
	require.NoError(r.CreateAccount(ctx, key, programID, consts.GreetingAccountSize))
	require.ErrorIs(r.CreateAccount(ctx, key, programID, consts.GreetingAccountSize), ErrDuplicateAccount)
	require.Equal(float64(1), testutil.ToFloat64(r.metrics.accountsCreated))
}

func TestInvokeCommitFailure(t *testing.T) {
	require := require.New(t)
	ctx := context.Background()
	ctrl := gomock.NewController(t)

	programID := ids.GenerateTestID()
	key := ids.GenerateTestID()

	// encode the stored account with a real store
	scratch := state.NewDatabaseMutable(memdb.New())
	require.NoError(SetAccount(ctx, scratch, &program.AccountInfo{
		Key:   key,
		Owner: programID,
		Data:  make([]byte, consts.GreetingAccountSize),
	}))
	record, err := scratch.GetValue(ctx, AccountKey(key))
	require.NoError(err)

	errWrite := errors.New("disk full")
	db := state.NewMockMutable(ctrl)
	db.EXPECT().GetValue(gomock.Any(), AccountKey(key)).Return(record, nil)
	db.EXPECT().Insert(gomock.Any(), AccountKey(key), gomock.Any()).Return(errWrite)

	r := newTestRuntime(t, db)
	require.NoError(r.Register(programID, greeter.New(logging.NoLog{}, greeter.Wrapping)))
	require.ErrorIs(r.Invoke(ctx, programID, []ids.ID{key}, greeter.Increment.Bytes()), errWrite)
}

func TestInvokePersistsAcrossRestart(t *testing.T) {
	require := require.New(t)
	ctx := context.Background()
	dir := t.TempDir()

	programID := ids.GenerateTestID()
	key := ids.GenerateTestID()

	db, _, err := pebble.New(dir, pebble.NewDefaultConfig())
	require.NoError(err)
	r := newTestRuntime(t, db)
	require.NoError(r.Register(programID, greeter.New(logging.NoLog{}, greeter.Wrapping)))
	require.NoError(r.CreateAccount(ctx, key, programID, consts.GreetingAccountSize))
	for i := 0; i < 4; i++ {
		require.NoError(r.Invoke(ctx, programID, []ids.ID{key}, greeter.Increment.Bytes()))
	}
	require.NoError(r.Invoke(ctx, programID, []ids.ID{key}, greeter.Decrement.Bytes()))
	require.NoError(db.Close())

	db, _, err = pebble.New(dir, pebble.NewDefaultConfig())
	require.NoError(err)
	defer db.Close()
	r = newTestRuntime(t, db)
	require.Equal(uint32(3), counterAt(t, r, key))
}
