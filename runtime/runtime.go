// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package runtime

import (
	"bytes"
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/ava-labs/avalanchego/ids"
	"github.com/ava-labs/avalanchego/trace"
	"github.com/ava-labs/avalanchego/utils/logging"
	"github.com/prometheus/client_golang/prometheus"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"

	oteltrace "go.opentelemetry.io/otel/trace"

	"github.com/ava-labs/hellocounter/program"
	"github.com/ava-labs/hellocounter/state"
)

// Runtime hosts programs and the accounts they operate on.
//
// Invocations are serialized. Each one runs against a write buffer that is
// committed only if the program succeeds, so a failed invocation never
// leaves a partial write behind.
type Runtime struct {
	log     logging.Logger
	tracer  trace.Tracer
	db      state.Mutable
	metrics *metrics

	lock     sync.Mutex
	programs map[ids.ID]program.Program
}

func New(
	log logging.Logger,
	tracer trace.Tracer,
	db state.Mutable,
	registerer prometheus.Registerer,
) (*Runtime, error) {
	metrics, err := newMetrics(registerer)
	if err != nil {
		return nil, err
	}
	return &Runtime{
		log:      log,
		tracer:   tracer,
		db:       db,
		metrics:  metrics,
		programs: make(map[ids.ID]program.Program),
	}, nil
}

// Register deploys [p] under [programID].
func (r *Runtime) Register(programID ids.ID, p program.Program) error {
	r.lock.Lock()
	defer r.lock.Unlock()

	if _, ok := r.programs[programID]; ok {
		return fmt.Errorf("%w: %s", ErrDuplicateProgram, programID)
	}
	r.programs[programID] = p
	r.log.Debug("registered program",
		zap.Stringer("programID", programID),
	)
	return nil
}

// CreateAccount allocates a zero-filled account of [space] bytes owned by
// [owner].
func (r *Runtime) CreateAccount(ctx context.Context, key ids.ID, owner ids.ID, space uint64) error {
	ctx, span := r.tracer.Start(ctx, "Runtime.CreateAccount")
	defer span.End()

	r.lock.Lock()
	defer r.lock.Unlock()

	exists, err := HasAccount(ctx, r.db, key)
	if err != nil {
		return err
	}
	if exists {
		return fmt.Errorf("%w: %s", ErrDuplicateAccount, key)
	}
	account := &program.AccountInfo{
		Key:   key,
		Owner: owner,
		Data:  make([]byte, space),
	}
	if err := SetAccount(ctx, r.db, account); err != nil {
		return err
	}
	r.metrics.accountsCreated.Inc()
	r.log.Debug("created account",
		zap.Stringer("key", key),
		zap.Stringer("owner", owner),
		zap.Uint64("space", space),
	)
	return nil
}

// GetAccount returns the persisted state of the account at [key].
func (r *Runtime) GetAccount(ctx context.Context, key ids.ID) (*program.AccountInfo, error) {
	r.lock.Lock()
	defer r.lock.Unlock()

	return GetAccount(ctx, r.db, key)
}

// Invoke executes [data] on [programID] with the accounts stored at [keys].
func (r *Runtime) Invoke(ctx context.Context, programID ids.ID, keys []ids.ID, data []byte) error {
	ctx, span := r.tracer.Start(ctx, "Runtime.Invoke",
		oteltrace.WithAttributes(
			attribute.Stringer("programID", programID),
			attribute.Int("accounts", len(keys)),
			attribute.Int("dataLen", len(data)),
		),
	)
	defer span.End()

	r.lock.Lock()
	defer r.lock.Unlock()

	start := time.Now()
	err := r.invoke(ctx, programID, keys, data)
	r.metrics.executionTime.Observe(float64(time.Since(start)))
	r.metrics.invocations.Inc()
	if err != nil {
		r.metrics.failures.Inc()
		span.RecordError(err)
		r.log.Debug("invocation failed",
			zap.Stringer("programID", programID),
			zap.Error(err),
		)
		return err
	}
	return nil
}

func (r *Runtime) invoke(ctx context.Context, programID ids.ID, keys []ids.ID, data []byte) error {
	p, ok := r.programs[programID]
	if !ok {
		return fmt.Errorf("%w: %s", ErrProgramNotFound, programID)
	}

	view := state.NewSimpleMutable(r.db)

	// An account listed more than once is handed to the program as the same
	// [program.AccountInfo].
	var (
		accounts  = make([]*program.AccountInfo, len(keys))
		loaded    = make(map[ids.ID]*program.AccountInfo, len(keys))
		originals = make(map[ids.ID]*program.AccountInfo, len(keys))
	)
	for i, key := range keys {
		if account, ok := loaded[key]; ok {
			accounts[i] = account
			continue
		}
		account, err := GetAccount(ctx, view, key)
		if err != nil {
			return err
		}
		account.IsWritable = true
		originals[key] = account.Clone()
		loaded[key] = account
		accounts[i] = account
	}

	if err := p.ProcessInstruction(programID, accounts, data); err != nil {
		return err
	}

	for _, key := range keys {
		original, ok := originals[key]
		if !ok {
			continue
		}
		delete(originals, key)

		account := loaded[key]
		if bytes.Equal(original.Data, account.Data) {
			continue
		}
		if len(original.Data) != len(account.Data) {
			return fmt.Errorf("%w: %s", ErrAccountDataSizeChanged, key)
		}
		if !original.IsOwnedBy(programID) {
			return fmt.Errorf("%w: %s", ErrExternalAccountDataModified, key)
		}
		// Only data may change, everything else is taken from storage.
		updated := original.Clone()
		updated.Data = account.Data
		if err := SetAccount(ctx, view, updated); err != nil {
			return err
		}
	}
	return view.Commit(ctx)
}
