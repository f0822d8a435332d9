// Copyright (C) 2023, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package pebble

import (
	"bytes"
	"context"
	"errors"
	"sync"
	"time"

	"github.com/ava-labs/avalanchego/database"
	"github.com/ava-labs/avalanchego/utils/units"
	"github.com/cockroachdb/pebble"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/ava-labs/hellocounter/state"
)

var (
	_ state.Mutable = (*Database)(nil)
	_ state.Batcher = (*Database)(nil)

	ErrClosed = errors.New("database closed")
)

type Config struct {
	CacheSize                   int  `json:"cacheSize"`
	BytesPerSync                int  `json:"bytesPerSync"`
	WALBytesPerSync             int  `json:"walBytesPerSync"` // 0 means no background syncing
	MemTableStopWritesThreshold int  `json:"memTableStopWritesThreshold"`
	MaxOpenFiles                int  `json:"maxOpenFiles"`
	ConcurrentCompactions       int  `json:"concurrentCompactions"`
	Sync                        bool `json:"sync"`
}

func NewDefaultConfig() Config {
	return Config{
		CacheSize:                   64 * units.MiB,
		BytesPerSync:                512 * units.KiB,
		WALBytesPerSync:             0,
		MemTableStopWritesThreshold: 8,
		MaxOpenFiles:                1_024,
		ConcurrentCompactions:       1,
		Sync:                        true,
	}
}

// Database stores program state in pebble.
type Database struct {
	lock    sync.RWMutex
	closed  bool
	db      *pebble.DB
	metrics *metrics
	wo      *pebble.WriteOptions

	closing chan struct{}
	done    sync.WaitGroup
}

func New(file string, cfg Config) (*Database, *prometheus.Registry, error) {
	registry, metrics, err := newMetrics()
	if err != nil {
		return nil, nil, err
	}
	d := &Database{
		metrics: metrics,
		closing: make(chan struct{}),
	}
	if cfg.Sync {
		d.wo = pebble.Sync
	} else {
		d.wo = pebble.NoSync
	}

	cache := pebble.NewCache(int64(cfg.CacheSize))
	defer cache.Unref()
	opts := &pebble.Options{
		Cache:                       cache,
		BytesPerSync:                cfg.BytesPerSync,
		Comparer:                    pebble.DefaultComparer,
		WALBytesPerSync:             cfg.WALBytesPerSync,
		MemTableStopWritesThreshold: cfg.MemTableStopWritesThreshold,
		MaxOpenFiles:                cfg.MaxOpenFiles,
		MaxConcurrentCompactions:    func() int { return cfg.ConcurrentCompactions },
	}
	opts.EventListener = &pebble.EventListener{
		WriteStallBegin: func(pebble.WriteStallBeginInfo) {
			d.metrics.stallBegin()
		},
		WriteStallEnd: func() {
			d.metrics.stallEnd()
		},
	}
	db, err := pebble.Open(file, opts)
	if err != nil {
		return nil, nil, err
	}
	d.db = db

	d.done.Add(1)
	go d.collectMetrics()
	return d, registry, nil
}

func (d *Database) collectMetrics() {
	defer d.done.Done()

	t := time.NewTicker(metricsInterval)
	defer t.Stop()
	for {
		select {
		case <-t.C:
			d.metrics.update(d.db.Metrics())
		case <-d.closing:
			return
		}
	}
}

func (d *Database) GetValue(_ context.Context, key []byte) ([]byte, error) {
	d.lock.RLock()
	defer d.lock.RUnlock()

	if d.closed {
		return nil, ErrClosed
	}
	start := time.Now()
	v, closer, err := d.db.Get(key)
	d.metrics.getLatency.Observe(float64(time.Since(start)))
	if errors.Is(err, pebble.ErrNotFound) {
		return nil, database.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	value := bytes.Clone(v)
	return value, closer.Close()
}

func (d *Database) Insert(_ context.Context, key []byte, value []byte) error {
	d.lock.RLock()
	defer d.lock.RUnlock()

	if d.closed {
		return ErrClosed
	}
	d.metrics.writes.Inc()
	return d.db.Set(key, value, d.wo)
}

func (d *Database) Remove(_ context.Context, key []byte) error {
	d.lock.RLock()
	defer d.lock.RUnlock()

	if d.closed {
		return ErrClosed
	}
	d.metrics.writes.Inc()
	return d.db.Delete(key, d.wo)
}

func (d *Database) NewBatch() state.Batch {
	return &batch{d: d, b: d.db.NewBatch()}
}

func (d *Database) Close() error {
	d.lock.Lock()
	if d.closed {
		d.lock.Unlock()
		return ErrClosed
	}
	d.closed = true
	d.lock.Unlock()

	close(d.closing)
	d.done.Wait()
	return d.db.Close()
}

type batch struct {
	d *Database
	b *pebble.Batch
}

func (b *batch) Insert(key []byte, value []byte) error {
	return b.b.Set(key, value, nil)
}

func (b *batch) Remove(key []byte) error {
	return b.b.Delete(key, nil)
}

func (b *batch) Write() error {
	b.d.lock.RLock()
	defer b.d.lock.RUnlock()

	if b.d.closed {
		return ErrClosed
	}
	b.d.metrics.batches.Inc()
	if err := b.b.Commit(b.d.wo); err != nil {
		_ = b.b.Close()
		return err
	}
	return b.b.Close()
}
