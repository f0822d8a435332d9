// Copyright (C) 2023, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package pebble

import (
	"sync"
	"time"

	"github.com/ava-labs/avalanchego/utils/wrappers"
	"github.com/cockroachdb/pebble"
	"github.com/prometheus/client_golang/prometheus"
)

const metricsInterval = 10 * time.Second

type metrics struct {
	lock       sync.Mutex
	delayStart time.Time
	writeStall prometheus.Histogram

	getLatency prometheus.Histogram
	writes     prometheus.Counter
	batches    prometheus.Counter

	compactions       prometheus.Gauge
	activeCompactions prometheus.Gauge
	zombieTableSize   prometheus.Gauge
	zombieTableCount  prometheus.Gauge
}

func newMetrics() (*prometheus.Registry, *metrics, error) {
	r := prometheus.NewRegistry()
	m := &metrics{
		writeStall: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "pebble",
			Name:      "write_stall",
			Help:      "time spent waiting for disk write (ns)",
		}),
		getLatency: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "pebble",
			Name:      "read_latency",
			Help:      "time spent waiting for db get (ns)",
		}),
		writes: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "pebble",
			Name:      "writes",
			Help:      "number of unbatched writes",
		}),
		batches: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "pebble",
			Name:      "batches",
			Help:      "number of committed batches",
		}),
		compactions: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "pebble",
			Name:      "compactions",
			Help:      "number of compactions",
		}),
		activeCompactions: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "pebble",
			Name:      "active_compactions",
			Help:      "number of active compactions",
		}),
		zombieTableSize: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "pebble",
			Name:      "zombie_table_size",
			Help:      "number of bytes present in tables no longer referenced by the db but still open",
		}),
		zombieTableCount: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "pebble",
			Name:      "zombie_table_count",
			Help:      "number of tables no longer referenced by the db but still open",
		}),
	}
	errs := wrappers.Errs{}
	errs.Add(
		r.Register(m.writeStall),
		r.Register(m.getLatency),
		r.Register(m.writes),
		r.Register(m.batches),
		r.Register(m.compactions),
		r.Register(m.activeCompactions),
		r.Register(m.zombieTableSize),
		r.Register(m.zombieTableCount),
	)
	return r, m, errs.Err
}

func (m *metrics) stallBegin() {
	m.lock.Lock()
	defer m.lock.Unlock()

	m.delayStart = time.Now()
}

func (m *metrics) stallEnd() {
	m.lock.Lock()
	defer m.lock.Unlock()

	m.writeStall.Observe(float64(time.Since(m.delayStart)))
}

func (m *metrics) update(stats *pebble.Metrics) {
	m.compactions.Set(float64(stats.Compact.Count))
	m.activeCompactions.Set(float64(stats.Compact.NumInProgress))
	m.zombieTableSize.Set(float64(stats.Table.ZombieSize))
	m.zombieTableCount.Set(float64(stats.Table.ZombieCount))
}
