// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package runtime

import (
	"github.com/ava-labs/avalanchego/utils/wrappers"
	"github.com/prometheus/client_golang/prometheus"
)

type metrics struct {
	invocations     prometheus.Counter
	failures        prometheus.Counter
	accountsCreated prometheus.Counter
	executionTime   prometheus.Histogram
}

func newMetrics(r prometheus.Registerer) (*metrics, error) {
	m := &metrics{
		invocations: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "runtime",
			Name:      "invocations",
			Help:      "number of program invocations",
		}),
		failures: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "runtime",
			Name:      "failed_invocations",
			Help:      "number of program invocations that returned an error",
		}),
		accountsCreated: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "runtime",
			Name:      "accounts_created",
			Help:      "number of accounts allocated",
		}),
		executionTime: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "runtime",
			Name:      "execution_time",
			Help:      "time spent executing an invocation (ns)",
			Buckets:   prometheus.ExponentialBuckets(1_000, 4, 10),
		}),
	}
	errs := wrappers.Errs{}
	errs.Add(
		r.Register(m.invocations),
		r.Register(m.failures),
		r.Register(m.accountsCreated),
		r.Register(m.executionTime),
	)
	return m, errs.Err
}
