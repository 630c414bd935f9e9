// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package bridge

import (
	"errors"

	"github.com/prometheus/client_golang/prometheus"
)

const (
	resultLabel = "result"

	acceptedResult  = "accepted"
	duplicateResult = "duplicate"
	rejectedResult  = "rejected"
)

type metrics struct {
	deposits    prometheus.Counter
	signatures  *prometheus.CounterVec
	withdrawals prometheus.Counter
	pending     prometheus.Gauge
	queued      prometheus.GaugeFunc
}

func newMetrics(namespace string, registerer prometheus.Registerer, queue *Queue) (*metrics, error) {
	m := &metrics{
		deposits: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "deposits",
			Help:      "Number of accepted deposits",
		}),
		signatures: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "signatures",
				Help:      "Number of submitted signatures by result",
			},
			[]string{resultLabel},
		),
		withdrawals: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "withdrawals_executed",
			Help:      "Number of withdrawals that reached quorum and were paid out",
		}),
		pending: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "withdrawals_pending",
			Help:      "Number of withdrawal requests waiting for signatures",
		}),
		queued: prometheus.NewGaugeFunc(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "queued_events",
				Help:      "Number of events not yet taken from the notification queue",
			},
			func() float64 {
				return float64(queue.Len())
			},
		),
	}

	err := errors.Join(
		registerer.Register(m.deposits),
		registerer.Register(m.signatures),
		registerer.Register(m.withdrawals),
		registerer.Register(m.pending),
		registerer.Register(m.queued),
	)
	return m, err
}
