// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package bridge

import (
	"context"
	"testing"

	"github.com/holiman/uint256"
	"github.com/luxfi/geth/common"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"

	dto "github.com/prometheus/client_model/go"
)

func gather(t *testing.T, gatherer prometheus.Gatherer) map[string]*dto.MetricFamily {
	families, err := gatherer.Gather()
	require.NoError(t, err)

	byName := make(map[string]*dto.MetricFamily, len(families))
	for _, family := range families {
		byName[family.GetName()] = family
	}
	return byName
}

func TestMetricsRegistered(t *testing.T) {
	require := require.New(t)

	registry := prometheus.NewRegistry()
	b, err := New(Config{
		Threshold:   2,
		Authorities: []common.Address{authorityA, authorityB},
		Verifier:    testVerifier,
		Payout:      NewCredits(),
		Registerer:  registry,
		Namespace:   "test",
	})
	require.NoError(err)

	_, err = b.Deposit(depositor, uint256.NewInt(5))
	require.NoError(err)
	_, err = b.SubmitSignature(context.Background(), newSubmission(authorityA, requestID, recipient, 5))
	require.NoError(err)

	families := gather(t, registry)
	require.Equal(dto.MetricType_COUNTER, families["test_deposits"].GetType())
	require.Equal(float64(1), families["test_deposits"].GetMetric()[0].GetCounter().GetValue())
	require.Equal(float64(1), families["test_withdrawals_pending"].GetMetric()[0].GetGauge().GetValue())
	require.Equal(float64(1), families["test_queued_events"].GetMetric()[0].GetGauge().GetValue())

	signatures := families["test_signatures"].GetMetric()
	require.Len(signatures, 1)
	require.Equal(resultLabel, signatures[0].GetLabel()[0].GetName())
	require.Equal(acceptedResult, signatures[0].GetLabel()[0].GetValue())
}

func TestMetricsNamespaceCollision(t *testing.T) {
	registry := prometheus.NewRegistry()
	config := Config{
		Threshold:   1,
		Authorities: []common.Address{authorityA},
		Verifier:    testVerifier,
		Payout:      NewCredits(),
		Registerer:  registry,
	}
	_, err := New(config)
	require.NoError(t, err)

	_, err = New(config)
	var alreadyRegistered prometheus.AlreadyRegisteredError
	require.ErrorAs(t, err, &alreadyRegistered)
}
