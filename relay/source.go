// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package relay

import (
	"context"

	"github.com/luxfi/geth/common"

	"github.com/luxfi/ethbridge/bridge"
)

var (
	_ EventSource = (*Local)(nil)
	_ Submitter   = (*Local)(nil)
)

// EventSource exposes the event log of a ledger.
type EventSource interface {
	EventCount(ctx context.Context) (uint64, error)
	Events(ctx context.Context, from uint64, limit int) ([]*bridge.Event, error)
}

// Submitter delivers authority signatures to a ledger.
type Submitter interface {
	// GetWithdrawal returns bridge.ErrUnknownRequest if no signature was
	// accepted for [requestID] yet.
	GetWithdrawal(ctx context.Context, requestID common.Hash) (*bridge.WithdrawalRequest, error)
	SubmitSignature(ctx context.Context, sub *bridge.Submission) (*bridge.Receipt, error)
}

// Local serves a ledger running in the same process.
type Local struct {
	Bridge *bridge.Bridge
}

func (l *Local) EventCount(context.Context) (uint64, error) {
	return l.Bridge.EventCount(), nil
}

func (l *Local) Events(_ context.Context, from uint64, limit int) ([]*bridge.Event, error) {
	return l.Bridge.Events(from, limit)
}

func (l *Local) GetWithdrawal(_ context.Context, requestID common.Hash) (*bridge.WithdrawalRequest, error) {
	return l.Bridge.GetWithdrawal(requestID)
}

func (l *Local) SubmitSignature(ctx context.Context, sub *bridge.Submission) (*bridge.Receipt, error) {
	return l.Bridge.SubmitSignature(ctx, sub)
}
