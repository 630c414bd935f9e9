// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/holiman/uint256"
	"github.com/luxfi/geth/common"

	"github.com/luxfi/ethbridge/bridge"
	"github.com/luxfi/ethbridge/relay"
	"github.com/luxfi/ethbridge/utils/json"
	"github.com/luxfi/ethbridge/utils/rpc"
)

var (
	_ relay.EventSource = (*Client)(nil)
	_ relay.Submitter   = (*Client)(nil)
)

// Client for interacting with a ledger served by Service. Ledger rejections
// are returned as errors matching the bridge package sentinels.
type Client struct {
	requester rpc.EndpointRequester
}

// NewClient returns a client for the JSON-RPC endpoint at [uri].
func NewClient(uri string) *Client {
	return NewClientWithHTTP(uri, nil)
}

func NewClientWithHTTP(uri string, client *http.Client) *Client {
	return &Client{
		requester: rpc.NewEndpointRequester(uri, client),
	}
}

func (c *Client) call(ctx context.Context, method string, args, reply interface{}) error {
	err := c.requester.SendRequest(ctx, ServiceName+"."+method, args, reply)
	return fromRPCError(err)
}

func (c *Client) Deposit(ctx context.Context, sender common.Address, value *uint256.Int) (uint64, error) {
	return c.DepositFor(ctx, sender, sender, value)
}

func (c *Client) DepositFor(ctx context.Context, sender, recipient common.Address, value *uint256.Int) (uint64, error) {
	res := &DepositReply{}
	err := c.call(ctx, "deposit", &DepositArgs{
		Sender:    sender,
		Recipient: &recipient,
		Value:     value.Dec(),
	}, res)
	return uint64(res.Sequence), err
}

func (c *Client) SubmitSignature(ctx context.Context, sub *bridge.Submission) (*bridge.Receipt, error) {
	value := sub.Value
	if value == nil {
		value = new(uint256.Int)
	}
	res := &SubmitSignatureReply{}
	err := c.call(ctx, "submitSignature", &SubmitSignatureArgs{
		RequestID: sub.RequestID,
		Recipient: sub.Recipient,
		Value:     value.Dec(),
		Authority: sub.Authority,
		Signature: sub.Signature,
	}, res)
	if err != nil {
		return nil, err
	}
	status, err := parseStatus(res.Status)
	if err != nil {
		return nil, err
	}
	return &bridge.Receipt{
		Status:     status,
		Signatures: int(res.Signatures),
		Duplicate:  res.Duplicate,
	}, nil
}

func (c *Client) RequiredSignatures(ctx context.Context) (int, error) {
	res := &RequiredSignaturesReply{}
	err := c.call(ctx, "requiredSignatures", &EmptyArgs{}, res)
	return int(res.Threshold), err
}

func (c *Client) Authority(ctx context.Context, index int) (common.Address, error) {
	res := &AuthorityReply{}
	err := c.call(ctx, "authority", &AuthorityArgs{
		Index: json.Uint32(index),
	}, res)
	return res.Authority, err
}

// Authorities returns the threshold and the authorities in construction
// order.
func (c *Client) Authorities(ctx context.Context) (int, []common.Address, error) {
	res := &AuthoritiesReply{}
	err := c.call(ctx, "authorities", &EmptyArgs{}, res)
	return int(res.Threshold), res.Authorities, err
}

func (c *Client) DepositCount(ctx context.Context) (uint64, error) {
	res := &DepositCountReply{}
	err := c.call(ctx, "depositCount", &EmptyArgs{}, res)
	return uint64(res.Count), err
}

func (c *Client) GetDeposit(ctx context.Context, sequence uint64) (*bridge.Deposit, error) {
	res := &GetDepositReply{}
	err := c.call(ctx, "getDeposit", &GetDepositArgs{
		Sequence: json.Uint64(sequence),
	}, res)
	if err != nil {
		return nil, err
	}
	value, err := parseAmount(res.Value)
	if err != nil {
		return nil, err
	}
	return &bridge.Deposit{
		Sequence:  uint64(res.Sequence),
		Sender:    res.Sender,
		Recipient: res.Recipient,
		Value:     value,
		Timestamp: uint64(res.Timestamp),
	}, nil
}

func (c *Client) WithdrawalStatus(ctx context.Context, requestID common.Hash) (bridge.Status, error) {
	res := &WithdrawalStatusReply{}
	err := c.call(ctx, "withdrawalStatus", &RequestArgs{
		RequestID: requestID,
	}, res)
	if err != nil {
		return bridge.NonExistent, err
	}
	return parseStatus(res.Status)
}

func (c *Client) GetWithdrawal(ctx context.Context, requestID common.Hash) (*bridge.WithdrawalRequest, error) {
	res := &GetWithdrawalReply{}
	err := c.call(ctx, "getWithdrawal", &RequestArgs{
		RequestID: requestID,
	}, res)
	if err != nil {
		return nil, err
	}
	value, err := parseAmount(res.Value)
	if err != nil {
		return nil, err
	}
	return &bridge.WithdrawalRequest{
		RequestID:  res.RequestID,
		Recipient:  res.Recipient,
		Value:      value,
		Signers:    res.Signers,
		CreatedAt:  uint64(res.CreatedAt),
		Executed:   res.Executed,
		ExecutedAt: uint64(res.ExecutedAt),
		Relayer:    res.Relayer,
	}, nil
}

func (c *Client) EventCount(ctx context.Context) (uint64, error) {
	res := &EventsReply{}
	err := c.call(ctx, "events", &EventsArgs{}, res)
	return uint64(res.Count), err
}

func (c *Client) Events(ctx context.Context, from uint64, limit int) ([]*bridge.Event, error) {
	res := &EventsReply{}
	err := c.call(ctx, "events", &EventsArgs{
		From:  json.Uint64(from),
		Limit: json.Uint32(limit),
	}, res)
	if err != nil {
		return nil, err
	}

	events := make([]*bridge.Event, len(res.Events))
	for i, e := range res.Events {
		eventType, err := parseEventType(e.Type)
		if err != nil {
			return nil, err
		}
		value, err := parseAmount(e.Value)
		if err != nil {
			return nil, err
		}
		events[i] = &bridge.Event{
			Sequence:  uint64(e.Sequence),
			Type:      eventType,
			Recipient: e.Recipient,
			Value:     value,
			Timestamp: uint64(e.Timestamp),
			Deposit:   uint64(e.Deposit),
			RequestID: e.RequestID,
			Relayer:   e.Relayer,
		}
	}
	return events, nil
}

// Totals returns the total value deposited and released.
func (c *Client) Totals(ctx context.Context) (*uint256.Int, *uint256.Int, error) {
	res := &TotalsReply{}
	if err := c.call(ctx, "totals", &EmptyArgs{}, res); err != nil {
		return nil, nil, err
	}
	deposited, err := parseAmount(res.Deposited)
	if err != nil {
		return nil, nil, err
	}
	released, err := parseAmount(res.Released)
	if err != nil {
		return nil, nil, err
	}
	return deposited, released, nil
}

func parseStatus(s string) (bridge.Status, error) {
	for _, status := range []bridge.Status{bridge.NonExistent, bridge.Pending, bridge.Executed} {
		if status.String() == s {
			return status, nil
		}
	}
	return bridge.NonExistent, fmt.Errorf("unknown withdrawal status %q", s)
}

func parseEventType(s string) (bridge.EventType, error) {
	for _, t := range []bridge.EventType{bridge.DepositEvent, bridge.WithdrawalEvent} {
		if t.String() == s {
			return t, nil
		}
	}
	return 0, fmt.Errorf("unknown event type %q", s)
}
