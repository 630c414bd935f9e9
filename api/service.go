// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package api

import (
	"fmt"
	"net/http"

	"github.com/gorilla/rpc/v2"
	"github.com/holiman/uint256"
	"github.com/luxfi/geth/common"
	"github.com/luxfi/geth/common/hexutil"
	"github.com/luxfi/log"

	"github.com/luxfi/ethbridge/bridge"
	"github.com/luxfi/ethbridge/utils/json"
)

const (
	// ServiceName prefixes every method, as in "bridge.deposit".
	ServiceName = "bridge"

	maxEventsPerRequest = 1024
)

// Service serves a ledger over JSON-RPC.
type Service struct {
	log    log.Logger
	bridge *bridge.Bridge
}

// NewHandler returns a JSON-RPC handler serving [b].
func NewHandler(logger log.Logger, b *bridge.Bridge) (http.Handler, error) {
	server := rpc.NewServer()
	codec := json.NewCodec()
	server.RegisterCodec(codec, "application/json")
	server.RegisterCodec(codec, "application/json;charset=UTF-8")
	if err := server.RegisterService(&Service{log: logger, bridge: b}, ServiceName); err != nil {
		return nil, err
	}
	return server, nil
}

func parseAmount(s string) (*uint256.Int, error) {
	v, err := uint256.FromDecimal(s)
	if err != nil {
		return nil, fmt.Errorf("%w %q: %w", errInvalidAmount, s, err)
	}
	return v, nil
}

// EmptyArgs is used by methods without parameters.
type EmptyArgs struct{}

type DepositArgs struct {
	Sender common.Address `json:"sender"`
	// Recipient defaults to Sender.
	Recipient *common.Address `json:"recipient,omitempty"`
	// Value in wei, as a decimal string.
	Value string `json:"value"`
}

type DepositReply struct {
	Sequence json.Uint64 `json:"sequence"`
}

func (s *Service) Deposit(_ *http.Request, args *DepositArgs, reply *DepositReply) error {
	s.log.Debug("API called",
		log.String("service", ServiceName),
		log.String("method", "deposit"),
	)

	value, err := parseAmount(args.Value)
	if err != nil {
		return toRPCError(err)
	}
	recipient := args.Sender
	if args.Recipient != nil {
		recipient = *args.Recipient
	}
	deposit, err := s.bridge.DepositFor(args.Sender, recipient, value)
	if err != nil {
		return toRPCError(err)
	}
	reply.Sequence = json.Uint64(deposit.Sequence)
	return nil
}

type SubmitSignatureArgs struct {
	RequestID common.Hash    `json:"requestID"`
	Recipient common.Address `json:"recipient"`
	Value     string         `json:"value"`
	Authority common.Address `json:"authority"`
	Signature hexutil.Bytes  `json:"signature"`
}

type SubmitSignatureReply struct {
	Status     string      `json:"status"`
	Signatures json.Uint32 `json:"signatures"`
	Duplicate  bool        `json:"duplicate"`
}

func (s *Service) SubmitSignature(r *http.Request, args *SubmitSignatureArgs, reply *SubmitSignatureReply) error {
	s.log.Debug("API called",
		log.String("service", ServiceName),
		log.String("method", "submitSignature"),
		log.Stringer("requestID", args.RequestID),
	)

	value, err := parseAmount(args.Value)
	if err != nil {
		return toRPCError(err)
	}
	receipt, err := s.bridge.SubmitSignature(r.Context(), &bridge.Submission{
		RequestID: args.RequestID,
		Recipient: args.Recipient,
		Value:     value,
		Authority: args.Authority,
		Signature: args.Signature,
	})
	if err != nil {
		return toRPCError(err)
	}
	reply.Status = receipt.Status.String()
	reply.Signatures = json.Uint32(receipt.Signatures)
	reply.Duplicate = receipt.Duplicate
	return nil
}

type RequiredSignaturesReply struct {
	Threshold json.Uint32 `json:"threshold"`
}

func (s *Service) RequiredSignatures(_ *http.Request, _ *EmptyArgs, reply *RequiredSignaturesReply) error {
	reply.Threshold = json.Uint32(s.bridge.RequiredSignatures())
	return nil
}

type AuthorityArgs struct {
	Index json.Uint32 `json:"index"`
}

type AuthorityReply struct {
	Authority common.Address `json:"authority"`
}

func (s *Service) Authority(_ *http.Request, args *AuthorityArgs, reply *AuthorityReply) error {
	authority, err := s.bridge.Authority(int(args.Index))
	if err != nil {
		return toRPCError(err)
	}
	reply.Authority = authority
	return nil
}

type AuthoritiesReply struct {
	Threshold   json.Uint32      `json:"threshold"`
	Authorities []common.Address `json:"authorities"`
}

func (s *Service) Authorities(_ *http.Request, _ *EmptyArgs, reply *AuthoritiesReply) error {
	reply.Threshold = json.Uint32(s.bridge.RequiredSignatures())
	reply.Authorities = s.bridge.Authorities()
	return nil
}

type DepositCountReply struct {
	Count json.Uint64 `json:"count"`
}

func (s *Service) DepositCount(_ *http.Request, _ *EmptyArgs, reply *DepositCountReply) error {
	reply.Count = json.Uint64(s.bridge.DepositCount())
	return nil
}

type GetDepositArgs struct {
	Sequence json.Uint64 `json:"sequence"`
}

type GetDepositReply struct {
	Sequence  json.Uint64    `json:"sequence"`
	Sender    common.Address `json:"sender"`
	Recipient common.Address `json:"recipient"`
	Value     string         `json:"value"`
	Timestamp json.Uint64    `json:"timestamp"`
}

func (s *Service) GetDeposit(_ *http.Request, args *GetDepositArgs, reply *GetDepositReply) error {
	deposit, err := s.bridge.GetDeposit(uint64(args.Sequence))
	if err != nil {
		return toRPCError(err)
	}
	reply.Sequence = json.Uint64(deposit.Sequence)
	reply.Sender = deposit.Sender
	reply.Recipient = deposit.Recipient
	reply.Value = deposit.Value.Dec()
	reply.Timestamp = json.Uint64(deposit.Timestamp)
	return nil
}

type RequestArgs struct {
	RequestID common.Hash `json:"requestID"`
}

type WithdrawalStatusReply struct {
	Status string `json:"status"`
}

func (s *Service) WithdrawalStatus(_ *http.Request, args *RequestArgs, reply *WithdrawalStatusReply) error {
	status, err := s.bridge.WithdrawalStatus(args.RequestID)
	if err != nil {
		return toRPCError(err)
	}
	reply.Status = status.String()
	return nil
}

type GetWithdrawalReply struct {
	RequestID  common.Hash      `json:"requestID"`
	Recipient  common.Address   `json:"recipient"`
	Value      string           `json:"value"`
	Signers    []common.Address `json:"signers"`
	CreatedAt  json.Uint64      `json:"createdAt"`
	Executed   bool             `json:"executed"`
	ExecutedAt json.Uint64      `json:"executedAt"`
	Relayer    common.Address   `json:"relayer"`
}

func (s *Service) GetWithdrawal(_ *http.Request, args *RequestArgs, reply *GetWithdrawalReply) error {
	request, err := s.bridge.GetWithdrawal(args.RequestID)
	if err != nil {
		return toRPCError(err)
	}
	reply.RequestID = request.RequestID
	reply.Recipient = request.Recipient
	reply.Value = request.Value.Dec()
	reply.Signers = request.Signers
	reply.CreatedAt = json.Uint64(request.CreatedAt)
	reply.Executed = request.Executed
	reply.ExecutedAt = json.Uint64(request.ExecutedAt)
	reply.Relayer = request.Relayer
	return nil
}

type EventsArgs struct {
	From  json.Uint64 `json:"from"`
	Limit json.Uint32 `json:"limit"`
}

type EventReply struct {
	Sequence  json.Uint64    `json:"sequence"`
	Type      string         `json:"type"`
	Recipient common.Address `json:"recipient"`
	Value     string         `json:"value"`
	Timestamp json.Uint64    `json:"timestamp"`
	Deposit   json.Uint64    `json:"deposit"`
	RequestID common.Hash    `json:"requestID"`
	Relayer   common.Address `json:"relayer"`
}

type EventsReply struct {
	Events []EventReply `json:"events"`
	// Count is the length of the event log.
	Count json.Uint64 `json:"count"`
}

func (s *Service) Events(_ *http.Request, args *EventsArgs, reply *EventsReply) error {
	limit := min(int(args.Limit), maxEventsPerRequest)
	events, err := s.bridge.Events(uint64(args.From), limit)
	if err != nil {
		return toRPCError(err)
	}
	reply.Events = make([]EventReply, len(events))
	for i, e := range events {
		reply.Events[i] = EventReply{
			Sequence:  json.Uint64(e.Sequence),
			Type:      e.Type.String(),
			Recipient: e.Recipient,
			Value:     e.Value.Dec(),
			Timestamp: json.Uint64(e.Timestamp),
			Deposit:   json.Uint64(e.Deposit),
			RequestID: e.RequestID,
			Relayer:   e.Relayer,
		}
	}
	reply.Count = json.Uint64(s.bridge.EventCount())
	return nil
}

type TotalsReply struct {
	Deposited string `json:"deposited"`
	Released  string `json:"released"`
}

func (s *Service) Totals(_ *http.Request, _ *EmptyArgs, reply *TotalsReply) error {
	deposited, released := s.bridge.Totals()
	reply.Deposited = deposited.Dec()
	reply.Released = released.Dec()
	return nil
}
