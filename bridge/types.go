// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package bridge

import (
	"slices"

	"github.com/holiman/uint256"
	"github.com/luxfi/geth/common"
)

// Status of a withdrawal request.
type Status uint8

const (
	NonExistent Status = iota
	Pending
	Executed
)

func (s Status) String() string {
	switch s {
	case NonExistent:
		return "NonExistent"
	case Pending:
		return "Pending"
	case Executed:
		return "Executed"
	default:
		return "Unknown"
	}
}

// Deposit is an immutable entry of the append-only deposit log.
type Deposit struct {
	Sequence  uint64         `serialize:"true"`
	Sender    common.Address `serialize:"true"`
	Recipient common.Address `serialize:"true"`
	Value     *uint256.Int   `serialize:"true"`
	Timestamp uint64         `serialize:"true"`
}

// WithdrawalRequest accumulates authority signatures for a single release.
// It is created by the first valid signature and is never deleted.
type WithdrawalRequest struct {
	RequestID common.Hash      `serialize:"true"`
	Recipient common.Address   `serialize:"true"`
	Value     *uint256.Int     `serialize:"true"`
	Signers   []common.Address `serialize:"true"`
	CreatedAt uint64           `serialize:"true"`

	Executed   bool   `serialize:"true"`
	ExecutedAt uint64 `serialize:"true"`
	// Relayer is the authority whose signature completed the quorum.
	Relayer common.Address `serialize:"true"`
}

func (r *WithdrawalRequest) Status() Status {
	if r.Executed {
		return Executed
	}
	return Pending
}

func (r *WithdrawalRequest) Message() *Message {
	return &Message{
		RequestID: r.RequestID,
		Recipient: r.Recipient,
		Value:     r.Value,
	}
}

// HasSigner returns true if [authority] already signed this request.
func (r *WithdrawalRequest) HasSigner(authority common.Address) bool {
	return slices.Contains(r.Signers, authority)
}

func (r *WithdrawalRequest) matches(recipient common.Address, value *uint256.Int) bool {
	return r.Recipient == recipient && r.Value.Eq(value)
}

func (r *WithdrawalRequest) clone() *WithdrawalRequest {
	c := *r
	c.Value = r.Value.Clone()
	c.Signers = slices.Clone(r.Signers)
	return &c
}

// Submission is an authority's attestation of a withdrawal message.
type Submission struct {
	RequestID common.Hash
	Recipient common.Address
	Value     *uint256.Int
	Authority common.Address
	Signature []byte
}

func (s *Submission) Message() *Message {
	return &Message{
		RequestID: s.RequestID,
		Recipient: s.Recipient,
		Value:     s.Value,
	}
}

// Receipt describes the state of a request after an accepted submission.
type Receipt struct {
	Status     Status
	Signatures int
	// Duplicate is set when the authority had already signed this payload.
	Duplicate bool
}

// EventType distinguishes entries of the event log.
type EventType uint8

const (
	DepositEvent EventType = iota + 1
	WithdrawalEvent
)

func (t EventType) String() string {
	switch t {
	case DepositEvent:
		return "Deposit"
	case WithdrawalEvent:
		return "Withdrawal"
	default:
		return "Unknown"
	}
}

// Event is a notification produced by a committed operation. Sequence is the
// position in the event log and grows by one per event.
type Event struct {
	Sequence  uint64         `serialize:"true"`
	Type      EventType      `serialize:"true"`
	Recipient common.Address `serialize:"true"`
	Value     *uint256.Int   `serialize:"true"`
	Timestamp uint64         `serialize:"true"`

	// Deposit is the deposit sequence of a DepositEvent.
	Deposit uint64 `serialize:"true"`

	// RequestID and Relayer are set on a WithdrawalEvent.
	RequestID common.Hash    `serialize:"true"`
	Relayer   common.Address `serialize:"true"`
}
