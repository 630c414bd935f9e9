// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package relay

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/avast/retry-go"
	"github.com/luxfi/geth/common"
	"github.com/luxfi/log"

	"github.com/luxfi/ethbridge/bridge"
)

const (
	defaultAttempts = 5
	defaultDelay    = 500 * time.Millisecond
)

var errSigningFailed = errors.New("signing failed")

// Authority signs withdrawal messages on behalf of one configured authority.
type Authority interface {
	Address() common.Address
	Sign(payload []byte) ([]byte, error)
}

type SignerConfig struct {
	// Attempts bounds the number of tries per withdrawal.
	Attempts uint
	Delay    time.Duration
	Log      log.Logger
}

// Signer approves withdrawals observed on the counterpart chain.
type Signer struct {
	authority Authority
	submitter Submitter
	attempts  uint
	delay     time.Duration
	log       log.Logger
}

func NewSigner(authority Authority, submitter Submitter, config SignerConfig) *Signer {
	s := &Signer{
		authority: authority,
		submitter: submitter,
		attempts:  config.Attempts,
		delay:     config.Delay,
		log:       config.Log,
	}
	if s.attempts == 0 {
		s.attempts = defaultAttempts
	}
	if s.delay <= 0 {
		s.delay = defaultDelay
	}
	if s.log == nil {
		s.log = log.NoLog{}
	}
	return s
}

// Relay signs [msg] and submits the signature unless this authority already
// signed it or the withdrawal was executed. Transient failures are retried,
// rejections the ledger would repeat are not.
func (s *Signer) Relay(ctx context.Context, msg *bridge.Message) (*bridge.Receipt, error) {
	var receipt *bridge.Receipt
	err := retry.Do(
		func() error {
			r, err := s.relay(ctx, msg)
			if err != nil {
				return err
			}
			receipt = r
			return nil
		},
		retry.Context(ctx),
		retry.Attempts(s.attempts),
		retry.Delay(s.delay),
		retry.LastErrorOnly(true),
		retry.RetryIf(func(err error) bool {
			return !bridge.IsPermanent(err) && !errors.Is(err, errSigningFailed)
		}),
		retry.OnRetry(func(n uint, err error) {
			s.log.Warn("retrying withdrawal signature",
				log.Stringer("requestID", msg.RequestID),
				log.Uint32("attempt", uint32(n+1)),
				log.Err(err),
			)
		}),
	)
	if err != nil {
		return nil, err
	}
	return receipt, nil
}

func (s *Signer) relay(ctx context.Context, msg *bridge.Message) (*bridge.Receipt, error) {
	authority := s.authority.Address()
	existing, err := s.submitter.GetWithdrawal(ctx, msg.RequestID)
	switch {
	case errors.Is(err, bridge.ErrUnknownRequest):
	case err != nil:
		return nil, err
	case existing.Executed:
		s.log.Debug("withdrawal already executed",
			log.Stringer("requestID", msg.RequestID),
		)
		return &bridge.Receipt{
			Status:     bridge.Executed,
			Signatures: len(existing.Signers),
		}, nil
	case existing.HasSigner(authority):
		s.log.Debug("withdrawal already signed",
			log.Stringer("requestID", msg.RequestID),
		)
		return &bridge.Receipt{
			Status:     bridge.Pending,
			Signatures: len(existing.Signers),
			Duplicate:  true,
		}, nil
	}

	sig, err := s.authority.Sign(msg.Bytes())
	if err != nil {
		return nil, fmt.Errorf("%w: %w", errSigningFailed, err)
	}
	receipt, err := s.submitter.SubmitSignature(ctx, &bridge.Submission{
		RequestID: msg.RequestID,
		Recipient: msg.Recipient,
		Value:     msg.Value,
		Authority: authority,
		Signature: sig,
	})
	if errors.Is(err, bridge.ErrAlreadyExecuted) {
		// Another authority completed the quorum since the check above.
		return &bridge.Receipt{Status: bridge.Executed}, nil
	}
	if err != nil {
		return nil, err
	}

	s.log.Info("submitted withdrawal signature",
		log.Stringer("requestID", msg.RequestID),
		log.Stringer("status", receipt.Status),
		log.Int("signatures", receipt.Signatures),
	)
	return receipt, nil
}
