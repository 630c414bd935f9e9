// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package bridge

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/holiman/uint256"
	"github.com/luxfi/database"
	"github.com/luxfi/database/memdb"
	"github.com/luxfi/geth/common"
	"github.com/luxfi/log"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/luxfi/ethbridge/utils/timer/mockable"

	safemath "github.com/luxfi/ethbridge/utils/math"
)

const defaultNamespace = "ethbridge"

// Config describes a ledger and the capabilities it depends on.
type Config struct {
	// Threshold is the number of distinct authority signatures that
	// executes a withdrawal.
	Threshold   int
	Authorities []common.Address

	Verifier Verifier
	Payout   Payout

	// Optional. DB defaults to an in-memory database, Log to no logging,
	// Registerer to a private registry and Clock to wall-clock time.
	DB         database.Database
	Log        log.Logger
	Registerer prometheus.Registerer
	Namespace  string
	Clock      *mockable.Clock
}

// Bridge is the ledger and quorum engine. Every mutation holds the write
// lock from validation to commit; readers only observe committed state.
type Bridge struct {
	authorities *AuthoritySet
	verifier    Verifier
	payout      Payout
	log         log.Logger
	clock       *mockable.Clock
	metrics     *metrics
	queue       *Queue

	lock  sync.RWMutex
	state *state
}

// New returns a ledger governed by [config.Authorities]. If [config.DB]
// already holds a ledger it is resumed, provided it was created with the
// same authorities and threshold.
func New(config Config) (*Bridge, error) {
	authorities, err := NewAuthoritySet(config.Threshold, config.Authorities)
	if err != nil {
		return nil, err
	}
	if config.Verifier == nil {
		return nil, ErrNilVerifier
	}
	if config.Payout == nil {
		return nil, ErrNilPayout
	}

	db := config.DB
	if db == nil {
		db = memdb.New()
	}
	logger := config.Log
	if logger == nil {
		logger = log.NoLog{}
	}
	registerer := config.Registerer
	if registerer == nil {
		registerer = prometheus.NewRegistry()
	}
	namespace := config.Namespace
	if namespace == "" {
		namespace = defaultNamespace
	}
	clock := config.Clock
	if clock == nil {
		clock = &mockable.Clock{}
	}

	s, err := newState(db)
	if err != nil {
		return nil, fmt.Errorf("failed to load ledger: %w", err)
	}
	if err := initAuthorities(s, authorities); err != nil {
		return nil, err
	}

	queue := newQueue()
	m, err := newMetrics(namespace, registerer, queue)
	if err != nil {
		return nil, fmt.Errorf("failed to register metrics: %w", err)
	}
	m.pending.Set(float64(s.counters.pending))

	logger.Info("bridge ledger ready",
		log.Int("threshold", authorities.Threshold()),
		log.Int("authorities", authorities.Len()),
		log.Uint64("deposits", s.counters.deposits),
		log.Uint64("events", s.counters.events),
	)
	return &Bridge{
		authorities: authorities,
		verifier:    config.Verifier,
		payout:      config.Payout,
		log:         logger,
		clock:       clock,
		metrics:     m,
		queue:       queue,
		state:       s,
	}, nil
}

// initAuthorities persists the authority set of a fresh ledger or checks it
// against the persisted one.
func initAuthorities(s *state, authorities *AuthoritySet) error {
	persisted, err := s.getAuthorities()
	switch {
	case err == database.ErrNotFound:
		err := s.putAuthorities(&persistedAuthorities{
			Threshold:   uint32(authorities.Threshold()),
			Authorities: authorities.List(),
		})
		if err != nil {
			s.abort()
			return err
		}
		return s.commit()
	case err != nil:
		return err
	}

	existing, err := NewAuthoritySet(int(persisted.Threshold), persisted.Authorities)
	if err != nil {
		return fmt.Errorf("corrupt persisted authorities: %w", err)
	}
	if !existing.Equals(authorities) {
		return ErrConfigurationMismatch
	}
	return nil
}

// RequiredSignatures returns the signature threshold.
func (b *Bridge) RequiredSignatures() int {
	return b.authorities.Threshold()
}

// Authority returns the authority at [index] in construction order.
func (b *Bridge) Authority(index int) (common.Address, error) {
	return b.authorities.Get(index)
}

// Authorities returns a copy of the authority set in construction order.
func (b *Bridge) Authorities() []common.Address {
	return b.authorities.List()
}

// IsAuthority returns true if [addr] may sign withdrawals.
func (b *Bridge) IsAuthority(addr common.Address) bool {
	return b.authorities.Contains(addr)
}

// Queue returns the notification queue fed by committed operations.
func (b *Bridge) Queue() *Queue {
	return b.queue
}

// Deposit records [value] transferred in by [sender], who is also the
// recipient on the counterpart chain.
func (b *Bridge) Deposit(sender common.Address, value *uint256.Int) (*Deposit, error) {
	return b.DepositFor(sender, sender, value)
}

// DepositFor records [value] transferred in by [sender] on behalf of
// [recipient]. Exactly one DepositEvent is emitted per accepted deposit.
func (b *Bridge) DepositFor(sender, recipient common.Address, value *uint256.Int) (*Deposit, error) {
	if value == nil || value.IsZero() {
		return nil, ErrZeroValueDeposit
	}

	b.lock.Lock()
	defer b.lock.Unlock()

	deposited, err := safemath.AddUint256(b.state.counters.deposited, value)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrValueOverflow, err)
	}

	now := b.clock.Unix()
	deposit := &Deposit{
		Sender:    sender,
		Recipient: recipient,
		Value:     value.Clone(),
		Timestamp: now,
	}
	if err := b.state.addDeposit(deposit); err != nil {
		b.state.abort()
		return nil, err
	}
	event := &Event{
		Type:      DepositEvent,
		Recipient: recipient,
		Value:     value.Clone(),
		Timestamp: now,
		Deposit:   deposit.Sequence,
	}
	if err := b.state.addEvent(event); err != nil {
		b.state.abort()
		return nil, err
	}
	b.state.counters.deposited = deposited
	if err := b.state.commit(); err != nil {
		b.state.abort()
		return nil, err
	}

	b.queue.push(event)
	b.metrics.deposits.Inc()
	b.log.Info("accepted deposit",
		log.Uint64("sequence", deposit.Sequence),
		log.Stringer("sender", sender),
		log.Stringer("recipient", recipient),
		log.String("value", value.Dec()),
	)
	return deposit, nil
}

// SubmitSignature accepts [sub.Authority]'s signature over the withdrawal
// message. The first time the request gathers RequiredSignatures distinct
// signatures it is executed: the payout is made and a WithdrawalEvent is
// emitted. A rejected submission leaves the ledger unchanged.
func (b *Bridge) SubmitSignature(ctx context.Context, sub *Submission) (*Receipt, error) {
	receipt, err := b.submitSignature(ctx, sub)
	switch {
	case err != nil:
		b.metrics.signatures.WithLabelValues(rejectedResult).Inc()
		b.log.Debug("rejected signature",
			log.Stringer("requestID", sub.RequestID),
			log.Stringer("authority", sub.Authority),
			log.Err(err),
		)
	case receipt.Duplicate:
		b.metrics.signatures.WithLabelValues(duplicateResult).Inc()
	default:
		b.metrics.signatures.WithLabelValues(acceptedResult).Inc()
	}
	return receipt, err
}

func (b *Bridge) submitSignature(ctx context.Context, sub *Submission) (*Receipt, error) {
	if !b.authorities.Contains(sub.Authority) {
		return nil, fmt.Errorf("%w: %s", ErrUnknownAuthority, sub.Authority)
	}
	value := sub.Value
	if value == nil {
		value = new(uint256.Int)
	}
	msg := &Message{
		RequestID: sub.RequestID,
		Recipient: sub.Recipient,
		Value:     value,
	}
	// Verification only depends on the submission, so it runs before the
	// ledger is locked.
	if err := b.verifier.Verify(msg.Bytes(), sub.Authority, sub.Signature); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidSignature, err)
	}

	b.lock.Lock()
	defer b.lock.Unlock()

	existing, err := b.state.getRequest(sub.RequestID)
	switch {
	case err == database.ErrNotFound:
		existing = nil
	case err != nil:
		return nil, err
	case existing.Executed:
		return nil, fmt.Errorf("%w: %s", ErrAlreadyExecuted, sub.RequestID)
	case !existing.matches(sub.Recipient, value):
		return nil, fmt.Errorf("%w: %s", ErrPayloadMismatch, sub.RequestID)
	case existing.HasSigner(sub.Authority):
		return &Receipt{
			Status:     Pending,
			Signatures: len(existing.Signers),
			Duplicate:  true,
		}, nil
	}

	now := b.clock.Unix()
	var request *WithdrawalRequest
	if existing == nil {
		request = &WithdrawalRequest{
			RequestID: sub.RequestID,
			Recipient: sub.Recipient,
			Value:     value.Clone(),
			CreatedAt: now,
		}
	} else {
		request = existing.clone()
	}
	request.Signers = append(request.Signers, sub.Authority)

	if len(request.Signers) < b.authorities.Threshold() {
		if err := b.state.putRequest(request); err != nil {
			b.state.abort()
			return nil, err
		}
		if existing == nil {
			b.state.counters.pending++
		}
		if err := b.state.commit(); err != nil {
			b.state.abort()
			return nil, err
		}

		b.metrics.pending.Set(float64(b.state.counters.pending))
		b.log.Debug("accepted signature",
			log.Stringer("requestID", request.RequestID),
			log.Stringer("authority", sub.Authority),
			log.Int("signatures", len(request.Signers)),
		)
		return &Receipt{
			Status:     Pending,
			Signatures: len(request.Signers),
		}, nil
	}

	event, err := b.execute(ctx, request, existing != nil, sub.Authority, now)
	if err != nil {
		return nil, err
	}

	b.queue.push(event)
	b.metrics.withdrawals.Inc()
	b.metrics.pending.Set(float64(b.state.counters.pending))
	b.log.Info("executed withdrawal",
		log.Stringer("requestID", request.RequestID),
		log.Stringer("recipient", request.Recipient),
		log.String("value", request.Value.Dec()),
		log.Stringer("relayer", sub.Authority),
		log.Int("signatures", len(request.Signers)),
	)
	return &Receipt{
		Status:     Executed,
		Signatures: len(request.Signers),
	}, nil
}

// execute stages the executed request and its event, pays out and commits.
// On any failure the staged writes are discarded. Must be called with the
// write lock held.
func (b *Bridge) execute(
	ctx context.Context,
	request *WithdrawalRequest,
	wasPending bool,
	relayer common.Address,
	now uint64,
) (*Event, error) {
	released, err := safemath.AddUint256(b.state.counters.released, request.Value)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrValueOverflow, err)
	}

	request.Executed = true
	request.ExecutedAt = now
	request.Relayer = relayer
	event := &Event{
		Type:      WithdrawalEvent,
		Recipient: request.Recipient,
		Value:     request.Value.Clone(),
		Timestamp: now,
		RequestID: request.RequestID,
		Relayer:   relayer,
	}
	if err := b.stageExecution(request, event, released, wasPending); err != nil {
		b.state.abort()
		return nil, err
	}

	if err := b.payout.Transfer(ctx, request.Recipient, request.Value.Clone()); err != nil {
		b.state.abort()
		return nil, fmt.Errorf("%w: %w", ErrPayoutFailed, err)
	}

	if err := b.state.commit(); err != nil {
		// The payout already happened. Keep the request marked as
		// executed in memory so this process can't pay it twice.
		b.log.Error("failed to commit executed withdrawal",
			log.Stringer("requestID", request.RequestID),
			log.Err(err),
		)
		b.state.abort()
		b.state.requestCache.Put(request.RequestID, request)
		return nil, err
	}
	return event, nil
}

func (b *Bridge) stageExecution(request *WithdrawalRequest, event *Event, released *uint256.Int, wasPending bool) error {
	if err := b.state.putRequest(request); err != nil {
		return err
	}
	if err := b.state.addEvent(event); err != nil {
		return err
	}
	b.state.counters.released = released
	if wasPending {
		b.state.counters.pending--
	}
	return nil
}

// DepositCount returns the number of accepted deposits.
func (b *Bridge) DepositCount() uint64 {
	b.lock.RLock()
	defer b.lock.RUnlock()

	return b.state.counters.deposits
}

// GetDeposit returns the deposit with [sequence].
func (b *Bridge) GetDeposit(sequence uint64) (*Deposit, error) {
	b.lock.RLock()
	defer b.lock.RUnlock()

	d, err := b.state.getDeposit(sequence)
	if err == database.ErrNotFound {
		return nil, fmt.Errorf("%w: %d", ErrUnknownDeposit, sequence)
	}
	return d, err
}

// WithdrawalStatus returns NonExistent for a request without accepted
// signatures. The error is only set on storage failures.
func (b *Bridge) WithdrawalStatus(requestID common.Hash) (Status, error) {
	b.lock.RLock()
	defer b.lock.RUnlock()

	r, err := b.state.getRequest(requestID)
	switch {
	case err == database.ErrNotFound:
		return NonExistent, nil
	case err != nil:
		return NonExistent, err
	default:
		return r.Status(), nil
	}
}

// GetWithdrawal returns a copy of the request with [requestID].
func (b *Bridge) GetWithdrawal(requestID common.Hash) (*WithdrawalRequest, error) {
	b.lock.RLock()
	defer b.lock.RUnlock()

	r, err := b.state.getRequest(requestID)
	if err == database.ErrNotFound {
		return nil, fmt.Errorf("%w: %s", ErrUnknownRequest, requestID)
	}
	if err != nil {
		return nil, err
	}
	return r.clone(), nil
}

// EventCount returns the length of the event log.
func (b *Bridge) EventCount() uint64 {
	b.lock.RLock()
	defer b.lock.RUnlock()

	return b.state.counters.events
}

// Events returns up to [limit] logged events starting at sequence [from].
func (b *Bridge) Events(from uint64, limit int) ([]*Event, error) {
	if limit <= 0 {
		return nil, nil
	}

	b.lock.RLock()
	defer b.lock.RUnlock()

	return b.state.getEvents(from, limit)
}

// Totals returns the total value ever deposited and released.
func (b *Bridge) Totals() (deposited *uint256.Int, released *uint256.Int) {
	b.lock.RLock()
	defer b.lock.RUnlock()

	return b.state.counters.deposited.Clone(), b.state.counters.released.Clone()
}

// IsPermanent returns true for rejections that will fail again for the
// same input.
func IsPermanent(err error) bool {
	for _, permanent := range []error{
		ErrInvalidConfiguration,
		ErrZeroValueDeposit,
		ErrUnknownAuthority,
		ErrInvalidSignature,
		ErrAlreadyExecuted,
		ErrPayloadMismatch,
		ErrIndexOutOfRange,
		ErrValueOverflow,
		ErrInvalidMessage,
	} {
		if errors.Is(err, permanent) {
			return true
		}
	}
	return false
}
