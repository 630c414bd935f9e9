// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package bridge

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidConfiguration  = errors.New("invalid configuration")
	ErrNoAuthorities         = fmt.Errorf("%w: no authorities", ErrInvalidConfiguration)
	ErrThresholdTooLow       = fmt.Errorf("%w: threshold must be at least 1", ErrInvalidConfiguration)
	ErrThresholdTooHigh      = fmt.Errorf("%w: threshold exceeds number of authorities", ErrInvalidConfiguration)
	ErrDuplicateAuthority    = fmt.Errorf("%w: duplicate authority", ErrInvalidConfiguration)
	ErrConfigurationMismatch = fmt.Errorf("%w: authorities differ from persisted ledger", ErrInvalidConfiguration)
	ErrNilVerifier           = fmt.Errorf("%w: no signature verifier", ErrInvalidConfiguration)
	ErrNilPayout             = fmt.Errorf("%w: no payout", ErrInvalidConfiguration)

	ErrZeroValueDeposit = errors.New("zero value deposit")
	ErrUnknownAuthority = errors.New("unknown authority")
	ErrInvalidSignature = errors.New("invalid signature")
	ErrAlreadyExecuted  = errors.New("withdrawal already executed")
	ErrPayloadMismatch  = errors.New("payload differs from earlier signatures")
	ErrIndexOutOfRange  = errors.New("index out of range")
	ErrPayoutFailed     = errors.New("payout failed")
	ErrValueOverflow    = errors.New("value overflows ledger totals")
	ErrUnknownDeposit   = errors.New("unknown deposit")
	ErrUnknownRequest   = errors.New("unknown withdrawal request")
	ErrInvalidMessage   = errors.New("invalid withdrawal message")
)
