// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package bridge

import "github.com/luxfi/geth/common"

// Verifier checks that [signature] was produced by [signer] over [payload].
// Implementations must be safe for concurrent use.
type Verifier interface {
	Verify(payload []byte, signer common.Address, signature []byte) error
}

// VerifierFunc adapts a function to the Verifier interface.
type VerifierFunc func(payload []byte, signer common.Address, signature []byte) error

func (f VerifierFunc) Verify(payload []byte, signer common.Address, signature []byte) error {
	return f(payload, signer, signature)
}
