// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package ethsig

import (
	"testing"

	"github.com/luxfi/crypto"
	"github.com/luxfi/geth/common"
	"github.com/stretchr/testify/require"
)

func newTestSigner(t *testing.T) *Signer {
	key, err := crypto.GenerateKey()
	require.NoError(t, err)
	return NewSigner(key)
}

func TestSignAndVerify(t *testing.T) {
	require := require.New(t)

	signer := newTestSigner(t)
	verifier, err := NewVerifier(16)
	require.NoError(err)

	payload := []byte("withdraw 1 ether")
	sig, err := signer.Sign(payload)
	require.NoError(err)
	require.Len(sig, SignatureLen)
	require.Contains([]byte{27, 28}, sig[64])

	require.NoError(verifier.Verify(payload, signer.Address(), sig))

	// Served from the cache the second time.
	require.NoError(verifier.Verify(payload, signer.Address(), sig))
	require.Equal(1, verifier.recovered.Len())
}

func TestVerifyAcceptsRawRecoveryID(t *testing.T) {
	require := require.New(t)

	signer := newTestSigner(t)
	verifier, err := NewVerifier(16)
	require.NoError(err)

	payload := []byte("payload")
	sig, err := signer.Sign(payload)
	require.NoError(err)
	sig[64] -= 27

	require.NoError(verifier.Verify(payload, signer.Address(), sig))
}

func TestVerifyFailures(t *testing.T) {
	signer := newTestSigner(t)
	other := newTestSigner(t)
	payload := []byte("payload")

	sig, err := signer.Sign(payload)
	require.NoError(t, err)

	badV := common.CopyBytes(sig)
	badV[64] = 29

	tests := []struct {
		name        string
		payload     []byte
		signer      common.Address
		signature   []byte
		expectedErr error
	}{
		{
			name:        "short signature",
			payload:     payload,
			signer:      signer.Address(),
			signature:   sig[:64],
			expectedErr: ErrInvalidSignatureLen,
		},
		{
			name:        "bad recovery id",
			payload:     payload,
			signer:      signer.Address(),
			signature:   badV,
			expectedErr: ErrInvalidRecoveryID,
		},
		{
			name:        "wrong signer",
			payload:     payload,
			signer:      other.Address(),
			signature:   sig,
			expectedErr: ErrSignerMismatch,
		},
		{
			name:        "different payload",
			payload:     []byte("other payload"),
			signer:      signer.Address(),
			signature:   sig,
			expectedErr: ErrSignerMismatch,
		},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			verifier, err := NewVerifier(16)
			require.NoError(t, err)

			err = verifier.Verify(test.payload, test.signer, test.signature)
			require.ErrorIs(t, err, test.expectedErr)
		})
	}
}

func TestTextHash(t *testing.T) {
	// Hash of "hello" as produced by eth_sign / personal_sign.
	require.Equal(t,
		"0x50b2c43fd39106bafbba0da34fc430e1f91e3c96ea2acee2bc34119f92b37750",
		common.BytesToHash(TextHash([]byte("hello"))).Hex(),
	)
}

func TestParseSigner(t *testing.T) {
	require := require.New(t)

	signer, err := ParseSigner("b71c71a67e1177ad4e901695e1b4b9ee17ae16c6668d313eac2f96dbcda3f291")
	require.NoError(err)
	require.Equal(common.HexToAddress("0x71562b71999873DB5b286dF957af199Ec94617F7"), signer.Address())

	_, err = ParseSigner("not hex")
	require.Error(err) //nolint:forbidigo // error comes from geth
}
