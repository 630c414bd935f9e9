// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package bridge_test

import (
	"context"
	"testing"

	"github.com/holiman/uint256"
	"github.com/luxfi/crypto"
	"github.com/luxfi/geth/common"
	"github.com/stretchr/testify/require"

	"github.com/luxfi/ethbridge/bridge"
	"github.com/luxfi/ethbridge/bridge/ethsig"
	"github.com/luxfi/ethbridge/utils/units"
)

func newSigners(t *testing.T, n int) []*ethsig.Signer {
	signers := make([]*ethsig.Signer, n)
	for i := range signers {
		key, err := crypto.GenerateKey()
		require.NoError(t, err)
		signers[i] = ethsig.NewSigner(key)
	}
	return signers
}

func TestSignedWithdrawal(t *testing.T) {
	require := require.New(t)

	signers := newSigners(t, 3)
	authorities := make([]common.Address, len(signers))
	for i, signer := range signers {
		authorities[i] = signer.Address()
	}

	verifier, err := ethsig.NewVerifier(64)
	require.NoError(err)
	credits := bridge.NewCredits()
	b, err := bridge.New(bridge.Config{
		Threshold:   2,
		Authorities: authorities,
		Verifier:    verifier,
		Payout:      credits,
	})
	require.NoError(err)

	recipient := common.HexToAddress("0x000000000000000000000000000000000000dead")
	msg := &bridge.Message{
		RequestID: common.Hash(crypto.Keccak256Hash([]byte("withdrawal 1"))),
		Recipient: recipient,
		Value:     units.Ethers(2),
	}
	submit := func(signer *ethsig.Signer, authority common.Address) (*bridge.Receipt, error) {
		sig, err := signer.Sign(msg.Bytes())
		require.NoError(err)
		return b.SubmitSignature(context.Background(), &bridge.Submission{
			RequestID: msg.RequestID,
			Recipient: msg.Recipient,
			Value:     msg.Value,
			Authority: authority,
			Signature: sig,
		})
	}

	// A signature attributed to the wrong authority is rejected.
	_, err = submit(signers[0], authorities[1])
	require.ErrorIs(err, bridge.ErrInvalidSignature)

	receipt, err := submit(signers[0], authorities[0])
	require.NoError(err)
	require.Equal(bridge.Pending, receipt.Status)

	receipt, err = submit(signers[2], authorities[2])
	require.NoError(err)
	require.Equal(bridge.Executed, receipt.Status)
	require.Equal(units.Ethers(2), credits.Balance(recipient))

	_, err = submit(signers[1], authorities[1])
	require.ErrorIs(err, bridge.ErrAlreadyExecuted)

	events := b.Queue().Drain()
	require.Len(events, 1)
	require.Equal(bridge.WithdrawalEvent, events[0].Type)
	require.Equal(authorities[2], events[0].Relayer)
	require.Equal(uint256.NewInt(0).Mul(units.Ethers(1), uint256.NewInt(2)), events[0].Value)
}
