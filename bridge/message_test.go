// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package bridge

import (
	"testing"

	"github.com/holiman/uint256"
	"github.com/luxfi/geth/common"
	"github.com/stretchr/testify/require"
)

func TestMessageLayout(t *testing.T) {
	require := require.New(t)

	msg := &Message{
		RequestID: common.HexToHash("0xff"),
		Recipient: common.HexToAddress("0x0102030405060708090a0b0c0d0e0f1011121314"),
		Value:     uint256.NewInt(0x0abc),
	}
	b := msg.Bytes()
	require.Len(b, MessageLen)
	require.Equal(84, MessageLen)

	require.Equal(msg.Recipient[:], b[:20])
	require.Equal(make([]byte, 30), b[20:50])
	require.Equal([]byte{0x0a, 0xbc}, b[50:52])
	require.Equal(msg.RequestID[:], b[52:])

	parsed, err := ParseMessage(b)
	require.NoError(err)
	require.Equal(msg, parsed)
	require.Equal(msg.Hash(), parsed.Hash())
}

func TestMessageNilValueEncodesZero(t *testing.T) {
	require := require.New(t)

	withNil := &Message{RequestID: requestID, Recipient: recipient}
	withZero := &Message{RequestID: requestID, Recipient: recipient, Value: new(uint256.Int)}
	require.Equal(withZero.Bytes(), withNil.Bytes())
}

func TestMessageBindsEveryField(t *testing.T) {
	require := require.New(t)

	base := &Message{RequestID: requestID, Recipient: recipient, Value: uint256.NewInt(1)}
	for _, other := range []*Message{
		{RequestID: common.HexToHash("0x02"), Recipient: recipient, Value: uint256.NewInt(1)},
		{RequestID: requestID, Recipient: depositor, Value: uint256.NewInt(1)},
		{RequestID: requestID, Recipient: recipient, Value: uint256.NewInt(2)},
	} {
		require.NotEqual(base.Hash(), other.Hash())
	}
}

func TestParseMessageInvalidLength(t *testing.T) {
	for _, length := range []int{0, MessageLen - 1, MessageLen + 1} {
		_, err := ParseMessage(make([]byte, length))
		require.ErrorIs(t, err, ErrInvalidMessage)
	}
}
