// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package bridge

import (
	"fmt"

	"github.com/holiman/uint256"
	"github.com/luxfi/crypto"
	"github.com/luxfi/geth/common"
)

const (
	valueLen = 32

	// MessageLen is the length of an encoded withdrawal message:
	// recipient | value | request ID.
	MessageLen = common.AddressLength + valueLen + common.HashLength
)

// Message is the payload every authority signs to approve a withdrawal.
type Message struct {
	RequestID common.Hash
	Recipient common.Address
	Value     *uint256.Int
}

// Bytes encodes the message as recipient (20 bytes), value (32 bytes,
// big-endian) and request ID (32 bytes).
func (m *Message) Bytes() []byte {
	b := make([]byte, MessageLen)
	copy(b, m.Recipient[:])
	if m.Value != nil {
		value := m.Value.Bytes32()
		copy(b[common.AddressLength:], value[:])
	}
	copy(b[common.AddressLength+valueLen:], m.RequestID[:])
	return b
}

// Hash returns the keccak256 hash of the encoded message.
func (m *Message) Hash() common.Hash {
	return common.Hash(crypto.Keccak256Hash(m.Bytes()))
}

// ParseMessage decodes a message produced by Bytes.
func ParseMessage(b []byte) (*Message, error) {
	if len(b) != MessageLen {
		return nil, fmt.Errorf("%w: expected %d bytes but got %d", ErrInvalidMessage, MessageLen, len(b))
	}
	m := &Message{
		Value: new(uint256.Int).SetBytes32(b[common.AddressLength : common.AddressLength+valueLen]),
	}
	copy(m.Recipient[:], b[:common.AddressLength])
	copy(m.RequestID[:], b[common.AddressLength+valueLen:])
	return m, nil
}
