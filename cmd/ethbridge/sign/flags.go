// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package sign

import (
	"errors"
	"fmt"
	"time"

	"github.com/holiman/uint256"
	"github.com/luxfi/geth/common"
	"github.com/luxfi/geth/common/hexutil"
	"github.com/spf13/pflag"

	"github.com/luxfi/ethbridge/bridge"
	"github.com/luxfi/ethbridge/bridge/ethsig"
	"github.com/luxfi/ethbridge/cmd/ethbridge/deposit"
)

const (
	URIKey        = "uri"
	PrivateKeyKey = "private-key"
	RequestIDKey  = "request-id"
	RecipientKey  = "recipient"
	ValueKey      = "value"
	AttemptsKey   = "attempts"
	DelayKey      = "retry-delay"
)

var ErrInvalidRequestID = errors.New("invalid request id")

func AddFlags(flags *pflag.FlagSet) {
	flags.String(URIKey, deposit.DefaultURI, "JSON-RPC endpoint of the coordinator")
	flags.String(PrivateKeyKey, "", "Hex encoded private key of the signing authority (required)")
	flags.String(RequestIDKey, "", "32 byte hex identifier of the counterpart transfer (required)")
	flags.String(RecipientKey, "", "Address the withdrawal releases value to (required)")
	flags.String(ValueKey, "", "Value in wei, as a decimal number (required)")
	flags.Uint(AttemptsKey, 5, "Number of submission attempts")
	flags.Duration(DelayKey, 500*time.Millisecond, "Delay between submission attempts")
}

type Config struct {
	URI      string
	Signer   *ethsig.Signer
	Message  *bridge.Message
	Attempts uint
	Delay    time.Duration
}

func ParseFlags(flags *pflag.FlagSet, args []string) (*Config, error) {
	if err := flags.Parse(args); err != nil {
		return nil, err
	}

	uri, err := flags.GetString(URIKey)
	if err != nil {
		return nil, err
	}

	keyStr, err := flags.GetString(PrivateKeyKey)
	if err != nil {
		return nil, err
	}
	signer, err := ethsig.ParseSigner(keyStr)
	if err != nil {
		return nil, err
	}

	requestID, err := ParseRequestID(flags, RequestIDKey)
	if err != nil {
		return nil, err
	}

	recipient, err := deposit.ParseAddress(flags, RecipientKey)
	if err != nil {
		return nil, err
	}

	valueStr, err := flags.GetString(ValueKey)
	if err != nil {
		return nil, err
	}
	value, err := uint256.FromDecimal(valueStr)
	if err != nil {
		return nil, err
	}

	attempts, err := flags.GetUint(AttemptsKey)
	if err != nil {
		return nil, err
	}

	delay, err := flags.GetDuration(DelayKey)
	if err != nil {
		return nil, err
	}

	return &Config{
		URI:    uri,
		Signer: signer,
		Message: &bridge.Message{
			RequestID: requestID,
			Recipient: recipient,
			Value:     value,
		},
		Attempts: attempts,
		Delay:    delay,
	}, nil
}

// ParseRequestID reads the flag [key] as a 0x prefixed 32 byte hex string.
func ParseRequestID(flags *pflag.FlagSet, key string) (common.Hash, error) {
	idStr, err := flags.GetString(key)
	if err != nil {
		return common.Hash{}, err
	}
	id, err := hexutil.Decode(idStr)
	if err != nil {
		return common.Hash{}, fmt.Errorf("%w %s: %q: %w", ErrInvalidRequestID, key, idStr, err)
	}
	if len(id) != common.HashLength {
		return common.Hash{}, fmt.Errorf("%w %s: expected %d bytes but got %d", ErrInvalidRequestID, key, common.HashLength, len(id))
	}
	return common.BytesToHash(id), nil
}
