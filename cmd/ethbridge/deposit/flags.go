// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package deposit

import (
	"errors"
	"fmt"

	"github.com/holiman/uint256"
	"github.com/luxfi/geth/common"
	"github.com/spf13/pflag"
)

const (
	URIKey       = "uri"
	SenderKey    = "sender"
	RecipientKey = "recipient"
	ValueKey     = "value"

	DefaultURI = "http://127.0.0.1:9650/rpc"
)

var errInvalidAddress = errors.New("invalid address")

func AddFlags(flags *pflag.FlagSet) {
	flags.String(URIKey, DefaultURI, "JSON-RPC endpoint of the coordinator")
	flags.String(SenderKey, "", "Address the value is transferred from (required)")
	flags.String(RecipientKey, "", "Address credited on the counterpart chain. Defaults to the sender")
	flags.String(ValueKey, "", "Value in wei, as a decimal number (required)")
}

type Config struct {
	URI       string
	Sender    common.Address
	Recipient common.Address
	Value     *uint256.Int
}

func ParseFlags(flags *pflag.FlagSet, args []string) (*Config, error) {
	if err := flags.Parse(args); err != nil {
		return nil, err
	}

	uri, err := flags.GetString(URIKey)
	if err != nil {
		return nil, err
	}

	sender, err := ParseAddress(flags, SenderKey)
	if err != nil {
		return nil, err
	}

	recipient := sender
	if flags.Changed(RecipientKey) {
		recipient, err = ParseAddress(flags, RecipientKey)
		if err != nil {
			return nil, err
		}
	}

	valueStr, err := flags.GetString(ValueKey)
	if err != nil {
		return nil, err
	}
	value, err := uint256.FromDecimal(valueStr)
	if err != nil {
		return nil, err
	}

	return &Config{
		URI:       uri,
		Sender:    sender,
		Recipient: recipient,
		Value:     value,
	}, nil
}

// ParseAddress reads the hex address flag [key].
func ParseAddress(flags *pflag.FlagSet, key string) (common.Address, error) {
	addrStr, err := flags.GetString(key)
	if err != nil {
		return common.Address{}, err
	}
	if !common.IsHexAddress(addrStr) {
		return common.Address{}, fmt.Errorf("%w %s: %q", errInvalidAddress, key, addrStr)
	}
	return common.HexToAddress(addrStr), nil
}
