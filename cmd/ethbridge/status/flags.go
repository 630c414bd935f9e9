// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package status

import (
	"github.com/luxfi/geth/common"
	"github.com/spf13/pflag"

	"github.com/luxfi/ethbridge/cmd/ethbridge/deposit"
	"github.com/luxfi/ethbridge/cmd/ethbridge/sign"
)

const (
	URIKey       = "uri"
	RequestIDKey = "request-id"
)

func AddFlags(flags *pflag.FlagSet) {
	flags.String(URIKey, deposit.DefaultURI, "JSON-RPC endpoint of the coordinator")
	flags.String(RequestIDKey, "", "Withdrawal to report on. Without it the ledger is summarized")
}

type Config struct {
	URI       string
	RequestID *common.Hash
}

func ParseFlags(flags *pflag.FlagSet, args []string) (*Config, error) {
	if err := flags.Parse(args); err != nil {
		return nil, err
	}

	uri, err := flags.GetString(URIKey)
	if err != nil {
		return nil, err
	}

	config := &Config{URI: uri}
	if flags.Changed(RequestIDKey) {
		requestID, err := sign.ParseRequestID(flags, RequestIDKey)
		if err != nil {
			return nil, err
		}
		config.RequestID = &requestID
	}
	return config, nil
}
