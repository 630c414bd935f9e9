// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package status

import (
	"testing"

	"github.com/luxfi/geth/common"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/require"

	"github.com/luxfi/ethbridge/cmd/ethbridge/sign"
)

func TestParseFlags(t *testing.T) {
	requestID := common.HexToHash("0x0101")

	tests := []struct {
		name        string
		args        []string
		expected    *common.Hash
		expectedErr error
	}{
		{
			name: "ledger summary",
			args: nil,
		},
		{
			name:     "withdrawal",
			args:     []string{"--request-id", requestID.Hex()},
			expected: &requestID,
		},
		{
			name:        "empty request id",
			args:        []string{"--request-id", ""},
			expectedErr: sign.ErrInvalidRequestID,
		},
		{
			name:        "short request id",
			args:        []string{"--request-id", "0x12"},
			expectedErr: sign.ErrInvalidRequestID,
		},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			require := require.New(t)

			flags := pflag.NewFlagSet("status", pflag.ContinueOnError)
			AddFlags(flags)

			config, err := ParseFlags(flags, test.args)
			require.ErrorIs(err, test.expectedErr)
			if test.expectedErr != nil {
				return
			}
			require.Equal(test.expected, config.RequestID)
		})
	}
}
