// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package deposit

import (
	"testing"

	"github.com/holiman/uint256"
	"github.com/luxfi/geth/common"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/require"

	"github.com/luxfi/ethbridge/utils/units"
)

func TestParseFlags(t *testing.T) {
	sender := common.HexToAddress("0x00000000000000000000000000000000000000c1")
	recipient := common.HexToAddress("0x00000000000000000000000000000000000000d1")

	tests := []struct {
		name        string
		args        []string
		expected    *Config
		expectedErr error
	}{
		{
			name: "recipient defaults to sender",
			args: []string{"--sender", sender.Hex(), "--value", "1000000000000000000"},
			expected: &Config{
				URI:       DefaultURI,
				Sender:    sender,
				Recipient: sender,
				Value:     units.Ethers(1),
			},
		},
		{
			name: "explicit recipient",
			args: []string{
				"--uri", "http://localhost:1234/rpc",
				"--sender", sender.Hex(),
				"--recipient", recipient.Hex(),
				"--value", "1",
			},
			expected: &Config{
				URI:       "http://localhost:1234/rpc",
				Sender:    sender,
				Recipient: recipient,
				Value:     uint256.NewInt(1),
			},
		},
		{
			name:        "missing sender",
			args:        []string{"--value", "1"},
			expectedErr: errInvalidAddress,
		},
		{
			name:        "malformed recipient",
			args:        []string{"--sender", sender.Hex(), "--recipient", "0x1234", "--value", "1"},
			expectedErr: errInvalidAddress,
		},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			require := require.New(t)

			flags := pflag.NewFlagSet("deposit", pflag.ContinueOnError)
			AddFlags(flags)

			config, err := ParseFlags(flags, test.args)
			require.ErrorIs(err, test.expectedErr)
			if test.expectedErr != nil {
				return
			}
			require.Equal(test.expected.URI, config.URI)
			require.Equal(test.expected.Sender, config.Sender)
			require.Equal(test.expected.Recipient, config.Recipient)
			require.Zero(test.expected.Value.Cmp(config.Value))
		})
	}
}
