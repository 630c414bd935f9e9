// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package units

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestEthers(t *testing.T) {
	require := require.New(t)

	require.Equal(uint64(1_000_000_000_000_000_000), Ether)
	require.Equal("1000000000000000000", Ethers(1).Dec())
	require.Equal("100000000000000000000", Ethers(100).Dec())
}
