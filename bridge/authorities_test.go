// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package bridge

import (
	"testing"

	"github.com/luxfi/geth/common"
	"github.com/stretchr/testify/require"
)

func TestNewAuthoritySet(t *testing.T) {
	tests := []struct {
		name        string
		threshold   int
		addrs       []common.Address
		expectedErr error
	}{
		{
			name:      "1 of 1",
			threshold: 1,
			addrs:     []common.Address{authorityA},
		},
		{
			name:      "all required",
			threshold: 3,
			addrs:     []common.Address{authorityA, authorityB, authorityC},
		},
		{
			name:        "empty threshold checked after authorities",
			threshold:   0,
			addrs:       nil,
			expectedErr: ErrNoAuthorities,
		},
		{
			name:        "zero threshold",
			threshold:   0,
			addrs:       []common.Address{authorityA},
			expectedErr: ErrThresholdTooLow,
		},
		{
			name:        "threshold too high",
			threshold:   2,
			addrs:       []common.Address{authorityA},
			expectedErr: ErrThresholdTooHigh,
		},
		{
			name:        "duplicate",
			threshold:   1,
			addrs:       []common.Address{authorityA, authorityA},
			expectedErr: ErrDuplicateAuthority,
		},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			require := require.New(t)

			set, err := NewAuthoritySet(test.threshold, test.addrs)
			require.ErrorIs(err, test.expectedErr)
			if test.expectedErr != nil {
				require.ErrorIs(err, ErrInvalidConfiguration)
				return
			}
			require.Equal(test.threshold, set.Threshold())
			require.Equal(len(test.addrs), set.Len())
			require.Equal(test.addrs, set.List())
		})
	}
}

func TestAuthoritySetIsolatedFromCaller(t *testing.T) {
	require := require.New(t)

	addrs := []common.Address{authorityA, authorityB}
	set, err := NewAuthoritySet(1, addrs)
	require.NoError(err)

	addrs[0] = authorityC
	list := set.List()
	list[1] = authorityD

	require.Equal([]common.Address{authorityA, authorityB}, set.List())
	require.True(set.Contains(authorityA))
	require.False(set.Contains(authorityC))
}

func TestAuthoritySetEquals(t *testing.T) {
	require := require.New(t)

	ab, err := NewAuthoritySet(1, []common.Address{authorityA, authorityB})
	require.NoError(err)
	ab2, err := NewAuthoritySet(1, []common.Address{authorityA, authorityB})
	require.NoError(err)
	ba, err := NewAuthoritySet(1, []common.Address{authorityB, authorityA})
	require.NoError(err)
	ab2of2, err := NewAuthoritySet(2, []common.Address{authorityA, authorityB})
	require.NoError(err)

	require.True(ab.Equals(ab2))
	require.False(ab.Equals(ba))
	require.False(ab.Equals(ab2of2))
	require.False(ab.Equals(nil))
}
