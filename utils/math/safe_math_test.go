// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package math

import (
	"math"
	"testing"

	"github.com/holiman/uint256"
	"github.com/stretchr/testify/require"
)

func TestAdd(t *testing.T) {
	require := require.New(t)

	sum, err := Add[uint64](1, 2)
	require.NoError(err)
	require.Equal(uint64(3), sum)

	_, err = Add[uint64](math.MaxUint64, 1)
	require.ErrorIs(err, ErrOverflow)

	_, err = Add[uint8](200, 56)
	require.ErrorIs(err, ErrOverflow)
}

func TestSub(t *testing.T) {
	require := require.New(t)

	diff, err := Sub[uint64](3, 2)
	require.NoError(err)
	require.Equal(uint64(1), diff)

	_, err = Sub[uint64](2, 3)
	require.ErrorIs(err, ErrUnderflow)
}

func TestAddUint256(t *testing.T) {
	tests := []struct {
		name        string
		a           *uint256.Int
		b           *uint256.Int
		expected    *uint256.Int
		expectedErr error
	}{
		{
			name:     "small",
			a:        uint256.NewInt(5),
			b:        uint256.NewInt(7),
			expected: uint256.NewInt(12),
		},
		{
			name:     "beyond uint64",
			a:        uint256.NewInt(math.MaxUint64),
			b:        uint256.NewInt(1),
			expected: new(uint256.Int).Lsh(uint256.NewInt(1), 64),
		},
		{
			name:        "overflow",
			a:           new(uint256.Int).SetAllOne(),
			b:           uint256.NewInt(1),
			expectedErr: ErrOverflow,
		},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			require := require.New(t)

			a := test.a.Clone()
			sum, err := AddUint256(test.a, test.b)
			require.ErrorIs(err, test.expectedErr)
			require.Equal(a, test.a)
			if test.expectedErr != nil {
				return
			}
			require.Equal(test.expected, sum)
		})
	}
}

func TestSubUint256(t *testing.T) {
	require := require.New(t)

	diff, err := SubUint256(uint256.NewInt(10), uint256.NewInt(4))
	require.NoError(err)
	require.Equal(uint256.NewInt(6), diff)

	_, err = SubUint256(uint256.NewInt(4), uint256.NewInt(10))
	require.ErrorIs(err, ErrUnderflow)
}
