// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package mockable

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestClockSet(t *testing.T) {
	require := require.New(t)

	var clock Clock
	clock.Set(time.Unix(1_000_000, 0))
	require.Equal(uint64(1_000_000), clock.Unix())

	clock.Advance(time.Minute)
	require.Equal(uint64(1_000_060), clock.Unix())

	clock.Set(time.Unix(-5, 0))
	require.Zero(clock.Unix())

	clock.Sync()
	require.WithinDuration(time.Now(), clock.Time(), time.Second)
}
