// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package relay

import (
	"context"
	"errors"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/holiman/uint256"
	"github.com/luxfi/geth/common"
	"github.com/stretchr/testify/require"

	"github.com/luxfi/ethbridge/bridge"
)

var errHandlerDown = errors.New("handler down")

func deposit(t *testing.T, b *bridge.Bridge, n int) {
	sender := common.HexToAddress("0x000000000000000000000000000000000000cafe")
	for i := 0; i < n; i++ {
		_, err := b.Deposit(sender, uint256.NewInt(uint64(i+1)))
		require.NoError(t, err)
	}
}

func TestFollowerDeliversInOrder(t *testing.T) {
	require := require.New(t)

	b, _, _ := newTestLedger(t, 1, 1)
	deposit(t, b, 10)

	var delivered []uint64
	f := NewFollower(FollowerConfig{
		Source: &Local{Bridge: b},
		Handle: func(_ context.Context, event *bridge.Event) error {
			// Complete later events first.
			time.Sleep(time.Duration(10-event.Sequence) * time.Millisecond)
			return nil
		},
		Deliver: func(event *bridge.Event) {
			delivered = append(delivered, event.Sequence)
		},
		BatchSize:   4,
		Concurrency: 4,
	})

	ctx := context.Background()
	for _, expected := range []int{4, 4, 2, 0} {
		n, err := f.Step(ctx)
		require.NoError(err)
		require.Equal(expected, n)
	}
	require.Equal([]uint64{0, 1, 2, 3, 4, 5, 6, 7, 8, 9}, delivered)
	require.Equal(uint64(10), f.Next())
}

func TestFollowerKeepsContiguousProgress(t *testing.T) {
	require := require.New(t)

	b, _, _ := newTestLedger(t, 1, 1)
	deposit(t, b, 5)

	path := filepath.Join(t.TempDir(), "checkpoint.toml")
	checkpoint, err := OpenCheckpoint(path)
	require.NoError(err)

	var (
		lock      sync.Mutex
		failed    bool
		delivered []uint64
	)
	config := FollowerConfig{
		Source: &Local{Bridge: b},
		Handle: func(_ context.Context, event *bridge.Event) error {
			lock.Lock()
			defer lock.Unlock()

			if event.Sequence == 2 && !failed {
				failed = true
				return errHandlerDown
			}
			return nil
		},
		Deliver: func(event *bridge.Event) {
			delivered = append(delivered, event.Sequence)
		},
		Checkpoint: checkpoint,
	}

	ctx := context.Background()
	n, err := NewFollower(config).Step(ctx)
	require.ErrorIs(err, errHandlerDown)
	require.Equal(2, n)
	require.Equal([]uint64{0, 1}, delivered)
	require.Equal(uint64(2), checkpoint.Read().NextEvent)

	// A restarted follower resumes from the checkpoint file.
	config.Checkpoint, err = OpenCheckpoint(path)
	require.NoError(err)
	f := NewFollower(config)
	require.Equal(uint64(2), f.Next())

	n, err = f.Step(ctx)
	require.NoError(err)
	require.Equal(3, n)
	require.Equal([]uint64{0, 1, 2, 3, 4}, delivered)
	require.Equal(uint64(5), config.Checkpoint.Read().NextEvent)
}

func TestFollowerRunStopsOnCancel(t *testing.T) {
	require := require.New(t)

	b, _, _ := newTestLedger(t, 1, 1)
	deposit(t, b, 3)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	done := make(chan struct{})
	f := NewFollower(FollowerConfig{
		Source: &Local{Bridge: b},
		Deliver: func(event *bridge.Event) {
			if event.Sequence == 2 {
				close(done)
			}
		},
		PollInterval: time.Millisecond,
	})

	errs := make(chan error, 1)
	go func() {
		errs <- f.Run(ctx)
	}()

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		require.FailNow("follower did not deliver the event log")
	}
	cancel()
	require.ErrorIs(<-errs, context.Canceled)
	require.Equal(uint64(3), f.Next())
}

func TestEventWindow(t *testing.T) {
	tests := []struct {
		name      string
		next      uint64
		count     uint64
		batchSize uint64
		expected  Range
		ok        bool
	}{
		{
			name: "empty log",
		},
		{
			name:     "first event",
			count:    1,
			expected: Range{From: 0, To: 0},
			ok:       true,
		},
		{
			name:     "whole log",
			count:    5,
			expected: Range{From: 0, To: 4},
			ok:       true,
		},
		{
			name:      "bounded by batch",
			next:      2,
			count:     10,
			batchSize: 3,
			expected:  Range{From: 2, To: 4},
			ok:        true,
		},
		{
			name:     "tail of log",
			next:     9,
			count:    10,
			expected: Range{From: 9, To: 9},
			ok:       true,
		},
		{
			name:  "caught up",
			next:  10,
			count: 10,
		},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			require := require.New(t)

			window, ok := eventWindow(test.next, test.count, test.batchSize)
			require.Equal(test.ok, ok)
			require.Equal(test.expected, window)
		})
	}
}
