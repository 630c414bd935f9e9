// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package relay

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/luxfi/log"
	"golang.org/x/sync/errgroup"

	"github.com/luxfi/ethbridge/bridge"
)

const (
	defaultBatchSize    = 128
	defaultConcurrency  = 8
	defaultPollInterval = time.Second
)

// HandleFunc processes a single event. It may be called concurrently for
// events of the same window.
type HandleFunc func(ctx context.Context, event *bridge.Event) error

// DeliverFunc is called once per handled event, in event log order.
type DeliverFunc func(event *bridge.Event)

type FollowerConfig struct {
	Source EventSource
	// Handle defaults to accepting every event.
	Handle HandleFunc
	// Deliver is optional.
	Deliver DeliverFunc
	// Checkpoint is optional. Without it the follower starts at the first
	// event and keeps its progress in memory.
	Checkpoint *CheckpointFile

	BatchSize    uint64
	Concurrency  int
	PollInterval time.Duration
	Log          log.Logger
}

// Follower tails the event log of a ledger. Events are handled concurrently
// within a window but delivered and checkpointed in log order, so a failed
// event is retried together with everything after it.
type Follower struct {
	config FollowerConfig
	next   uint64
}

func NewFollower(config FollowerConfig) *Follower {
	if config.Handle == nil {
		config.Handle = func(context.Context, *bridge.Event) error {
			return nil
		}
	}
	if config.BatchSize == 0 {
		config.BatchSize = defaultBatchSize
	}
	if config.Concurrency <= 0 {
		config.Concurrency = defaultConcurrency
	}
	if config.PollInterval <= 0 {
		config.PollInterval = defaultPollInterval
	}
	if config.Log == nil {
		config.Log = log.NoLog{}
	}

	f := &Follower{config: config}
	if config.Checkpoint != nil {
		f.next = config.Checkpoint.Read().NextEvent
	}
	return f
}

// Next returns the sequence of the first event that was not delivered.
func (f *Follower) Next() uint64 {
	return f.next
}

// Run follows the event log until [ctx] is done. Failed windows are retried
// after the poll interval.
func (f *Follower) Run(ctx context.Context) error {
	ticker := time.NewTicker(f.config.PollInterval)
	defer ticker.Stop()

	for {
		delivered, err := f.Step(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			f.config.Log.Warn("failed to follow event log",
				log.Uint64("next", f.next),
				log.Err(err),
			)
		}
		if delivered > 0 && err == nil {
			continue
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
}

// Step handles the next window of the event log and returns the number of
// delivered events. Progress made before a failure is kept.
func (f *Follower) Step(ctx context.Context) (int, error) {
	count, err := f.config.Source.EventCount(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to fetch event count: %w", err)
	}

	window, ok := eventWindow(f.next, count, f.config.BatchSize)
	if !ok {
		return 0, nil
	}
	events, err := f.config.Source.Events(ctx, window.From, int(window.Len()))
	if err != nil {
		return 0, fmt.Errorf("failed to fetch events [%d, %d]: %w", window.From, window.To, err)
	}

	var (
		lock      sync.Mutex
		ordered   = NewOrdered[*bridge.Event](f.next)
		delivered int
	)
	eg, egCtx := errgroup.WithContext(ctx)
	eg.SetLimit(f.config.Concurrency)
	for _, event := range events {
		eg.Go(func() error {
			if err := f.config.Handle(egCtx, event); err != nil {
				return fmt.Errorf("failed to handle event %d: %w", event.Sequence, err)
			}

			lock.Lock()
			defer lock.Unlock()

			ordered.Insert(event.Sequence, event)
			for _, e := range ordered.Pop() {
				if f.config.Deliver != nil {
					f.config.Deliver(e)
				}
				delivered++
			}
			return nil
		})
	}
	err = eg.Wait()

	f.next = ordered.Next()
	if f.config.Checkpoint != nil {
		checkpoint := f.config.Checkpoint.Read()
		checkpoint.NextEvent = f.next
		if cerr := f.config.Checkpoint.Write(checkpoint); cerr != nil && err == nil {
			err = cerr
		}
	}
	return delivered, err
}

// eventWindow returns the sequences of the next batch of at most [batchSize]
// events, given that [next] of the [count] logged events were delivered.
//
// Heights count events from one: event i is at height i+1. The last checked
// height is then the number of delivered events, and a window of heights
// [h, k] holds the events [h-1, k-1]. The log is final on commit, so no
// confirmations are required.
func eventWindow(next, count, batchSize uint64) (Range, bool) {
	heights, ok := NextRange(next, count, 0, batchSize)
	if !ok {
		return Range{}, false
	}
	return Range{
		From: heights.From - 1,
		To:   heights.To - 1,
	}, true
}
