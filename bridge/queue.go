// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package bridge

import (
	"context"
	"sync"
)

// Queue delivers committed events in commit order. Each event is handed out
// exactly once, to whichever consumer takes it first.
type Queue struct {
	lock   sync.Mutex
	events []*Event
	// signal is closed and replaced whenever events are pushed.
	signal chan struct{}
}

func newQueue() *Queue {
	return &Queue{
		signal: make(chan struct{}),
	}
}

func (q *Queue) push(events ...*Event) {
	if len(events) == 0 {
		return
	}

	q.lock.Lock()
	defer q.lock.Unlock()

	q.events = append(q.events, events...)
	close(q.signal)
	q.signal = make(chan struct{})
}

// Next blocks until an event is available or [ctx] is done.
func (q *Queue) Next(ctx context.Context) (*Event, error) {
	for {
		q.lock.Lock()
		if len(q.events) > 0 {
			event := q.events[0]
			q.events[0] = nil
			q.events = q.events[1:]
			q.lock.Unlock()
			return event, nil
		}
		signal := q.signal
		q.lock.Unlock()

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-signal:
		}
	}
}

// Drain removes and returns every queued event without blocking.
func (q *Queue) Drain() []*Event {
	q.lock.Lock()
	defer q.lock.Unlock()

	events := q.events
	q.events = nil
	return events
}

// Len returns the number of undelivered events.
func (q *Queue) Len() int {
	q.lock.Lock()
	defer q.lock.Unlock()

	return len(q.events)
}
