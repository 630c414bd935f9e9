// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package relay

import "github.com/google/btree"

const orderedDegree = 2

type entry[T any] struct {
	key   uint64
	value T
}

// Ordered buffers values that complete out of order and releases them in
// key order, starting at the key passed to NewOrdered. Keys are unique.
type Ordered[T any] struct {
	next    uint64
	pending *btree.BTreeG[entry[T]]
}

func NewOrdered[T any](next uint64) *Ordered[T] {
	return &Ordered[T]{
		next: next,
		pending: btree.NewG(orderedDegree, func(a, b entry[T]) bool {
			return a.key < b.key
		}),
	}
}

// Insert buffers [value]. Keys that were already released are ignored.
func (o *Ordered[T]) Insert(key uint64, value T) {
	if key < o.next {
		return
	}
	o.pending.ReplaceOrInsert(entry[T]{key: key, value: value})
}

// Pop removes and returns the buffered values that continue the released
// prefix without a gap.
func (o *Ordered[T]) Pop() []T {
	var values []T
	for {
		first, ok := o.pending.Min()
		if !ok || first.key != o.next {
			return values
		}
		o.pending.DeleteMin()
		values = append(values, first.value)
		o.next++
	}
}

// Next returns the key of the next value to be released.
func (o *Ordered[T]) Next() uint64 {
	return o.next
}

// Len returns the number of buffered values.
func (o *Ordered[T]) Len() int {
	return o.pending.Len()
}
