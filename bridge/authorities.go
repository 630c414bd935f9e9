// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package bridge

import (
	"fmt"
	"slices"

	"github.com/luxfi/geth/common"
	"github.com/luxfi/math/set"
)

// AuthoritySet is the fixed, ordered set of authorities together with the
// number of distinct authority signatures required to release a withdrawal.
type AuthoritySet struct {
	threshold int
	addrs     []common.Address
	members   set.Set[common.Address]
}

// NewAuthoritySet verifies [threshold] against [addrs]. The order of [addrs]
// is kept for enumeration.
func NewAuthoritySet(threshold int, addrs []common.Address) (*AuthoritySet, error) {
	switch {
	case len(addrs) == 0:
		return nil, ErrNoAuthorities
	case threshold < 1:
		return nil, ErrThresholdTooLow
	case threshold > len(addrs):
		return nil, fmt.Errorf("%w: %d > %d", ErrThresholdTooHigh, threshold, len(addrs))
	}

	members := set.NewSet[common.Address](len(addrs))
	for _, addr := range addrs {
		if members.Contains(addr) {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateAuthority, addr)
		}
		members.Add(addr)
	}
	return &AuthoritySet{
		threshold: threshold,
		addrs:     slices.Clone(addrs),
		members:   members,
	}, nil
}

// Threshold returns the number of signatures required to execute a
// withdrawal.
func (a *AuthoritySet) Threshold() int {
	return a.threshold
}

// Len returns the number of authorities.
func (a *AuthoritySet) Len() int {
	return len(a.addrs)
}

// Get returns the authority at [index] in construction order.
func (a *AuthoritySet) Get(index int) (common.Address, error) {
	if index < 0 || index >= len(a.addrs) {
		return common.Address{}, fmt.Errorf("%w: %d not in [0, %d)", ErrIndexOutOfRange, index, len(a.addrs))
	}
	return a.addrs[index], nil
}

// Contains returns true if [addr] is one of the authorities.
func (a *AuthoritySet) Contains(addr common.Address) bool {
	return a.members.Contains(addr)
}

// List returns a copy of the authorities in construction order.
func (a *AuthoritySet) List() []common.Address {
	return slices.Clone(a.addrs)
}

// Equals returns true if both sets have the same threshold and the same
// authorities in the same order.
func (a *AuthoritySet) Equals(other *AuthoritySet) bool {
	if a == other {
		return true
	}
	if a == nil || other == nil {
		return false
	}
	return a.threshold == other.threshold && slices.Equal(a.addrs, other.addrs)
}
