// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package bridge

import (
	"context"
	"sync"

	"github.com/holiman/uint256"
	"github.com/luxfi/geth/common"

	safemath "github.com/luxfi/ethbridge/utils/math"
)

var _ Payout = (*Credits)(nil)

// Payout releases value to a recipient once a withdrawal reaches quorum.
// Transfer is called at most once per request, while the ledger is locked,
// so it must return promptly.
type Payout interface {
	Transfer(ctx context.Context, recipient common.Address, value *uint256.Int) error
}

// Credits is an in-process Payout that credits recipients with released
// value.
type Credits struct {
	lock     sync.RWMutex
	balances map[common.Address]*uint256.Int
}

func NewCredits() *Credits {
	return &Credits{
		balances: make(map[common.Address]*uint256.Int),
	}
}

func (c *Credits) Transfer(_ context.Context, recipient common.Address, value *uint256.Int) error {
	c.lock.Lock()
	defer c.lock.Unlock()

	balance, ok := c.balances[recipient]
	if !ok {
		balance = new(uint256.Int)
	}
	newBalance, err := safemath.AddUint256(balance, value)
	if err != nil {
		return err
	}
	c.balances[recipient] = newBalance
	return nil
}

// Balance returns the total value credited to [addr].
func (c *Credits) Balance(addr common.Address) *uint256.Int {
	c.lock.RLock()
	defer c.lock.RUnlock()

	if balance, ok := c.balances[addr]; ok {
		return balance.Clone()
	}
	return new(uint256.Int)
}
