// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package units

import "github.com/holiman/uint256"

// Denominations of value. Wei is the base unit (18 decimals).
const (
	Wei    uint64 = 1
	KWei   uint64 = 1000 * Wei
	MWei   uint64 = 1000 * KWei
	GWei   uint64 = 1000 * MWei
	Szabo  uint64 = 1000 * GWei
	Finney uint64 = 1000 * Szabo
	Ether  uint64 = 1000 * Finney
)

// Ethers returns n ether denominated in wei.
func Ethers(n uint64) *uint256.Int {
	return new(uint256.Int).Mul(uint256.NewInt(n), uint256.NewInt(Ether))
}
