// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package relay

// Range is an inclusive window of heights.
type Range struct {
	From uint64
	To   uint64
}

func (r Range) Len() uint64 {
	return r.To - r.From + 1
}

// NextRange returns the window following [lastChecked] whose heights are at
// least [confirmations] below [head]. A zero [maxBatch] does not bound the
// window. False is returned if no new height is confirmed yet.
func NextRange(lastChecked, head, confirmations, maxBatch uint64) (Range, bool) {
	if head < confirmations {
		return Range{}, false
	}
	confirmed := head - confirmations
	if lastChecked >= confirmed {
		return Range{}, false
	}

	r := Range{
		From: lastChecked + 1,
		To:   confirmed,
	}
	if maxBatch > 0 && r.Len() > maxBatch {
		r.To = r.From + maxBatch - 1
	}
	return r, true
}
