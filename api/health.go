// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package api

import (
	stdjson "encoding/json"
	"net/http"

	"github.com/luxfi/ethbridge/bridge"
	"github.com/luxfi/ethbridge/utils/json"
)

// HealthReply is served by the health handler.
type HealthReply struct {
	Healthy      bool        `json:"healthy"`
	Threshold    json.Uint32 `json:"threshold"`
	Authorities  json.Uint32 `json:"authorities"`
	Deposits     json.Uint64 `json:"deposits"`
	Events       json.Uint64 `json:"events"`
	QueuedEvents json.Uint32 `json:"queuedEvents"`
}

// NewHealthHandler reports the ledger counters. Only GET and HEAD are
// allowed.
func NewHealthHandler(b *bridge.Bridge) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet && r.Method != http.MethodHead {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}

		reply := HealthReply{
			Healthy:      true,
			Threshold:    json.Uint32(b.RequiredSignatures()),
			Authorities:  json.Uint32(len(b.Authorities())),
			Deposits:     json.Uint64(b.DepositCount()),
			Events:       json.Uint64(b.EventCount()),
			QueuedEvents: json.Uint32(b.Queue().Len()),
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_ = stdjson.NewEncoder(w).Encode(reply)
	})
}
