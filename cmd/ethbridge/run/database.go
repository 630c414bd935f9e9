// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package run

import (
	"encoding/json"
	"fmt"

	"github.com/luxfi/database"
	"github.com/luxfi/database/badgerdb"
	"github.com/luxfi/database/memdb"
	"github.com/luxfi/database/prefixdb"
	"github.com/luxfi/log"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/luxfi/ethbridge/bridge"
	"github.com/luxfi/ethbridge/bridge/ethsig"
	"github.com/luxfi/ethbridge/config"
)

var ledgerPrefix = []byte("ledger")

// openDatabase opens the store backing the ledger. The caller closes it.
func openDatabase(cfg config.Config) (database.Database, error) {
	switch cfg.DBType {
	case memdb.Name:
		return memdb.New(), nil
	case badgerdb.Name:
		dbConfig, err := json.Marshal(badgerdb.Config{
			SyncWrites: cfg.DBSyncWrites,
		})
		if err != nil {
			return nil, err
		}
		db, err := badgerdb.New(cfg.DBPath, dbConfig, cfg.Namespace, nil)
		if err != nil {
			return nil, fmt.Errorf("failed to open %s at %q: %w", cfg.DBType, cfg.DBPath, err)
		}
		return db, nil
	default:
		return nil, fmt.Errorf("%w: unknown type %q", config.ErrInvalidDatabase, cfg.DBType)
	}
}

// newBridge opens the ledger kept in [db], resuming it if one was written
// before.
func newBridge(
	logger log.Logger,
	cfg config.Config,
	db database.Database,
	payout bridge.Payout,
	registerer prometheus.Registerer,
) (*bridge.Bridge, error) {
	verifier, err := ethsig.NewVerifier(cfg.SignatureCacheSize)
	if err != nil {
		return nil, err
	}
	return bridge.New(bridge.Config{
		Threshold:   cfg.Threshold,
		Authorities: cfg.Authorities,
		Verifier:    verifier,
		Payout:      payout,
		DB:          prefixdb.New(ledgerPrefix, db),
		Log:         logger,
		Registerer:  registerer,
		Namespace:   cfg.Namespace,
	})
}
