// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package watch

import (
	"time"

	"github.com/spf13/pflag"

	"github.com/luxfi/ethbridge/cmd/ethbridge/deposit"
)

const (
	URIKey          = "uri"
	CheckpointKey   = "checkpoint"
	BatchSizeKey    = "batch-size"
	PollIntervalKey = "poll-interval"
)

func AddFlags(flags *pflag.FlagSet) {
	flags.String(URIKey, deposit.DefaultURI, "JSON-RPC endpoint of the coordinator")
	flags.String(CheckpointKey, "", "TOML file recording delivered events. Progress is kept in memory when empty")
	flags.Uint64(BatchSizeKey, 64, "Maximum number of events fetched per request")
	flags.Duration(PollIntervalKey, time.Second, "Delay between polls once the event log is caught up")
}

type Config struct {
	URI            string
	CheckpointPath string
	BatchSize      uint64
	PollInterval   time.Duration
}

func ParseFlags(flags *pflag.FlagSet, args []string) (*Config, error) {
	if err := flags.Parse(args); err != nil {
		return nil, err
	}

	uri, err := flags.GetString(URIKey)
	if err != nil {
		return nil, err
	}

	checkpointPath, err := flags.GetString(CheckpointKey)
	if err != nil {
		return nil, err
	}

	batchSize, err := flags.GetUint64(BatchSizeKey)
	if err != nil {
		return nil, err
	}

	pollInterval, err := flags.GetDuration(PollIntervalKey)
	if err != nil {
		return nil, err
	}

	return &Config{
		URI:            uri,
		CheckpointPath: checkpointPath,
		BatchSize:      batchSize,
		PollInterval:   pollInterval,
	}, nil
}
