// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package watch

import (
	"context"
	"errors"
	"log"

	"github.com/spf13/cobra"

	"github.com/luxfi/ethbridge/api"
	"github.com/luxfi/ethbridge/bridge"
	"github.com/luxfi/ethbridge/relay"
)

func Command() *cobra.Command {
	c := &cobra.Command{
		Use:   "watch",
		Short: "Prints the event log of a coordinator as it grows",
		RunE:  watchFunc,
	}
	flags := c.Flags()
	AddFlags(flags)
	return c
}

func watchFunc(c *cobra.Command, args []string) error {
	config, err := ParseFlags(c.Flags(), args)
	if err != nil {
		return err
	}

	followerConfig := relay.FollowerConfig{
		Source:       api.NewClient(config.URI),
		Deliver:      printEvent,
		BatchSize:    config.BatchSize,
		PollInterval: config.PollInterval,
	}
	if config.CheckpointPath != "" {
		checkpoint, err := relay.OpenCheckpoint(config.CheckpointPath)
		if err != nil {
			return err
		}
		followerConfig.Checkpoint = checkpoint
	}

	follower := relay.NewFollower(followerConfig)
	log.Printf("following events from %d\n", follower.Next())

	err = follower.Run(c.Context())
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

func printEvent(event *bridge.Event) {
	switch event.Type {
	case bridge.DepositEvent:
		log.Printf("event %d: deposit %d of %s wei for %s\n",
			event.Sequence,
			event.Deposit,
			event.Value.Dec(),
			event.Recipient,
		)
	case bridge.WithdrawalEvent:
		log.Printf("event %d: withdrawal %s of %s wei to %s relayed by %s\n",
			event.Sequence,
			event.RequestID,
			event.Value.Dec(),
			event.Recipient,
			event.Relayer,
		)
	default:
		log.Printf("event %d: %s\n", event.Sequence, event.Type)
	}
}
