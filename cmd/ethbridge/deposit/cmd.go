// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package deposit

import (
	"log"

	"github.com/spf13/cobra"

	"github.com/luxfi/ethbridge/api"
)

func Command() *cobra.Command {
	c := &cobra.Command{
		Use:   "deposit",
		Short: "Records a deposit with a coordinator",
		RunE:  depositFunc,
	}
	flags := c.Flags()
	AddFlags(flags)
	return c
}

func depositFunc(c *cobra.Command, args []string) error {
	config, err := ParseFlags(c.Flags(), args)
	if err != nil {
		return err
	}

	client := api.NewClient(config.URI)
	sequence, err := client.DepositFor(c.Context(), config.Sender, config.Recipient, config.Value)
	if err != nil {
		return err
	}
	log.Printf("recorded deposit %d of %s wei for %s\n", sequence, config.Value.Dec(), config.Recipient)
	return nil
}
