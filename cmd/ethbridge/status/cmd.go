// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package status

import (
	"context"
	"errors"
	"log"

	"github.com/luxfi/geth/common"
	"github.com/spf13/cobra"

	"github.com/luxfi/ethbridge/api"
	"github.com/luxfi/ethbridge/bridge"
)

func Command() *cobra.Command {
	c := &cobra.Command{
		Use:   "status",
		Short: "Reports the state of a coordinator or of one withdrawal",
		RunE:  statusFunc,
	}
	flags := c.Flags()
	AddFlags(flags)
	return c
}

func statusFunc(c *cobra.Command, args []string) error {
	config, err := ParseFlags(c.Flags(), args)
	if err != nil {
		return err
	}

	client := api.NewClient(config.URI)
	if config.RequestID != nil {
		return withdrawalStatus(c.Context(), client, *config.RequestID)
	}
	return ledgerStatus(c.Context(), client)
}

func ledgerStatus(ctx context.Context, client *api.Client) error {
	threshold, authorities, err := client.Authorities(ctx)
	if err != nil {
		return err
	}
	deposits, err := client.DepositCount(ctx)
	if err != nil {
		return err
	}
	deposited, released, err := client.Totals(ctx)
	if err != nil {
		return err
	}

	log.Printf("%d of %d authorities required\n", threshold, len(authorities))
	for i, authority := range authorities {
		log.Printf("authority %d: %s\n", i, authority)
	}
	log.Printf("%d deposits totaling %s wei, %s wei released\n", deposits, deposited.Dec(), released.Dec())
	return nil
}

func withdrawalStatus(ctx context.Context, client *api.Client, requestID common.Hash) error {
	request, err := client.GetWithdrawal(ctx, requestID)
	if errors.Is(err, bridge.ErrUnknownRequest) {
		log.Printf("withdrawal %s is %s\n", requestID, bridge.NonExistent)
		return nil
	}
	if err != nil {
		return err
	}

	log.Printf("withdrawal %s is %s\n", requestID, request.Status())
	log.Printf("releases %s wei to %s\n", request.Value.Dec(), request.Recipient)
	for _, signer := range request.Signers {
		log.Printf("signed by %s\n", signer)
	}
	if request.Executed {
		log.Printf("relayed by %s\n", request.Relayer)
	}
	return nil
}
