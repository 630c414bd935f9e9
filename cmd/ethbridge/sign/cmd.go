// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package sign

import (
	"log"

	"github.com/spf13/cobra"

	"github.com/luxfi/ethbridge/api"
	"github.com/luxfi/ethbridge/relay"
)

func Command() *cobra.Command {
	c := &cobra.Command{
		Use:   "sign",
		Short: "Signs a withdrawal as an authority and submits the signature",
		RunE:  signFunc,
	}
	flags := c.Flags()
	AddFlags(flags)
	return c
}

func signFunc(c *cobra.Command, args []string) error {
	config, err := ParseFlags(c.Flags(), args)
	if err != nil {
		return err
	}

	signer := relay.NewSigner(config.Signer, api.NewClient(config.URI), relay.SignerConfig{
		Attempts: config.Attempts,
		Delay:    config.Delay,
	})
	receipt, err := signer.Relay(c.Context(), config.Message)
	if err != nil {
		return err
	}

	switch {
	case receipt.Duplicate:
		log.Printf("%s already signed withdrawal %s\n", config.Signer.Address(), config.Message.RequestID)
	default:
		log.Printf("withdrawal %s is %s with %d signatures\n", config.Message.RequestID, receipt.Status, receipt.Signatures)
	}
	return nil
}
