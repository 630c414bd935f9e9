// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/luxfi/ethbridge/cmd/ethbridge/deposit"
	"github.com/luxfi/ethbridge/cmd/ethbridge/run"
	"github.com/luxfi/ethbridge/cmd/ethbridge/sign"
	"github.com/luxfi/ethbridge/cmd/ethbridge/status"
	"github.com/luxfi/ethbridge/cmd/ethbridge/watch"
)

func init() {
	cobra.EnablePrefixMatching = true
}

func main() {
	cmd := &cobra.Command{
		Use:   "ethbridge",
		Short: "Federated multi-signature bridge coordinator",
	}
	cmd.AddCommand(
		run.Command(),
		deposit.Command(),
		sign.Command(),
		status.Command(),
		watch.Command(),
	)

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := cmd.ExecuteContext(ctx)
	cancel()
	if err != nil {
		fmt.Fprintf(os.Stderr, "command failed %v\n", err)
		os.Exit(1)
	}
}
