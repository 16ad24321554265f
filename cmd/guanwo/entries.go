package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/at-ishikawa/guanwo/internal/bootstrap"
	"github.com/at-ishikawa/guanwo/internal/config"
)

func newEntriesCommand() *cobra.Command {
	entriesCmd := &cobra.Command{
		Use:   "entries",
		Short: "Journal entry commands",
	}
	entriesCmd.AddCommand(newEntriesSweepCommand())
	return entriesCmd
}

func newEntriesSweepCommand() *cobra.Command {
	var olderThan time.Duration
	command := &cobra.Command{
		Use:   "sweep",
		Short: "Fail entries stuck in sending, such as after a crash during moderation",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withServices(cmd.Context(), func(cfg *config.Config, services *bootstrap.Services) error {
				if olderThan <= 0 {
					olderThan = cfg.Journal.StaleAfter()
				}
				failed, err := services.Entries.FailStale(cmd.Context(), olderThan)
				if err != nil {
					return fmt.Errorf("FailStale() > %w", err)
				}
				if failed == 0 {
					_, err = successColor.Fprintf(cmd.OutOrStdout(), "no entries in sending for more than %s\n", olderThan)
					return err
				}
				_, err = warnColor.Fprintf(cmd.OutOrStdout(), "failed %d entries in sending for more than %s\n", failed, olderThan)
				return err
			})
		},
	}
	command.Flags().DurationVar(&olderThan, "older-than", 0, "Minimum time in sending. Defaults to journal.stale_after_seconds")
	return command
}
