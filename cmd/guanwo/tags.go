package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/at-ishikawa/guanwo/internal/bootstrap"
	"github.com/at-ishikawa/guanwo/internal/config"
)

func newTagsCommand() *cobra.Command {
	tagsCmd := &cobra.Command{
		Use:   "tags",
		Short: "Tag registry commands",
	}
	tagsCmd.AddCommand(newTagsSeedCommand())
	return tagsCmd
}

func newTagsSeedCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Create the system tags of the seed file that do not exist yet",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withServices(cmd.Context(), func(_ *config.Config, services *bootstrap.Services) error {
				created, err := services.Tags.SeedSystemTags(cmd.Context(), services.Seeds)
				if err != nil {
					return fmt.Errorf("SeedSystemTags() > %w", err)
				}
				_, err = successColor.Fprintf(cmd.OutOrStdout(), "created %d of %d system tags\n", created, len(services.Seeds))
				return err
			})
		},
	}
}
