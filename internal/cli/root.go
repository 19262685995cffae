package cli

import (
	"foodgram/internal/utils"

	"github.com/spf13/cobra"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	ConfigPath string
}

// NewRootCommand creates the root command of the foodgram CLI.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "foodgram",
		Short: "Foodgram recipe sharing backend",
		Long: `Foodgram serves the recipe sharing API: recipes, tags, ingredients,
subscriptions, favorites and the shopping cart with its downloadable list.`,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if opts.ConfigPath != "" {
				utils.LoadConfigFrom(opts.ConfigPath)
				return
			}
			utils.LoadConfig()
		},
	}

	cmd.PersistentFlags().StringVarP(&opts.ConfigPath, "config", "c", "", "path to config.yaml (default $CONFIG_PATH or ./config.yaml)")

	cmd.AddCommand(NewServeCommand())
	cmd.AddCommand(NewMigrateCommand())
	cmd.AddCommand(NewLoadIngredientsCommand())
	cmd.AddCommand(NewLoadTagsCommand())

	return cmd
}
