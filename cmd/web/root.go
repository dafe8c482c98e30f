package main

import (
	"github.com/spf13/cobra"

	"rescathena.com/web/internal/config"
)

// newRootCmd builds the `web` command tree. opts are applied to every config
// load, which lets tests inject an environment.
func newRootCmd(opts ...config.Option) *cobra.Command {
	root := &cobra.Command{
		Use:           "web",
		Short:         "RESCATHENA landing site",
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd, opts)
		},
	}
	root.AddCommand(newServeCmd(opts), newI18nCmd(opts))
	return root
}
