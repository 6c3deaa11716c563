package main

import (
	"github.com/spf13/cobra"

	"github.com/vitalvas/apidocs/mcpdocs"
)

func (a *app) mcpCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "mcp",
		Short: "Serve the documentation as MCP tools over stdio",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, h, err := a.load()
			if err != nil {
				return err
			}

			return mcpdocs.NewServer(h, mcpdocs.Config{
				Version: version,
				Logger:  a.logger,
			}).Run(cmd.Context())
		},
	}
}
