package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/martian56/bloc/pkg/repo"
)

func newInitCmd(c *cli) *cobra.Command {
	var bare bool

	cmd := &cobra.Command{
		Use:   "init [path]",
		Short: "Create an empty repository",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := c.dir
			if len(args) == 1 {
				path = c.path(args[0])
			}

			r, err := repo.Init(path, bare,
				repo.WithLogger(c.log()),
				repo.WithGlobalConfig(globalConfigPath()),
			)
			if err != nil {
				return err
			}

			if bare {
				fmt.Fprintf(cmd.OutOrStdout(), "Initialized empty bare bloc repository in %s\n", r.MetaDir)
			} else {
				fmt.Fprintf(cmd.OutOrStdout(), "Initialized empty bloc repository in %s\n", r.MetaDir)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&bare, "bare", false, "create a repository without a working tree")

	return cmd
}
