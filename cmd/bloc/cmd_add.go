package main

import (
	"github.com/spf13/cobra"
)

func newAddCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "add <paths...>",
		Short: "Stage files for the next commit",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := c.open()
			if err != nil {
				return err
			}
			out, err := r.AddPaths(c.paths(args))
			if err != nil {
				return err
			}
			printOutcome(cmd, out)
			return nil
		},
	}
}

func newResetCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "reset <paths...>",
		Short: "Remove files from the staging area",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := c.open()
			if err != nil {
				return err
			}
			out, err := r.ResetPaths(c.paths(args))
			if err != nil {
				return err
			}
			printOutcome(cmd, out)
			return nil
		},
	}
}
