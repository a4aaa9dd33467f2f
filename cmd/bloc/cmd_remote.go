package main

import (
	"github.com/spf13/cobra"

	"github.com/martian56/bloc/pkg/repo"
)

func newRemoteCmd(c *cli) *cobra.Command {
	// run opens the repository and prints what op reports.
	run := func(op func(r *repo.Repo) (repo.Outcome, error)) func(*cobra.Command, []string) error {
		return func(cmd *cobra.Command, args []string) error {
			r, err := c.open()
			if err != nil {
				return err
			}
			out, err := op(r)
			if err != nil {
				return err
			}
			printOutcome(cmd, out)
			return nil
		}
	}

	cmd := &cobra.Command{
		Use:   "remote",
		Short: "Manage named remotes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run((*repo.Repo).RemoteList)(cmd, args)
		},
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "add <name> <url>",
		Short: "Add a remote",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(func(r *repo.Repo) (repo.Outcome, error) { return r.RemoteAdd(args[0], args[1]) })(cmd, args)
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:     "remove <name>",
		Aliases: []string{"rm"},
		Short:   "Remove a remote",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(func(r *repo.Repo) (repo.Outcome, error) { return r.RemoteRemove(args[0]) })(cmd, args)
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List remotes",
		Args:  cobra.NoArgs,
		RunE:  run((*repo.Repo).RemoteList),
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "show <name>",
		Short: "Show a remote",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(func(r *repo.Repo) (repo.Outcome, error) { return r.RemoteShow(args[0]) })(cmd, args)
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "rename <old> <new>",
		Short: "Rename a remote",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(func(r *repo.Repo) (repo.Outcome, error) { return r.RemoteRename(args[0], args[1]) })(cmd, args)
		},
	})

	return cmd
}
