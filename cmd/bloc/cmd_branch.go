package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/martian56/bloc/pkg/repo"
)

func newBranchCmd(c *cli) *cobra.Command {
	var (
		list         bool
		deleteBranch string
		force        bool
		move         bool
	)

	cmd := &cobra.Command{
		Use:   "branch [name]",
		Short: "List, create, rename, or delete branches",
		Args:  cobra.MaximumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := c.open()
			if err != nil {
				return err
			}

			var out repo.Outcome
			switch {
			case deleteBranch != "":
				out, err = r.DeleteBranch(deleteBranch, force)
			case move:
				if len(args) != 2 {
					return fmt.Errorf("branch -m requires <old> <new>")
				}
				out, err = r.RenameBranch(args[0], args[1])
			case list || len(args) == 0:
				out, err = r.ListBranches()
			case len(args) == 1:
				out, err = r.CreateBranch(args[0])
			default:
				return fmt.Errorf("too many arguments")
			}
			if err != nil {
				return err
			}
			printOutcome(cmd, out)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&list, "list", "l", false, "list branches")
	cmd.Flags().StringVarP(&deleteBranch, "delete", "d", "", "delete the named branch")
	cmd.Flags().BoolVar(&force, "force", false, "allow deleting a branch")
	cmd.Flags().BoolVarP(&move, "move", "m", false, "rename a branch: -m <old> <new>")

	return cmd
}

func newCheckoutCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "checkout <branch>",
		Short: "Switch HEAD to a branch",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := c.open()
			if err != nil {
				return err
			}
			out, err := r.Checkout(args[0])
			if err != nil {
				return err
			}
			printOutcome(cmd, out)
			return nil
		},
	}
}
