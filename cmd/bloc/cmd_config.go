package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/martian56/bloc/pkg/repo"
)

func newConfigCmd(c *cli) *cobra.Command {
	var global bool

	cmd := &cobra.Command{
		Use:   "config",
		Short: "Get and set repository or global options",
	}
	cmd.PersistentFlags().BoolVar(&global, "global", false, "use the global identity file instead of the repository config")

	globalPath := func() (string, error) {
		p := globalConfigPath()
		if p == "" {
			return "", fmt.Errorf("cannot locate the global config: set BLOC_GLOBAL_CONFIG or HOME")
		}
		return p, nil
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "get <key>",
		Short: "Print the value of a key",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var out repo.Outcome
			if global {
				p, err := globalPath()
				if err != nil {
					return err
				}
				if out, err = repo.GlobalConfigGet(p, args[0]); err != nil {
					return err
				}
			} else {
				r, err := c.open()
				if err != nil {
					return err
				}
				if out, err = r.ConfigGet(args[0]); err != nil {
					return err
				}
			}
			printOutcome(cmd, out)
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "set <key> <value>",
		Short: "Set the value of a key",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			var out repo.Outcome
			if global {
				p, err := globalPath()
				if err != nil {
					return err
				}
				if out, err = repo.GlobalConfigSet(p, args[0], args[1]); err != nil {
					return err
				}
			} else {
				r, err := c.open()
				if err != nil {
					return err
				}
				if out, err = r.ConfigSet(args[0], args[1]); err != nil {
					return err
				}
			}
			printOutcome(cmd, out)
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List all settings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if global {
				p, err := globalPath()
				if err != nil {
					return err
				}
				id, _, err := repo.LoadIdentity(p)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "user.name=%s\nuser.email=%s\n", id.Name, id.Email)
				return nil
			}
			r, err := c.open()
			if err != nil {
				return err
			}
			out, err := r.ConfigList()
			if err != nil {
				return err
			}
			printOutcome(cmd, out)
			return nil
		},
	})

	return cmd
}
