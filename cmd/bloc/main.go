package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/martian56/bloc/pkg/repo"
)

var version = "0.1.0-dev"

// cli holds the global flags and the per-invocation logger shared by every
// subcommand.
type cli struct {
	dir     string
	verbose bool

	logger      *zap.Logger
	closeLogger func()
}

func main() {
	c := &cli{}
	err := newRootCmd(c).Execute()
	c.close()
	if err != nil {
		fmt.Fprintln(os.Stderr, errorStyle.Render("error:"), err)
		os.Exit(1)
	}
}

func newRootCmd(c *cli) *cobra.Command {
	root := &cobra.Command{
		Use:           "bloc",
		Short:         "A small content-addressed version control tool",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			c.logger, c.closeLogger = newLogger(cmd.ErrOrStderr(), c.verbose, os.Getenv("BLOC_LOG_FILE"))
		},
	}
	root.PersistentFlags().StringVarP(&c.dir, "directory", "C", ".", "run as if bloc was started in this directory")
	root.PersistentFlags().BoolVar(&c.verbose, "verbose", false, "print debug logs to stderr")

	root.AddCommand(newVersionCmd())
	root.AddCommand(newInitCmd(c))
	root.AddCommand(newAddCmd(c))
	root.AddCommand(newResetCmd(c))
	root.AddCommand(newCommitCmd(c))
	root.AddCommand(newLogCmd(c))
	root.AddCommand(newStatusCmd(c))
	root.AddCommand(newBranchCmd(c))
	root.AddCommand(newCheckoutCmd(c))
	root.AddCommand(newConfigCmd(c))
	root.AddCommand(newRemoteCmd(c))
	root.AddCommand(newShowCmd(c))
	return root
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "bloc %s\n", version)
		},
	}
}

func (c *cli) close() {
	if c.closeLogger != nil {
		c.closeLogger()
		c.closeLogger = nil
	}
}

func (c *cli) log() *zap.Logger {
	if c.logger == nil {
		return zap.NewNop()
	}
	return c.logger
}

func (c *cli) open() (*repo.Repo, error) {
	return repo.Open(c.dir, repo.WithLogger(c.log()))
}

// path resolves a command-line path against the -C directory.
func (c *cli) path(p string) string {
	if filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(c.dir, p)
}

func (c *cli) paths(args []string) []string {
	out := make([]string, len(args))
	for i, a := range args {
		abs, err := filepath.Abs(c.path(a))
		if err != nil {
			abs = c.path(a)
		}
		out[i] = abs
	}
	return out
}

// globalConfigPath returns the identity file location: BLOC_GLOBAL_CONFIG
// when set, ~/.blocconfig otherwise, or "" when neither is known.
func globalConfigPath() string {
	if p := os.Getenv("BLOC_GLOBAL_CONFIG"); p != "" {
		return p
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, repo.GlobalConfigFileName)
}
