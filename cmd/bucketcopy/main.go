package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"bucketcopy/internal/config"
	appErrors "bucketcopy/internal/errors"
)

// Version is injected at build time via -ldflags
var Version = "dev"

// reportedError marks an error that has already been logged.
type reportedError struct {
	err error
}

func (e reportedError) Error() string { return e.err.Error() }
func (e reportedError) Unwrap() error { return e.err }

func main() {
	if err := newRootCommand().ExecuteContext(context.Background()); err != nil {
		exitWithError(err)
	}
}

func newRootCommand() *cobra.Command {
	var cfg config.Config

	cmd := &cobra.Command{
		Use:   "bucketcopy",
		Short: "Copy a directory tree into one directory per file extension",
		Long: `bucketcopy walks the source directory recursively and copies every regular
file into <out>/<extension>/<name>. Files without an extension are copied into
<out> itself. Files with the same name and extension overwrite each other.`,
		Version:       Version,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd.Context(), cfg, cmd.OutOrStdout(), cmd.ErrOrStderr())
		},
	}
	config.Bind(cmd.Flags(), &cfg)

	return cmd
}

func exitWithError(err error) {
	var reported reportedError
	if !errors.As(err, &reported) {
		fmt.Fprintln(os.Stderr, appErrors.UserMessage(err))
	}
	os.Exit(1)
}
