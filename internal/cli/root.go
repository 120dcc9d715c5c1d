package cli

import (
	"context"
	stderrors "errors"
	"fmt"
	"os"

	charmlog "github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/bioplotkit/hicfig/pkg/buildinfo"
	"github.com/bioplotkit/hicfig/pkg/errors"
)

// Execute runs the hicfig CLI and returns an error if any command fails.
//
// The function sets up the root command with all subcommands (heatmap,
// tracks, serve), configures logging based on the --verbose flag, and
// executes the command tree. The logger is attached to the context and
// accessible to all commands via loggerFromContext.
func Execute(ctx context.Context) error {
	var verbose bool

	root := &cobra.Command{
		Use:           "hicfig",
		Short:         "hicfig renders Hi-C comparison figures with genomic tracks",
		Long:          `hicfig renders composite genome-browser figures: a difference or ratio contact heatmap stacked above aligned signal, interval, loop, and gene tracks for one genomic region.`,
		Version:       buildinfo.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := charmlog.InfoLevel
			if verbose {
				level = charmlog.DebugLevel
			}
			ctx := withLogger(cmd.Context(), newLogger(os.Stderr, level))
			cmd.SetContext(ctx)
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")

	root.AddCommand(newHeatmapCmd())
	root.AddCommand(newTracksCmd())
	root.AddCommand(newServeCmd())

	if err := root.ExecuteContext(ctx); err != nil {
		if !stderrors.Is(err, context.Canceled) {
			fmt.Fprintln(os.Stderr, errorLine("%s", errors.UserMessage(err)))
		}
		return err
	}
	return nil
}
