package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

type options struct {
	configPath string
	status     string
	noMPRIS    bool
	fresh      bool
}

func newRootCmd() *cobra.Command {
	var opts options
	cmd := &cobra.Command{
		Use:   "focusplay [flags] <uri>",
		Short: "Play one media item while sharing audio focus",
		Long: "focusplay plays a local file, file:// or http(s):// URI and pauses, ducks\n" +
			"or resumes it as other applications take and return audio focus.",
		Args:         cobra.ExactArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd.Context(), args[0], opts)
		},
	}
	cmd.Flags().StringVarP(&opts.configPath, "config", "c", "", "config file (default $XDG_CONFIG_HOME/focusplay/config.toml)")
	cmd.Flags().StringVar(&opts.status, "status", "", `status update applied after load, e.g. '{"isLooping":true,"rate":1.5}'`)
	cmd.Flags().BoolVar(&opts.noMPRIS, "no-mpris", false, "disable D-Bus media controls")
	cmd.Flags().BoolVar(&opts.fresh, "fresh", false, "forget the saved session for the URI and start from the beginning")
	return cmd
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM)
	err := newRootCmd().ExecuteContext(ctx)
	stop()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
