package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/openkcm/common-sdk/pkg/utils"
	"github.com/spf13/cobra"

	slogctx "github.com/veqryn/slog-context"

	"github.com/openkcm/selfservice-datamanager/cmd/datamanager/apiserver"
	"github.com/openkcm/selfservice-datamanager/cmd/datamanager/chargesync"
	"github.com/openkcm/selfservice-datamanager/cmd/datamanager/migrate"
)

// BuildInfo will be set by the build system
var BuildInfo = "{}"

const (
	gracefulShutdownFlag = "graceful-shutdown"

	// noShutdownDelay marks commands that exit right away.
	noShutdownDelay = "no-shutdown-delay"
)

func versionCmd(buildInfo string) *cobra.Command {
	return &cobra.Command{
		Use:         "version",
		Short:       "Print the build information",
		Annotations: map[string]string{noShutdownDelay: "true"},
		RunE: func(cmd *cobra.Command, _ []string) error {
			value, err := utils.ExtractFromComplexValue(buildInfo)
			if err != nil {
				return fmt.Errorf("reading build info: %w", err)
			}

			_, err = fmt.Fprintln(cmd.OutOrStdout(), value)

			return err
		},
	}
}

func rootCmd(buildInfo string) *cobra.Command {
	cmd := &cobra.Command{
		Use:           "datamanager",
		Short:         "Data Manager",
		Long:          "Self service banking data manager, mirroring the remote banking API into a local store.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().Duration(gracefulShutdownFlag, 1*time.Second, "delay before the process exits")

	cmd.AddCommand(
		versionCmd(buildInfo),
		apiserver.Cmd(buildInfo),
		chargesync.Cmd(buildInfo),
		migrate.Cmd(buildInfo),
	)

	return cmd
}

// shutdownDelay is how long the process lingers after cmd returned, giving
// telemetry exporters time to flush.
func shutdownDelay(cmd *cobra.Command) time.Duration {
	if cmd == nil || !cmd.Runnable() || cmd.Annotations[noShutdownDelay] != "" {
		return 0
	}

	delay, err := cmd.Flags().GetDuration(gracefulShutdownFlag)
	if err != nil {
		return 0
	}

	return delay
}

func execute() error {
	ctx, cancelOnSignal := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancelOnSignal()

	cmd, err := rootCmd(BuildInfo).ExecuteContextC(ctx)
	if err != nil {
		slogctx.Error(ctx, "failed to start the application", "error", err)
		_, _ = fmt.Fprintln(os.Stderr, err)

		return err
	}

	if delay := shutdownDelay(cmd); delay > 0 {
		_, _ = fmt.Fprintf(os.Stderr, "Graceful shutdown in %s\n", delay)
		time.Sleep(delay)
	}

	return nil
}

func main() {
	if err := execute(); err != nil {
		os.Exit(1)
	}
}
