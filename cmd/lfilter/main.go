package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/smarzola/ltools/internal/format"
	"github.com/smarzola/ltools/internal/pipeline"
	"github.com/smarzola/ltools/internal/schema"
	"github.com/smarzola/ltools/pkg/config"
)

var (
	version = "0.1.0"
	commit  = "dev"
)

var envFile string

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "lfilter [flags] FILTER [OUTPUT]",
	Short: "Select LDIF entries on stdin with an LDAP search filter",
	Long: `Reads LDIF from standard input and writes the entries matching FILTER
back out as LDIF.

Without OUTPUT, matching entries go to standard output and the rest are
dropped. With OUTPUT, matching entries are written to that file and the
rest go to standard output.`,
	Version:       fmt.Sprintf("%s (%s)", version, commit),
	Args:          cobra.RangeArgs(1, 2),
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		output := ""
		if len(args) == 2 {
			output = args[1]
		}
		return run(cmd.Context(), args[0], output)
	},
}

func init() {
	rootCmd.Flags().StringVar(&envFile, "env-file", "", "load LTOOLS_* settings from a dotenv file")
}

func run(ctx context.Context, filterStr, output string) (err error) {
	cfg, err := config.LoadFile(envFile)
	if err != nil {
		return err
	}
	cfg.Logging.InitLogging(os.Stderr)
	cfg.Print()

	filter, err := schema.ParseFilter(filterStr)
	if err != nil {
		return fmt.Errorf("invalid filter: %w", err)
	}
	slog.Debug("Filter parsed", "filter", filter.String())

	opts := pipeline.Options{
		Format: format.Options{
			Format:     format.FormatLDIF,
			BufferSize: cfg.IO.WriteBufferSize,
		},
		Filter:         filter,
		ReadBufferSize: cfg.IO.ReadBufferSize,
	}

	var matched io.Writer = os.Stdout
	if output != "" {
		file, createErr := os.Create(output)
		if createErr != nil {
			return fmt.Errorf("failed to open output file: %w", createErr)
		}
		defer func() {
			if closeErr := file.Close(); closeErr != nil && err == nil {
				err = fmt.Errorf("failed to close output file: %w", closeErr)
			}
		}()
		matched = file
		opts.Rejected = os.Stdout
	}

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	// A second signal terminates the process the default way
	context.AfterFunc(ctx, stop)

	stats, err := pipeline.Run(ctx, os.Stdin, matched, opts)
	if errors.Is(err, context.Canceled) {
		return errors.New("interrupted")
	}
	if err != nil {
		return err
	}

	slog.Info("Processing complete", "output", output, "stats", stats)
	return nil
}
