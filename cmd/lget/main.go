package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/smarzola/ltools/internal/attrspec"
	"github.com/smarzola/ltools/internal/format"
	"github.com/smarzola/ltools/internal/pipeline"
	"github.com/smarzola/ltools/internal/schema"
	"github.com/smarzola/ltools/pkg/config"
)

var (
	version = "0.1.0"
	commit  = "dev"
)

var (
	nullDelimit bool
	csvOutput   bool
	jsonOutput  bool
	filterStr   string
	envFile     string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "lget [flags] ATTRIBUTE...",
	Short: "Extract attribute values from LDIF on stdin",
	Long: `Reads LDIF from standard input and prints the requested attributes of
every entry, one line per combination of values.

An attribute may be written as name:-default to use a default when the
entry lacks it, and suffixed with .base64 to print its values base64
encoded. Entries missing an attribute without a default are skipped.`,
	Version:       fmt.Sprintf("%s (%s)", version, commit),
	Args:          cobra.MinimumNArgs(1),
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return run(cmd.Context(), args)
	},
}

func init() {
	rootCmd.Flags().BoolVarP(&nullDelimit, "null-delimit", "0", false, "terminate rows with NUL instead of newline")
	rootCmd.Flags().BoolVarP(&csvOutput, "csv", "c", false, "write CSV with a header row")
	rootCmd.Flags().BoolVarP(&jsonOutput, "json", "j", false, "write one JSON object per entry")
	rootCmd.Flags().StringVarP(&filterStr, "filter", "f", "", "only process entries matching an LDAP search filter")
	rootCmd.Flags().StringVar(&envFile, "env-file", "", "load LTOOLS_* settings from a dotenv file")
	rootCmd.MarkFlagsMutuallyExclusive("csv", "json")
}

func run(ctx context.Context, args []string) error {
	cfg, err := config.LoadFile(envFile)
	if err != nil {
		return err
	}
	cfg.Logging.InitLogging(os.Stderr)
	cfg.Print()

	specs := attrspec.ParseAll(args)
	slog.Debug("Attributes parsed", "specs", specNames(specs))

	opts := pipeline.Options{
		Format: format.Options{
			Format:      outputFormat(),
			Specs:       specs,
			NullDelimit: nullDelimit,
			BufferSize:  cfg.IO.WriteBufferSize,
		},
		ReadBufferSize: cfg.IO.ReadBufferSize,
	}

	if filterStr != "" {
		filter, err := schema.ParseFilter(filterStr)
		if err != nil {
			return fmt.Errorf("invalid filter: %w", err)
		}
		opts.Filter = filter
		slog.Debug("Filter parsed", "filter", filter.String())
	}

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	// A second signal terminates the process the default way
	context.AfterFunc(ctx, stop)

	stats, err := pipeline.Run(ctx, os.Stdin, os.Stdout, opts)
	if errors.Is(err, context.Canceled) {
		return errors.New("interrupted")
	}
	if err != nil {
		return err
	}

	slog.Info("Processing complete", "format", opts.Format.Format, "stats", stats)
	return nil
}

func specNames(specs []attrspec.Spec) []string {
	names := make([]string, len(specs))
	for i, spec := range specs {
		names[i] = spec.String()
	}
	return names
}

func outputFormat() format.Format {
	switch {
	case csvOutput:
		return format.FormatCSV
	case jsonOutput:
		return format.FormatJSON
	default:
		return format.FormatDelimited
	}
}
