package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/smarzola/ltools/internal/escape"
	"github.com/smarzola/ltools/pkg/config"
)

var (
	version = "0.1.0"
	commit  = "dev"
)

var (
	reverse bool
	envFile string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "lescape [flags]",
	Short: "Escape stdin lines for use in LDAP search filters",
	Long: `Reads lines from standard input and writes them with NUL, '(', ')', '*',
'\', ':' and non-ASCII bytes replaced by \xx hex escapes. With --reverse the
escapes are decoded instead.`,
	Version:       fmt.Sprintf("%s (%s)", version, commit),
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadFile(envFile)
		if err != nil {
			return err
		}
		cfg.Logging.InitLogging(os.Stderr)
		cfg.Print()

		return escape.Lines(os.Stdin, os.Stdout, reverse)
	},
}

func init() {
	rootCmd.Flags().BoolVarP(&reverse, "reverse", "r", false, "decode \\xx escapes instead of adding them")
	rootCmd.Flags().StringVar(&envFile, "env-file", "", "load LTOOLS_* settings from a dotenv file")
}
