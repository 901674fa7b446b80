package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"ddlint/internal/config"
	"ddlint/internal/logging"
)

// version is set at build time via -ldflags.
var version = "dev"

var rootFlags struct {
	configPath string
	logLevel   string
	logFormat  string
}

var rootCmd = &cobra.Command{
	Use:   "ddlint",
	Short: "Validate datasets against their data dictionary",
	Long: "ddlint checks a dataset export against its REDCap-style data dictionary:\n" +
		"column presence, types, allowed codes, checkbox expansions, branching logic\n" +
		"and drift since the previous run. Findings are written as findings.json and\n" +
		"can be scored against seeded ground truth.",
	CompletionOptions: cobra.CompletionOptions{
		HiddenDefaultCmd: true,
	},
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		level, err := logging.ParseLevel(rootFlags.logLevel)
		if err != nil {
			return err
		}
		logging.Init(level, rootFlags.logFormat)
		return nil
	},
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&rootFlags.configPath, "config", "", "Config file (YAML or JSON); defaults apply when omitted")
	pf.StringVar(&rootFlags.logLevel, "log-level", "info", "Log level: debug, info, warn, error")
	pf.StringVar(&rootFlags.logFormat, "log-format", "text", "Log format: text or json")

	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(scoreCmd)
	rootCmd.AddCommand(batchCmd)
	rootCmd.AddCommand(runsCmd)
	rootCmd.Version = version
}

// loadConfig builds the run config from defaults plus the --config file.
func loadConfig() (config.Config, error) {
	if rootFlags.configPath == "" {
		return config.Default(), nil
	}
	return config.LoadFromPath(rootFlags.configPath)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
