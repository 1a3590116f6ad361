package main

import (
	"log/slog"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	apiBaseURL string
	timeoutMs  int
	htmlOut    string
	noColor    bool
	verbose    bool
)

var rootCmd = &cobra.Command{
	Use:   "review-cli",
	Short: "review-cli sends code to the review gateway and prints the AI review.",
	Long: `A command-line host for the review bridge. It reads code from a file or
stdin, posts it to the gateway's /ai/get-review endpoint and renders the
result either in the terminal or as a script-free HTML page.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		if noColor {
			color.NoColor = true
		}
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() { //nolint:gochecknoinits // Cobra's init function for command registration
	cobra.OnInitialize(initConfig)

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&apiBaseURL, "api-base-url", "", "Review gateway base URL (default http://localhost:3000)")
	flags.IntVar(&timeoutMs, "timeout-ms", 0, "Request timeout in milliseconds (default 60000)")
	flags.StringVar(&htmlOut, "html", "", "Write the review to this HTML file instead of the terminal")
	flags.BoolVar(&noColor, "no-color", false, "Disable colored output")
	flags.BoolVarP(&verbose, "verbose", "v", false, "Log request details to stderr")

	bindings := map[string]string{
		"client.api_base_url":       "api-base-url",
		"client.request_timeout_ms": "timeout-ms",
	}
	for key, flag := range bindings {
		if err := viper.BindPFlag(key, flags.Lookup(flag)); err != nil {
			slog.Error("Error binding flag", "flag", flag, "error", err)
			os.Exit(1)
		}
	}
}

// initConfig reads in ENV variables if set. The config file is resolved by
// config.LoadConfig.
func initConfig() {
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	viper.AutomaticEnv()
}
