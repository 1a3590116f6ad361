package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/sevigo/review-bridge/internal/client"
	"github.com/sevigo/review-bridge/internal/config"
	"github.com/sevigo/review-bridge/internal/core"
	"github.com/sevigo/review-bridge/internal/logger"
)

var linesFlag string

var selectionCmd = &cobra.Command{
	Use:   "selection <file|->",
	Short: "Review a range of lines from a file",
	Long: `Review a range of lines from a file. Use "-" to read from stdin.

Examples:
  review-cli selection main.go --lines 10:42
  review-cli selection handler.go --lines 7 --html review.html`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		lines, err := client.ParseLineRange(linesFlag)
		if err != nil {
			return err
		}
		return runReview(cmd, args[0], lines, (*client.Reviewer).ReviewSelection)
	},
}

var fileCmd = &cobra.Command{
	Use:   "file <file|->",
	Short: "Review a whole file",
	Long: `Review a whole file. Use "-" to read from stdin.

Examples:
  review-cli file main.go
  cat main.go | review-cli file -`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runReview(cmd, args[0], client.LineRange{}, (*client.Reviewer).ReviewFile)
	},
}

func init() { //nolint:gochecknoinits // Cobra command registration
	selectionCmd.Flags().StringVarP(&linesFlag, "lines", "l", "", "Line range to review, e.g. 10:42")
	_ = selectionCmd.MarkFlagRequired("lines")
	rootCmd.AddCommand(selectionCmd, fileCmd)
}

type reviewFunc func(*client.Reviewer, context.Context) core.Result

func runReview(cmd *cobra.Command, path string, lines client.LineRange, review reviewFunc) error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	content, err := readSource(path, cmd.InOrStdin())
	if err != nil {
		return err
	}

	log := slog.New(slog.DiscardHandler)
	if verbose {
		log = logger.NewLogger(logger.Config{Level: "debug", Format: cfg.Logging.Format}, cmd.ErrOrStderr())
	}

	host := &cliHost{
		editor:   client.NewDocument(content, lines),
		stdout:   cmd.OutOrStdout(),
		stderr:   cmd.ErrOrStderr(),
		htmlPath: htmlOut,
	}
	reviewer := client.NewReviewer(client.New(cfg.Client, client.WithLogger(log)), host)

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	if htmlOut == "" {
		_, _ = dimColor.Fprintf(cmd.ErrOrStderr(), "Sending %s to %s\n", displayName(path), cfg.Client.APIBaseURL)
	}

	res := review(reviewer, ctx)
	if err := host.surfaceErr(); err != nil {
		return err
	}
	switch {
	case res.OK():
		if htmlOut != "" {
			_, _ = successColor.Fprintf(cmd.ErrOrStderr(), "✓ Review written to %s\n", htmlOut)
		}
		return nil
	case errors.Is(res.Err, core.ErrInvalidInput):
		return errQuiet
	default:
		_, _ = errorColor.Fprintf(cmd.ErrOrStderr(), "✗ %s\n", client.Message(res.Err))
		return errQuiet
	}
}

// errQuiet signals failure after the host already told the user why.
var errQuiet = errors.New("review failed")

func readSource(path string, stdin io.Reader) (string, error) {
	if path == "-" {
		b, err := io.ReadAll(stdin)
		if err != nil {
			return "", fmt.Errorf("failed to read stdin: %w", err)
		}
		return string(b), nil
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", path, err)
	}
	return string(b), nil
}

func displayName(path string) string {
	if path == "-" {
		return "stdin"
	}
	return path
}
