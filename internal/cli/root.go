package cli

import (
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/kolah/oaslint/internal/config"
	"github.com/kolah/oaslint/internal/discovery"
	"github.com/kolah/oaslint/internal/result"
	"github.com/kolah/oaslint/internal/runner"
)

// ExitError carries the process exit code out of a command. Err may be
// nil when the failure was already reported (lint findings are printed
// before the exit status is decided).
type ExitError struct {
	Code int
	Err  error
}

func (e *ExitError) Error() string {
	if e.Err != nil {
		return e.Err.Error()
	}
	return fmt.Sprintf("exit status %d", e.Code)
}

func RootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "oaslint [files...]",
		Short: "Lint OpenAPI and Swagger descriptions against a configurable rule set",
		Long: "oaslint lints OpenAPI 3.x and Swagger 2.0 descriptions against a configurable\n" +
			"rule set and reports findings at four severities: error, warning, info, hint.\n\n" +
			"With no file arguments, specs are auto-discovered under the working directory\n" +
			"(**/*.{yaml,yml,json}); files without an openapi/swagger descriptor are\n" +
			"silently skipped in that mode.\n\n" +
			"Exit codes: 0 clean, 1 at least one error found, 2 invalid configuration or\n" +
			"no files linted.",
		Version:       "1.0.0",
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          runLint,
	}

	flags := root.Flags()
	flags.BoolP("verbose", "v", false, "Dump raw merged results in addition to the report")
	flags.StringP("config", "c", "", "Config file path (default: discover .oaslint.{yaml,yml,json})")

	return root
}

func runLint(cmd *cobra.Command, args []string) error {
	verbose, _ := cmd.Flags().GetBool("verbose")
	configPath, _ := cmd.Flags().GetString("config")

	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))

	cfg, err := loadConfig(configPath)
	if err != nil {
		return &ExitError{Code: 2, Err: err}
	}

	explicit := len(args) > 0
	files := args
	if !explicit {
		files, err = discovery.Discover(".", cfg.Ignore)
		if err != nil {
			return &ExitError{Code: 2, Err: fmt.Errorf("discovering spec files: %w", err)}
		}
	}

	r := &runner.Runner{Config: cfg, Logger: logger, Explicit: explicit}
	results, failed := r.Run(cmd.Context(), files)
	if failed > 0 {
		logger.Debug("files excluded from aggregate", "count", failed)
	}

	if verbose && len(results) > 0 {
		raw, err := json.MarshalIndent(results, "", "  ")
		if err == nil {
			cmd.Println(string(raw))
		}
	}

	if report := result.Format(results); report != "" {
		cmd.Print(report)
	}

	switch code := result.ExitCode(results); code {
	case 0:
		return nil
	case 2:
		return &ExitError{Code: 2, Err: fmt.Errorf("no files were linted")}
	default:
		return &ExitError{Code: code}
	}
}

// loadConfig resolves configuration: an explicit path must load
// cleanly, while discovery failures fall back to built-in defaults.
func loadConfig(path string) (*config.Config, error) {
	if path != "" {
		return config.Load(path)
	}
	return config.Discover(".")
}
