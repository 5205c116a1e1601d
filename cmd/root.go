package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/fabinfo/to-data/internal/config"
	"github.com/fabinfo/to-data/internal/encoder"
	"github.com/fabinfo/to-data/internal/fileutil"
	"github.com/fabinfo/to-data/internal/ui"
	"github.com/fabinfo/to-data/pkg/log"
	"github.com/spf13/cobra"
)

// version is overridden at build time with -ldflags "-X .../cmd.version=...".
var version = "dev"

const usageLine = "Usage: to-data <input_file>"

// errUsage reports a missing input path.
var errUsage = errors.New("missing input file")

// options holds the flag values of one invocation.
type options struct {
	configPath string
	logLevel   string
	logFile    string
	verbose    bool
}

// newRootCmd builds the to-data command writing status output to stdout.
func newRootCmd(stdout io.Writer) *cobra.Command {
	opts := &options{}

	cmd := &cobra.Command{
		Use:   "to-data <input_file>",
		Short: "Convert a binary file into a C byte array declaration",
		Long: `to-data reads a file and writes <input_file>.c containing

	static const char <identifier>[] = "\xHH...";

where <identifier> is the input path with every '.' replaced by '_'.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) < 1 {
				return errUsage
			}
			return runConvert(cmd, opts, args[0], stdout)
		},
	}

	cmd.Flags().StringVar(&opts.configPath, "config", "", "Path to a YAML configuration file")
	cmd.Flags().StringVar(&opts.logLevel, "log-level", "", "Log level (debug, info, warn, error)")
	cmd.Flags().StringVar(&opts.logFile, "log-file", "", "Write logs to this file instead of stderr")
	cmd.Flags().BoolVarP(&opts.verbose, "verbose", "v", false, "Print the generated file path")
	return cmd
}

// runConvert loads configuration, initializes logging and converts input.
func runConvert(cmd *cobra.Command, opts *options, input string, stdout io.Writer) error {
	cfg := config.Default()
	if opts.configPath != "" {
		loaded, err := config.Load(opts.configPath)
		if err != nil {
			return err
		}
		cfg = loaded
	}

	if cmd.Flags().Changed("log-level") {
		cfg.Logging.Level = opts.logLevel
	}
	if cmd.Flags().Changed("log-file") {
		cfg.Logging.Path = opts.logFile
	}
	if err := config.Validate(cfg); err != nil {
		return err
	}

	if err := log.Init(cfg.Logging.Path, cfg.Logging.Level); err != nil {
		return fmt.Errorf("failed to initialize logging: %w", err)
	}
	defer log.Close()

	atomic := cfg.IsAtomic()
	res, err := encoder.Convert(cmd.Context(), input, encoder.Options{
		WrapWidth: cfg.Output.WrapWidth,
		Write: func(path string, data []byte) error {
			return fileutil.WriteFile(path, data, atomic)
		},
	})
	if err != nil {
		slog.Debug("conversion failed", "input", input, "error", err)
		return err
	}
	slog.Info("generated", "output", res.Output, "identifier", res.Identifier, "bytes", res.Bytes)

	if opts.verbose {
		ui.NewPrinter(stdout).PrintSuccess("Generated", fmt.Sprintf("%s (%d bytes)", res.Output, res.Bytes))
	}
	return nil
}

// run executes the command with args and returns the process exit code.
func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	if args == nil {
		// cobra falls back to os.Args when given nil
		args = []string{}
	}

	rootCmd := newRootCmd(stdout)
	rootCmd.SetArgs(args)
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)

	err := rootCmd.ExecuteContext(ctx)
	switch {
	case err == nil:
		return 0
	case errors.Is(err, errUsage):
		fmt.Fprintln(stderr, usageLine)
		return 1
	default:
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
}

// Execute runs the root command against os.Args.
// This is called by main.main(). It only needs to happen once.
func Execute() {
	if code := run(context.Background(), os.Args[1:], os.Stdout, os.Stderr); code != 0 {
		os.Exit(code)
	}
}
