package cli

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/pdrpinto/astar/v2/internal/config"
)

// RootOptions holds global flags and the state derived from them.
type RootOptions struct {
	Verbose    bool
	Format     string // "json" | "text"
	ConfigPath string

	Config config.Config
	Logger *slog.Logger
}

// ValidFormats defines the allowed output formats.
var ValidFormats = []string{"text", "json"}

// NewRootCommand creates the root command for the puzzlepath CLI.
func NewRootCommand() *cobra.Command {
	return newRootCommand(&RootOptions{})
}

// Execute runs the CLI with args and returns the process exit code. A failure
// is reported in the output format resolved from the flags and the config
// file: JSON on stdout or text on stderr.
func Execute(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	opts := &RootOptions{}
	cmd := newRootCommand(opts)
	cmd.SetArgs(args)
	cmd.SetIn(stdin)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	err := cmd.Execute()
	if err == nil {
		return ExitSuccess
	}
	formatter := &OutputFormatter{Format: "text", Writer: stderr}
	if opts.Format == "json" {
		formatter = &OutputFormatter{Format: "json", Writer: stdout}
	}
	_ = formatter.Error(err)
	return GetExitCode(err)
}

func newRootCommand(opts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "puzzlepath",
		Short: "Solve path-finding puzzles with a generic A* search",
		Long: `puzzlepath reads puzzle inputs, builds a graph for each puzzle domain
and answers shortest-path questions with the same A* engine.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return opts.setup(cmd)
		},
	}

	// Global flags
	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose output")
	cmd.PersistentFlags().StringVar(&opts.Format, "format", "text", "output format (json|text)")
	cmd.PersistentFlags().StringVar(&opts.ConfigPath, "config", "", "path to a YAML config file")

	cmd.AddCommand(NewHillCommand(opts))
	cmd.AddCommand(NewValvesCommand(opts))

	return cmd
}

func (opts *RootOptions) setup(cmd *cobra.Command) error {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to load config", err)
	}
	opts.Config = cfg

	if !cmd.Flags().Changed("format") {
		opts.Format = cfg.Output.Format
	}
	if !isValidFormat(opts.Format) {
		return WrapExitError(ExitCommandError, "invalid flag",
			fmt.Errorf("invalid format %q: must be one of %v", opts.Format, ValidFormats))
	}

	level, err := config.ParseLevel(cfg.Log.Level)
	if err != nil {
		return WrapExitError(ExitCommandError, "invalid log level", err)
	}
	if opts.Verbose {
		level = slog.LevelDebug
	}
	opts.Logger = newLogger(cmd.ErrOrStderr(), cfg.Log.Format, level).
		With(slog.String("run_id", uuid.NewString()), slog.String("command", cmd.Name()))
	return nil
}

func newLogger(w io.Writer, format string, level slog.Level) *slog.Logger {
	handlerOptions := &slog.HandlerOptions{Level: level}
	if format == "json" {
		return slog.New(slog.NewJSONHandler(w, handlerOptions))
	}
	return slog.New(slog.NewTextHandler(w, handlerOptions))
}

func (opts *RootOptions) formatter(cmd *cobra.Command) *OutputFormatter {
	return &OutputFormatter{Format: opts.Format, Writer: cmd.OutOrStdout()}
}

// openInput opens path for reading; "-" reads standard input.
func openInput(cmd *cobra.Command, path string) (io.ReadCloser, error) {
	if path == "-" {
		return io.NopCloser(cmd.InOrStdin()), nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, WrapExitError(ExitCommandError, "failed to open input", err)
	}
	return f, nil
}

// isValidFormat checks if the format is one of the allowed values.
func isValidFormat(format string) bool {
	for _, f := range ValidFormats {
		if f == format {
			return true
		}
	}
	return false
}
