package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/ypc/internal/services"
	"github.com/desertthunder/ypc/internal/shared"
	"github.com/desertthunder/ypc/internal/tasks"
	"github.com/urfave/cli/v3"
)

// ConnectFunc authenticates with Spotify and returns the extractor used by fetch.
type ConnectFunc func(ctx context.Context, creds *shared.Credentials, logger *log.Logger) (tasks.Extractor, error)

// Runner holds all dependencies for CLI commands and provides methods for each command action.
type Runner struct {
	configDir string
	logger    *log.Logger
	output    io.Writer
	connect   ConnectFunc
}

// RunnerOpts contains configuration options for creating a Runner.
type RunnerOpts struct {
	ConfigDir string // overrides ~/.config/ypc when --config-dir is not given
	Logger    *log.Logger
	Output    io.Writer
	Connect   ConnectFunc
}

// NewRunner creates a new Runner with the provided configuration
func NewRunner(opts RunnerOpts) *Runner {
	if opts.Logger == nil {
		opts.Logger = shared.NewLogger(nil)
	}
	if opts.Output == nil {
		opts.Output = os.Stdout
	}
	if opts.Connect == nil {
		opts.Connect = connectSpotify
	}

	return &Runner{
		configDir: opts.ConfigDir,
		logger:    opts.Logger,
		output:    opts.Output,
		connect:   opts.Connect,
	}
}

func connectSpotify(ctx context.Context, creds *shared.Credentials, logger *log.Logger) (tasks.Extractor, error) {
	srv, err := services.Connect(ctx, creds, logger, services.ClientOptions{})
	if err != nil {
		return nil, err
	}
	return srv, nil
}

// app builds the root command.
func (r *Runner) app() *cli.Command {
	return &cli.Command{
		Name:      "ypc",
		Usage:     "Extract track metadata from Spotify albums and playlists",
		Version:   "0.1.0",
		Writer:    r.output,
		Flags:     globalFlags(),
		Commands:  r.register(),
		ErrWriter: r.output,
	}
}

func (r *Runner) register() []*cli.Command {
	commands := []*cli.Command{}
	for _, fn := range [](func(*Runner) *cli.Command){
		fetchCommand, configCommand, historyCommand,
	} {
		commands = append(commands, fn(r))
	}

	return commands
}

// configure applies the global flags: log level and credentials directory.
func (r *Runner) configure(cmd *cli.Command) (string, error) {
	level, err := shared.ParseLogLevel(cmd.String("log-level"))
	if err != nil {
		return "", err
	}
	shared.SetLogLevel(r.logger, level)

	if dir := cmd.String("config-dir"); dir != "" {
		return dir, nil
	}
	if r.configDir != "" {
		return r.configDir, nil
	}
	return shared.DefaultConfigDir()
}

func (r *Runner) writePlain(format string, args ...any) error {
	text := fmt.Sprintf(format, args...)
	if _, err := r.output.Write([]byte(text)); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}
