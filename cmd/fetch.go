package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/desertthunder/ypc/internal/formatter"
	"github.com/desertthunder/ypc/internal/repositories"
	"github.com/desertthunder/ypc/internal/shared"
	"github.com/desertthunder/ypc/internal/tasks"
	"github.com/urfave/cli/v3"
)

func outputOptions(cmd *cli.Command) (formatter.Options, error) {
	format, err := formatter.ParseFormat(cmd.String("format"))
	if err != nil {
		return formatter.Options{}, err
	}
	return formatter.Options{Format: format, Pretty: cmd.Bool("pretty")}, nil
}

// Fetch resolves credentials, extracts every identifier and writes the combined table.
//
// Credentials are resolved before any API call; a configuration error stops the command.
func (r *Runner) Fetch(ctx context.Context, cmd *cli.Command) error {
	configDir, err := r.configure(cmd)
	if err != nil {
		return err
	}

	identifiers := cmd.Args().Slice()
	if len(identifiers) == 0 {
		return fmt.Errorf("%w: at least one album or playlist identifier", shared.ErrMissingArgument)
	}

	opts, err := outputOptions(cmd)
	if err != nil {
		return err
	}

	creds, err := shared.ResolveCredentials(r.logger, configDir)
	if err != nil {
		return err
	}

	runID := shared.GenerateID()
	logger := shared.WithLogger(r.logger, "run", runID)

	extractor, err := r.connect(ctx, creds, logger)
	if err != nil {
		return fmt.Errorf("failed to connect to Spotify: %w", err)
	}

	table, err := tasks.NewSongFetcher(extractor, logger).Fetch(ctx, identifiers)
	if err != nil {
		return err
	}

	logger.Info("fetched tracks", "identifiers", len(identifiers), "rows", table.Len())

	if dbPath := cmd.String("db"); dbPath != "" {
		db, err := shared.OpenDatabase(dbPath)
		if err != nil {
			return err
		}
		defer db.Close()

		if err := repositories.NewTrackRowRepository(db).Save(runID, identifiers, table); err != nil {
			return fmt.Errorf("failed to store run: %w", err)
		}
		logger.Info("run stored", "db", dbPath)
	}

	return formatter.Write(r.output, cmd.String("output"), table, opts)
}

// ConfigInit writes the sample credentials file.
func (r *Runner) ConfigInit(ctx context.Context, cmd *cli.Command) error {
	configDir, err := r.configure(cmd)
	if err != nil {
		return err
	}

	created, err := shared.CreateConfigFile(configDir)
	if err != nil {
		return err
	}

	path := shared.ConfigPath(configDir)
	if !created {
		return r.writePlain("Config file already exists at %s\n", path)
	}

	r.writePlain("✓ Sample config written to %s\n", path)
	return r.writePlain("  Create an application at https://developer.spotify.com/dashboard and fill in its id and secret.\n")
}

// ConfigPath prints the credentials file path.
func (r *Runner) ConfigPath(ctx context.Context, cmd *cli.Command) error {
	configDir, err := r.configure(cmd)
	if err != nil {
		return err
	}
	return r.writePlain("%s\n", shared.ConfigPath(configDir))
}

// History lists stored runs, or prints the table of the run given by --run.
func (r *Runner) History(ctx context.Context, cmd *cli.Command) error {
	if _, err := r.configure(cmd); err != nil {
		return err
	}

	opts, err := outputOptions(cmd)
	if err != nil {
		return err
	}

	db, err := shared.OpenDatabase(cmd.String("db"))
	if err != nil {
		return err
	}
	defer db.Close()

	repo := repositories.NewTrackRowRepository(db)

	if runID := cmd.String("run"); runID != "" {
		table, err := repo.ListByRun(runID)
		if err != nil {
			return err
		}
		return formatter.Write(r.output, cmd.String("output"), table, opts)
	}

	runs, err := repo.Runs()
	if err != nil {
		return err
	}

	if len(runs) == 0 {
		return r.writePlain("No runs stored.\n")
	}

	r.writePlain("Found %d runs:\n\n", len(runs))
	for _, run := range runs {
		r.writePlain("%d. %s\n", run.Sequence, run.ID)
		r.writePlain("   Created: %s\n", run.CreatedAt.Local().Format("2006-01-02 15:04:05"))
		r.writePlain("   Rows: %d\n", run.RowCount)
		r.writePlain("   Identifiers: %s\n\n", strings.Join(run.Identifiers, ", "))
	}

	return nil
}
