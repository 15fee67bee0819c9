// submodule cmd contains command definitions
package main

import (
	"github.com/desertthunder/ypc/internal/formatter"
	"github.com/urfave/cli/v3"
)

func globalFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "config-dir",
			Usage:   "Directory holding config.ini (default: ~/.config/ypc)",
			Sources: cli.EnvVars("YPC_CONFIG_DIR"),
		},
		&cli.StringFlag{
			Name:    "log-level",
			Aliases: []string{"l"},
			Usage:   "Log level: debug, info, warn, error",
			Value:   "info",
			Sources: cli.EnvVars("YPC_LOG_LEVEL"),
		},
	}
}

func outputFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "format",
			Aliases: []string{"f"},
			Usage:   "Output format: text, csv or json",
			Value:   string(formatter.FormatText),
		},
		&cli.BoolFlag{
			Name:  "pretty",
			Usage: "Pretty-print JSON output",
		},
		&cli.StringFlag{
			Name:    "output",
			Aliases: []string{"o"},
			Usage:   "Output file path (default: stdout)",
		},
	}
}

// fetchCommand extracts tracks from albums and playlists
func fetchCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:      "fetch",
		Usage:     "Fetch the tracks of Spotify albums and playlists",
		ArgsUsage: "IDENTIFIER...",
		Flags: append(outputFlags(),
			&cli.StringFlag{
				Name:  "db",
				Usage: "Also store the result in this SQLite database",
			},
		),
		Action: r.Fetch,
	}
}

// configCommand manages the credentials file
func configCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "config",
		Usage: "Credentials file operations",
		Commands: []*cli.Command{
			{
				Name:   "init",
				Usage:  "Create a sample config.ini if none exists",
				Action: r.ConfigInit,
			},
			{
				Name:   "path",
				Usage:  "Print the config.ini path",
				Action: r.ConfigPath,
			},
		},
	}
}

// historyCommand reads results stored with fetch --db
func historyCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "history",
		Usage: "List stored runs, or print the table of one run",
		Flags: append(outputFlags(),
			&cli.StringFlag{
				Name:     "db",
				Usage:    "SQLite database written by fetch --db",
				Required: true,
			},
			&cli.StringFlag{
				Name:  "run",
				Usage: "Run ID to print",
			},
		),
		Action: r.History,
	}
}
