package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"github.com/urfave/cli/v3"

	app "github.com/rocketscienceinc/tictactoe-api/internal"
	"github.com/rocketscienceinc/tictactoe-api/internal/config"
)

const defaultConfigPath = "./config.yml"

var errMissingGameID = errors.New("game id is required")

// main - is the entry point of the application. It parses the command line and runs the selected command.
func main() {
	// environment variables from .env take part in the config, a missing file is fine
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		fmt.Fprintf(os.Stderr, "failed to load .env file: %v\n", err)
	}

	if err := newCommand().Run(context.Background(), os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
}

func newCommand() *cli.Command {
	return &cli.Command{
		Name:  "tictactoe",
		Usage: "tic-tac-toe game server",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Value:   defaultConfigPath,
				Usage:   "path to the yml config file",
				Sources: cli.EnvVars("CONFIG_PATH"),
			},
		},
		Action: serve,
		Commands: []*cli.Command{
			{
				Name:   "serve",
				Usage:  "run the HTTP and WebSocket servers",
				Action: serve,
			},
			{
				Name:      "render",
				Usage:     "print the board of a stored game",
				ArgsUsage: "<id>",
				Action:    render,
			},
		},
	}
}

func serve(ctx context.Context, cmd *cli.Command) error {
	conf, err := config.Load(cmd.String("config"))
	if err != nil {
		return err
	}

	if err = app.RunApp(ctx, initLogger(conf), conf); err != nil {
		return fmt.Errorf("app run failed: %w", err)
	}

	return nil
}

func render(ctx context.Context, cmd *cli.Command) error {
	id := cmd.Args().First()
	if id == "" {
		return errMissingGameID
	}

	conf, err := config.Load(cmd.String("config"))
	if err != nil {
		return err
	}

	return app.RenderGame(ctx, initLogger(conf), conf, id, os.Stdout)
}

// initialize logger.
func initLogger(conf *config.Config) *slog.Logger {
	var level slog.Level

	switch conf.LogLevel {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level}))
}
