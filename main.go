package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog"
	uuid "github.com/satori/go.uuid"

	"github.com/pivolan/campaign_analyzer/config"
	"github.com/pivolan/campaign_analyzer/dataset"
)

const (
	exitOK    = 0
	exitError = 1
	exitUsage = 2
)

const usage = `usage: campaign_analyzer [-env file] [describe|charts|all] [file]

  describe  print the dataset overview
  charts    write the campaign images and print the executive summary
  all       describe, then charts (default)

The file argument overrides INPUT_FILE.
`

type app struct {
	cfg   *config.Config
	log   zerolog.Logger
	runID string
	out   io.Writer
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	flags := flag.NewFlagSet("campaign_analyzer", flag.ContinueOnError)
	flags.SetOutput(stderr)
	flags.Usage = func() { fmt.Fprint(stderr, usage) }
	envFile := flags.String("env", ".env", "optional dotenv file")
	if err := flags.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return exitOK
		}
		return exitUsage
	}

	command, rest := "all", flags.Args()
	if len(rest) > 0 {
		command, rest = rest[0], rest[1:]
	}
	switch command {
	case "describe", "charts", "all":
	default:
		fmt.Fprintf(stderr, "unknown command %q\n", command)
		flags.Usage()
		return exitUsage
	}
	if len(rest) > 1 {
		flags.Usage()
		return exitUsage
	}

	cfg, err := config.Load(*envFile)
	if err != nil {
		fmt.Fprintln(stderr, "config:", err)
		return exitError
	}
	if len(rest) == 1 {
		cfg.InputFile = rest[0]
	}

	runID := uuid.NewV4().String()
	a := &app{
		cfg:   cfg,
		log:   cfg.Log.New(stderr).With().Str("run_id", runID).Logger(),
		runID: runID,
		out:   stdout,
	}

	if err := a.run(context.Background(), command); err != nil {
		a.log.Error().Err(err).Str("command", command).Str("file", cfg.InputFile).Msg("run failed")
		return exitError
	}
	return exitOK
}

func (a *app) run(ctx context.Context, command string) error {
	a.log.Info().Str("command", command).Str("file", a.cfg.InputFile).Msg("start")

	ds, err := dataset.Load(a.cfg.InputFile)
	if err != nil {
		return err
	}

	if command == "describe" || command == "all" {
		if err := a.describe(ds); err != nil {
			return err
		}
	}
	if command == "charts" || command == "all" {
		if command == "all" {
			fmt.Fprintln(a.out)
		}
		if err := a.charts(ctx, ds); err != nil {
			return err
		}
	}

	a.log.Info().Msg("done")
	return nil
}
