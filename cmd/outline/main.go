// Command outline extracts the title and heading outline of every supported
// document in a directory and writes one result file per input.
package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/urfave/cli/v2"

	"github.com/dgallion1/docoutline/internal/config"
	"github.com/dgallion1/docoutline/internal/outline"
	"github.com/dgallion1/docoutline/internal/parser"
	"github.com/dgallion1/docoutline/internal/pipeline"
)

func main() {
	os.Exit(exitCode(context.Background(), newApp(os.Stdout, os.Stderr), os.Args))
}

func newApp(stdout, stderr io.Writer) *cli.App {
	defaults := config.Load()
	return &cli.App{
		Name:      "outline",
		Usage:     "extract document titles and H1-H3 outlines",
		Writer:    stdout,
		ErrWriter: stderr,
		// Exit codes are mapped by exitCode.
		ExitErrHandler: func(*cli.Context, error) {},
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "input", Aliases: []string{"i"}, Value: defaults.InputDir, Usage: "directory of documents to process", EnvVars: []string{"INPUT_DIR"}},
			&cli.StringFlag{Name: "output", Aliases: []string{"o"}, Value: defaults.OutputDir, Usage: "directory for result files", EnvVars: []string{"OUTPUT_DIR"}},
			&cli.StringFlag{Name: "format", Aliases: []string{"f"}, Value: defaults.OutputFormat, Usage: "json, yaml or markdown", EnvVars: []string{"OUTPUT_FORMAT"}},
			&cli.IntFlag{Name: "workers", Aliases: []string{"w"}, Value: defaults.WorkerCount, Usage: "documents processed concurrently", EnvVars: []string{"WORKER_COUNT"}},
			&cli.StringFlag{Name: "heuristics", Usage: "YAML file overriding heading heuristics", EnvVars: []string{"HEURISTICS_FILE"}},
			&cli.BoolFlag{Name: "pdftotext", Value: defaults.PDFFallbackPdftotext, Usage: "fall back to pdftotext when a PDF yields no text", EnvVars: []string{"PDF_FALLBACK_PDFTOTEXT"}},
			&cli.StringFlag{Name: "log-level", Value: defaults.LogLevel, Usage: "debug, info, warn or error", EnvVars: []string{"LOG_LEVEL"}},
			&cli.BoolFlag{Name: "quiet", Aliases: []string{"q"}, Usage: "only log errors"},
		},
		Action: run,
	}
}

func run(c *cli.Context) error {
	cfg := config.Config{
		InputDir:             c.String("input"),
		OutputDir:            c.String("output"),
		OutputFormat:         c.String("format"),
		WorkerCount:          c.Int("workers"),
		HeuristicsFile:       c.String("heuristics"),
		PDFFallbackPdftotext: c.Bool("pdftotext"),
		LogLevel:             c.String("log-level"),
	}
	if err := cfg.Validate(); err != nil {
		return cli.Exit(err.Error(), 2)
	}
	heuristics, err := cfg.Heuristics()
	if err != nil {
		return cli.Exit(err.Error(), 2)
	}

	level, _ := config.ParseLevel(cfg.LogLevel)
	if c.Bool("quiet") {
		level = slog.LevelError
	}
	log := slog.New(slog.NewJSONHandler(c.App.ErrWriter, &slog.HandlerOptions{Level: level}))

	ctx, stop := signal.NotifyContext(c.Context, os.Interrupt, syscall.SIGTERM)
	defer stop()

	worker := pipeline.NewWorker(
		outline.NewExtractor(heuristics, log),
		parser.Options{PDFFallbackPdftotext: cfg.PDFFallbackPdftotext},
		pipeline.NewStats(0),
		log,
	)

	out := c.App.Writer
	sum, err := pipeline.RunDir(ctx, worker, pipeline.BatchOptions{
		InputDir:  cfg.InputDir,
		OutputDir: cfg.OutputDir,
		Format:    cfg.Format(),
		Workers:   cfg.WorkerCount,
		Report: func(r pipeline.FileReport) {
			if r.OK() {
				fmt.Fprintf(out, "✓ Processed: %s → %s\n", r.Input, r.Output)
			} else {
				fmt.Fprintf(out, "✗ Failed: %s (%v)\n", r.Input, r.Err)
			}
		},
	}, log)
	if err != nil {
		return cli.Exit(err.Error(), 2)
	}

	fmt.Fprintf(out, "\n%d processed (%d degraded), %d failed\n", sum.Succeeded, sum.Degraded, sum.Failed)
	if sum.Failed > 0 {
		return cli.Exit(fmt.Sprintf("%d of %d documents failed", sum.Failed, sum.Total()), 1)
	}
	return nil
}

// exitCode runs args through the app and returns the process exit code.
func exitCode(ctx context.Context, app *cli.App, args []string) int {
	err := app.RunContext(ctx, args)
	if err == nil {
		return 0
	}
	fmt.Fprintln(app.ErrWriter, err)
	if ec, ok := err.(cli.ExitCoder); ok {
		return ec.ExitCode()
	}
	return 1
}
