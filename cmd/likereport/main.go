package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"time"

	"likecli/internal/config"
	"likecli/internal/exporter"
	"likecli/internal/files"
	"likecli/internal/infrastructure"
	"likecli/internal/operations"
	"likecli/internal/services"
	"likecli/pkg/contracts"
)

const (
	exitOK      = 0
	exitFailure = 1
	exitUsage   = 2
)

// options are the parsed command line flags
type options struct {
	inDir      string
	large      string
	mcp        string
	self       string
	mdlo       string
	outDir     string
	format     string
	batch      string
	configFile string
	preview    bool
	overwrite  bool
	version    bool

	// set records which flags were given explicitly
	set map[string]bool
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	os.Exit(run(ctx, os.Args[1:], os.Stdout, os.Stderr))
}

func parseFlags(args []string, stderr io.Writer) (*options, error) {
	opts := &options{set: make(map[string]bool)}

	fs := flag.NewFlagSet("likereport", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&opts.inDir, "in", "", "directory holding the platform exports (detected by header)")
	fs.StringVar(&opts.large, "large", "", "Large Table export")
	fs.StringVar(&opts.mcp, "mcp", "", "Metacognition Progress export")
	fs.StringVar(&opts.self, "self", "", "Self-Assessment export")
	fs.StringVar(&opts.mdlo, "mdlo", "", "Most Difficult Learning Objectives export (optional)")
	fs.StringVar(&opts.outDir, "out", "", "output directory (defaults to the configured output directory)")
	fs.StringVar(&opts.format, "format", "", "output format: xlsx, csv or both")
	fs.StringVar(&opts.batch, "batch", "", "run every sub-directory of this directory as its own report")
	fs.StringVar(&opts.configFile, "config", "", "YAML configuration file")
	fs.BoolVar(&opts.preview, "preview", false, "print the report tables to stdout")
	fs.BoolVar(&opts.overwrite, "overwrite", true, "replace an existing report instead of adding a numeric suffix")
	fs.BoolVar(&opts.version, "version", false, "print the version and exit")
	fs.Usage = func() {
		fmt.Fprintln(fs.Output(), "usage: likereport -in DIR | (-large F -mcp F -self F [-mdlo F]) [-out DIR]")
		fmt.Fprintln(fs.Output(), "                  [-format xlsx|csv|both] [-preview] [-overwrite] [-batch DIR]")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	fs.Visit(func(f *flag.Flag) { opts.set[f.Name] = true })

	if opts.version {
		return opts, nil
	}
	if fs.NArg() > 0 {
		return nil, fmt.Errorf("unexpected arguments: %v", fs.Args())
	}

	explicit := opts.large != "" || opts.mcp != "" || opts.self != "" || opts.mdlo != ""
	sources := 0
	for _, given := range []bool{opts.inDir != "", explicit, opts.batch != ""} {
		if given {
			sources++
		}
	}
	switch {
	case sources == 0:
		return nil, errors.New("one of -in, -batch or -large/-mcp/-self is required")
	case sources > 1:
		return nil, errors.New("-in, -batch and explicit input files are mutually exclusive")
	}

	switch opts.format {
	case "", operations.FormatXLSX, operations.FormatCSV, operations.FormatBoth:
	default:
		return nil, fmt.Errorf("unsupported format %q", opts.format)
	}
	return opts, nil
}

func loadConfig(opts *options) (*config.Config, error) {
	var cfg *config.Config
	var err error
	if opts.configFile != "" {
		cfg, err = config.LoadFrom(opts.configFile)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return nil, err
	}

	if opts.set["overwrite"] {
		cfg.Report.Overwrite = opts.overwrite
	}
	if opts.format != "" {
		cfg.Report.Format = opts.format
	}
	return cfg, nil
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	opts, err := parseFlags(args, stderr)
	if errors.Is(err, flag.ErrHelp) {
		return exitOK
	}
	if err != nil {
		fmt.Fprintf(stderr, "likereport: %v\n", err)
		return exitUsage
	}
	if opts.version {
		fmt.Fprintln(stdout, contracts.GetFullVersionString())
		return exitOK
	}

	cfg, err := loadConfig(opts)
	if err != nil {
		fmt.Fprintf(stderr, "likereport: %v\n", err)
		return exitFailure
	}

	logger, err := infrastructure.InitializeLogger(cfg.Logging)
	if err != nil {
		fmt.Fprintf(stderr, "likereport: failed to initialize logger, using default: %v\n", err)
		logger = slog.Default()
	}
	defer infrastructure.CloseLogFile()

	if paths, err := config.GetPaths(); err == nil {
		paths.LogPathResolution(logger)
	}

	providers, err := infrastructure.InitializeTracing(cfg.Tracing, logger)
	if err != nil {
		logger.Warn("Tracing disabled", slog.String("error", err.Error()))
		providers = &infrastructure.OTelProviders{}
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = providers.Shutdown(shutdownCtx)
	}()

	logger.Info("Starting LIKE report",
		slog.String("app", config.AppName),
		slog.String("version", contracts.Version),
		slog.String("input_dir", opts.inDir),
		slog.String("batch_dir", opts.batch),
		slog.String("output_dir", opts.outDir),
		slog.String("format", cfg.Report.Format))

	svc, err := services.NewReportService(cfg, logger, providers.Tracer)
	if err != nil {
		fmt.Fprintf(stderr, "likereport: %v\n", err)
		return exitFailure
	}

	if opts.batch != "" {
		return runBatch(ctx, svc, opts, stdout, stderr)
	}

	resp, err := svc.Run(ctx, services.ReportRequest{
		InputDir: opts.inDir,
		Inputs: files.InputSet{
			Large:          opts.large,
			Metacognition:  opts.mcp,
			SelfAssessment: opts.self,
			Objectives:     opts.mdlo,
		},
		OutputDir: opts.outDir,
	})
	if err != nil {
		fmt.Fprintf(stderr, "likereport: %v\n", err)
		return exitFailure
	}

	for _, path := range resp.Outputs {
		fmt.Fprintf(stdout, "wrote %s\n", path)
	}
	if opts.preview && resp.Report != nil {
		if err := exporter.Preview(stdout, resp.Report); err != nil {
			fmt.Fprintf(stderr, "likereport: preview: %v\n", err)
			return exitFailure
		}
	}
	return exitOK
}

func runBatch(ctx context.Context, svc *services.ReportService, opts *options, stdout, stderr io.Writer) int {
	results, err := svc.RunBatch(ctx, opts.batch, opts.outDir)
	for _, r := range results {
		if r.Err != nil {
			fmt.Fprintf(stdout, "FAIL %s\n", r.Dir)
			continue
		}
		for _, path := range r.Response.Outputs {
			fmt.Fprintf(stdout, "ok   %s -> %s\n", r.Dir, path)
		}
	}
	if err != nil {
		fmt.Fprintf(stderr, "likereport: %v\n", err)
		return exitFailure
	}
	return exitOK
}
