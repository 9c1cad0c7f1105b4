package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"

	"likecli/internal/config"
	"likecli/internal/dataprocessing"
	"likecli/internal/files"
	"likecli/internal/infrastructure"
)

const (
	exitOK      = 0
	exitFailure = 1
	exitUsage   = 2
)

func main() {
	os.Exit(run(context.Background(), os.Args[1:], os.Stdout, os.Stderr))
}

// run prints one "<file>\t<type>\t<reason>" line per file. Directory
// arguments are expanded to the CSV files they contain.
func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("csvdetect", flag.ContinueOnError)
	fs.SetOutput(stderr)
	delimiter := fs.String("delimiter", "", "field separator (defaults to the configured input delimiter)")
	fs.Usage = func() {
		fmt.Fprintln(fs.Output(), "usage: csvdetect [-delimiter C] FILE|DIR...")
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return exitOK
		}
		return exitUsage
	}
	if fs.NArg() == 0 {
		fs.Usage()
		return exitUsage
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(stderr, "csvdetect: %v\n", err)
		return exitFailure
	}
	if *delimiter != "" {
		cfg.Report.InputDelimiter = *delimiter
	}
	sep := []rune(cfg.Report.InputDelimiter)
	if len(sep) != 1 {
		fmt.Fprintf(stderr, "csvdetect: delimiter must be a single character, got %q\n", cfg.Report.InputDelimiter)
		return exitUsage
	}

	logger, err := infrastructure.InitializeLogger(cfg.Logging)
	if err != nil {
		logger = slog.Default()
	}
	defer infrastructure.CloseLogFile()

	reader := dataprocessing.NewTableReader(logger, sep[0])
	discovery := files.NewDiscovery(logger, reader)

	paths, err := expand(discovery, fs.Args())
	if err != nil {
		fmt.Fprintf(stderr, "csvdetect: %v\n", err)
		return exitFailure
	}

	code := exitOK
	for _, path := range paths {
		detection, err := reader.DetectFile(path)
		if err != nil {
			logger.WarnContext(ctx, "Header could not be read",
				slog.String("file", path),
				slog.String("error", err.Error()))
			fmt.Fprintf(stdout, "%s\t%s\t%v\n", path, dataprocessing.SchemaUnknown, err)
			code = exitFailure
			continue
		}
		fmt.Fprintf(stdout, "%s\t%s\t%s\n", path, detection.Type, detection.Reason)
	}
	return code
}

// expand replaces every directory in args by the CSV files inside it
func expand(discovery *files.Discovery, args []string) ([]string, error) {
	var paths []string
	for _, arg := range args {
		info, err := os.Stat(arg)
		if err != nil || !info.IsDir() {
			paths = append(paths, arg)
			continue
		}
		found, err := discovery.FindCSVFiles(arg)
		if err != nil {
			return nil, err
		}
		for _, f := range found {
			paths = append(paths, f.Path)
		}
	}
	return paths, nil
}
