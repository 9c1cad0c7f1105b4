package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"

	"likecli/internal/analytics"
	"likecli/internal/config"
	"likecli/internal/dataprocessing"
	"likecli/internal/exporter"
	"likecli/internal/files"
	"likecli/internal/infrastructure"
	"likecli/internal/operations"
	"likecli/internal/validation"
)

// ReportRequest describes one report run. InputDir is scanned for the
// exports; when it is empty the explicit Inputs are used instead.
type ReportRequest struct {
	InputDir  string
	Inputs    files.InputSet
	OutputDir string
	// FileName overrides the configured name pattern; the extension is added.
	FileName string
	Format   string
}

// BatchResult is the outcome of one directory of a batch
type BatchResult struct {
	Dir      string
	Response *operations.OperationResponse
	Err      error
}

// ReportService runs the report pipeline
type ReportService struct {
	cfg       *config.Config
	logger    *slog.Logger
	manager   *operations.Manager
	discovery *files.Discovery
	validator *validation.FileValidator
	tracer    trace.Tracer
	now       func() time.Time
}

// NewReportService wires the pipeline from cfg. A nil tracer uses the global
// OpenTelemetry provider.
func NewReportService(cfg *config.Config, logger *slog.Logger, tracer trace.Tracer) (*ReportService, error) {
	if cfg == nil {
		return nil, fmt.Errorf("report service needs a configuration")
	}
	if logger == nil {
		logger = slog.Default()
	}
	if tracer == nil {
		tracer = otel.Tracer(infrastructure.TracerName)
	}

	delimiter := ';'
	if r := []rune(cfg.Report.InputDelimiter); len(r) == 1 {
		delimiter = r[0]
	}
	reader := dataprocessing.NewTableReader(logger, delimiter)
	discovery := files.NewDiscovery(logger, reader)

	writerOptions := exporter.WriterOptions{
		Overwrite:      cfg.Report.Overwrite,
		MinColumnWidth: cfg.Report.MinColumnWidth,
	}
	options := operations.StageOptions{
		Discovery: discovery,
		Reader:    reader,
		Analyzer:  analytics.NewAnalyzer(logger),
		Format: exporter.FormatOptions{
			DecimalSeparator: cfg.Report.DecimalSeparator,
			PercentSuffix:    cfg.Report.PercentSuffix,
		},
		XLSXWriter: exporter.NewXLSXWriter(logger, writerOptions),
		CSVWriter:  exporter.NewCSVWriter(logger, writerOptions),
	}

	registry := operations.NewRegistry()
	if err := operations.RegisterReportSteps(registry, logger, options); err != nil {
		return nil, fmt.Errorf("failed to register steps: %w", err)
	}

	logger.Debug("Report service initialized",
		slog.String("output_dir", cfg.Paths.OutputDir),
		slog.String("format", cfg.Report.Format),
		slog.Int("batch_concurrency", cfg.Batch.MaxConcurrency))

	return &ReportService{
		cfg:       cfg,
		logger:    infrastructure.WithComponent(logger, "report_service"),
		manager:   operations.NewManager(logger, registry, nil, operations.NewOperationTracer(tracer)),
		discovery: discovery,
		validator: validation.NewFileValidator(logger),
		tracer:    tracer,
		now:       time.Now,
	}, nil
}

// Run produces one report. The run gets a trace ID that tags its log lines.
func (s *ReportService) Run(ctx context.Context, req ReportRequest) (*operations.OperationResponse, error) {
	ctx = infrastructure.EnsureTraceID(ctx)

	if req.InputDir == "" && req.Inputs == (files.InputSet{}) {
		return nil, ErrNoInputs
	}
	if req.InputDir != "" {
		if err := s.validator.ValidateInputDirectory(req.InputDir); err != nil {
			return nil, err
		}
	}

	destination, err := s.destination(req)
	if err != nil {
		return nil, err
	}

	format := req.Format
	if format == "" {
		format = s.cfg.Report.Format
	}

	ctx, span := s.tracer.Start(ctx, "report.run")
	defer span.End()
	infrastructure.SetSpanAttributes(ctx, map[string]interface{}{
		"report.input_dir":   req.InputDir,
		"report.destination": destination,
		"report.format":      format,
	})

	s.logger.InfoContext(ctx, "Report run started",
		slog.String("input_dir", req.InputDir),
		slog.String("destination", destination),
		slog.String("format", format))

	resp, err := s.manager.Execute(ctx, operations.OperationRequest{
		ID:          infrastructure.GetTraceID(ctx),
		InputDir:    req.InputDir,
		Inputs:      req.Inputs,
		Destination: destination,
		Format:      format,
	})
	if err != nil {
		infrastructure.RecordError(ctx, err)
		infrastructure.WithError(s.logger, err).ErrorContext(ctx, "Report run failed",
			slog.String("step", operations.StepOf(err)))
		return resp, err
	}

	s.logger.InfoContext(ctx, "Report run finished",
		slog.Any("files", resp.Outputs),
		slog.Duration("duration", resp.Duration))
	return resp, nil
}

// RunBatch runs every sub-directory of root as its own report. Results are
// returned in directory order; the error joins the failure of every run.
func (s *ReportService) RunBatch(ctx context.Context, root, outputDir string) ([]BatchResult, error) {
	dirs, err := s.discovery.ListDirectories(root)
	if err != nil {
		return nil, err
	}
	if len(dirs) == 0 {
		return nil, fmt.Errorf("%w in %s", ErrNoRunDirectories, root)
	}

	base := s.cfg.ReportFileName(s.now())
	results := make([]BatchResult, len(dirs))

	g := new(errgroup.Group)
	g.SetLimit(s.cfg.Batch.MaxConcurrency)
	for i, dir := range dirs {
		i, dir := i, dir
		results[i].Dir = dir.Path
		g.Go(func() error {
			resp, err := s.Run(ctx, ReportRequest{
				InputDir:  dir.Path,
				OutputDir: outputDir,
				FileName:  base + "_" + dir.Name,
			})
			results[i].Response = resp
			results[i].Err = err
			return nil
		})
	}
	_ = g.Wait()

	var errs []error
	failed := 0
	for _, r := range results {
		if r.Err != nil {
			failed++
			errs = append(errs, fmt.Errorf("%s: %w", r.Dir, r.Err))
		}
	}

	s.logger.InfoContext(ctx, "Batch finished",
		slog.Int("runs", len(results)),
		slog.Int("failed", failed))
	return results, errors.Join(errs...)
}

// destination resolves and prepares the workbook path of a run
func (s *ReportService) destination(req ReportRequest) (string, error) {
	outputDir := req.OutputDir
	if outputDir == "" {
		outputDir = s.cfg.Paths.OutputDir
	}
	if err := s.validator.ValidateOutputDirectory(outputDir); err != nil {
		return "", err
	}

	name := req.FileName
	if name == "" {
		name = s.cfg.ReportFileName(s.now())
	}
	return filepath.Join(outputDir, name+config.WorkbookExtension), nil
}
