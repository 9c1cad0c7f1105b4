package operations

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"likecli/internal/analytics"
	"likecli/internal/dataprocessing"
	"likecli/internal/exporter"
	"likecli/internal/files"
	"likecli/pkg/contracts/domain"
)

// StageOptions carries the components the pipeline steps delegate to
type StageOptions struct {
	Discovery  *files.Discovery
	Reader     *dataprocessing.TableReader
	Analyzer   *analytics.Analyzer
	Format     exporter.FormatOptions
	XLSXWriter *exporter.XLSXWriter
	CSVWriter  *exporter.CSVWriter
}

// withDefaults fills unset components with their default construction
func (o StageOptions) withDefaults(logger *slog.Logger) StageOptions {
	if o.Reader == nil {
		o.Reader = dataprocessing.NewTableReader(logger, dataprocessing.DefaultDelimiter)
	}
	if o.Discovery == nil {
		o.Discovery = files.NewDiscovery(logger, o.Reader)
	}
	if o.Analyzer == nil {
		o.Analyzer = analytics.NewAnalyzer(logger)
	}
	if o.XLSXWriter == nil {
		o.XLSXWriter = exporter.NewXLSXWriter(logger, exporter.WriterOptions{Overwrite: true})
	}
	if o.CSVWriter == nil {
		o.CSVWriter = exporter.NewCSVWriter(logger, exporter.WriterOptions{Overwrite: true})
	}
	return o
}

// LoadedTables are the raw exports of one run. Objectives is nil when the
// MDLO export was not supplied.
type LoadedTables struct {
	Large          *dataprocessing.RawTable
	Metacognition  *dataprocessing.RawTable
	SelfAssessment *dataprocessing.RawTable
	Objectives     *dataprocessing.RawTable
}

// RegisterReportSteps registers the five report steps on registry
func RegisterReportSteps(registry *Registry, logger *slog.Logger, options StageOptions) error {
	if logger == nil {
		logger = slog.Default()
	}
	options = options.withDefaults(logger)

	for _, step := range []Step{
		NewDetectInputsStage(logger, options.Discovery),
		NewLoadTablesStage(logger, options.Reader),
		NewAnalyzeStage(logger, options.Analyzer),
		NewBuildReportStage(logger, options.Format),
		NewExportReportStage(logger, options.XLSXWriter, options.CSVWriter),
	} {
		if err := registry.Register(step); err != nil {
			return err
		}
	}
	return registry.ValidateDependencies()
}

// contextValue fetches a typed value a previous step stored in state
func contextValue[T any](state *OperationState, key string) (T, error) {
	var zero T
	raw, ok := state.GetContext(key)
	if !ok {
		return zero, fmt.Errorf("operation context has no %q", key)
	}
	value, ok := raw.(T)
	if !ok {
		return zero, fmt.Errorf("operation context %q has type %T", key, raw)
	}
	return value, nil
}

// DetectInputsStage finds and checks the export files of a run
type DetectInputsStage struct {
	BaseStage
	logger    *slog.Logger
	discovery *files.Discovery
}

// NewDetectInputsStage creates the input detection step
func NewDetectInputsStage(logger *slog.Logger, discovery *files.Discovery) *DetectInputsStage {
	return &DetectInputsStage{
		BaseStage: NewBaseStage(StepIDDetectInputs, StepNameDetectInputs, nil),
		logger:    logger.With(slog.String("step", StepIDDetectInputs)),
		discovery: discovery,
	}
}

// Validate requires either an input directory or explicit input files
func (s *DetectInputsStage) Validate(state *OperationState) error {
	req := state.Request
	if req.InputDir == "" && req.Inputs == (files.InputSet{}) {
		return fmt.Errorf("neither an input directory nor input files were given")
	}
	return nil
}

// Execute classifies the directory, or verifies the explicit files, and
// stores the resulting InputSet
func (s *DetectInputsStage) Execute(ctx context.Context, state *OperationState) error {
	stepState := state.GetStage(s.ID())
	inputs := state.Request.Inputs

	if dir := state.Request.InputDir; dir != "" {
		scan, err := s.discovery.Scan(dir)
		if err != nil {
			return err
		}
		inputs = scan.Inputs
		stepState.SetMetadata("unknown_files", len(scan.Unknown))
		stepState.SetMetadata("conflicts", len(scan.Conflicts))
	} else if err := s.discovery.Verify(inputs); err != nil {
		return err
	}

	if err := inputs.Validate(); err != nil {
		s.logger.ErrorContext(ctx, "Mandatory export missing",
			slog.String("operation_id", state.ID),
			slog.String("error", err.Error()))
		return err
	}

	if inputs.Objectives == "" {
		s.logger.InfoContext(ctx, "No difficult objectives export, sheet will be empty",
			slog.String("operation_id", state.ID))
	}

	state.SetContext(ContextKeyInputs, inputs)
	return nil
}

// LoadTablesStage reads the exports and parses them into typed records
type LoadTablesStage struct {
	BaseStage
	logger *slog.Logger
	reader *dataprocessing.TableReader
}

// NewLoadTablesStage creates the table loading step
func NewLoadTablesStage(logger *slog.Logger, reader *dataprocessing.TableReader) *LoadTablesStage {
	return &LoadTablesStage{
		BaseStage: NewBaseStage(StepIDLoadTables, StepNameLoadTables, []string{StepIDDetectInputs}),
		logger:    logger.With(slog.String("step", StepIDLoadTables)),
		reader:    reader,
	}
}

// Execute loads every file of the InputSet
func (s *LoadTablesStage) Execute(ctx context.Context, state *OperationState) error {
	inputs, err := contextValue[files.InputSet](state, ContextKeyInputs)
	if err != nil {
		return err
	}

	var tables LoadedTables
	for _, slot := range []struct {
		path  string
		table **dataprocessing.RawTable
	}{
		{inputs.Large, &tables.Large},
		{inputs.Metacognition, &tables.Metacognition},
		{inputs.SelfAssessment, &tables.SelfAssessment},
		{inputs.Objectives, &tables.Objectives},
	} {
		if slot.path == "" {
			continue
		}
		table, err := s.reader.ReadFile(ctx, slot.path)
		if err != nil {
			return err
		}
		*slot.table = table
	}
	state.SetContext(ContextKeyTables, tables)

	parsed, err := parseTables(tables)
	if err != nil {
		return err
	}

	stepState := state.GetStage(s.ID())
	stepState.SetMetadata("large_rows", len(parsed.Large))
	stepState.SetMetadata("self_assessment_rows", len(parsed.SelfAssessment))
	stepState.SetMetadata("objective_rows", len(parsed.Objectives.Rows))

	state.SetContext(ContextKeyParsed, parsed)
	return nil
}

func parseTables(tables LoadedTables) (analytics.Inputs, error) {
	large, err := dataprocessing.ParseLargeTable(tables.Large)
	if err != nil {
		return analytics.Inputs{}, err
	}
	snapshot, err := dataprocessing.ParseMetacognition(tables.Metacognition)
	if err != nil {
		return analytics.Inputs{}, err
	}
	self, err := dataprocessing.ParseSelfAssessment(tables.SelfAssessment)
	if err != nil {
		return analytics.Inputs{}, err
	}
	return analytics.Inputs{
		Large:          large,
		Metacognition:  snapshot,
		SelfAssessment: self,
		Objectives:     dataprocessing.ParseObjectives(tables.Objectives),
	}, nil
}

// AnalyzeStage runs the aggregations
type AnalyzeStage struct {
	BaseStage
	analyzer *analytics.Analyzer
}

// NewAnalyzeStage creates the analysis step
func NewAnalyzeStage(logger *slog.Logger, analyzer *analytics.Analyzer) *AnalyzeStage {
	return &AnalyzeStage{
		BaseStage: NewBaseStage(StepIDAnalyze, StepNameAnalyze, []string{StepIDLoadTables}),
		analyzer:  analyzer,
	}
}

// Execute computes the results from the parsed exports
func (s *AnalyzeStage) Execute(ctx context.Context, state *OperationState) error {
	parsed, err := contextValue[analytics.Inputs](state, ContextKeyParsed)
	if err != nil {
		return err
	}

	results, err := s.analyzer.Analyze(ctx, parsed)
	if err != nil {
		return err
	}

	state.GetStage(s.ID()).SetMetadata("participants_completed", results.ParticipantsCompleted())
	state.SetContext(ContextKeyResults, results)
	return nil
}

// BuildReportStage lays the results out as report sheets
type BuildReportStage struct {
	BaseStage
	logger *slog.Logger
	format exporter.FormatOptions
}

// NewBuildReportStage creates the report building step
func NewBuildReportStage(logger *slog.Logger, format exporter.FormatOptions) *BuildReportStage {
	return &BuildReportStage{
		BaseStage: NewBaseStage(StepIDBuildReport, StepNameBuildReport, []string{StepIDAnalyze}),
		logger:    logger.With(slog.String("step", StepIDBuildReport)),
		format:    format,
	}
}

// Execute builds the report
func (s *BuildReportStage) Execute(ctx context.Context, state *OperationState) error {
	results, err := contextValue[*analytics.Results](state, ContextKeyResults)
	if err != nil {
		return err
	}

	report, err := exporter.BuildReport(results, s.format)
	if err != nil {
		return err
	}

	s.logger.DebugContext(ctx, "Report built",
		slog.String("operation_id", state.ID),
		slog.Int("sheets", report.Len()))
	state.SetContext(ContextKeyReport, report)
	return nil
}

// ExportReportStage writes the report to its destination
type ExportReportStage struct {
	BaseStage
	logger *slog.Logger
	xlsx   *exporter.XLSXWriter
	csv    *exporter.CSVWriter
}

// NewExportReportStage creates the export step
func NewExportReportStage(logger *slog.Logger, xlsx *exporter.XLSXWriter, csv *exporter.CSVWriter) *ExportReportStage {
	return &ExportReportStage{
		BaseStage: NewBaseStage(StepIDExportReport, StepNameExportReport, []string{StepIDBuildReport}),
		logger:    logger.With(slog.String("step", StepIDExportReport)),
		xlsx:      xlsx,
		csv:       csv,
	}
}

// Validate checks the destination and output format
func (s *ExportReportStage) Validate(state *OperationState) error {
	if state.Request.Destination == "" {
		return fmt.Errorf("no destination given")
	}
	switch state.Request.Format {
	case "", FormatXLSX, FormatCSV, FormatBoth:
		return nil
	}
	return fmt.Errorf("unsupported output format %q", state.Request.Format)
}

// Execute writes the workbook and/or the per-sheet CSV files
func (s *ExportReportStage) Execute(ctx context.Context, state *OperationState) error {
	report, err := contextValue[*domain.Report](state, ContextKeyReport)
	if err != nil {
		return err
	}

	format := state.Request.Format
	if format == "" {
		format = FormatXLSX
	}
	destination := state.Request.Destination

	var outputs []string
	if format == FormatXLSX || format == FormatBoth {
		path, err := s.xlsx.Write(ctx, report, destination)
		if err != nil {
			return err
		}
		outputs = append(outputs, path)
	}
	if format == FormatCSV || format == FormatBoth {
		paths, err := s.csv.Write(ctx, report, destination)
		if err != nil {
			// the workbook alone is not a complete report
			for _, path := range outputs {
				if rmErr := os.Remove(path); rmErr != nil {
					s.logger.WarnContext(ctx, "Failed to remove workbook of failed export",
						slog.String("path", path),
						slog.String("error", rmErr.Error()))
				}
			}
			return err
		}
		outputs = append(outputs, paths...)
	}

	s.logger.InfoContext(ctx, "Report exported",
		slog.String("operation_id", state.ID),
		slog.String("format", format),
		slog.Any("files", outputs))
	state.SetContext(ContextKeyOutputs, outputs)
	return nil
}
