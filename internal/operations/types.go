package operations

import (
	"time"

	"likecli/internal/files"
	"likecli/pkg/contracts/domain"
)

// Step identifiers of the report pipeline
const (
	StepIDDetectInputs = "detect-inputs"
	StepIDLoadTables   = "load-tables"
	StepIDAnalyze      = "analyze"
	StepIDBuildReport  = "build-report"
	StepIDExportReport = "export-report"
)

// Step names
const (
	StepNameDetectInputs = "Input Detection"
	StepNameLoadTables   = "Table Loading"
	StepNameAnalyze      = "Analysis"
	StepNameBuildReport  = "Report Building"
	StepNameExportReport = "Report Export"
)

// Context keys for operation state
const (
	ContextKeyInputs  = "inputs"
	ContextKeyTables  = "tables"
	ContextKeyParsed  = "parsed"
	ContextKeyResults = "results"
	ContextKeyReport  = "report"
	ContextKeyOutputs = "outputs"
)

// Output formats
const (
	FormatXLSX = "xlsx"
	FormatCSV  = "csv"
	FormatBoth = "both"
)

// Default timeouts
const (
	DefaultStepTimeout   = 5 * time.Minute
	DefaultExportTimeout = 2 * time.Minute
)

// OperationRequest describes one report run. Either InputDir or Inputs.Large
// (with the other explicit files) must be set; InputDir wins when both are.
type OperationRequest struct {
	ID          string         `json:"id"`
	InputDir    string         `json:"input_dir,omitempty"`
	Inputs      files.InputSet `json:"inputs"`
	Destination string         `json:"destination"`
	Format      string         `json:"format"`
}

// OperationResponse represents the response from an operation execution
type OperationResponse struct {
	ID       string                `json:"id"`
	Status   OperationStatusValue  `json:"status"`
	Duration time.Duration         `json:"duration"`
	Steps    map[string]*StepState `json:"steps"`
	Outputs  []string              `json:"outputs,omitempty"`
	Report   *domain.Report        `json:"-"`
	Error    string                `json:"error,omitempty"`
}
