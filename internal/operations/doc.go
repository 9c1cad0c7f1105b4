// Package operations runs the report pipeline as a sequence of registered
// steps.
//
// Core Components:
//
// Manager: executes the registered steps in dependency order, one at a time.
// The first failing step aborts the run and every step after it is marked
// skipped. Steps are not retried.
//
// Step: a single unit of work. The report pipeline registers five of them:
// detect-inputs, load-tables, analyze, build-report and export-report.
//
// Registry: holds the steps and orders them topologically.
//
// State: tracks the run and each step. Steps hand their results to the next
// step through the operation context.
//
// Example usage:
//
//	registry := operations.NewRegistry()
//	if err := operations.RegisterReportSteps(registry, logger, operations.StageOptions{}); err != nil {
//	    return err
//	}
//	manager := operations.NewManager(logger, registry, nil, nil)
//	resp, err := manager.Execute(ctx, operations.OperationRequest{
//	    InputDir:    "exports/2024-01",
//	    Destination: "reports/20240131_Like_Auswertung.xlsx",
//	})
package operations
