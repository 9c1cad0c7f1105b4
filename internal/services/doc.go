// Package services is the entry point the command line tools call into. It
// turns the application configuration into a wired report pipeline and runs
// it once or for a whole batch of run directories.
//
// # Usage
//
//	svc, err := services.NewReportService(cfg, logger, nil)
//	if err != nil {
//	    return err
//	}
//	result, err := svc.Run(ctx, services.ReportRequest{InputDir: "exports"})
//
// RunBatch treats every sub-directory of a root as an independent run and
// processes them concurrently, bounded by Batch.MaxConcurrency. Every run
// writes its own file, named after its directory, and a failing run does not
// stop the others.
package services
