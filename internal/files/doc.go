// Package files locates the platform exports for a report run.
//
// Discovery scans a directory for CSV files, reads only their header rows and
// assigns each file to one of the four input slots (Large Table,
// Metacognition Progress, Self-Assessment, Most Difficult Objectives). Files
// whose header matches no known export are reported, not guessed.
//
// Example usage:
//
//	discovery := files.NewDiscovery(logger, nil)
//	scan, err := discovery.Scan("exports/2024-01")
//	if err != nil {
//	    return err
//	}
//	if err := scan.Inputs.Validate(); err != nil {
//	    return err // MISSING_INPUT
//	}
package files
