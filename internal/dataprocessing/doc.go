// Package dataprocessing is the ingestion boundary for the e-learning platform
// exports. It loads semicolon-separated files into raw tables, recognises which
// export a table is from its header, and converts raw cells into the typed
// records of pkg/contracts/domain.
//
// # Architecture
//
// The package is organized into three components:
//
// 1. TableReader: reads a file (UTF-8 with or without BOM) into a RawTable
// 2. Schema detection: matches a header against the four known signatures
// 3. Record parsing: turns RawTable rows into domain records
//
// # Usage
//
//	reader := dataprocessing.NewTableReader(logger, ';')
//	detection, err := reader.DetectFile("export.csv")
//	if err != nil {
//	    return err
//	}
//	if detection.Type == dataprocessing.SchemaLargeTable {
//	    table, err := reader.ReadFile(ctx, "export.csv")
//	    ...
//	    records, err := dataprocessing.ParseLargeTable(table)
//	}
//
// # Error Handling
//
// Missing columns and empty tables are DATA errors. Percent cells that cannot
// be parsed become missing values; they never fail a run.
package dataprocessing
