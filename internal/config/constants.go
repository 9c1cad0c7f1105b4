package config

// Application constants for the LIKE report tools
const (
	// Application Info
	AppName = "LIKE Report Generator"

	// File Paths
	DefaultOutputFolder = "LIKE_Output"
	DefaultLogsDir      = "logs"

	// Report naming
	DefaultFileNamePattern = "20060102_Like_Auswertung"
	WorkbookExtension      = ".xlsx"

	// Layout
	DefaultMinColumnWidth = 10

	// Log Settings
	DefaultLogLevel  = "info"
	DefaultLogFormat = "json"
	DefaultLogFile   = "likereport.log"

	// Batch
	DefaultBatchConcurrency = 4
)
