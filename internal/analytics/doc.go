// Package analytics turns the parsed platform exports into summary values.
//
// Every function in this package is pure: it reads its arguments, never
// mutates them, and keeps no package-level state. The Analyzer chains the
// stages in the order the report needs them:
//
//	FilterCompleted -> SummarizeTime, SummarizeAccuracy,
//	                   SummarizeModuleAccuracy, SummarizeCompetence
//	ConvertMetacognition, SummarizeSelfAssessment, SelectDifficultObjectives
//
// Values are rounded to two decimals with Round2. Formatting for display is
// left to the exporter package.
package analytics
