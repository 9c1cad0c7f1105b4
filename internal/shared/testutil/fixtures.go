package testutil

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// Scenario is a complete set of platform exports, each as header plus rows
type Scenario struct {
	Large          Table
	Metacognition  Table
	SelfAssessment Table
	Objectives     *Table
}

// Table is a header and its rows
type Table struct {
	Header []string
	Rows   [][]string
}

// InputPaths are the files written by WriteInputSet
type InputPaths struct {
	Large          string
	Metacognition  string
	SelfAssessment string
	Objectives     string
}

// LargeHeader is the LargeTable header used by the fixtures
var LargeHeader = []string{
	"Learner", "Module", "Class Description", "Completion Status", "Sum Time Spent",
	"Accuracy", "Accuracy-Classes", "Unconscious Incompetent", "Conscious Incompetent",
	"Unconscious Competent", "Conscious Competent",
}

// MetacognitionHeader is the MetacognitionProgress header used by the fixtures
var MetacognitionHeader = []string{
	"Class Name", "Progress", "Initial Conscious Competence", "Initial Unconscious Competence",
	"Initial Conscious Incompetence", "Initial Unconscious Incompetence",
	"Improvement Conscious Competence", "Improvement Unconscious Incompetence",
	"Current Conscious Competence", "Current Unconscious Competence",
}

// SelfAssessmentHeader is the SelfAssessment header used by the fixtures
var SelfAssessmentHeader = []string{
	"Learner", "Module", "Self Assessment", "Average Progress", "Time", "Correct", "Wrong", "Accuracy",
}

// ObjectivesHeader is the MostDifficultObjectives header used by the fixtures
var ObjectivesHeader = []string{
	"Module", "Learning Objective", "Unconsciously Incompetent", "Wrong Answers", "Open in Curator",
}

// DefaultScenario has two classes and two modules. alice, bob (class A) and
// dave (class B) completed both modules; carol did not finish M2.
func DefaultScenario() Scenario {
	return Scenario{
		Large: Table{
			Header: LargeHeader,
			Rows: [][]string{
				{"alice", "M1", "A", "COMPLETED", "1:00:00", "80 %", "firm knowledge", "10 %", "20 %", "30 %", "40 %"},
				{"alice", "M2", "A", "COMPLETED", "0:30:00", "60 %", "profits from re-training / webinar", "20 %", "20 %", "30 %", "30 %"},
				{"bob", "M1", "A", "COMPLETED", "2:00:00", "90 %", "firm knowledge", "0 %", "10 %", "40 %", "50 %"},
				{"bob", "M2", "A", "COMPLETED", "0:15:30", "40 %", "hands-on classroom training needed", "40 %", "30 %", "20 %", "10 %"},
				{"carol", "M1", "B", "COMPLETED", "0:50:00", "70 %", "competent; training voluntary - no immediate need", "10 %", "10 %", "40 %", "40 %"},
				{"carol", "M2", "B", "IN PROGRESS", "0:05:00", "", "", "", "", "", ""},
				{"dave", "M1", "B", "COMPLETED", "0:20:00", "100 %", "firm knowledge", "0 %", "0 %", "50 %", "50 %"},
				{"dave", "M2", "B", "COMPLETED", "0:10:00", "n/a", "competent; training voluntary - no immediate need", "10 %", "10 %", "40 %", "40 %"},
			},
		},
		Metacognition: Table{
			Header: MetacognitionHeader,
			Rows: [][]string{
				{"All", "0.5", "0.25", "0.1", "0.3", "0.35", "0.37", "-0.12", "0.6", "0.2"},
			},
		},
		SelfAssessment: Table{
			Header: SelfAssessmentHeader,
			Rows: [][]string{
				{"alice", "M1", "Expert", "100", "1:00:00", "8", "2", "80"},
				{"bob", "M1", "Competent", "100", "2:00:00", "9", "1", "90"},
				{"dave", "M1", "Proficient", "100", "0:20:00", "10", "0", "100"},
				{"carol", "M1", "Novice", "100", "0:50:00", "7", "3", "70"},
				{"alice", "M2", "Novice", "100", "0:30:00", "6", "4", "60"},
				{"bob", "M2", "Advanced beginner", "100", "0:15:30", "4", "6", "40"},
			},
		},
		Objectives: &Table{
			Header: ObjectivesHeader,
			Rows: [][]string{
				{"M1", "LO1", "10%", "3", "https://curator/lo1"},
				{"M1", "LO2", "40%", "7", "https://curator/lo2"},
				{"M2", "LO3", "25%", "5", "https://curator/lo3"},
				{"M2", "LO4", "", "1", "https://curator/lo4"},
				{"M2", "LO5", "40%", "8", "https://curator/lo5"},
				{"M2", "LO6", "90%", "9", "https://curator/lo6"},
			},
		},
	}
}

// WriteCSV writes a semicolon-separated file with a UTF-8 BOM and returns its path
func WriteCSV(t *testing.T, dir, name string, table Table) string {
	t.Helper()

	path := filepath.Join(dir, name)
	file, err := os.Create(path)
	require.NoError(t, err)
	defer file.Close()

	_, err = file.Write([]byte{0xEF, 0xBB, 0xBF})
	require.NoError(t, err)

	w := csv.NewWriter(file)
	w.Comma = ';'
	require.NoError(t, w.Write(table.Header))
	require.NoError(t, w.WriteAll(table.Rows))
	return path
}

// WriteInputSet writes every table of the scenario into dir.
// Objectives is left empty when the scenario has none.
func WriteInputSet(t *testing.T, dir string, s Scenario) InputPaths {
	t.Helper()

	paths := InputPaths{
		Large:          WriteCSV(t, dir, "large_table.csv", s.Large),
		Metacognition:  WriteCSV(t, dir, "metacognition_progress.csv", s.Metacognition),
		SelfAssessment: WriteCSV(t, dir, "self_assessment.csv", s.SelfAssessment),
	}
	if s.Objectives != nil {
		paths.Objectives = WriteCSV(t, dir, "difficult_objectives.csv", *s.Objectives)
	}
	return paths
}
