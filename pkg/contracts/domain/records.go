package domain

import "time"

// CompletionStatusCompleted is the only status value counted as a finished module
const CompletionStatusCompleted = "COMPLETED"

// Percent is a percentage value that may be missing in the source data
type Percent struct {
	Value float64 `json:"value"`
	Valid bool    `json:"valid"`
}

// Pct returns a valid Percent
func Pct(v float64) Percent {
	return Percent{Value: v, Valid: true}
}

// MissingPercent is the zero Percent, used for absent or unparsable cells
var MissingPercent = Percent{}

// Add sums two percentages; the result is missing if either side is
func (p Percent) Add(o Percent) Percent {
	if !p.Valid || !o.Valid {
		return MissingPercent
	}
	return Pct(p.Value + o.Value)
}

// LearnerModuleRecord is one LargeTable row: a learner's progress in one module
type LearnerModuleRecord struct {
	Row              int    `json:"row"`
	Learner          string `json:"learner"`
	Module           string `json:"module"`
	ClassDescription string `json:"class_description"`
	CompletionStatus string `json:"completion_status"`
	// SumTimeSpent stays raw; it is only parsed by the time aggregation
	SumTimeSpent  string        `json:"sum_time_spent"`
	Accuracy      Percent       `json:"accuracy"`
	AccuracyClass AccuracyClass `json:"accuracy_class"`
	Quadrants     [4]Percent    `json:"quadrants"`
}

// Quadrant returns the competence share for q
func (r LearnerModuleRecord) Quadrant(q CompetenceQuadrant) Percent {
	return r.Quadrants[q]
}

// IsCompleted reports whether the row's completion status is exactly COMPLETED
func (r LearnerModuleRecord) IsCompleted() bool {
	return r.CompletionStatus == CompletionStatusCompleted
}

// SelfAssessmentRecord is one SelfAssessment row
type SelfAssessmentRecord struct {
	Row     int              `json:"row"`
	Learner string           `json:"learner"`
	Module  string           `json:"module"`
	Level   ProficiencyLevel `json:"level"`
}

// MetacognitionSnapshot holds the scalar fields of the MetacognitionProgress table.
// Values are fractions, e.g. 0.37 for 37%.
type MetacognitionSnapshot struct {
	InitialUnconsciousIncompetence     float64 `json:"initial_unconscious_incompetence"`
	InitialConsciousIncompetence       float64 `json:"initial_conscious_incompetence"`
	InitialUnconsciousCompetence       float64 `json:"initial_unconscious_competence"`
	InitialConsciousCompetence         float64 `json:"initial_conscious_competence"`
	ImprovementConsciousCompetence     float64 `json:"improvement_conscious_competence"`
	ImprovementUnconsciousIncompetence float64 `json:"improvement_unconscious_incompetence"`
}

// ObjectiveRow is one row of the MostDifficultObjectives table
type ObjectiveRow struct {
	Cells                    []string `json:"cells"`
	UnconsciouslyIncompetent Percent  `json:"unconsciously_incompetent"`
}

// ObjectiveTable is the MostDifficultObjectives export with its own column order
type ObjectiveTable struct {
	Columns []string       `json:"columns"`
	Rows    []ObjectiveRow `json:"rows"`
}

// Objective table column names
const (
	ObjectiveColumnModule                   = "Module"
	ObjectiveColumnLearningObjective        = "Learning Objective"
	ObjectiveColumnUnconsciouslyIncompetent = "Unconsciously Incompetent"
	ObjectiveColumnWrongAnswers             = "Wrong Answers"
	ObjectiveColumnOpenInCurator            = "Open in Curator"
)

// CanonicalObjectiveColumns is used when the objectives table was not supplied
var CanonicalObjectiveColumns = []string{
	ObjectiveColumnModule,
	ObjectiveColumnLearningObjective,
	ObjectiveColumnUnconsciouslyIncompetent,
	ObjectiveColumnWrongAnswers,
}

// CompletionResult is the outcome of the completion filter
type CompletionResult struct {
	Rows     []LearnerModuleRecord `json:"rows"`
	Learners []string              `json:"learners"`
	Modules  []string              `json:"modules"`
}

// ClassTimeSummary aggregates per-learner total time within one class
type ClassTimeSummary struct {
	ClassDescription string        `json:"class_description"`
	Mean             time.Duration `json:"mean"`
	Min              time.Duration `json:"min"`
	Max              time.Duration `json:"max"`
	Total            time.Duration `json:"total"`
}

// ClassAccuracy is the mean accuracy of one class
type ClassAccuracy struct {
	ClassDescription string  `json:"class_description"`
	MeanAccuracy     Percent `json:"mean_accuracy"`
}

// MetacognitionEntry is one labelled integer percentage
type MetacognitionEntry struct {
	Label string `json:"label"`
	Value int    `json:"value"`
}

// MetacognitionProgress holds the six converted values in presentation order
type MetacognitionProgress struct {
	Entries []MetacognitionEntry `json:"entries"`
}

// ModuleAccuracyBand is the accuracy class distribution of one module.
// Shares follow AccuracyClasses and Bands follow AccuracyBands.
type ModuleAccuracyBand struct {
	Module string    `json:"module"`
	Shares []float64 `json:"shares"`
	Bands  []float64 `json:"bands"`
}

// ModuleSelfAssessment is the self-assessed level distribution of one module.
// Shares follow ProficiencyLevels and Bands follow LevelBands.
type ModuleSelfAssessment struct {
	Module string    `json:"module"`
	Shares []float64 `json:"shares"`
	Bands  []float64 `json:"bands"`
}

// ModuleCompetenceSummary holds quadrant means of one module.
// Means follow CompetenceQuadrants and Bands follow CompetenceBands.
type ModuleCompetenceSummary struct {
	Module string    `json:"module"`
	Means  []Percent `json:"means"`
	Bands  []Percent `json:"bands"`
}
