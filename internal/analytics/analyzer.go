package analytics

import (
	"context"
	"log/slog"

	"likecli/pkg/contracts/domain"
)

// Inputs are the parsed exports of one run.
// Objectives is the zero value when the MDLO export was not supplied.
type Inputs struct {
	Large          []domain.LearnerModuleRecord
	Metacognition  domain.MetacognitionSnapshot
	SelfAssessment []domain.SelfAssessmentRecord
	Objectives     domain.ObjectiveTable
}

// Results holds every summary of one run
type Results struct {
	Completion     domain.CompletionResult
	Time           []domain.ClassTimeSummary
	Accuracy       []domain.ClassAccuracy
	Metacognition  domain.MetacognitionProgress
	ModuleAccuracy []domain.ModuleAccuracyBand
	SelfAssessment []domain.ModuleSelfAssessment
	Competence     []domain.ModuleCompetenceSummary
	Objectives     domain.ObjectiveTable
}

// ParticipantsCompleted is the number of learners who finished every module
func (r *Results) ParticipantsCompleted() int {
	return len(r.Completion.Learners)
}

// Analyzer runs the aggregation stages in order
type Analyzer struct {
	logger *slog.Logger
}

// NewAnalyzer creates an analyzer; a nil logger uses slog.Default()
func NewAnalyzer(logger *slog.Logger) *Analyzer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Analyzer{logger: logger.With(slog.String("component", "analyzer"))}
}

// Analyze computes all summaries. It only fails on an unparsable duration.
func (a *Analyzer) Analyze(ctx context.Context, in Inputs) (*Results, error) {
	completion := FilterCompleted(in.Large)
	a.logger.InfoContext(ctx, "Completion filter applied",
		slog.Int("input_rows", len(in.Large)),
		slog.Int("completed_rows", len(completion.Rows)),
		slog.Int("learners", len(completion.Learners)),
		slog.Int("modules", len(completion.Modules)))

	if len(completion.Learners) == 0 {
		a.logger.WarnContext(ctx, "No learner completed every module")
	}
	if unknown := unknownAccuracyClasses(completion.Rows); len(unknown) > 0 {
		a.logger.WarnContext(ctx, "Unknown accuracy classes count toward module totals only",
			slog.Any("classes", unknown))
	}

	timeSummary, err := SummarizeTime(completion.Rows)
	if err != nil {
		a.logger.ErrorContext(ctx, "Time aggregation failed", slog.String("error", err.Error()))
		return nil, err
	}

	results := &Results{
		Completion:     completion,
		Time:           timeSummary,
		Accuracy:       SummarizeAccuracy(completion.Rows),
		Metacognition:  ConvertMetacognition(in.Metacognition),
		ModuleAccuracy: SummarizeModuleAccuracy(completion.Rows, completion.Modules),
		SelfAssessment: SummarizeSelfAssessment(in.SelfAssessment, completion.Modules),
		Competence:     SummarizeCompetence(completion.Rows, completion.Modules),
		Objectives:     SelectDifficultObjectives(in.Objectives),
	}

	a.logger.DebugContext(ctx, "Analysis complete",
		slog.Int("classes", len(results.Time)),
		slog.Int("objectives", len(results.Objectives.Rows)))
	return results, nil
}

// unknownAccuracyClasses lists the distinct non-empty classes outside the fixed set
func unknownAccuracyClasses(rows []domain.LearnerModuleRecord) []string {
	seen := make(map[string]struct{})
	for _, r := range rows {
		if r.AccuracyClass != "" && !r.AccuracyClass.IsKnown() {
			seen[string(r.AccuracyClass)] = struct{}{}
		}
	}
	return sortedKeys(seen)
}
