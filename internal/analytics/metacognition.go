package analytics

import (
	"math"

	"likecli/pkg/contracts/domain"
)

// Metacognition labels in presentation order
const (
	LabelInitialUnconsciousIncompetence   = "Initial Unconscious Incompetence (UI)"
	LabelInitialConsciousIncompetence     = "Initial Conscious Incompetence (CI)"
	LabelInitialUnconsciousCompetence     = "Initial Unconscious Competence (UC)"
	LabelInitialConsciousCompetence       = "Initial Conscious Competence (CC)"
	LabelKnowledgeIncrease                = "Knowledge increase (Metacognition Progress)"
	LabelReductionUnconsciousIncompetence = "Reduction Unconscious Incompetence"
)

// ConvertPercent maps a fraction to an integer percentage: round(|x| * 100).
// The sign is dropped, so -0.37 and 0.37 both give 37.
func ConvertPercent(x float64) int {
	return int(math.Round(math.Abs(x) * 100))
}

// ConvertMetacognition lays out the six snapshot fields as labelled integer percentages
func ConvertMetacognition(snap domain.MetacognitionSnapshot) domain.MetacognitionProgress {
	values := []struct {
		label string
		value float64
	}{
		{LabelInitialUnconsciousIncompetence, snap.InitialUnconsciousIncompetence},
		{LabelInitialConsciousIncompetence, snap.InitialConsciousIncompetence},
		{LabelInitialUnconsciousCompetence, snap.InitialUnconsciousCompetence},
		{LabelInitialConsciousCompetence, snap.InitialConsciousCompetence},
		{LabelKnowledgeIncrease, snap.ImprovementConsciousCompetence},
		{LabelReductionUnconsciousIncompetence, snap.ImprovementUnconsciousIncompetence},
	}

	progress := domain.MetacognitionProgress{Entries: make([]domain.MetacognitionEntry, 0, len(values))}
	for _, v := range values {
		progress.Entries = append(progress.Entries, domain.MetacognitionEntry{
			Label: v.label,
			Value: ConvertPercent(v.value),
		})
	}
	return progress
}
