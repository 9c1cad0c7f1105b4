package analytics

import (
	"likecli/pkg/contracts/domain"
)

// distribution returns the share (in percent, rounded) of each category
// among values. Values outside categories count towards the total but get
// no column, the same way an unexpected label would in the export.
func distribution[T comparable](values []T, categories []T) []float64 {
	shares := make([]float64, len(categories))
	if len(values) == 0 {
		return shares
	}
	counts := make(map[T]int, len(categories))
	for _, v := range values {
		counts[v]++
	}
	for i, c := range categories {
		shares[i] = Round2(float64(counts[c]) / float64(len(values)) * 100)
	}
	return shares
}

// bandShares adds up the rounded category shares of each band
func bandShares[T comparable](shares []float64, categories []T, bands []domain.Band[T]) []float64 {
	out := make([]float64, len(bands))
	for i, band := range bands {
		var sum float64
		for j, c := range categories {
			if band.Contains(c) {
				sum += shares[j]
			}
		}
		out[i] = Round2(sum)
	}
	return out
}

// SummarizeModuleAccuracy distributes the accuracy classes of each module's
// completed rows. Rows without an accuracy class are not counted.
func SummarizeModuleAccuracy(rows []domain.LearnerModuleRecord, modules []string) []domain.ModuleAccuracyBand {
	perModule := make(map[string][]domain.AccuracyClass, len(modules))
	for _, r := range rows {
		if r.AccuracyClass == "" {
			continue
		}
		perModule[r.Module] = append(perModule[r.Module], r.AccuracyClass)
	}

	out := make([]domain.ModuleAccuracyBand, 0, len(modules))
	for _, module := range modules {
		shares := distribution(perModule[module], domain.AccuracyClasses)
		out = append(out, domain.ModuleAccuracyBand{
			Module: module,
			Shares: shares,
			Bands:  bandShares(shares, domain.AccuracyClasses, domain.AccuracyBands),
		})
	}
	return out
}

// SummarizeSelfAssessment distributes the self-assessed levels of each
// module. The records come from the SelfAssessment export and are not
// restricted to completed learners; a module without records yields zeros.
func SummarizeSelfAssessment(records []domain.SelfAssessmentRecord, modules []string) []domain.ModuleSelfAssessment {
	perModule := make(map[string][]domain.ProficiencyLevel, len(modules))
	for _, r := range records {
		if r.Level == "" {
			continue
		}
		perModule[r.Module] = append(perModule[r.Module], r.Level)
	}

	out := make([]domain.ModuleSelfAssessment, 0, len(modules))
	for _, module := range modules {
		shares := distribution(perModule[module], domain.ProficiencyLevels)
		out = append(out, domain.ModuleSelfAssessment{
			Module: module,
			Shares: shares,
			Bands:  bandShares(shares, domain.ProficiencyLevels, domain.LevelBands),
		})
	}
	return out
}
