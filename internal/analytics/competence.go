package analytics

import (
	"likecli/pkg/contracts/domain"
)

// SummarizeCompetence averages the four competence quadrants per module over
// every completed row of that module, then derives the Incompetent and
// Competent bands from the rounded means.
func SummarizeCompetence(rows []domain.LearnerModuleRecord, modules []string) []domain.ModuleCompetenceSummary {
	perModule := make(map[string][]domain.LearnerModuleRecord, len(modules))
	for _, r := range rows {
		perModule[r.Module] = append(perModule[r.Module], r)
	}

	out := make([]domain.ModuleCompetenceSummary, 0, len(modules))
	for _, module := range modules {
		moduleRows := perModule[module]

		means := make([]domain.Percent, len(domain.CompetenceQuadrants))
		for i, q := range domain.CompetenceQuadrants {
			values := make([]domain.Percent, 0, len(moduleRows))
			for _, r := range moduleRows {
				values = append(values, r.Quadrant(q))
			}
			means[i] = round2Percent(meanOf(values))
		}

		bands := make([]domain.Percent, len(domain.CompetenceBands))
		for i, band := range domain.CompetenceBands {
			sum := domain.Pct(0)
			for j, q := range domain.CompetenceQuadrants {
				if band.Contains(q) {
					sum = sum.Add(means[j])
				}
			}
			bands[i] = round2Percent(sum)
		}

		out = append(out, domain.ModuleCompetenceSummary{Module: module, Means: means, Bands: bands})
	}
	return out
}
