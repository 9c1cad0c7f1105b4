package analytics

import (
	"sort"

	"likecli/pkg/contracts/domain"
)

// SummarizeAccuracy returns the mean accuracy per class, rounded to two
// decimals. Missing values are left out of the mean; a class with no valid
// value gets a missing mean.
func SummarizeAccuracy(rows []domain.LearnerModuleRecord) []domain.ClassAccuracy {
	perClass := make(map[string][]domain.Percent)
	for _, r := range rows {
		if r.ClassDescription == "" {
			continue
		}
		perClass[r.ClassDescription] = append(perClass[r.ClassDescription], r.Accuracy)
	}

	classes := make([]string, 0, len(perClass))
	for class := range perClass {
		classes = append(classes, class)
	}
	sort.Strings(classes)

	out := make([]domain.ClassAccuracy, 0, len(classes))
	for _, class := range classes {
		out = append(out, domain.ClassAccuracy{
			ClassDescription: class,
			MeanAccuracy:     round2Percent(meanOf(perClass[class])),
		})
	}
	return out
}
