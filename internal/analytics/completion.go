package analytics

import (
	"sort"

	"likecli/pkg/contracts/domain"
)

// DeriveCompletedLearners returns the learners whose set of COMPLETED modules
// equals the set of every module completed by anyone in rows. A learner with
// a strict subset is excluded. Rows without a module are ignored; a row
// without a learner still counts toward the module set.
func DeriveCompletedLearners(rows []domain.LearnerModuleRecord) map[string]struct{} {
	allModules := make(map[string]struct{})
	byLearner := make(map[string]map[string]struct{})

	for _, r := range rows {
		if !r.IsCompleted() || r.Module == "" {
			continue
		}
		allModules[r.Module] = struct{}{}
		if r.Learner == "" {
			continue
		}
		modules, ok := byLearner[r.Learner]
		if !ok {
			modules = make(map[string]struct{})
			byLearner[r.Learner] = modules
		}
		modules[r.Module] = struct{}{}
	}

	completed := make(map[string]struct{})
	for learner, modules := range byLearner {
		if sameSet(modules, allModules) {
			completed[learner] = struct{}{}
		}
	}
	return completed
}

// FilterCompleted keeps the COMPLETED rows of learners who finished every
// module seen in this run. Learners and Modules are sorted ascending.
func FilterCompleted(rows []domain.LearnerModuleRecord) domain.CompletionResult {
	completed := DeriveCompletedLearners(rows)

	result := domain.CompletionResult{
		Rows:     make([]domain.LearnerModuleRecord, 0, len(rows)),
		Learners: sortedKeys(completed),
	}

	modules := make(map[string]struct{})
	for _, r := range rows {
		if !r.IsCompleted() || r.Module == "" {
			continue
		}
		if _, ok := completed[r.Learner]; !ok {
			continue
		}
		result.Rows = append(result.Rows, r)
		modules[r.Module] = struct{}{}
	}
	result.Modules = sortedKeys(modules)
	return result
}

func sameSet(a, b map[string]struct{}) bool {
	if len(a) != len(b) {
		return false
	}
	for k := range a {
		if _, ok := b[k]; !ok {
			return false
		}
	}
	return true
}

func sortedKeys(set map[string]struct{}) []string {
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
