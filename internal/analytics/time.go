package analytics

import (
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"

	"likecli/internal/errors"
	"likecli/pkg/contracts/domain"
)

// clockPattern matches "[-]D days HH:MM:SS[.frac]" and "HH:MM:SS[.frac]"
var clockPattern = regexp.MustCompile(
	`^(-)?\s*(?:(\d+)\s*days?,?\s*)?(?:(\d+):([0-5]?\d):([0-5]?\d)(?:\.(\d{1,9}))?)?$`)

// ParseDuration parses a "Sum Time Spent" cell. It accepts timedelta style
// strings ("1 days 02:03:04", "0:30:00.5") and unit strings ("1h30m",
// "1h 30m", "90m"). Empty input is an error.
func ParseDuration(raw string) (time.Duration, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return 0, fmt.Errorf("empty duration")
	}

	if m := clockPattern.FindStringSubmatch(s); m != nil && (m[2] != "" || m[3] != "") {
		return clockDuration(m)
	}

	d, err := time.ParseDuration(strings.ReplaceAll(s, " ", ""))
	if err != nil {
		return 0, fmt.Errorf("unrecognised duration %q", raw)
	}
	return d, nil
}

func clockDuration(m []string) (time.Duration, error) {
	var total time.Duration
	parts := []struct {
		value string
		unit  time.Duration
	}{
		{m[2], 24 * time.Hour},
		{m[3], time.Hour},
		{m[4], time.Minute},
		{m[5], time.Second},
	}
	for _, p := range parts {
		if p.value == "" {
			continue
		}
		n, err := strconv.ParseInt(p.value, 10, 64)
		if err != nil {
			return 0, err
		}
		total += time.Duration(n) * p.unit
	}
	if frac := m[6]; frac != "" {
		ns, err := strconv.ParseInt(frac+strings.Repeat("0", 9-len(frac)), 10, 64)
		if err != nil {
			return 0, err
		}
		total += time.Duration(ns)
	}
	if m[1] == "-" {
		total = -total
	}
	return total, nil
}

// SummarizeTime sums time per learner within each class, then reports the
// mean, min, max and total of those per-learner sums. Any unparsable
// duration fails the whole aggregation.
func SummarizeTime(rows []domain.LearnerModuleRecord) ([]domain.ClassTimeSummary, error) {
	perClass := make(map[string]map[string]time.Duration)

	for _, r := range rows {
		d, err := ParseDuration(r.SumTimeSpent)
		if err != nil {
			return nil, errors.NewAppError(errors.ErrTypeData,
				fmt.Sprintf("cannot parse time spent of %s in %s", r.Learner, r.Module),
				errors.NewMalformedFieldError("Sum Time Spent", r.Row, r.SumTimeSpent, err))
		}
		if r.ClassDescription == "" {
			continue
		}
		learners, ok := perClass[r.ClassDescription]
		if !ok {
			learners = make(map[string]time.Duration)
			perClass[r.ClassDescription] = learners
		}
		learners[r.Learner] += d
	}

	summaries := make([]domain.ClassTimeSummary, 0, len(perClass))
	for class, learners := range perClass {
		summaries = append(summaries, summarizeDurations(class, learners))
	}
	sort.Slice(summaries, func(i, j int) bool {
		return summaries[i].ClassDescription < summaries[j].ClassDescription
	})
	return summaries, nil
}

func summarizeDurations(class string, learners map[string]time.Duration) domain.ClassTimeSummary {
	summary := domain.ClassTimeSummary{ClassDescription: class}
	first := true
	for _, d := range learners {
		summary.Total += d
		if first || d < summary.Min {
			summary.Min = d
		}
		if first || d > summary.Max {
			summary.Max = d
		}
		first = false
	}
	summary.Mean = summary.Total / time.Duration(len(learners))
	return summary
}
