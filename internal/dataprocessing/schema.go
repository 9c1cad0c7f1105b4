package dataprocessing

import (
	"fmt"
	"sort"
	"strings"
)

// SchemaType names the export a table was recognised as
type SchemaType string

const (
	SchemaLargeTable            SchemaType = "LargeTable"
	SchemaMetacognitionProgress SchemaType = "MetacognitionProgress"
	SchemaSelfAssessment        SchemaType = "SelfAssessment"
	SchemaDifficultObjectives   SchemaType = "MostDifficultObjectives"
	SchemaUnknown               SchemaType = "Unknown"
)

// diagnosticSampleSize is how many offered columns an Unknown result lists
const diagnosticSampleSize = 8

// Shape is a header signature: every Required column must be present and at
// least Threshold of the Signature columns. Names are lower case.
type Shape struct {
	Type      SchemaType
	Label     string
	Required  []string
	Signature []string
	Threshold int
}

// Shapes are tried in order; the first match wins.
var Shapes = []Shape{
	{
		Type:     SchemaLargeTable,
		Label:    "Large Table",
		Required: []string{"learner", "module", "completion status"},
		Signature: []string{
			"completion status", "sum time spent", "accuracy-classes",
			"unconscious incompetent", "conscious incompetent",
			"unconscious competent", "conscious competent",
		},
		Threshold: 4,
	},
	{
		Type:     SchemaMetacognitionProgress,
		Label:    "Metacognition Progress",
		Required: []string{"class name", "progress"},
		Signature: []string{
			"initial conscious competence", "initial unconscious competence",
			"improvement conscious competence", "improvement unconscious incompetence",
			"current conscious competence", "current unconscious competence",
		},
		Threshold: 4,
	},
	{
		Type:      SchemaSelfAssessment,
		Label:     "Self-Assessment",
		Required:  []string{"learner", "module", "self assessment"},
		Signature: []string{"self assessment", "average progress", "time", "correct", "wrong", "accuracy"},
		Threshold: 4,
	},
	{
		Type:      SchemaDifficultObjectives,
		Label:     "Most Difficult Objectives",
		Required:  []string{"module", "learning objective"},
		Signature: []string{"learning objective", "unconsciously incompetent", "wrong answers", "open in curator"},
		Threshold: 3,
	},
}

// Detection is the outcome of schema detection
type Detection struct {
	Type    SchemaType
	Reason  string
	Offered []string
}

// Known reports whether a shape matched
func (d Detection) Known() bool {
	return d.Type != SchemaUnknown
}

// DetectSchema classifies a header by the registered shapes
func DetectSchema(columns []string) Detection {
	set := make(map[string]struct{}, len(columns))
	for _, c := range columns {
		if n := normalizeColumn(c); n != "" {
			set[n] = struct{}{}
		}
	}

	for _, shape := range Shapes {
		if ok, hits := shape.matches(set); ok {
			return Detection{
				Type:   shape.Type,
				Reason: fmt.Sprintf("header signature: %s (%d/%d signature columns)", shape.Label, hits, len(shape.Signature)),
			}
		}
	}

	offered := make([]string, 0, len(set))
	for c := range set {
		offered = append(offered, c)
	}
	sort.Strings(offered)
	if len(offered) > diagnosticSampleSize {
		offered = offered[:diagnosticSampleSize]
	}
	return Detection{
		Type:    SchemaUnknown,
		Reason:  fmt.Sprintf("unknown CSV header, columns found (sample): %s", strings.Join(offered, ", ")),
		Offered: offered,
	}
}

func (s Shape) matches(set map[string]struct{}) (bool, int) {
	for _, req := range s.Required {
		if _, ok := set[req]; !ok {
			return false, 0
		}
	}
	hits := 0
	for _, sig := range s.Signature {
		if _, ok := set[sig]; ok {
			hits++
		}
	}
	return hits >= s.Threshold, hits
}

// DetectFile reads only the header row of path and classifies it
func (r *TableReader) DetectFile(path string) (Detection, error) {
	header, err := r.ReadHeader(path)
	if err != nil {
		return Detection{}, err
	}
	return DetectSchema(header), nil
}
