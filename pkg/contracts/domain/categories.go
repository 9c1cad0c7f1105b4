package domain

// AccuracyClass is the categorical accuracy bucket exported per learner and module
type AccuracyClass string

const (
	AccuracyFirmKnowledge   AccuracyClass = "firm knowledge"
	AccuracyCompetentNoNeed AccuracyClass = "competent; training voluntary - no immediate need"
	AccuracyRetraining      AccuracyClass = "profits from re-training / webinar"
	AccuracyHandsOnTraining AccuracyClass = "hands-on classroom training needed"
)

// AccuracyClasses lists the known accuracy classes in presentation order
var AccuracyClasses = []AccuracyClass{
	AccuracyFirmKnowledge,
	AccuracyCompetentNoNeed,
	AccuracyRetraining,
	AccuracyHandsOnTraining,
}

// IsKnown reports whether c is one of the fixed accuracy classes
func (c AccuracyClass) IsKnown() bool {
	for _, known := range AccuracyClasses {
		if c == known {
			return true
		}
	}
	return false
}

// ProficiencyLevel is a learner's self-assessed level for a module
type ProficiencyLevel string

const (
	LevelNovice           ProficiencyLevel = "Novice"
	LevelAdvancedBeginner ProficiencyLevel = "Advanced beginner"
	LevelCompetent        ProficiencyLevel = "Competent"
	LevelProficient       ProficiencyLevel = "Proficient"
	LevelExpert           ProficiencyLevel = "Expert"
)

// ProficiencyLevels lists the known levels in presentation order
var ProficiencyLevels = []ProficiencyLevel{
	LevelNovice,
	LevelAdvancedBeginner,
	LevelCompetent,
	LevelProficient,
	LevelExpert,
}

// CompetenceQuadrant identifies one of the four metacognition quadrants
type CompetenceQuadrant int

const (
	UnconsciousIncompetent CompetenceQuadrant = iota
	ConsciousIncompetent
	UnconsciousCompetent
	ConsciousCompetent
)

// CompetenceQuadrants lists the quadrants in presentation order
var CompetenceQuadrants = []CompetenceQuadrant{
	UnconsciousIncompetent,
	ConsciousIncompetent,
	UnconsciousCompetent,
	ConsciousCompetent,
}

// Column returns the LargeTable column (and report header) for the quadrant
func (q CompetenceQuadrant) Column() string {
	switch q {
	case UnconsciousIncompetent:
		return "Unconscious Incompetent"
	case ConsciousIncompetent:
		return "Conscious Incompetent"
	case UnconsciousCompetent:
		return "Unconscious Competent"
	case ConsciousCompetent:
		return "Conscious Competent"
	default:
		return ""
	}
}

// Band groups several categories of a distribution under one summary label.
type Band[T comparable] struct {
	Label   string
	Members []T
}

// Contains reports whether v belongs to the band
func (b Band[T]) Contains(v T) bool {
	for _, m := range b.Members {
		if m == v {
			return true
		}
	}
	return false
}

// AccuracyBands summarises the accuracy distribution per module
var AccuracyBands = []Band[AccuracyClass]{
	{Label: ">69%", Members: []AccuracyClass{AccuracyFirmKnowledge, AccuracyCompetentNoNeed}},
	{Label: "<=69% - >50%", Members: []AccuracyClass{AccuracyRetraining}},
	{Label: "<= 50%", Members: []AccuracyClass{AccuracyHandsOnTraining}},
}

// LevelBands summarises the self-assessment distribution per module.
// "Competent 2" repeats the Competent share under a distinct header.
var LevelBands = []Band[ProficiencyLevel]{
	{Label: "Professional", Members: []ProficiencyLevel{LevelProficient, LevelExpert}},
	{Label: "Competent 2", Members: []ProficiencyLevel{LevelCompetent}},
	{Label: "Beginner", Members: []ProficiencyLevel{LevelNovice, LevelAdvancedBeginner}},
}

// CompetenceBands summarises the four quadrant means per module
var CompetenceBands = []Band[CompetenceQuadrant]{
	{Label: "Incompetent", Members: []CompetenceQuadrant{UnconsciousIncompetent, ConsciousIncompetent}},
	{Label: "Competent", Members: []CompetenceQuadrant{UnconsciousCompetent, ConsciousCompetent}},
}
