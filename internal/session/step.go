package session

// Step is the next thing the user has to do.
type Step int

const (
	StepService Step = iota
	StepPlatform
	StepKeyword
	StepGenerate
	StepLab
	StepReport
)

var stepNames = map[Step]string{
	StepService:  "service",
	StepPlatform: "platform",
	StepKeyword:  "keyword",
	StepGenerate: "generate",
	StepLab:      "lab",
	StepReport:   "report",
}

// String returns the step name.
func (s Step) String() string {
	if name, ok := stepNames[s]; ok {
		return name
	}
	return "unknown"
}

// Step reports progress. Mood and primary colour are optional and never
// block a step.
func (s *Session) Step() Step {
	switch {
	case s.Service == "":
		return StepService
	case s.Platform == "":
		return StepPlatform
	case s.Keyword == "":
		return StepKeyword
	case s.draft == nil:
		return StepGenerate
	case s.final == nil:
		return StepLab
	default:
		return StepReport
	}
}
