package clarity

// Severity represents how strongly a finding affects clarity
type Severity int

const (
	Info Severity = iota
	Suggestion
	Warning
)

func (s Severity) String() string {
	switch s {
	case Info:
		return "info"
	case Suggestion:
		return "suggestion"
	case Warning:
		return "warning"
	default:
		return "unknown"
	}
}

// Finding is one clarity issue with the check that raised it
type Finding struct {
	Check    string   `json:"check"`
	Severity Severity `json:"-"`
	Message  string   `json:"message"`
}

// Scorecard carries the measurements of one message and the running score.
// Checks read the measurements and adjust Score in registry order.
type Scorecard struct {
	Text  string
	Lower string

	Sentences     []string
	WordCount     int
	LongSentences int
	Readability   float64
	VagueHits     []string
	Passive       bool
	HasAction     bool
	Softened      bool

	Score    float64
	Findings []Finding
}

func (s *Scorecard) flag(check string, severity Severity, message string) {
	s.Findings = append(s.Findings, Finding{Check: check, Severity: severity, Message: message})
}

// Check defines the interface for a clarity heuristic
type Check interface {
	// Name returns the unique identifier for this check
	Name() string

	// Description returns a human-readable description
	Description() string

	// Run records findings and applies its score adjustment
	Run(s *Scorecard)
}
