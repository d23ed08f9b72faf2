package clarity

// Registry holds clarity checks in evaluation order
type Registry struct {
	checks []Check
}

// NewRegistry creates an empty registry
func NewRegistry() *Registry {
	return &Registry{
		checks: make([]Check, 0),
	}
}

// Register appends a check; checks run in registration order
func (r *Registry) Register(check Check) {
	r.checks = append(r.checks, check)
}

// Checks returns the registered checks in order
func (r *Registry) Checks() []Check {
	return r.checks
}

// Get returns a check by name
func (r *Registry) Get(name string) Check {
	for _, c := range r.checks {
		if c.Name() == name {
			return c
		}
	}
	return nil
}

// DefaultRegistry returns the standard clarity checks.
//
// The order is significant: issues are reported in this order, and the
// later penalties stack on top of the earlier ones rather than replacing
// them.
func DefaultRegistry() *Registry {
	r := NewRegistry()

	// Detection
	r.Register(&LongSentencesCheck{})
	r.Register(&MessageLengthCheck{})
	r.Register(&ReadabilityCheck{})
	r.Register(&VagueWordingCheck{})
	r.Register(&PassiveVoiceCheck{})
	r.Register(&CallToActionCheck{})

	// Adjustments
	r.Register(&PassivePenaltyCheck{})
	r.Register(&BulletPointsCheck{})
	r.Register(&ReadabilityBonusCheck{})
	r.Register(&StrongVagueCheck{})
	r.Register(&AbruptCheck{})

	return r
}
