package models

// Capability names an optional integration a handler group depends on.
type Capability string

const (
	CapabilityGenerative  Capability = "generative"
	CapabilityWeather     Capability = "weather"
	CapabilityTranslation Capability = "translation"
	CapabilityDictionary  Capability = "dictionary"
)

// CapabilitySet is the set of integrations enabled at composition time.
type CapabilitySet map[Capability]struct{}

// NewCapabilitySet builds a set from the given capabilities.
func NewCapabilitySet(caps ...Capability) CapabilitySet {
	set := make(CapabilitySet, len(caps))
	for _, c := range caps {
		set[c] = struct{}{}
	}
	return set
}

// Has reports whether c is enabled.
func (s CapabilitySet) Has(c Capability) bool {
	_, ok := s[c]
	return ok
}

// Missing returns the capabilities of required that are not in the set.
func (s CapabilitySet) Missing(required []Capability) []Capability {
	var missing []Capability
	for _, c := range required {
		if !s.Has(c) {
			missing = append(missing, c)
		}
	}
	return missing
}
