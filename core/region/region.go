// Package region classifies county codes into precedence-ordered region
// tiers. The four tiers are mutually exclusive: membership is checked in
// strict order, so a code listed in a higher tier never surfaces under a
// broader one.
package region

const (
	// Unknown labels a county present in none of the four tiers
	Unknown = "Unknown Region"

	// None is the sentinel for "no region filter"
	None = "None"
)

// Tier is one precedence level of the region classification.
type Tier struct {
	// Label is the tier's output label
	Label string

	// Codes is the tier's county code membership
	Codes map[int]bool
}

// Sets holds the four tiers in precedence order (index 0 wins).
type Sets struct {
	Tiers []Tier
}

// NewSets builds a classifier from labelled code lists in precedence order.
func NewSets(tiers ...Tier) *Sets {
	return &Sets{Tiers: tiers}
}

// NewTier builds a tier from a code list.
func NewTier(label string, codes []int) Tier {
	t := Tier{Label: label, Codes: make(map[int]bool, len(codes))}
	for _, c := range codes {
		t.Codes[c] = true
	}
	return t
}

// Classify maps a county code to its region label. A code in no tier maps
// to Unknown; an unresolvable (non-positive) code maps to the empty label,
// which keeps the row but excludes it from any named region.
func (s *Sets) Classify(code int) string {
	if code <= 0 {
		return ""
	}
	for _, tier := range s.Tiers {
		if tier.Codes[code] {
			return tier.Label
		}
	}
	return Unknown
}

// Labels returns the tier labels in precedence order.
func (s *Sets) Labels() []string {
	labels := make([]string, len(s.Tiers))
	for i, t := range s.Tiers {
		labels[i] = t.Label
	}
	return labels
}

// HasLabel reports whether label names one of the configured tiers.
func (s *Sets) HasLabel(label string) bool {
	for _, t := range s.Tiers {
		if t.Label == label {
			return true
		}
	}
	return false
}
