package transcript

import "strings"

// Role is the coarse speaker classification used by the heuristic path.
type Role string

const (
	// RolePrimary is the person practicing: candidate or coach.
	RolePrimary Role = "candidate"
	// RoleCounterpart is the other side: interviewer or client.
	RoleCounterpart Role = "interviewer"
	RoleUnknown     Role = "unclassified"
)

// Roles holds the lowercase substrings that classify a speaker label.
type Roles struct {
	Primary     []string
	Counterpart []string
}

// DefaultRoles matches "candidate"/"user" and "interviewer"/"agent".
func DefaultRoles() Roles {
	return Roles{
		Primary:     []string{"candidate", "user"},
		Counterpart: []string{"interviewer", "agent"},
	}
}

// With returns a copy of r extended by extra keywords.
func (r Roles) With(primary, counterpart []string) Roles {
	out := Roles{
		Primary:     append(append([]string{}, r.Primary...), primary...),
		Counterpart: append(append([]string{}, r.Counterpart...), counterpart...),
	}
	return out
}

// Classify maps a speaker label to a role. Primary keywords win.
func (r Roles) Classify(speaker string) Role {
	s := strings.ToLower(speaker)
	for _, k := range r.Primary {
		if strings.Contains(s, k) {
			return RolePrimary
		}
	}
	for _, k := range r.Counterpart {
		if strings.Contains(s, k) {
			return RoleCounterpart
		}
	}
	return RoleUnknown
}

// Select returns the turns whose speaker classifies as role.
func (r Roles) Select(turns []Turn, role Role) []Turn {
	var out []Turn
	for _, t := range turns {
		if r.Classify(t.Speaker) == role {
			out = append(out, t)
		}
	}
	return out
}

// Count tallies turns per role.
func (r Roles) Count(turns []Turn) map[Role]int {
	counts := map[Role]int{}
	for _, t := range turns {
		counts[r.Classify(t.Speaker)]++
	}
	return counts
}
