package domain

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"strings"
)

// UnlimitedQuota sentinel for teams without a prime-time limit
const UnlimitedQuota = math.MaxInt32

var (
	// ErrUnknownTeam is returned when the team is not configured
	ErrUnknownTeam = errors.New("domain: unknown team")
	// ErrInvalidTeams is returned when the team list is inconsistent
	ErrInvalidTeams = errors.New("domain: invalid team list")
)

// Team a named team with a weekly prime-time quota
type Team struct {
	Name  string
	Quota int
}

// IsUnlimited reports whether the team is exempt from the quota
func (t Team) IsUnlimited() bool {
	return t.Quota >= UnlimitedQuota
}

// TeamRegistry fixed set of teams, looked up case-insensitively
type TeamRegistry struct {
	teams map[string]Team
}

// NewTeamRegistry builds the registry; a negative quota means unlimited
func NewTeamRegistry(teams []Team) (*TeamRegistry, error) {
	reg := &TeamRegistry{teams: make(map[string]Team, len(teams))}
	for _, t := range teams {
		name := strings.TrimSpace(t.Name)
		if name == "" {
			return nil, fmt.Errorf("%w: empty team name", ErrInvalidTeams)
		}
		key := strings.ToLower(name)
		if _, dup := reg.teams[key]; dup {
			return nil, fmt.Errorf("%w: duplicate team %q", ErrInvalidTeams, name)
		}
		quota := t.Quota
		if quota < 0 {
			quota = UnlimitedQuota
		}
		reg.teams[key] = Team{Name: name, Quota: quota}
	}
	return reg, nil
}

// Get returns the team with its canonical name
func (r *TeamRegistry) Get(name string) (Team, error) {
	t, ok := r.teams[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return Team{}, fmt.Errorf("%w: %q", ErrUnknownTeam, name)
	}
	return t, nil
}

// QuotaOf weekly prime-time quota of the team
func (r *TeamRegistry) QuotaOf(name string) (int, error) {
	t, err := r.Get(name)
	if err != nil {
		return 0, err
	}
	return t.Quota, nil
}

// All teams sorted by name
func (r *TeamRegistry) All() []Team {
	out := make([]Team, 0, len(r.teams))
	for _, t := range r.teams {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}
