package models

import (
	"slices"
	"time"
)

// MilestoneStatus is the progress state of a startup milestone.
type MilestoneStatus string

const (
	MilestonePlanned    MilestoneStatus = "planned"
	MilestoneInProgress MilestoneStatus = "in-progress"
	MilestoneCompleted  MilestoneStatus = "completed"
)

// Valid reports whether s is a known milestone status.
func (s MilestoneStatus) Valid() bool {
	switch s {
	case MilestonePlanned, MilestoneInProgress, MilestoneCompleted:
		return true
	}
	return false
}

// Milestone is one entry on a startup's roadmap. Date is a year-month ("2024-06").
type Milestone struct {
	Title  string          `json:"title" yaml:"title"`
	Date   string          `json:"date" yaml:"date"`
	Status MilestoneStatus `json:"status" yaml:"status"`
}

// TeamMember links a user to a role title inside a startup.
type TeamMember struct {
	UserID string `json:"userId" yaml:"userId"`
	Role   string `json:"role" yaml:"role"`
}

// Startup is a company listing owned by its founders.
type Startup struct {
	ID            string       `json:"id" yaml:"id"`
	Name          string       `json:"name" yaml:"name"`
	Tagline       string       `json:"tagline" yaml:"tagline"`
	Description   string       `json:"description" yaml:"description"`
	Founders      []string     `json:"founders" yaml:"founders"`
	Industry      string       `json:"industry" yaml:"industry"`
	Stage         string       `json:"stage" yaml:"stage"`
	FundingRaised string       `json:"fundingRaised" yaml:"fundingRaised"`
	FundingGoal   string       `json:"fundingGoal" yaml:"fundingGoal"`
	Team          []TeamMember `json:"team" yaml:"team"`
	OpenRoles     []string     `json:"openRoles" yaml:"openRoles"`
	Milestones    []Milestone  `json:"milestones" yaml:"milestones"`
	Pitch         string       `json:"pitch" yaml:"pitch"`
	Website       string       `json:"website" yaml:"website"`
	InterestedVCs []string     `json:"interestedVCs" yaml:"interestedVCs"`
	CreatedAt     time.Time    `json:"createdAt" yaml:"createdAt"`
}

// Clone returns a deep copy of s.
func (s Startup) Clone() Startup {
	s.Founders = slices.Clone(s.Founders)
	s.Team = slices.Clone(s.Team)
	s.OpenRoles = slices.Clone(s.OpenRoles)
	s.Milestones = slices.Clone(s.Milestones)
	s.InterestedVCs = slices.Clone(s.InterestedVCs)
	return s
}

// StartupPatch is a shallow update to a startup. Nil fields are left unchanged.
type StartupPatch struct {
	Name          *string       `json:"name,omitempty"`
	Tagline       *string       `json:"tagline,omitempty"`
	Description   *string       `json:"description,omitempty"`
	Industry      *string       `json:"industry,omitempty"`
	Stage         *string       `json:"stage,omitempty"`
	FundingRaised *string       `json:"fundingRaised,omitempty"`
	FundingGoal   *string       `json:"fundingGoal,omitempty"`
	Team          *[]TeamMember `json:"team,omitempty"`
	OpenRoles     *[]string     `json:"openRoles,omitempty"`
	Milestones    *[]Milestone  `json:"milestones,omitempty"`
	Pitch         *string       `json:"pitch,omitempty"`
	Website       *string       `json:"website,omitempty"`
}

// Apply merges the set fields of p into s.
func (p StartupPatch) Apply(s *Startup) {
	setString(&s.Name, p.Name)
	setString(&s.Tagline, p.Tagline)
	setString(&s.Description, p.Description)
	setString(&s.Industry, p.Industry)
	setString(&s.Stage, p.Stage)
	setString(&s.FundingRaised, p.FundingRaised)
	setString(&s.FundingGoal, p.FundingGoal)
	if p.Team != nil {
		s.Team = slices.Clone(*p.Team)
	}
	setStrings(&s.OpenRoles, p.OpenRoles)
	if p.Milestones != nil {
		s.Milestones = slices.Clone(*p.Milestones)
	}
	setString(&s.Pitch, p.Pitch)
	setString(&s.Website, p.Website)
}
