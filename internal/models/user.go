// Package models contains data structures for the application's domain models.
package models

import (
	"slices"
	"time"
)

// Role distinguishes the two mutually exclusive kinds of member.
type Role string

const (
	// RoleFounder is a startup founder or prospective co-founder.
	RoleFounder Role = "founder"
	// RoleVC is an investor.
	RoleVC Role = "vc"
)

// Valid reports whether r is a known role.
func (r Role) Valid() bool {
	return r == RoleFounder || r == RoleVC
}

// User is a member profile. Founder-only and VC-only fields are left empty
// for the other role.
type User struct {
	ID          string    `json:"id" yaml:"id"`
	Email       string    `json:"email" yaml:"email"`
	Password    string    `json:"password" yaml:"password"`
	Name        string    `json:"name" yaml:"name"`
	Role        Role      `json:"role" yaml:"role"`
	Avatar      string    `json:"avatar,omitempty" yaml:"avatar,omitempty"`
	Bio         string    `json:"bio,omitempty" yaml:"bio,omitempty"`
	Location    string    `json:"location,omitempty" yaml:"location,omitempty"`
	LinkedIn    string    `json:"linkedin,omitempty" yaml:"linkedin,omitempty"`
	Connections []string  `json:"connections" yaml:"connections"`
	CreatedAt   time.Time `json:"createdAt" yaml:"createdAt"`

	// Founder profile
	Skills       []string `json:"skills,omitempty" yaml:"skills,omitempty"`
	Interests    []string `json:"interests,omitempty" yaml:"interests,omitempty"`
	Experience   string   `json:"experience,omitempty" yaml:"experience,omitempty"`
	LookingFor   []string `json:"lookingFor,omitempty" yaml:"lookingFor,omitempty"`
	Availability string   `json:"availability,omitempty" yaml:"availability,omitempty"`

	// VC profile
	Firm            string   `json:"firm,omitempty" yaml:"firm,omitempty"`
	InvestmentFocus []string `json:"investmentFocus,omitempty" yaml:"investmentFocus,omitempty"`
	CheckSize       string   `json:"checkSize,omitempty" yaml:"checkSize,omitempty"`
	Stage           []string `json:"stage,omitempty" yaml:"stage,omitempty"`
	Portfolio       []string `json:"portfolio,omitempty" yaml:"portfolio,omitempty"`
}

// IsConnectedTo reports whether userID is in u's connections.
func (u *User) IsConnectedTo(userID string) bool {
	return slices.Contains(u.Connections, userID)
}

// Clone returns a deep copy of u.
func (u User) Clone() User {
	u.Connections = slices.Clone(u.Connections)
	u.Skills = slices.Clone(u.Skills)
	u.Interests = slices.Clone(u.Interests)
	u.LookingFor = slices.Clone(u.LookingFor)
	u.InvestmentFocus = slices.Clone(u.InvestmentFocus)
	u.Stage = slices.Clone(u.Stage)
	u.Portfolio = slices.Clone(u.Portfolio)
	return u
}

// UserPatch is a shallow update to a user. Nil fields are left unchanged.
// ID, connections and creation time are not patchable.
type UserPatch struct {
	Email           *string   `json:"email,omitempty"`
	Password        *string   `json:"password,omitempty"`
	Name            *string   `json:"name,omitempty"`
	Role            *Role     `json:"role,omitempty"`
	Avatar          *string   `json:"avatar,omitempty"`
	Bio             *string   `json:"bio,omitempty"`
	Location        *string   `json:"location,omitempty"`
	LinkedIn        *string   `json:"linkedin,omitempty"`
	Skills          *[]string `json:"skills,omitempty"`
	Interests       *[]string `json:"interests,omitempty"`
	Experience      *string   `json:"experience,omitempty"`
	LookingFor      *[]string `json:"lookingFor,omitempty"`
	Availability    *string   `json:"availability,omitempty"`
	Firm            *string   `json:"firm,omitempty"`
	InvestmentFocus *[]string `json:"investmentFocus,omitempty"`
	CheckSize       *string   `json:"checkSize,omitempty"`
	Stage           *[]string `json:"stage,omitempty"`
	Portfolio       *[]string `json:"portfolio,omitempty"`
}

// Apply merges the set fields of p into u.
func (p UserPatch) Apply(u *User) {
	setString(&u.Email, p.Email)
	setString(&u.Password, p.Password)
	setString(&u.Name, p.Name)
	if p.Role != nil {
		u.Role = *p.Role
	}
	setString(&u.Avatar, p.Avatar)
	setString(&u.Bio, p.Bio)
	setString(&u.Location, p.Location)
	setString(&u.LinkedIn, p.LinkedIn)
	setStrings(&u.Skills, p.Skills)
	setStrings(&u.Interests, p.Interests)
	setString(&u.Experience, p.Experience)
	setStrings(&u.LookingFor, p.LookingFor)
	setString(&u.Availability, p.Availability)
	setString(&u.Firm, p.Firm)
	setStrings(&u.InvestmentFocus, p.InvestmentFocus)
	setString(&u.CheckSize, p.CheckSize)
	setStrings(&u.Stage, p.Stage)
	setStrings(&u.Portfolio, p.Portfolio)
}

func setString(dst *string, src *string) {
	if src != nil {
		*dst = *src
	}
}

func setStrings(dst *[]string, src *[]string) {
	if src != nil {
		*dst = slices.Clone(*src)
	}
}
