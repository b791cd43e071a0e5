package validation

import (
	"fmt"
	"regexp"
	"strings"

	"startupconnect/internal/models"
)

var milestoneDateRegex = regexp.MustCompile(`^\d{4}-(0[1-9]|1[0-2])$`)

// ValidateMilestones checks each milestone has a title, a YYYY-MM date and a known status.
func ValidateMilestones(milestones []models.Milestone) error {
	for i, m := range milestones {
		if strings.TrimSpace(m.Title) == "" {
			return fmt.Errorf("milestone %d: title is required", i+1)
		}
		if !milestoneDateRegex.MatchString(m.Date) {
			return fmt.Errorf("milestone %d: date must be in YYYY-MM format", i+1)
		}
		if !m.Status.Valid() {
			return fmt.Errorf("milestone %d: unknown status %q", i+1, m.Status)
		}
	}
	return nil
}

// ValidateStartup checks a new startup listing.
func ValidateStartup(s models.Startup) error {
	if strings.TrimSpace(s.Name) == "" {
		return fmt.Errorf("name is required")
	}
	return ValidateMilestones(s.Milestones)
}

// ValidateStartupPatch checks the set fields of a startup update.
func ValidateStartupPatch(p models.StartupPatch) error {
	if p.Name != nil && strings.TrimSpace(*p.Name) == "" {
		return fmt.Errorf("name cannot be empty")
	}
	if p.Milestones != nil {
		return ValidateMilestones(*p.Milestones)
	}
	return nil
}

// ValidateIdea checks a new idea post.
func ValidateIdea(i models.Idea) error {
	if strings.TrimSpace(i.Title) == "" {
		return fmt.Errorf("title is required")
	}
	return nil
}
