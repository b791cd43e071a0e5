package store

import (
	"context"
	"slices"

	"startupconnect/internal/models"
	"startupconnect/internal/observability"
	"startupconnect/internal/validation"
)

// DefaultFounderRole is the team role title used when none is supplied.
const DefaultFounderRole = "Founder"

var startupLog = observability.NewStoreLogger(collStartups)

// CreateStartup lists a new startup founded by the session user, who joins
// the team under founderRole (DefaultFounderRole when empty).
func (s *Store) CreateStartup(ctx context.Context, data models.Startup, founderRole string) (models.Startup, error) {
	var startup models.Startup
	err := s.mutate(ctx, "create_startup", func(t *tx) error {
		si, err := t.requireSession()
		if err != nil {
			return err
		}
		if err := validation.ValidateStartup(data); err != nil {
			return models.NewValidationError(err.Error())
		}
		if founderRole == "" {
			founderRole = DefaultFounderRole
		}

		me := t.users[si].ID
		st := data.Clone()
		st.ID = t.newID()
		st.Founders = []string{me}
		st.Team = []models.TeamMember{{UserID: me, Role: founderRole}}
		st.InterestedVCs = []string{}
		st.CreatedAt = t.now
		if st.OpenRoles == nil {
			st.OpenRoles = []string{}
		}
		if st.Milestones == nil {
			st.Milestones = []models.Milestone{}
		}
		t.startups = append(t.startups, st)

		startup = st.Clone()
		t.emit(EventStartupCreated, st.ID)
		return nil
	})
	if err == nil {
		startupLog.LogCreate(ctx, map[string]any{"startup_id": startup.ID})
	}
	return startup, err
}

// UpdateStartup merges the set fields of patch into the startup.
func (s *Store) UpdateStartup(ctx context.Context, startupID string, patch models.StartupPatch) (models.Startup, error) {
	var startup models.Startup
	err := s.mutate(ctx, "update_startup", func(t *tx) error {
		i := t.startupIndex(startupID)
		if i < 0 {
			return models.NewNotFoundError("Startup", startupID)
		}
		if err := validation.ValidateStartupPatch(patch); err != nil {
			return models.NewValidationError(err.Error())
		}
		patch.Apply(&t.startups[i])
		startup = t.startups[i].Clone()
		t.emit(EventStartupUpdated, startupID)
		return nil
	})
	if err == nil {
		startupLog.LogUpdate(ctx, map[string]any{"startup_id": startupID})
	}
	return startup, err
}

// ExpressInterest records the session user, who must be a VC, as interested
// in the startup. Repeating it has no further effect.
func (s *Store) ExpressInterest(ctx context.Context, startupID string) (models.Startup, error) {
	var startup models.Startup
	err := s.mutate(ctx, "express_interest", func(t *tx) error {
		si, err := t.requireSession()
		if err != nil {
			return err
		}
		me := t.users[si]
		if me.Role != models.RoleVC {
			return models.NewForbiddenError("Only investors can express interest in a startup")
		}
		i := t.startupIndex(startupID)
		if i < 0 {
			return models.NewNotFoundError("Startup", startupID)
		}

		st := &t.startups[i]
		if !slices.Contains(st.InterestedVCs, me.ID) {
			st.InterestedVCs = append(st.InterestedVCs, me.ID)
			t.emit(EventStartupUpdated, startupID, st.Founders...)
		}
		startup = st.Clone()
		return nil
	})
	return startup, err
}
