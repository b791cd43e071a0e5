package store

import (
	"context"

	"startupconnect/internal/models"
	"startupconnect/internal/observability"
	"startupconnect/internal/validation"
)

var userLog = observability.NewStoreLogger(collUsers)

// Login starts a session for the user whose email and password both match exactly.
func (s *Store) Login(ctx context.Context, email, password string) (models.User, error) {
	var user models.User
	err := s.mutate(ctx, "login", func(t *tx) error {
		for _, u := range t.users {
			if u.Email == email && u.Password == password {
				t.sessionID = u.ID
				user = u.Clone()
				t.emit(EventSessionChanged, u.ID, u.ID)
				return nil
			}
		}
		return models.NewUnauthorizedError(models.MsgInvalidCredentials)
	})
	return user, err
}

// Logout clears the session and removes its storage entry. Logging out
// without a session is a no-op.
func (s *Store) Logout(ctx context.Context) error {
	return s.mutate(ctx, "logout", func(t *tx) error {
		if t.sessionID != "" {
			t.emit(EventSessionChanged, t.sessionID, t.sessionID)
		}
		t.sessionID = ""
		return nil
	})
}

// Register adds a new user and logs them in. The ID, connections and
// creation time of profile are replaced.
func (s *Store) Register(ctx context.Context, profile models.User) (models.User, error) {
	var user models.User
	err := s.mutate(ctx, "register", func(t *tx) error {
		if err := validation.ValidateRegistration(profile); err != nil {
			return models.NewValidationError(err.Error())
		}
		if t.userByEmail(profile.Email) >= 0 {
			return models.NewConflictError(models.MsgEmailRegistered)
		}

		u := profile.Clone()
		u.ID = t.newID()
		u.Connections = []string{}
		u.CreatedAt = t.now
		t.users = append(t.users, u)
		t.sessionID = u.ID

		user = u.Clone()
		t.emit(EventUserRegistered, u.ID)
		t.emit(EventSessionChanged, u.ID, u.ID)
		return nil
	})
	if err == nil {
		userLog.LogCreate(ctx, map[string]any{"user_id": user.ID, "role": user.Role})
	}
	return user, err
}

// UpdateUser merges the set fields of patch into the user. When the user is
// the session user the change is visible through CurrentUser immediately.
func (s *Store) UpdateUser(ctx context.Context, userID string, patch models.UserPatch) (models.User, error) {
	var user models.User
	err := s.mutate(ctx, "update_user", func(t *tx) error {
		i := t.userIndex(userID)
		if i < 0 {
			return models.NewNotFoundError("User", userID)
		}
		if err := validation.ValidatePatch(patch); err != nil {
			return models.NewValidationError(err.Error())
		}
		if patch.Email != nil && *patch.Email != t.users[i].Email {
			if t.userByEmail(*patch.Email) >= 0 {
				return models.NewConflictError(models.MsgEmailRegistered)
			}
		}

		patch.Apply(&t.users[i])
		user = t.users[i].Clone()
		t.emit(EventUserUpdated, userID, userID)
		return nil
	})
	if err == nil {
		userLog.LogUpdate(ctx, map[string]any{"user_id": userID})
	}
	return user, err
}
