package store

import (
	"cmp"
	"slices"
	"strings"

	"startupconnect/internal/models"
	"startupconnect/internal/seed"
)

// CurrentUser returns the session user, derived from the users collection.
func (s *Store) CurrentUser() (models.User, bool) {
	var (
		u  models.User
		ok bool
	)
	s.read(func(st *state) {
		u, ok = st.sessionUser()
		u = u.Clone()
	})
	return u, ok
}

// SessionUserID returns the session user's ID, or "" when logged out.
func (s *Store) SessionUserID() string {
	u, ok := s.CurrentUser()
	if !ok {
		return ""
	}
	return u.ID
}

func (s *Store) Users() []models.User {
	var out []models.User
	s.read(func(st *state) { out = cloneEach(st.users) })
	return out
}

func (s *Store) Startups() []models.Startup {
	var out []models.Startup
	s.read(func(st *state) { out = cloneEach(st.startups) })
	return out
}

func (s *Store) Ideas() []models.Idea {
	var out []models.Idea
	s.read(func(st *state) { out = cloneEach(st.ideas) })
	return out
}

func (s *Store) Conversations() []models.Conversation {
	var out []models.Conversation
	s.read(func(st *state) { out = cloneEach(st.conversations) })
	return out
}

func (s *Store) Notifications() []models.Notification {
	var out []models.Notification
	s.read(func(st *state) { out = slices.Clone(st.notifications) })
	return out
}

func (s *Store) ConnectionRequests() []models.ConnectionRequest {
	var out []models.ConnectionRequest
	s.read(func(st *state) { out = slices.Clone(st.requests) })
	return out
}

// UserByID returns the user or a NOT_FOUND error.
func (s *Store) UserByID(id string) (models.User, error) {
	var (
		u     models.User
		found bool
	)
	s.read(func(st *state) {
		if i := st.userIndex(id); i >= 0 {
			u, found = st.users[i].Clone(), true
		}
	})
	if !found {
		return models.User{}, models.NewNotFoundError("User", id)
	}
	return u, nil
}

// StartupByID returns the startup or a NOT_FOUND error.
func (s *Store) StartupByID(id string) (models.Startup, error) {
	var (
		v     models.Startup
		found bool
	)
	s.read(func(st *state) {
		if i := st.startupIndex(id); i >= 0 {
			v, found = st.startups[i].Clone(), true
		}
	})
	if !found {
		return models.Startup{}, models.NewNotFoundError("Startup", id)
	}
	return v, nil
}

// IdeaByID returns the idea or a NOT_FOUND error.
func (s *Store) IdeaByID(id string) (models.Idea, error) {
	var (
		v     models.Idea
		found bool
	)
	s.read(func(st *state) {
		if i := st.ideaIndex(id); i >= 0 {
			v, found = st.ideas[i].Clone(), true
		}
	})
	if !found {
		return models.Idea{}, models.NewNotFoundError("Idea", id)
	}
	return v, nil
}

// ConversationByID returns the conversation or a NOT_FOUND error.
func (s *Store) ConversationByID(id string) (models.Conversation, error) {
	var (
		v     models.Conversation
		found bool
	)
	s.read(func(st *state) {
		if i := st.conversationIndex(id); i >= 0 {
			v, found = st.conversations[i].Clone(), true
		}
	})
	if !found {
		return models.Conversation{}, models.NewNotFoundError("Conversation", id)
	}
	return v, nil
}

// SessionNotifications returns the session user's notifications in insertion order.
func (s *Store) SessionNotifications() []models.Notification {
	out := []models.Notification{}
	s.read(func(st *state) {
		for _, n := range st.notifications {
			if st.sessionID != "" && n.UserID == st.sessionID {
				out = append(out, n)
			}
		}
	})
	return out
}

// UnreadNotificationCount counts the session user's unread notifications.
func (s *Store) UnreadNotificationCount() int {
	count := 0
	for _, n := range s.SessionNotifications() {
		if !n.Read {
			count++
		}
	}
	return count
}

// SessionConversations returns the conversations the session user takes part in.
func (s *Store) SessionConversations() []models.Conversation {
	out := []models.Conversation{}
	s.read(func(st *state) {
		if st.sessionID == "" {
			return
		}
		for _, c := range st.conversations {
			if c.HasParticipant(st.sessionID) {
				out = append(out, c.Clone())
			}
		}
	})
	return out
}

// PendingConnectionRequests returns pending requests addressed to the session user.
func (s *Store) PendingConnectionRequests() []models.ConnectionRequest {
	return s.sessionRequests(func(r models.ConnectionRequest, me string) bool { return r.ToUserID == me })
}

// SentConnectionRequests returns pending requests sent by the session user.
func (s *Store) SentConnectionRequests() []models.ConnectionRequest {
	return s.sessionRequests(func(r models.ConnectionRequest, me string) bool { return r.FromUserID == me })
}

func (s *Store) sessionRequests(match func(models.ConnectionRequest, string) bool) []models.ConnectionRequest {
	out := []models.ConnectionRequest{}
	s.read(func(st *state) {
		if st.sessionID == "" {
			return
		}
		for _, r := range st.requests {
			if r.Status == models.ConnectionStatusPending && match(r, st.sessionID) {
				out = append(out, r)
			}
		}
	})
	return out
}

// UsersByRole returns the users holding role.
func (s *Store) UsersByRole(role models.Role) []models.User {
	out := []models.User{}
	s.read(func(st *state) {
		for _, u := range st.users {
			if u.Role == role {
				out = append(out, u.Clone())
			}
		}
	})
	return out
}

func (s *Store) Founders() []models.User { return s.UsersByRole(models.RoleFounder) }

func (s *Store) VCs() []models.User { return s.UsersByRole(models.RoleVC) }

// UserFilter narrows SearchUsers. Empty fields match everything.
type UserFilter struct {
	Role           models.Role
	Query          string
	ExcludeSession bool
}

// SearchUsers matches Query case-insensitively against name, bio, skills,
// interests and investment focus.
func (s *Store) SearchUsers(f UserFilter) []models.User {
	q := strings.ToLower(strings.TrimSpace(f.Query))
	out := []models.User{}
	s.read(func(st *state) {
		for _, u := range st.users {
			if f.Role != "" && u.Role != f.Role {
				continue
			}
			if f.ExcludeSession && u.ID == st.sessionID {
				continue
			}
			if q != "" && !userMatches(u, q) {
				continue
			}
			out = append(out, u.Clone())
		}
	})
	return out
}

func userMatches(u models.User, q string) bool {
	if strings.Contains(strings.ToLower(u.Name), q) || strings.Contains(strings.ToLower(u.Bio), q) {
		return true
	}
	for _, group := range [][]string{u.Skills, u.Interests, u.InvestmentFocus} {
		for _, v := range group {
			if strings.Contains(strings.ToLower(v), q) {
				return true
			}
		}
	}
	return false
}

// Idea orderings accepted by IdeaFilter.Sort.
const (
	SortTrending  = "trending"
	SortNewest    = "newest"
	SortDiscussed = "discussed"
)

// IdeaFilter narrows and orders ListIdeas. Empty fields match everything.
type IdeaFilter struct {
	Query    string
	Category string
	Stage    string
	Sort     string
}

// ListIdeas filters ideas by text, category and stage, then applies Sort.
// Unknown or empty Sort keeps insertion order.
func (s *Store) ListIdeas(f IdeaFilter) []models.Idea {
	q := strings.ToLower(strings.TrimSpace(f.Query))
	out := []models.Idea{}
	for _, idea := range s.Ideas() {
		if f.Category != "" && idea.Category != f.Category {
			continue
		}
		if f.Stage != "" && idea.Stage != f.Stage {
			continue
		}
		if q != "" &&
			!strings.Contains(strings.ToLower(idea.Title), q) &&
			!strings.Contains(strings.ToLower(idea.Description), q) &&
			!strings.Contains(strings.ToLower(idea.Category), q) {
			continue
		}
		out = append(out, idea)
	}

	switch f.Sort {
	case SortTrending:
		slices.SortStableFunc(out, func(a, b models.Idea) int { return cmp.Compare(b.Upvotes, a.Upvotes) })
	case SortNewest:
		slices.SortStableFunc(out, func(a, b models.Idea) int { return b.CreatedAt.Compare(a.CreatedAt) })
	case SortDiscussed:
		slices.SortStableFunc(out, func(a, b models.Idea) int { return cmp.Compare(len(b.Comments), len(a.Comments)) })
	}
	return out
}

// Snapshot is a copy of every collection plus the session user ID.
type Snapshot struct {
	seed.Dataset  `yaml:",inline"`
	SessionUserID string `yaml:"sessionUserId,omitempty"`
}

// Snapshot copies the whole state.
func (s *Store) Snapshot() Snapshot {
	var snap Snapshot
	s.read(func(st *state) {
		c := st.clone()
		snap = Snapshot{
			Dataset: seed.Dataset{
				Users:              c.users,
				Startups:           c.startups,
				Ideas:              c.ideas,
				Conversations:      c.conversations,
				Notifications:      c.notifications,
				ConnectionRequests: c.requests,
			},
			SessionUserID: c.sessionID,
		}
	})
	return snap
}
