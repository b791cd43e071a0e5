package store

import (
	"slices"
	"time"

	"startupconnect/internal/models"
)

type state struct {
	users         []models.User
	startups      []models.Startup
	ideas         []models.Idea
	conversations []models.Conversation
	notifications []models.Notification
	requests      []models.ConnectionRequest
	sessionID     string
}

type cloner[T any] interface {
	Clone() T
}

func cloneEach[T cloner[T]](in []T) []T {
	out := make([]T, len(in))
	for i, v := range in {
		out[i] = v.Clone()
	}
	return out
}

func (st *state) clone() *state {
	return &state{
		users:         cloneEach(st.users),
		startups:      cloneEach(st.startups),
		ideas:         cloneEach(st.ideas),
		conversations: cloneEach(st.conversations),
		notifications: slices.Clone(st.notifications),
		requests:      slices.Clone(st.requests),
		sessionID:     st.sessionID,
	}
}

// normalize restores invariants a hand-edited or older stored state may violate.
func (st *state) normalize() {
	for i := range st.ideas {
		st.ideas[i].Upvotes = len(st.ideas[i].UpvotedBy)
	}
}

func (st *state) userIndex(id string) int {
	return slices.IndexFunc(st.users, func(u models.User) bool { return u.ID == id })
}

func (st *state) userByEmail(email string) int {
	return slices.IndexFunc(st.users, func(u models.User) bool { return u.Email == email })
}

func (st *state) startupIndex(id string) int {
	return slices.IndexFunc(st.startups, func(s models.Startup) bool { return s.ID == id })
}

func (st *state) ideaIndex(id string) int {
	return slices.IndexFunc(st.ideas, func(i models.Idea) bool { return i.ID == id })
}

func (st *state) conversationIndex(id string) int {
	return slices.IndexFunc(st.conversations, func(c models.Conversation) bool { return c.ID == id })
}

func (st *state) notificationIndex(id string) int {
	return slices.IndexFunc(st.notifications, func(n models.Notification) bool { return n.ID == id })
}

func (st *state) requestIndex(id string) int {
	return slices.IndexFunc(st.requests, func(r models.ConnectionRequest) bool { return r.ID == id })
}

// sessionUser resolves the session ID against the users collection.
func (st *state) sessionUser() (models.User, bool) {
	if st.sessionID == "" {
		return models.User{}, false
	}
	i := st.userIndex(st.sessionID)
	if i < 0 {
		return models.User{}, false
	}
	return st.users[i], true
}

// tx is the working copy a single mutation edits.
type tx struct {
	*state
	now    time.Time
	newID  func() string
	events []Event
}

// requireSession returns the session user's index in users.
func (t *tx) requireSession() (int, error) {
	if t.sessionID == "" {
		return -1, models.NewUnauthorizedError(models.MsgNotLoggedIn)
	}
	i := t.userIndex(t.sessionID)
	if i < 0 {
		return -1, models.NewUnauthorizedError(models.MsgNotLoggedIn)
	}
	return i, nil
}

func (t *tx) emit(typ EventType, subjectID string, userIDs ...string) {
	t.events = append(t.events, Event{Type: typ, SubjectID: subjectID, UserIDs: userIDs})
}

// notify stamps and appends a notification and records its delivery event.
func (t *tx) notify(n models.Notification) models.Notification {
	n.ID = t.newID()
	n.Read = false
	n.CreatedAt = t.now
	t.notifications = append(t.notifications, n)

	delivered := n
	t.events = append(t.events, Event{
		Type:         EventNotificationCreated,
		SubjectID:    n.ID,
		UserIDs:      []string{n.UserID},
		Notification: &delivered,
	})
	return n
}
