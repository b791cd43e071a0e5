package store

import "startupconnect/internal/models"

// EventType names a kind of state change.
type EventType string

const (
	EventSessionChanged      EventType = "session_changed"
	EventUserRegistered      EventType = "user_registered"
	EventUserUpdated         EventType = "user_updated"
	EventConnectionRequested EventType = "connection_requested"
	EventConnectionAccepted  EventType = "connection_accepted"
	EventConnectionDeclined  EventType = "connection_declined"
	EventStartupCreated      EventType = "startup_created"
	EventStartupUpdated      EventType = "startup_updated"
	EventIdeaCreated         EventType = "idea_created"
	EventIdeaUpvoted         EventType = "idea_upvoted"
	EventIdeaCommented       EventType = "idea_commented"
	EventConversationStarted EventType = "conversation_started"
	EventMessageSent         EventType = "message_sent"
	EventNotificationCreated EventType = "notification_created"
	EventNotificationsRead   EventType = "notifications_read"
)

// Event describes one committed change. UserIDs lists the users whose view of
// the state is directly affected; it is empty for changes visible to everyone.
type Event struct {
	Type         EventType            `json:"type"`
	SubjectID    string               `json:"subjectId,omitempty"`
	UserIDs      []string             `json:"-"`
	Notification *models.Notification `json:"notification,omitempty"`
}

// Listener receives events after the mutation that produced them has been
// committed and the store lock released. Events reach listeners in commit
// order, one at a time. Listeners may call back into the store, including
// mutating it; events recorded by such a call are delivered after the current
// batch.
//
// When another goroutine is already delivering, a mutation can return before
// its own events have reached listeners.
type Listener func(Event)

// Subscribe registers l and returns a function that removes it.
func (s *Store) Subscribe(l Listener) (unsubscribe func()) {
	s.listenersMu.Lock()
	id := s.nextLis
	s.nextLis++
	s.listeners[id] = l
	s.listenersMu.Unlock()

	return func() {
		s.listenersMu.Lock()
		delete(s.listeners, id)
		s.listenersMu.Unlock()
	}
}

// enqueue appends committed events to the delivery queue. Callers hold s.mu,
// so queue order is commit order.
func (s *Store) enqueue(events []Event) {
	if len(events) == 0 {
		return
	}
	s.dispatchMu.Lock()
	s.pending = append(s.pending, events...)
	s.dispatchMu.Unlock()
}

// dispatch drains the delivery queue unless another goroutine is already doing so.
func (s *Store) dispatch() {
	s.dispatchMu.Lock()
	if s.dispatching {
		s.dispatchMu.Unlock()
		return
	}
	s.dispatching = true
	defer func() {
		s.dispatching = false
		s.dispatchMu.Unlock()
	}()

	for len(s.pending) > 0 {
		batch := s.pending
		s.pending = nil
		s.dispatchMu.Unlock()
		s.deliver(batch)
		s.dispatchMu.Lock()
	}
}

func (s *Store) deliver(events []Event) {
	defer func() {
		// Re-lock for dispatch's deferred unlock if a listener panicked.
		if r := recover(); r != nil {
			s.dispatchMu.Lock()
			panic(r)
		}
	}()

	s.listenersMu.RLock()
	listeners := make([]Listener, 0, len(s.listeners))
	for _, l := range s.listeners {
		listeners = append(listeners, l)
	}
	s.listenersMu.RUnlock()

	for _, e := range events {
		for _, l := range listeners {
			l(e)
		}
	}
}
