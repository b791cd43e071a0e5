package storage

// DefaultKeyPrefix namespaces every key the store writes.
const DefaultKeyPrefix = "startup_connect_"

// Keys holds the fully-prefixed storage keys for each persisted collection.
type Keys struct {
	Users         string
	Startups      string
	Ideas         string
	Conversations string
	Notifications string
	Requests      string
	CurrentUser   string
}

// NewKeys builds the key set for prefix. An empty prefix uses DefaultKeyPrefix.
func NewKeys(prefix string) Keys {
	if prefix == "" {
		prefix = DefaultKeyPrefix
	}
	return Keys{
		Users:         prefix + "users",
		Startups:      prefix + "startups",
		Ideas:         prefix + "ideas",
		Conversations: prefix + "conversations",
		Notifications: prefix + "notifications",
		Requests:      prefix + "requests",
		CurrentUser:   prefix + "current_user",
	}
}

// All returns every key, collections first and the session entry last.
func (k Keys) All() []string {
	return []string{k.Users, k.Startups, k.Ideas, k.Conversations, k.Notifications, k.Requests, k.CurrentUser}
}
