// Package store holds the social graph state: users, startups, ideas,
// conversations, notifications, connection requests and the session.
//
// A Store is the single owner of that state. Every mutation runs under one
// lock, is applied to a copy of the state, and is mirrored to durable storage
// before the call returns. Readers always get copies.
package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"startupconnect/internal/models"
	"startupconnect/internal/observability"
	"startupconnect/internal/seed"
	"startupconnect/internal/storage"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
)

// FallbackMode selects how a stored value that cannot be parsed is handled on load.
type FallbackMode string

const (
	// FallbackPerKey resets only the unparseable collection to seed data.
	FallbackPerKey FallbackMode = "per_key"
	// FallbackAllOrNothing resets every collection to seed data and logs the session out.
	FallbackAllOrNothing FallbackMode = "all_or_nothing"
)

// Collection names used in logs and metrics.
const (
	collUsers         = "users"
	collStartups      = "startups"
	collIdeas         = "ideas"
	collConversations = "conversations"
	collNotifications = "notifications"
	collRequests      = "requests"
	collSession       = "current_user"
)

type options struct {
	fallback          FallbackMode
	strictConnections bool
	keyPrefix         string
	now               func() time.Time
	newID             func() string
	seed              func(time.Time) seed.Dataset
	logger            *slog.Logger
}

// Option configures a Store.
type Option func(*options)

// WithFallbackMode sets how unparseable stored collections are handled on load.
func WithFallbackMode(mode FallbackMode) Option {
	return func(o *options) { o.fallback = mode }
}

// WithStrictConnections toggles rejection of self, duplicate, unknown-target
// and already-connected connection requests. It is on by default.
func WithStrictConnections(strict bool) Option {
	return func(o *options) { o.strictConnections = strict }
}

// WithKeyPrefix namespaces the storage keys.
func WithKeyPrefix(prefix string) Option {
	return func(o *options) { o.keyPrefix = prefix }
}

// WithClock replaces time.Now for timestamps.
func WithClock(now func() time.Time) Option {
	return func(o *options) { o.now = now }
}

// WithIDGenerator replaces the UUIDv4 generator used for new records.
func WithIDGenerator(newID func() string) Option {
	return func(o *options) { o.newID = newID }
}

// WithSeed replaces the built-in dataset used for absent or corrupt collections.
func WithSeed(fn func(time.Time) seed.Dataset) Option {
	return func(o *options) { o.seed = fn }
}

// WithLogger sets the logger for load and persistence diagnostics.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) { o.logger = l }
}

// Store is the explicit state holder. The zero value is not usable; call Open.
type Store struct {
	mu      sync.Mutex
	storage storage.Storage
	keys    storage.Keys
	opts    options
	st      state

	listenersMu sync.RWMutex
	listeners   map[uint64]Listener
	nextLis     uint64

	dispatchMu  sync.Mutex
	pending     []Event
	dispatching bool
}

// Open loads state from s, falling back to seed data for absent or corrupt
// collections, and flushes the result so it is durable immediately.
// A storage read or write failure is returned.
func Open(ctx context.Context, s storage.Storage, opts ...Option) (*Store, error) {
	o := options{
		fallback:          FallbackPerKey,
		strictConnections: true,
		keyPrefix:         storage.DefaultKeyPrefix,
		now:               time.Now,
		newID:             uuid.NewString,
		seed:              seed.Default,
		logger:            observability.GlobalLogger.Logger,
	}
	for _, opt := range opts {
		opt(&o)
	}
	if o.fallback != FallbackPerKey && o.fallback != FallbackAllOrNothing {
		return nil, fmt.Errorf("unknown fallback mode %q", o.fallback)
	}

	st := &Store{
		storage:   s,
		keys:      storage.NewKeys(o.keyPrefix),
		opts:      o,
		listeners: make(map[uint64]Listener),
	}

	if err := st.load(ctx); err != nil {
		return nil, err
	}

	st.mu.Lock()
	defer st.mu.Unlock()
	if err := st.flush(ctx); err != nil {
		return nil, fmt.Errorf("persist initial state: %w", err)
	}
	return st, nil
}

// Close releases the underlying storage.
func (s *Store) Close() error {
	return s.storage.Close()
}

// Ping checks the underlying storage is reachable.
func (s *Store) Ping(ctx context.Context) error {
	return s.storage.Ping(ctx)
}

func decodeCollection[T any](raw string) ([]T, error) {
	var out []T
	if err := json.Unmarshal([]byte(raw), &out); err != nil {
		return nil, err
	}
	if out == nil {
		return nil, errors.New("stored value is null")
	}
	return out, nil
}

// slot binds one collection key to its decoder and seed value.
type slot struct {
	name   string
	key    string
	decode func(raw string) error
	reset  func()
}

func (s *Store) load(ctx context.Context) error {
	ds := s.opts.seed(s.opts.now())
	var st state

	slots := []slot{
		{
			name:   collUsers,
			key:    s.keys.Users,
			decode: func(raw string) (err error) { st.users, err = decodeCollection[models.User](raw); return },
			reset:  func() { st.users = ds.Users },
		},
		{
			name:   collStartups,
			key:    s.keys.Startups,
			decode: func(raw string) (err error) { st.startups, err = decodeCollection[models.Startup](raw); return },
			reset:  func() { st.startups = ds.Startups },
		},
		{
			name:   collIdeas,
			key:    s.keys.Ideas,
			decode: func(raw string) (err error) { st.ideas, err = decodeCollection[models.Idea](raw); return },
			reset:  func() { st.ideas = ds.Ideas },
		},
		{
			name:   collConversations,
			key:    s.keys.Conversations,
			decode: func(raw string) (err error) { st.conversations, err = decodeCollection[models.Conversation](raw); return },
			reset:  func() { st.conversations = ds.Conversations },
		},
		{
			name:   collNotifications,
			key:    s.keys.Notifications,
			decode: func(raw string) (err error) { st.notifications, err = decodeCollection[models.Notification](raw); return },
			reset:  func() { st.notifications = ds.Notifications },
		},
		{
			name:   collRequests,
			key:    s.keys.Requests,
			decode: func(raw string) (err error) { st.requests, err = decodeCollection[models.ConnectionRequest](raw); return },
			reset:  func() { st.requests = ds.ConnectionRequests },
		},
	}

	corrupt := false
	for _, sl := range slots {
		raw, found, err := s.storage.Get(ctx, sl.key)
		if err != nil {
			return fmt.Errorf("load %s: %w", sl.key, err)
		}
		// An empty value is treated like a missing key.
		if !found || raw == "" {
			sl.reset()
			s.logFallback(ctx, sl.name, "absent", nil)
			continue
		}
		if err := sl.decode(raw); err != nil {
			corrupt = true
			sl.reset()
			s.logFallback(ctx, sl.name, "corrupt", err)
		}
	}

	sessionUser, sessionCorrupt, err := s.loadSession(ctx)
	if err != nil {
		return err
	}
	if sessionCorrupt {
		corrupt = true
	}

	if corrupt && s.opts.fallback == FallbackAllOrNothing {
		for _, sl := range slots {
			sl.reset()
		}
		sessionUser = ""
		s.opts.logger.WarnContext(ctx, "stored state is corrupt, resetting every collection to seed data",
			slog.String("fallback", string(s.opts.fallback)))
	}

	if sessionUser != "" && st.userIndex(sessionUser) < 0 {
		s.opts.logger.WarnContext(ctx, "session user no longer exists, starting logged out",
			slog.String("user_id", sessionUser))
		sessionUser = ""
	}
	st.sessionID = sessionUser
	st.normalize()

	s.mu.Lock()
	s.st = st
	s.mu.Unlock()
	return nil
}

// loadSession returns the stored session user ID. An unparseable entry
// reports corrupt=true and an empty ID.
func (s *Store) loadSession(ctx context.Context) (userID string, corrupt bool, err error) {
	raw, found, err := s.storage.Get(ctx, s.keys.CurrentUser)
	if err != nil {
		return "", false, fmt.Errorf("load %s: %w", s.keys.CurrentUser, err)
	}
	if !found || raw == "" {
		return "", false, nil
	}
	var u models.User
	if err := json.Unmarshal([]byte(raw), &u); err != nil || u.ID == "" {
		if err == nil {
			err = errors.New("session record has no id")
		}
		s.logFallback(ctx, collSession, "corrupt", err)
		return "", true, nil
	}
	return u.ID, false, nil
}

func (s *Store) logFallback(ctx context.Context, collection, reason string, err error) {
	observability.SeedFallbacks.WithLabelValues(collection, reason).Inc()
	if reason == "absent" {
		return
	}
	observability.NewStoreLogger(collection).LogFallback(ctx, reason, err)
}

// flush writes every collection and the session entry. Callers hold s.mu.
// All keys are attempted; failures are joined.
func (s *Store) flush(ctx context.Context) error {
	span, ctx := observability.NewSpan(ctx, "store.flush")
	defer span.End()
	start := time.Now()
	defer func() { observability.StoreFlushLatency.Observe(time.Since(start).Seconds()) }()

	entries := []struct {
		key   string
		value any
	}{
		{s.keys.Users, s.st.users},
		{s.keys.Startups, s.st.startups},
		{s.keys.Ideas, s.st.ideas},
		{s.keys.Conversations, s.st.conversations},
		{s.keys.Notifications, s.st.notifications},
		{s.keys.Requests, s.st.requests},
	}

	var errs []error
	for _, e := range entries {
		data, err := json.Marshal(e.value)
		if err != nil {
			errs = append(errs, fmt.Errorf("encode %s: %w", e.key, err))
			continue
		}
		if err := s.storage.Set(ctx, e.key, string(data)); err != nil {
			errs = append(errs, err)
		}
	}

	if u, ok := s.st.sessionUser(); ok {
		data, err := json.Marshal(u)
		if err != nil {
			errs = append(errs, fmt.Errorf("encode %s: %w", s.keys.CurrentUser, err))
		} else if err := s.storage.Set(ctx, s.keys.CurrentUser, string(data)); err != nil {
			errs = append(errs, err)
		}
	} else if err := s.storage.Remove(ctx, s.keys.CurrentUser); err != nil {
		errs = append(errs, err)
	}

	err := errors.Join(errs...)
	if err != nil {
		span.SetError(err)
	}
	span.AddAttributes(attribute.Int("store.keys", len(entries)+1))
	return err
}

// mutate applies fn to a copy of the state. On success the copy replaces the
// state, is flushed, and the events fn recorded are queued in commit order and
// delivered after unlock.
// If fn fails, nothing changes.
func (s *Store) mutate(ctx context.Context, op string, fn func(t *tx) error) error {
	s.mu.Lock()
	t := &tx{
		state: s.st.clone(),
		now:   s.opts.now().UTC(),
		newID: s.opts.newID,
	}
	if err := fn(t); err != nil {
		s.mu.Unlock()
		observability.CountStoreOperation(op, err)
		return err
	}
	s.st = *t.state
	flushErr := s.flush(ctx)
	s.enqueue(t.events)
	s.mu.Unlock()

	s.dispatch()

	if flushErr != nil {
		observability.NewStoreLogger("state").LogError(ctx, flushErr, op)
		flushErr = models.NewInternalError(fmt.Errorf("persist state: %w", flushErr))
	}
	observability.CountStoreOperation(op, flushErr)
	return flushErr
}

// read runs fn with the lock held. fn must not retain references into st.
func (s *Store) read(fn func(st *state)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fn(&s.st)
}
