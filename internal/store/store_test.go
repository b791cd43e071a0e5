package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"startupconnect/internal/models"
	"startupconnect/internal/storage"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var testEpoch = time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)

// testClock advances one second per call so timestamps are strictly ordered.
func testClock() func() time.Time {
	var n atomic.Int64
	return func() time.Time {
		return testEpoch.Add(time.Duration(n.Add(1)) * time.Second)
	}
}

func testIDs() func() string {
	var n atomic.Int64
	return func() string {
		return fmt.Sprintf("id-%d", n.Add(1))
	}
}

func openTestStore(t *testing.T, s storage.Storage, opts ...Option) *Store {
	t.Helper()
	base := []Option{WithClock(testClock()), WithIDGenerator(testIDs())}
	st, err := Open(context.Background(), s, append(base, opts...)...)
	require.NoError(t, err)
	return st
}

func newTestStore(t *testing.T, opts ...Option) (*Store, *storage.Memory) {
	t.Helper()
	mem := storage.NewMemory()
	return openTestStore(t, mem, opts...), mem
}

func loginAs(t *testing.T, st *Store, email string) models.User {
	t.Helper()
	u, err := st.Login(context.Background(), email, "demo123")
	require.NoError(t, err)
	return u
}

const (
	sarah = "sarah.chen@example.com"
	alex  = "alex.kumar@example.com"
	maya  = "maya.patel@example.com"
	james = "james.wilson@example.com"
	lisa  = "lisa.zhang@example.com"
	david = "david.okonkwo@example.com"
)

// mockStorage is a testify mock of storage.Storage.
type mockStorage struct {
	mock.Mock
}

func (m *mockStorage) Get(ctx context.Context, key string) (string, bool, error) {
	args := m.Called(ctx, key)
	return args.String(0), args.Bool(1), args.Error(2)
}

func (m *mockStorage) Set(ctx context.Context, key, value string) error {
	return m.Called(ctx, key, value).Error(0)
}

func (m *mockStorage) Remove(ctx context.Context, key string) error {
	return m.Called(ctx, key).Error(0)
}

func (m *mockStorage) Ping(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func (m *mockStorage) Close() error {
	return m.Called().Error(0)
}

// flakyStorage fails every write while failWrites is set.
type flakyStorage struct {
	*storage.Memory
	failWrites atomic.Bool
}

var errDiskFull = errors.New("disk full")

func (f *flakyStorage) Set(ctx context.Context, key, value string) error {
	if f.failWrites.Load() {
		return errDiskFull
	}
	return f.Memory.Set(ctx, key, value)
}

func (f *flakyStorage) Remove(ctx context.Context, key string) error {
	if f.failWrites.Load() {
		return errDiskFull
	}
	return f.Memory.Remove(ctx, key)
}

func TestOpen_SeedsEmptyStorageAndFlushes(t *testing.T) {
	st, mem := newTestStore(t)

	assert.Len(t, st.Users(), 6)
	assert.Len(t, st.Startups(), 2)
	assert.Len(t, st.Ideas(), 3)
	assert.Len(t, st.Conversations(), 2)
	assert.Len(t, st.Notifications(), 2)
	assert.Empty(t, st.ConnectionRequests())

	_, loggedIn := st.CurrentUser()
	assert.False(t, loggedIn)

	dump := mem.Dump()
	keys := storage.NewKeys("")
	assert.Len(t, dump, 6)
	assert.Equal(t, "[]", dump[keys.Requests])
	assert.NotContains(t, dump, keys.CurrentUser)

	var users []models.User
	require.NoError(t, json.Unmarshal([]byte(dump[keys.Users]), &users))
	assert.Equal(t, "Sarah Chen", users[0].Name)
}

func TestOpen_StorageReadErrorIsReturned(t *testing.T) {
	m := new(mockStorage)
	m.On("Get", mock.Anything, "startup_connect_users").Return("", false, errors.New("connection refused"))

	_, err := Open(context.Background(), m)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "connection refused")
	m.AssertExpectations(t)
}

func TestOpen_InitialFlushErrorIsReturned(t *testing.T) {
	f := &flakyStorage{Memory: storage.NewMemory()}
	f.failWrites.Store(true)

	_, err := Open(context.Background(), f)
	assert.ErrorIs(t, err, errDiskFull)
}

func TestOpen_UnknownFallbackMode(t *testing.T) {
	_, err := Open(context.Background(), storage.NewMemory(), WithFallbackMode("sometimes"))
	assert.Error(t, err)
}

func TestOpen_CustomKeyPrefix(t *testing.T) {
	_, mem := newTestStore(t, WithKeyPrefix("demo_"))
	assert.Contains(t, mem.Dump(), "demo_users")
	assert.NotContains(t, mem.Dump(), "startup_connect_users")
}

func seedStorage(t *testing.T, values map[string]string) *storage.Memory {
	t.Helper()
	mem := storage.NewMemory()
	for k, v := range values {
		require.NoError(t, mem.Set(context.Background(), k, v))
	}
	return mem
}

const oneUser = `[{"id":"u1","email":"solo@example.com","password":"pw","name":"Solo","role":"founder","connections":[],"createdAt":"2024-01-01T00:00:00Z"}]`

func TestOpen_Fallback(t *testing.T) {
	tests := []struct {
		name          string
		mode          FallbackMode
		values        map[string]string
		wantUsers     int
		wantIdeas     int
		wantLoggedIn  bool
		wantSessionID string
	}{
		{
			name:      "Per key keeps parseable collections",
			mode:      FallbackPerKey,
			values:    map[string]string{"startup_connect_users": oneUser, "startup_connect_ideas": "{not json"},
			wantUsers: 1,
			wantIdeas: 3,
		},
		{
			name:      "All or nothing resets everything",
			mode:      FallbackAllOrNothing,
			values:    map[string]string{"startup_connect_users": oneUser, "startup_connect_ideas": "{not json"},
			wantUsers: 6,
			wantIdeas: 3,
		},
		{
			name:      "Null collection counts as corrupt",
			mode:      FallbackPerKey,
			values:    map[string]string{"startup_connect_users": "null"},
			wantUsers: 6,
			wantIdeas: 3,
		},
		{
			name:      "Absent keys are not corruption",
			mode:      FallbackAllOrNothing,
			values:    map[string]string{"startup_connect_users": oneUser, "startup_connect_ideas": "[]"},
			wantUsers: 1,
			wantIdeas: 0,
		},
		{
			name:      "Empty value is treated as absent",
			mode:      FallbackAllOrNothing,
			values:    map[string]string{"startup_connect_users": "", "startup_connect_ideas": `[{"id":"mine","title":"Mine","upvotedBy":[],"comments":[]}]`},
			wantUsers: 6,
			wantIdeas: 1,
		},
		{
			name: "Empty session is logged out without resetting",
			mode: FallbackAllOrNothing,
			values: map[string]string{
				"startup_connect_users":        oneUser,
				"startup_connect_current_user": "",
			},
			wantUsers: 1,
			wantIdeas: 3,
		},
		{
			name: "Session resolved against loaded users",
			mode: FallbackPerKey,
			values: map[string]string{
				"startup_connect_users":        oneUser,
				"startup_connect_current_user": `{"id":"u1","name":"Stale Name"}`,
			},
			wantUsers:     1,
			wantIdeas:     3,
			wantLoggedIn:  true,
			wantSessionID: "u1",
		},
		{
			name: "Session for unknown user is logged out",
			mode: FallbackPerKey,
			values: map[string]string{
				"startup_connect_current_user": `{"id":"ghost"}`,
			},
			wantUsers: 6,
			wantIdeas: 3,
		},
		{
			name: "Corrupt session per key keeps collections",
			mode: FallbackPerKey,
			values: map[string]string{
				"startup_connect_users":        oneUser,
				"startup_connect_current_user": `{oops`,
			},
			wantUsers: 1,
			wantIdeas: 3,
		},
		{
			name: "Corrupt session all or nothing resets collections",
			mode: FallbackAllOrNothing,
			values: map[string]string{
				"startup_connect_users":        oneUser,
				"startup_connect_current_user": `{oops`,
			},
			wantUsers: 6,
			wantIdeas: 3,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			st := openTestStore(t, seedStorage(t, tt.values), WithFallbackMode(tt.mode))

			assert.Len(t, st.Users(), tt.wantUsers)
			assert.Len(t, st.Ideas(), tt.wantIdeas)
			u, ok := st.CurrentUser()
			assert.Equal(t, tt.wantLoggedIn, ok)
			assert.Equal(t, tt.wantSessionID, u.ID)
		})
	}
}

func TestOpen_SessionIsDerivedFromUsers(t *testing.T) {
	mem := seedStorage(t, map[string]string{
		"startup_connect_users":        oneUser,
		"startup_connect_current_user": `{"id":"u1","name":"Stale Name"}`,
	})
	st := openTestStore(t, mem)

	u, ok := st.CurrentUser()
	require.True(t, ok)
	assert.Equal(t, "Solo", u.Name)

	// The rewritten session entry holds the full, current record.
	var stored models.User
	raw, found, err := mem.Get(context.Background(), "startup_connect_current_user")
	require.NoError(t, err)
	require.True(t, found)
	require.NoError(t, json.Unmarshal([]byte(raw), &stored))
	assert.Equal(t, "Solo", stored.Name)
	assert.Equal(t, "solo@example.com", stored.Email)
}

func TestOpen_NormalizesUpvoteCounts(t *testing.T) {
	mem := seedStorage(t, map[string]string{
		"startup_connect_ideas": `[{"id":"i1","title":"T","upvotes":40,"upvotedBy":["1","2"],"comments":[]}]`,
	})
	st := openTestStore(t, mem)

	ideas := st.Ideas()
	require.Len(t, ideas, 1)
	assert.Equal(t, 2, ideas[0].Upvotes)
}

func TestReloadDurability(t *testing.T) {
	ctx := context.Background()
	st, mem := newTestStore(t)

	loginAs(t, st, david)
	_, err := st.SendConnectionRequest(ctx, "2")
	require.NoError(t, err)
	idea, err := st.CreateIdea(ctx, models.Idea{Title: "Open source carbon ledger", Category: "Climate Tech", Stage: "Idea"})
	require.NoError(t, err)
	_, err = st.UpvoteIdea(ctx, "1")
	require.NoError(t, err)
	conv, err := st.StartConversation(ctx, "5")
	require.NoError(t, err)
	_, err = st.SendMessage(ctx, conv.ID, "Hi Lisa")
	require.NoError(t, err)

	loginAs(t, st, lisa)
	_, err = st.AddComment(ctx, idea.ID, "Interesting")
	require.NoError(t, err)
	_, err = st.ExpressInterest(ctx, "2")
	require.NoError(t, err)

	before := st.Snapshot()

	reloaded := openTestStore(t, mem)
	after := reloaded.Snapshot()

	if diff := cmp.Diff(before, after, cmpopts.EquateEmpty()); diff != "" {
		t.Fatalf("state changed across reload (-before +after):\n%s", diff)
	}
	assert.Equal(t, "5", after.SessionUserID)
}

func TestMutation_PersistFailureKeepsMemoryState(t *testing.T) {
	ctx := context.Background()
	f := &flakyStorage{Memory: storage.NewMemory()}
	st := openTestStore(t, f)

	f.failWrites.Store(true)
	u, err := st.Login(ctx, sarah, "demo123")
	require.Error(t, err)
	assert.True(t, models.HasCode(err, models.CodeInternal))
	assert.ErrorIs(t, err, errDiskFull)
	assert.Equal(t, "1", u.ID)

	current, ok := st.CurrentUser()
	assert.True(t, ok)
	assert.Equal(t, "1", current.ID)

	// The next successful write catches storage up.
	f.failWrites.Store(false)
	_, err = st.UpvoteIdea(ctx, "2")
	require.NoError(t, err)
	_, found, err := f.Get(ctx, "startup_connect_current_user")
	require.NoError(t, err)
	assert.True(t, found)
}

func TestFailedOperationDoesNotWrite(t *testing.T) {
	m := new(mockStorage)
	m.On("Get", mock.Anything, mock.Anything).Return("", false, nil)
	m.On("Set", mock.Anything, mock.Anything, mock.Anything).Return(nil).Times(6)
	m.On("Remove", mock.Anything, "startup_connect_current_user").Return(nil).Once()

	st, err := Open(context.Background(), m)
	require.NoError(t, err)

	_, err = st.Login(context.Background(), sarah, "wrong")
	assert.True(t, models.HasCode(err, models.CodeUnauthorized))
	m.AssertExpectations(t)
	m.AssertNumberOfCalls(t, "Set", 6)
}

func TestSubscribe(t *testing.T) {
	ctx := context.Background()
	st, _ := newTestStore(t)

	var events []Event
	unsubscribe := st.Subscribe(func(e Event) { events = append(events, e) })

	loginAs(t, st, david)
	_, err := st.SendConnectionRequest(ctx, "1")
	require.NoError(t, err)

	require.Len(t, events, 3)
	assert.Equal(t, EventSessionChanged, events[0].Type)
	assert.Equal(t, EventConnectionRequested, events[1].Type)
	assert.ElementsMatch(t, []string{"6", "1"}, events[1].UserIDs)
	assert.Equal(t, EventNotificationCreated, events[2].Type)
	require.NotNil(t, events[2].Notification)
	assert.Equal(t, "1", events[2].Notification.UserID)
	assert.Equal(t, []string{"1"}, events[2].UserIDs)

	unsubscribe()
	require.NoError(t, st.Logout(ctx))
	assert.Len(t, events, 3)
}

func TestSubscribe_ListenerMayReadStore(t *testing.T) {
	st, _ := newTestStore(t)

	var seen string
	st.Subscribe(func(e Event) {
		if e.Type == EventSessionChanged {
			seen = st.SessionUserID()
		}
	})
	loginAs(t, st, maya)
	assert.Equal(t, "3", seen)
}

func TestSubscribe_ConcurrentMutationsDeliverInCommitOrder(t *testing.T) {
	ctx := context.Background()
	st, _ := newTestStore(t)

	var delivered []string
	st.Subscribe(func(e Event) {
		if e.Type == EventNotificationCreated {
			delivered = append(delivered, e.SubjectID)
		}
	})

	const writers = 16
	var wg sync.WaitGroup
	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, err := st.AddNotification(ctx, models.Notification{
				UserID: "3",
				Type:   models.NotificationNewMessage,
				Title:  fmt.Sprintf("Message %d", i),
			})
			assert.NoError(t, err)
		}(i)
	}
	wg.Wait()

	var committed []string
	for _, n := range notificationsFor(st, "3") {
		committed = append(committed, n.ID)
	}
	require.Len(t, committed, writers)
	assert.Equal(t, committed, delivered)
}

func TestSubscribe_ListenerMayMutateStore(t *testing.T) {
	ctx := context.Background()
	st, _ := newTestStore(t)

	var types []EventType
	st.Subscribe(func(e Event) {
		types = append(types, e.Type)
		if e.Type == EventSessionChanged {
			_, err := st.AddNotification(ctx, models.Notification{
				UserID: st.SessionUserID(),
				Type:   models.NotificationNewMessage,
				Title:  "Welcome back",
			})
			assert.NoError(t, err)
		}
	})

	loginAs(t, st, maya)
	assert.Equal(t, []EventType{EventSessionChanged, EventNotificationCreated}, types)
}

func TestFailedOperationEmitsNothing(t *testing.T) {
	st, _ := newTestStore(t)
	called := false
	st.Subscribe(func(Event) { called = true })

	_, err := st.Login(context.Background(), sarah, "nope")
	require.Error(t, err)
	assert.False(t, called)
}
