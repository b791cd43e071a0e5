package server

import (
	"net/http"
	"testing"

	"startupconnect/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserHandlers(t *testing.T) {
	_, app := newTestServer(t, testServerOpts{})
	login(t, app, sarahEmail)

	t.Run("Filter by role", func(t *testing.T) {
		resp := doRequest(t, app, http.MethodGet, "/api/users?role=vc", nil)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		users := decodeJSON[[]userResponse](t, resp)
		require.Len(t, users, 2)
		for _, u := range users {
			assert.Equal(t, models.RoleVC, u.Role)
			assert.Empty(t, u.Password)
		}
	})

	t.Run("Exclude self", func(t *testing.T) {
		users := decodeJSON[[]userResponse](t, doRequest(t, app, http.MethodGet, "/api/users?role=founder&excludeSelf=true", nil))
		for _, u := range users {
			assert.NotEqual(t, "1", u.ID)
		}
		assert.Len(t, users, 3)
	})

	t.Run("Unknown role", func(t *testing.T) {
		resp := doRequest(t, app, http.MethodGet, "/api/users?role=admin", nil)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("Get by ID", func(t *testing.T) {
		resp := doRequest(t, app, http.MethodGet, "/api/users/4", nil)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Equal(t, "James Wilson", decodeJSON[userResponse](t, resp).Name)

		missing := doRequest(t, app, http.MethodGet, "/api/users/404", nil)
		assert.Equal(t, http.StatusNotFound, missing.StatusCode)
		assert.Equal(t, models.CodeNotFound, decodeJSON[models.ErrorResponse](t, missing).Code)
	})

	t.Run("Update own profile", func(t *testing.T) {
		resp := doRequest(t, app, http.MethodPut, "/api/users/me", map[string]any{
			"bio":    "Building climate software.",
			"skills": []string{"Go", "Product"},
		})
		require.Equal(t, http.StatusOK, resp.StatusCode)
		updated := decodeJSON[userResponse](t, resp)
		assert.Equal(t, "Building climate software.", updated.Bio)
		assert.Equal(t, []string{"Go", "Product"}, updated.Skills)
		assert.Equal(t, "Sarah Chen", updated.Name)

		session := decodeJSON[map[string]any](t, doRequest(t, app, http.MethodGet, "/api/auth/session", nil))
		assert.Equal(t, "Building climate software.", session["user"].(map[string]any)["bio"])
	})
}

func TestConnectionHandlers(t *testing.T) {
	_, app := newTestServer(t, testServerOpts{})
	login(t, app, sarahEmail)

	resp := doRequest(t, app, http.MethodPost, "/api/connections/requests/5", nil)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	req := decodeJSON[models.ConnectionRequest](t, resp)
	assert.Equal(t, "1", req.FromUserID)
	assert.Equal(t, "5", req.ToUserID)

	tests := []struct {
		name         string
		path         string
		expectedCode int
	}{
		{"Duplicate request", "/api/connections/requests/5", http.StatusConflict},
		{"Existing connection", "/api/connections/requests/2", http.StatusConflict},
		{"Self", "/api/connections/requests/1", http.StatusBadRequest},
		{"Unknown user", "/api/connections/requests/99", http.StatusNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := doRequest(t, app, http.MethodPost, tt.path, nil)
			assert.Equal(t, tt.expectedCode, resp.StatusCode)
		})
	}

	sent := decodeJSON[[]models.ConnectionRequest](t, doRequest(t, app, http.MethodGet, "/api/connections/requests/sent", nil))
	require.Len(t, sent, 1)
	assert.Equal(t, req.ID, sent[0].ID)

	logout(t, app)
	login(t, app, lisaEmail)

	pending := decodeJSON[[]models.ConnectionRequest](t, doRequest(t, app, http.MethodGet, "/api/connections/requests", nil))
	require.Len(t, pending, 1)

	accept := doRequest(t, app, http.MethodPost, "/api/connections/requests/"+req.ID+"/accept", nil)
	require.Equal(t, http.StatusOK, accept.StatusCode)

	sarah := decodeJSON[userResponse](t, doRequest(t, app, http.MethodGet, "/api/users/1", nil))
	assert.Contains(t, sarah.Connections, "5")
	lisa := decodeJSON[userResponse](t, doRequest(t, app, http.MethodGet, "/api/users/5", nil))
	assert.Contains(t, lisa.Connections, "1")

	again := doRequest(t, app, http.MethodPost, "/api/connections/requests/"+req.ID+"/decline", nil)
	assert.Equal(t, http.StatusNotFound, again.StatusCode)
}

func TestStartupHandlers(t *testing.T) {
	_, app := newTestServer(t, testServerOpts{})
	login(t, app, mayaEmail)

	resp := doRequest(t, app, http.MethodPost, "/api/startups", map[string]any{
		"name":        "Harbor",
		"tagline":     "Port logistics, simplified",
		"description": "Scheduling for container terminals.",
		"industry":    "Logistics",
		"stage":       "Idea",
		"founderRole": "CEO",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	created := decodeJSON[models.Startup](t, resp)
	assert.Equal(t, []string{"3"}, created.Founders)
	assert.Equal(t, []models.TeamMember{{UserID: "3", Role: "CEO"}}, created.Team)

	list := decodeJSON[[]models.Startup](t, doRequest(t, app, http.MethodGet, "/api/startups", nil))
	assert.Len(t, list, 3)

	update := doRequest(t, app, http.MethodPut, "/api/startups/"+created.ID, map[string]any{"stage": "Pre-seed"})
	require.Equal(t, http.StatusOK, update.StatusCode)
	assert.Equal(t, "Pre-seed", decodeJSON[models.Startup](t, update).Stage)

	badMilestone := doRequest(t, app, http.MethodPut, "/api/startups/"+created.ID, map[string]any{
		"milestones": []map[string]string{{"title": "Launch", "date": "June", "status": "planned"}},
	})
	assert.Equal(t, http.StatusBadRequest, badMilestone.StatusCode)

	missing := doRequest(t, app, http.MethodGet, "/api/startups/nope", nil)
	assert.Equal(t, http.StatusNotFound, missing.StatusCode)

	logout(t, app)
	login(t, app, lisaEmail)

	interest := doRequest(t, app, http.MethodPost, "/api/startups/"+created.ID+"/interest", nil)
	require.Equal(t, http.StatusOK, interest.StatusCode)
	assert.Equal(t, []string{"5"}, decodeJSON[models.Startup](t, interest).InterestedVCs)

	fetched := decodeJSON[models.Startup](t, doRequest(t, app, http.MethodGet, "/api/startups/"+created.ID, nil))
	assert.Equal(t, []string{"5"}, fetched.InterestedVCs)
}

func TestIdeaHandlers(t *testing.T) {
	_, app := newTestServer(t, testServerOpts{})
	login(t, app, mayaEmail)

	trending := decodeJSON[[]models.Idea](t, doRequest(t, app, http.MethodGet, "/api/ideas?sort=trending", nil))
	require.Len(t, trending, 3)
	assert.Equal(t, "3", trending[0].ID)

	climate := decodeJSON[[]models.Idea](t, doRequest(t, app, http.MethodGet, "/api/ideas?category=Climate%20Tech", nil))
	require.Len(t, climate, 1)
	assert.Equal(t, "2", climate[0].ID)

	before := decodeJSON[models.Idea](t, doRequest(t, app, http.MethodGet, "/api/ideas/2", nil))

	up := decodeJSON[models.Idea](t, doRequest(t, app, http.MethodPost, "/api/ideas/2/upvote", nil))
	assert.Equal(t, before.Upvotes+1, up.Upvotes)
	assert.Contains(t, up.UpvotedBy, "3")

	down := decodeJSON[models.Idea](t, doRequest(t, app, http.MethodPost, "/api/ideas/2/upvote", nil))
	assert.Equal(t, before.Upvotes, down.Upvotes)
	assert.NotContains(t, down.UpvotedBy, "3")

	comment := doRequest(t, app, http.MethodPost, "/api/ideas/2/comments", CommentRequest{Text: "Count me in."})
	require.Equal(t, http.StatusCreated, comment.StatusCode)
	c := decodeJSON[models.Comment](t, comment)
	assert.Equal(t, "3", c.UserID)

	empty := doRequest(t, app, http.MethodPost, "/api/ideas/2/comments", CommentRequest{Text: "   "})
	assert.Equal(t, http.StatusBadRequest, empty.StatusCode)

	created := doRequest(t, app, http.MethodPost, "/api/ideas", map[string]any{
		"title":       "Shared lab benches",
		"description": "Hourly bench rental for hardware founders.",
		"category":    "Hardware",
		"stage":       "Concept",
	})
	require.Equal(t, http.StatusCreated, created.StatusCode)
	idea := decodeJSON[models.Idea](t, created)
	assert.Equal(t, "3", idea.Author)
	assert.Zero(t, idea.Upvotes)

	missing := doRequest(t, app, http.MethodPost, "/api/ideas/nope/upvote", nil)
	assert.Equal(t, http.StatusNotFound, missing.StatusCode)
}

func TestConversationHandlers(t *testing.T) {
	_, app := newTestServer(t, testServerOpts{})
	login(t, app, sarahEmail)

	convs := decodeJSON[[]models.Conversation](t, doRequest(t, app, http.MethodGet, "/api/conversations", nil))
	require.Len(t, convs, 2)

	existing := decodeJSON[models.Conversation](t, doRequest(t, app, http.MethodPost, "/api/conversations",
		StartConversationRequest{ParticipantID: "2"}))
	assert.Equal(t, "1", existing.ID)

	fresh := decodeJSON[models.Conversation](t, doRequest(t, app, http.MethodPost, "/api/conversations",
		StartConversationRequest{ParticipantID: "6"}))
	assert.ElementsMatch(t, []string{"1", "6"}, fresh.Participants)
	assert.Empty(t, fresh.Messages)

	sent := doRequest(t, app, http.MethodPost, "/api/conversations/"+fresh.ID+"/messages", SendMessageRequest{Text: "Hi David!"})
	require.Equal(t, http.StatusCreated, sent.StatusCode)
	msg := decodeJSON[models.Message](t, sent)
	assert.Equal(t, "1", msg.SenderID)

	thread := decodeJSON[models.Conversation](t, doRequest(t, app, http.MethodGet, "/api/conversations/"+fresh.ID, nil))
	require.Len(t, thread.Messages, 1)
	assert.Equal(t, "Hi David!", thread.Messages[0].Text)

	logout(t, app)
	login(t, app, mayaEmail)

	forbidden := doRequest(t, app, http.MethodGet, "/api/conversations/1", nil)
	assert.Equal(t, http.StatusForbidden, forbidden.StatusCode)

	notParticipant := doRequest(t, app, http.MethodPost, "/api/conversations/1/messages", SendMessageRequest{Text: "hello"})
	assert.Equal(t, http.StatusForbidden, notParticipant.StatusCode)
}

func TestNotificationHandlers(t *testing.T) {
	_, app := newTestServer(t, testServerOpts{})
	login(t, app, sarahEmail)

	list := decodeJSON[[]models.Notification](t, doRequest(t, app, http.MethodGet, "/api/notifications", nil))
	require.Len(t, list, 2)

	count := decodeJSON[map[string]int](t, doRequest(t, app, http.MethodGet, "/api/notifications/unread-count", nil))
	assert.Equal(t, 2, count["count"])

	read := doRequest(t, app, http.MethodPost, "/api/notifications/1/read", nil)
	require.Equal(t, http.StatusOK, read.StatusCode)

	count = decodeJSON[map[string]int](t, doRequest(t, app, http.MethodGet, "/api/notifications/unread-count", nil))
	assert.Equal(t, 1, count["count"])

	all := decodeJSON[map[string]int](t, doRequest(t, app, http.MethodPost, "/api/notifications/read-all", nil))
	assert.Equal(t, 1, all["updated"])

	count = decodeJSON[map[string]int](t, doRequest(t, app, http.MethodGet, "/api/notifications/unread-count", nil))
	assert.Zero(t, count["count"])

	missing := doRequest(t, app, http.MethodPost, "/api/notifications/nope/read", nil)
	assert.Equal(t, http.StatusNotFound, missing.StatusCode)
}

func TestFeatureFlagHandler(t *testing.T) {
	_, app := newTestServer(t, testServerOpts{flags: "live_events=on,notification_fanout=0%"})
	login(t, app, sarahEmail)

	resp := doRequest(t, app, http.MethodGet, "/api/feature-flags", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	body := decodeJSON[struct {
		Raw       map[string]string `json:"raw"`
		Evaluated map[string]bool   `json:"evaluated"`
	}](t, resp)
	assert.Equal(t, "on", body.Raw["live_events"])
	assert.True(t, body.Evaluated["live_events"])
	assert.False(t, body.Evaluated["notification_fanout"])
}

func TestWebsocketGate(t *testing.T) {
	t.Run("Disabled flag", func(t *testing.T) {
		_, app := newTestServer(t, testServerOpts{})
		login(t, app, sarahEmail)

		resp := doRequest(t, app, http.MethodGet, "/api/ws", nil)
		assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	})

	t.Run("Plain HTTP request", func(t *testing.T) {
		_, app := newTestServer(t, testServerOpts{flags: "live_events=on"})
		login(t, app, sarahEmail)

		resp := doRequest(t, app, http.MethodGet, "/api/ws", nil)
		assert.Equal(t, http.StatusUpgradeRequired, resp.StatusCode)
	})
}
