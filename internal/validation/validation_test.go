package validation

import (
	"strings"
	"testing"

	"startupconnect/internal/models"

	"github.com/stretchr/testify/assert"
)

func TestValidateRegistration(t *testing.T) {
	t.Parallel()

	valid := models.User{Email: "x@example.com", Password: "pw", Name: "X", Role: models.RoleFounder}
	tests := []struct {
		name    string
		mutate  func(*models.User)
		wantErr bool
	}{
		{"Valid founder", func(*models.User) {}, false},
		{"Valid VC", func(u *models.User) { u.Role = models.RoleVC }, false},
		{"Missing email", func(u *models.User) { u.Email = "" }, true},
		{"Malformed email", func(u *models.User) { u.Email = "not-an-email" }, true},
		{"Missing password", func(u *models.User) { u.Password = "" }, true},
		{"Blank name", func(u *models.User) { u.Name = "   " }, true},
		{"Unknown role", func(u *models.User) { u.Role = "angel" }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			u := valid
			tt.mutate(&u)
			err := ValidateRegistration(u)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidatePatch(t *testing.T) {
	t.Parallel()

	empty := ""
	bad := models.Role("angel")
	email := "new@example.com"

	assert.NoError(t, ValidatePatch(models.UserPatch{}))
	assert.NoError(t, ValidatePatch(models.UserPatch{Email: &email}))
	assert.Error(t, ValidatePatch(models.UserPatch{Email: &empty}))
	assert.Error(t, ValidatePatch(models.UserPatch{Password: &empty}))
	assert.Error(t, ValidatePatch(models.UserPatch{Name: &empty}))
	assert.Error(t, ValidatePatch(models.UserPatch{Role: &bad}))
}

func TestValidateText(t *testing.T) {
	t.Parallel()

	assert.NoError(t, ValidateText("comment", "Great idea"))
	assert.Error(t, ValidateText("comment", ""))
	assert.Error(t, ValidateText("message", " \n\t"))
	assert.Error(t, ValidateText("message", strings.Repeat("a", maxTextLength+1)))
}

func TestValidateMilestones(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		milestone models.Milestone
		wantErr   bool
	}{
		{"Valid", models.Milestone{Title: "MVP", Date: "2024-01", Status: models.MilestoneCompleted}, false},
		{"In progress", models.Milestone{Title: "Beta", Date: "2024-12", Status: models.MilestoneInProgress}, false},
		{"Missing title", models.Milestone{Date: "2024-01", Status: models.MilestonePlanned}, true},
		{"Full date", models.Milestone{Title: "MVP", Date: "2024-01-15", Status: models.MilestonePlanned}, true},
		{"Month 13", models.Milestone{Title: "MVP", Date: "2024-13", Status: models.MilestonePlanned}, true},
		{"Unknown status", models.Milestone{Title: "MVP", Date: "2024-01", Status: "done"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateMilestones([]models.Milestone{tt.milestone})
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidateStartupAndIdea(t *testing.T) {
	t.Parallel()

	assert.NoError(t, ValidateStartup(models.Startup{Name: "EcoTrack"}))
	assert.Error(t, ValidateStartup(models.Startup{}))

	blank := " "
	assert.Error(t, ValidateStartupPatch(models.StartupPatch{Name: &blank}))
	assert.Error(t, ValidateStartupPatch(models.StartupPatch{Milestones: &[]models.Milestone{{Title: "x"}}}))
	assert.NoError(t, ValidateStartupPatch(models.StartupPatch{}))

	assert.NoError(t, ValidateIdea(models.Idea{Title: "Idea"}))
	assert.Error(t, ValidateIdea(models.Idea{Title: ""}))
}

func TestValidateNotification(t *testing.T) {
	t.Parallel()

	ok := models.Notification{UserID: "1", Type: models.NotificationConnectionAccepted, Title: "Accepted"}
	assert.NoError(t, ValidateNotification(ok))

	tests := []struct {
		name   string
		mutate func(n *models.Notification)
	}{
		{"Missing recipient", func(n *models.Notification) { n.UserID = "" }},
		{"Empty type", func(n *models.Notification) { n.Type = "" }},
		{"Unknown type", func(n *models.Notification) { n.Type = "digest" }},
		{"Blank title", func(n *models.Notification) { n.Title = "  " }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n := ok
			tt.mutate(&n)
			assert.Error(t, ValidateNotification(n))
		})
	}
}
