package seed

import (
	"fmt"
	"os"

	"startupconnect/internal/models"

	"gopkg.in/yaml.v3"
)

// LoadFile reads a YAML dataset. Collections missing from the file are left empty.
func LoadFile(path string) (Dataset, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Dataset{}, fmt.Errorf("read dataset %s: %w", path, err)
	}

	var ds Dataset
	if err := yaml.Unmarshal(data, &ds); err != nil {
		return Dataset{}, fmt.Errorf("parse dataset %s: %w", path, err)
	}
	ds.normalize()
	return ds, nil
}

// WriteFile writes ds to path as YAML.
func WriteFile(path string, ds Dataset) error {
	data, err := yaml.Marshal(ds)
	if err != nil {
		return fmt.Errorf("encode dataset: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write dataset %s: %w", path, err)
	}
	return nil
}

// normalize replaces nil collections with empty ones and recomputes upvote counts.
func (ds *Dataset) normalize() {
	if ds.Users == nil {
		ds.Users = []models.User{}
	}
	if ds.Startups == nil {
		ds.Startups = []models.Startup{}
	}
	if ds.Ideas == nil {
		ds.Ideas = []models.Idea{}
	}
	if ds.Conversations == nil {
		ds.Conversations = []models.Conversation{}
	}
	if ds.Notifications == nil {
		ds.Notifications = []models.Notification{}
	}
	if ds.ConnectionRequests == nil {
		ds.ConnectionRequests = []models.ConnectionRequest{}
	}
	for i := range ds.Ideas {
		ds.Ideas[i].Upvotes = len(ds.Ideas[i].UpvotedBy)
	}
}
