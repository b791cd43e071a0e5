package models

import (
	"slices"
	"time"
)

// Comment is a reply on an idea.
type Comment struct {
	ID        string    `json:"id" yaml:"id"`
	UserID    string    `json:"userId" yaml:"userId"`
	Text      string    `json:"text" yaml:"text"`
	CreatedAt time.Time `json:"createdAt" yaml:"createdAt"`
}

// Idea is a post on the idea board.
// Upvotes always equals len(UpvotedBy).
type Idea struct {
	ID          string    `json:"id" yaml:"id"`
	Title       string    `json:"title" yaml:"title"`
	Description string    `json:"description" yaml:"description"`
	Author      string    `json:"author" yaml:"author"`
	Category    string    `json:"category" yaml:"category"`
	Stage       string    `json:"stage" yaml:"stage"`
	Upvotes     int       `json:"upvotes" yaml:"upvotes"`
	UpvotedBy   []string  `json:"upvotedBy" yaml:"upvotedBy"`
	Comments    []Comment `json:"comments" yaml:"comments"`
	CreatedAt   time.Time `json:"createdAt" yaml:"createdAt"`
}

// HasUpvote reports whether userID has upvoted the idea.
func (i *Idea) HasUpvote(userID string) bool {
	return slices.Contains(i.UpvotedBy, userID)
}

// Clone returns a deep copy of i.
func (i Idea) Clone() Idea {
	i.UpvotedBy = slices.Clone(i.UpvotedBy)
	i.Comments = slices.Clone(i.Comments)
	return i
}
