package store

import (
	"context"
	"fmt"
	"slices"

	"startupconnect/internal/models"
	"startupconnect/internal/observability"
	"startupconnect/internal/validation"
)

var ideaLog = observability.NewStoreLogger(collIdeas)

// CreateIdea posts a new idea authored by the session user.
func (s *Store) CreateIdea(ctx context.Context, data models.Idea) (models.Idea, error) {
	var idea models.Idea
	err := s.mutate(ctx, "create_idea", func(t *tx) error {
		si, err := t.requireSession()
		if err != nil {
			return err
		}
		if err := validation.ValidateIdea(data); err != nil {
			return models.NewValidationError(err.Error())
		}

		i := data.Clone()
		i.ID = t.newID()
		i.Author = t.users[si].ID
		i.Upvotes = 0
		i.UpvotedBy = []string{}
		i.Comments = []models.Comment{}
		i.CreatedAt = t.now
		t.ideas = append(t.ideas, i)

		idea = i.Clone()
		t.emit(EventIdeaCreated, i.ID)
		return nil
	})
	if err == nil {
		ideaLog.LogCreate(ctx, map[string]any{"idea_id": idea.ID})
	}
	return idea, err
}

// UpvoteIdea toggles the session user's upvote. Upvotes is recomputed from
// UpvotedBy so the two cannot diverge.
func (s *Store) UpvoteIdea(ctx context.Context, ideaID string) (models.Idea, error) {
	var idea models.Idea
	err := s.mutate(ctx, "upvote_idea", func(t *tx) error {
		si, err := t.requireSession()
		if err != nil {
			return err
		}
		i := t.ideaIndex(ideaID)
		if i < 0 {
			return models.NewNotFoundError("Idea", ideaID)
		}

		me := t.users[si].ID
		it := &t.ideas[i]
		if j := slices.Index(it.UpvotedBy, me); j >= 0 {
			it.UpvotedBy = slices.Delete(it.UpvotedBy, j, j+1)
		} else {
			it.UpvotedBy = append(it.UpvotedBy, me)
		}
		it.Upvotes = len(it.UpvotedBy)

		idea = it.Clone()
		t.emit(EventIdeaUpvoted, ideaID, it.Author)
		return nil
	})
	return idea, err
}

// AddComment appends a comment by the session user and notifies the author,
// unless the author is commenting on their own idea.
func (s *Store) AddComment(ctx context.Context, ideaID, text string) (models.Comment, error) {
	var comment models.Comment
	err := s.mutate(ctx, "add_comment", func(t *tx) error {
		si, err := t.requireSession()
		if err != nil {
			return err
		}
		i := t.ideaIndex(ideaID)
		if i < 0 {
			return models.NewNotFoundError("Idea", ideaID)
		}
		if err := validation.ValidateText("comment", text); err != nil {
			return models.NewValidationError(err.Error())
		}

		me := t.users[si]
		it := &t.ideas[i]
		comment = models.Comment{
			ID:        t.newID(),
			UserID:    me.ID,
			Text:      text,
			CreatedAt: t.now,
		}
		it.Comments = append(it.Comments, comment)
		t.emit(EventIdeaCommented, ideaID, it.Author)

		if it.Author != me.ID {
			t.notify(models.Notification{
				UserID:  it.Author,
				Type:    models.NotificationIdeaComment,
				Title:   "New Comment on Your Idea",
				Message: fmt.Sprintf("%s commented on \"%s\"", me.Name, it.Title),
				IdeaID:  ideaID,
			})
		}
		return nil
	})
	return comment, err
}
