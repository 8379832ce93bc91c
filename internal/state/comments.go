package state

import (
	"context"
	"slices"

	"github.com/erazemk/najdeno/internal/model"
)

// CommentState is a snapshot of the comment slice.
type CommentState struct {
	Comments []model.Comment
	Loading  bool
	Error    string
}

// CommentSlice holds every comment. The API has no per-item listing, so
// views filter with ForItem.
type CommentSlice struct {
	base
	api API

	comments []model.Comment
	tr       tracker
}

// NewCommentSlice creates an empty comment slice.
func NewCommentSlice(a API, opts Options) *CommentSlice {
	s := &CommentSlice{api: a}
	s.init(SliceComment, opts.Logger, opts.Metrics, opts.Notify)
	return s
}

// State returns a snapshot.
func (s *CommentSlice) State() CommentState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return CommentState{
		Comments: slices.Clone(s.comments),
		Loading:  s.tr.loading(),
		Error:    s.tr.err,
	}
}

// ClearError resets the error.
func (s *CommentSlice) ClearError() { s.clearError(&s.tr) }

// FetchComments replaces the list with all comments.
func (s *CommentSlice) FetchComments(ctx context.Context) ([]model.Comment, error) {
	return run(ctx, &s.base, &s.tr, operation[[]model.Comment]{
		name:     "fetchComments",
		fallback: "Failed to fetch comments",
		call:     s.api.ListComments,
		fulfilled: func(comments []model.Comment) {
			s.comments = slices.Clone(comments)
		},
	})
}

// CreateComment posts a comment and appends it.
func (s *CommentSlice) CreateComment(ctx context.Context, comment model.NewComment) (*model.Comment, error) {
	return run(ctx, &s.base, &s.tr, operation[*model.Comment]{
		name:     "createComment",
		fallback: "Failed to create comment",
		call: func(ctx context.Context) (*model.Comment, error) {
			return s.api.CreateComment(ctx, comment)
		},
		fulfilled: func(created *model.Comment) {
			s.comments = append(s.comments, *created)
		},
	})
}

// ForItem returns the comments on itemID, in order.
func ForItem(comments []model.Comment, itemID int64) []model.Comment {
	var out []model.Comment
	for _, c := range comments {
		if c.ItemID == itemID {
			out = append(out, c)
		}
	}
	return out
}
