package comments

import (
	"time"

	"github.com/arcadia-tracker/arcadia/internal/ownership"
	"github.com/arcadia-tracker/arcadia/internal/users"
)

// Comment is a comment posted on a torrent request.
type Comment struct {
	ID               int64     `json:"id"`
	TorrentRequestID int64     `json:"torrent_request_id"`
	UserID           int64     `json:"user_id"`
	Content          string    `json:"content"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

func (c Comment) Ownership() ownership.Stamp {
	return ownership.Stamp{CreatorID: c.UserID, CreatedAt: c.CreatedAt}
}

// EditedComment is the payload of PUT /api/torrent-requests/comments.
type EditedComment struct {
	ID      int64  `json:"id" validate:"required,gt=0"`
	Content string `json:"content" validate:"required,max=10000"`
}

// CommentHierarchy is a comment as shown in a torrent request thread.
type CommentHierarchy struct {
	Comment
	CreatedBy users.UserLite `json:"created_by"`
}

func applyEdit(current Comment, edit EditedComment, now time.Time) Comment {
	current.Content = edit.Content
	current.UpdatedAt = now
	return current
}

func authorOf(c Comment) int64 { return c.UserID }

func newHierarchy(c Comment, author users.UserLite) CommentHierarchy {
	return CommentHierarchy{Comment: c, CreatedBy: author}
}
