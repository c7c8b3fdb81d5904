package model

import (
	"hotel/shared/failure"
	"hotel/shared/model"
	"net/http"
	"time"

	"github.com/lib/pq"
)

const (
	TableName  = "blog_posts"
	EntityName = "blog post"

	FieldID          = "id"
	FieldSlug        = "slug"
	FieldStatus      = "status"
	FieldPublishedAt = "published_at"
)

const (
	CommentTableName  = "blog_comments"
	CommentEntityName = "blog comment"

	FieldPostID   = "post_id"
	FieldParentID = "parent_id"
)

const (
	LikeTableName  = "blog_comment_likes"
	LikeEntityName = "blog comment like"

	FieldCommentID = "comment_id"
	FieldUserID    = "user_id"
)

const (
	StatusDraft     = "draft"
	StatusPublished = "published"
)

var (
	ErrPostNotFound    = &failure.Failure{Code: http.StatusNotFound, Message: "blog post not found"}
	ErrCommentNotFound = &failure.Failure{Code: http.StatusNotFound, Message: "comment not found"}
	ErrReplyNotFound   = &failure.Failure{Code: http.StatusNotFound, Message: "reply not found"}
	ErrSlugTaken       = &failure.Failure{Code: http.StatusConflict, Message: "blog post with this slug already exists"}
	ErrNotCommentOwner = &failure.Failure{Code: http.StatusForbidden, Message: "only the author or an admin can delete this comment"}
)

type Post struct {
	ID           string         `db:"id"`
	Title        string         `db:"title"`
	Slug         string         `db:"slug"`
	Excerpt      string         `db:"excerpt"`
	Content      string         `db:"content"`
	HeroImage    string         `db:"hero_image"`
	Categories   pq.StringArray `db:"categories"`
	Tags         pq.StringArray `db:"tags"`
	AuthorName   string         `db:"author_name"`
	AuthorAvatar *string        `db:"author_avatar"`
	PublishedAt  *time.Time     `db:"published_at"`
	Status       string         `db:"status"`
	model.Metadata
}

func (p Post) IsPublished() bool {
	return p.Status == StatusPublished
}

// Comment is a top-level comment when ParentID is nil and a reply otherwise.
type Comment struct {
	ID          string  `db:"id"`
	PostID      string  `db:"post_id"`
	ParentID    *string `db:"parent_id"`
	AuthorKind  string  `db:"author_kind"`
	UserID      *string `db:"user_id"`
	AuthorName  string  `db:"author_name"`
	AuthorEmail string  `db:"author_email"`
	Content     string  `db:"content"`
	model.Metadata
}

// WrittenBy reports whether userID is the signed-in author of the comment.
func (c Comment) WrittenBy(userID string) bool {
	return c.UserID != nil && userID != "" && *c.UserID == userID
}

type Like struct {
	CommentID string    `db:"comment_id"`
	UserID    string    `db:"user_id"`
	CreatedAt time.Time `db:"created_at"`
}
