package dto

import (
	"cmp"
	"hotel/internal/domains/blog/model"
	"hotel/shared/constant"
	gDto "hotel/shared/dto"
	gModel "hotel/shared/model"
	"hotel/shared/timezone"
	"net/http"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

const queryStatus = "status"

type PostAuthor struct {
	Name   string  `json:"name"   validate:"required,max=100"`
	Avatar *string `json:"avatar" validate:"omitempty,url"`
}

type CreatePostRequest struct {
	Title       string     `json:"title"       validate:"required,max=200"`
	Slug        string     `json:"slug"        validate:"required,slug,max=200"`
	Excerpt     string     `json:"excerpt"     validate:"required,max=1000"`
	Content     string     `json:"content"     validate:"required"`
	HeroImage   string     `json:"heroImage"   validate:"required,url"`
	Categories  []string   `json:"categories"  validate:"omitempty,dive,max=100"`
	Tags        []string   `json:"tags"        validate:"omitempty,dive,max=100"`
	Author      PostAuthor `json:"author"`
	PublishedAt *time.Time `json:"publishedAt"`
	Status      string     `json:"status"      validate:"omitempty,oneof=draft published"`
}

// ToModel builds a draft unless the post is published straight away, in which
// case the publish time defaults to now.
func (r *CreatePostRequest) ToModel(userID string) model.Post {
	now := timezone.Now()

	status := r.Status
	if status == constant.Empty {
		status = model.StatusDraft
	}

	publishedAt := r.PublishedAt
	if status == model.StatusPublished && publishedAt == nil {
		publishedAt = &now
	}

	return model.Post{
		ID:           uuid.NewString(),
		Title:        strings.TrimSpace(r.Title),
		Slug:         r.Slug,
		Excerpt:      r.Excerpt,
		Content:      r.Content,
		HeroImage:    r.HeroImage,
		Categories:   gModel.Strings(r.Categories),
		Tags:         gModel.Strings(r.Tags),
		AuthorName:   r.Author.Name,
		AuthorAvatar: r.Author.Avatar,
		PublishedAt:  publishedAt,
		Status:       status,
		Metadata: gModel.Metadata{
			CreatedAt:  now,
			ModifiedAt: now,
			CreatedBy:  userID,
			ModifiedBy: userID,
		},
	}
}

// UpdatePostRequest is a partial update. Author is split into its columns by
// Fields.
type UpdatePostRequest struct {
	Title       *string         `db:"title"        json:"title"       validate:"omitempty,min=1,max=200"`
	Slug        *string         `db:"slug"         json:"slug"        validate:"omitempty,slug,max=200"`
	Excerpt     *string         `db:"excerpt"      json:"excerpt"     validate:"omitempty,min=1,max=1000"`
	Content     *string         `db:"content"      json:"content"     validate:"omitempty,min=1"`
	HeroImage   *string         `db:"hero_image"   json:"heroImage"   validate:"omitempty,url"`
	Categories  *pq.StringArray `db:"categories"   json:"categories"  validate:"omitempty,dive,max=100"`
	Tags        *pq.StringArray `db:"tags"         json:"tags"        validate:"omitempty,dive,max=100"`
	Author      *PostAuthor     `db:"-"            json:"author"`
	PublishedAt *time.Time      `db:"published_at" json:"publishedAt"`
	Status      *string         `db:"status"       json:"status"      validate:"omitempty,oneof=draft published"`
}

func (r *UpdatePostRequest) IsEmpty() bool {
	return *r == UpdatePostRequest{}
}

// Publishes reports whether applying r to post makes it published without a
// publish time.
func (r *UpdatePostRequest) Publishes(post model.Post) bool {
	status := post.Status
	if r.Status != nil {
		status = *r.Status
	}

	return status == model.StatusPublished && post.PublishedAt == nil && r.PublishedAt == nil
}

type ListPostsFilter struct {
	Status string
}

func (f *ListPostsFilter) FromRequest(r *http.Request) {
	f.Status = strings.TrimSpace(r.URL.Query().Get(queryStatus))
}

type AddCommentRequest struct {
	Content string `json:"content" validate:"required,max=2000"`
	Name    string `json:"name"    validate:"omitempty,max=100"`
	Email   string `json:"email"   validate:"omitempty,max=200"`
}

func (r *AddCommentRequest) ToModel(postID string, parentID *string, author model.Author) model.Comment {
	now := timezone.Now()

	comment := model.Comment{
		ID:       uuid.NewString(),
		PostID:   postID,
		ParentID: parentID,
		Content:  strings.TrimSpace(r.Content),
		Metadata: gModel.Metadata{
			CreatedAt:  now,
			ModifiedAt: now,
		},
	}

	model.Attribute(&comment, author)

	return comment
}

type PostResponse struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Slug        string     `json:"slug"`
	Excerpt     string     `json:"excerpt"`
	Content     string     `json:"content"`
	HeroImage   string     `json:"heroImage"`
	Categories  []string   `json:"categories"`
	Tags        []string   `json:"tags"`
	Author      PostAuthor `json:"author"`
	PublishedAt *string    `json:"publishedAt,omitempty"`
	Status      string     `json:"status"`
	gDto.Metadata
}

func (r *PostResponse) FromModel(m model.Post) {
	r.ID = m.ID
	r.Title = m.Title
	r.Slug = m.Slug
	r.Excerpt = m.Excerpt
	r.Content = m.Content
	r.HeroImage = m.HeroImage
	r.Categories = gModel.Strings(m.Categories)
	r.Tags = gModel.Strings(m.Tags)
	r.Author = PostAuthor{Name: m.AuthorName, Avatar: m.AuthorAvatar}
	r.Status = m.Status

	if m.PublishedAt != nil {
		publishedAt := timezone.Format(*m.PublishedAt, constant.DateFormat)
		r.PublishedAt = &publishedAt
	}

	r.Metadata.FromModel(m.Metadata)
}

type GetPostsResponse struct {
	Posts []PostResponse `json:"posts"`
	Count int            `json:"count"`
}

func (r *GetPostsResponse) FromModels(models []model.Post) {
	r.Count = len(models)

	r.Posts = make([]PostResponse, len(models))
	for i, m := range models {
		r.Posts[i].FromModel(m)
	}
}

type CommentAuthor struct {
	Kind   string  `json:"kind"`
	UserID *string `json:"userId,omitempty"`
	Name   string  `json:"name"`
}

type CommentResponse struct {
	ID        string            `json:"id"`
	ParentID  *string           `json:"parentId,omitempty"`
	Author    CommentAuthor     `json:"author"`
	Content   string            `json:"content"`
	Likes     int               `json:"likes"`
	LikedBy   []string          `json:"likedBy"`
	Replies   []CommentResponse `json:"replies,omitempty"`
	CreatedAt string            `json:"createdAt"`
}

func (r *CommentResponse) FromModel(m model.Comment, likedBy []string) {
	if likedBy == nil {
		likedBy = []string{}
	}

	r.ID = m.ID
	r.ParentID = m.ParentID
	r.Author = CommentAuthor{Kind: m.AuthorKind, UserID: m.UserID, Name: m.AuthorName}
	r.Content = m.Content
	r.Likes = len(likedBy)
	r.LikedBy = likedBy
	r.CreatedAt = timezone.Format(m.CreatedAt, constant.DateFormat)
}

type PostDetailResponse struct {
	PostResponse
	Comments []CommentResponse `json:"comments"`
}

// FromModel nests replies under their comments. Both levels keep creation
// order, ties broken by id.
func (r *PostDetailResponse) FromModel(post model.Post, comments []model.Comment, likes []model.Like) {
	r.PostResponse.FromModel(post)

	likedBy := make(map[string][]string, len(likes))
	for _, like := range likes {
		likedBy[like.CommentID] = append(likedBy[like.CommentID], like.UserID)
	}

	ordered := slices.Clone(comments)
	slices.SortStableFunc(ordered, func(a, b model.Comment) int {
		return cmp.Or(a.CreatedAt.Compare(b.CreatedAt), cmp.Compare(a.ID, b.ID))
	})

	r.Comments = []CommentResponse{}
	position := make(map[string]int)

	for _, c := range ordered {
		if c.ParentID != nil {
			continue
		}

		res := CommentResponse{}
		res.FromModel(c, likedBy[c.ID])

		position[c.ID] = len(r.Comments)
		r.Comments = append(r.Comments, res)
	}

	for _, c := range ordered {
		if c.ParentID == nil {
			continue
		}

		idx, ok := position[*c.ParentID]
		if !ok {
			continue
		}

		res := CommentResponse{}
		res.FromModel(c, likedBy[c.ID])

		r.Comments[idx].Replies = append(r.Comments[idx].Replies, res)
	}
}

type LikeResponse struct {
	Liked bool `json:"liked"`
	Likes int  `json:"likes"`
}
