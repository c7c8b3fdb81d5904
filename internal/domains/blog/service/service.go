package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=./mocks/service_mock.go -package=mocks

import (
	"context"
	"fmt"
	"hotel/infras/otel"
	"hotel/internal/domains/blog/model"
	"hotel/internal/domains/blog/model/dto"
	"hotel/internal/domains/blog/repository"
	"hotel/shared"
	"hotel/shared/constant"
	gDto "hotel/shared/dto"
	"hotel/shared/failure"
	"hotel/shared/identity"
	"hotel/shared/timezone"

	"github.com/rs/zerolog/log"
)

const (
	fieldAuthorName   = "author_name"
	fieldAuthorAvatar = "author_avatar"
)

type Blog interface {
	GetAll(ctx context.Context, filter dto.ListPostsFilter) (dto.GetPostsResponse, error)
	GetBySlug(ctx context.Context, slug string) (dto.PostDetailResponse, error)
	Create(ctx context.Context, req dto.CreatePostRequest) (dto.PostResponse, error)
	Update(ctx context.Context, id string, req dto.UpdatePostRequest) (dto.PostResponse, error)
	Delete(ctx context.Context, id string) error
	AddComment(ctx context.Context, slug string, req dto.AddCommentRequest) (dto.CommentResponse, error)
	AddReply(ctx context.Context, slug, commentID string, req dto.AddCommentRequest) (dto.CommentResponse, error)
	ToggleLike(ctx context.Context, slug, commentID string) (dto.LikeResponse, error)
	DeleteComment(ctx context.Context, slug, commentID string) error
	DeleteReply(ctx context.Context, slug, commentID, replyID string) error
}

type serviceImpl struct {
	posts    repository.Post
	comments repository.Comment
	likes    repository.Like
	otel     otel.Otel
}

func New(posts repository.Post, comments repository.Comment, likes repository.Like, otel otel.Otel) Blog {
	return &serviceImpl{
		posts:    posts,
		comments: comments,
		likes:    likes,
		otel:     otel,
	}
}

// GetAll lists posts newest first. Only staff and admins can see drafts.
func (s *serviceImpl) GetAll(ctx context.Context, filter dto.ListPostsFilter) (res dto.GetPostsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAll")
	defer scope.End()
	defer scope.TraceIfError(err)

	status := filter.Status
	if !canSeeDrafts(ctx) {
		status = model.StatusPublished
	}

	where := gDto.FilterGroup{}
	if status != constant.Empty {
		where = shared.FilterByField(model.FieldStatus, status, model.TableName)
	}

	posts, err := s.posts.GetAll(ctx, gDto.Sorted(model.FieldPublishedAt, gDto.SortDirDesc), where)
	if err != nil {
		log.Error().Err(err).Msg("failed to get blog posts")

		return res, fmt.Errorf("failed to get blog posts: %w", err)
	}

	res.FromModels(posts)

	return res, nil
}

func (s *serviceImpl) GetBySlug(ctx context.Context, slug string) (res dto.PostDetailResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetBySlug")
	defer scope.End()
	defer scope.TraceIfError(err)

	post, err := s.visiblePost(ctx, slug)
	if err != nil {
		return res, err
	}

	comments, err := s.comments.GetAll(ctx, gDto.Sorted(constant.FieldCreatedAt, gDto.SortDirAsc),
		shared.FilterByField(model.FieldPostID, post.ID, model.CommentTableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get blog comments")

		return res, fmt.Errorf("failed to get blog comments: %w", err)
	}

	likes := []model.Like{}

	if len(comments) > 0 {
		ids := make([]string, len(comments))
		for i, c := range comments {
			ids[i] = c.ID
		}

		likes, err = s.likes.GetAll(ctx, gDto.QueryParams{}, gDto.FilterGroup{
			Operator: gDto.FilterGroupOperatorAnd,
			Filters: []any{
				gDto.Filter{Field: model.FieldCommentID, Value: ids, Operator: gDto.FilterOperatorIn, Table: model.LikeTableName},
			},
		})
		if err != nil {
			log.Error().Err(err).Msg("failed to get comment likes")

			return res, fmt.Errorf("failed to get comment likes: %w", err)
		}
	}

	res.FromModel(post, comments, likes)

	return res, nil
}

func (s *serviceImpl) Create(ctx context.Context, req dto.CreatePostRequest) (res dto.PostResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Create")
	defer scope.End()
	defer scope.TraceIfError(err)

	if err = s.ensureSlugFree(ctx, req.Slug); err != nil {
		return res, err
	}

	caller, _ := identity.FromContext(ctx)
	post := req.ToModel(caller.UserID)

	if err = s.posts.Insert(ctx, post); err != nil {
		if shared.IsUniqueViolation(err) {
			return res, model.ErrSlugTaken
		}

		log.Error().Err(err).Msg("failed to create blog post")

		return res, fmt.Errorf("failed to create blog post: %w", err)
	}

	res.FromModel(post)

	return res, nil
}

// Update applies a partial change. Publishing a post that has never been
// published stamps the publish time.
func (s *serviceImpl) Update(ctx context.Context, id string, req dto.UpdatePostRequest) (res dto.PostResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Update")
	defer scope.End()
	defer scope.TraceIfError(err)

	if req.IsEmpty() {
		return res, failure.BadRequestFromString("update request cannot be empty")
	}

	post, err := s.findPost(ctx, id)
	if err != nil {
		return res, err
	}

	if req.Slug != nil && *req.Slug != post.Slug {
		if err = s.ensureSlugFree(ctx, *req.Slug); err != nil {
			return res, err
		}
	}

	caller, _ := identity.FromContext(ctx)
	fields := shared.TransformFields(req, caller.UserID)

	if req.Author != nil {
		fields[fieldAuthorName] = req.Author.Name
		fields[fieldAuthorAvatar] = req.Author.Avatar
	}

	if req.Publishes(post) {
		fields[model.FieldPublishedAt] = timezone.Now()
	}

	filter := byPostID(post.ID)

	if err = s.posts.Update(ctx, fields, filter); err != nil {
		if shared.IsUniqueViolation(err) {
			return res, model.ErrSlugTaken
		}

		log.Error().Err(err).Msg("failed to update blog post")

		return res, fmt.Errorf("failed to update blog post: %w", err)
	}

	updated, err := s.posts.Get(ctx, filter)
	if err != nil {
		return res, fmt.Errorf("failed to get blog post: %w", err)
	}

	res.FromModel(updated)

	return res, nil
}

func (s *serviceImpl) Delete(ctx context.Context, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Delete")
	defer scope.End()
	defer scope.TraceIfError(err)

	post, err := s.findPost(ctx, id)
	if err != nil {
		return err
	}

	if err = s.posts.Delete(ctx, byPostID(post.ID)); err != nil {
		log.Error().Err(err).Msg("failed to delete blog post")

		return fmt.Errorf("failed to delete blog post: %w", err)
	}

	log.Info().Str("slug", post.Slug).Msg("blog post deleted")

	return nil
}

func (s *serviceImpl) AddComment(ctx context.Context, slug string, req dto.AddCommentRequest) (res dto.CommentResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".AddComment")
	defer scope.End()
	defer scope.TraceIfError(err)

	post, err := s.visiblePost(ctx, slug)
	if err != nil {
		return res, err
	}

	return s.addComment(ctx, post.ID, nil, req)
}

func (s *serviceImpl) AddReply(ctx context.Context, slug, commentID string, req dto.AddCommentRequest) (res dto.CommentResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".AddReply")
	defer scope.End()
	defer scope.TraceIfError(err)

	post, err := s.visiblePost(ctx, slug)
	if err != nil {
		return res, err
	}

	parent, err := s.findComment(ctx, post.ID, commentID, nil)
	if err != nil {
		return res, err
	}

	return s.addComment(ctx, post.ID, &parent.ID, req)
}

// ToggleLike adds the caller's like when absent and removes it when present.
func (s *serviceImpl) ToggleLike(ctx context.Context, slug, commentID string) (res dto.LikeResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".ToggleLike")
	defer scope.End()
	defer scope.TraceIfError(err)

	caller, ok := identity.FromContext(ctx)
	if !ok {
		return res, failure.UnauthenticatedError
	}

	post, err := s.visiblePost(ctx, slug)
	if err != nil {
		return res, err
	}

	comment, err := s.findComment(ctx, post.ID, commentID, nil)
	if err != nil {
		return res, err
	}

	liked, err := s.likes.Toggle(ctx, model.Like{CommentID: comment.ID, UserID: caller.UserID, CreatedAt: timezone.Now()})
	if err != nil {
		log.Error().Err(err).Msg("failed to toggle comment like")

		return res, fmt.Errorf("failed to toggle comment like: %w", err)
	}

	likes, err := s.likes.Count(ctx, shared.FilterByField(model.FieldCommentID, comment.ID, model.LikeTableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to count comment likes")

		return res, fmt.Errorf("failed to count comment likes: %w", err)
	}

	res.Liked = liked
	res.Likes = likes

	return res, nil
}

// DeleteComment removes a comment together with its replies.
func (s *serviceImpl) DeleteComment(ctx context.Context, slug, commentID string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".DeleteComment")
	defer scope.End()
	defer scope.TraceIfError(err)

	post, err := s.findPostBySlug(ctx, slug)
	if err != nil {
		return err
	}

	comment, err := s.findComment(ctx, post.ID, commentID, nil)
	if err != nil {
		return err
	}

	return s.deleteComment(ctx, comment)
}

func (s *serviceImpl) DeleteReply(ctx context.Context, slug, commentID, replyID string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".DeleteReply")
	defer scope.End()
	defer scope.TraceIfError(err)

	post, err := s.findPostBySlug(ctx, slug)
	if err != nil {
		return err
	}

	parent, err := s.findComment(ctx, post.ID, commentID, nil)
	if err != nil {
		return err
	}

	reply, err := s.findComment(ctx, post.ID, replyID, &parent.ID)
	if err != nil {
		return err
	}

	return s.deleteComment(ctx, reply)
}

func (s *serviceImpl) addComment(ctx context.Context, postID string, parentID *string, req dto.AddCommentRequest) (res dto.CommentResponse, err error) {
	caller, _ := identity.FromContext(ctx)

	author, err := model.AuthorFromRequest(caller, req.Name, req.Email)
	if err != nil {
		return res, err
	}

	comment := req.ToModel(postID, parentID, author)

	if err = s.comments.Insert(ctx, comment); err != nil {
		log.Error().Err(err).Msg("failed to add blog comment")

		return res, fmt.Errorf("failed to add blog comment: %w", err)
	}

	res.FromModel(comment, nil)

	return res, nil
}

func (s *serviceImpl) deleteComment(ctx context.Context, comment model.Comment) error {
	caller, ok := identity.FromContext(ctx)
	if !ok {
		return failure.UnauthenticatedError
	}

	if !caller.HasRole(constant.RoleAdmin) && !comment.WrittenBy(caller.UserID) {
		return model.ErrNotCommentOwner
	}

	if err := s.comments.Delete(ctx, shared.FilterByID(comment.ID, model.FieldID, model.CommentTableName)); err != nil {
		log.Error().Err(err).Msg("failed to delete blog comment")

		return fmt.Errorf("failed to delete blog comment: %w", err)
	}

	return nil
}

func (s *serviceImpl) findPost(ctx context.Context, id string) (model.Post, error) {
	if !shared.IsUUID(id) {
		return model.Post{}, model.ErrPostNotFound
	}

	return s.getPost(ctx, byPostID(id))
}

func (s *serviceImpl) findPostBySlug(ctx context.Context, slug string) (model.Post, error) {
	return s.getPost(ctx, shared.FilterByField(model.FieldSlug, slug, model.TableName))
}

// visiblePost hides drafts from callers who cannot see them.
func (s *serviceImpl) visiblePost(ctx context.Context, slug string) (model.Post, error) {
	post, err := s.findPostBySlug(ctx, slug)
	if err != nil {
		return post, err
	}

	if !post.IsPublished() && !canSeeDrafts(ctx) {
		return model.Post{}, model.ErrPostNotFound
	}

	return post, nil
}

func (s *serviceImpl) getPost(ctx context.Context, filter gDto.FilterGroup) (model.Post, error) {
	post, err := s.posts.Get(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get blog post")

		return post, fmt.Errorf("failed to get blog post: %w", err)
	}

	if post.ID == constant.Empty {
		return post, model.ErrPostNotFound
	}

	return post, nil
}

// findComment looks up a comment on the post. A nil parentID means a
// top-level comment, otherwise a reply to parentID.
func (s *serviceImpl) findComment(ctx context.Context, postID, id string, parentID *string) (model.Comment, error) {
	notFound := model.ErrCommentNotFound
	if parentID != nil {
		notFound = model.ErrReplyNotFound
	}

	if !shared.IsUUID(id) {
		return model.Comment{}, notFound
	}

	parent := gDto.Filter{Field: model.FieldParentID, Operator: gDto.FilterIsNull, Table: model.CommentTableName}
	if parentID != nil {
		parent = gDto.Filter{Field: model.FieldParentID, Value: *parentID, Operator: gDto.FilterOperatorEq, Table: model.CommentTableName}
	}

	comment, err := s.comments.Get(ctx, gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{Field: model.FieldID, Value: id, Operator: gDto.FilterOperatorEq, Table: model.CommentTableName},
			gDto.Filter{Field: model.FieldPostID, Value: postID, Operator: gDto.FilterOperatorEq, Table: model.CommentTableName},
			parent,
		},
	})
	if err != nil {
		log.Error().Err(err).Msg("failed to get blog comment")

		return comment, fmt.Errorf("failed to get blog comment: %w", err)
	}

	if comment.ID == constant.Empty {
		return comment, notFound
	}

	return comment, nil
}

func (s *serviceImpl) ensureSlugFree(ctx context.Context, slug string) error {
	exists, err := s.posts.Exist(ctx, shared.FilterByField(model.FieldSlug, slug, model.TableName))
	if err != nil {
		return fmt.Errorf("failed to check blog slug: %w", err)
	}

	if exists {
		return model.ErrSlugTaken
	}

	return nil
}

func canSeeDrafts(ctx context.Context) bool {
	caller, ok := identity.FromContext(ctx)

	return ok && caller.HasRole(constant.RoleStaff, constant.RoleAdmin)
}

func byPostID(id string) gDto.FilterGroup {
	return shared.FilterByID(id, model.FieldID, model.TableName)
}
