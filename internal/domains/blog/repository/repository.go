package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"fmt"
	"hotel/infras/otel"
	"hotel/infras/postgres"
	"hotel/internal/domains/blog/model"
	"hotel/shared/constant"
	gDto "hotel/shared/dto"
	"hotel/shared/logger"
	gRepo "hotel/shared/repository"
)

// toggleLikeQuery removes an existing like, or inserts one when there was
// nothing to remove. One statement keeps the toggle atomic per user.
const toggleLikeQuery = `WITH removed AS (
	DELETE FROM blog_comment_likes WHERE comment_id = :comment_id AND user_id = :user_id RETURNING 1
)
INSERT INTO blog_comment_likes (comment_id, user_id, created_at)
SELECT CAST(:comment_id AS UUID), CAST(:user_id AS UUID), CAST(:created_at AS TIMESTAMPTZ)
WHERE NOT EXISTS (SELECT 1 FROM removed)
ON CONFLICT DO NOTHING`

type Post interface {
	Insert(ctx context.Context, model model.Post) error
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.Post, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.Post, error)
	Exist(ctx context.Context, filter gDto.FilterGroup) (bool, error)
	Update(ctx context.Context, req map[string]any, filter gDto.FilterGroup) error
	Delete(ctx context.Context, filter gDto.FilterGroup) error
}

type Comment interface {
	Insert(ctx context.Context, model model.Comment) error
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.Comment, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.Comment, error)
	Delete(ctx context.Context, filter gDto.FilterGroup) error
}

type Like interface {
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.Like, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
	Toggle(ctx context.Context, like model.Like) (bool, error)
}

type postRepository struct {
	gRepo.Repository[model.Post]
}

func NewPost(db *postgres.Connection, otel otel.Otel) Post {
	return &postRepository{
		Repository: gRepo.NewRepository[model.Post](model.EntityName, model.TableName, model.FieldID, db, otel),
	}
}

type commentRepository struct {
	gRepo.Repository[model.Comment]
}

func NewComment(db *postgres.Connection, otel otel.Otel) Comment {
	return &commentRepository{
		Repository: gRepo.NewRepository[model.Comment](model.CommentEntityName, model.CommentTableName, model.FieldID, db, otel),
	}
}

type likeRepository struct {
	gRepo.Repository[model.Like]
	db   *postgres.Connection
	otel otel.Otel
}

func NewLike(db *postgres.Connection, otel otel.Otel) Like {
	return &likeRepository{
		Repository: gRepo.NewRepository[model.Like](model.LikeEntityName, model.LikeTableName, model.FieldCommentID, db, otel),
		db:         db,
		otel:       otel,
	}
}

// Toggle flips the like and reports whether the user now likes the comment.
func (repo *likeRepository) Toggle(ctx context.Context, like model.Like) (bool, error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".blog_comment_like.Toggle")
	defer scope.End()

	scope.SetAttribute(constant.OtelQueryAttributeKey, toggleLikeQuery)

	result, err := repo.db.Write.NamedExecContext(ctx, toggleLikeQuery, like)
	if err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return false, fmt.Errorf("failed to toggle data (%s): %w", model.LikeEntityName, err)
	}

	inserted, err := result.RowsAffected()
	if err != nil {
		scope.TraceError(err)

		return false, fmt.Errorf("failed to toggle data (%s): %w", model.LikeEntityName, err)
	}

	return inserted > 0, nil
}
