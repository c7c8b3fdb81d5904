package service_test

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"hotel/infras/otel/mocks"
	blogMocks "hotel/internal/domains/blog/mocks"
	"hotel/internal/domains/blog/model"
	"hotel/internal/domains/blog/model/dto"
	"hotel/internal/domains/blog/service"
	"hotel/shared/constant"
	gDto "hotel/shared/dto"
	"hotel/shared/failure"
	"hotel/shared/identity"
)

const (
	postID    = "55555555-5555-4555-8555-555555555555"
	commentID = "66666666-6666-4666-8666-666666666666"
	replyID   = "77777777-7777-4777-8777-777777777777"
	guestID   = "11111111-1111-4111-8111-111111111111"
)

type fixture struct {
	posts    *blogMocks.MockPost
	comments *blogMocks.MockComment
	likes    *blogMocks.MockLike
	service  service.Blog
}

func newFixture(t *testing.T) fixture {
	ctrl := gomock.NewController(t)

	f := fixture{
		posts:    blogMocks.NewMockPost(ctrl),
		comments: blogMocks.NewMockComment(ctrl),
		likes:    blogMocks.NewMockLike(ctrl),
	}
	f.service = service.New(f.posts, f.comments, f.likes, mocks.NewOtel())

	return f
}

func ptr[T any](v T) *T {
	return &v
}

func as(role, userID string) context.Context {
	return identity.WithContext(context.Background(), identity.Identity{UserID: userID, Name: "Ana Guest", Email: "ana@hotel.com", Role: role})
}

func published() model.Post {
	return model.Post{ID: postID, Slug: "spring-menu", Title: "Spring menu", Status: model.StatusPublished}
}

func draft() model.Post {
	return model.Post{ID: postID, Slug: "spring-menu", Title: "Spring menu", Status: model.StatusDraft}
}

func topLevel(userID *string) model.Comment {
	return model.Comment{ID: commentID, PostID: postID, AuthorKind: model.AuthorKindUser, UserID: userID, AuthorName: "Ana"}
}

func TestBlogService_GetAll(t *testing.T) {
	publishedOnly := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters:  []any{gDto.Filter{Field: model.FieldStatus, Value: model.StatusPublished, Operator: gDto.FilterOperatorEq, Table: model.TableName}},
	}
	draftsOnly := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters:  []any{gDto.Filter{Field: model.FieldStatus, Value: model.StatusDraft, Operator: gDto.FilterOperatorEq, Table: model.TableName}},
	}
	sorted := gDto.Sorted(model.FieldPublishedAt, gDto.SortDirDesc)

	tests := []struct {
		name   string
		ctx    context.Context
		status string
		want   gDto.FilterGroup
	}{
		{name: "anonymous sees published", ctx: context.Background(), want: publishedOnly},
		{name: "guest asking for drafts still sees published", ctx: as(constant.RoleGuest, guestID), status: model.StatusDraft, want: publishedOnly},
		{name: "staff can list drafts", ctx: as(constant.RoleStaff, guestID), status: model.StatusDraft, want: draftsOnly},
		{name: "admin without filter sees everything", ctx: as(constant.RoleAdmin, guestID), want: gDto.FilterGroup{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			f.posts.EXPECT().GetAll(gomock.Any(), sorted, tt.want).Return([]model.Post{published()}, nil)

			res, err := f.service.GetAll(tt.ctx, dto.ListPostsFilter{Status: tt.status})
			require.NoError(t, err)
			assert.Equal(t, 1, res.Count)
		})
	}
}

func TestBlogService_GetBySlug(t *testing.T) {
	t.Run("threads comments with likes", func(t *testing.T) {
		f := newFixture(t)
		parent := commentID

		f.posts.EXPECT().Get(gomock.Any(), gomock.Any()).Return(published(), nil)
		f.comments.EXPECT().GetAll(gomock.Any(), gDto.Sorted(constant.FieldCreatedAt, gDto.SortDirAsc), gomock.Any()).Return([]model.Comment{
			topLevel(ptr(guestID)),
			{ID: replyID, PostID: postID, ParentID: &parent, AuthorKind: model.AuthorKindAnonymous, AuthorName: "Bo"},
		}, nil)
		f.likes.EXPECT().GetAll(gomock.Any(), gDto.QueryParams{}, gomock.Any()).Return([]model.Like{{CommentID: commentID, UserID: guestID}}, nil)

		res, err := f.service.GetBySlug(context.Background(), "spring-menu")
		require.NoError(t, err)

		require.Len(t, res.Comments, 1)
		assert.Equal(t, 1, res.Comments[0].Likes)
		assert.Equal(t, []string{guestID}, res.Comments[0].LikedBy)
		require.Len(t, res.Comments[0].Replies, 1)
		assert.Equal(t, replyID, res.Comments[0].Replies[0].ID)
	})

	t.Run("no comments skips the likes lookup", func(t *testing.T) {
		f := newFixture(t)

		f.posts.EXPECT().Get(gomock.Any(), gomock.Any()).Return(published(), nil)
		f.comments.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).Return([]model.Comment{}, nil)

		res, err := f.service.GetBySlug(context.Background(), "spring-menu")
		require.NoError(t, err)
		assert.Empty(t, res.Comments)
	})

	t.Run("drafts are hidden from guests", func(t *testing.T) {
		f := newFixture(t)
		f.posts.EXPECT().Get(gomock.Any(), gomock.Any()).Return(draft(), nil)

		_, err := f.service.GetBySlug(as(constant.RoleGuest, guestID), "spring-menu")
		assert.ErrorIs(t, err, model.ErrPostNotFound)
	})

	t.Run("unknown slug", func(t *testing.T) {
		f := newFixture(t)
		f.posts.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Post{}, nil)

		_, err := f.service.GetBySlug(context.Background(), "nope")
		assert.ErrorIs(t, err, model.ErrPostNotFound)
	})
}

func TestBlogService_Create(t *testing.T) {
	req := dto.CreatePostRequest{Title: "Spring menu", Slug: "spring-menu", Status: model.StatusPublished, Author: dto.PostAuthor{Name: "Kitchen"}}

	tests := []struct {
		name      string
		setupMock func(f fixture)
		wantErr   error
	}{
		{
			name: "published post gets a publish time",
			setupMock: func(f fixture) {
				f.posts.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)
				f.posts.EXPECT().Insert(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, post model.Post) error {
					assert.NotNil(t, post.PublishedAt)
					assert.Equal(t, "Kitchen", post.AuthorName)

					return nil
				})
			},
		},
		{
			name: "slug taken",
			setupMock: func(f fixture) {
				f.posts.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
			},
			wantErr: model.ErrSlugTaken,
		},
		{
			name: "slug taken by a concurrent insert",
			setupMock: func(f fixture) {
				f.posts.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)
				f.posts.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(&pq.Error{Code: constant.PqErrorCodeUniqueViolation})
			},
			wantErr: model.ErrSlugTaken,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			tt.setupMock(f)

			res, err := f.service.Create(as(constant.RoleAdmin, guestID), req)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)

				return
			}

			require.NoError(t, err)
			assert.NotNil(t, res.PublishedAt)
		})
	}
}

func TestBlogService_Update(t *testing.T) {
	tests := []struct {
		name      string
		id        string
		req       dto.UpdatePostRequest
		setupMock func(f fixture)
		wantErr   error
		wantCode  int
	}{
		{
			name: "publishing a draft stamps the publish time",
			id:   postID,
			req:  dto.UpdatePostRequest{Status: ptr(model.StatusPublished), Author: &dto.PostAuthor{Name: "Desk"}},
			setupMock: func(f fixture) {
				f.posts.EXPECT().Get(gomock.Any(), gomock.Any()).Return(draft(), nil)
				f.posts.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, fields map[string]any, _ gDto.FilterGroup) error {
						assert.Contains(t, fields, model.FieldPublishedAt)
						assert.Equal(t, "Desk", fields["author_name"])

						return nil
					})
				f.posts.EXPECT().Get(gomock.Any(), gomock.Any()).Return(published(), nil)
			},
		},
		{
			name: "renaming onto a taken slug",
			id:   postID,
			req:  dto.UpdatePostRequest{Slug: ptr("autumn-menu")},
			setupMock: func(f fixture) {
				f.posts.EXPECT().Get(gomock.Any(), gomock.Any()).Return(published(), nil)
				f.posts.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
			},
			wantErr: model.ErrSlugTaken,
		},
		{
			name:      "empty update",
			id:        postID,
			setupMock: func(fixture) {},
			wantCode:  http.StatusBadRequest,
		},
		{
			name:      "id that is not a uuid",
			id:        "spring-menu",
			req:       dto.UpdatePostRequest{Title: ptr("x")},
			setupMock: func(fixture) {},
			wantErr:   model.ErrPostNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			tt.setupMock(f)

			_, err := f.service.Update(as(constant.RoleAdmin, guestID), tt.id, tt.req)

			switch {
			case tt.wantErr != nil:
				assert.ErrorIs(t, err, tt.wantErr)
			case tt.wantCode != 0:
				require.Error(t, err)
				assert.Equal(t, tt.wantCode, failure.GetCode(err))
			default:
				require.NoError(t, err)
			}
		})
	}
}

func TestBlogService_Delete(t *testing.T) {
	f := newFixture(t)
	f.posts.EXPECT().Get(gomock.Any(), gomock.Any()).Return(published(), nil)
	f.posts.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil)

	require.NoError(t, f.service.Delete(as(constant.RoleAdmin, guestID), postID))
}

func TestBlogService_AddComment(t *testing.T) {
	tests := []struct {
		name      string
		ctx       context.Context
		req       dto.AddCommentRequest
		setupMock func(f fixture)
		wantErr   error
		wantKind  string
	}{
		{
			name: "signed-in author comes from the identity",
			ctx:  as(constant.RoleGuest, guestID),
			req:  dto.AddCommentRequest{Content: "Lovely", Name: "Imposter", Email: "x@example.com"},
			setupMock: func(f fixture) {
				f.posts.EXPECT().Get(gomock.Any(), gomock.Any()).Return(published(), nil)
				f.comments.EXPECT().Insert(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, c model.Comment) error {
					assert.Equal(t, "Ana Guest", c.AuthorName)
					assert.Equal(t, "ana@hotel.com", c.AuthorEmail)
					assert.Nil(t, c.ParentID)

					return nil
				})
			},
			wantKind: model.AuthorKindUser,
		},
		{
			name: "anonymous author",
			ctx:  context.Background(),
			req:  dto.AddCommentRequest{Content: "Lovely", Name: "Bo", Email: "bo@example.com"},
			setupMock: func(f fixture) {
				f.posts.EXPECT().Get(gomock.Any(), gomock.Any()).Return(published(), nil)
				f.comments.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(nil)
			},
			wantKind: model.AuthorKindAnonymous,
		},
		{
			name: "anonymous without email",
			ctx:  context.Background(),
			req:  dto.AddCommentRequest{Content: "Lovely", Name: "Bo"},
			setupMock: func(f fixture) {
				f.posts.EXPECT().Get(gomock.Any(), gomock.Any()).Return(published(), nil)
			},
			wantErr: model.ErrAnonymousAuthor,
		},
		{
			name: "draft posts take no comments from guests",
			ctx:  as(constant.RoleGuest, guestID),
			req:  dto.AddCommentRequest{Content: "Early"},
			setupMock: func(f fixture) {
				f.posts.EXPECT().Get(gomock.Any(), gomock.Any()).Return(draft(), nil)
			},
			wantErr: model.ErrPostNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			tt.setupMock(f)

			res, err := f.service.AddComment(tt.ctx, "spring-menu", tt.req)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.wantKind, res.Author.Kind)
			assert.Equal(t, 0, res.Likes)
		})
	}
}

func TestBlogService_AddReply(t *testing.T) {
	t.Run("replies hang off the comment", func(t *testing.T) {
		f := newFixture(t)

		f.posts.EXPECT().Get(gomock.Any(), gomock.Any()).Return(published(), nil)
		f.comments.EXPECT().Get(gomock.Any(), gomock.Any()).Return(topLevel(nil), nil)
		f.comments.EXPECT().Insert(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, c model.Comment) error {
			require.NotNil(t, c.ParentID)
			assert.Equal(t, commentID, *c.ParentID)

			return nil
		})

		res, err := f.service.AddReply(context.Background(), "spring-menu", commentID, dto.AddCommentRequest{Content: "Agreed", Name: "Bo", Email: "bo@example.com"})
		require.NoError(t, err)
		assert.Equal(t, commentID, *res.ParentID)
	})

	t.Run("comment must belong to the post", func(t *testing.T) {
		f := newFixture(t)

		f.posts.EXPECT().Get(gomock.Any(), gomock.Any()).Return(published(), nil)
		f.comments.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Comment{}, nil)

		_, err := f.service.AddReply(context.Background(), "spring-menu", commentID, dto.AddCommentRequest{Content: "Agreed", Name: "Bo", Email: "bo@example.com"})
		assert.ErrorIs(t, err, model.ErrCommentNotFound)
	})
}

func TestBlogService_ToggleLike(t *testing.T) {
	tests := []struct {
		name      string
		ctx       context.Context
		setupMock func(f fixture)
		want      dto.LikeResponse
		wantErr   error
		wantCode  int
	}{
		{
			name: "like",
			ctx:  as(constant.RoleGuest, guestID),
			setupMock: func(f fixture) {
				f.posts.EXPECT().Get(gomock.Any(), gomock.Any()).Return(published(), nil)
				f.comments.EXPECT().Get(gomock.Any(), gomock.Any()).Return(topLevel(nil), nil)
				f.likes.EXPECT().Toggle(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, like model.Like) (bool, error) {
					assert.Equal(t, commentID, like.CommentID)
					assert.Equal(t, guestID, like.UserID)

					return true, nil
				})
				f.likes.EXPECT().Count(gomock.Any(), gomock.Any()).Return(3, nil)
			},
			want: dto.LikeResponse{Liked: true, Likes: 3},
		},
		{
			name: "unlike",
			ctx:  as(constant.RoleGuest, guestID),
			setupMock: func(f fixture) {
				f.posts.EXPECT().Get(gomock.Any(), gomock.Any()).Return(published(), nil)
				f.comments.EXPECT().Get(gomock.Any(), gomock.Any()).Return(topLevel(nil), nil)
				f.likes.EXPECT().Toggle(gomock.Any(), gomock.Any()).Return(false, nil)
				f.likes.EXPECT().Count(gomock.Any(), gomock.Any()).Return(0, nil)
			},
			want: dto.LikeResponse{},
		},
		{
			name:      "needs a signed-in user",
			ctx:       context.Background(),
			setupMock: func(fixture) {},
			wantCode:  http.StatusUnauthorized,
		},
		{
			name: "unknown comment",
			ctx:  as(constant.RoleGuest, guestID),
			setupMock: func(f fixture) {
				f.posts.EXPECT().Get(gomock.Any(), gomock.Any()).Return(published(), nil)
				f.comments.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Comment{}, nil)
			},
			wantErr: model.ErrCommentNotFound,
		},
		{
			name: "store failure",
			ctx:  as(constant.RoleGuest, guestID),
			setupMock: func(f fixture) {
				f.posts.EXPECT().Get(gomock.Any(), gomock.Any()).Return(published(), nil)
				f.comments.EXPECT().Get(gomock.Any(), gomock.Any()).Return(topLevel(nil), nil)
				f.likes.EXPECT().Toggle(gomock.Any(), gomock.Any()).Return(false, errors.New("db down"))
			},
			wantCode: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			tt.setupMock(f)

			res, err := f.service.ToggleLike(tt.ctx, "spring-menu", commentID)

			switch {
			case tt.wantErr != nil:
				assert.ErrorIs(t, err, tt.wantErr)
			case tt.wantCode != 0:
				require.Error(t, err)
				assert.Equal(t, tt.wantCode, failure.GetCode(err))
			default:
				require.NoError(t, err)
				assert.Equal(t, tt.want, res)
			}
		})
	}
}

func TestBlogService_DeleteComment(t *testing.T) {
	tests := []struct {
		name     string
		ctx      context.Context
		author   *string
		deletes  bool
		wantErr  error
		wantCode int
	}{
		{name: "author", ctx: as(constant.RoleGuest, guestID), author: ptr(guestID), deletes: true},
		{name: "admin", ctx: as(constant.RoleAdmin, "admin-1"), author: ptr(guestID), deletes: true},
		{name: "someone else", ctx: as(constant.RoleGuest, "other"), author: ptr(guestID), wantErr: model.ErrNotCommentOwner},
		{name: "staff is not enough", ctx: as(constant.RoleStaff, "staff-1"), wantErr: model.ErrNotCommentOwner},
		{name: "anonymous caller", ctx: context.Background(), wantCode: http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)

			f.posts.EXPECT().Get(gomock.Any(), gomock.Any()).Return(published(), nil)
			f.comments.EXPECT().Get(gomock.Any(), gomock.Any()).Return(topLevel(tt.author), nil)

			if tt.deletes {
				f.comments.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil)
			}

			err := f.service.DeleteComment(tt.ctx, "spring-menu", commentID)

			switch {
			case tt.wantErr != nil:
				assert.ErrorIs(t, err, tt.wantErr)
			case tt.wantCode != 0:
				require.Error(t, err)
				assert.Equal(t, tt.wantCode, failure.GetCode(err))
			default:
				require.NoError(t, err)
			}
		})
	}
}

func TestBlogService_DeleteReply(t *testing.T) {
	t.Run("reply author removes the reply", func(t *testing.T) {
		f := newFixture(t)
		parent := commentID

		f.posts.EXPECT().Get(gomock.Any(), gomock.Any()).Return(published(), nil)
		f.comments.EXPECT().Get(gomock.Any(), gomock.Any()).Return(topLevel(nil), nil)
		f.comments.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Comment{ID: replyID, PostID: postID, ParentID: &parent, UserID: ptr(guestID)}, nil)
		f.comments.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil)

		require.NoError(t, f.service.DeleteReply(as(constant.RoleGuest, guestID), "spring-menu", commentID, replyID))
	})

	t.Run("unknown reply", func(t *testing.T) {
		f := newFixture(t)

		f.posts.EXPECT().Get(gomock.Any(), gomock.Any()).Return(published(), nil)
		f.comments.EXPECT().Get(gomock.Any(), gomock.Any()).Return(topLevel(nil), nil)
		f.comments.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Comment{}, nil)

		err := f.service.DeleteReply(as(constant.RoleAdmin, "admin-1"), "spring-menu", commentID, replyID)
		assert.ErrorIs(t, err, model.ErrReplyNotFound)
	})
}
