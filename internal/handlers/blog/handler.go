package blog

import (
	"hotel/infras/otel"
	"hotel/internal/domains/blog/model/dto"
	"hotel/internal/domains/blog/service"
	"hotel/shared/constant"
	"hotel/shared/validator"
	"hotel/transport/http/middleware"
	"hotel/transport/http/response"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

const (
	slugPath    = "/{" + constant.RequestParamSlug + "}"
	idPath      = "/{" + constant.RequestParamID + "}"
	commentPath = slugPath + "/comments/{" + constant.RequestParamCommentID + "}"
)

type Handler struct {
	service service.Blog
	auth    middleware.Auth
	otel    otel.Otel
}

func New(service service.Blog, auth middleware.Auth, otel otel.Otel) Handler {
	return Handler{
		service: service,
		auth:    auth,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/blog", func(routerGroup chi.Router) {
		routerGroup.Group(func(public chi.Router) {
			public.Use(handler.auth.OptionalAuth)

			public.Get("/", handler.GetPosts)
			public.Get(slugPath, handler.GetPost)
			public.Post(slugPath+"/comments", handler.AddComment)
			public.Post(commentPath+"/replies", handler.AddReply)
		})

		routerGroup.Group(func(member chi.Router) {
			member.Use(handler.auth.Auth, handler.auth.RequireRoles(middleware.RolesGuest...))

			member.Post(commentPath+"/like", handler.ToggleLike)
			member.Delete(commentPath, handler.DeleteComment)
			member.Delete(commentPath+"/replies/{"+constant.RequestParamReplyID+"}", handler.DeleteReply)
		})

		routerGroup.Group(func(admin chi.Router) {
			admin.Use(handler.auth.Auth, handler.auth.RequireRoles(middleware.RolesAdmin...))

			admin.Post("/", handler.CreatePost)
			admin.Put(idPath, handler.UpdatePost)
			admin.Delete(idPath, handler.DeletePost)
		})
	})
}

// GetPosts lists published posts. Staff and admins may filter by status=draft.
// @Summary List blog posts
// @Tags Blog
// @Produce json
// @Param status query string false "draft or published"
// @Success 200 {object} response.Envelope{data=dto.GetPostsResponse}
// @Router /blog [get]
func (handler *Handler) GetPosts(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetPosts")
	defer scope.End()

	filter := dto.ListPostsFilter{}
	filter.FromRequest(request)

	posts, err := handler.service.GetAll(ctx, filter)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get blog posts")

		response.WithError(writer, err)

		return
	}

	response.WithJSON(writer, http.StatusOK, posts)
}

// GetPost
// @Summary Get a blog post with its comments
// @Tags Blog
// @Produce json
// @Param slug path string true "Post slug"
// @Success 200 {object} response.Envelope{data=dto.PostDetailResponse}
// @Failure 404 {object} response.Envelope
// @Router /blog/{slug} [get]
func (handler *Handler) GetPost(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetPost")
	defer scope.End()

	post, err := handler.service.GetBySlug(ctx, chi.URLParam(request, constant.RequestParamSlug))
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get blog post")

		response.WithError(writer, err)

		return
	}

	response.WithJSON(writer, http.StatusOK, post)
}

// CreatePost
// @Summary Create a blog post
// @Tags Blog
// @Accept json
// @Produce json
// @Param request body dto.CreatePostRequest true "Create Post Request"
// @Success 201 {object} response.Envelope{data=dto.PostResponse}
// @Failure 400 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Router /blog [post]
// @Security BearerAuth
func (handler *Handler) CreatePost(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreatePost")
	defer scope.End()

	req := dto.CreatePostRequest{}

	if err := validator.Validate(request.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(writer, err)

		return
	}

	post, err := handler.service.Create(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create blog post")

		response.WithError(writer, err)

		return
	}

	scope.AddEvent("Blog post created successfully")

	response.WithData(writer, http.StatusCreated, "Blog post created successfully", post)
}

// UpdatePost
// @Summary Update a blog post
// @Tags Blog
// @Accept json
// @Produce json
// @Param id path string true "Post ID"
// @Param request body dto.UpdatePostRequest true "Update Post Request"
// @Success 200 {object} response.Envelope{data=dto.PostResponse}
// @Failure 400 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Router /blog/{id} [put]
// @Security BearerAuth
func (handler *Handler) UpdatePost(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdatePost")
	defer scope.End()

	req := dto.UpdatePostRequest{}

	if err := validator.Validate(request.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(writer, err)

		return
	}

	post, err := handler.service.Update(ctx, chi.URLParam(request, constant.RequestParamID), req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to update blog post")

		response.WithError(writer, err)

		return
	}

	response.WithData(writer, http.StatusOK, "Blog post updated successfully", post)
}

// DeletePost removes the post along with its comments.
// @Summary Delete a blog post
// @Tags Blog
// @Produce json
// @Param id path string true "Post ID"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /blog/{id} [delete]
// @Security BearerAuth
func (handler *Handler) DeletePost(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".DeletePost")
	defer scope.End()

	if err := handler.service.Delete(ctx, chi.URLParam(request, constant.RequestParamID)); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to delete blog post")

		response.WithError(writer, err)

		return
	}

	response.WithMessage(writer, http.StatusOK, "Blog post deleted successfully")
}

// AddComment accepts comments from signed-in users and from visitors who
// leave a name and email.
// @Summary Comment on a blog post
// @Tags Blog
// @Accept json
// @Produce json
// @Param slug path string true "Post slug"
// @Param request body dto.AddCommentRequest true "Add Comment Request"
// @Success 201 {object} response.Envelope{data=dto.CommentResponse}
// @Failure 400 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /blog/{slug}/comments [post]
func (handler *Handler) AddComment(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".AddComment")
	defer scope.End()

	req := dto.AddCommentRequest{}

	if err := validator.Validate(request.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(writer, err)

		return
	}

	comment, err := handler.service.AddComment(ctx, chi.URLParam(request, constant.RequestParamSlug), req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to add comment")

		response.WithError(writer, err)

		return
	}

	response.WithData(writer, http.StatusCreated, "Comment added successfully", comment)
}

// AddReply
// @Summary Reply to a comment
// @Tags Blog
// @Accept json
// @Produce json
// @Param slug path string true "Post slug"
// @Param commentId path string true "Comment ID"
// @Param request body dto.AddCommentRequest true "Add Reply Request"
// @Success 201 {object} response.Envelope{data=dto.CommentResponse}
// @Failure 400 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /blog/{slug}/comments/{commentId}/replies [post]
func (handler *Handler) AddReply(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".AddReply")
	defer scope.End()

	req := dto.AddCommentRequest{}

	if err := validator.Validate(request.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(writer, err)

		return
	}

	reply, err := handler.service.AddReply(ctx,
		chi.URLParam(request, constant.RequestParamSlug),
		chi.URLParam(request, constant.RequestParamCommentID),
		req,
	)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to add reply")

		response.WithError(writer, err)

		return
	}

	response.WithData(writer, http.StatusCreated, "Reply added successfully", reply)
}

// ToggleLike
// @Summary Like or unlike a comment
// @Tags Blog
// @Produce json
// @Param slug path string true "Post slug"
// @Param commentId path string true "Comment ID"
// @Success 200 {object} response.Envelope{data=dto.LikeResponse}
// @Failure 404 {object} response.Envelope
// @Router /blog/{slug}/comments/{commentId}/like [post]
// @Security BearerAuth
func (handler *Handler) ToggleLike(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".ToggleLike")
	defer scope.End()

	like, err := handler.service.ToggleLike(ctx,
		chi.URLParam(request, constant.RequestParamSlug),
		chi.URLParam(request, constant.RequestParamCommentID),
	)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to toggle comment like")

		response.WithError(writer, err)

		return
	}

	response.WithJSON(writer, http.StatusOK, like)
}

// DeleteComment removes the comment and its replies. Only its author or an
// admin may do so.
// @Summary Delete a comment
// @Tags Blog
// @Produce json
// @Param slug path string true "Post slug"
// @Param commentId path string true "Comment ID"
// @Success 200 {object} response.Envelope
// @Failure 403 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /blog/{slug}/comments/{commentId} [delete]
// @Security BearerAuth
func (handler *Handler) DeleteComment(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".DeleteComment")
	defer scope.End()

	err := handler.service.DeleteComment(ctx,
		chi.URLParam(request, constant.RequestParamSlug),
		chi.URLParam(request, constant.RequestParamCommentID),
	)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to delete comment")

		response.WithError(writer, err)

		return
	}

	response.WithMessage(writer, http.StatusOK, "Comment deleted successfully")
}

// DeleteReply
// @Summary Delete a reply
// @Tags Blog
// @Produce json
// @Param slug path string true "Post slug"
// @Param commentId path string true "Comment ID"
// @Param replyId path string true "Reply ID"
// @Success 200 {object} response.Envelope
// @Failure 403 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /blog/{slug}/comments/{commentId}/replies/{replyId} [delete]
// @Security BearerAuth
func (handler *Handler) DeleteReply(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".DeleteReply")
	defer scope.End()

	err := handler.service.DeleteReply(ctx,
		chi.URLParam(request, constant.RequestParamSlug),
		chi.URLParam(request, constant.RequestParamCommentID),
		chi.URLParam(request, constant.RequestParamReplyID),
	)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to delete reply")

		response.WithError(writer, err)

		return
	}

	response.WithMessage(writer, http.StatusOK, "Reply deleted successfully")
}
