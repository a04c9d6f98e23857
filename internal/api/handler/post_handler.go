package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/constellation/social-api/internal/core/ports"
)

type PostHandler struct {
	posts ports.PostService
}

func NewPostHandler(posts ports.PostService) *PostHandler {
	return &PostHandler{posts: posts}
}

// Create handles POST /api/posts.
//
// @Summary      Create a post
// @Tags         posts
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createPostRequest  true  "Post content"
// @Success      201   {object}  postInfo
// @Failure      400   {object}  map[string]string
// @Failure      403   {object}  map[string]string
// @Router       /api/posts [post]
func (h *PostHandler) Create(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}
	var req createPostRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	post, err := h.posts.CreatePost(c.Request().Context(), actor, req.Content)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, toPostInfo(post))
}

// List handles GET /api/posts.
//
// @Summary      List posts
// @Tags         posts
// @Produce      json
// @Security     BearerAuth
// @Param        page   query     int  false  "Page number (1-based)"
// @Param        limit  query     int  false  "Page size (default 10, max 100)"
// @Success      200    {object}  postListResponse
// @Router       /api/posts [get]
func (h *PostHandler) List(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}
	page, limit, err := pageParams(c)
	if err != nil {
		return err
	}

	list, err := h.posts.ListPosts(c.Request().Context(), actor, ports.Page{Page: page, Limit: limit})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toPostListResponse(list))
}

// Like handles POST /api/posts/:id/like.
//
// @Summary      Like a post
// @Tags         posts
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Post ID"
// @Success      200  {object}  messageResponse
// @Failure      404  {object}  map[string]string
// @Router       /api/posts/{id}/like [post]
func (h *PostHandler) Like(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}
	if err := h.posts.LikePost(c.Request().Context(), actor, c.Param("id")); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "post liked"})
}

// Comment handles POST /api/posts/:id/comment.
//
// @Summary      Comment on a post
// @Tags         posts
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string          true  "Post ID"
// @Param        body  body      commentRequest  true  "Comment"
// @Success      201   {object}  commentInfo
// @Failure      400   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Router       /api/posts/{id}/comment [post]
func (h *PostHandler) Comment(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}
	var req commentRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	comment, err := h.posts.CommentPost(c.Request().Context(), actor, c.Param("id"), req.Content)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, toCommentInfo(*comment))
}
