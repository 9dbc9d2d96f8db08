package handlers

import (
	"net/http"

	"devconnect/internal/middleware"
	"devconnect/internal/services"

	"github.com/gin-gonic/gin"
)

type PostHandler struct {
	posts *services.PostService
}

func NewPostHandler(posts *services.PostService) *PostHandler {
	return &PostHandler{posts: posts}
}

type textRequest struct {
	Text string `json:"text" binding:"notblank"`
}

var textMessages = Messages{
	"text.notblank": "Text is required",
}

// Create POST /api/posts
func (h *PostHandler) Create(c *gin.Context) {
	var req textRequest
	if !bindJSON(c, &req, textMessages) {
		return
	}

	post, err := h.posts.Create(c.Request.Context(), middleware.CurrentUserID(c), req.Text)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, post)
}

// List GET /api/posts，最新的在前
func (h *PostHandler) List(c *gin.Context) {
	posts, err := h.posts.List(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, posts)
}

// Get GET /api/posts/:postId
func (h *PostHandler) Get(c *gin.Context) {
	postID, ok := parseID(c, "postId")
	if !ok {
		respondError(c, services.ErrPostNotFound)
		return
	}

	post, err := h.posts.Get(c.Request.Context(), postID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, post)
}

// Delete DELETE /api/posts/:postId，只有作者可以删除
func (h *PostHandler) Delete(c *gin.Context) {
	postID, ok := parseID(c, "postId")
	if !ok {
		respondError(c, services.ErrPostNotFound)
		return
	}

	if err := h.posts.Delete(c.Request.Context(), middleware.CurrentUserID(c), postID); err != nil {
		respondError(c, err)
		return
	}
	respondMsg(c, http.StatusOK, "Post deleted")
}

// Like PUT /api/posts/like/:postId
func (h *PostHandler) Like(c *gin.Context) {
	postID, ok := parseID(c, "postId")
	if !ok {
		respondError(c, services.ErrPostNotFound)
		return
	}

	likes, err := h.posts.Like(c.Request.Context(), middleware.CurrentUserID(c), postID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"msg": "Post liked", "likes": likes})
}

// Unlike PUT /api/posts/unlike/:postId
func (h *PostHandler) Unlike(c *gin.Context) {
	postID, ok := parseID(c, "postId")
	if !ok {
		respondError(c, services.ErrPostNotFound)
		return
	}

	likes, err := h.posts.Unlike(c.Request.Context(), middleware.CurrentUserID(c), postID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"msg": "Post unliked", "likes": likes})
}

// CreateComment POST /api/posts/comment/:postId
func (h *PostHandler) CreateComment(c *gin.Context) {
	var req textRequest
	if !bindJSON(c, &req, textMessages) {
		return
	}

	postID, ok := parseID(c, "postId")
	if !ok {
		respondError(c, services.ErrPostNotFound)
		return
	}

	comments, err := h.posts.AddComment(c.Request.Context(), middleware.CurrentUserID(c), postID, req.Text)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, comments)
}

// DeleteComment DELETE /api/posts/comment/:postId/:commentId
func (h *PostHandler) DeleteComment(c *gin.Context) {
	postID, ok := parseID(c, "postId")
	if !ok {
		respondError(c, services.ErrPostNotFound)
		return
	}
	commentID, ok := parseID(c, "commentId")
	if !ok {
		respondError(c, services.ErrCommentNotFound)
		return
	}

	comments, err := h.posts.DeleteComment(c.Request.Context(), middleware.CurrentUserID(c), postID, commentID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, comments)
}
