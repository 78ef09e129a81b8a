package api

import (
	"net/http"

	"github.com/blog-platform-api/internal/apperr"
	"github.com/blog-platform-api/internal/models"
	"github.com/blog-platform-api/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// PostHandler handles post endpoints
type PostHandler struct {
	services *service.Services
	log      zerolog.Logger
}

// NewPostHandler creates a new PostHandler
func NewPostHandler(services *service.Services, log zerolog.Logger) *PostHandler {
	return &PostHandler{
		services: services,
		log:      log.With().Str("handler", "post").Logger(),
	}
}

// List handles GET /posts
func (h *PostHandler) List(c *gin.Context) {
	filter := parsePostFilter(c)

	result, err := h.services.Post.List(c.Request.Context(), filter)
	if err != nil {
		respondError(c, "Post listing failed", err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// GetByID handles GET /posts/:id
func (h *PostHandler) GetByID(c *gin.Context) {
	post, err := h.services.Post.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, "Post fetch failed", err)
		return
	}

	c.JSON(http.StatusOK, post)
}

// MyPosts handles GET /posts/my-posts
func (h *PostHandler) MyPosts(c *gin.Context) {
	ident := identityFrom(c)

	result, err := h.services.Post.MyPosts(c.Request.Context(), ident.UserID)
	if err != nil {
		respondError(c, "Post fetch failed", err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// Stats handles GET /posts/stats
func (h *PostHandler) Stats(c *gin.Context) {
	stats, err := h.services.Post.Stats(c.Request.Context())
	if err != nil {
		respondError(c, "Stats computation failed", err)
		return
	}

	c.JSON(http.StatusOK, stats)
}

// Create handles POST /posts
func (h *PostHandler) Create(c *gin.Context) {
	var req service.CreatePostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, "Post creation failed", apperr.Validation("invalid request body"))
		return
	}

	ident := identityFrom(c)
	post, err := h.services.Post.Create(c.Request.Context(), req, ident.UserID)
	if err != nil {
		respondError(c, "Post creation failed", err)
		return
	}

	c.JSON(http.StatusCreated, post)
}

// Update handles PATCH /posts/:id
func (h *PostHandler) Update(c *gin.Context) {
	var upd models.PostUpdate
	if err := c.ShouldBindJSON(&upd); err != nil {
		respondError(c, "Post update failed", apperr.Validation("invalid request body"))
		return
	}

	ident := identityFrom(c)
	post, err := h.services.Post.Update(c.Request.Context(), c.Param("id"), upd, ident.UserID, ident.IsAdmin())
	if err != nil {
		respondError(c, "Post update failed", err)
		return
	}

	c.JSON(http.StatusOK, post)
}

// Delete handles DELETE /posts/:id
func (h *PostHandler) Delete(c *gin.Context) {
	ident := identityFrom(c)

	post, err := h.services.Post.Delete(c.Request.Context(), c.Param("id"), ident.UserID, ident.IsAdmin())
	if err != nil {
		respondError(c, "Post delete failed", err)
		return
	}

	c.JSON(http.StatusOK, post)
}
