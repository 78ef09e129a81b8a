package api

import (
	"net/http"

	"github.com/blog-platform-api/internal/apperr"
	"github.com/blog-platform-api/internal/models"
	"github.com/blog-platform-api/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// CommentHandler handles comment endpoints
type CommentHandler struct {
	services *service.Services
	log      zerolog.Logger
}

// NewCommentHandler creates a new CommentHandler
func NewCommentHandler(services *service.Services, log zerolog.Logger) *CommentHandler {
	return &CommentHandler{
		services: services,
		log:      log.With().Str("handler", "comment").Logger(),
	}
}

// Create handles POST /comments. The author is always the caller; the
// payload cannot comment on someone else's behalf.
func (h *CommentHandler) Create(c *gin.Context) {
	var req service.CreateCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, "Comment creation failed", apperr.Validation("invalid request body"))
		return
	}

	ident := identityFrom(c)
	comment, err := h.services.Comment.Create(c.Request.Context(), req, ident.UserID)
	if err != nil {
		respondError(c, "Comment creation failed", err)
		return
	}

	c.JSON(http.StatusCreated, comment)
}

// GetByID handles GET /comments/:commentId
func (h *CommentHandler) GetByID(c *gin.Context) {
	comment, err := h.services.Comment.GetByID(c.Request.Context(), c.Param("commentId"))
	if err != nil {
		respondError(c, "Comment fetch failed", err)
		return
	}

	c.JSON(http.StatusOK, comment)
}

// ListByAuthor handles GET /comments/author/:authorId
func (h *CommentHandler) ListByAuthor(c *gin.Context) {
	comments, err := h.services.Comment.ListByAuthor(c.Request.Context(), c.Param("authorId"))
	if err != nil {
		respondError(c, "Comment fetch failed", err)
		return
	}

	c.JSON(http.StatusOK, comments)
}

// Update handles PATCH /comments/:commentId
func (h *CommentHandler) Update(c *gin.Context) {
	var upd models.CommentUpdate
	if err := c.ShouldBindJSON(&upd); err != nil {
		respondError(c, "Comment update failed", apperr.Validation("invalid request body"))
		return
	}

	ident := identityFrom(c)
	comment, err := h.services.Comment.Update(c.Request.Context(), c.Param("commentId"), upd, ident.UserID)
	if err != nil {
		respondError(c, "Comment update failed", err)
		return
	}

	c.JSON(http.StatusOK, comment)
}

// Delete handles DELETE /comments/:commentId
func (h *CommentHandler) Delete(c *gin.Context) {
	ident := identityFrom(c)

	comment, err := h.services.Comment.Delete(c.Request.Context(), c.Param("commentId"), ident.UserID)
	if err != nil {
		respondError(c, "Comment delete failed", err)
		return
	}

	c.JSON(http.StatusOK, comment)
}

// Moderate handles PATCH /comments/moderate/:commentId
func (h *CommentHandler) Moderate(c *gin.Context) {
	var req struct {
		Status models.CommentStatus `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, "Comment moderation failed", apperr.Validation("invalid request body"))
		return
	}

	comment, err := h.services.Comment.Moderate(c.Request.Context(), c.Param("commentId"), req.Status)
	if err != nil {
		respondError(c, "Comment moderation failed", err)
		return
	}

	c.JSON(http.StatusOK, comment)
}
