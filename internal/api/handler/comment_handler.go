package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/webware/award-board/internal/api/award"
	"github.com/webware/award-board/internal/api/metrics"
	"github.com/webware/award-board/internal/api/middleware"
	"github.com/webware/award-board/internal/core/domain"
	"github.com/webware/award-board/internal/core/ports"
)

type CommentHandler struct {
	comments ports.CommentService
}

func NewCommentHandler(comments ports.CommentService) *CommentHandler {
	return &CommentHandler{comments: comments}
}

type addCommentRequest struct {
	Message string `json:"message"`
}

type removeCommentRequest struct {
	MessageID string `json:"message_id"`
}

type commentsResponse struct {
	Username string           `json:"username"`
	Messages []domain.Comment `json:"messages"`
}

// Add posts a comment to the board: 201 on success, 422 when the message
// strays outside Latin-1. The award responder writes the body.
//
// @Summary      Add a comment
// @Tags         comments
// @Accept       json
// @Param        body  body  addCommentRequest  true  "Comment message"
// @Success      201
// @Failure      422
// @Router       /add_comment [post]
func (h *CommentHandler) Add(c echo.Context) error {
	identity, _ := middleware.IdentityFrom(c)

	var req addCommentRequest
	if err := c.Bind(&req); err != nil {
		return err
	}

	if _, err := h.comments.Add(c.Request().Context(), identity.Username, req.Message); err != nil {
		if errors.Is(err, domain.ErrMessageRejected) {
			metrics.CommentsTotal.WithLabelValues("rejected").Inc()
			award.FromContext(c).Terminal(http.StatusUnprocessableEntity)
			return nil
		}
		return err
	}

	metrics.CommentsTotal.WithLabelValues("added").Inc()
	award.FromContext(c).Terminal(http.StatusCreated)
	return nil
}

// Remove deletes the requester's own comment: 200 on success, 403 for
// someone else's comment, and an unknown id falls through to the 404 award.
func (h *CommentHandler) Remove(c echo.Context) error {
	identity, _ := middleware.IdentityFrom(c)

	var req removeCommentRequest
	if err := c.Bind(&req); err != nil {
		return err
	}

	err := h.comments.Remove(c.Request().Context(), req.MessageID, identity.Username)
	switch {
	case err == nil:
		metrics.CommentsTotal.WithLabelValues("removed").Inc()
		award.FromContext(c).Terminal(http.StatusOK)
		return nil
	case errors.Is(err, domain.ErrForbidden):
		award.FromContext(c).Terminal(http.StatusForbidden)
		return nil
	case errors.Is(err, domain.ErrCommentNotFound):
		// pending on purpose: the pipeline's fallback claims it as 404
		return nil
	default:
		return err
	}
}

// List returns every comment, newest first, plus the requester's username.
func (h *CommentHandler) List(c echo.Context) error {
	identity, _ := middleware.IdentityFrom(c)

	comments, err := h.comments.List(c.Request().Context())
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, commentsResponse{
		Username: identity.Username,
		Messages: comments,
	})
}

// RemoveViaDelete rejects the DELETE verb on the removal path. It would be
// the sensible verb, which is exactly why it hands out a 405 instead.
func (h *CommentHandler) RemoveViaDelete(c echo.Context) error {
	c.Response().Header().Set("Allowed", http.MethodPost)
	award.FromContext(c).Terminal(http.StatusMethodNotAllowed)
	return nil
}
