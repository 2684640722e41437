package handler

import (
	"github.com/askhub/askhub-backend/internal/common"
	"github.com/askhub/askhub-backend/internal/query"
	"github.com/askhub/askhub-backend/internal/service"
	"github.com/gin-gonic/gin"
)

// CommentHandler handles admin comment listing
type CommentHandler struct {
	service *service.CommentService
}

// NewCommentHandler creates a new CommentHandler
func NewCommentHandler(service *service.CommentService) *CommentHandler {
	return &CommentHandler{service: service}
}

// List handles GET /api/admin/comments
func (h *CommentHandler) List(c *gin.Context) {
	page, err := h.service.List(parseListRequest(c, query.EntityComments))
	if err != nil {
		writeServiceError(c, err)
		return
	}
	common.Success(c, page)
}

// NotificationHandler handles admin notification listing
type NotificationHandler struct {
	service *service.NotificationService
}

// NewNotificationHandler creates a new NotificationHandler
func NewNotificationHandler(service *service.NotificationService) *NotificationHandler {
	return &NotificationHandler{service: service}
}

// List handles GET /api/admin/notifications
func (h *NotificationHandler) List(c *gin.Context) {
	page, err := h.service.List(parseListRequest(c, query.EntityNotifications))
	if err != nil {
		writeServiceError(c, err)
		return
	}
	common.Success(c, page)
}

// TagHandler handles admin tag listing
type TagHandler struct {
	service *service.TagService
}

// NewTagHandler creates a new TagHandler
func NewTagHandler(service *service.TagService) *TagHandler {
	return &TagHandler{service: service}
}

// List handles GET /api/admin/tags. Tags are returned with their
// question counts, sorted by name; the set is small enough that it
// is not paginated.
func (h *TagHandler) List(c *gin.Context) {
	tags, err := h.service.List()
	if err != nil {
		writeServiceError(c, err)
		return
	}
	common.Success(c, tags)
}
