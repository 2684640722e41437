package handler

import (
	"github.com/askhub/askhub-backend/internal/common"
	"github.com/askhub/askhub-backend/internal/query"
	"github.com/askhub/askhub-backend/internal/service"
	"github.com/gin-gonic/gin"
)

// QuestionHandler handles admin question management requests
type QuestionHandler struct {
	service *service.QuestionService
}

// NewQuestionHandler creates a new QuestionHandler
func NewQuestionHandler(service *service.QuestionService) *QuestionHandler {
	return &QuestionHandler{service: service}
}

// List handles GET /api/admin/questions
func (h *QuestionHandler) List(c *gin.Context) {
	page, err := h.service.List(parseListRequest(c, query.EntityQuestions))
	if err != nil {
		writeServiceError(c, err)
		return
	}
	common.Success(c, page)
}

// Get handles GET /api/admin/questions/:id
func (h *QuestionHandler) Get(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	question, err := h.service.Get(id)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	common.Success(c, question)
}

// Delete handles DELETE /api/admin/questions/:id
func (h *QuestionHandler) Delete(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	result, err := h.service.Delete(id)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	common.Success(c, result)
}
