package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/askhub/askhub-backend/internal/common"
	"github.com/askhub/askhub-backend/internal/query"
	"github.com/gin-gonic/gin"
)

// reserved query parameters handled by the pager and sorter; everything
// else is treated as a filter and validated against the entity allow-list
var reservedParams = map[string]bool{
	"page":      true,
	"limit":     true,
	"sortBy":    true,
	"sortOrder": true,
}

// parseListRequest collects pagination, sort and filter parameters from
// the query string. Validation happens in query.Build, not here.
func parseListRequest(c *gin.Context, entity query.Entity) query.ListRequest {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))

	filters := make(map[string]string)
	for key, values := range c.Request.URL.Query() {
		if reservedParams[key] || len(values) == 0 {
			continue
		}
		filters[key] = values[0]
	}

	return query.ListRequest{
		Entity:    entity,
		Filters:   filters,
		SortField: c.Query("sortBy"),
		SortOrder: c.Query("sortOrder"),
		Page:      page,
		PageSize:  limit,
	}
}

// parseID reads a positive numeric path parameter
func parseID(c *gin.Context, name string) (uint64, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		common.Error(c, http.StatusBadRequest, "Invalid "+name, nil)
		return 0, false
	}
	return id, true
}

// writeServiceError maps service-layer errors onto HTTP responses
func writeServiceError(c *gin.Context, err error) {
	var partial *common.PartialFailureError
	switch {
	case errors.Is(err, common.ErrInvalidFilterKey),
		errors.Is(err, common.ErrInvalidSortField),
		errors.Is(err, common.ErrInvalidEntity),
		errors.Is(err, common.ErrInvalidInput),
		errors.Is(err, common.ErrUnknownAction):
		common.Error(c, http.StatusBadRequest, err.Error(), err)
	case errors.Is(err, common.ErrNotFound):
		common.Error(c, http.StatusNotFound, "Resource not found", err)
	case errors.Is(err, common.ErrForbidden):
		common.Error(c, http.StatusForbidden, "Forbidden", err)
	case errors.Is(err, common.ErrConfirmationRequired):
		common.Error(c, http.StatusPreconditionFailed, "This action requires explicit confirmation", err)
	case errors.Is(err, common.ErrRepositoryUnavailable):
		common.Error(c, http.StatusServiceUnavailable, "Storage backend unavailable", err)
	case errors.As(err, &partial):
		common.Error(c, http.StatusInternalServerError, partial.Error(), err)
	default:
		common.Error(c, http.StatusInternalServerError, "Internal server error", err)
	}
}
