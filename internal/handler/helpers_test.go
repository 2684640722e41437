package handler

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/askhub/askhub-backend/internal/common"
	"github.com/askhub/askhub-backend/internal/query"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func testContext(t *testing.T, url string) (*gin.Context, *httptest.ResponseRecorder) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, url, nil)
	return c, w
}

func TestParseListRequest(t *testing.T) {
	c, _ := testContext(t, "/api/admin/users?page=3&limit=25&sortBy=name&sortOrder=asc&role=ADMIN&search=kim")

	req := parseListRequest(c, query.EntityUsers)

	assert.Equal(t, query.EntityUsers, req.Entity)
	assert.Equal(t, 3, req.Page)
	assert.Equal(t, 25, req.PageSize)
	assert.Equal(t, "name", req.SortField)
	assert.Equal(t, "asc", req.SortOrder)
	assert.Equal(t, map[string]string{"role": "ADMIN", "search": "kim"}, req.Filters)
}

func TestParseListRequest_Defaults(t *testing.T) {
	c, _ := testContext(t, "/api/admin/users")

	req := parseListRequest(c, query.EntityUsers)

	assert.Equal(t, 1, req.Page)
	assert.Equal(t, 10, req.PageSize)
	assert.Empty(t, req.Filters)
}

func TestParseListRequest_ReservedParamsNotFilters(t *testing.T) {
	c, _ := testContext(t, "/api/admin/questions?page=2&sortBy=voteScore&authorId=7")

	req := parseListRequest(c, query.EntityQuestions)

	assert.Equal(t, map[string]string{"authorId": "7"}, req.Filters)
}

func TestWriteServiceError(t *testing.T) {
	cases := []struct {
		err    error
		status int
	}{
		{fmt.Errorf("%w: %q", common.ErrInvalidFilterKey, "bogus"), http.StatusBadRequest},
		{common.ErrInvalidSortField, http.StatusBadRequest},
		{common.ErrUnknownAction, http.StatusBadRequest},
		{common.ErrNotFound, http.StatusNotFound},
		{common.ErrConfirmationRequired, http.StatusPreconditionFailed},
		{common.ErrRepositoryUnavailable, http.StatusServiceUnavailable},
		{&common.PartialFailureError{Action: "DELETE_INACTIVE_USERS", Stage: "cascade for user 9", Completed: 5, Err: errors.New("deadlock")}, http.StatusInternalServerError},
		{errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tc := range cases {
		c, w := testContext(t, "/api/admin/users")
		writeServiceError(c, tc.err)
		assert.Equal(t, tc.status, w.Code, "error %v", tc.err)
	}
}
