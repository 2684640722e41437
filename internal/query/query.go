// Package query turns raw list parameters into validated, bounded query
// plans and shapes repository results into pages.
package query

import (
	"fmt"
	"strings"

	"github.com/askhub/askhub-backend/internal/common"
)

// Entity identifies a listable collection
type Entity string

const (
	EntityUsers         Entity = "users"
	EntityQuestions     Entity = "questions"
	EntityComments      Entity = "comments"
	EntityTags          Entity = "tags"
	EntityNotifications Entity = "notifications"
)

// Page window bounds. Oversized page sizes are clamped, not rejected,
// so stray UI input degrades to a bounded query instead of a 400.
const (
	DefaultPageSize = 10
	MaxPageSize     = 100

	DefaultSortField = "createdAt"
)

// sortFields maps API sort field names to DB columns, per entity.
// Closed set: anything absent here is rejected.
var sortFields = map[Entity]map[string]string{
	EntityUsers: {
		"createdAt": "created_at",
		"name":      "name",
		"email":     "email",
		"role":      "role",
	},
	EntityQuestions: {
		"createdAt": "created_at",
		"title":     "title",
		"voteScore": "vote_score",
	},
	EntityComments: {
		"createdAt": "created_at",
	},
	EntityTags: {
		"createdAt": "created_at",
		"name":      "name",
	},
	EntityNotifications: {
		"createdAt": "created_at",
	},
}

// filterKeys is the closed per-entity set of allowed filter keys
var filterKeys = map[Entity]map[string]bool{
	EntityUsers: {
		"search": true,
		"role":   true,
	},
	EntityQuestions: {
		"search":   true,
		"authorId": true,
		"tagId":    true,
	},
	EntityComments: {
		"search":     true,
		"authorId":   true,
		"questionId": true,
	},
	EntityTags: {
		"search": true,
	},
	EntityNotifications: {
		"userId": true,
		"read":   true,
	},
}

// ListRequest carries raw caller-supplied list parameters
type ListRequest struct {
	Entity    Entity
	Filters   map[string]string
	SortField string
	SortOrder string
	Page      int
	PageSize  int
}

// Plan is a validated, normalized query ready for a repository.
// Repositories resolve it into exactly one count and one windowed
// fetch with identical predicates.
type Plan struct {
	Entity     Entity
	Filters    map[string]string
	SortColumn string
	SortDesc   bool
	Page       int
	PageSize   int
}

// Build validates a ListRequest and produces a Plan.
// Unknown filter keys and sort fields are rejected, never ignored.
func Build(req ListRequest) (*Plan, error) {
	allowedSorts, ok := sortFields[req.Entity]
	if !ok {
		return nil, fmt.Errorf("%w: %q", common.ErrInvalidEntity, req.Entity)
	}

	filters := make(map[string]string, len(req.Filters))
	for key, value := range req.Filters {
		if !filterKeys[req.Entity][key] {
			return nil, fmt.Errorf("%w: %q for entity %q", common.ErrInvalidFilterKey, key, req.Entity)
		}
		// absent or blank value means "no constraint", never "match empty"
		if strings.TrimSpace(value) == "" {
			continue
		}
		filters[key] = value
	}

	sortField := req.SortField
	if sortField == "" {
		sortField = DefaultSortField
	}
	column, ok := allowedSorts[sortField]
	if !ok {
		return nil, fmt.Errorf("%w: %q for entity %q", common.ErrInvalidSortField, sortField, req.Entity)
	}

	plan := &Plan{
		Entity:     req.Entity,
		Filters:    filters,
		SortColumn: column,
		SortDesc:   !strings.EqualFold(req.SortOrder, "asc"),
		Page:       req.Page,
		PageSize:   req.PageSize,
	}

	if plan.Page < 1 {
		plan.Page = 1
	}
	if plan.PageSize == 0 {
		plan.PageSize = DefaultPageSize
	}
	if plan.PageSize < 1 {
		plan.PageSize = 1
	}
	if plan.PageSize > MaxPageSize {
		plan.PageSize = MaxPageSize
	}

	return plan, nil
}

// Filter returns a filter value and whether it was set
func (p *Plan) Filter(key string) (string, bool) {
	v, ok := p.Filters[key]
	return v, ok
}

// Offset is the row offset of the requested window
func (p *Plan) Offset() int {
	return (p.Page - 1) * p.PageSize
}

// Limit is the row limit of the requested window
func (p *Plan) Limit() int {
	return p.PageSize
}

// OrderClause builds the ORDER BY expression with the entity id as a
// fixed secondary key so rows with duplicate sort values keep a stable
// order across repeated queries.
func (p *Plan) OrderClause(idColumn string) string {
	dir := "ASC"
	if p.SortDesc {
		dir = "DESC"
	}
	if p.SortColumn == idColumn {
		return fmt.Sprintf("%s %s", p.SortColumn, dir)
	}
	return fmt.Sprintf("%s %s, %s ASC", p.SortColumn, dir, idColumn)
}
