package query

import (
	"testing"

	"github.com/askhub/askhub-backend/internal/common"
	"github.com/stretchr/testify/assert"
)

func TestBuild_Defaults(t *testing.T) {
	plan, err := Build(ListRequest{Entity: EntityQuestions})

	assert.NoError(t, err)
	assert.Equal(t, "created_at", plan.SortColumn)
	assert.True(t, plan.SortDesc)
	assert.Equal(t, 1, plan.Page)
	assert.Equal(t, DefaultPageSize, plan.PageSize)
	assert.Empty(t, plan.Filters)
}

func TestBuild_UnknownEntity(t *testing.T) {
	_, err := Build(ListRequest{Entity: Entity("widgets")})

	assert.ErrorIs(t, err, common.ErrInvalidEntity)
}

func TestBuild_UnknownSortField(t *testing.T) {
	_, err := Build(ListRequest{Entity: EntityUsers, SortField: "password"})

	assert.ErrorIs(t, err, common.ErrInvalidSortField)
}

func TestBuild_UnknownFilterKey(t *testing.T) {
	_, err := Build(ListRequest{
		Entity:  EntityQuestions,
		Filters: map[string]string{"status": "open"},
	})

	assert.ErrorIs(t, err, common.ErrInvalidFilterKey)
}

func TestBuild_BlankFilterDropped(t *testing.T) {
	plan, err := Build(ListRequest{
		Entity:  EntityQuestions,
		Filters: map[string]string{"search": "  ", "authorId": "7"},
	})

	assert.NoError(t, err)
	_, ok := plan.Filter("search")
	assert.False(t, ok, "blank filter must mean no constraint")
	author, ok := plan.Filter("authorId")
	assert.True(t, ok)
	assert.Equal(t, "7", author)
}

func TestBuild_PageClamping(t *testing.T) {
	plan, err := Build(ListRequest{Entity: EntityUsers, Page: -3, PageSize: 500})

	assert.NoError(t, err)
	assert.Equal(t, 1, plan.Page)
	assert.Equal(t, MaxPageSize, plan.PageSize)

	plan, err = Build(ListRequest{Entity: EntityUsers, Page: 2, PageSize: -1})
	assert.NoError(t, err)
	assert.Equal(t, 1, plan.PageSize)
}

func TestBuild_SortOrder(t *testing.T) {
	plan, err := Build(ListRequest{Entity: EntityUsers, SortField: "name", SortOrder: "ASC"})
	assert.NoError(t, err)
	assert.False(t, plan.SortDesc)

	plan, err = Build(ListRequest{Entity: EntityUsers, SortField: "name", SortOrder: "sideways"})
	assert.NoError(t, err)
	assert.True(t, plan.SortDesc, "anything but asc falls back to desc")
}

func TestBuild_VoteScoreSort(t *testing.T) {
	plan, err := Build(ListRequest{Entity: EntityQuestions, SortField: "voteScore"})

	assert.NoError(t, err)
	assert.Equal(t, "vote_score", plan.SortColumn)
}

func TestPlan_Window(t *testing.T) {
	plan, err := Build(ListRequest{Entity: EntityQuestions, Page: 3, PageSize: 10})

	assert.NoError(t, err)
	assert.Equal(t, 20, plan.Offset())
	assert.Equal(t, 10, plan.Limit())
}

func TestPlan_OrderClause(t *testing.T) {
	plan, err := Build(ListRequest{Entity: EntityQuestions, SortField: "title", SortOrder: "asc"})
	assert.NoError(t, err)
	assert.Equal(t, "title ASC, id ASC", plan.OrderClause("id"))

	plan, err = Build(ListRequest{Entity: EntityQuestions})
	assert.NoError(t, err)
	assert.Equal(t, "created_at DESC, id ASC", plan.OrderClause("id"))
}
