package service

import (
	"context"
	"errors"
	"testing"

	"github.com/askhub/askhub-backend/internal/domain"
	"github.com/askhub/askhub-backend/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestGrowthPercentage(t *testing.T) {
	// ordinary case: 20 recent of 100 total -> 20/80
	assert.Equal(t, 25.0, GrowthPercentage(100, 20))

	// one decimal rounding
	assert.Equal(t, 12.5, GrowthPercentage(9, 1))
	assert.Equal(t, 33.3, GrowthPercentage(4, 1))

	// no activity at all
	assert.Equal(t, 0.0, GrowthPercentage(0, 0))
	assert.Equal(t, 0.0, GrowthPercentage(10, 0))

	// all activity recent: base floors at 1, result stays finite
	assert.Equal(t, 5000.0, GrowthPercentage(50, 50))
	assert.Equal(t, 100.0, GrowthPercentage(1, 1))
}

func TestCompositeScore(t *testing.T) {
	// 5 questions, 10 comments, 2 votes with weights 3/2/1
	assert.Equal(t, int64(37), CompositeScore(5, 10, 2))
	assert.Equal(t, int64(0), CompositeScore(0, 0, 0))
}

func newOverviewMocks() (*MockUserRepository, *MockQuestionRepository, *MockCommentRepository, *MockVoteRepository, *MockTagRepository, *MockNotificationRepository) {
	users := new(MockUserRepository)
	questions := new(MockQuestionRepository)
	comments := new(MockCommentRepository)
	votes := new(MockVoteRepository)
	tags := new(MockTagRepository)
	notifications := new(MockNotificationRepository)

	users.On("Count").Return(int64(50), nil)
	users.On("CountSince", mock.AnythingOfType("time.Time")).Return(int64(50), nil)
	users.On("CountByRole").Return(map[domain.Role]int64{domain.RoleUser: 48}, nil)
	users.On("MostActive", repository.ActivityWeights{Question: 3, Comment: 2, Vote: 1}, 10).Return([]repository.UserActivity{
		{ID: 3, Name: "alice", QuestionCount: 5, CommentCount: 10, VoteCount: 2},
		{ID: 8, Name: "bob", QuestionCount: 4, CommentCount: 2, VoteCount: 1},
	}, nil)

	questions.On("Count").Return(int64(23), nil)
	questions.On("CountSince", mock.AnythingOfType("time.Time")).Return(int64(3), nil)

	comments.On("Count").Return(int64(100), nil)
	comments.On("CountSince", mock.AnythingOfType("time.Time")).Return(int64(20), nil)

	votes.On("Count").Return(int64(40), nil)
	votes.On("TopQuestions", 10).Return([]repository.QuestionVoteStat{
		{QuestionID: 7, Score: 12, VoteCount: 14},
		{QuestionID: 2, Score: 5, VoteCount: 9},
	}, nil)

	tags.On("Count").Return(int64(6), nil)
	tags.On("TopByQuestionCount", 10).Return([]repository.TagQuestionCount{
		{ID: 1, Name: "go", QuestionCount: 9},
		{ID: 4, Name: "sql", QuestionCount: 9},
	}, nil)

	notifications.On("CountUnread").Return(int64(11), nil)

	return users, questions, comments, votes, tags, notifications
}

func TestOverview(t *testing.T) {
	users, questions, comments, votes, tags, notifications := newOverviewMocks()
	svc := NewAnalyticsService(users, questions, comments, votes, tags, notifications, nil, 30)

	overview, err := svc.Overview(context.Background())

	assert.NoError(t, err)
	assert.Equal(t, int64(50), overview.Stats.TotalUsers)
	assert.Equal(t, int64(23), overview.Stats.TotalQuestions)
	assert.Equal(t, int64(11), overview.Stats.UnreadNotifications)

	// all 50 users registered inside the window: degenerate but finite
	assert.Equal(t, 5000.0, overview.Growth.Users.Percentage)
	// 3 of 23 questions recent: 3/20
	assert.Equal(t, 15.0, overview.Growth.Questions.Percentage)
	assert.Equal(t, 25.0, overview.Growth.Comments.Percentage)
}

func TestOverview_RoleDistributionIncludesEmptyBuckets(t *testing.T) {
	users, questions, comments, votes, tags, notifications := newOverviewMocks()
	svc := NewAnalyticsService(users, questions, comments, votes, tags, notifications, nil, 30)

	overview, err := svc.Overview(context.Background())

	assert.NoError(t, err)
	assert.Len(t, overview.UserRoleDistribution, len(domain.AllRoles()))

	byRole := map[domain.Role]int64{}
	for _, bucket := range overview.UserRoleDistribution {
		byRole[bucket.Role] = bucket.Count
	}
	assert.Equal(t, int64(48), byRole[domain.RoleUser])
	// ADMIN has no rows in the grouped count but still gets a bucket
	assert.Equal(t, int64(0), byRole[domain.RoleAdmin])
}

func TestOverview_Rankings(t *testing.T) {
	users, questions, comments, votes, tags, notifications := newOverviewMocks()
	svc := NewAnalyticsService(users, questions, comments, votes, tags, notifications, nil, 30)

	overview, err := svc.Overview(context.Background())
	assert.NoError(t, err)

	// dense ranks in repository order
	assert.Equal(t, 1, overview.MostActiveUsers[0].Rank)
	assert.Equal(t, 2, overview.MostActiveUsers[1].Rank)
	assert.Equal(t, int64(37), overview.MostActiveUsers[0].Score)
	assert.Equal(t, int64(17), overview.MostActiveUsers[1].Score)

	// raw counts are reported alongside the score
	assert.Equal(t, int64(5), overview.MostActiveUsers[0].QuestionCount)
	assert.Equal(t, int64(10), overview.MostActiveUsers[0].CommentCount)
	assert.Equal(t, int64(2), overview.MostActiveUsers[0].VoteCount)

	assert.Equal(t, 1, overview.TopQuestions[0].Rank)
	assert.Equal(t, uint64(7), overview.TopQuestions[0].QuestionID)
	assert.Equal(t, 1, overview.TopTags[0].Rank)
	assert.Equal(t, "go", overview.TopTags[0].Name)
}

func TestOverview_Reproducible(t *testing.T) {
	users, questions, comments, votes, tags, notifications := newOverviewMocks()
	svc := NewAnalyticsService(users, questions, comments, votes, tags, notifications, nil, 30)

	first, err := svc.Overview(context.Background())
	assert.NoError(t, err)
	second, err := svc.Overview(context.Background())
	assert.NoError(t, err)

	assert.Equal(t, first.MostActiveUsers, second.MostActiveUsers)
	assert.Equal(t, first.TopQuestions, second.TopQuestions)
	assert.Equal(t, first.TopTags, second.TopTags)
}

func TestOverview_FailsClosed(t *testing.T) {
	users, questions, comments, votes, tags, notifications := newOverviewMocks()

	comments.ExpectedCalls = nil
	comments.On("Count").Return(int64(0), errors.New("connection refused"))

	svc := NewAnalyticsService(users, questions, comments, votes, tags, notifications, nil, 30)
	overview, err := svc.Overview(context.Background())

	assert.Error(t, err)
	assert.Nil(t, overview, "no partial snapshot on sub-aggregation failure")
}
