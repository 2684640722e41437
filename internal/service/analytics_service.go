package service

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/askhub/askhub-backend/internal/domain"
	"github.com/askhub/askhub-backend/internal/repository"
	"github.com/askhub/askhub-backend/pkg/cache"
)

// Composite activity score weights. A question counts most, a vote
// least. The score is recomputed on every read and never persisted.
const (
	WeightQuestion = 3
	WeightComment  = 2
	WeightVote     = 1
)

// TopLimit caps every top-N ranking on the overview
const TopLimit = 10

// DefaultGrowthWindowDays is the trailing window for growth metrics
const DefaultGrowthWindowDays = 30

// Stats holds the point-in-time totals shown on the dashboard
type Stats struct {
	TotalUsers          int64 `json:"total_users"`
	TotalQuestions      int64 `json:"total_questions"`
	TotalComments       int64 `json:"total_comments"`
	TotalVotes          int64 `json:"total_votes"`
	TotalTags           int64 `json:"total_tags"`
	UnreadNotifications int64 `json:"unread_notifications"`
}

// GrowthMetric compares a trailing-window count against the total.
// Percentage is recent over prior (total minus recent, floored at 1 so
// the division is always defined), times 100, one decimal.
type GrowthMetric struct {
	Total      int64   `json:"total"`
	Recent     int64   `json:"recent"`
	Percentage float64 `json:"percentage"`
}

// Growth holds the growth metrics per tracked entity
type Growth struct {
	Users     GrowthMetric `json:"users"`
	Questions GrowthMetric `json:"questions"`
	Comments  GrowthMetric `json:"comments"`
}

// RoleCount is one bucket of the user role distribution
type RoleCount struct {
	Role  domain.Role `json:"role"`
	Count int64       `json:"count"`
}

// RankedTag is a tag with its dense rank by question count
type RankedTag struct {
	Rank int `json:"rank"`
	repository.TagQuestionCount
}

// RankedQuestion is a question's vote aggregate with its dense rank
type RankedQuestion struct {
	Rank int `json:"rank"`
	repository.QuestionVoteStat
}

// RankedUser is a user with raw contribution counts, composite score
// and dense rank
type RankedUser struct {
	Rank int `json:"rank"`
	repository.UserActivity
	Score int64 `json:"score"`
}

// Overview is the full analytics snapshot returned to the dashboard
type Overview struct {
	Stats                Stats            `json:"stats"`
	Growth               Growth           `json:"growth"`
	TopTags              []RankedTag      `json:"top_tags"`
	UserRoleDistribution []RoleCount      `json:"user_role_distribution"`
	TopQuestions         []RankedQuestion `json:"top_questions"`
	MostActiveUsers      []RankedUser     `json:"most_active_users"`
	GeneratedAt          time.Time        `json:"generated_at"`
}

// AnalyticsService computes the admin overview. Sub-aggregations read
// sequentially from the same pool; the tolerated staleness window is
// the duration of one Overview computation. Any failing sub-read fails
// the whole snapshot.
type AnalyticsService struct {
	users         repository.UserRepository
	questions     repository.QuestionRepository
	comments      repository.CommentRepository
	votes         repository.VoteRepository
	tags          repository.TagRepository
	notifications repository.NotificationRepository
	cache         cache.Service
	windowDays    int
}

// NewAnalyticsService creates a new AnalyticsService. cacheService may
// be nil when Redis is not configured.
func NewAnalyticsService(
	users repository.UserRepository,
	questions repository.QuestionRepository,
	comments repository.CommentRepository,
	votes repository.VoteRepository,
	tags repository.TagRepository,
	notifications repository.NotificationRepository,
	cacheService cache.Service,
	windowDays int,
) *AnalyticsService {
	if windowDays <= 0 {
		windowDays = DefaultGrowthWindowDays
	}
	return &AnalyticsService{
		users:         users,
		questions:     questions,
		comments:      comments,
		votes:         votes,
		tags:          tags,
		notifications: notifications,
		cache:         cacheService,
		windowDays:    windowDays,
	}
}

// Overview returns the analytics snapshot, read through the cache when
// one is attached
func (s *AnalyticsService) Overview(ctx context.Context) (*Overview, error) {
	if s.cache != nil && s.cache.IsAvailable() {
		var cached Overview
		if err := s.cache.GetOverview(ctx, &cached); err == nil {
			return &cached, nil
		}
	}

	overview, err := s.compute()
	if err != nil {
		return nil, err
	}

	if s.cache != nil && s.cache.IsAvailable() {
		// best effort; a failed cache write never fails the snapshot
		_ = s.cache.SetOverview(ctx, overview)
	}
	return overview, nil
}

func (s *AnalyticsService) compute() (*Overview, error) {
	stats, err := s.stats()
	if err != nil {
		return nil, fmt.Errorf("overview stats: %w", err)
	}

	growth, err := s.growth()
	if err != nil {
		return nil, fmt.Errorf("overview growth: %w", err)
	}

	topTags, err := s.topTags()
	if err != nil {
		return nil, fmt.Errorf("overview top tags: %w", err)
	}

	roles, err := s.roleDistribution()
	if err != nil {
		return nil, fmt.Errorf("overview role distribution: %w", err)
	}

	topQuestions, err := s.topQuestions()
	if err != nil {
		return nil, fmt.Errorf("overview top questions: %w", err)
	}

	activeUsers, err := s.mostActiveUsers()
	if err != nil {
		return nil, fmt.Errorf("overview most active users: %w", err)
	}

	return &Overview{
		Stats:                *stats,
		Growth:               *growth,
		TopTags:              topTags,
		UserRoleDistribution: roles,
		TopQuestions:         topQuestions,
		MostActiveUsers:      activeUsers,
		GeneratedAt:          time.Now(),
	}, nil
}

func (s *AnalyticsService) stats() (*Stats, error) {
	stats := &Stats{}
	var err error

	if stats.TotalUsers, err = s.users.Count(); err != nil {
		return nil, err
	}
	if stats.TotalQuestions, err = s.questions.Count(); err != nil {
		return nil, err
	}
	if stats.TotalComments, err = s.comments.Count(); err != nil {
		return nil, err
	}
	if stats.TotalVotes, err = s.votes.Count(); err != nil {
		return nil, err
	}
	if stats.TotalTags, err = s.tags.Count(); err != nil {
		return nil, err
	}
	if stats.UnreadNotifications, err = s.notifications.CountUnread(); err != nil {
		return nil, err
	}
	return stats, nil
}

func (s *AnalyticsService) growth() (*Growth, error) {
	since := time.Now().AddDate(0, 0, -s.windowDays)

	users, err := growthMetric(s.users.Count, s.users.CountSince, since)
	if err != nil {
		return nil, err
	}
	questions, err := growthMetric(s.questions.Count, s.questions.CountSince, since)
	if err != nil {
		return nil, err
	}
	comments, err := growthMetric(s.comments.Count, s.comments.CountSince, since)
	if err != nil {
		return nil, err
	}

	return &Growth{Users: users, Questions: questions, Comments: comments}, nil
}

func growthMetric(count func() (int64, error), countSince func(time.Time) (int64, error), since time.Time) (GrowthMetric, error) {
	total, err := count()
	if err != nil {
		return GrowthMetric{}, err
	}
	recent, err := countSince(since)
	if err != nil {
		return GrowthMetric{}, err
	}
	return GrowthMetric{
		Total:      total,
		Recent:     recent,
		Percentage: GrowthPercentage(total, recent),
	}, nil
}

// GrowthPercentage computes recent growth against the prior base.
// The base is floored at 1, so when all activity is recent the result
// is recent*100 rather than a division by zero (50 recent of 50 total
// yields 5000.0).
func GrowthPercentage(total, recent int64) float64 {
	base := total - recent
	if base < 1 {
		base = 1
	}
	return math.Round(float64(recent)/float64(base)*100*10) / 10
}

func (s *AnalyticsService) topTags() ([]RankedTag, error) {
	rows, err := s.tags.TopByQuestionCount(TopLimit)
	if err != nil {
		return nil, err
	}

	ranked := make([]RankedTag, len(rows))
	for i, row := range rows {
		ranked[i] = RankedTag{Rank: i + 1, TagQuestionCount: row}
	}
	return ranked, nil
}

func (s *AnalyticsService) roleDistribution() ([]RoleCount, error) {
	counts, err := s.users.CountByRole()
	if err != nil {
		return nil, err
	}

	// every enumerated role gets a bucket, even at zero
	distribution := make([]RoleCount, 0, len(domain.AllRoles()))
	for _, role := range domain.AllRoles() {
		distribution = append(distribution, RoleCount{Role: role, Count: counts[role]})
	}
	return distribution, nil
}

func (s *AnalyticsService) topQuestions() ([]RankedQuestion, error) {
	rows, err := s.votes.TopQuestions(TopLimit)
	if err != nil {
		return nil, err
	}

	ranked := make([]RankedQuestion, len(rows))
	for i, row := range rows {
		ranked[i] = RankedQuestion{Rank: i + 1, QuestionVoteStat: row}
	}
	return ranked, nil
}

func (s *AnalyticsService) mostActiveUsers() ([]RankedUser, error) {
	weights := repository.ActivityWeights{
		Question: WeightQuestion,
		Comment:  WeightComment,
		Vote:     WeightVote,
	}
	rows, err := s.users.MostActive(weights, TopLimit)
	if err != nil {
		return nil, err
	}

	ranked := make([]RankedUser, len(rows))
	for i, row := range rows {
		ranked[i] = RankedUser{
			Rank:         i + 1,
			UserActivity: row,
			Score:        CompositeScore(row.QuestionCount, row.CommentCount, row.VoteCount),
		}
	}
	return ranked, nil
}

// CompositeScore is the weighted activity sum used for ranking users
func CompositeScore(questions, comments, votes int64) int64 {
	return questions*WeightQuestion + comments*WeightComment + votes*WeightVote
}
