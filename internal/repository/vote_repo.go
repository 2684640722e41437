package repository

import (
	"github.com/askhub/askhub-backend/internal/domain"
	"gorm.io/gorm"
)

// QuestionVoteStat aggregates votes for one question
type QuestionVoteStat struct {
	QuestionID uint64 `gorm:"column:question_id" json:"question_id"`
	Score      int64  `gorm:"column:score" json:"total_votes"`
	VoteCount  int64  `gorm:"column:vote_count" json:"vote_count"`
}

// VoteRepository handles vote data access
type VoteRepository interface {
	Count() (int64, error)
	TopQuestions(limit int) ([]QuestionVoteStat, error)
}

type voteRepository struct {
	db *gorm.DB
}

// NewVoteRepository creates a new VoteRepository
func NewVoteRepository(db *gorm.DB) VoteRepository {
	return &voteRepository{db: db}
}

func (r *voteRepository) Count() (int64, error) {
	var count int64
	err := r.db.Model(&domain.Vote{}).Count(&count).Error
	return count, err
}

// TopQuestions returns questions ordered by net vote score, ties broken
// by raw vote participation, then by question id
func (r *voteRepository) TopQuestions(limit int) ([]QuestionVoteStat, error) {
	var rows []QuestionVoteStat
	err := r.db.Model(&domain.Vote{}).
		Select("question_id, COALESCE(SUM(value), 0) AS score, COUNT(*) AS vote_count").
		Group("question_id").
		Order("score DESC, vote_count DESC, question_id ASC").
		Limit(limit).
		Scan(&rows).Error
	return rows, err
}
