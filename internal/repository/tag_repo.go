package repository

import (
	"gorm.io/gorm"

	"github.com/askhub/askhub-backend/internal/domain"
)

// TagQuestionCount is a tag with its attached-question count
type TagQuestionCount struct {
	ID            uint64 `gorm:"column:id" json:"id"`
	Name          string `gorm:"column:name" json:"name"`
	QuestionCount int64  `gorm:"column:question_count" json:"question_count"`
}

// TagRepository handles tag data access
type TagRepository interface {
	ListWithCounts() ([]TagQuestionCount, error)
	TopByQuestionCount(limit int) ([]TagQuestionCount, error)
	Count() (int64, error)
}

type tagRepository struct {
	db *gorm.DB
}

// NewTagRepository creates a new TagRepository
func NewTagRepository(db *gorm.DB) TagRepository {
	return &tagRepository{db: db}
}

func (r *tagRepository) withCounts() *gorm.DB {
	return r.db.Model(&domain.Tag{}).
		Select("tags.id, tags.name, COUNT(question_tags.question_id) AS question_count").
		Joins("LEFT JOIN question_tags ON question_tags.tag_id = tags.id").
		Group("tags.id, tags.name")
}

// ListWithCounts returns every tag with its question count, name order
func (r *tagRepository) ListWithCounts() ([]TagQuestionCount, error) {
	var rows []TagQuestionCount
	err := r.withCounts().Order("tags.name ASC").Scan(&rows).Error
	return rows, err
}

// TopByQuestionCount returns the most used tags, ties broken by name
func (r *tagRepository) TopByQuestionCount(limit int) ([]TagQuestionCount, error) {
	var rows []TagQuestionCount
	err := r.withCounts().
		Order("question_count DESC, tags.name ASC").
		Limit(limit).
		Scan(&rows).Error
	return rows, err
}

func (r *tagRepository) Count() (int64, error) {
	var count int64
	err := r.db.Model(&domain.Tag{}).Count(&count).Error
	return count, err
}
