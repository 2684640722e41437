package repository

import (
	"time"

	"github.com/askhub/askhub-backend/internal/domain"
	"github.com/askhub/askhub-backend/internal/query"
	"gorm.io/gorm"
)

// CommentRepository handles comment data access
type CommentRepository interface {
	List(plan *query.Plan) ([]domain.Comment, int64, error)
	Count() (int64, error)
	CountSince(since time.Time) (int64, error)
}

type commentRepository struct {
	db *gorm.DB
}

// NewCommentRepository creates a new CommentRepository
func NewCommentRepository(db *gorm.DB) CommentRepository {
	return &commentRepository{db: db}
}

func (r *commentRepository) List(plan *query.Plan) ([]domain.Comment, int64, error) {
	q := r.db.Model(&domain.Comment{})
	if search, ok := plan.Filter("search"); ok {
		q = q.Where("content LIKE ?", "%"+search+"%")
	}
	if authorID, ok := plan.Filter("authorId"); ok {
		q = q.Where("author_id = ?", authorID)
	}
	if questionID, ok := plan.Filter("questionId"); ok {
		q = q.Where("question_id = ?", questionID)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var comments []domain.Comment
	if err := q.Preload("Author").
		Order(plan.OrderClause("id")).
		Offset(plan.Offset()).
		Limit(plan.Limit()).
		Find(&comments).Error; err != nil {
		return nil, 0, err
	}
	return comments, total, nil
}

func (r *commentRepository) Count() (int64, error) {
	var count int64
	err := r.db.Model(&domain.Comment{}).Count(&count).Error
	return count, err
}

func (r *commentRepository) CountSince(since time.Time) (int64, error) {
	var count int64
	err := r.db.Model(&domain.Comment{}).Where("created_at >= ?", since).Count(&count).Error
	return count, err
}
