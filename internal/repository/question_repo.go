package repository

import (
	"errors"
	"fmt"
	"time"

	"github.com/askhub/askhub-backend/internal/common"
	"github.com/askhub/askhub-backend/internal/domain"
	"github.com/askhub/askhub-backend/internal/query"
	"gorm.io/gorm"
)

// QuestionRepository handles question data access
type QuestionRepository interface {
	List(plan *query.Plan) ([]domain.Question, int64, error)
	FindByID(id uint64) (*domain.Question, error)
	Count() (int64, error)
	CountSince(since time.Time) (int64, error)
	DeleteCascade(questionID uint64) (*CascadeResult, error)
}

type questionRepository struct {
	db *gorm.DB
}

// NewQuestionRepository creates a new QuestionRepository
func NewQuestionRepository(db *gorm.DB) QuestionRepository {
	return &questionRepository{db: db}
}

// applyFilters adds the plan's predicates to a question query
func (r *questionRepository) applyFilters(q *gorm.DB, plan *query.Plan) *gorm.DB {
	if search, ok := plan.Filter("search"); ok {
		like := "%" + search + "%"
		q = q.Where("title LIKE ? OR content LIKE ?", like, like)
	}
	if authorID, ok := plan.Filter("authorId"); ok {
		q = q.Where("author_id = ?", authorID)
	}
	if tagID, ok := plan.Filter("tagId"); ok {
		q = q.Where("questions.id IN (SELECT question_id FROM question_tags WHERE tag_id = ?)", tagID)
	}
	return q
}

// List resolves a plan into one count and one windowed fetch with
// identical predicates. Sorting by voteScore folds the net vote sum in
// as a correlated subquery so the count stays a plain filtered count.
func (r *questionRepository) List(plan *query.Plan) ([]domain.Question, int64, error) {
	var total int64
	if err := r.applyFilters(r.db.Model(&domain.Question{}), plan).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	fetch := r.applyFilters(r.db.Model(&domain.Question{}), plan).
		Preload("Author").
		Preload("Tags")

	if plan.SortColumn == "vote_score" {
		dir := "ASC"
		if plan.SortDesc {
			dir = "DESC"
		}
		fetch = fetch.
			Select("questions.*, COALESCE((SELECT SUM(votes.value) FROM votes WHERE votes.question_id = questions.id), 0) AS vote_score").
			Order(fmt.Sprintf("vote_score %s, questions.id ASC", dir))
	} else {
		fetch = fetch.Order(plan.OrderClause("id"))
	}

	var questions []domain.Question
	if err := fetch.Offset(plan.Offset()).Limit(plan.Limit()).Find(&questions).Error; err != nil {
		return nil, 0, err
	}
	return questions, total, nil
}

func (r *questionRepository) FindByID(id uint64) (*domain.Question, error) {
	var question domain.Question
	err := r.db.Preload("Author").Preload("Tags").Where("id = ?", id).First(&question).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, common.ErrNotFound
		}
		return nil, err
	}
	return &question, nil
}

func (r *questionRepository) Count() (int64, error) {
	var count int64
	err := r.db.Model(&domain.Question{}).Count(&count).Error
	return count, err
}

func (r *questionRepository) CountSince(since time.Time) (int64, error) {
	var count int64
	err := r.db.Model(&domain.Question{}).Where("created_at >= ?", since).Count(&count).Error
	return count, err
}

// DeleteCascade removes a question with its votes, comments and tag
// links in one transaction, child rows first
func (r *questionRepository) DeleteCascade(questionID uint64) (*CascadeResult, error) {
	result := &CascadeResult{}

	err := r.db.Transaction(func(tx *gorm.DB) error {
		steps := []struct {
			name string
			run  func() *gorm.DB
		}{
			{"votes", func() *gorm.DB {
				return tx.Where("question_id = ?", questionID).Delete(&domain.Vote{})
			}},
			{"comments", func() *gorm.DB {
				return tx.Where("question_id = ?", questionID).Delete(&domain.Comment{})
			}},
			{"question_tag_links", func() *gorm.DB {
				return tx.Exec("DELETE FROM question_tags WHERE question_id = ?", questionID)
			}},
			{"question", func() *gorm.DB {
				return tx.Where("id = ?", questionID).Delete(&domain.Question{})
			}},
		}

		for _, step := range steps {
			res := step.run()
			if res.Error != nil {
				return fmt.Errorf("cascade stage %q: %w", step.name, res.Error)
			}
			result.Stages = append(result.Stages, CascadeStage{Name: step.name, Affected: res.RowsAffected})
			result.Total += res.RowsAffected
		}
		return nil
	})

	if err != nil {
		return result, err
	}
	return result, nil
}
