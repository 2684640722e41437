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

// ActivityWeights weighs each contribution type in the composite
// activity score. Questions carry the most weight.
type ActivityWeights struct {
	Question int
	Comment  int
	Vote     int
}

// UserActivity is a user together with raw per-type contribution counts
type UserActivity struct {
	ID            uint64      `json:"id"`
	Name          string      `json:"name"`
	Email         string      `json:"email"`
	Image         *string     `json:"image,omitempty"`
	Role          domain.Role `json:"role"`
	QuestionCount int64       `json:"question_count"`
	CommentCount  int64       `json:"comment_count"`
	VoteCount     int64       `json:"vote_count"`
}

// CascadeStage is one completed step of a cascading delete
type CascadeStage struct {
	Name     string `json:"name"`
	Affected int64  `json:"affected"`
}

// CascadeResult reports what a cascading delete removed, per stage
type CascadeResult struct {
	Stages []CascadeStage `json:"stages"`
	Total  int64          `json:"total"`
}

// UserRepository handles user data access
type UserRepository interface {
	List(plan *query.Plan) ([]domain.User, int64, error)
	FindByID(id uint64) (*domain.User, error)
	Update(user *domain.User) error
	Count() (int64, error)
	CountSince(since time.Time) (int64, error)
	CountByRole() (map[domain.Role]int64, error)
	MostActive(weights ActivityWeights, limit int) ([]UserActivity, error)
	FindInactiveIDs(cutoff time.Time, limit int) ([]uint64, error)
	DeleteCascade(userID uint64) (*CascadeResult, error)
}

type userRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a new UserRepository
func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

// List resolves a plan into one count and one windowed fetch with
// identical predicates
func (r *userRepository) List(plan *query.Plan) ([]domain.User, int64, error) {
	q := r.db.Model(&domain.User{})
	if search, ok := plan.Filter("search"); ok {
		like := "%" + search + "%"
		q = q.Where("name LIKE ? OR email LIKE ?", like, like)
	}
	if role, ok := plan.Filter("role"); ok {
		q = q.Where("role = ?", role)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var users []domain.User
	if err := q.Order(plan.OrderClause("id")).
		Offset(plan.Offset()).
		Limit(plan.Limit()).
		Find(&users).Error; err != nil {
		return nil, 0, err
	}
	return users, total, nil
}

func (r *userRepository) FindByID(id uint64) (*domain.User, error) {
	var user domain.User
	err := r.db.Where("id = ?", id).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, common.ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) Update(user *domain.User) error {
	return r.db.Save(user).Error
}

func (r *userRepository) Count() (int64, error) {
	var count int64
	err := r.db.Model(&domain.User{}).Count(&count).Error
	return count, err
}

func (r *userRepository) CountSince(since time.Time) (int64, error) {
	var count int64
	err := r.db.Model(&domain.User{}).Where("created_at >= ?", since).Count(&count).Error
	return count, err
}

// CountByRole returns user counts grouped by role. Roles with no users
// are absent here; the analytics layer fills the zero buckets.
func (r *userRepository) CountByRole() (map[domain.Role]int64, error) {
	type row struct {
		Role  domain.Role `gorm:"column:role"`
		Count int64       `gorm:"column:count"`
	}
	var rows []row
	err := r.db.Model(&domain.User{}).
		Select("role, COUNT(*) AS count").
		Group("role").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	m := make(map[domain.Role]int64, len(rows))
	for _, r := range rows {
		m[r.Role] = r.Count
	}
	return m, nil
}

// MostActive returns the most active users ordered by weighted
// contribution score, ties broken by id ascending
func (r *userRepository) MostActive(weights ActivityWeights, limit int) ([]UserActivity, error) {
	var rows []UserActivity
	err := r.db.Model(&domain.User{}).
		Select(`users.id, users.name, users.email, users.image, users.role,
			(SELECT COUNT(*) FROM questions WHERE questions.author_id = users.id) AS question_count,
			(SELECT COUNT(*) FROM comments WHERE comments.author_id = users.id) AS comment_count,
			(SELECT COUNT(*) FROM votes WHERE votes.user_id = users.id) AS vote_count`).
		Order(fmt.Sprintf("(question_count * %d + comment_count * %d + vote_count * %d) DESC, users.id ASC",
			weights.Question, weights.Comment, weights.Vote)).
		Limit(limit).
		Scan(&rows).Error
	return rows, err
}

// FindInactiveIDs returns users whose latest activity predates the
// cutoff. Both "never active" and "last active before the cutoff"
// qualify; accounts created inside the window never do, and admins are
// always excluded.
func (r *userRepository) FindInactiveIDs(cutoff time.Time, limit int) ([]uint64, error) {
	var ids []uint64
	err := r.db.Model(&domain.User{}).
		Where("users.created_at < ?", cutoff).
		Where("users.role <> ?", domain.RoleAdmin).
		Where("NOT EXISTS (SELECT 1 FROM questions WHERE questions.author_id = users.id AND questions.created_at >= ?)", cutoff).
		Where("NOT EXISTS (SELECT 1 FROM comments WHERE comments.author_id = users.id AND comments.created_at >= ?)", cutoff).
		Where("NOT EXISTS (SELECT 1 FROM votes WHERE votes.user_id = users.id AND votes.created_at >= ?)", cutoff).
		Order("users.id ASC").
		Limit(limit).
		Pluck("users.id", &ids).Error
	return ids, err
}

// DeleteCascade removes a user and every dependent record inside one
// transaction. Steps run child-first so no prefix of the sequence can
// leave an orphaned foreign reference, and every step is a bulk delete
// that is safe to re-run.
func (r *userRepository) DeleteCascade(userID uint64) (*CascadeResult, error) {
	result := &CascadeResult{}

	err := r.db.Transaction(func(tx *gorm.DB) error {
		steps := []struct {
			name string
			run  func() *gorm.DB
		}{
			{"votes_by_user", func() *gorm.DB {
				return tx.Where("user_id = ?", userID).Delete(&domain.Vote{})
			}},
			{"votes_on_user_questions", func() *gorm.DB {
				return tx.Where("question_id IN (SELECT id FROM questions WHERE author_id = ?)", userID).Delete(&domain.Vote{})
			}},
			{"comments_on_user_questions", func() *gorm.DB {
				return tx.Where("question_id IN (SELECT id FROM questions WHERE author_id = ?)", userID).Delete(&domain.Comment{})
			}},
			{"comments_by_user", func() *gorm.DB {
				return tx.Where("author_id = ?", userID).Delete(&domain.Comment{})
			}},
			{"question_tag_links", func() *gorm.DB {
				return tx.Exec("DELETE FROM question_tags WHERE question_id IN (SELECT id FROM questions WHERE author_id = ?)", userID)
			}},
			{"notifications", func() *gorm.DB {
				return tx.Where("user_id = ?", userID).Delete(&domain.Notification{})
			}},
			{"questions", func() *gorm.DB {
				return tx.Where("author_id = ?", userID).Delete(&domain.Question{})
			}},
			{"user", func() *gorm.DB {
				return tx.Where("id = ?", userID).Delete(&domain.User{})
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
