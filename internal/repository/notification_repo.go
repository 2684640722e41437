package repository

import (
	"time"

	"github.com/askhub/askhub-backend/internal/domain"
	"github.com/askhub/askhub-backend/internal/query"
	"gorm.io/gorm"
)

// NotificationRepository handles notification data access
type NotificationRepository interface {
	List(plan *query.Plan) ([]domain.Notification, int64, error)
	CountUnread() (int64, error)
	DeleteReadBefore(cutoff time.Time) (int64, error)
}

type notificationRepository struct {
	db *gorm.DB
}

// NewNotificationRepository creates a new NotificationRepository
func NewNotificationRepository(db *gorm.DB) NotificationRepository {
	return &notificationRepository{db: db}
}

func (r *notificationRepository) List(plan *query.Plan) ([]domain.Notification, int64, error) {
	q := r.db.Model(&domain.Notification{})
	if userID, ok := plan.Filter("userId"); ok {
		q = q.Where("user_id = ?", userID)
	}
	if read, ok := plan.Filter("read"); ok {
		q = q.Where("is_read = ?", read == "true")
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var notifications []domain.Notification
	if err := q.Order(plan.OrderClause("id")).
		Offset(plan.Offset()).
		Limit(plan.Limit()).
		Find(&notifications).Error; err != nil {
		return nil, 0, err
	}
	return notifications, total, nil
}

// CountUnread returns the number of unread notifications across all users
func (r *notificationRepository) CountUnread() (int64, error) {
	var count int64
	err := r.db.Model(&domain.Notification{}).Where("is_read = ?", false).Count(&count).Error
	return count, err
}

// DeleteReadBefore removes read notifications created before the cutoff.
// Re-running with no qualifying rows is a zero-count success.
func (r *notificationRepository) DeleteReadBefore(cutoff time.Time) (int64, error) {
	res := r.db.Where("is_read = ? AND created_at < ?", true, cutoff).Delete(&domain.Notification{})
	return res.RowsAffected, res.Error
}
