package service

import (
	"fmt"

	"github.com/askhub/askhub-backend/internal/domain"
	"github.com/askhub/askhub-backend/internal/query"
	"github.com/askhub/askhub-backend/internal/repository"
)

// CommentService handles admin comment listing
type CommentService struct {
	comments repository.CommentRepository
}

// NewCommentService creates a new CommentService
func NewCommentService(comments repository.CommentRepository) *CommentService {
	return &CommentService{comments: comments}
}

// List returns one page of comments for a raw list request
func (s *CommentService) List(req query.ListRequest) (*query.Page[domain.Comment], error) {
	req.Entity = query.EntityComments
	plan, err := query.Build(req)
	if err != nil {
		return nil, err
	}

	comments, total, err := s.comments.List(plan)
	if err != nil {
		return nil, fmt.Errorf("list comments: %w", err)
	}

	page := query.NewPage(comments, total, plan.Page, plan.PageSize)
	return &page, nil
}

// NotificationService handles admin notification listing
type NotificationService struct {
	notifications repository.NotificationRepository
}

// NewNotificationService creates a new NotificationService
func NewNotificationService(notifications repository.NotificationRepository) *NotificationService {
	return &NotificationService{notifications: notifications}
}

// List returns one page of notifications for a raw list request
func (s *NotificationService) List(req query.ListRequest) (*query.Page[domain.Notification], error) {
	req.Entity = query.EntityNotifications
	plan, err := query.Build(req)
	if err != nil {
		return nil, err
	}

	notifications, total, err := s.notifications.List(plan)
	if err != nil {
		return nil, fmt.Errorf("list notifications: %w", err)
	}

	page := query.NewPage(notifications, total, plan.Page, plan.PageSize)
	return &page, nil
}

// TagService handles admin tag listing
type TagService struct {
	tags repository.TagRepository
}

// NewTagService creates a new TagService
func NewTagService(tags repository.TagRepository) *TagService {
	return &TagService{tags: tags}
}

// List returns all tags with their question counts
func (s *TagService) List() ([]repository.TagQuestionCount, error) {
	tags, err := s.tags.ListWithCounts()
	if err != nil {
		return nil, fmt.Errorf("list tags: %w", err)
	}
	return tags, nil
}
