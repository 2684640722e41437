package service

import (
	"fmt"

	"github.com/askhub/askhub-backend/internal/common"
	"github.com/askhub/askhub-backend/internal/domain"
	"github.com/askhub/askhub-backend/internal/query"
	"github.com/askhub/askhub-backend/internal/repository"
)

// QuestionService handles admin question management
type QuestionService struct {
	questions repository.QuestionRepository
}

// NewQuestionService creates a new QuestionService
func NewQuestionService(questions repository.QuestionRepository) *QuestionService {
	return &QuestionService{questions: questions}
}

// List returns one page of questions for a raw list request
func (s *QuestionService) List(req query.ListRequest) (*query.Page[domain.Question], error) {
	req.Entity = query.EntityQuestions
	plan, err := query.Build(req)
	if err != nil {
		return nil, err
	}

	questions, total, err := s.questions.List(plan)
	if err != nil {
		return nil, fmt.Errorf("list questions: %w", err)
	}

	page := query.NewPage(questions, total, plan.Page, plan.PageSize)
	return &page, nil
}

// Get returns one question with its author and tags
func (s *QuestionService) Get(id uint64) (*domain.Question, error) {
	return s.questions.FindByID(id)
}

// Delete removes a question with its votes, comments and tag links
func (s *QuestionService) Delete(id uint64) (*repository.CascadeResult, error) {
	if _, err := s.questions.FindByID(id); err != nil {
		return nil, err
	}

	result, err := s.questions.DeleteCascade(id)
	if err != nil {
		return nil, &common.PartialFailureError{
			Action:    "delete question",
			Stage:     fmt.Sprintf("cascade for question %d", id),
			Completed: 0,
			Err:       err,
		}
	}
	return result, nil
}
