package service

import (
	"context"
	"fmt"

	"github.com/rahhal10/Final-Backend/internal/domain"
)

func (s *Service) ListCourses(ctx context.Context) ([]domain.Course, error) {
	courses, err := s.store.ListCourses(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list courses: %w", err)
	}
	return courses, nil
}

func (s *Service) ListTasks(ctx context.Context) ([]domain.Task, error) {
	tasks, err := s.store.ListTasks(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}
	return tasks, nil
}
