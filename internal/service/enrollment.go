package service

import (
	"context"
	"fmt"

	"github.com/rahhal10/Final-Backend/internal/domain"
)

// UserCourses returns the enrollments matching both email and username.
func (s *Service) UserCourses(ctx context.Context, req domain.UserCoursesRequest) ([]domain.Enrollment, error) {
	if req.Email == "" || req.Username == "" {
		return nil, invalid("Email and username are required.")
	}

	enrollments, err := s.store.ListEnrollments(ctx, req.Email, req.Username)
	if err != nil {
		return nil, fmt.Errorf("failed to list enrollments: %w", err)
	}
	return enrollments, nil
}

func (s *Service) Enroll(ctx context.Context, req domain.EnrollRequest) (*domain.Enrollment, error) {
	if !req.Complete() {
		return nil, invalid("All fields are required.")
	}

	enrollment := &domain.Enrollment{
		Username:     req.Username,
		Email:        req.Email,
		CourseFields: req.Fields(),
	}
	if err := s.store.CreateEnrollment(ctx, enrollment); err != nil {
		return nil, fmt.Errorf("failed to create enrollment: %w", err)
	}
	return enrollment, nil
}
