package service

import (
	"context"
	"fmt"

	apperrors "atelier/internal/errors"
	"atelier/internal/model"
	"atelier/internal/repository"
)

// InquiryService manages visitor contact-form submissions.
type InquiryService interface {
	Create(ctx context.Context, name, email, phone, projectType, message string) (*model.Inquiry, error)
	Get(ctx context.Context, id string) (*model.Inquiry, error)
	List(ctx context.Context) ([]model.Inquiry, error)
	MarkRead(ctx context.Context, id string) (*model.Inquiry, error)
	Delete(ctx context.Context, id string) error
}

type inquiryService struct {
	inquiries repository.InquiryRepository
}

// NewInquiryService creates a new inquiry service.
func NewInquiryService(inquiries repository.InquiryRepository) InquiryService {
	return &inquiryService{inquiries: inquiries}
}

func (s *inquiryService) Create(ctx context.Context, name, email, phone, projectType, message string) (*model.Inquiry, error) {
	i := &model.Inquiry{
		Name:        name,
		Email:       email,
		Phone:       phone,
		ProjectType: projectType,
		Message:     message,
	}
	if err := s.inquiries.Create(ctx, i); err != nil {
		return nil, fmt.Errorf("create inquiry: %w", err)
	}
	return i, nil
}

func (s *inquiryService) Get(ctx context.Context, id string) (*model.Inquiry, error) {
	iid, err := parseID(id)
	if err != nil {
		return nil, apperrors.ErrNotFound
	}
	return s.inquiries.FindByID(ctx, iid)
}

func (s *inquiryService) List(ctx context.Context) ([]model.Inquiry, error) {
	return s.inquiries.List(ctx)
}

func (s *inquiryService) MarkRead(ctx context.Context, id string) (*model.Inquiry, error) {
	iid, err := parseID(id)
	if err != nil {
		return nil, apperrors.ErrNotFound
	}
	i, err := s.inquiries.FindByID(ctx, iid)
	if err != nil {
		return nil, err
	}
	i.Read = true
	if err := s.inquiries.Save(ctx, i); err != nil {
		return nil, fmt.Errorf("save inquiry: %w", err)
	}
	return i, nil
}

func (s *inquiryService) Delete(ctx context.Context, id string) error {
	iid, err := parseID(id)
	if err != nil {
		return apperrors.ErrNotFound
	}
	if _, err := s.inquiries.FindByID(ctx, iid); err != nil {
		return err
	}
	return s.inquiries.Delete(ctx, iid)
}
