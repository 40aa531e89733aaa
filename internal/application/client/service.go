package client

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	coreclient "lexcaribe/ms_fiscal_core/internal/core/client"
	coreinvoice "lexcaribe/ms_fiscal_core/internal/core/invoice"
)

// ErrValidation wraps input rejections on the client operations.
var ErrValidation = errors.New("validation error")

// Service exposes the minimal client directory the invoice flow needs.
type Service struct {
	clients coreclient.Repository
}

// NewService creates a client service.
func NewService(clients coreclient.Repository) *Service {
	return &Service{clients: clients}
}

// CreateInput carries the fields of a new client.
type CreateInput struct {
	Name           string `json:"name"`
	DocumentNumber string `json:"documentNumber"`
	Email          string `json:"email"`
	Phone          string `json:"phone"`
}

// Create validates and persists a new client.
func (s *Service) Create(ctx context.Context, in CreateInput) (*coreclient.Client, error) {
	if in.Name == "" {
		return nil, fmt.Errorf("%w: name is required", ErrValidation)
	}

	now := time.Now().UTC()
	c := coreclient.Client{
		ID:             uuid.New(),
		Name:           in.Name,
		DocumentNumber: coreinvoice.NormalizeTaxID(in.DocumentNumber),
		Email:          in.Email,
		Phone:          in.Phone,
		Active:         true,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	if err := s.clients.Create(ctx, c); err != nil {
		return nil, fmt.Errorf("create client: %w", err)
	}
	return &c, nil
}

// Get retrieves a single client.
func (s *Service) Get(ctx context.Context, id uuid.UUID) (*coreclient.Client, error) {
	return s.clients.FindByID(ctx, id)
}

// List retrieves clients; active ones only when activeOnly is set.
func (s *Service) List(ctx context.Context, activeOnly bool) ([]coreclient.Client, error) {
	return s.clients.List(ctx, activeOnly)
}
