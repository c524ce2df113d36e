package wallet

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/kwanza-pay/kwanza_pay/internal/fault"
)

// Service exposes wallet record creation.
type Service struct {
	repo Repository
}

// NewService builds a wallet service instance.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// CreateInput captures data required to create a wallet record.
type CreateInput struct {
	UserID string
	Amount decimal.Decimal
}

// Create provisions a wallet record carrying the opening balance. The user
// id only has to be well formed; existence is the caller's concern.
func (s *Service) Create(ctx context.Context, input CreateInput) (View, error) {
	if _, err := uuid.Parse(input.UserID); err != nil {
		return View{}, fault.New(fault.KindValidation, "invalid user id")
	}

	record := Wallet{
		ID:        uuid.New().String(),
		UserID:    input.UserID,
		Balance:   input.Amount,
		CreatedAt: time.Now().UTC(),
	}

	if err := s.repo.Create(ctx, record); err != nil {
		return View{}, fault.Wrap(fault.KindInternal, "persist wallet failed", err)
	}

	return View{ID: record.ID, UserID: record.UserID, Balance: record.Balance}, nil
}
