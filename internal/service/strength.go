package service

import (
	"context"
	"errors"

	"github.com/keyforge/keyforge-go/internal/breach"
	"github.com/keyforge/keyforge-go/internal/model"
	"github.com/keyforge/keyforge-go/internal/strength"
)

var ErrPasswordMissing = errors.New("password is required")

// StrengthService composes the heuristic strength scorer with the breach
// checker.
type StrengthService struct {
	checker *breach.Checker
}

// NewStrengthService creates a new StrengthService.
func NewStrengthService(checker *breach.Checker) *StrengthService {
	return &StrengthService{checker: checker}
}

// Check scores a candidate password. When the request asks for a breach check
// and the candidate is found in a breach, the heuristic score is overridden
// to the lowest tier.
func (s *StrengthService) Check(ctx context.Context, req model.StrengthRequest) (strength.Result, error) {
	if req.Password == "" {
		return strength.Result{}, ErrPasswordMissing
	}

	result := strength.Check(req.Password, req.UserInputs...)
	if req.CheckBreach {
		result = strength.ApplyBreach(result, s.checker.Check(ctx, req.Password))
	}
	return result, nil
}

// CheckBreach returns the breach count for a candidate password.
func (s *StrengthService) CheckBreach(ctx context.Context, req model.BreachRequest) (model.BreachResponse, error) {
	if req.Password == "" {
		return model.BreachResponse{}, ErrPasswordMissing
	}
	return model.BreachResponse{Count: s.checker.Check(ctx, req.Password)}, nil
}
