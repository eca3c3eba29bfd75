package service

import (
	"context"
	"fmt"
	"strings"

	"stocksim/internal/models"
	"stocksim/internal/repository"
)

// HypothesisService manages qualitative factors and their risk scoring.
type HypothesisService struct {
	Repo repository.Repository
}

func (s *HypothesisService) Create(ctx context.Context, checkpointID uint64, in HypothesisInput) (*models.Hypothesis, error) {
	cp, err := s.Repo.GetCheckpoint(ctx, checkpointID)
	if err != nil {
		return nil, err
	}
	if cp == nil {
		return nil, fmt.Errorf("%w: checkpoint %d", ErrNotFound, checkpointID)
	}
	if err := in.validate(); err != nil {
		return nil, err
	}
	items := []models.Hypothesis{{
		CheckpointID:    checkpointID,
		Description:     strings.TrimSpace(in.Description),
		FactorType:      in.FactorType,
		PriceImpact:     in.PriceImpact,
		ConfidenceLevel: in.ConfidenceLevel,
		IsActive:        true,
	}}
	if err := s.Repo.InsertHypothesesTx(ctx, nil, items); err != nil {
		return nil, err
	}
	return &items[0], nil
}

type UpdateHypothesisInput struct {
	Description     *string
	FactorType      *string
	PriceImpact     *int
	ConfidenceLevel *int
	IsActive        *bool
}

func (s *HypothesisService) Update(ctx context.Context, id uint64, in UpdateHypothesisInput) (*models.Hypothesis, error) {
	item, err := s.Repo.GetHypothesis(ctx, id)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, fmt.Errorf("%w: hypothesis %d", ErrNotFound, id)
	}
	if in.Description != nil {
		if strings.TrimSpace(*in.Description) == "" {
			return nil, fmt.Errorf("%w: hypothesis description is required", ErrValidation)
		}
		item.Description = strings.TrimSpace(*in.Description)
	}
	if in.FactorType != nil {
		if *in.FactorType != models.FactorTypePositive && *in.FactorType != models.FactorTypeNegative {
			return nil, fmt.Errorf("%w: invalid factor type %q", ErrValidation, *in.FactorType)
		}
		item.FactorType = *in.FactorType
	}
	if in.PriceImpact != nil {
		if *in.PriceImpact < -5 || *in.PriceImpact > 5 {
			return nil, fmt.Errorf("%w: price impact must be in [-5, 5]", ErrValidation)
		}
		item.PriceImpact = *in.PriceImpact
	}
	if in.ConfidenceLevel != nil {
		if *in.ConfidenceLevel < 1 || *in.ConfidenceLevel > 5 {
			return nil, fmt.Errorf("%w: confidence level must be in [1, 5]", ErrValidation)
		}
		item.ConfidenceLevel = *in.ConfidenceLevel
	}
	if in.IsActive != nil {
		item.IsActive = *in.IsActive
	}
	if err := s.Repo.UpdateHypothesis(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

func (s *HypothesisService) Delete(ctx context.Context, id uint64) error {
	item, err := s.Repo.GetHypothesis(ctx, id)
	if err != nil {
		return err
	}
	if item == nil {
		return fmt.Errorf("%w: hypothesis %d", ErrNotFound, id)
	}
	return s.Repo.DeleteHypothesis(ctx, id)
}

// HypothesisView is one hypothesis with its computed risk score.
type HypothesisView struct {
	models.Hypothesis
	RiskScore int `json:"risk_score"`
}

// HypothesisList carries the per-row scores and the aggregate over active
// rows.
type HypothesisList struct {
	Items          []HypothesisView `json:"items"`
	TotalRiskScore int              `json:"total_risk_score"`
}

func (s *HypothesisService) List(ctx context.Context, checkpointID uint64) (*HypothesisList, error) {
	cp, err := s.Repo.GetCheckpoint(ctx, checkpointID)
	if err != nil {
		return nil, err
	}
	if cp == nil {
		return nil, fmt.Errorf("%w: checkpoint %d", ErrNotFound, checkpointID)
	}
	items, err := s.Repo.ListHypothesesByCheckpoint(ctx, checkpointID)
	if err != nil {
		return nil, err
	}
	out := &HypothesisList{Items: make([]HypothesisView, len(items))}
	for i, h := range items {
		out.Items[i] = HypothesisView{Hypothesis: h, RiskScore: h.RiskScore()}
		if h.IsActive {
			out.TotalRiskScore += h.RiskScore()
		}
	}
	return out, nil
}
