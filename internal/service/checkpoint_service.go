package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	"stocksim/internal/models"
	"stocksim/internal/repository"
)

// CheckpointService manages checkpoints after the initial one: creation with
// nested hypotheses and conditions, edits, and the per-checkpoint cascade
// delete.
type CheckpointService struct {
	Repo repository.Repository
}

// HypothesisInput is one qualitative factor supplied with a checkpoint or on
// its own.
type HypothesisInput struct {
	Description     string `json:"description"`
	FactorType      string `json:"factor_type"`
	PriceImpact     int    `json:"price_impact"`
	ConfidenceLevel int    `json:"confidence_level"`
}

func (in HypothesisInput) validate() error {
	if strings.TrimSpace(in.Description) == "" {
		return fmt.Errorf("%w: hypothesis description is required", ErrValidation)
	}
	if in.FactorType != models.FactorTypePositive && in.FactorType != models.FactorTypeNegative {
		return fmt.Errorf("%w: invalid factor type %q", ErrValidation, in.FactorType)
	}
	if in.PriceImpact < -5 || in.PriceImpact > 5 {
		return fmt.Errorf("%w: price impact must be in [-5, 5]", ErrValidation)
	}
	if in.ConfidenceLevel < 1 || in.ConfidenceLevel > 5 {
		return fmt.Errorf("%w: confidence level must be in [1, 5]", ErrValidation)
	}
	return nil
}

type CreateCheckpointInput struct {
	SimulationID uint64
	Date         string
	Type         string
	Note         string
	Hypotheses   []HypothesisInput
	Conditions   []ConditionInput
}

func (s *CheckpointService) Create(ctx context.Context, in CreateCheckpointInput) (*models.Checkpoint, error) {
	sim, err := s.Repo.GetSimulation(ctx, in.SimulationID)
	if err != nil {
		return nil, err
	}
	if sim == nil {
		return nil, fmt.Errorf("%w: simulation %d", ErrNotFound, in.SimulationID)
	}
	if _, err := time.Parse("2006-01-02", in.Date); err != nil {
		return nil, fmt.Errorf("%w: invalid checkpoint date %q", ErrValidation, in.Date)
	}
	cpType := strings.TrimSpace(in.Type)
	if cpType == "" {
		cpType = models.CheckpointTypeManual
	}
	switch cpType {
	case models.CheckpointTypeManual, models.CheckpointTypeAutoBuy, models.CheckpointTypeAutoSell:
	case models.CheckpointTypeInitial:
		return nil, fmt.Errorf("%w: a simulation has exactly one initial checkpoint", ErrValidation)
	default:
		return nil, fmt.Errorf("%w: invalid checkpoint type %q", ErrValidation, cpType)
	}

	hypotheses := make([]models.Hypothesis, 0, len(in.Hypotheses))
	for _, h := range in.Hypotheses {
		if err := h.validate(); err != nil {
			return nil, err
		}
		hypotheses = append(hypotheses, models.Hypothesis{
			Description:     strings.TrimSpace(h.Description),
			FactorType:      h.FactorType,
			PriceImpact:     h.PriceImpact,
			ConfidenceLevel: h.ConfidenceLevel,
			IsActive:        true,
		})
	}
	conditions := make([]models.Condition, 0, len(in.Conditions))
	for _, c := range in.Conditions {
		if !c.complete() {
			continue
		}
		conditions = append(conditions, models.Condition{
			Type:     strings.TrimSpace(c.Type),
			Metric:   strings.TrimSpace(c.Metric),
			Value:    strings.TrimSpace(c.Value),
			IsActive: true,
		})
	}

	cp := &models.Checkpoint{
		SimulationID:   in.SimulationID,
		CheckpointDate: in.Date,
		CheckpointType: cpType,
		Note:           in.Note,
	}
	err = s.Repo.InTx(ctx, func(tx *gorm.DB) error {
		if err := s.Repo.InsertCheckpointTx(ctx, tx, cp); err != nil {
			return err
		}
		for i := range hypotheses {
			hypotheses[i].CheckpointID = cp.ID
		}
		if err := s.Repo.InsertHypothesesTx(ctx, tx, hypotheses); err != nil {
			return err
		}
		for i := range conditions {
			conditions[i].CheckpointID = cp.ID
		}
		return s.Repo.InsertConditionsTx(ctx, tx, conditions)
	})
	if err != nil {
		return nil, err
	}
	return cp, nil
}

type UpdateCheckpointInput struct {
	Date string
	Type string
	Note *string
}

func (s *CheckpointService) Update(ctx context.Context, id uint64, in UpdateCheckpointInput) (*models.Checkpoint, error) {
	cp, err := s.Repo.GetCheckpoint(ctx, id)
	if err != nil {
		return nil, err
	}
	if cp == nil {
		return nil, fmt.Errorf("%w: checkpoint %d", ErrNotFound, id)
	}
	if in.Date != "" {
		if _, err := time.Parse("2006-01-02", in.Date); err != nil {
			return nil, fmt.Errorf("%w: invalid checkpoint date %q", ErrValidation, in.Date)
		}
		cp.CheckpointDate = in.Date
	}
	if in.Type != "" && in.Type != cp.CheckpointType {
		if cp.CheckpointType == models.CheckpointTypeInitial {
			return nil, fmt.Errorf("%w: the initial checkpoint cannot change type", ErrValidation)
		}
		switch in.Type {
		case models.CheckpointTypeManual, models.CheckpointTypeAutoBuy, models.CheckpointTypeAutoSell:
			cp.CheckpointType = in.Type
		default:
			return nil, fmt.Errorf("%w: invalid checkpoint type %q", ErrValidation, in.Type)
		}
	}
	if in.Note != nil {
		cp.Note = *in.Note
	}
	if err := s.Repo.UpdateCheckpoint(ctx, cp); err != nil {
		return nil, err
	}
	return cp, nil
}

// Delete cascades a checkpoint's pnl records, conditions, and hypotheses in
// one transaction. The initial checkpoint only leaves with its simulation.
func (s *CheckpointService) Delete(ctx context.Context, id uint64) error {
	cp, err := s.Repo.GetCheckpoint(ctx, id)
	if err != nil {
		return err
	}
	if cp == nil {
		return fmt.Errorf("%w: checkpoint %d", ErrNotFound, id)
	}
	if cp.CheckpointType == models.CheckpointTypeInitial {
		return fmt.Errorf("%w: the initial checkpoint cannot be deleted on its own", ErrValidation)
	}
	return s.Repo.InTx(ctx, func(tx *gorm.DB) error {
		if err := s.Repo.DeletePnLRecordsByCheckpointTx(ctx, tx, id); err != nil {
			return err
		}
		if err := s.Repo.DeleteConditionsByCheckpointTx(ctx, tx, id); err != nil {
			return err
		}
		if err := s.Repo.DeleteHypothesesByCheckpointIDsTx(ctx, tx, []uint64{id}); err != nil {
			return err
		}
		return s.Repo.DeleteCheckpointTx(ctx, tx, id)
	})
}

// CheckpointDetail is a checkpoint with its children and their counts.
type CheckpointDetail struct {
	models.Checkpoint
	Hypotheses      []models.Hypothesis `json:"hypotheses"`
	Conditions      []models.Condition  `json:"conditions"`
	HypothesisCount int                 `json:"hypothesis_count"`
	ConditionCount  int                 `json:"condition_count"`
	PnLCount        int64               `json:"pnl_count"`
}

func (s *CheckpointService) ListBySimulation(ctx context.Context, simulationID uint64) ([]CheckpointDetail, error) {
	sim, err := s.Repo.GetSimulation(ctx, simulationID)
	if err != nil {
		return nil, err
	}
	if sim == nil {
		return nil, fmt.Errorf("%w: simulation %d", ErrNotFound, simulationID)
	}
	checkpoints, err := s.Repo.ListCheckpointsBySimulation(ctx, simulationID)
	if err != nil {
		return nil, err
	}
	ids := make([]uint64, len(checkpoints))
	for i, cp := range checkpoints {
		ids[i] = cp.ID
	}
	conditions, err := s.Repo.ListConditionsByCheckpointIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	hypotheses, err := s.Repo.ListHypothesesByCheckpointIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	pnlCounts, err := s.Repo.CountPnLRecordsByCheckpointIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	details := make([]CheckpointDetail, len(checkpoints))
	for i, cp := range checkpoints {
		details[i] = CheckpointDetail{
			Checkpoint:      cp,
			Hypotheses:      hypotheses[cp.ID],
			Conditions:      conditions[cp.ID],
			HypothesisCount: len(hypotheses[cp.ID]),
			ConditionCount:  len(conditions[cp.ID]),
			PnLCount:        pnlCounts[cp.ID],
		}
	}
	return details, nil
}
