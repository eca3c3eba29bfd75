package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"stocksim/internal/models"
	"stocksim/internal/repository"
)

// ConditionService manages buy/sell thresholds. Saving a set for a checkpoint
// supersedes the previous set rather than versioning it.
type ConditionService struct {
	Repo repository.Repository
}

type ReplaceConditionsInput struct {
	SimulationID uint64
	CheckpointID *uint64
	Conditions   []ConditionInput
}

// Replace deletes the target checkpoint's conditions and inserts the supplied
// set in one transaction. Without an explicit checkpoint the simulation's
// latest one is targeted.
func (s *ConditionService) Replace(ctx context.Context, in ReplaceConditionsInput) ([]models.Condition, error) {
	cp, err := s.resolveCheckpoint(ctx, in.SimulationID, in.CheckpointID)
	if err != nil {
		return nil, err
	}

	items := make([]models.Condition, 0, len(in.Conditions))
	for _, c := range in.Conditions {
		if !c.complete() {
			continue
		}
		if _, err := decimal.NewFromString(strings.TrimSpace(c.Value)); err != nil {
			return nil, fmt.Errorf("%w: condition value %q is not a decimal", ErrValidation, c.Value)
		}
		items = append(items, models.Condition{
			CheckpointID: cp.ID,
			Type:         strings.TrimSpace(c.Type),
			Metric:       strings.TrimSpace(c.Metric),
			Value:        strings.TrimSpace(c.Value),
			IsActive:     true,
		})
	}
	if len(items) == 0 {
		return nil, fmt.Errorf("%w: at least one complete condition is required", ErrValidation)
	}

	err = s.Repo.InTx(ctx, func(tx *gorm.DB) error {
		if err := s.Repo.DeleteConditionsByCheckpointTx(ctx, tx, cp.ID); err != nil {
			return err
		}
		return s.Repo.InsertConditionsTx(ctx, tx, items)
	})
	if err != nil {
		return nil, err
	}
	return items, nil
}

func (s *ConditionService) resolveCheckpoint(ctx context.Context, simulationID uint64, checkpointID *uint64) (*models.Checkpoint, error) {
	if checkpointID != nil && *checkpointID > 0 {
		cp, err := s.Repo.GetCheckpoint(ctx, *checkpointID)
		if err != nil {
			return nil, err
		}
		if cp == nil {
			return nil, fmt.Errorf("%w: checkpoint %d", ErrNotFound, *checkpointID)
		}
		if simulationID > 0 && cp.SimulationID != simulationID {
			return nil, fmt.Errorf("%w: checkpoint %d does not belong to simulation %d", ErrValidation, cp.ID, simulationID)
		}
		return cp, nil
	}
	checkpoints, err := s.Repo.ListCheckpointsBySimulation(ctx, simulationID)
	if err != nil {
		return nil, err
	}
	if len(checkpoints) == 0 {
		return nil, fmt.Errorf("%w: simulation %d has no checkpoints", ErrNotFound, simulationID)
	}
	return &checkpoints[len(checkpoints)-1], nil
}

type UpdateConditionInput struct {
	Type     *string
	Metric   *string
	Value    *string
	IsActive *bool
}

func (s *ConditionService) Update(ctx context.Context, id uint64, in UpdateConditionInput) (*models.Condition, error) {
	cond, err := s.Repo.GetCondition(ctx, id)
	if err != nil {
		return nil, err
	}
	if cond == nil {
		return nil, fmt.Errorf("%w: condition %d", ErrNotFound, id)
	}
	if in.Type != nil {
		t := strings.TrimSpace(*in.Type)
		if t != models.ConditionTypeBuy && t != models.ConditionTypeSell {
			return nil, fmt.Errorf("%w: invalid condition type %q", ErrValidation, t)
		}
		cond.Type = t
	}
	if in.Metric != nil && strings.TrimSpace(*in.Metric) != "" {
		cond.Metric = strings.TrimSpace(*in.Metric)
	}
	if in.Value != nil {
		v := strings.TrimSpace(*in.Value)
		if _, err := decimal.NewFromString(v); err != nil {
			return nil, fmt.Errorf("%w: condition value %q is not a decimal", ErrValidation, v)
		}
		cond.Value = v
	}
	if in.IsActive != nil {
		cond.IsActive = *in.IsActive
	}
	if err := s.Repo.UpdateCondition(ctx, cond); err != nil {
		return nil, err
	}
	return cond, nil
}

func (s *ConditionService) Delete(ctx context.Context, id uint64) error {
	cond, err := s.Repo.GetCondition(ctx, id)
	if err != nil {
		return err
	}
	if cond == nil {
		return fmt.Errorf("%w: condition %d", ErrNotFound, id)
	}
	return s.Repo.DeleteCondition(ctx, id)
}

// List returns a simulation's conditions, optionally narrowed to one
// checkpoint.
func (s *ConditionService) List(ctx context.Context, simulationID uint64, checkpointID *uint64) ([]models.Condition, error) {
	if checkpointID != nil && *checkpointID > 0 {
		cp, err := s.Repo.GetCheckpoint(ctx, *checkpointID)
		if err != nil {
			return nil, err
		}
		if cp == nil {
			return nil, fmt.Errorf("%w: checkpoint %d", ErrNotFound, *checkpointID)
		}
		return s.Repo.ListConditionsByCheckpoint(ctx, cp.ID)
	}
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
	byCp, err := s.Repo.ListConditionsByCheckpointIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	var out []models.Condition
	for _, cp := range checkpoints {
		out = append(out, byCp[cp.ID]...)
	}
	return out, nil
}
