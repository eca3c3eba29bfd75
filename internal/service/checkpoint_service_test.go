package service

import (
	"context"
	"errors"
	"testing"

	"stocksim/internal/models"
)

func seedSimulation(t *testing.T, repo *stubRepo) *models.Simulation {
	t.Helper()
	svc := newSimulationService(repo, &stubFetcher{})
	sim, err := svc.Create(context.Background(), validCreateInput())
	if err != nil {
		t.Fatalf("seed simulation failed: %v", err)
	}
	return sim
}

func TestCreateCheckpoint(t *testing.T) {
	repo := newStubRepo()
	sim := seedSimulation(t, repo)
	svc := &CheckpointService{Repo: repo}

	cp, err := svc.Create(context.Background(), CreateCheckpointInput{
		SimulationID: sim.ID,
		Date:         "2025-04-15",
		Note:         "quarterly check",
		Hypotheses: []HypothesisInput{
			{Description: "guidance raise", FactorType: models.FactorTypePositive, PriceImpact: 2, ConfidenceLevel: 3},
			{Description: "fx headwind", FactorType: models.FactorTypeNegative, PriceImpact: -1, ConfidenceLevel: 2},
		},
		Conditions: []ConditionInput{
			{Type: "sell", Metric: "price", Value: "190.00"},
		},
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if cp.CheckpointType != models.CheckpointTypeManual {
		t.Fatalf("expected default type manual, got %s", cp.CheckpointType)
	}
	hyps, _ := repo.ListHypothesesByCheckpoint(context.Background(), cp.ID)
	conds, _ := repo.ListConditionsByCheckpoint(context.Background(), cp.ID)
	if len(hyps) != 2 || len(conds) != 1 {
		t.Fatalf("expected 2 hypotheses and 1 condition, got %d/%d", len(hyps), len(conds))
	}
}

func TestCreateCheckpointValidation(t *testing.T) {
	repo := newStubRepo()
	sim := seedSimulation(t, repo)
	svc := &CheckpointService{Repo: repo}

	if _, err := svc.Create(context.Background(), CreateCheckpointInput{
		SimulationID: sim.ID + 99, Date: "2025-04-15",
	}); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for missing simulation, got %v", err)
	}
	if _, err := svc.Create(context.Background(), CreateCheckpointInput{
		SimulationID: sim.ID, Date: "15.04.2025",
	}); !errors.Is(err, ErrValidation) {
		t.Fatalf("expected ErrValidation for bad date, got %v", err)
	}
	if _, err := svc.Create(context.Background(), CreateCheckpointInput{
		SimulationID: sim.ID, Date: "2025-04-15", Type: models.CheckpointTypeInitial,
	}); !errors.Is(err, ErrValidation) {
		t.Fatalf("expected ErrValidation for a second initial checkpoint, got %v", err)
	}
	if _, err := svc.Create(context.Background(), CreateCheckpointInput{
		SimulationID: sim.ID, Date: "2025-04-15",
		Hypotheses: []HypothesisInput{
			{Description: "too sure", FactorType: models.FactorTypePositive, PriceImpact: 9, ConfidenceLevel: 3},
		},
	}); !errors.Is(err, ErrValidation) {
		t.Fatalf("expected ErrValidation for out-of-range impact, got %v", err)
	}
}

func TestDeleteCheckpoint(t *testing.T) {
	repo := newStubRepo()
	sim := seedSimulation(t, repo)
	svc := &CheckpointService{Repo: repo}

	initial, _ := repo.ListCheckpointsBySimulation(context.Background(), sim.ID)
	if err := svc.Delete(context.Background(), initial[0].ID); !errors.Is(err, ErrValidation) {
		t.Fatalf("deleting the initial checkpoint must be refused, got %v", err)
	}

	cp, err := svc.Create(context.Background(), CreateCheckpointInput{
		SimulationID: sim.ID,
		Date:         "2025-05-01",
		Hypotheses: []HypothesisInput{
			{Description: "demand pull-forward", FactorType: models.FactorTypePositive, PriceImpact: 1, ConfidenceLevel: 1},
		},
		Conditions: []ConditionInput{
			{Type: "buy", Metric: "price", Value: "140.00"},
		},
	})
	if err != nil {
		t.Fatalf("checkpoint create failed: %v", err)
	}
	if err := svc.Delete(context.Background(), cp.ID); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if got, _ := repo.GetCheckpoint(context.Background(), cp.ID); got != nil {
		t.Fatal("checkpoint still present after delete")
	}
	if hyps, _ := repo.ListHypothesesByCheckpoint(context.Background(), cp.ID); len(hyps) != 0 {
		t.Fatal("hypotheses not cascaded")
	}
	if conds, _ := repo.ListConditionsByCheckpoint(context.Background(), cp.ID); len(conds) != 0 {
		t.Fatal("conditions not cascaded")
	}
}

func TestListBySimulationCounts(t *testing.T) {
	repo := newStubRepo()
	sim := seedSimulation(t, repo)
	svc := &CheckpointService{Repo: repo}

	if _, err := svc.Create(context.Background(), CreateCheckpointInput{
		SimulationID: sim.ID,
		Date:         "2025-04-01",
		Hypotheses: []HypothesisInput{
			{Description: "buyback", FactorType: models.FactorTypePositive, PriceImpact: 2, ConfidenceLevel: 5},
		},
	}); err != nil {
		t.Fatalf("checkpoint create failed: %v", err)
	}

	details, err := svc.ListBySimulation(context.Background(), sim.ID)
	if err != nil {
		t.Fatalf("ListBySimulation failed: %v", err)
	}
	if len(details) != 2 {
		t.Fatalf("expected 2 checkpoints, got %d", len(details))
	}
	if details[0].CheckpointType != models.CheckpointTypeInitial || details[0].ConditionCount != 2 {
		t.Fatalf("unexpected initial detail: %+v", details[0])
	}
	if details[1].HypothesisCount != 1 {
		t.Fatalf("expected 1 hypothesis on the manual checkpoint, got %d", details[1].HypothesisCount)
	}
}

func TestReplaceConditions(t *testing.T) {
	repo := newStubRepo()
	sim := seedSimulation(t, repo)
	svc := &ConditionService{Repo: repo}

	replaced, err := svc.Replace(context.Background(), ReplaceConditionsInput{
		SimulationID: sim.ID,
		Conditions: []ConditionInput{
			{Type: "sell", Metric: "price", Value: "210.00"},
		},
	})
	if err != nil {
		t.Fatalf("Replace failed: %v", err)
	}
	if len(replaced) != 1 {
		t.Fatalf("expected 1 condition after replace, got %d", len(replaced))
	}

	cps, _ := repo.ListCheckpointsBySimulation(context.Background(), sim.ID)
	conds, _ := repo.ListConditionsByCheckpoint(context.Background(), cps[len(cps)-1].ID)
	if len(conds) != 1 || conds[0].Value != "210.00" {
		t.Fatalf("old set not superseded: %+v", conds)
	}

	if _, err := svc.Replace(context.Background(), ReplaceConditionsInput{
		SimulationID: sim.ID,
		Conditions:   []ConditionInput{{Type: "sell", Metric: "price", Value: "not-a-number"}},
	}); !errors.Is(err, ErrValidation) {
		t.Fatalf("expected ErrValidation for non-decimal value, got %v", err)
	}
	if _, err := svc.Replace(context.Background(), ReplaceConditionsInput{
		SimulationID: sim.ID + 99,
		Conditions:   []ConditionInput{{Type: "sell", Metric: "price", Value: "1.00"}},
	}); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for missing simulation, got %v", err)
	}
}

func TestHypothesisRiskScores(t *testing.T) {
	repo := newStubRepo()
	sim := seedSimulation(t, repo)
	cps, _ := repo.ListCheckpointsBySimulation(context.Background(), sim.ID)
	cpID := cps[0].ID
	svc := &HypothesisService{Repo: repo}

	if _, err := svc.Create(context.Background(), cpID, HypothesisInput{
		Description: "margin expansion", FactorType: models.FactorTypePositive, PriceImpact: 3, ConfidenceLevel: 4,
	}); err != nil {
		t.Fatalf("hypothesis create failed: %v", err)
	}
	if _, err := svc.Create(context.Background(), cpID, HypothesisInput{
		Description: "tariff risk", FactorType: models.FactorTypeNegative, PriceImpact: -2, ConfidenceLevel: 3,
	}); err != nil {
		t.Fatalf("hypothesis create failed: %v", err)
	}

	list, err := svc.List(context.Background(), cpID)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(list.Items) != 2 {
		t.Fatalf("expected 2 hypotheses, got %d", len(list.Items))
	}
	if list.Items[0].RiskScore != 12 || list.Items[1].RiskScore != -6 {
		t.Fatalf("unexpected risk scores: %d, %d", list.Items[0].RiskScore, list.Items[1].RiskScore)
	}
	if list.TotalRiskScore != 6 {
		t.Fatalf("expected aggregate 6, got %d", list.TotalRiskScore)
	}
}
