package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"stocksim/internal/models"
	"stocksim/internal/repository"
)

// JournalService covers the diary and retrospective entries attached to a
// simulation.
type JournalService struct {
	Repo repository.Repository
}

type CreateJournalInput struct {
	SimulationID uint64
	EntryDate    string
	Title        string
	Content      string
}

func (s *JournalService) CreateJournal(ctx context.Context, in CreateJournalInput) (*models.Journal, error) {
	sim, err := s.Repo.GetSimulation(ctx, in.SimulationID)
	if err != nil {
		return nil, err
	}
	if sim == nil {
		return nil, fmt.Errorf("%w: simulation %d", ErrNotFound, in.SimulationID)
	}
	if _, err := time.Parse("2006-01-02", in.EntryDate); err != nil {
		return nil, fmt.Errorf("%w: invalid entry date %q", ErrValidation, in.EntryDate)
	}
	if strings.TrimSpace(in.Title) == "" {
		return nil, fmt.Errorf("%w: journal title is required", ErrValidation)
	}
	item := &models.Journal{
		SimulationID: in.SimulationID,
		EntryDate:    in.EntryDate,
		Title:        strings.TrimSpace(in.Title),
		Content:      in.Content,
	}
	if err := s.Repo.InsertJournal(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

func (s *JournalService) ListJournals(ctx context.Context, params repository.ListJournalsParams) ([]models.Journal, error) {
	if params.SimulationID > 0 {
		sim, err := s.Repo.GetSimulation(ctx, params.SimulationID)
		if err != nil {
			return nil, err
		}
		if sim == nil {
			return nil, fmt.Errorf("%w: simulation %d", ErrNotFound, params.SimulationID)
		}
	}
	return s.Repo.ListJournals(ctx, params)
}

type CreateReviewInput struct {
	SimulationID uint64
	ReviewDate   string
	Outcome      string
	Lessons      string
}

func (s *JournalService) CreateReview(ctx context.Context, in CreateReviewInput) (*models.Review, error) {
	sim, err := s.Repo.GetSimulation(ctx, in.SimulationID)
	if err != nil {
		return nil, err
	}
	if sim == nil {
		return nil, fmt.Errorf("%w: simulation %d", ErrNotFound, in.SimulationID)
	}
	if _, err := time.Parse("2006-01-02", in.ReviewDate); err != nil {
		return nil, fmt.Errorf("%w: invalid review date %q", ErrValidation, in.ReviewDate)
	}
	item := &models.Review{
		SimulationID: in.SimulationID,
		ReviewDate:   in.ReviewDate,
		Outcome:      in.Outcome,
		Lessons:      in.Lessons,
	}
	if err := s.Repo.InsertReview(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

func (s *JournalService) ListReviews(ctx context.Context, simulationID uint64) ([]models.Review, error) {
	sim, err := s.Repo.GetSimulation(ctx, simulationID)
	if err != nil {
		return nil, err
	}
	if sim == nil {
		return nil, fmt.Errorf("%w: simulation %d", ErrNotFound, simulationID)
	}
	return s.Repo.ListReviewsBySimulation(ctx, simulationID)
}
