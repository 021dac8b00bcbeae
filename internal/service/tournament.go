package service

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/t-hub/tournament-api/internal/domain"
	"github.com/t-hub/tournament-api/internal/events"
	"github.com/t-hub/tournament-api/internal/repository"
)

var (
	ErrTournamentNotFound     = repository.ErrTournamentNotFound
	ErrInvalidTransition      = errors.New("invalid status transition")
	ErrNotOrganizer           = errors.New("user is not the tournament organizer")
	ErrNotEnoughParticipants  = errors.New("not enough participants to start the tournament")
	ErrMaxParticipantsLocked  = errors.New("max_participants cannot change after the draft stage")
	ErrTournamentDetailLocked = errors.New("game and format cannot change once the tournament has started")
)

type TournamentRepository interface {
	Create(ctx context.Context, tournament domain.Tournament) (domain.Tournament, error)
	FindByID(ctx context.Context, id uint) (domain.Tournament, error)
	FindAll(ctx context.Context, publicOnly bool) ([]domain.Tournament, error)
	FindByOrganizerID(ctx context.Context, organizerID uint) ([]domain.Tournament, error)
	Update(ctx context.Context, tournament domain.Tournament) (domain.Tournament, error)
	UpdateStatus(ctx context.Context, id uint, status domain.TournamentStatus) error
	UpdateStatusFrom(ctx context.Context, id uint, from, to domain.TournamentStatus) (bool, error)
}

type TournamentService struct {
	repo             TournamentRepository
	registrationRepo RegistrationRepository
	publisher        events.Publisher
}

func NewTournamentService(repo TournamentRepository, registrationRepo RegistrationRepository, publisher events.Publisher) *TournamentService {
	return &TournamentService{
		repo:             repo,
		registrationRepo: registrationRepo,
		publisher:        publisher,
	}
}

func (s *TournamentService) CreateTournament(ctx context.Context, tournament domain.Tournament) (domain.Tournament, error) {
	tournament.Status = domain.StatusDraft

	created, err := s.repo.Create(ctx, tournament)
	if err != nil {
		return domain.Tournament{}, fmt.Errorf("s.repo.Create -> %w", err)
	}

	if err = s.publisher.Publish(ctx, events.RoutingKeyTournamentCreated, created); err != nil {
		zap.L().Error("failed to publish tournament created event", zap.Error(err))
	}

	return created, nil
}

func (s *TournamentService) GetTournament(ctx context.Context, id uint) (domain.Tournament, error) {
	tournament, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return domain.Tournament{}, fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	count, err := s.registrationRepo.CountByTournamentID(ctx, id)
	if err != nil {
		return domain.Tournament{}, fmt.Errorf("s.registrationRepo.CountByTournamentID -> %w", err)
	}

	tournament.CurrentCount = count

	return tournament, nil
}

func (s *TournamentService) ListTournaments(ctx context.Context, publicOnly bool) ([]domain.Tournament, error) {
	tournaments, err := s.repo.FindAll(ctx, publicOnly)
	if err != nil {
		return nil, fmt.Errorf("s.repo.FindAll -> %w", err)
	}

	for i := range tournaments {
		count, err := s.registrationRepo.CountByTournamentID(ctx, tournaments[i].ID)
		if err != nil {
			return nil, fmt.Errorf("s.registrationRepo.CountByTournamentID -> %w", err)
		}

		tournaments[i].CurrentCount = count
	}

	return tournaments, nil
}

func (s *TournamentService) ListByOrganizer(ctx context.Context, organizerID uint) ([]domain.Tournament, error) {
	tournaments, err := s.repo.FindByOrganizerID(ctx, organizerID)
	if err != nil {
		return nil, fmt.Errorf("s.repo.FindByOrganizerID -> %w", err)
	}

	return tournaments, nil
}

func (s *TournamentService) UpdateTournament(ctx context.Context, tournament domain.Tournament, requesterID uint) (domain.Tournament, error) {
	existing, err := s.repo.FindByID(ctx, tournament.ID)
	if err != nil {
		return domain.Tournament{}, fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	if existing.OrganizerID != requesterID {
		return domain.Tournament{}, ErrNotOrganizer
	}

	// The bracket size is fixed once registration has been opened.
	if existing.Status != domain.StatusDraft && tournament.MaxParticipants != existing.MaxParticipants {
		return domain.Tournament{}, ErrMaxParticipantsLocked
	}

	if existing.Status == domain.StatusInProgress || existing.Status == domain.StatusCompleted {
		if tournament.Game != existing.Game || tournament.Format != existing.Format {
			return domain.Tournament{}, ErrTournamentDetailLocked
		}
	}

	// Status changes go through UpdateStatus so the lifecycle is enforced.
	tournament.OrganizerID = existing.OrganizerID
	tournament.Status = existing.Status
	tournament.CreatedAt = existing.CreatedAt

	updated, err := s.repo.Update(ctx, tournament)
	if err != nil {
		return domain.Tournament{}, fmt.Errorf("s.repo.Update -> %w", err)
	}

	return updated, nil
}

// UpdateStatus applies a lifecycle transition requested by the organizer.
// The full status can only be entered and left by the registration gate,
// so it is rejected here as a manual target.
func (s *TournamentService) UpdateStatus(ctx context.Context, id uint, target domain.TournamentStatus, requesterID uint) (domain.Tournament, error) {
	tournament, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return domain.Tournament{}, fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	if tournament.OrganizerID != requesterID {
		return domain.Tournament{}, ErrNotOrganizer
	}

	if !target.IsValid() || target == domain.StatusFull {
		return domain.Tournament{}, ErrInvalidTransition
	}

	if !tournament.Status.CanTransitionTo(target) {
		return domain.Tournament{}, ErrInvalidTransition
	}

	if target == domain.StatusInProgress {
		count, err := s.registrationRepo.CountByTournamentID(ctx, id)
		if err != nil {
			return domain.Tournament{}, fmt.Errorf("s.registrationRepo.CountByTournamentID -> %w", err)
		}

		if count < tournament.MinParticipants {
			return domain.Tournament{}, ErrNotEnoughParticipants
		}
	}

	if err = s.repo.UpdateStatus(ctx, id, target); err != nil {
		return domain.Tournament{}, fmt.Errorf("s.repo.UpdateStatus -> %w", err)
	}

	tournament.Status = target

	if err = s.publisher.Publish(ctx, events.RoutingKeyTournamentStatusUpdated, tournament); err != nil {
		zap.L().Error("failed to publish status updated event", zap.Error(err))
	}

	return tournament, nil
}
