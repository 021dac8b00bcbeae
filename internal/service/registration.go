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
	ErrTournamentNotOpen     = errors.New("tournament is not open for registration")
	ErrTournamentFull        = errors.New("tournament is full")
	ErrDuplicateRegistration = repository.ErrDuplicateRegistration
	ErrRegistrationNotFound  = repository.ErrRegistrationNotFound
)

type RegistrationRepository interface {
	Create(ctx context.Context, registration domain.Registration) (domain.Registration, error)
	FindByTournamentID(ctx context.Context, tournamentID uint) ([]domain.Registration, error)
	FindByParticipant(ctx context.Context, tournamentID uint, participantID string) (domain.Registration, error)
	CountByTournamentID(ctx context.Context, tournamentID uint) (int, error)
	Delete(ctx context.Context, tournamentID uint, participantID string) error
}

// RegistrationService admits participants into capacity-bounded
// tournaments. All admission decisions for one tournament run inside a
// per-tournament critical section, so the seat count can never be
// oversubscribed no matter how many requests race.
type RegistrationService struct {
	repo           RegistrationRepository
	tournamentRepo TournamentRepository
	publisher      events.Publisher
	gate           keyedMutex
}

func NewRegistrationService(repo RegistrationRepository, tournamentRepo TournamentRepository, publisher events.Publisher) *RegistrationService {
	return &RegistrationService{
		repo:           repo,
		tournamentRepo: tournamentRepo,
		publisher:      publisher,
	}
}

// Register admits one participant. The checks run in order inside the
// gate: status, duplicate, capacity. The registration count is the
// authority for capacity; the full status is only a derived flag.
func (s *RegistrationService) Register(ctx context.Context, registration domain.Registration) (domain.Registration, error) {
	s.gate.Lock(registration.TournamentID)
	defer s.gate.Unlock(registration.TournamentID)

	tournament, err := s.tournamentRepo.FindByID(ctx, registration.TournamentID)
	if err != nil {
		return domain.Registration{}, fmt.Errorf("s.tournamentRepo.FindByID -> %w", err)
	}

	if !tournament.Status.AcceptsRegistrations() {
		if tournament.Status == domain.StatusFull {
			return domain.Registration{}, ErrTournamentFull
		}

		return domain.Registration{}, ErrTournamentNotOpen
	}

	_, err = s.repo.FindByParticipant(ctx, registration.TournamentID, registration.ParticipantID)
	if err == nil {
		return domain.Registration{}, ErrDuplicateRegistration
	}
	if !errors.Is(err, repository.ErrRegistrationNotFound) {
		return domain.Registration{}, fmt.Errorf("s.repo.FindByParticipant -> %w", err)
	}

	count, err := s.repo.CountByTournamentID(ctx, registration.TournamentID)
	if err != nil {
		return domain.Registration{}, fmt.Errorf("s.repo.CountByTournamentID -> %w", err)
	}

	if count >= tournament.MaxParticipants {
		// The flag lagged behind the count; repair it on the way out.
		if _, flipErr := s.tournamentRepo.UpdateStatusFrom(ctx, tournament.ID,
			domain.StatusRegistrationOpen, domain.StatusFull); flipErr != nil {
			zap.L().Error("failed to mark tournament full", zap.Error(flipErr))
		}

		return domain.Registration{}, ErrTournamentFull
	}

	// The unique index backs this up if the gate is ever bypassed.
	created, err := s.repo.Create(ctx, registration)
	if err != nil {
		return domain.Registration{}, fmt.Errorf("s.repo.Create -> %w", err)
	}

	if count+1 >= tournament.MaxParticipants {
		if _, err = s.tournamentRepo.UpdateStatusFrom(ctx, tournament.ID,
			domain.StatusRegistrationOpen, domain.StatusFull); err != nil {
			zap.L().Error("failed to mark tournament full", zap.Error(err))
		}
	}

	if err = s.publisher.Publish(ctx, events.RoutingKeyTournamentRegistered, created); err != nil {
		zap.L().Error("failed to publish registration event", zap.Error(err))
	}

	return created, nil
}

// Withdraw removes a participant and reopens registration when the
// tournament was full.
func (s *RegistrationService) Withdraw(ctx context.Context, tournamentID uint, participantID string) error {
	s.gate.Lock(tournamentID)
	defer s.gate.Unlock(tournamentID)

	tournament, err := s.tournamentRepo.FindByID(ctx, tournamentID)
	if err != nil {
		return fmt.Errorf("s.tournamentRepo.FindByID -> %w", err)
	}

	if err = s.repo.Delete(ctx, tournamentID, participantID); err != nil {
		return fmt.Errorf("s.repo.Delete -> %w", err)
	}

	if tournament.Status == domain.StatusFull {
		if _, err = s.tournamentRepo.UpdateStatusFrom(ctx, tournamentID,
			domain.StatusFull, domain.StatusRegistrationOpen); err != nil {
			zap.L().Error("failed to reopen tournament", zap.Error(err))
		}
	}

	return nil
}

func (s *RegistrationService) ListParticipants(ctx context.Context, tournamentID uint) ([]domain.Registration, error) {
	if _, err := s.tournamentRepo.FindByID(ctx, tournamentID); err != nil {
		return nil, fmt.Errorf("s.tournamentRepo.FindByID -> %w", err)
	}

	registrations, err := s.repo.FindByTournamentID(ctx, tournamentID)
	if err != nil {
		return nil, fmt.Errorf("s.repo.FindByTournamentID -> %w", err)
	}

	return registrations, nil
}
