package repository

import (
	"context"
	"fmt"

	"github.com/t-hub/tournament-api/internal/domain"
	"github.com/t-hub/tournament-api/internal/repository/dao"
)

var (
	ErrDuplicateRegistration = dao.ErrDuplicateRegistration
	ErrRegistrationNotFound  = dao.ErrRegistrationNotFound
)

type RegistrationDAO interface {
	Insert(ctx context.Context, registration dao.Registration) (dao.Registration, error)
	FindByTournamentID(ctx context.Context, tournamentID uint) ([]dao.Registration, error)
	FindByParticipant(ctx context.Context, tournamentID uint, participantID string) (dao.Registration, error)
	CountByTournamentID(ctx context.Context, tournamentID uint) (int, error)
	Delete(ctx context.Context, tournamentID uint, participantID string) error
}

type RegistrationRepository struct {
	dao RegistrationDAO
}

func NewRegistrationRepository(dao RegistrationDAO) *RegistrationRepository {
	return &RegistrationRepository{
		dao: dao,
	}
}

func (r *RegistrationRepository) Create(ctx context.Context, registration domain.Registration) (domain.Registration, error) {
	created, err := r.dao.Insert(ctx, dao.Registration{
		TournamentID:  registration.TournamentID,
		ParticipantID: registration.ParticipantID,
		Name:          registration.Name,
	})
	if err != nil {
		return domain.Registration{}, fmt.Errorf("r.dao.Insert -> %w", err)
	}

	return r.daoToDomain(created), nil
}

func (r *RegistrationRepository) FindByTournamentID(ctx context.Context, tournamentID uint) ([]domain.Registration, error) {
	found, err := r.dao.FindByTournamentID(ctx, tournamentID)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindByTournamentID -> %w", err)
	}

	registrations := make([]domain.Registration, 0, len(found))
	for _, reg := range found {
		registrations = append(registrations, r.daoToDomain(reg))
	}

	return registrations, nil
}

func (r *RegistrationRepository) FindByParticipant(ctx context.Context, tournamentID uint, participantID string) (domain.Registration, error) {
	found, err := r.dao.FindByParticipant(ctx, tournamentID, participantID)
	if err != nil {
		return domain.Registration{}, fmt.Errorf("r.dao.FindByParticipant -> %w", err)
	}

	return r.daoToDomain(found), nil
}

func (r *RegistrationRepository) CountByTournamentID(ctx context.Context, tournamentID uint) (int, error) {
	count, err := r.dao.CountByTournamentID(ctx, tournamentID)
	if err != nil {
		return 0, fmt.Errorf("r.dao.CountByTournamentID -> %w", err)
	}

	return count, nil
}

func (r *RegistrationRepository) Delete(ctx context.Context, tournamentID uint, participantID string) error {
	if err := r.dao.Delete(ctx, tournamentID, participantID); err != nil {
		return fmt.Errorf("r.dao.Delete -> %w", err)
	}

	return nil
}

func (r *RegistrationRepository) daoToDomain(reg dao.Registration) domain.Registration {
	return domain.Registration{
		ID:            reg.ID,
		TournamentID:  reg.TournamentID,
		ParticipantID: reg.ParticipantID,
		Name:          reg.Name,
		RegisteredAt:  reg.CreatedAt,
	}
}
