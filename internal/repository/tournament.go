package repository

import (
	"context"
	"fmt"

	"github.com/t-hub/tournament-api/internal/domain"
	"github.com/t-hub/tournament-api/internal/repository/dao"
)

var ErrTournamentNotFound = dao.ErrTournamentNotFound

type TournamentDAO interface {
	Insert(ctx context.Context, tournament dao.Tournament) (dao.Tournament, error)
	FindByID(ctx context.Context, id uint) (dao.Tournament, error)
	FindAll(ctx context.Context, publicOnly bool) ([]dao.Tournament, error)
	FindByOrganizerID(ctx context.Context, organizerID uint) ([]dao.Tournament, error)
	Update(ctx context.Context, tournament dao.Tournament) (dao.Tournament, error)
	UpdateStatus(ctx context.Context, id uint, status string) error
	UpdateStatusFrom(ctx context.Context, id uint, from, to string) (bool, error)
}

type TournamentRepository struct {
	dao TournamentDAO
}

func NewTournamentRepository(dao TournamentDAO) *TournamentRepository {
	return &TournamentRepository{
		dao: dao,
	}
}

func (r *TournamentRepository) Create(ctx context.Context, tournament domain.Tournament) (domain.Tournament, error) {
	created, err := r.dao.Insert(ctx, dao.Tournament{
		OrganizerID:     tournament.OrganizerID,
		Name:            tournament.Name,
		Description:     tournament.Description,
		Game:            tournament.Game,
		Format:          tournament.Format,
		ParticipantType: string(tournament.ParticipantType),
		Public:          tournament.Public,
		StartDate:       tournament.StartDate,
		Status:          string(tournament.Status),
		MinParticipants: tournament.MinParticipants,
		MaxParticipants: tournament.MaxParticipants,
	})
	if err != nil {
		return domain.Tournament{}, fmt.Errorf("r.dao.Insert -> %w", err)
	}

	return r.daoToDomain(created), nil
}

func (r *TournamentRepository) FindByID(ctx context.Context, id uint) (domain.Tournament, error) {
	found, err := r.dao.FindByID(ctx, id)
	if err != nil {
		return domain.Tournament{}, fmt.Errorf("r.dao.FindByID -> %w", err)
	}

	return r.daoToDomain(found), nil
}

func (r *TournamentRepository) FindAll(ctx context.Context, publicOnly bool) ([]domain.Tournament, error) {
	found, err := r.dao.FindAll(ctx, publicOnly)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindAll -> %w", err)
	}

	tournaments := make([]domain.Tournament, 0, len(found))
	for _, t := range found {
		tournaments = append(tournaments, r.daoToDomain(t))
	}

	return tournaments, nil
}

func (r *TournamentRepository) FindByOrganizerID(ctx context.Context, organizerID uint) ([]domain.Tournament, error) {
	found, err := r.dao.FindByOrganizerID(ctx, organizerID)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindByOrganizerID -> %w", err)
	}

	tournaments := make([]domain.Tournament, 0, len(found))
	for _, t := range found {
		tournaments = append(tournaments, r.daoToDomain(t))
	}

	return tournaments, nil
}

func (r *TournamentRepository) Update(ctx context.Context, tournament domain.Tournament) (domain.Tournament, error) {
	updated, err := r.dao.Update(ctx, dao.Tournament{
		ID:              tournament.ID,
		OrganizerID:     tournament.OrganizerID,
		Name:            tournament.Name,
		Description:     tournament.Description,
		Game:            tournament.Game,
		Format:          tournament.Format,
		ParticipantType: string(tournament.ParticipantType),
		Public:          tournament.Public,
		StartDate:       tournament.StartDate,
		Status:          string(tournament.Status),
		MinParticipants: tournament.MinParticipants,
		MaxParticipants: tournament.MaxParticipants,
		CreatedAt:       tournament.CreatedAt,
	})
	if err != nil {
		return domain.Tournament{}, fmt.Errorf("r.dao.Update -> %w", err)
	}

	return r.daoToDomain(updated), nil
}

func (r *TournamentRepository) UpdateStatus(ctx context.Context, id uint, status domain.TournamentStatus) error {
	if err := r.dao.UpdateStatus(ctx, id, string(status)); err != nil {
		return fmt.Errorf("r.dao.UpdateStatus -> %w", err)
	}

	return nil
}

func (r *TournamentRepository) UpdateStatusFrom(ctx context.Context, id uint, from, to domain.TournamentStatus) (bool, error) {
	flipped, err := r.dao.UpdateStatusFrom(ctx, id, string(from), string(to))
	if err != nil {
		return false, fmt.Errorf("r.dao.UpdateStatusFrom -> %w", err)
	}

	return flipped, nil
}

func (r *TournamentRepository) daoToDomain(t dao.Tournament) domain.Tournament {
	return domain.Tournament{
		ID:              t.ID,
		OrganizerID:     t.OrganizerID,
		Name:            t.Name,
		Description:     t.Description,
		Game:            t.Game,
		Format:          t.Format,
		ParticipantType: domain.ParticipantType(t.ParticipantType),
		Public:          t.Public,
		StartDate:       t.StartDate,
		Status:          domain.TournamentStatus(t.Status),
		MinParticipants: t.MinParticipants,
		MaxParticipants: t.MaxParticipants,
		CreatedAt:       t.CreatedAt,
		UpdatedAt:       t.UpdatedAt,
	}
}
