package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/t-hub/tournament-api/internal/domain"
	"github.com/t-hub/tournament-api/internal/repository"
)

type fakeTournamentRepo struct {
	mu          sync.Mutex
	nextID      uint
	tournaments map[uint]domain.Tournament
}

func newFakeTournamentRepo() *fakeTournamentRepo {
	return &fakeTournamentRepo{
		tournaments: make(map[uint]domain.Tournament),
	}
}

func (r *fakeTournamentRepo) Create(_ context.Context, tournament domain.Tournament) (domain.Tournament, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.nextID++
	tournament.ID = r.nextID
	tournament.CreatedAt = time.Now()
	r.tournaments[tournament.ID] = tournament

	return tournament, nil
}

func (r *fakeTournamentRepo) FindByID(_ context.Context, id uint) (domain.Tournament, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	tournament, ok := r.tournaments[id]
	if !ok {
		return domain.Tournament{}, repository.ErrTournamentNotFound
	}

	return tournament, nil
}

func (r *fakeTournamentRepo) FindAll(_ context.Context, publicOnly bool) ([]domain.Tournament, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var tournaments []domain.Tournament
	for _, t := range r.tournaments {
		if publicOnly && !t.Public {
			continue
		}
		tournaments = append(tournaments, t)
	}

	return tournaments, nil
}

func (r *fakeTournamentRepo) FindByOrganizerID(_ context.Context, organizerID uint) ([]domain.Tournament, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var tournaments []domain.Tournament
	for _, t := range r.tournaments {
		if t.OrganizerID == organizerID {
			tournaments = append(tournaments, t)
		}
	}

	return tournaments, nil
}

func (r *fakeTournamentRepo) Update(_ context.Context, tournament domain.Tournament) (domain.Tournament, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.tournaments[tournament.ID]; !ok {
		return domain.Tournament{}, repository.ErrTournamentNotFound
	}

	r.tournaments[tournament.ID] = tournament

	return tournament, nil
}

func (r *fakeTournamentRepo) UpdateStatus(_ context.Context, id uint, status domain.TournamentStatus) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	tournament, ok := r.tournaments[id]
	if !ok {
		return repository.ErrTournamentNotFound
	}

	tournament.Status = status
	r.tournaments[id] = tournament

	return nil
}

func (r *fakeTournamentRepo) UpdateStatusFrom(_ context.Context, id uint, from, to domain.TournamentStatus) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	tournament, ok := r.tournaments[id]
	if !ok || tournament.Status != from {
		return false, nil
	}

	tournament.Status = to
	r.tournaments[id] = tournament

	return true, nil
}

type fakeRegistrationRepo struct {
	mu     sync.Mutex
	nextID uint
	regs   map[string]domain.Registration
}

func newFakeRegistrationRepo() *fakeRegistrationRepo {
	return &fakeRegistrationRepo{
		regs: make(map[string]domain.Registration),
	}
}

func regKey(tournamentID uint, participantID string) string {
	return fmt.Sprintf("%d/%s", tournamentID, participantID)
}

func (r *fakeRegistrationRepo) Create(_ context.Context, registration domain.Registration) (domain.Registration, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := regKey(registration.TournamentID, registration.ParticipantID)
	if _, ok := r.regs[key]; ok {
		return domain.Registration{}, repository.ErrDuplicateRegistration
	}

	r.nextID++
	registration.ID = r.nextID
	registration.RegisteredAt = time.Now()
	r.regs[key] = registration

	return registration, nil
}

func (r *fakeRegistrationRepo) FindByTournamentID(_ context.Context, tournamentID uint) ([]domain.Registration, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var registrations []domain.Registration
	for _, reg := range r.regs {
		if reg.TournamentID == tournamentID {
			registrations = append(registrations, reg)
		}
	}

	return registrations, nil
}

func (r *fakeRegistrationRepo) FindByParticipant(_ context.Context, tournamentID uint, participantID string) (domain.Registration, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	reg, ok := r.regs[regKey(tournamentID, participantID)]
	if !ok {
		return domain.Registration{}, repository.ErrRegistrationNotFound
	}

	return reg, nil
}

func (r *fakeRegistrationRepo) CountByTournamentID(_ context.Context, tournamentID uint) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	count := 0
	for _, reg := range r.regs {
		if reg.TournamentID == tournamentID {
			count++
		}
	}

	return count, nil
}

func (r *fakeRegistrationRepo) Delete(_ context.Context, tournamentID uint, participantID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := regKey(tournamentID, participantID)
	if _, ok := r.regs[key]; !ok {
		return repository.ErrRegistrationNotFound
	}

	delete(r.regs, key)

	return nil
}
