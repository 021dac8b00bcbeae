package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/t-hub/tournament-api/internal/domain"
	"github.com/t-hub/tournament-api/internal/events"
)

func newTestTournamentService(t *testing.T) (*TournamentService, *fakeTournamentRepo, *fakeRegistrationRepo) {
	t.Helper()

	tournamentRepo := newFakeTournamentRepo()
	registrationRepo := newFakeRegistrationRepo()
	svc := NewTournamentService(tournamentRepo, registrationRepo, events.NewNopPublisher())

	return svc, tournamentRepo, registrationRepo
}

func TestCreateTournament_StartsAsDraft(t *testing.T) {
	svc, _, _ := newTestTournamentService(t)

	tournament := openTournament(8)
	tournament.Status = domain.StatusInProgress // should be ignored

	created, err := svc.CreateTournament(context.Background(), tournament)

	require.NoError(t, err)
	assert.Equal(t, domain.StatusDraft, created.Status)
	assert.NotZero(t, created.ID)
}

func TestGetTournament_IncludesCurrentCount(t *testing.T) {
	tournamentRepo := newFakeTournamentRepo()
	registrationRepo := newFakeRegistrationRepo()
	svc := NewTournamentService(tournamentRepo, registrationRepo, events.NewNopPublisher())

	created, err := tournamentRepo.Create(context.Background(), openTournament(8))
	require.NoError(t, err)

	for _, id := range []string{"1", "2", "3"} {
		_, err = registrationRepo.Create(context.Background(), domain.Registration{
			TournamentID:  created.ID,
			ParticipantID: id,
		})
		require.NoError(t, err)
	}

	tournament, err := svc.GetTournament(context.Background(), created.ID)

	require.NoError(t, err)
	assert.Equal(t, 3, tournament.CurrentCount)
}

func TestGetTournament_NotFound(t *testing.T) {
	svc, _, _ := newTestTournamentService(t)

	_, err := svc.GetTournament(context.Background(), 999)

	assert.ErrorIs(t, err, ErrTournamentNotFound)
}

func TestUpdateStatus(t *testing.T) {
	tests := []struct {
		name    string
		from    domain.TournamentStatus
		to      domain.TournamentStatus
		wantErr error
	}{
		{"open registration", domain.StatusDraft, domain.StatusRegistrationOpen, nil},
		{"close registration", domain.StatusRegistrationOpen, domain.StatusRegistrationClosed, nil},
		{"start", domain.StatusRegistrationClosed, domain.StatusInProgress, nil},
		{"complete", domain.StatusInProgress, domain.StatusCompleted, nil},
		{"cancel from draft", domain.StatusDraft, domain.StatusCancelled, nil},
		{"skip to in_progress", domain.StatusDraft, domain.StatusInProgress, ErrInvalidTransition},
		{"reopen completed", domain.StatusCompleted, domain.StatusRegistrationOpen, ErrInvalidTransition},
		{"revive cancelled", domain.StatusCancelled, domain.StatusDraft, ErrInvalidTransition},
		{"manual full", domain.StatusRegistrationOpen, domain.StatusFull, ErrInvalidTransition},
		{"unknown status", domain.StatusDraft, domain.TournamentStatus("ongoing"), ErrInvalidTransition},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, tournamentRepo, registrationRepo := newTestTournamentService(t)

			tournament := openTournament(8)
			tournament.Status = tt.from
			created, err := tournamentRepo.Create(context.Background(), tournament)
			require.NoError(t, err)

			// Enough participants that the in_progress guard is not in play.
			for _, id := range []string{"1", "2"} {
				_, err = registrationRepo.Create(context.Background(), domain.Registration{
					TournamentID:  created.ID,
					ParticipantID: id,
				})
				require.NoError(t, err)
			}

			updated, err := svc.UpdateStatus(context.Background(), created.ID, tt.to, created.OrganizerID)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)

				stored, findErr := tournamentRepo.FindByID(context.Background(), created.ID)
				require.NoError(t, findErr)
				assert.Equal(t, tt.from, stored.Status, "status must not change on a rejected transition")

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.to, updated.Status)
		})
	}
}

func TestUpdateStatus_NotEnoughParticipants(t *testing.T) {
	svc, tournamentRepo, _ := newTestTournamentService(t)

	tournament := openTournament(8)
	tournament.Status = domain.StatusRegistrationClosed
	created, err := tournamentRepo.Create(context.Background(), tournament)
	require.NoError(t, err)

	_, err = svc.UpdateStatus(context.Background(), created.ID, domain.StatusInProgress, created.OrganizerID)

	assert.ErrorIs(t, err, ErrNotEnoughParticipants)
}

func TestUpdateStatus_NotOrganizer(t *testing.T) {
	svc, tournamentRepo, _ := newTestTournamentService(t)

	created, err := tournamentRepo.Create(context.Background(), openTournament(8))
	require.NoError(t, err)

	_, err = svc.UpdateStatus(context.Background(), created.ID, domain.StatusRegistrationClosed, created.OrganizerID+1)

	assert.ErrorIs(t, err, ErrNotOrganizer)
}

func TestUpdateTournament_PreservesStatusAndOwner(t *testing.T) {
	svc, tournamentRepo, _ := newTestTournamentService(t)

	created, err := tournamentRepo.Create(context.Background(), openTournament(8))
	require.NoError(t, err)

	update := created
	update.Name = "Renamed"
	update.Status = domain.StatusCompleted // must be ignored
	update.OrganizerID = 99                // must be ignored

	updated, err := svc.UpdateTournament(context.Background(), update, created.OrganizerID)

	require.NoError(t, err)
	assert.Equal(t, "Renamed", updated.Name)
	assert.Equal(t, created.Status, updated.Status)
	assert.Equal(t, created.OrganizerID, updated.OrganizerID)
}

func TestUpdateTournament_MaxParticipantsLocked(t *testing.T) {
	svc, tournamentRepo, _ := newTestTournamentService(t)

	created, err := tournamentRepo.Create(context.Background(), openTournament(8))
	require.NoError(t, err)

	update := created
	update.MaxParticipants = 16

	_, err = svc.UpdateTournament(context.Background(), update, created.OrganizerID)

	assert.ErrorIs(t, err, ErrMaxParticipantsLocked)
}

func TestUpdateTournament_DetailsLockedOnceStarted(t *testing.T) {
	svc, tournamentRepo, _ := newTestTournamentService(t)

	tournament := openTournament(8)
	tournament.Status = domain.StatusInProgress
	created, err := tournamentRepo.Create(context.Background(), tournament)
	require.NoError(t, err)

	update := created
	update.Game = "Tetris"

	_, err = svc.UpdateTournament(context.Background(), update, created.OrganizerID)

	assert.ErrorIs(t, err, ErrTournamentDetailLocked)
}

func TestUpdateTournament_NotOrganizer(t *testing.T) {
	svc, tournamentRepo, _ := newTestTournamentService(t)

	created, err := tournamentRepo.Create(context.Background(), openTournament(8))
	require.NoError(t, err)

	_, err = svc.UpdateTournament(context.Background(), created, created.OrganizerID+1)

	assert.ErrorIs(t, err, ErrNotOrganizer)
}

func TestListTournaments_PublicOnly(t *testing.T) {
	svc, tournamentRepo, _ := newTestTournamentService(t)

	public := openTournament(8)
	_, err := tournamentRepo.Create(context.Background(), public)
	require.NoError(t, err)

	private := openTournament(8)
	private.Public = false
	_, err = tournamentRepo.Create(context.Background(), private)
	require.NoError(t, err)

	tournaments, err := svc.ListTournaments(context.Background(), true)

	require.NoError(t, err)
	assert.Len(t, tournaments, 1)
	assert.True(t, tournaments[0].Public)
}
