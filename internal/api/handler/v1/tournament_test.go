package v1

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/t-hub/tournament-api/internal/api/middleware"
	"github.com/t-hub/tournament-api/internal/domain"
	"github.com/t-hub/tournament-api/internal/service"
)

type stubTournamentService struct {
	tournament domain.Tournament
	err        error
}

func (s *stubTournamentService) CreateTournament(_ context.Context, _ domain.Tournament) (domain.Tournament, error) {
	return s.tournament, s.err
}

func (s *stubTournamentService) GetTournament(_ context.Context, _ uint) (domain.Tournament, error) {
	return s.tournament, s.err
}

func (s *stubTournamentService) ListTournaments(_ context.Context, _ bool) ([]domain.Tournament, error) {
	return []domain.Tournament{s.tournament}, s.err
}

func (s *stubTournamentService) ListByOrganizer(_ context.Context, _ uint) ([]domain.Tournament, error) {
	return []domain.Tournament{s.tournament}, s.err
}

func (s *stubTournamentService) UpdateTournament(_ context.Context, _ domain.Tournament, _ uint) (domain.Tournament, error) {
	return s.tournament, s.err
}

func (s *stubTournamentService) UpdateStatus(_ context.Context, _ uint, _ domain.TournamentStatus, _ uint) (domain.Tournament, error) {
	return s.tournament, s.err
}

type stubRegistrationService struct {
	registration domain.Registration
	err          error
}

func (s *stubRegistrationService) Register(_ context.Context, _ domain.Registration) (domain.Registration, error) {
	return s.registration, s.err
}

func (s *stubRegistrationService) Withdraw(_ context.Context, _ uint, _ string) error {
	return s.err
}

func (s *stubRegistrationService) ListParticipants(_ context.Context, _ uint) ([]domain.Registration, error) {
	return []domain.Registration{s.registration}, s.err
}

type stubUserService struct {
	user domain.User
}

func (s *stubUserService) GetUser(_ context.Context, _ uint) (domain.User, error) {
	return s.user, nil
}

func testUser() domain.User {
	return domain.User{
		ID:    7,
		Email: "alice@example.com",
		Name:  "Alice",
		Role:  domain.RolePlayer,
	}
}

func testTournament() domain.Tournament {
	return domain.Tournament{
		ID:              1,
		OrganizerID:     2,
		Name:            "Smash Bros Weekly",
		Game:            "Super Smash Bros",
		Format:          "single_elimination",
		ParticipantType: domain.ParticipantIndividual,
		Public:          true,
		StartDate:       time.Now().Add(48 * time.Hour),
		Status:          domain.StatusRegistrationOpen,
		MinParticipants: 2,
		MaxParticipants: 8,
	}
}

func setupRouter(handler *TournamentHandler, userID uint) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()

	router.Use(func(ctx *gin.Context) {
		ctx.Set(middleware.ContextKeyUserID, userID)
	})

	router.POST("/api/v1/tournaments", handler.HandleCreateTournament)
	router.GET("/api/v1/tournaments/:tournamentID", handler.HandleGetTournament)
	router.PATCH("/api/v1/tournaments/:tournamentID/status", handler.HandleUpdateStatus)
	router.POST("/api/v1/tournaments/:tournamentID/register", handler.HandleRegister)
	router.DELETE("/api/v1/tournaments/:tournamentID/register", handler.HandleWithdraw)
	router.GET("/api/v1/tournaments/:tournamentID/participants", handler.HandleListParticipants)

	return router
}

func performJSON(t *testing.T, router *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")

	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	return resp
}

func TestHandleRegister(t *testing.T) {
	tests := []struct {
		name       string
		regErr     error
		wantStatus int
	}{
		{"admitted", nil, http.StatusCreated},
		{"tournament full", service.ErrTournamentFull, http.StatusConflict},
		{"registration closed", service.ErrTournamentNotOpen, http.StatusForbidden},
		{"duplicate", service.ErrDuplicateRegistration, http.StatusConflict},
		{"tournament missing", service.ErrTournamentNotFound, http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := NewTournamentHandler(
				&stubTournamentService{tournament: testTournament()},
				&stubRegistrationService{
					registration: domain.Registration{ID: 1, TournamentID: 1, ParticipantID: "7"},
					err:          tt.regErr,
				},
				&stubUserService{user: testUser()},
			)
			router := setupRouter(handler, 7)

			resp := performJSON(t, router, http.MethodPost, "/api/v1/tournaments/1/register", gin.H{})

			assert.Equal(t, tt.wantStatus, resp.Code)
		})
	}
}

func TestHandleRegister_TournamentNotFound(t *testing.T) {
	handler := NewTournamentHandler(
		&stubTournamentService{err: service.ErrTournamentNotFound},
		&stubRegistrationService{},
		&stubUserService{user: testUser()},
	)
	router := setupRouter(handler, 7)

	resp := performJSON(t, router, http.MethodPost, "/api/v1/tournaments/999/register", gin.H{})

	assert.Equal(t, http.StatusNotFound, resp.Code)
}

func TestHandleRegister_PrivateTournament(t *testing.T) {
	tournament := testTournament()
	tournament.Public = false

	handler := NewTournamentHandler(
		&stubTournamentService{tournament: tournament},
		&stubRegistrationService{},
		&stubUserService{user: testUser()},
	)
	router := setupRouter(handler, 7)

	resp := performJSON(t, router, http.MethodPost, "/api/v1/tournaments/1/register", gin.H{})

	assert.Equal(t, http.StatusForbidden, resp.Code)
}

func TestHandleRegister_TeamTournamentRequiresTeamID(t *testing.T) {
	tournament := testTournament()
	tournament.ParticipantType = domain.ParticipantTeam

	handler := NewTournamentHandler(
		&stubTournamentService{tournament: tournament},
		&stubRegistrationService{},
		&stubUserService{user: testUser()},
	)
	router := setupRouter(handler, 7)

	resp := performJSON(t, router, http.MethodPost, "/api/v1/tournaments/1/register", gin.H{})
	assert.Equal(t, http.StatusBadRequest, resp.Code)

	resp = performJSON(t, router, http.MethodPost, "/api/v1/tournaments/1/register", gin.H{
		"team_id": "team-9",
		"name":    "The Niners",
	})
	assert.Equal(t, http.StatusCreated, resp.Code)
}

func TestHandleCreateTournament(t *testing.T) {
	organizer := testUser()
	organizer.Role = domain.RoleOrganizer

	handler := NewTournamentHandler(
		&stubTournamentService{tournament: testTournament()},
		&stubRegistrationService{},
		&stubUserService{user: organizer},
	)
	router := setupRouter(handler, 7)

	resp := performJSON(t, router, http.MethodPost, "/api/v1/tournaments", gin.H{
		"name":             "Smash Bros Weekly",
		"game":             "Super Smash Bros",
		"format":           "single_elimination",
		"participant_type": "individual",
		"start_date":       time.Now().Add(48 * time.Hour).Format(time.RFC3339),
		"min_participants": 2,
		"max_participants": 8,
	})

	assert.Equal(t, http.StatusCreated, resp.Code)
}

func TestHandleCreateTournament_PlayerForbidden(t *testing.T) {
	handler := NewTournamentHandler(
		&stubTournamentService{tournament: testTournament()},
		&stubRegistrationService{},
		&stubUserService{user: testUser()},
	)
	router := setupRouter(handler, 7)

	resp := performJSON(t, router, http.MethodPost, "/api/v1/tournaments", gin.H{
		"name":             "Smash Bros Weekly",
		"game":             "Super Smash Bros",
		"format":           "single_elimination",
		"participant_type": "individual",
		"start_date":       time.Now().Add(48 * time.Hour).Format(time.RFC3339),
		"min_participants": 2,
		"max_participants": 8,
	})

	assert.Equal(t, http.StatusForbidden, resp.Code)
}

func TestHandleUpdateStatus_InvalidTransition(t *testing.T) {
	handler := NewTournamentHandler(
		&stubTournamentService{err: service.ErrInvalidTransition},
		&stubRegistrationService{},
		&stubUserService{user: testUser()},
	)
	router := setupRouter(handler, 7)

	resp := performJSON(t, router, http.MethodPatch, "/api/v1/tournaments/1/status", gin.H{
		"status": "in_progress",
	})

	assert.Equal(t, http.StatusConflict, resp.Code)
}

func TestHandleWithdraw(t *testing.T) {
	handler := NewTournamentHandler(
		&stubTournamentService{tournament: testTournament()},
		&stubRegistrationService{},
		&stubUserService{user: testUser()},
	)
	router := setupRouter(handler, 7)

	resp := performJSON(t, router, http.MethodDelete, "/api/v1/tournaments/1/register", nil)

	assert.Equal(t, http.StatusNoContent, resp.Code)
}

func TestHandleWithdraw_NotRegistered(t *testing.T) {
	handler := NewTournamentHandler(
		&stubTournamentService{tournament: testTournament()},
		&stubRegistrationService{err: service.ErrRegistrationNotFound},
		&stubUserService{user: testUser()},
	)
	router := setupRouter(handler, 7)

	resp := performJSON(t, router, http.MethodDelete, "/api/v1/tournaments/1/register", nil)

	assert.Equal(t, http.StatusNotFound, resp.Code)
}

func TestHandleGetTournament(t *testing.T) {
	handler := NewTournamentHandler(
		&stubTournamentService{tournament: testTournament()},
		&stubRegistrationService{},
		&stubUserService{user: testUser()},
	)
	router := setupRouter(handler, 7)

	resp := performJSON(t, router, http.MethodGet, "/api/v1/tournaments/1", nil)

	require.Equal(t, http.StatusOK, resp.Code)

	var got domain.Tournament
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &got))
	assert.Equal(t, "Smash Bros Weekly", got.Name)
}

func TestHandleGetTournament_InvalidID(t *testing.T) {
	handler := NewTournamentHandler(
		&stubTournamentService{tournament: testTournament()},
		&stubRegistrationService{},
		&stubUserService{user: testUser()},
	)
	router := setupRouter(handler, 7)

	resp := performJSON(t, router, http.MethodGet, "/api/v1/tournaments/abc", nil)

	assert.Equal(t, http.StatusBadRequest, resp.Code)
}

func TestHandleListParticipants(t *testing.T) {
	handler := NewTournamentHandler(
		&stubTournamentService{tournament: testTournament()},
		&stubRegistrationService{
			registration: domain.Registration{ID: 1, TournamentID: 1, ParticipantID: "7", Name: "Alice"},
		},
		&stubUserService{user: testUser()},
	)
	router := setupRouter(handler, 7)

	resp := performJSON(t, router, http.MethodGet, "/api/v1/tournaments/1/participants", nil)

	require.Equal(t, http.StatusOK, resp.Code)

	var got []domain.Registration
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &got))
	require.Len(t, got, 1)
	assert.Equal(t, "Alice", got[0].Name)
}
