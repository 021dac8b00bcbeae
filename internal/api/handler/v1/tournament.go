package v1

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/t-hub/tournament-api/internal/api/handler/v1/request"
	"github.com/t-hub/tournament-api/internal/api/handler/v1/response"
	"github.com/t-hub/tournament-api/internal/domain"
	"github.com/t-hub/tournament-api/internal/service"
)

type TournamentService interface {
	CreateTournament(ctx context.Context, tournament domain.Tournament) (domain.Tournament, error)
	GetTournament(ctx context.Context, id uint) (domain.Tournament, error)
	ListTournaments(ctx context.Context, publicOnly bool) ([]domain.Tournament, error)
	ListByOrganizer(ctx context.Context, organizerID uint) ([]domain.Tournament, error)
	UpdateTournament(ctx context.Context, tournament domain.Tournament, requesterID uint) (domain.Tournament, error)
	UpdateStatus(ctx context.Context, id uint, target domain.TournamentStatus, requesterID uint) (domain.Tournament, error)
}

type RegistrationService interface {
	Register(ctx context.Context, registration domain.Registration) (domain.Registration, error)
	Withdraw(ctx context.Context, tournamentID uint, participantID string) error
	ListParticipants(ctx context.Context, tournamentID uint) ([]domain.Registration, error)
}

type TournamentHandler struct {
	svc    TournamentService
	regSvc RegistrationService
	uSvc   UserService
}

func NewTournamentHandler(svc TournamentService, regSvc RegistrationService, uSvc UserService) *TournamentHandler {
	return &TournamentHandler{
		svc:    svc,
		regSvc: regSvc,
		uSvc:   uSvc,
	}
}

// HandleListTournaments godoc
// @Summary      List public tournaments
// @Tags         tournaments
// @Produce      json
// @Success      200  {object}  []domain.Tournament
// @Failure      401  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /tournaments [get]
// @Security     BearerAuth
func (h *TournamentHandler) HandleListTournaments(ctx *gin.Context) {
	tournaments, err := h.svc.ListTournaments(ctx.Request.Context(), true)
	if err != nil {
		err = fmt.Errorf("v1.HandleListTournaments -> h.svc.ListTournaments -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.JSON(http.StatusOK, tournaments)
}

// HandleListMyTournaments godoc
// @Summary      List tournaments organized by the authenticated user
// @Tags         tournaments
// @Produce      json
// @Success      200  {object}  []domain.Tournament
// @Failure      401  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /tournaments/mine [get]
// @Security     BearerAuth
func (h *TournamentHandler) HandleListMyTournaments(ctx *gin.Context) {
	user, respErr := getUserFromContext(ctx, h.uSvc)
	if respErr != nil {
		response.RenderErr(ctx, respErr)

		return
	}

	tournaments, err := h.svc.ListByOrganizer(ctx.Request.Context(), user.ID)
	if err != nil {
		err = fmt.Errorf("v1.HandleListMyTournaments -> h.svc.ListByOrganizer -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.JSON(http.StatusOK, tournaments)
}

// HandleCreateTournament godoc
// @Summary      Create a tournament
// @Tags         tournaments
// @Produce      json
// @Param        request  body      request.CreateTournamentRequest true "request body"
// @Success      201      {object}  domain.Tournament
// @Failure      400      {object}  response.Err
// @Failure      401      {object}  response.Err
// @Failure      403      {object}  response.Err
// @Failure      500      {object}  response.Err
// @Router       /tournaments [post]
// @Security     BearerAuth
func (h *TournamentHandler) HandleCreateTournament(ctx *gin.Context) {
	user, respErr := getUserFromContext(ctx, h.uSvc)
	if respErr != nil {
		response.RenderErr(ctx, respErr)

		return
	}

	if user.Role != domain.RoleOrganizer {
		response.RenderErr(ctx, response.ErrForbidden("only organizers can create tournaments"))

		return
	}

	var req request.CreateTournamentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	public := true
	if req.Public != nil {
		public = *req.Public
	}

	tournament, err := h.svc.CreateTournament(ctx.Request.Context(), domain.Tournament{
		OrganizerID:     user.ID,
		Name:            req.Name,
		Description:     req.Description,
		Game:            req.Game,
		Format:          req.Format,
		ParticipantType: domain.ParticipantType(req.ParticipantType),
		Public:          public,
		StartDate:       req.StartDate,
		MinParticipants: req.MinParticipants,
		MaxParticipants: req.MaxParticipants,
	})
	if err != nil {
		err = fmt.Errorf("v1.HandleCreateTournament -> h.svc.CreateTournament -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.JSON(http.StatusCreated, tournament)
}

// HandleGetTournament godoc
// @Summary      Get a tournament by ID
// @Tags         tournaments
// @Produce      json
// @Param        tournamentID  path      int  true  "tournament ID"
// @Success      200           {object}  domain.Tournament
// @Failure      400           {object}  response.Err
// @Failure      401           {object}  response.Err
// @Failure      403           {object}  response.Err
// @Failure      404           {object}  response.Err
// @Failure      500           {object}  response.Err
// @Router       /tournaments/{tournamentID} [get]
// @Security     BearerAuth
func (h *TournamentHandler) HandleGetTournament(ctx *gin.Context) {
	user, respErr := getUserFromContext(ctx, h.uSvc)
	if respErr != nil {
		response.RenderErr(ctx, respErr)

		return
	}

	tournamentID, ok := parseTournamentID(ctx)
	if !ok {
		return
	}

	tournament, err := h.svc.GetTournament(ctx.Request.Context(), tournamentID)
	if err != nil {
		if errors.Is(err, service.ErrTournamentNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("tournament", "ID", tournamentID))

			return
		}

		err = fmt.Errorf("v1.HandleGetTournament -> h.svc.GetTournament -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	if !tournament.Public && tournament.OrganizerID != user.ID {
		response.RenderErr(ctx, response.ErrForbidden("tournament is private"))

		return
	}

	ctx.JSON(http.StatusOK, tournament)
}

// HandleUpdateTournament godoc
// @Summary      Update a tournament
// @Tags         tournaments
// @Produce      json
// @Param        tournamentID  path      int  true  "tournament ID"
// @Param        request       body      request.UpdateTournamentRequest true "request body"
// @Success      200           {object}  domain.Tournament
// @Failure      400           {object}  response.Err
// @Failure      401           {object}  response.Err
// @Failure      403           {object}  response.Err
// @Failure      404           {object}  response.Err
// @Failure      500           {object}  response.Err
// @Router       /tournaments/{tournamentID} [put]
// @Security     BearerAuth
func (h *TournamentHandler) HandleUpdateTournament(ctx *gin.Context) {
	user, respErr := getUserFromContext(ctx, h.uSvc)
	if respErr != nil {
		response.RenderErr(ctx, respErr)

		return
	}

	tournamentID, ok := parseTournamentID(ctx)
	if !ok {
		return
	}

	var req request.UpdateTournamentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	public := true
	if req.Public != nil {
		public = *req.Public
	}

	tournament, err := h.svc.UpdateTournament(ctx.Request.Context(), domain.Tournament{
		ID:              tournamentID,
		Name:            req.Name,
		Description:     req.Description,
		Game:            req.Game,
		Format:          req.Format,
		ParticipantType: domain.ParticipantType(req.ParticipantType),
		Public:          public,
		StartDate:       req.StartDate,
		MinParticipants: req.MinParticipants,
		MaxParticipants: req.MaxParticipants,
	}, user.ID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrTournamentNotFound):
			response.RenderErr(ctx, response.ErrNotFound("tournament", "ID", tournamentID))
		case errors.Is(err, service.ErrNotOrganizer):
			response.RenderErr(ctx, response.ErrForbidden("only the organizer can update the tournament"))
		case errors.Is(err, service.ErrMaxParticipantsLocked):
			response.RenderErr(ctx, response.ErrConflict(service.ErrMaxParticipantsLocked))
		case errors.Is(err, service.ErrTournamentDetailLocked):
			response.RenderErr(ctx, response.ErrConflict(service.ErrTournamentDetailLocked))
		default:
			err = fmt.Errorf("v1.HandleUpdateTournament -> h.svc.UpdateTournament -> %w", err)
			response.RenderErr(ctx, response.ErrInternalServerError(err))
		}

		return
	}

	ctx.JSON(http.StatusOK, tournament)
}

// HandleUpdateStatus godoc
// @Summary      Update a tournament's lifecycle status
// @Tags         tournaments
// @Produce      json
// @Param        tournamentID  path      int  true  "tournament ID"
// @Param        request       body      request.UpdateStatusRequest true "request body"
// @Success      200           {object}  domain.Tournament
// @Failure      400           {object}  response.Err
// @Failure      401           {object}  response.Err
// @Failure      403           {object}  response.Err
// @Failure      404           {object}  response.Err
// @Failure      409           {object}  response.Err
// @Failure      500           {object}  response.Err
// @Router       /tournaments/{tournamentID}/status [patch]
// @Security     BearerAuth
func (h *TournamentHandler) HandleUpdateStatus(ctx *gin.Context) {
	user, respErr := getUserFromContext(ctx, h.uSvc)
	if respErr != nil {
		response.RenderErr(ctx, respErr)

		return
	}

	tournamentID, ok := parseTournamentID(ctx)
	if !ok {
		return
	}

	var req request.UpdateStatusRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	tournament, err := h.svc.UpdateStatus(ctx.Request.Context(), tournamentID, domain.TournamentStatus(req.Status), user.ID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrTournamentNotFound):
			response.RenderErr(ctx, response.ErrNotFound("tournament", "ID", tournamentID))
		case errors.Is(err, service.ErrNotOrganizer):
			response.RenderErr(ctx, response.ErrForbidden("only the organizer can update the status"))
		case errors.Is(err, service.ErrInvalidTransition):
			response.RenderErr(ctx, response.ErrConflict(service.ErrInvalidTransition))
		case errors.Is(err, service.ErrNotEnoughParticipants):
			response.RenderErr(ctx, response.ErrConflict(service.ErrNotEnoughParticipants))
		default:
			err = fmt.Errorf("v1.HandleUpdateStatus -> h.svc.UpdateStatus -> %w", err)
			response.RenderErr(ctx, response.ErrInternalServerError(err))
		}

		return
	}

	ctx.JSON(http.StatusOK, tournament)
}

// HandleRegister godoc
// @Summary      Register a participant for a tournament
// @Tags         tournaments
// @Produce      json
// @Param        tournamentID  path      int  true  "tournament ID"
// @Param        request       body      request.RegisterRequest true "request body"
// @Success      201           {object}  domain.Registration
// @Failure      400           {object}  response.Err
// @Failure      401           {object}  response.Err
// @Failure      403           {object}  response.Err
// @Failure      404           {object}  response.Err
// @Failure      409           {object}  response.Err
// @Failure      500           {object}  response.Err
// @Router       /tournaments/{tournamentID}/register [post]
// @Security     BearerAuth
func (h *TournamentHandler) HandleRegister(ctx *gin.Context) {
	user, respErr := getUserFromContext(ctx, h.uSvc)
	if respErr != nil {
		response.RenderErr(ctx, respErr)

		return
	}

	tournamentID, ok := parseTournamentID(ctx)
	if !ok {
		return
	}

	var req request.RegisterRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	tournament, err := h.svc.GetTournament(ctx.Request.Context(), tournamentID)
	if err != nil {
		if errors.Is(err, service.ErrTournamentNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("tournament", "ID", tournamentID))

			return
		}

		err = fmt.Errorf("v1.HandleRegister -> h.svc.GetTournament -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	if !tournament.Public && tournament.OrganizerID != user.ID {
		response.RenderErr(ctx, response.ErrForbidden("tournament is private"))

		return
	}

	participantID, name, reqErr := resolveParticipant(tournament, req, user)
	if reqErr != nil {
		response.RenderErr(ctx, response.ErrBadRequest(reqErr))

		return
	}

	registration, err := h.regSvc.Register(ctx.Request.Context(), domain.Registration{
		TournamentID:  tournamentID,
		ParticipantID: participantID,
		Name:          name,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrTournamentNotFound):
			response.RenderErr(ctx, response.ErrNotFound("tournament", "ID", tournamentID))
		case errors.Is(err, service.ErrTournamentFull):
			response.RenderErr(ctx, response.ErrConflict(service.ErrTournamentFull))
		case errors.Is(err, service.ErrTournamentNotOpen):
			response.RenderErr(ctx, response.ErrForbidden(service.ErrTournamentNotOpen.Error()))
		case errors.Is(err, service.ErrDuplicateRegistration):
			response.RenderErr(ctx, response.ErrConflict(service.ErrDuplicateRegistration))
		default:
			err = fmt.Errorf("v1.HandleRegister -> h.regSvc.Register -> %w", err)
			response.RenderErr(ctx, response.ErrInternalServerError(err))
		}

		return
	}

	ctx.JSON(http.StatusCreated, registration)
}

// HandleWithdraw godoc
// @Summary      Withdraw a participant from a tournament
// @Tags         tournaments
// @Produce      json
// @Param        tournamentID  path      int     true   "tournament ID"
// @Param        participant_id  query   string  false  "participant ID (defaults to the authenticated user)"
// @Success      204
// @Failure      400           {object}  response.Err
// @Failure      401           {object}  response.Err
// @Failure      404           {object}  response.Err
// @Failure      500           {object}  response.Err
// @Router       /tournaments/{tournamentID}/register [delete]
// @Security     BearerAuth
func (h *TournamentHandler) HandleWithdraw(ctx *gin.Context) {
	user, respErr := getUserFromContext(ctx, h.uSvc)
	if respErr != nil {
		response.RenderErr(ctx, respErr)

		return
	}

	tournamentID, ok := parseTournamentID(ctx)
	if !ok {
		return
	}

	participantID := ctx.Query("participant_id")
	if participantID == "" {
		participantID = strconv.FormatUint(uint64(user.ID), 10)
	}

	err := h.regSvc.Withdraw(ctx.Request.Context(), tournamentID, participantID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrTournamentNotFound):
			response.RenderErr(ctx, response.ErrNotFound("tournament", "ID", tournamentID))
		case errors.Is(err, service.ErrRegistrationNotFound):
			response.RenderErr(ctx, response.ErrNotFound("registration", "participant ID", participantID))
		default:
			err = fmt.Errorf("v1.HandleWithdraw -> h.regSvc.Withdraw -> %w", err)
			response.RenderErr(ctx, response.ErrInternalServerError(err))
		}

		return
	}

	ctx.Status(http.StatusNoContent)
}

// HandleListParticipants godoc
// @Summary      List a tournament's participants
// @Tags         tournaments
// @Produce      json
// @Param        tournamentID  path      int  true  "tournament ID"
// @Success      200           {object}  []domain.Registration
// @Failure      400           {object}  response.Err
// @Failure      401           {object}  response.Err
// @Failure      404           {object}  response.Err
// @Failure      500           {object}  response.Err
// @Router       /tournaments/{tournamentID}/participants [get]
// @Security     BearerAuth
func (h *TournamentHandler) HandleListParticipants(ctx *gin.Context) {
	tournamentID, ok := parseTournamentID(ctx)
	if !ok {
		return
	}

	participants, err := h.regSvc.ListParticipants(ctx.Request.Context(), tournamentID)
	if err != nil {
		if errors.Is(err, service.ErrTournamentNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("tournament", "ID", tournamentID))

			return
		}

		err = fmt.Errorf("v1.HandleListParticipants -> h.regSvc.ListParticipants -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.JSON(http.StatusOK, participants)
}

// resolveParticipant picks the ledger identity for a registration. Team
// tournaments register the given team; individual tournaments register
// the authenticated user.
func resolveParticipant(tournament domain.Tournament, req request.RegisterRequest, user domain.User) (string, string, error) {
	if tournament.ParticipantType == domain.ParticipantTeam {
		if req.TeamID == "" {
			return "", "", errors.New("team_id is required for team tournaments")
		}

		name := req.Name
		if name == "" {
			name = req.TeamID
		}

		return req.TeamID, name, nil
	}

	name := req.Name
	if name == "" {
		name = user.Name
	}

	return strconv.FormatUint(uint64(user.ID), 10), name, nil
}

func parseTournamentID(ctx *gin.Context) (uint, bool) {
	tournamentID, err := strconv.ParseUint(ctx.Param("tournamentID"), 10, 64)
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(errors.New("invalid tournament ID")))

		return 0, false
	}

	return uint(tournamentID), true
}
