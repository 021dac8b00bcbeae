package request

import (
	"errors"
	"time"

	validation "github.com/go-ozzo/ozzo-validation"
)

var (
	errOddMaxParticipants = errors.New("max_participants must be an even number")
	errMinAboveMax        = errors.New("min_participants cannot exceed max_participants")
)

type CreateTournamentRequest struct {
	Name            string    `json:"name"`
	Description     string    `json:"description"`
	Game            string    `json:"game"`
	Format          string    `json:"format"`
	ParticipantType string    `json:"participant_type"`
	Public          *bool     `json:"public"`
	StartDate       time.Time `json:"start_date"`
	MinParticipants int       `json:"min_participants"`
	MaxParticipants int       `json:"max_participants"`
}

func (req *CreateTournamentRequest) Validate() error {
	err := validation.ValidateStruct(
		req,
		validation.Field(&req.Name, validation.Required, validation.Length(2, 100)),
		validation.Field(&req.Description, validation.Length(0, 1000)),
		validation.Field(&req.Game, validation.Required),
		validation.Field(&req.Format, validation.Required, validation.In("single_elimination", "double_elimination", "round_robin")),
		validation.Field(&req.ParticipantType, validation.Required, validation.In("team", "individual")),
		validation.Field(&req.StartDate, validation.Required),
		validation.Field(&req.MinParticipants, validation.Required, validation.Min(2), validation.Max(16)),
		validation.Field(&req.MaxParticipants, validation.Required, validation.Min(2), validation.Max(16)),
	)
	if err != nil {
		return err
	}

	if req.MaxParticipants%2 != 0 {
		return errOddMaxParticipants
	}

	if req.MinParticipants > req.MaxParticipants {
		return errMinAboveMax
	}

	return nil
}

type UpdateTournamentRequest struct {
	Name            string    `json:"name"`
	Description     string    `json:"description"`
	Game            string    `json:"game"`
	Format          string    `json:"format"`
	ParticipantType string    `json:"participant_type"`
	Public          *bool     `json:"public"`
	StartDate       time.Time `json:"start_date"`
	MinParticipants int       `json:"min_participants"`
	MaxParticipants int       `json:"max_participants"`
}

func (req *UpdateTournamentRequest) Validate() error {
	create := CreateTournamentRequest(*req)

	return create.Validate()
}

type UpdateStatusRequest struct {
	Status string `json:"status"`
}

func (req *UpdateStatusRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Status, validation.Required, validation.In(
			"draft", "registration_open", "full", "registration_closed",
			"in_progress", "completed", "cancelled",
		)),
	)
}

type RegisterRequest struct {
	TeamID string `json:"team_id"`
	Name   string `json:"name"`
}

func (req *RegisterRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Name, validation.Length(0, 100)),
	)
}
