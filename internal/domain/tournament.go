package domain

import "time"

type TournamentStatus string

const (
	StatusDraft              TournamentStatus = "draft"
	StatusRegistrationOpen   TournamentStatus = "registration_open"
	StatusFull               TournamentStatus = "full"
	StatusRegistrationClosed TournamentStatus = "registration_closed"
	StatusInProgress         TournamentStatus = "in_progress"
	StatusCompleted          TournamentStatus = "completed"
	StatusCancelled          TournamentStatus = "cancelled"
)

// transitions holds the allowed lifecycle moves for each status.
// Terminal statuses (completed, cancelled) have no entry.
var transitions = map[TournamentStatus][]TournamentStatus{
	StatusDraft:              {StatusRegistrationOpen, StatusCancelled},
	StatusRegistrationOpen:   {StatusFull, StatusRegistrationClosed, StatusCancelled},
	StatusFull:               {StatusRegistrationOpen, StatusRegistrationClosed, StatusInProgress, StatusCancelled},
	StatusRegistrationClosed: {StatusInProgress, StatusCancelled},
	StatusInProgress:         {StatusCompleted, StatusCancelled},
}

func (s TournamentStatus) IsValid() bool {
	switch s {
	case StatusDraft, StatusRegistrationOpen, StatusFull,
		StatusRegistrationClosed, StatusInProgress, StatusCompleted, StatusCancelled:
		return true
	}

	return false
}

// CanTransitionTo reports whether the lifecycle allows moving from s to target.
func (s TournamentStatus) CanTransitionTo(target TournamentStatus) bool {
	for _, allowed := range transitions[s] {
		if allowed == target {
			return true
		}
	}

	return false
}

// AcceptsRegistrations reports whether new registrations may be admitted.
// Only registration_open accepts; full does not, even though seats may
// reopen after a withdrawal.
func (s TournamentStatus) AcceptsRegistrations() bool {
	return s == StatusRegistrationOpen
}

type ParticipantType string

const (
	ParticipantTeam       ParticipantType = "team"
	ParticipantIndividual ParticipantType = "individual"
)

type Tournament struct {
	ID              uint             `json:"id"`
	OrganizerID     uint             `json:"organizer_id"`
	Name            string           `json:"name"`
	Description     string           `json:"description"`
	Game            string           `json:"game"`
	Format          string           `json:"format"`
	ParticipantType ParticipantType  `json:"participant_type"`
	Public          bool             `json:"public"`
	StartDate       time.Time        `json:"start_date"`
	Status          TournamentStatus `json:"status"`
	MinParticipants int              `json:"min_participants"`
	MaxParticipants int              `json:"max_participants"`
	CurrentCount    int              `json:"current_participants"`
	CreatedAt       time.Time        `json:"created_at"`
	UpdatedAt       time.Time        `json:"updated_at"`
}
