package domain

import "time"

// Registration is one admitted entry in a tournament's ledger.
// ParticipantID is the team id for team tournaments and the user id for
// individual ones, so a single ledger covers both participant types.
type Registration struct {
	ID            uint      `json:"id"`
	TournamentID  uint      `json:"tournament_id"`
	ParticipantID string    `json:"participant_id"`
	Name          string    `json:"name"`
	RegisteredAt  time.Time `json:"registered_at"`
}
