package dao

import (
	"context"
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
)

var (
	ErrDuplicateRegistration = errors.New("participant already registered")
	ErrRegistrationNotFound  = errors.New("registration not found")
)

type Registration struct {
	ID uint `gorm:"primaryKey"`

	TournamentID  uint   `gorm:"not null;uniqueIndex:idx_tournament_participant"`
	ParticipantID string `gorm:"not null;uniqueIndex:idx_tournament_participant"`
	Name          string `gorm:"not null"`

	CreatedAt time.Time `gorm:"not null"`
}

type RegistrationDAO struct {
	db *gorm.DB
}

func NewRegistrationDAO(db *gorm.DB) *RegistrationDAO {
	return &RegistrationDAO{
		db: db,
	}
}

func (d *RegistrationDAO) Insert(ctx context.Context, registration Registration) (Registration, error) {
	result := d.db.WithContext(ctx).Create(&registration)
	if result.Error != nil {
		var err *pgconn.PgError
		if errors.As(result.Error, &err) &&
			err.Code == pgerrcode.UniqueViolation &&
			strings.Contains(err.Message, `"idx_tournament_participant"`) {
			return Registration{}, ErrDuplicateRegistration
		}

		return Registration{}, result.Error
	}

	return registration, nil
}

func (d *RegistrationDAO) FindByTournamentID(ctx context.Context, tournamentID uint) ([]Registration, error) {
	var registrations []Registration

	result := d.db.WithContext(ctx).
		Where("tournament_id = ?", tournamentID).
		Order("created_at").
		Find(&registrations)
	if result.Error != nil {
		return nil, result.Error
	}

	return registrations, nil
}

func (d *RegistrationDAO) FindByParticipant(ctx context.Context, tournamentID uint, participantID string) (Registration, error) {
	var registration Registration

	result := d.db.WithContext(ctx).
		First(&registration, "tournament_id = ? AND participant_id = ?", tournamentID, participantID)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return Registration{}, ErrRegistrationNotFound
		}

		return Registration{}, result.Error
	}

	return registration, nil
}

func (d *RegistrationDAO) CountByTournamentID(ctx context.Context, tournamentID uint) (int, error) {
	var count int64

	result := d.db.WithContext(ctx).
		Model(&Registration{}).
		Where("tournament_id = ?", tournamentID).
		Count(&count)
	if result.Error != nil {
		return 0, result.Error
	}

	return int(count), nil
}

func (d *RegistrationDAO) Delete(ctx context.Context, tournamentID uint, participantID string) error {
	result := d.db.WithContext(ctx).
		Where("tournament_id = ? AND participant_id = ?", tournamentID, participantID).
		Delete(&Registration{})
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return ErrRegistrationNotFound
	}

	return nil
}
