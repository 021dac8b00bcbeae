package dao

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
)

var ErrTournamentNotFound = errors.New("tournament not found")

type Tournament struct {
	ID uint `gorm:"primaryKey"`

	OrganizerID uint `gorm:"not null;index"`

	Name            string `gorm:"not null"`
	Description     string
	Game            string `gorm:"not null"`
	Format          string `gorm:"not null"`
	ParticipantType string `gorm:"not null"` // "team" or "individual"
	Public          bool   `gorm:"not null;default:true"`

	StartDate time.Time `gorm:"not null"`
	Status    string    `gorm:"not null;index"`

	MinParticipants int `gorm:"not null"`
	MaxParticipants int `gorm:"not null"`

	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

type TournamentDAO struct {
	db *gorm.DB
}

func NewTournamentDAO(db *gorm.DB) *TournamentDAO {
	return &TournamentDAO{
		db: db,
	}
}

func (d *TournamentDAO) Insert(ctx context.Context, tournament Tournament) (Tournament, error) {
	result := d.db.WithContext(ctx).Create(&tournament)
	if result.Error != nil {
		return Tournament{}, result.Error
	}

	return tournament, nil
}

func (d *TournamentDAO) FindByID(ctx context.Context, id uint) (Tournament, error) {
	var tournament Tournament

	result := d.db.WithContext(ctx).First(&tournament, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return Tournament{}, ErrTournamentNotFound
		}

		return Tournament{}, result.Error
	}

	return tournament, nil
}

func (d *TournamentDAO) FindAll(ctx context.Context, publicOnly bool) ([]Tournament, error) {
	var tournaments []Tournament

	query := d.db.WithContext(ctx)
	if publicOnly {
		query = query.Where("public = ?", true)
	}

	result := query.Order("start_date").Find(&tournaments)
	if result.Error != nil {
		return nil, result.Error
	}

	return tournaments, nil
}

func (d *TournamentDAO) FindByOrganizerID(ctx context.Context, organizerID uint) ([]Tournament, error) {
	var tournaments []Tournament

	result := d.db.WithContext(ctx).
		Where("organizer_id = ?", organizerID).
		Order("start_date").
		Find(&tournaments)
	if result.Error != nil {
		return nil, result.Error
	}

	return tournaments, nil
}

func (d *TournamentDAO) Update(ctx context.Context, tournament Tournament) (Tournament, error) {
	result := d.db.WithContext(ctx).Save(&tournament)
	if result.Error != nil {
		return Tournament{}, result.Error
	}

	return tournament, nil
}

// UpdateStatus moves a tournament to status unconditionally. Lifecycle
// checks belong to the service; this is a plain write.
func (d *TournamentDAO) UpdateStatus(ctx context.Context, id uint, status string) error {
	result := d.db.WithContext(ctx).
		Model(&Tournament{}).
		Where("id = ?", id).
		Update("status", status)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return ErrTournamentNotFound
	}

	return nil
}

// UpdateStatusFrom flips status only when the current status matches from,
// which makes the full/registration_open toggles idempotent. A zero
// RowsAffected is not an error; it means someone else already flipped it.
func (d *TournamentDAO) UpdateStatusFrom(ctx context.Context, id uint, from, to string) (bool, error) {
	result := d.db.WithContext(ctx).
		Model(&Tournament{}).
		Where("id = ? AND status = ?", id, from).
		Update("status", to)
	if result.Error != nil {
		return false, result.Error
	}

	return result.RowsAffected > 0, nil
}
