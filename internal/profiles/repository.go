package profiles

import (
	"errors"
	"time"

	"gorm.io/gorm"
)

type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Get returns the remembered profile for a host/mode pair, or nil if
// none was saved yet.
func (r *Repository) Get(host string, mode string) (*ModeProfile, error) {
	profile := &ModeProfile{}

	err := r.db.Where("host = ? AND mode = ?", host, mode).First(profile).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return profile, nil
}

// Save upserts the profile for its host/mode pair.
func (r *Repository) Save(profile *ModeProfile) error {
	existing, err := r.Get(profile.Host, profile.Mode)

	if err != nil {
		return err
	}

	profile.UpdatedAt = time.Now()

	if existing == nil {
		return r.db.Create(profile).Error
	}

	profile.ID = existing.ID

	return r.db.Save(profile).Error
}

func (r *Repository) GetAll() ([]ModeProfile, error) {
	var all []ModeProfile

	err := r.db.Order("host, mode").Find(&all).Error

	if err != nil {
		return nil, err
	}

	return all, nil
}

func (r *Repository) DeleteAll() error {
	return r.db.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&ModeProfile{}).Error
}
