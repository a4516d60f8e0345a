package userprofile

import "gorm.io/gorm"

type Repository interface {
	GetByUserID(userID uint) (*Profile, error)
	Save(profile *Profile) error
}

type repository struct{ db *gorm.DB }

func NewRepository(db *gorm.DB) Repository {
	return &repository{db}
}

func (r *repository) GetByUserID(userID uint) (*Profile, error) {
	var p Profile
	err := r.db.Where("user_id = ?", userID).First(&p).Error
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// Save upserts: a profile row is created lazily the first time someone edits
// their profile.
func (r *repository) Save(profile *Profile) error {
	return r.db.Save(profile).Error
}
