package notification

import "gorm.io/gorm"

type Repository interface {
	Create(n *InAppNotification) error
	ListByUser(userID uint, limit int) ([]InAppNotification, error)
	CountUnread(userID uint) (int64, error)
	MarkRead(id, userID uint) error
	MarkAllRead(userID uint) error
}

type repository struct{ db *gorm.DB }

func NewRepository(db *gorm.DB) Repository {
	return &repository{db}
}

func (r *repository) Create(n *InAppNotification) error {
	return r.db.Create(n).Error
}

func (r *repository) ListByUser(userID uint, limit int) ([]InAppNotification, error) {
	var items []InAppNotification
	err := r.db.
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).
		Find(&items).Error
	return items, err
}

func (r *repository) CountUnread(userID uint) (int64, error) {
	var count int64
	err := r.db.Model(&InAppNotification{}).
		Where("user_id = ? AND is_read = FALSE", userID).
		Count(&count).Error
	return count, err
}

// MarkRead only touches the caller's own rows.
func (r *repository) MarkRead(id, userID uint) error {
	res := r.db.Model(&InAppNotification{}).
		Where("id = ? AND user_id = ?", id, userID).
		Update("is_read", true)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *repository) MarkAllRead(userID uint) error {
	return r.db.Model(&InAppNotification{}).
		Where("user_id = ? AND is_read = FALSE", userID).
		Update("is_read", true).Error
}
