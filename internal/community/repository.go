package community

import (
	"errors"

	"gorm.io/gorm"
)

type Repository struct {
	DB *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{DB: db}
}

func (r *Repository) Create(e *CommunityEvent) error {
	return r.DB.Create(e).Error
}

func (r *Repository) GetByID(id uint) (*CommunityEvent, error) {
	var e CommunityEvent
	if err := r.DB.First(&e, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	var count int64
	if err := r.DB.Model(&Attendance{}).Where("event_id = ?", id).Count(&count).Error; err != nil {
		return nil, err
	}
	e.Attendees = int(count)
	return &e, nil
}

// List returns events on or after the cutoff date, soonest first, with
// optional case-insensitive search over title, description and location.
func (r *Repository) List(cutoffDate string, search string, limit, offset int) ([]CommunityEvent, error) {
	var events []CommunityEvent

	query := r.DB.Where("date >= ?", cutoffDate)
	if search != "" {
		ilike := "%" + search + "%"
		query = query.Where("title ILIKE ? OR description ILIKE ? OR location ILIKE ?", ilike, ilike, ilike)
	}

	err := query.
		Order("date ASC, time ASC").
		Limit(limit).
		Offset(offset).
		Find(&events).Error
	if err != nil {
		return nil, err
	}

	return r.fillAttendeeCounts(events)
}

// ListPast returns events strictly before the cutoff date, most recent first.
func (r *Repository) ListPast(cutoffDate string, limit int) ([]CommunityEvent, error) {
	var events []CommunityEvent
	err := r.DB.
		Where("date < ?", cutoffDate).
		Order("date DESC, time DESC").
		Limit(limit).
		Find(&events).Error
	if err != nil {
		return nil, err
	}
	return r.fillAttendeeCounts(events)
}

// Update only touches rows the caller owns.
func (r *Repository) Update(id, ownerID uint, changes map[string]interface{}) error {
	res := r.DB.Model(&CommunityEvent{}).
		Where("id = ? AND owner_id = ?", id, ownerID).
		Updates(changes)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *Repository) Delete(id, ownerID uint) error {
	res := r.DB.Where("id = ? AND owner_id = ?", id, ownerID).Delete(&CommunityEvent{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	// Drop attendance rows with the event.
	return r.DB.Where("event_id = ?", id).Delete(&Attendance{}).Error
}

func (r *Repository) CountAttendees(eventID uint) (int, error) {
	var count int64
	err := r.DB.Model(&Attendance{}).Where("event_id = ?", eventID).Count(&count).Error
	return int(count), err
}

func (r *Repository) IsAttending(eventID, userID uint) (bool, error) {
	var count int64
	err := r.DB.Model(&Attendance{}).
		Where("event_id = ? AND user_id = ?", eventID, userID).
		Count(&count).Error
	return count > 0, err
}

func (r *Repository) AddAttendance(eventID, userID uint) error {
	return r.DB.Create(&Attendance{EventID: eventID, UserID: userID}).Error
}

func (r *Repository) RemoveAttendance(eventID, userID uint) error {
	return r.DB.Where("event_id = ? AND user_id = ?", eventID, userID).Delete(&Attendance{}).Error
}

func (r *Repository) fillAttendeeCounts(events []CommunityEvent) ([]CommunityEvent, error) {
	for i := range events {
		count, err := r.CountAttendees(events[i].ID)
		if err != nil {
			return nil, err
		}
		events[i].Attendees = count
	}
	return events, nil
}
