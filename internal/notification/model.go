package notification

import "time"

// InAppNotification is a per-user bell notification, produced from the
// domain event stream.
type InAppNotification struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;index" json:"user_id"`
	Title     string    `gorm:"size:150;not null" json:"title"`
	Message   string    `gorm:"type:text;not null" json:"message"`
	Category  string    `gorm:"size:30;not null" json:"category"` // agenda, community, auth, system
	IsRead    bool      `gorm:"default:false" json:"is_read"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (InAppNotification) TableName() string { return "in_app_notifications" }
