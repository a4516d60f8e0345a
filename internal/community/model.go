package community

import (
	"errors"
	"time"
)

// Modality says how people attend.
const (
	ModalityPresencial = "presencial"
	ModalityOnline     = "online"
	ModalityHibrido    = "híbrido"
)

// CommunityEvent is a public gathering announced to the whole platform, as
// opposed to the private appointments of a personal agenda.
type CommunityEvent struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	Title    string `gorm:"type:varchar(200);not null" json:"title"`
	Category string `gorm:"type:varchar(60)" json:"category"`
	Modality string `gorm:"type:varchar(20);not null" json:"modality"`

	Date string `gorm:"type:varchar(10);not null;index" json:"date"` // YYYY-MM-DD
	Time string `gorm:"type:varchar(5)" json:"time"`                 // HH:MM

	Location     string `gorm:"type:varchar(200)" json:"location"`
	Organizer    string `gorm:"type:varchar(120)" json:"organizer"`
	Price        string `gorm:"type:varchar(40)" json:"price"` // "Gratuito", "R$ 10,00"
	MaxAttendees int    `json:"max_attendees"`
	Description  string `gorm:"type:text" json:"description"`

	OwnerID uint `gorm:"not null;index" json:"owner_id"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Filled from the attendances table, never stored.
	Attendees int  `gorm:"-" json:"attendees"`
	Attending bool `gorm:"-" json:"attending"`
}

func (CommunityEvent) TableName() string { return "community_events" }

// Attendance records one person confirming presence at one event.
type Attendance struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	EventID   uint      `gorm:"not null;uniqueIndex:idx_attendance_event_user" json:"event_id"`
	UserID    uint      `gorm:"not null;uniqueIndex:idx_attendance_event_user" json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
}

func (Attendance) TableName() string { return "attendances" }

var (
	ErrNotFound  = errors.New("evento não encontrado")
	ErrForbidden = errors.New("apenas quem criou o evento pode alterá-lo")
	ErrEventFull = errors.New("evento lotado")
)
