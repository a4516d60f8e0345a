package contact

import "time"

// ContactMessage is a message sent through the public contact form. Stored
// before the email goes out so nothing is lost if SMTP is down.
type ContactMessage struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"type:varchar(120);not null" json:"name"`
	Email     string    `gorm:"type:varchar(255);not null" json:"email"`
	Subject   string    `gorm:"type:varchar(200);not null" json:"subject"`
	Message   string    `gorm:"type:text;not null" json:"message"`
	CreatedAt time.Time `json:"created_at"`
}

func (ContactMessage) TableName() string { return "contact_messages" }
