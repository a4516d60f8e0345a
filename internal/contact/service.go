package contact

import (
	"log"

	"gorm.io/gorm"

	"github.com/jkz07/transcare/utils"
)

type Service struct {
	db *gorm.DB
}

func NewService(db *gorm.DB) *Service {
	return &Service{db: db}
}

type SubmitRequest struct {
	Name    string `json:"name" binding:"required"`
	Email   string `json:"email" binding:"required,email"`
	Subject string `json:"subject" binding:"required"`
	Message string `json:"message" binding:"required"`
}

// Submit persists the message and forwards it to the support inbox. The
// email is best-effort: delivery problems only hit the logs.
func (s *Service) Submit(req SubmitRequest) (*ContactMessage, error) {
	msg := &ContactMessage{
		Name:    req.Name,
		Email:   req.Email,
		Subject: req.Subject,
		Message: req.Message,
	}
	if err := s.db.Create(msg).Error; err != nil {
		return nil, err
	}

	go func() {
		if err := utils.SendContactEmail(msg.Name, msg.Email, msg.Subject, msg.Message); err != nil {
			log.Printf("⚠️ Failed to forward contact message %d: %v", msg.ID, err)
		}
	}()

	return msg, nil
}
