package notification

import (
	"github.com/jkz07/transcare/utils"
)

type Service interface {
	CreateFromDomainEvent(ev utils.DomainEvent) error
	List(userID uint, limit int) ([]InAppNotification, int64, error)
	MarkRead(id, userID uint) error
	MarkAllRead(userID uint) error
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

// CreateFromDomainEvent persists a bell notification for the user a domain
// event addresses. Events without a recipient are dropped.
func (s *service) CreateFromDomainEvent(ev utils.DomainEvent) error {
	if ev.UserID == 0 || ev.Title == "" {
		return nil
	}

	category := ev.Source
	if category == "" {
		category = "system"
	}

	return s.repo.Create(&InAppNotification{
		UserID:   ev.UserID,
		Title:    ev.Title,
		Message:  ev.Body,
		Category: category,
	})
}

func (s *service) List(userID uint, limit int) ([]InAppNotification, int64, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	items, err := s.repo.ListByUser(userID, limit)
	if err != nil {
		return nil, 0, err
	}
	unread, err := s.repo.CountUnread(userID)
	if err != nil {
		return nil, 0, err
	}
	return items, unread, nil
}

func (s *service) MarkRead(id, userID uint) error {
	return s.repo.MarkRead(id, userID)
}

func (s *service) MarkAllRead(userID uint) error {
	return s.repo.MarkAllRead(userID)
}
