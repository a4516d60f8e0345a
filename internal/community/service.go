package community

import (
	"context"
	"errors"
	"time"

	"github.com/jkz07/transcare/internal/auditlog"
	"github.com/jkz07/transcare/utils"
)

// Service wraps business logic for community events.
type Service struct {
	Repo     *Repository
	AuditSvc auditlog.Service
}

func NewService(r *Repository, auditSvc auditlog.Service) *Service {
	return &Service{Repo: r, AuditSvc: auditSvc}
}

type CreateEventRequest struct {
	Title        string `json:"title" binding:"required"`
	Category     string `json:"category"`
	Modality     string `json:"modality" binding:"required"`
	Date         string `json:"date" binding:"required"`
	Time         string `json:"time"`
	Location     string `json:"location"`
	Organizer    string `json:"organizer"`
	Price        string `json:"price"`
	MaxAttendees int    `json:"max_attendees"`
	Description  string `json:"description"`
}

func validateRequest(req *CreateEventRequest) error {
	switch req.Modality {
	case ModalityPresencial, ModalityOnline, ModalityHibrido:
	default:
		return errors.New("modalidade deve ser presencial, online ou híbrido")
	}
	if _, err := time.Parse("2006-01-02", req.Date); err != nil {
		return errors.New("data inválida, use AAAA-MM-DD")
	}
	if req.Time != "" {
		if _, err := time.Parse("15:04", req.Time); err != nil {
			return errors.New("horário inválido, use HH:MM em formato 24h")
		}
	}
	if req.MaxAttendees < 0 {
		return errors.New("capacidade não pode ser negativa")
	}
	return nil
}

// ===========================
// Create

func (s *Service) CreateEvent(ctx context.Context, req *CreateEventRequest, userID uint, ip string) (*CommunityEvent, error) {
	if err := validateRequest(req); err != nil {
		s.audit(ctx, userID, "COMMUNITY_EVENT_CREATED", map[string]interface{}{
			"title": req.Title,
			"error": err.Error(),
		}, ip, "failure")
		return nil, err
	}

	event := &CommunityEvent{
		Title:        req.Title,
		Category:     req.Category,
		Modality:     req.Modality,
		Date:         req.Date,
		Time:         req.Time,
		Location:     req.Location,
		Organizer:    req.Organizer,
		Price:        req.Price,
		MaxAttendees: req.MaxAttendees,
		Description:  req.Description,
		OwnerID:      userID,
	}
	if err := s.Repo.Create(event); err != nil {
		return nil, err
	}

	s.audit(ctx, userID, "COMMUNITY_EVENT_CREATED", map[string]interface{}{
		"event_id": event.ID,
		"title":    event.Title,
	}, ip, "success")

	utils.PublishDomainEvent(utils.DomainEvent{
		UserID: userID,
		Source: "community",
		Action: "COMMUNITY_EVENT_CREATED",
		Title:  "Novo evento na comunidade",
		Body:   event.Title,
	})

	return event, nil
}

// ===========================
// Read

// ListUpcoming returns events happening today or later.
func (s *Service) ListUpcoming(search string, limit, offset int, now time.Time) ([]CommunityEvent, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	return s.Repo.List(now.Format("2006-01-02"), search, limit, offset)
}

func (s *Service) ListPast(limit int, now time.Time) ([]CommunityEvent, error) {
	if limit <= 0 || limit > 100 {
		limit = 10
	}
	return s.Repo.ListPast(now.Format("2006-01-02"), limit)
}

func (s *Service) GetEvent(id uint, viewerID uint) (*CommunityEvent, error) {
	event, err := s.Repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if viewerID != 0 {
		attending, err := s.Repo.IsAttending(id, viewerID)
		if err != nil {
			return nil, err
		}
		event.Attending = attending
	}
	return event, nil
}

// ===========================
// Update / Delete

func (s *Service) UpdateEvent(ctx context.Context, id uint, req *CreateEventRequest, userID uint, ip string) (*CommunityEvent, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}

	existing, err := s.Repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if existing.OwnerID != userID {
		s.audit(ctx, userID, "COMMUNITY_EVENT_UPDATED", map[string]interface{}{
			"event_id": id,
			"error":    "not owner",
		}, ip, "failure")
		return nil, ErrForbidden
	}

	changes := map[string]interface{}{
		"title":         req.Title,
		"category":      req.Category,
		"modality":      req.Modality,
		"date":          req.Date,
		"time":          req.Time,
		"location":      req.Location,
		"organizer":     req.Organizer,
		"price":         req.Price,
		"max_attendees": req.MaxAttendees,
		"description":   req.Description,
	}
	if err := s.Repo.Update(id, userID, changes); err != nil {
		return nil, err
	}

	s.audit(ctx, userID, "COMMUNITY_EVENT_UPDATED", map[string]interface{}{
		"event_id": id,
	}, ip, "success")

	return s.Repo.GetByID(id)
}

func (s *Service) DeleteEvent(ctx context.Context, id uint, userID uint, ip string) error {
	existing, err := s.Repo.GetByID(id)
	if err != nil {
		return err
	}
	if existing.OwnerID != userID {
		return ErrForbidden
	}

	if err := s.Repo.Delete(id, userID); err != nil {
		return err
	}

	s.audit(ctx, userID, "COMMUNITY_EVENT_DELETED", map[string]interface{}{
		"event_id": id,
		"title":    existing.Title,
	}, ip, "success")

	return nil
}

// ===========================
// Attendance

func (s *Service) Attend(ctx context.Context, eventID, userID uint, ip string) (*CommunityEvent, error) {
	event, err := s.Repo.GetByID(eventID)
	if err != nil {
		return nil, err
	}

	already, err := s.Repo.IsAttending(eventID, userID)
	if err != nil {
		return nil, err
	}
	if !already {
		if event.MaxAttendees > 0 && event.Attendees >= event.MaxAttendees {
			return nil, ErrEventFull
		}
		if err := s.Repo.AddAttendance(eventID, userID); err != nil {
			return nil, err
		}

		s.audit(ctx, userID, "COMMUNITY_EVENT_ATTENDED", map[string]interface{}{
			"event_id": eventID,
		}, ip, "success")

		utils.PublishDomainEvent(utils.DomainEvent{
			UserID: event.OwnerID,
			Source: "community",
			Action: "COMMUNITY_EVENT_ATTENDED",
			Title:  "Nova presença confirmada",
			Body:   "Alguém confirmou presença em " + event.Title,
		})
	}

	return s.GetEvent(eventID, userID)
}

func (s *Service) Unattend(ctx context.Context, eventID, userID uint, ip string) (*CommunityEvent, error) {
	if _, err := s.Repo.GetByID(eventID); err != nil {
		return nil, err
	}

	if err := s.Repo.RemoveAttendance(eventID, userID); err != nil {
		return nil, err
	}

	s.audit(ctx, userID, "COMMUNITY_EVENT_UNATTENDED", map[string]interface{}{
		"event_id": eventID,
	}, ip, "success")

	return s.GetEvent(eventID, userID)
}

func (s *Service) audit(ctx context.Context, userID uint, action string, details map[string]interface{}, ip, status string) {
	if s.AuditSvc == nil {
		return
	}
	_ = s.AuditSvc.LogAction(ctx, &userID, action, details, ip, status)
}
