package agenda

import (
	"context"
	"strings"
	"time"

	"github.com/jkz07/transcare/internal/auditlog"
	"github.com/jkz07/transcare/middleware"
	"github.com/jkz07/transcare/utils"
)

// Service is the server side of the agenda: the same validation and
// ownership rules the Controller applies locally, enforced where the data
// lives. Every mutation re-fetches the owner's listing so the response
// carries the fresh collection (pull-based, no server push).
type Service struct {
	Store    EventStore
	AuditSvc auditlog.Service
}

func NewService(store EventStore, auditSvc auditlog.Service) *Service {
	return &Service{Store: store, AuditSvc: auditSvc}
}

// ListMine returns the caller's events ordered by (date, time).
func (s *Service) ListMine(ctx context.Context, identity middleware.Identity) ([]Event, error) {
	if !identity.IsAuthenticated() {
		return nil, ErrForbidden
	}
	return s.Store.ListByOwner(ctx, identity.UserID)
}

// Get returns one event; agenda entries are private, so only the owner sees
// it. Non-owners get ErrNotFound rather than a hint the id exists.
func (s *Service) Get(ctx context.Context, id uint, identity middleware.Identity) (*Event, error) {
	e, err := s.Store.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if e.OwnerID != identity.UserID {
		return nil, ErrNotFound
	}
	return e, nil
}

// Create validates the draft, stamps the owner from the authenticated
// principal (never from client input) and returns the created event plus the
// refreshed listing.
func (s *Service) Create(ctx context.Context, d Draft, identity middleware.Identity, ip string) (*Event, []Event, error) {
	if !identity.IsAuthenticated() {
		return nil, nil, ErrForbidden
	}

	d, err := ValidateDraft(d)
	if err != nil {
		return nil, nil, err
	}

	e := &Event{
		Title:       d.Title,
		Type:        EventType(d.Type),
		Date:        d.Date,
		Time:        d.Time,
		Description: d.Description,
		OwnerID:     identity.UserID,
	}

	if err := s.Store.Create(ctx, e); err != nil {
		s.audit(ctx, identity, "AGENDA_EVENT_CREATED", map[string]interface{}{
			"title": d.Title, "error": err.Error(),
		}, ip, "failure")
		return nil, nil, err
	}

	s.audit(ctx, identity, "AGENDA_EVENT_CREATED", map[string]interface{}{
		"event_id": e.ID, "title": e.Title, "type": e.Type, "date": e.Date,
	}, ip, "success")

	utils.PublishDomainEvent(utils.DomainEvent{
		UserID: identity.UserID,
		Source: "agenda",
		Action: "created",
		Title:  "Evento adicionado",
		Body:   e.Title + " em " + e.Date + " às " + e.Time,
	})

	listing, err := s.Store.ListByOwner(ctx, identity.UserID)
	if err != nil {
		// the write succeeded; surface the event without the listing
		return e, nil, nil
	}
	return e, listing, nil
}

// Update replaces the mutable fields of an owned event.
func (s *Service) Update(ctx context.Context, id uint, d Draft, identity middleware.Identity, ip string) (*Event, []Event, error) {
	if !identity.IsAuthenticated() {
		return nil, nil, ErrForbidden
	}

	d, err := ValidateDraft(d)
	if err != nil {
		return nil, nil, err
	}

	e, err := s.Store.Update(ctx, id, identity.UserID, d)
	if err != nil {
		s.audit(ctx, identity, "AGENDA_EVENT_UPDATED", map[string]interface{}{
			"event_id": id, "error": err.Error(),
		}, ip, "failure")
		return nil, nil, err
	}

	s.audit(ctx, identity, "AGENDA_EVENT_UPDATED", map[string]interface{}{
		"event_id": e.ID, "title": e.Title, "type": e.Type, "date": e.Date,
	}, ip, "success")

	utils.PublishDomainEvent(utils.DomainEvent{
		UserID: identity.UserID,
		Source: "agenda",
		Action: "updated",
		Title:  "Evento atualizado",
		Body:   e.Title + " em " + e.Date + " às " + e.Time,
	})

	listing, err := s.Store.ListByOwner(ctx, identity.UserID)
	if err != nil {
		return e, nil, nil
	}
	return e, listing, nil
}

// Delete removes an owned event. Deletion is immediate and irreversible.
func (s *Service) Delete(ctx context.Context, id uint, identity middleware.Identity, ip string) ([]Event, error) {
	if !identity.IsAuthenticated() {
		return nil, ErrForbidden
	}

	if err := s.Store.Delete(ctx, id, identity.UserID); err != nil {
		s.audit(ctx, identity, "AGENDA_EVENT_DELETED", map[string]interface{}{
			"event_id": id, "error": err.Error(),
		}, ip, "failure")
		return nil, err
	}

	s.audit(ctx, identity, "AGENDA_EVENT_DELETED", map[string]interface{}{
		"event_id": id,
	}, ip, "success")

	utils.PublishDomainEvent(utils.DomainEvent{
		UserID: identity.UserID,
		Source: "agenda",
		Action: "deleted",
		Title:  "Evento removido",
	})

	return s.Store.ListByOwner(ctx, identity.UserID)
}

// Calendar returns the month-grid highlight index: for each date in the
// given "YYYY-MM" month, the categories present that day.
func (s *Service) Calendar(ctx context.Context, identity middleware.Identity, month string) (map[string][]EventType, error) {
	events, err := s.Store.ListByOwner(ctx, identity.UserID)
	if err != nil {
		return nil, err
	}

	index := TypesByDate(events)
	if month == "" {
		return index, nil
	}
	filtered := make(map[string][]EventType)
	for date, types := range index {
		if strings.HasPrefix(date, month+"-") {
			filtered[date] = types
		}
	}
	return filtered, nil
}

// Day returns the caller's events on one calendar date.
func (s *Service) Day(ctx context.Context, identity middleware.Identity, date string) ([]Event, error) {
	events, err := s.Store.ListByOwner(ctx, identity.UserID)
	if err != nil {
		return nil, err
	}
	return EventsOn(events, date), nil
}

// UpcomingEvents returns the caller's events strictly after now.
func (s *Service) UpcomingEvents(ctx context.Context, identity middleware.Identity, now time.Time, limit int) ([]Event, error) {
	events, err := s.Store.ListByOwner(ctx, identity.UserID)
	if err != nil {
		return nil, err
	}
	return Upcoming(events, now, limit), nil
}

// PastEvents returns the caller's events strictly before now, newest first.
func (s *Service) PastEvents(ctx context.Context, identity middleware.Identity, now time.Time, limit int) ([]Event, error) {
	events, err := s.Store.ListByOwner(ctx, identity.UserID)
	if err != nil {
		return nil, err
	}
	return Past(events, now, limit), nil
}

func (s *Service) audit(ctx context.Context, identity middleware.Identity, action string, details map[string]interface{}, ip, status string) {
	if s.AuditSvc == nil {
		return
	}
	uid := identity.UserID
	_ = s.AuditSvc.LogAction(ctx, &uid, action, details, ip, status)
}
