package agenda

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
)

// EventStore is the remote event store contract. The gorm Repository is the
// production implementation; the Controller and Service only ever see this
// interface.
type EventStore interface {
	// List returns every event ordered by (date asc, time asc).
	List(ctx context.Context) ([]Event, error)
	// ListByOwner returns one principal's events in the same order.
	ListByOwner(ctx context.Context, ownerID uint) ([]Event, error)
	GetByID(ctx context.Context, id uint) (*Event, error)
	// Create persists a new event and fills in its assigned id.
	Create(ctx context.Context, e *Event) error
	// Update replaces the mutable fields of an event. It fails with
	// ErrNotFound when id does not exist and ErrForbidden when
	// requestingUserID is not the stored owner; the ownership check is part
	// of the store mutation itself, not just a courtesy in the caller.
	Update(ctx context.Context, id uint, requestingUserID uint, d Draft) (*Event, error)
	// Delete removes an event under the same ownership rule as Update.
	Delete(ctx context.Context, id uint, requestingUserID uint) error
}

type Repository struct {
	DB *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{DB: db}
}

// storeErr maps driver failures onto the recoverable taxonomy.
func storeErr(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return fmt.Errorf("%w: %v", ErrRemoteUnavailable, err)
}

func (r *Repository) List(ctx context.Context) ([]Event, error) {
	var events []Event
	err := r.DB.WithContext(ctx).
		Order("date ASC, time ASC").
		Find(&events).Error
	if err != nil {
		return nil, storeErr(err)
	}
	return events, nil
}

func (r *Repository) ListByOwner(ctx context.Context, ownerID uint) ([]Event, error) {
	var events []Event
	err := r.DB.WithContext(ctx).
		Where("owner_id = ?", ownerID).
		Order("date ASC, time ASC").
		Find(&events).Error
	if err != nil {
		return nil, storeErr(err)
	}
	return events, nil
}

func (r *Repository) GetByID(ctx context.Context, id uint) (*Event, error) {
	var e Event
	if err := r.DB.WithContext(ctx).First(&e, id).Error; err != nil {
		return nil, storeErr(err)
	}
	return &e, nil
}

func (r *Repository) Create(ctx context.Context, e *Event) error {
	if err := r.DB.WithContext(ctx).Create(e).Error; err != nil {
		return storeErr(err)
	}
	return nil
}

func (r *Repository) Update(ctx context.Context, id uint, requestingUserID uint, d Draft) (*Event, error) {
	existing, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if existing.OwnerID != requestingUserID {
		return nil, ErrForbidden
	}

	// owner_id in the WHERE clause makes the store the authority on
	// ownership even if the check above raced with another session
	res := r.DB.WithContext(ctx).
		Model(&Event{}).
		Where("id = ? AND owner_id = ?", id, requestingUserID).
		Updates(map[string]interface{}{
			"title":       d.Title,
			"type":        d.Type,
			"date":        d.Date,
			"time":        d.Time,
			"description": d.Description,
		})
	if res.Error != nil {
		return nil, storeErr(res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, ErrNotFound
	}

	return r.GetByID(ctx, id)
}

func (r *Repository) Delete(ctx context.Context, id uint, requestingUserID uint) error {
	existing, err := r.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if existing.OwnerID != requestingUserID {
		return ErrForbidden
	}

	res := r.DB.WithContext(ctx).
		Where("id = ? AND owner_id = ?", id, requestingUserID).
		Delete(&Event{})
	if res.Error != nil {
		return storeErr(res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
