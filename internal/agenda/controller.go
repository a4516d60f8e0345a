package agenda

import (
	"context"
	"errors"
	"time"

	"github.com/jkz07/transcare/middleware"
)

// State is the top-level lifecycle of an agenda session.
type State int

const (
	StateIdle State = iota
	StateLoading
	StateLoaded
	StateSubmitting
	StateError
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateLoading:
		return "loading"
	case StateLoaded:
		return "loaded"
	case StateSubmitting:
		return "submitting"
	case StateError:
		return "error"
	}
	return "unknown"
}

// DefaultRequestTimeout bounds each store call; no response within it is
// treated as the store being unavailable.
const DefaultRequestTimeout = 10 * time.Second

// Controller is the session view-model for one principal's agenda. It owns
// the in-memory event collection, the selected date and the active category
// filter, and drives all mutations through the ownership gate before any
// store call is made.
//
// The collection is only ever replaced wholesale after a successful store
// call, never patched in place, so a single cooperative session needs no
// locking. Errors are recoverable: the controller parks in StateError
// holding its last good collection until Acknowledge returns it to
// StateLoaded.
type Controller struct {
	store    EventStore
	identity middleware.Identity
	timeout  time.Duration

	state   State
	lastErr error

	events       []Event
	selectedDate string
	activeFilter EventType // "" selects all categories
}

// NewController builds an idle controller for the given principal. The
// identity is injected at construction and read-only thereafter.
func NewController(store EventStore, identity middleware.Identity) *Controller {
	return &Controller{
		store:    store,
		identity: identity,
		timeout:  DefaultRequestTimeout,
		state:    StateIdle,
	}
}

func (c *Controller) State() State    { return c.state }
func (c *Controller) LastError() error { return c.lastErr }

// Events returns the current collection (last good one while in StateError).
func (c *Controller) Events() []Event { return c.events }

func (c *Controller) callCtx(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, c.timeout)
}

// mapTimeout folds deadline errors into the unavailable bucket.
func mapTimeout(err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return ErrRemoteUnavailable
	}
	return err
}

// Refresh loads the collection from the store. On failure the controller
// enters StateError and keeps whatever collection it last had (possibly
// empty) instead of crashing the view.
func (c *Controller) Refresh(ctx context.Context) error {
	if c.state == StateLoading || c.state == StateSubmitting {
		return nil // a call is already in flight
	}
	c.state = StateLoading

	cctx, cancel := c.callCtx(ctx)
	defer cancel()

	events, err := c.store.List(cctx)
	if err != nil {
		c.fail(mapTimeout(err))
		return c.lastErr
	}

	c.events = events
	c.state = StateLoaded
	c.lastErr = nil
	return nil
}

// Select changes the highlighted calendar date. A derived view parameter
// only: no state transition, no network.
func (c *Controller) Select(date string) {
	c.selectedDate = date
}

// Filter changes the active category filter. Derived view parameter only.
func (c *Controller) Filter(t EventType) {
	c.activeFilter = t
}

func (c *Controller) SelectedDate() string    { return c.selectedDate }
func (c *Controller) ActiveFilter() EventType { return c.activeFilter }

// Visible applies selectedDate and activeFilter to the collection.
func (c *Controller) Visible() []Event {
	events := c.events
	if c.selectedDate != "" {
		events = EventsOn(events, c.selectedDate)
	}
	if c.activeFilter == "" {
		return events
	}
	var out []Event
	for _, e := range events {
		if ParseEventType(string(e.Type)) == c.activeFilter {
			out = append(out, e)
		}
	}
	return out
}

// CalendarIndex recomputes the date → categories highlight mapping.
func (c *Controller) CalendarIndex() map[string][]EventType {
	return TypesByDate(c.events)
}

// UpcomingEvents lists the next events from the current collection.
func (c *Controller) UpcomingEvents(now time.Time, limit int) []Event {
	return Upcoming(c.events, now, limit)
}

// PastEvents lists the most recent finished events.
func (c *Controller) PastEvents(now time.Time, limit int) []Event {
	return Past(c.events, now, limit)
}

// SubmitCreate validates the draft and creates the event as the session
// principal. Validation failures surface through StateError without any
// network call.
func (c *Controller) SubmitCreate(ctx context.Context, d Draft) error {
	if c.state != StateLoaded {
		return c.notReady()
	}
	if !c.identity.IsAuthenticated() {
		return ErrForbidden
	}

	c.state = StateSubmitting

	d, err := ValidateDraft(d)
	if err != nil {
		c.fail(err)
		return err
	}

	cctx, cancel := c.callCtx(ctx)
	defer cancel()

	e := &Event{
		Title:       d.Title,
		Type:        EventType(d.Type),
		Date:        d.Date,
		Time:        d.Time,
		Description: d.Description,
		OwnerID:     c.identity.UserID,
	}
	if err := c.store.Create(cctx, e); err != nil {
		c.fail(mapTimeout(err))
		return c.lastErr
	}

	return c.reload(ctx)
}

// SubmitEdit updates an owned event. When the session principal is not the
// owner the call is refused locally, with no store call and no state
// transition: the affordance should never have been offered.
func (c *Controller) SubmitEdit(ctx context.Context, id uint, d Draft) error {
	if c.state != StateLoaded {
		return c.notReady()
	}
	if !c.ownsLocally(id) {
		return ErrForbidden
	}

	c.state = StateSubmitting

	d, err := ValidateDraft(d)
	if err != nil {
		c.fail(err)
		return err
	}

	cctx, cancel := c.callCtx(ctx)
	defer cancel()

	if _, err := c.store.Update(cctx, id, c.identity.UserID, d); err != nil {
		c.fail(mapTimeout(err))
		return c.lastErr
	}

	return c.reload(ctx)
}

// SubmitDelete removes an owned event, under the same local ownership gate
// as SubmitEdit.
func (c *Controller) SubmitDelete(ctx context.Context, id uint) error {
	if c.state != StateLoaded {
		return c.notReady()
	}
	if !c.ownsLocally(id) {
		return ErrForbidden
	}

	c.state = StateSubmitting

	cctx, cancel := c.callCtx(ctx)
	defer cancel()

	if err := c.store.Delete(cctx, id, c.identity.UserID); err != nil {
		c.fail(mapTimeout(err))
		return c.lastErr
	}

	return c.reload(ctx)
}

// Acknowledge dismisses a surfaced error and returns to the last good
// Loaded state. A no-op outside StateError.
func (c *Controller) Acknowledge() {
	if c.state == StateError {
		c.state = StateLoaded
		c.lastErr = nil
	}
}

// ownsLocally checks the ownership invariant against the in-memory
// collection. Unknown ids fall through to the store call, which will answer
// NotFound or Forbidden authoritatively.
func (c *Controller) ownsLocally(id uint) bool {
	if !c.identity.IsAuthenticated() {
		return false
	}
	for _, e := range c.events {
		if e.ID == id {
			return e.OwnerID == c.identity.UserID
		}
	}
	return true
}

// reload re-fetches the collection after a successful mutation.
func (c *Controller) reload(ctx context.Context) error {
	cctx, cancel := c.callCtx(ctx)
	defer cancel()

	events, err := c.store.List(cctx)
	if err != nil {
		c.fail(mapTimeout(err))
		return c.lastErr
	}
	c.events = events
	c.state = StateLoaded
	c.lastErr = nil
	return nil
}

func (c *Controller) fail(err error) {
	c.state = StateError
	c.lastErr = err
}

var errNotLoaded = errors.New("agenda not loaded")

func (c *Controller) notReady() error {
	if c.state == StateError {
		return c.lastErr
	}
	return errNotLoaded
}
