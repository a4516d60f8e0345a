package agenda

import (
	"context"
	"sort"
)

// fakeStore is an in-memory EventStore used by service and controller tests.
type fakeStore struct {
	events  map[uint]Event
	nextID  uint
	listErr error
	calls   map[string]int
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		events: make(map[uint]Event),
		nextID: 1,
		calls:  make(map[string]int),
	}
}

func (f *fakeStore) ordered() []Event {
	out := make([]Event, 0, len(f.events))
	for _, e := range f.events {
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool {
		si, sj := stamp(out[i]), stamp(out[j])
		if si != sj {
			return si < sj
		}
		return out[i].ID < out[j].ID
	})
	return out
}

func (f *fakeStore) List(ctx context.Context) ([]Event, error) {
	f.calls["List"]++
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.ordered(), nil
}

func (f *fakeStore) ListByOwner(ctx context.Context, ownerID uint) ([]Event, error) {
	f.calls["ListByOwner"]++
	if f.listErr != nil {
		return nil, f.listErr
	}
	var out []Event
	for _, e := range f.ordered() {
		if e.OwnerID == ownerID {
			out = append(out, e)
		}
	}
	return out, nil
}

func (f *fakeStore) GetByID(ctx context.Context, id uint) (*Event, error) {
	f.calls["GetByID"]++
	e, ok := f.events[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &e, nil
}

func (f *fakeStore) Create(ctx context.Context, e *Event) error {
	f.calls["Create"]++
	e.ID = f.nextID
	f.nextID++
	f.events[e.ID] = *e
	return nil
}

func (f *fakeStore) Update(ctx context.Context, id uint, requestingUserID uint, d Draft) (*Event, error) {
	f.calls["Update"]++
	e, ok := f.events[id]
	if !ok {
		return nil, ErrNotFound
	}
	if e.OwnerID != requestingUserID {
		return nil, ErrForbidden
	}
	e.Title = d.Title
	e.Type = EventType(d.Type)
	e.Date = d.Date
	e.Time = d.Time
	e.Description = d.Description
	f.events[id] = e
	return &e, nil
}

func (f *fakeStore) Delete(ctx context.Context, id uint, requestingUserID uint) error {
	f.calls["Delete"]++
	e, ok := f.events[id]
	if !ok {
		return ErrNotFound
	}
	if e.OwnerID != requestingUserID {
		return ErrForbidden
	}
	delete(f.events, id)
	return nil
}

func (f *fakeStore) seed(e Event) Event {
	if e.ID == 0 {
		e.ID = f.nextID
		f.nextID++
	} else if e.ID >= f.nextID {
		f.nextID = e.ID + 1
	}
	f.events[e.ID] = e
	return e
}
