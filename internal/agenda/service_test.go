package agenda

import (
	"context"
	"errors"
	"testing"

	"github.com/jkz07/transcare/middleware"
)

func ident(userID uint) middleware.Identity {
	return middleware.Identity{UserID: userID, Authenticated: true}
}

func TestCreateRoundTrip(t *testing.T) {
	store := newFakeStore()
	svc := NewService(store, nil)
	ctx := context.Background()

	draft := validDraft()
	event, listing, err := svc.Create(ctx, draft, ident(1), "127.0.0.1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if event.ID == 0 {
		t.Fatalf("created event has no assigned id")
	}
	if event.OwnerID != 1 {
		t.Fatalf("owner_id = %d, want 1", event.OwnerID)
	}

	if len(listing) != 1 {
		t.Fatalf("listing after create has %d events, want 1", len(listing))
	}
	got := listing[0]
	if got.Title != draft.Title || string(got.Type) != draft.Type ||
		got.Date != draft.Date || got.Time != draft.Time {
		t.Fatalf("listed event does not match draft: %+v", got)
	}
}

func TestCreateOwnerComesFromIdentityNotDraft(t *testing.T) {
	store := newFakeStore()
	svc := NewService(store, nil)

	event, _, err := svc.Create(context.Background(), validDraft(), ident(7), "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if event.OwnerID != 7 {
		t.Fatalf("owner must come from the authenticated principal, got %d", event.OwnerID)
	}
}

func TestCreateInvalidDraftNeverReachesStore(t *testing.T) {
	store := newFakeStore()
	svc := NewService(store, nil)

	_, _, err := svc.Create(context.Background(), Draft{Title: "x"}, ident(1), "")
	if _, ok := AsValidationError(err); !ok {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if store.calls["Create"] != 0 {
		t.Fatalf("store.Create called %d times for invalid draft, want 0", store.calls["Create"])
	}
}

func TestUpdateByNonOwnerForbiddenAndUnchanged(t *testing.T) {
	store := newFakeStore()
	svc := NewService(store, nil)
	seeded := store.seed(Event{Title: "Consulta", Type: TypeConsulta, Date: "2025-06-20", Time: "14:00", OwnerID: 1})

	hacked := validDraft()
	hacked.Title = "Hacked"
	_, _, err := svc.Update(context.Background(), seeded.ID, hacked, ident(2), "")
	if !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}

	stored, _ := store.GetByID(context.Background(), seeded.ID)
	if stored.Title != "Consulta" {
		t.Fatalf("stored event mutated by non-owner: %q", stored.Title)
	}
}

func TestUpdateMissingEventNotFound(t *testing.T) {
	svc := NewService(newFakeStore(), nil)
	_, _, err := svc.Update(context.Background(), 99, validDraft(), ident(1), "")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestDeleteByNonOwnerForbidden(t *testing.T) {
	store := newFakeStore()
	svc := NewService(store, nil)
	seeded := store.seed(Event{Title: "Consulta", Type: TypeConsulta, Date: "2025-06-20", Time: "14:00", OwnerID: 1})

	_, err := svc.Delete(context.Background(), seeded.ID, ident(2), "")
	if !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
	if _, err := store.GetByID(context.Background(), seeded.ID); err != nil {
		t.Fatalf("event must survive a forbidden delete: %v", err)
	}
}

func TestDeleteThenListThenSecondDelete(t *testing.T) {
	store := newFakeStore()
	svc := NewService(store, nil)
	ctx := context.Background()
	seeded := store.seed(Event{Title: "Consulta", Type: TypeConsulta, Date: "2025-06-20", Time: "14:00", OwnerID: 1})

	listing, err := svc.Delete(ctx, seeded.ID, ident(1), "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, e := range listing {
		if e.ID == seeded.ID {
			t.Fatalf("deleted event still present in listing")
		}
	}

	_, err = svc.Delete(ctx, seeded.ID, ident(1), "")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("second delete must be NotFound, got %v", err)
	}
}

func TestGetHidesOtherOwnersEvents(t *testing.T) {
	store := newFakeStore()
	svc := NewService(store, nil)
	seeded := store.seed(Event{Title: "Consulta", Type: TypeConsulta, Date: "2025-06-20", Time: "14:00", OwnerID: 1})

	_, err := svc.Get(context.Background(), seeded.ID, ident(2))
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("non-owner must get NotFound, got %v", err)
	}
}

func TestListMineFiltersByOwner(t *testing.T) {
	store := newFakeStore()
	svc := NewService(store, nil)
	store.seed(Event{Title: "Minha", Type: TypeConsulta, Date: "2025-06-20", Time: "14:00", OwnerID: 1})
	store.seed(Event{Title: "De outra pessoa", Type: TypeExame, Date: "2025-06-21", Time: "09:00", OwnerID: 2})

	listing, err := svc.ListMine(context.Background(), ident(1))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(listing) != 1 || listing[0].Title != "Minha" {
		t.Fatalf("unexpected listing: %+v", listing)
	}
}

func TestCalendarFiltersByMonth(t *testing.T) {
	store := newFakeStore()
	svc := NewService(store, nil)
	store.seed(Event{Title: "Junho", Type: TypeConsulta, Date: "2025-06-20", Time: "14:00", OwnerID: 1})
	store.seed(Event{Title: "Julho", Type: TypeExame, Date: "2025-07-05", Time: "10:00", OwnerID: 1})

	index, err := svc.Calendar(context.Background(), ident(1), "2025-06")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(index) != 1 {
		t.Fatalf("expected only June dates, got %v", index)
	}
	if len(index["2025-06-20"]) != 1 || index["2025-06-20"][0] != TypeConsulta {
		t.Fatalf("unexpected highlight index: %v", index)
	}
}
