package agenda

import (
	"context"
	"errors"
	"testing"
	"time"
)

func loadedController(t *testing.T, store *fakeStore, userID uint) *Controller {
	t.Helper()
	ctrl := NewController(store, ident(userID))
	if err := ctrl.Refresh(context.Background()); err != nil {
		t.Fatalf("refresh failed: %v", err)
	}
	if ctrl.State() != StateLoaded {
		t.Fatalf("state after refresh = %s, want loaded", ctrl.State())
	}
	return ctrl
}

func TestControllerStartsIdleAndLoads(t *testing.T) {
	store := newFakeStore()
	store.seed(Event{Title: "Consulta", Type: TypeConsulta, Date: "2025-06-20", Time: "14:00", OwnerID: 1})

	ctrl := NewController(store, ident(1))
	if ctrl.State() != StateIdle {
		t.Fatalf("initial state = %s, want idle", ctrl.State())
	}

	if err := ctrl.Refresh(context.Background()); err != nil {
		t.Fatalf("refresh failed: %v", err)
	}
	if ctrl.State() != StateLoaded {
		t.Fatalf("state = %s, want loaded", ctrl.State())
	}
	if len(ctrl.Events()) != 1 {
		t.Fatalf("expected 1 event after refresh, got %d", len(ctrl.Events()))
	}
}

func TestControllerRefreshFailureKeepsLastGoodCollection(t *testing.T) {
	store := newFakeStore()
	store.seed(Event{Title: "Consulta", Type: TypeConsulta, Date: "2025-06-20", Time: "14:00", OwnerID: 1})
	ctrl := loadedController(t, store, 1)

	store.listErr = ErrRemoteUnavailable
	err := ctrl.Refresh(context.Background())
	if !errors.Is(err, ErrRemoteUnavailable) {
		t.Fatalf("expected ErrRemoteUnavailable, got %v", err)
	}
	if ctrl.State() != StateError {
		t.Fatalf("state = %s, want error", ctrl.State())
	}
	if len(ctrl.Events()) != 1 {
		t.Fatalf("collection must survive a failed refresh, got %d events", len(ctrl.Events()))
	}

	ctrl.Acknowledge()
	if ctrl.State() != StateLoaded {
		t.Fatalf("state after acknowledge = %s, want loaded", ctrl.State())
	}
}

func TestControllerDeadlineMapsToRemoteUnavailable(t *testing.T) {
	store := newFakeStore()
	ctrl := NewController(store, ident(1))

	store.listErr = context.DeadlineExceeded
	err := ctrl.Refresh(context.Background())
	if !errors.Is(err, ErrRemoteUnavailable) {
		t.Fatalf("deadline must map to ErrRemoteUnavailable, got %v", err)
	}
}

func TestControllerSubmitCreateReloadsCollection(t *testing.T) {
	store := newFakeStore()
	ctrl := loadedController(t, store, 1)

	if err := ctrl.SubmitCreate(context.Background(), validDraft()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ctrl.State() != StateLoaded {
		t.Fatalf("state = %s, want loaded", ctrl.State())
	}
	if len(ctrl.Events()) != 1 {
		t.Fatalf("collection not refreshed after create")
	}
	if ctrl.Events()[0].OwnerID != 1 {
		t.Fatalf("created event not owned by session principal")
	}
}

func TestControllerSubmitCreateInvalidDraftNoNetworkCall(t *testing.T) {
	store := newFakeStore()
	ctrl := loadedController(t, store, 1)
	listCalls := store.calls["List"]

	err := ctrl.SubmitCreate(context.Background(), Draft{Title: "sem data"})
	if _, ok := AsValidationError(err); !ok {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if ctrl.State() != StateError {
		t.Fatalf("state = %s, want error", ctrl.State())
	}
	if store.calls["Create"] != 0 {
		t.Fatalf("invalid draft must never reach the store")
	}
	if store.calls["List"] != listCalls {
		t.Fatalf("invalid draft must not trigger a reload")
	}

	ctrl.Acknowledge()
	if ctrl.State() != StateLoaded {
		t.Fatalf("state after acknowledge = %s, want loaded", ctrl.State())
	}
}

func TestControllerEditForeignEventRefusedLocally(t *testing.T) {
	store := newFakeStore()
	store.seed(Event{Title: "De outra pessoa", Type: TypeExame, Date: "2025-06-21", Time: "09:00", OwnerID: 2})
	ctrl := loadedController(t, store, 1)

	err := ctrl.SubmitEdit(context.Background(), 1, validDraft())
	if !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
	// pure UI refusal: no state transition, no store traffic
	if ctrl.State() != StateLoaded {
		t.Fatalf("local refusal must not change state, got %s", ctrl.State())
	}
	if store.calls["Update"] != 0 {
		t.Fatalf("local refusal must not call the store")
	}
}

func TestControllerDeleteForeignEventRefusedLocally(t *testing.T) {
	store := newFakeStore()
	store.seed(Event{Title: "De outra pessoa", Type: TypeExame, Date: "2025-06-21", Time: "09:00", OwnerID: 2})
	ctrl := loadedController(t, store, 1)

	if err := ctrl.SubmitDelete(context.Background(), 1); !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
	if store.calls["Delete"] != 0 {
		t.Fatalf("local refusal must not call the store")
	}
}

func TestControllerDeleteVanishedEventSurfacesNotFound(t *testing.T) {
	store := newFakeStore()
	ctrl := loadedController(t, store, 1)

	// id unknown locally, the store answers authoritatively
	err := ctrl.SubmitDelete(context.Background(), 42)
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if ctrl.State() != StateError {
		t.Fatalf("state = %s, want error", ctrl.State())
	}
	ctrl.Acknowledge()
	if ctrl.State() != StateLoaded {
		t.Fatalf("state after acknowledge = %s, want loaded", ctrl.State())
	}
}

func TestControllerSelectAndFilterAreDerivedViewParams(t *testing.T) {
	store := newFakeStore()
	store.seed(Event{Title: "Consulta", Type: TypeConsulta, Date: "2025-06-20", Time: "14:00", OwnerID: 1})
	store.seed(Event{Title: "Terapia", Type: TypeTerapia, Date: "2025-06-20", Time: "16:00", OwnerID: 1})
	store.seed(Event{Title: "Exame", Type: TypeExame, Date: "2025-06-25", Time: "07:30", OwnerID: 1})
	ctrl := loadedController(t, store, 1)

	ctrl.Select("2025-06-20")
	if ctrl.State() != StateLoaded {
		t.Fatalf("selecting a date must not change state")
	}
	if got := ctrl.Visible(); len(got) != 2 {
		t.Fatalf("expected 2 events on selected date, got %d", len(got))
	}

	ctrl.Filter(TypeTerapia)
	if got := ctrl.Visible(); len(got) != 1 || got[0].Title != "Terapia" {
		t.Fatalf("expected only the terapia event, got %v", got)
	}

	ctrl.Select("")
	ctrl.Filter("")
	if got := ctrl.Visible(); len(got) != 3 {
		t.Fatalf("expected full collection with no filters, got %d", len(got))
	}
}

func TestControllerCalendarIndexRecomputed(t *testing.T) {
	store := newFakeStore()
	ctrl := loadedController(t, store, 1)

	if len(ctrl.CalendarIndex()) != 0 {
		t.Fatalf("empty collection must yield empty index")
	}

	if err := ctrl.SubmitCreate(context.Background(), validDraft()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	index := ctrl.CalendarIndex()
	if len(index["2025-06-20"]) != 1 || index["2025-06-20"][0] != TypeConsulta {
		t.Fatalf("index not recomputed after mutation: %v", index)
	}
}

func TestControllerUpcomingFromCollection(t *testing.T) {
	store := newFakeStore()
	store.seed(Event{Title: "Consulta", Type: TypeConsulta, Date: "2025-06-20", Time: "14:00", OwnerID: 1})
	ctrl := loadedController(t, store, 1)

	now := time.Date(2025, 6, 19, 0, 0, 0, 0, time.UTC)
	if got := ctrl.UpcomingEvents(now, 10); len(got) != 1 {
		t.Fatalf("expected 1 upcoming event, got %d", len(got))
	}
	if got := ctrl.PastEvents(now, 10); len(got) != 0 {
		t.Fatalf("expected no past events, got %d", len(got))
	}
}
