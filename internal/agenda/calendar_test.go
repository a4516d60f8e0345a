package agenda

import (
	"testing"
	"time"
)

func sampleEvents() []Event {
	return []Event{
		{ID: 1, Title: "Consulta com Endocrinologista", Type: TypeConsulta, Date: "2025-06-20", Time: "14:00"},
		{ID: 2, Title: "Tomar Hormônio", Type: TypeMedicamento, Date: "2025-06-16", Time: "08:00"},
		{ID: 3, Title: "Exames de Sangue", Type: TypeExame, Date: "2025-06-25", Time: "07:30"},
		{ID: 4, Title: "Terapia Psicológica", Type: TypeTerapia, Date: "2025-06-18", Time: "16:00"},
	}
}

func TestGroupByDateEachEventInExactlyOneBucket(t *testing.T) {
	events := sampleEvents()
	buckets := GroupByDate(events)

	for _, e := range events {
		found := 0
		for date, bucket := range buckets {
			for _, b := range bucket {
				if b.ID == e.ID {
					found++
					if date != e.Date {
						t.Fatalf("event %d bucketed under %s, want %s", e.ID, date, e.Date)
					}
				}
			}
		}
		if found != 1 {
			t.Fatalf("event %d appears in %d buckets, want 1", e.ID, found)
		}
	}
}

func TestGroupByDateExcludesInvalidDates(t *testing.T) {
	events := []Event{
		{ID: 1, Type: TypeConsulta, Date: "2025-06-20", Time: "14:00"},
		{ID: 2, Type: TypeConsulta, Date: "not-a-date", Time: "14:00"},
		{ID: 3, Type: TypeConsulta, Date: "", Time: "14:00"},
	}
	buckets := GroupByDate(events)
	if len(buckets) != 1 {
		t.Fatalf("expected 1 bucket, got %d", len(buckets))
	}
	if len(buckets["2025-06-20"]) != 1 {
		t.Fatalf("expected only the valid event in its bucket")
	}
}

func TestDatesByTypeMultipleHighlightsSameDay(t *testing.T) {
	events := []Event{
		{ID: 1, Type: TypeConsulta, Date: "2025-06-20", Time: "09:00"},
		{ID: 2, Type: TypeTerapia, Date: "2025-06-20", Time: "16:00"},
	}
	byType := DatesByType(events)

	if !byType[TypeConsulta]["2025-06-20"] {
		t.Fatalf("consulta highlight missing for 2025-06-20")
	}
	if !byType[TypeTerapia]["2025-06-20"] {
		t.Fatalf("terapia highlight missing for 2025-06-20")
	}
}

func TestDatesByTypeUnknownTypeFallsBackToOutro(t *testing.T) {
	events := []Event{{ID: 1, Type: "cirurgia", Date: "2025-06-20", Time: "09:00"}}
	byType := DatesByType(events)
	if !byType[TypeOutro]["2025-06-20"] {
		t.Fatalf("unknown type should land in the outro bucket")
	}
}

func TestTypesByDateStacksCategories(t *testing.T) {
	events := []Event{
		{ID: 1, Type: TypeTerapia, Date: "2025-06-20", Time: "16:00"},
		{ID: 2, Type: TypeConsulta, Date: "2025-06-20", Time: "09:00"},
	}
	index := TypesByDate(events)
	types := index["2025-06-20"]
	if len(types) != 2 {
		t.Fatalf("expected 2 categories on 2025-06-20, got %d", len(types))
	}
	// category order is fixed, consulta before terapia
	if types[0] != TypeConsulta || types[1] != TypeTerapia {
		t.Fatalf("unexpected category order: %v", types)
	}
}

func TestEventsOnExactDateMatch(t *testing.T) {
	events := sampleEvents()
	day := EventsOn(events, "2025-06-20")
	if len(day) != 1 || day[0].ID != 1 {
		t.Fatalf("expected only event 1 on 2025-06-20, got %v", day)
	}
	if got := EventsOn(events, "2025-06-21"); len(got) != 0 {
		t.Fatalf("expected no events on 2025-06-21, got %v", got)
	}
}

func TestUpcomingPastPartition(t *testing.T) {
	now := time.Date(2025, 6, 19, 0, 0, 0, 0, time.UTC)
	events := sampleEvents()

	upcoming := Upcoming(events, now, 0)
	past := Past(events, now, 0)

	inUpcoming := make(map[uint]bool)
	for _, e := range upcoming {
		inUpcoming[e.ID] = true
	}
	inPast := make(map[uint]bool)
	for _, e := range past {
		inPast[e.ID] = true
	}

	for _, e := range events {
		if inUpcoming[e.ID] && inPast[e.ID] {
			t.Fatalf("event %d double-counted in upcoming and past", e.ID)
		}
		if !inUpcoming[e.ID] && !inPast[e.ID] {
			t.Fatalf("event %d in neither upcoming nor past", e.ID)
		}
	}

	if !inUpcoming[1] || !inUpcoming[3] {
		t.Fatalf("events after now missing from upcoming: %v", upcoming)
	}
	if !inPast[2] || !inPast[4] {
		t.Fatalf("events before now missing from past: %v", past)
	}
}

func TestUpcomingPastBoundaryEventAtNowInNeither(t *testing.T) {
	now := time.Date(2025, 6, 20, 14, 0, 0, 0, time.UTC)
	events := []Event{{ID: 1, Type: TypeConsulta, Date: "2025-06-20", Time: "14:00"}}

	if got := Upcoming(events, now, 0); len(got) != 0 {
		t.Fatalf("event at exactly now must not be upcoming: %v", got)
	}
	if got := Past(events, now, 0); len(got) != 0 {
		t.Fatalf("event at exactly now must not be past: %v", got)
	}
}

func TestUpcomingSortedAndTruncated(t *testing.T) {
	now := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	events := sampleEvents()

	upcoming := Upcoming(events, now, 2)
	if len(upcoming) != 2 {
		t.Fatalf("expected 2 events after truncation, got %d", len(upcoming))
	}
	if upcoming[0].ID != 2 || upcoming[1].ID != 4 {
		t.Fatalf("upcoming not sorted soonest first: %v", upcoming)
	}
}

func TestPastMostRecentFirst(t *testing.T) {
	now := time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC)
	past := Past(sampleEvents(), now, 0)

	if len(past) != 4 {
		t.Fatalf("expected all 4 events in the past, got %d", len(past))
	}
	for i := 1; i < len(past); i++ {
		if stamp(past[i-1]) < stamp(past[i]) {
			t.Fatalf("past not ordered most recent first: %v", past)
		}
	}
}

func TestParseEventType(t *testing.T) {
	cases := map[string]EventType{
		"consulta":    TypeConsulta,
		"Medicamento": TypeMedicamento,
		" exame ":     TypeExame,
		"terapia":     TypeTerapia,
		"cirurgia":    TypeOutro,
		"":            TypeOutro,
	}
	for in, want := range cases {
		if got := ParseEventType(in); got != want {
			t.Fatalf("ParseEventType(%q) = %s, want %s", in, got, want)
		}
	}
}
