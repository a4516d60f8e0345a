package agenda

import (
	"sort"
	"time"
)

// Calendar aggregation: pure functions over an event collection. Events with
// a date that does not parse are excluded from every date-bucketed view
// rather than failing the whole view.

// GroupByDate buckets events by calendar date, preserving the listing order
// inside each bucket.
func GroupByDate(events []Event) map[string][]Event {
	out := make(map[string][]Event)
	for _, e := range events {
		if !validDate(e.Date) {
			continue
		}
		out[e.Date] = append(out[e.Date], e)
	}
	return out
}

// DatesByType returns, per category, the set of dates holding at least one
// event of that category. A date with events of several categories appears
// in every matching set, so a month grid can stack its highlight colors.
func DatesByType(events []Event) map[EventType]map[string]bool {
	out := make(map[EventType]map[string]bool)
	for _, e := range events {
		if !validDate(e.Date) {
			continue
		}
		typ := ParseEventType(string(e.Type))
		if out[typ] == nil {
			out[typ] = make(map[string]bool)
		}
		out[typ][e.Date] = true
	}
	return out
}

// TypesByDate is the month-grid view of DatesByType: for each date, the
// ordered list of categories present that day.
func TypesByDate(events []Event) map[string][]EventType {
	byType := DatesByType(events)
	out := make(map[string][]EventType)
	// fixed category order keeps the highlight stack deterministic
	order := append(append([]EventType{}, KnownTypes...), TypeOutro)
	for _, typ := range order {
		for date := range byType[typ] {
			out[date] = append(out[date], typ)
		}
	}
	return out
}

// EventsOn filters events by exact calendar-date match. The comparison is
// string equality at date granularity, independent of the runtime timezone.
func EventsOn(events []Event, date string) []Event {
	var out []Event
	for _, e := range events {
		if validDate(e.Date) && e.Date == date {
			out = append(out, e)
		}
	}
	return out
}

// stamp joins date and time into a lexicographically sortable key.
func stamp(e Event) string {
	return e.Date + " " + e.Time
}

func nowStamp(now time.Time) string {
	return now.Format(DateLayout + " " + TimeLayout)
}

// Upcoming returns events strictly after now, soonest first, truncated to
// limit (limit <= 0 means no truncation). An event exactly at now belongs to
// neither Upcoming nor Past.
func Upcoming(events []Event, now time.Time, limit int) []Event {
	cut := nowStamp(now)
	var out []Event
	for _, e := range events {
		if !validDate(e.Date) {
			continue
		}
		if stamp(e) > cut {
			out = append(out, e)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return stamp(out[i]) < stamp(out[j]) })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}

// Past returns events strictly before now, most recent first, truncated to
// limit (limit <= 0 means no truncation).
func Past(events []Event, now time.Time, limit int) []Event {
	cut := nowStamp(now)
	var out []Event
	for _, e := range events {
		if !validDate(e.Date) {
			continue
		}
		if stamp(e) < cut {
			out = append(out, e)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return stamp(out[i]) > stamp(out[j]) })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}
