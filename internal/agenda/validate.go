package agenda

import (
	"strings"
	"time"
)

// ValidateDraft checks a draft locally, never touching the network. On
// success it returns the normalized draft (trimmed title, canonical type).
// On failure the error is a *ValidationError listing every offending field.
func ValidateDraft(d Draft) (Draft, error) {
	var fields []FieldError

	d.Title = strings.TrimSpace(d.Title)
	if d.Title == "" {
		fields = append(fields, FieldError{Field: "title", Message: "título é obrigatório"})
	}

	typ := EventType(strings.ToLower(strings.TrimSpace(d.Type)))
	if !typ.Known() {
		fields = append(fields, FieldError{Field: "type", Message: "tipo deve ser consulta, medicamento, exame ou terapia"})
	} else {
		d.Type = string(typ)
	}

	if !validDate(d.Date) {
		fields = append(fields, FieldError{Field: "date", Message: "data deve estar no formato YYYY-MM-DD"})
	}

	if !validTime(d.Time) {
		fields = append(fields, FieldError{Field: "time", Message: "hora deve estar no formato HH:MM (24h)"})
	}

	// description is optional, always valid

	if len(fields) > 0 {
		return Draft{}, &ValidationError{Fields: fields}
	}
	return d, nil
}

// validDate accepts only canonical zero-padded YYYY-MM-DD. The round-trip
// check rejects inputs like "2025-2-5" that time.Parse would let through.
func validDate(s string) bool {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return false
	}
	return t.Format(DateLayout) == s
}

// validTime accepts only canonical zero-padded 24-hour HH:MM.
func validTime(s string) bool {
	t, err := time.Parse(TimeLayout, s)
	if err != nil {
		return false
	}
	return t.Format(TimeLayout) == s
}
