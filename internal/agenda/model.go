package agenda

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// EventType is the closed set of agenda categories. Values outside the four
// known ones collapse into TypeOutro on read instead of failing.
type EventType string

const (
	TypeConsulta    EventType = "consulta"
	TypeMedicamento EventType = "medicamento"
	TypeExame       EventType = "exame"
	TypeTerapia     EventType = "terapia"
	TypeOutro       EventType = "outro"
)

// KnownTypes are the categories a draft may carry.
var KnownTypes = []EventType{TypeConsulta, TypeMedicamento, TypeExame, TypeTerapia}

// ParseEventType normalizes a stored or submitted value. Unknown and empty
// values land in the "outro" bucket.
func ParseEventType(s string) EventType {
	switch EventType(strings.ToLower(strings.TrimSpace(s))) {
	case TypeConsulta:
		return TypeConsulta
	case TypeMedicamento:
		return TypeMedicamento
	case TypeExame:
		return TypeExame
	case TypeTerapia:
		return TypeTerapia
	default:
		return TypeOutro
	}
}

// Known reports whether t is one of the four submittable categories.
func (t EventType) Known() bool {
	for _, k := range KnownTypes {
		if t == k {
			return true
		}
	}
	return false
}

const (
	// DateLayout is the calendar-date storage format. Dates are compared as
	// strings at this granularity, never as timestamps, so the runtime's
	// timezone cannot shift an event to a neighbouring day.
	DateLayout = "2006-01-02"
	// TimeLayout is the wall-clock storage format.
	TimeLayout = "15:04"
)

// Event is a single agenda entry.
type Event struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Title       string    `gorm:"type:varchar(255);not null" json:"title"`
	Type        EventType `gorm:"type:varchar(32);not null;index" json:"type"`
	Date        string    `gorm:"type:varchar(10);not null;index" json:"date"` // YYYY-MM-DD
	Time        string    `gorm:"type:varchar(5);not null" json:"time"`        // HH:MM
	Description string    `gorm:"type:text" json:"description,omitempty"`
	OwnerID     uint      `gorm:"not null;index" json:"owner_id"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Event) TableName() string {
	return "agenda_events"
}

// Draft is the in-progress form state for a create or edit dialog: an Event
// minus id and owner, which the caller never controls.
type Draft struct {
	Title       string `json:"title"`
	Type        string `json:"type"`
	Date        string `json:"date"`
	Time        string `json:"time"`
	Description string `json:"description"`
}

// Recoverable error taxonomy. Everything the agenda can fail with maps onto
// one of these; none of them should ever terminate the application.
var (
	ErrForbidden         = errors.New("forbidden: not the event owner")
	ErrNotFound          = errors.New("event not found")
	ErrRemoteUnavailable = errors.New("event store unavailable")
)

// FieldError points at a single offending draft field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError carries the full field-level error list so a form can
// highlight each offending input instead of showing one opaque message.
type ValidationError struct {
	Fields []FieldError `json:"fields"`
}

func (e *ValidationError) Error() string {
	names := make([]string, len(e.Fields))
	for i, f := range e.Fields {
		names[i] = f.Field
	}
	return fmt.Sprintf("invalid draft: %s", strings.Join(names, ", "))
}

// AsValidationError unwraps err into a *ValidationError if it is one.
func AsValidationError(err error) (*ValidationError, bool) {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve, true
	}
	return nil, false
}
