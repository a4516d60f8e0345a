package auditlog

import (
	"time"

	"gorm.io/datatypes"
)

// AuditLog is one recorded action (auth, agenda or community mutation).
type AuditLog struct {
	ID        uint           `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID    *uint          `gorm:"index" json:"user_id"` // nullable (e.g. failed login)
	Action    string         `gorm:"size:100;not null;index" json:"action"`
	Details   datatypes.JSON `gorm:"type:jsonb" json:"details"`
	IPAddress string         `gorm:"size:45" json:"ip_address"`
	Status    string         `gorm:"size:20;not null;index" json:"status"` // success / failure
	CreatedAt time.Time      `gorm:"autoCreateTime;index" json:"created_at"`
}

func (AuditLog) TableName() string {
	return "audit_logs"
}

// Filter narrows the audit listing.
type Filter struct {
	UserID   *uint
	Action   string
	Status   string
	FromDate *time.Time
	ToDate   *time.Time
	Page     int
	Limit    int
}

// PaginatedLogs is the listing response shape.
type PaginatedLogs struct {
	Data       []AuditLog `json:"data"`
	Total      int64      `json:"total"`
	Page       int        `json:"page"`
	Limit      int        `json:"limit"`
	TotalPages int        `json:"total_pages"`
}
